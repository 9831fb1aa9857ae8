package ball

import (
	"math"
	"math/rand"

	"github.com/mo-shahab/go-pong-ai/canvas"
)

// Reset serves the ball from the center towards directionX
func (b *Ball) Reset(c canvas.Canvas, directionX int, rng *rand.Rand) {
	b.X = c.MidX()
	b.Y = c.MidY()

	b.Dx = float64(directionX) * BaseSpeed
	b.Dy = (rng.Float64() - 0.5) * 2 * ServeSpread
}

// Move advances the ball one tick and bounces it off the top and bottom walls.
func (b *Ball) Move(c canvas.Canvas) {
	b.X += b.Dx
	b.Y += b.Dy

	// wall collision (top & bottom), only flip when heading into the wall so
	// a ball that overshoots does not get stuck flipping every tick
	if b.Y-b.Radius <= 0 {
		b.Y = b.Radius
		b.Dy = math.Abs(b.Dy)
	} else if b.Y+b.Radius >= c.Height {
		b.Y = c.Height - b.Radius
		b.Dy = -math.Abs(b.Dy)
	}
}

// Out reports which wall the ball has crossed: -1 for the left wall, 1 for
// the right one, 0 while it is in play.
func (b *Ball) Out(c canvas.Canvas) int {
	if b.X-b.Radius <= 0 {
		return -1
	}
	if b.X+b.Radius >= c.Width {
		return 1
	}
	return 0
}
