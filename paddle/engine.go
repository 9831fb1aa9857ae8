package paddle

import (
	"math"
	"math/rand"

	"github.com/mo-shahab/go-pong-ai/ball"
	"github.com/mo-shahab/go-pong-ai/canvas"
)

const maxBounceAngle = math.Pi / 3 // 60 degrees max

// Hit names the paddle a ball bounced off.
type Hit int

const (
	NoHit Hit = iota
	LeftHit
	RightHit
)

// Move applies one movement input. "up" and "down" accelerate, anything
// else lets friction slow the paddle down.
func (s *State) Move(direction string, p Paddle, c canvas.Canvas) {
	switch direction {
	case "up":
		s.Velocity -= Acceleration
	case "down":
		s.Velocity += Acceleration
	default:
		s.Velocity *= Friction
	}

	if s.Velocity > MaxSpeed {
		s.Velocity = MaxSpeed
	} else if s.Velocity < -MaxSpeed {
		s.Velocity = -MaxSpeed
	}

	newPosition := s.Position + s.Velocity

	// boundary checking
	if newPosition < 0 {
		newPosition = 0
		s.Velocity = 0
	} else if newPosition+p.Height > c.Height {
		newPosition = c.Height - p.Height
		s.Velocity = 0
	}

	s.Position = newPosition
}

func randomVariation(rng *rand.Rand) float64 {
	return (rng.Float64() - 0.5) * 2
}

// Collide bounces b off whichever paddle it touches. The outgoing angle
// depends on where along the paddle the ball landed.
func Collide(b *ball.Ball, p Paddle, leftTop, rightTop float64, c canvas.Canvas, rng *rand.Rand) Hit {
	leftPaddleRight := p.Width
	leftPaddleBottom := leftTop + p.Height

	rightPaddleLeft := c.Width - p.Width
	rightPaddleBottom := rightTop + p.Height

	ballSpeed := math.Hypot(b.Dx, b.Dy)

	if b.X-b.Radius <= leftPaddleRight &&
		b.Y >= leftTop &&
		b.Y <= leftPaddleBottom &&
		b.Dx < 0 {

		bounceAngle := relativePosition(b.Y, leftTop, p.Height) * maxBounceAngle
		b.Dx = math.Abs(ballSpeed * math.Cos(bounceAngle))
		b.Dy = ballSpeed*math.Sin(bounceAngle) + randomVariation(rng)
		b.X = leftPaddleRight + b.Radius
		return LeftHit
	}

	if b.X+b.Radius >= rightPaddleLeft &&
		b.Y >= rightTop &&
		b.Y <= rightPaddleBottom &&
		b.Dx > 0 {

		bounceAngle := relativePosition(b.Y, rightTop, p.Height) * maxBounceAngle
		b.Dx = -math.Abs(ballSpeed * math.Cos(bounceAngle))
		b.Dy = ballSpeed*math.Sin(bounceAngle) + randomVariation(rng)
		b.X = rightPaddleLeft - b.Radius
		return RightHit
	}

	return NoHit
}

// relativePosition maps the hit point to [-1, 1], 0 being the paddle center.
func relativePosition(y, top, height float64) float64 {
	return (y - (top + height/2)) / (height / 2)
}
