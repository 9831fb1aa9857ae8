package ball

import "github.com/mo-shahab/go-pong-ai/canvas"

// ball constants
const (
	Radius    = 8
	BaseSpeed = 10.0
	// max vertical speed of a fresh serve, either direction
	ServeSpread = 2.5
)

type Ball struct {
	X, Y    float64
	Dx, Dy  float64
	Radius  float64
	Visible bool
}

// New places a ball at the center of the canvas moving along directionX.
func New(c canvas.Canvas, directionX int) Ball {
	return Ball{
		X:       c.MidX(),
		Y:       c.MidY(),
		Dx:      float64(directionX) * BaseSpeed,
		Radius:  Radius,
		Visible: true,
	}
}

// Rect is the bounding box of the ball
func (b *Ball) Rect() canvas.Rect {
	return canvas.Rect{
		X: b.X - b.Radius,
		Y: b.Y - b.Radius,
		W: 2 * b.Radius,
		H: 2 * b.Radius,
	}
}
