package paddle

import "github.com/mo-shahab/go-pong-ai/canvas"

// paddle constants
const (
	MaxSpeed     = 10.0
	Acceleration = 2.0
	Friction     = 0.9
)

// Paddle holds the dimensions shared by both paddles of a match.
type Paddle struct {
	Width  float64
	Height float64
}

// State is the per-team paddle data. Position is the top edge.
type State struct {
	Position float64
	Velocity float64
	Players  int
}

// LeftRect is the left paddle's box, flush with the left wall.
func (p Paddle) LeftRect(top float64) canvas.Rect {
	return canvas.Rect{X: 0, Y: top, W: p.Width, H: p.Height}
}

// RightRect is the right paddle's box, flush with the right wall.
func (p Paddle) RightRect(top float64, c canvas.Canvas) canvas.Rect {
	return canvas.Rect{X: c.Width - p.Width, Y: top, W: p.Width, H: p.Height}
}

// Centered is the top position that puts a paddle in the middle of the canvas.
func (p Paddle) Centered(c canvas.Canvas) float64 {
	return c.MidY() - p.Height/2
}
