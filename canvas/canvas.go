package canvas

// Canvas is the play field. Width and height are fixed for a session.
type Canvas struct {
	Width  float64
	Height float64
}

func (c Canvas) MidX() float64 {
	return c.Width / 2
}

func (c Canvas) MidY() float64 {
	return c.Height / 2
}

// Rect is an axis aligned box described by its top-left corner and size.
// Paddles and the ball are both handed to the controller as rects.
type Rect struct {
	X, Y float64
	W, H float64
}

// Center returns the center point of the rect
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2.0, r.Y + r.H/2.0
}
