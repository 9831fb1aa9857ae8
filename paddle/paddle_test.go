package paddle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mo-shahab/go-pong-ai/ball"
	"github.com/mo-shahab/go-pong-ai/canvas"
)

var (
	field = canvas.Canvas{Width: 800, Height: 600}
	dims  = Paddle{Width: 20, Height: 100}
)

func TestState_MoveAccelerates(t *testing.T) {
	s := State{Position: 250}

	s.Move("down", dims, field)
	s.Move("down", dims, field)

	assert.Equal(t, 2*Acceleration, s.Velocity)
	assert.Equal(t, 250+Acceleration+2*Acceleration, s.Position)
}

func TestState_MoveCapsSpeed(t *testing.T) {
	s := State{Position: 250}
	for i := 0; i < 20; i++ {
		s.Move("up", dims, field)
		assert.GreaterOrEqual(t, s.Velocity, -MaxSpeed)
	}
}

func TestState_MoveFriction(t *testing.T) {
	s := State{Position: 250, Velocity: 10}
	s.Move("", dims, field)
	assert.InDelta(t, 9.0, s.Velocity, 1e-9)
}

func TestState_MoveStopsAtEdges(t *testing.T) {
	s := State{Position: 3, Velocity: -8}
	s.Move("up", dims, field)
	assert.Equal(t, 0.0, s.Position)
	assert.Equal(t, 0.0, s.Velocity)

	s = State{Position: 495, Velocity: 8}
	s.Move("down", dims, field)
	assert.Equal(t, 500.0, s.Position)
	assert.Equal(t, 0.0, s.Velocity)
}

func TestCollide(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	b := ball.Ball{X: 25, Y: 300, Dx: -10, Radius: 8}
	hit := Collide(&b, dims, 250, 250, field, rng)
	assert.Equal(t, LeftHit, hit)
	assert.Greater(t, b.Dx, 0.0)
	assert.Equal(t, 28.0, b.X)

	b = ball.Ball{X: 775, Y: 260, Dx: 10, Radius: 8}
	hit = Collide(&b, dims, 250, 250, field, rng)
	assert.Equal(t, RightHit, hit)
	assert.Less(t, b.Dx, 0.0)
	// upper edge of the paddle sends the ball upward
	assert.Less(t, b.Dy, 0.0)

	b = ball.Ball{X: 25, Y: 100, Dx: -10, Radius: 8}
	assert.Equal(t, NoHit, Collide(&b, dims, 250, 250, field, rng))
}

func TestPaddle_Rects(t *testing.T) {
	assert.Equal(t, canvas.Rect{X: 0, Y: 250, W: 20, H: 100}, dims.LeftRect(250))
	assert.Equal(t, canvas.Rect{X: 780, Y: 10, W: 20, H: 100}, dims.RightRect(10, field))
	assert.Equal(t, 250.0, dims.Centered(field))
}
