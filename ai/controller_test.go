package ai

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mo-shahab/go-pong-ai/canvas"
)

var (
	table       = canvas.Canvas{Width: 800, Height: 600}
	leftPaddle  = canvas.Rect{X: 10, Y: 250, W: 20, H: 100}
	rightPaddle = canvas.Rect{X: 770, Y: 250, W: 20, H: 100}
)

func ballAt(cx, cy float64) canvas.Rect {
	return canvas.Rect{X: cx - 5, Y: cy - 5, W: 10, H: 10}
}

func TestController_FirstCallRests(t *testing.T) {
	c := NewDefaultController()

	d := c.Explain(leftPaddle, rightPaddle, canvas.Rect{X: 400, Y: 280, W: 10, H: 10}, table)

	assert.Equal(t, Velocity{}, d.Velocity)
	assert.Equal(t, Velocity{}, c.Velocity())
	assert.Equal(t, BranchResting, d.Branch)
	assert.False(t, d.TowardMe)
	assert.True(t, math.IsInf(d.TimeToImpact, 1))
	// ball is on the far half, so the target blends toward it
	assert.InDelta(t, 0.4*285+0.6*300, d.Target, 1e-9)
	assert.Equal(t, Up, d.Command)
}

func TestController_ApproachingFlatBall(t *testing.T) {
	c := NewDefaultController()
	c.Decide(leftPaddle, rightPaddle, canvas.Rect{X: 400, Y: 280, W: 10, H: 10}, table)

	d := c.Explain(leftPaddle, rightPaddle, canvas.Rect{X: 380, Y: 280, W: 10, H: 10}, table)

	require.Equal(t, BranchApproach, d.Branch)
	assert.Equal(t, LeftSide, d.Side)
	assert.True(t, d.TowardMe)
	// raw -20 jumps from 0 so the bounce blend applies
	assert.InDelta(t, -12.0, d.Velocity.X, 1e-9)
	assert.InDelta(t, 0.0, d.Velocity.Y, 1e-9)
	assert.InDelta(t, 365.0/12.0, d.TimeToImpact, 1e-9)
	assert.InDelta(t, 285.0, d.PredictedY, 1e-9)
	assert.InDelta(t, 285.0, d.Target, 1e-9)
	assert.InDelta(t, 5.0, d.Tolerance, 1e-9)
	assert.InDelta(t, -15.0, d.Diff, 1e-9)
	assert.Equal(t, Up, d.Command)
}

func TestController_ClampsTargetOnTable(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		want float64
	}{
		{"above top", 10, 50},
		{"below bottom", 595, 550},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewDefaultController()
			c.Decide(leftPaddle, rightPaddle, ballAt(405, tc.y), table)
			d := c.Explain(leftPaddle, rightPaddle, ballAt(385, tc.y), table)

			require.Equal(t, BranchApproach, d.Branch)
			assert.InDelta(t, tc.y, d.PredictedY, 1e-9)
			assert.InDelta(t, tc.want, d.Target, 1e-9)
		})
	}
}

func TestController_EdgeBiasOnCloseFastShot(t *testing.T) {
	c := NewDefaultController()
	c.Decide(leftPaddle, rightPaddle, ballAt(120, 200), table)

	d := c.Explain(leftPaddle, rightPaddle, ballAt(100, 200), table)

	require.Equal(t, BranchApproach, d.Branch)
	// upper half, so 15% of the paddle height further up
	assert.InDelta(t, 200-15.0, d.Target, 1e-9)
	assert.InDelta(t, 2.0, d.Tolerance, 1e-9)
	assert.Equal(t, Up, d.Command)

	c = NewDefaultController()
	c.Decide(leftPaddle, rightPaddle, ballAt(120, 540), table)
	d = c.Explain(leftPaddle, rightPaddle, ballAt(100, 540), table)

	// lower half, biased down and clamped at the bottom edge
	assert.InDelta(t, 550.0, d.Target, 1e-9)
	assert.Equal(t, Down, d.Command)
}

func TestController_RightSide(t *testing.T) {
	c := NewDefaultController()
	c.Decide(rightPaddle, leftPaddle, ballAt(400, 100), table)

	d := c.Explain(rightPaddle, leftPaddle, ballAt(420, 100), table)

	assert.Equal(t, RightSide, d.Side)
	assert.True(t, d.TowardMe)
	assert.Equal(t, BranchApproach, d.Branch)
	assert.Equal(t, Up, d.Command)
}

func TestController_RestingWhenBallRecedes(t *testing.T) {
	c := NewDefaultController()
	c.Decide(rightPaddle, leftPaddle, ballAt(300, 100), table)

	d := c.Explain(rightPaddle, leftPaddle, ballAt(280, 100), table)

	assert.False(t, d.TowardMe)
	assert.Equal(t, BranchResting, d.Branch)
	assert.InDelta(t, 0.4*100+0.6*300, d.Target, 1e-9)
	assert.Equal(t, Up, d.Command)
}

func TestController_RestingOnOwnHalfTargetsCenter(t *testing.T) {
	c := NewDefaultController()
	c.Decide(leftPaddle, rightPaddle, ballAt(200, 100), table)

	d := c.Explain(leftPaddle, rightPaddle, ballAt(220, 100), table)

	assert.Equal(t, BranchResting, d.Branch)
	assert.InDelta(t, 300.0, d.Target, 1e-9)
}

func TestController_DeadZoneIsStable(t *testing.T) {
	c := NewDefaultController()
	ball := ballAt(600, 300)

	first := c.Decide(leftPaddle, rightPaddle, ball, table)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, c.Decide(leftPaddle, rightPaddle, ball, table), "call %d", i)
	}
}

func TestController_DeadZoneHoldsUpWhenClose(t *testing.T) {
	c := NewDefaultController()
	// paddle centered on the incoming line
	paddle := canvas.Rect{X: 10, Y: 235, W: 20, H: 100}
	c.Decide(paddle, rightPaddle, ballAt(300, 285), table)

	d := c.Explain(paddle, rightPaddle, ballAt(280, 285), table)

	require.True(t, d.TowardMe)
	assert.InDelta(t, 0.0, d.Diff, 1e-9)
	assert.Equal(t, Up, d.Command)
}

func TestController_DeadZoneNudge(t *testing.T) {
	c := NewDefaultController()
	// center 284, target 285: inside the 5 unit band but more than 0.5 away
	paddle := canvas.Rect{X: 10, Y: 234, W: 20, H: 100}
	c.Decide(paddle, rightPaddle, ballAt(300, 285), table)

	d := c.Explain(paddle, rightPaddle, ballAt(280, 285), table)

	assert.InDelta(t, 1.0, d.Diff, 1e-9)
	assert.Equal(t, Down, d.Command)
}

func TestController_DeadZoneDriftsToCenter(t *testing.T) {
	c := NewDefaultController()
	// paddle center 310, ball on own half and still: target is the midline
	paddle := canvas.Rect{X: 10, Y: 260, W: 20, H: 100}

	d := c.Explain(paddle, rightPaddle, ballAt(200, 300), table)

	assert.InDelta(t, -10.0, d.Diff, 1e-9)
	assert.InDelta(t, 12.0, d.Tolerance, 1e-9)
	assert.Equal(t, Up, d.Command)

	paddle.Y = 242 // center 292, still inside the band
	d = c.Explain(paddle, rightPaddle, ballAt(200, 300), table)
	assert.InDelta(t, 8.0, d.Diff, 1e-9)
	assert.Equal(t, Down, d.Command)
}

func TestController_StalledBallStillApproaches(t *testing.T) {
	c := NewDefaultController()
	low := canvas.Rect{X: 10, Y: 350, W: 20, H: 100}

	c.Decide(low, rightPaddle, ballAt(156, 500), table)
	// a parked ball decays vx geometrically but never flips its sign
	for i := 0; i < 200 && math.Abs(c.Velocity().X) >= epsilon; i++ {
		c.Decide(low, rightPaddle, ballAt(155, 500), table)
	}
	require.Less(t, c.Velocity().X, 0.0)
	require.Less(t, math.Abs(c.Velocity().X), epsilon)

	d := c.Explain(low, rightPaddle, ballAt(155, 500), table)

	assert.True(t, d.TowardMe)
	assert.True(t, math.IsInf(d.TimeToImpact, 1))
	assert.Equal(t, BranchApproach, d.Branch)
	assert.InDelta(t, 500.0, d.PredictedY, 1e-9)
	assert.InDelta(t, 500.0, d.Target, 1e-9)
	assert.Equal(t, Down, d.Command)
}

func TestController_IndependentState(t *testing.T) {
	left := NewDefaultController()
	right := NewDefaultController()

	left.Decide(leftPaddle, rightPaddle, ballAt(400, 300), table)
	left.Decide(leftPaddle, rightPaddle, ballAt(390, 300), table)
	right.Decide(rightPaddle, leftPaddle, ballAt(100, 100), table)

	assert.InDelta(t, -6.0, left.Velocity().X, 1e-9)
	assert.Equal(t, Velocity{}, right.Velocity())
}

func TestController_TotalOnDegenerateInput(t *testing.T) {
	inputs := []struct {
		self, ball canvas.Rect
		table      canvas.Canvas
	}{
		{canvas.Rect{}, canvas.Rect{}, canvas.Canvas{}},
		{leftPaddle, ballAt(1e12, -1e12), table},
		{canvas.Rect{H: 900}, ballAt(5, 5), table},
		{leftPaddle, ballAt(20, 300), canvas.Canvas{Width: 0, Height: 0}},
	}

	for _, in := range inputs {
		c := NewDefaultController()
		assert.NotPanics(t, func() {
			for i := 0; i < 3; i++ {
				cmd := c.Decide(in.self, canvas.Rect{}, in.ball, in.table)
				assert.Contains(t, []Command{Up, Down}, cmd)
				in.ball.X -= 1e-10
			}
		})
	}
}

func TestTuning_Validate(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate())

	bad := DefaultTuning()
	bad.Smoothing.BounceBlend = 1.2
	assert.Error(t, bad.Validate())

	bad = DefaultTuning()
	bad.Tolerance.NearDistance = 0.6
	assert.Error(t, bad.Validate())

	bad = DefaultTuning()
	bad.Tolerance.Floor = -1
	assert.Error(t, bad.Validate())
}
