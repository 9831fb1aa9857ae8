package ai

import (
	"math"

	"github.com/mo-shahab/go-pong-ai/canvas"
)

// Command is a paddle movement, using the same strings as movement messages.
type Command string

const (
	Up   Command = "up"
	Down Command = "down"
)

// Side is the half of the table a paddle defends.
type Side string

const (
	LeftSide  Side = "left"
	RightSide Side = "right"
)

// Branch names which targeting rule produced the decision.
type Branch string

const (
	BranchApproach Branch = "approach"
	BranchResting  Branch = "resting"
)

// Decision is a command together with the values that produced it.
type Decision struct {
	Command      Command
	Branch       Branch
	Side         Side
	Velocity     Velocity
	TowardMe     bool
	TimeToImpact float64
	PredictedY   float64
	Target       float64
	Tolerance    float64
	Diff         float64
}

// Controller decides paddle movement frame by frame. It carries the ball
// velocity history for exactly one paddle, so every paddle needs its own
// Controller. Not safe for concurrent use.
type Controller struct {
	tuning    Tuning
	estimator *Estimator
}

func NewController(t Tuning) *Controller {
	return &Controller{
		tuning:    t,
		estimator: NewEstimator(t.Smoothing),
	}
}

// NewDefaultController returns a controller with DefaultTuning.
func NewDefaultController() *Controller {
	return NewController(DefaultTuning())
}

func (c *Controller) Tuning() Tuning {
	return c.tuning
}

// Velocity returns the smoothed ball velocity stored after the last call.
func (c *Controller) Velocity() Velocity {
	return c.estimator.Velocity()
}

// Reset drops the velocity history, e.g. after the ball is served again.
func (c *Controller) Reset() {
	c.estimator.Reset()
}

// Decide returns the movement for this frame. The opponent paddle is
// accepted for symmetry with the game harness but does not influence the
// decision.
func (c *Controller) Decide(self, opponent, ball canvas.Rect, table canvas.Canvas) Command {
	return c.Explain(self, opponent, ball, table).Command
}

// Explain is Decide with the intermediate values exposed.
func (c *Controller) Explain(self, _, ball canvas.Rect, table canvas.Canvas) Decision {
	t := c.tuning

	paddleCX, paddleCY := self.Center()
	ballCX, ballCY := ball.Center()
	ph := self.H
	halfPH := ph / 2.0

	v := c.estimator.Update(ballCX, ballCY)

	d := Decision{Velocity: v, Side: RightSide}
	if paddleCX < table.MidX() {
		d.Side = LeftSide
	}
	d.TowardMe = (d.Side == LeftSide && v.X < 0) || (d.Side == RightSide && v.X > 0)

	d.TimeToImpact = math.Inf(1)
	if math.Abs(v.X) >= epsilon {
		d.TimeToImpact = (paddleCX - ballCX) / v.X
	}

	distX := math.Abs(paddleCX - ballCX)
	d.Target = table.MidY()
	d.PredictedY = ballCY

	if d.TowardMe && d.TimeToImpact > 0 {
		d.Branch = BranchApproach
		d.PredictedY = PredictY(ballCY, v.Y, d.TimeToImpact, table.Height)
		d.Target = clamp(d.PredictedY, halfPH, table.Height-halfPH)

		if distX < table.Width*t.Bias.Distance && v.Speed() > t.Bias.MinSpeed {
			if d.PredictedY < table.MidY() {
				d.Target = clamp(d.Target-ph*t.Bias.Offset, halfPH, table.Height-halfPH)
			} else {
				d.Target = clamp(d.Target+ph*t.Bias.Offset, halfPH, table.Height-halfPH)
			}
		}
	} else {
		d.Branch = BranchResting
		farSide := (d.Side == LeftSide && ballCX > table.MidX()) ||
			(d.Side == RightSide && ballCX < table.MidX())
		if farSide {
			w := t.Resting.BallWeight
			d.Target = ballCY*w + table.MidY()*(1.0-w)
		}
	}

	d.Tolerance = c.tolerance(d.TowardMe, distX, ph, table.Width)
	d.Diff = d.Target - paddleCY
	d.Command = c.command(d, distX, paddleCY, ph, table)

	return d
}

// tolerance is the dead zone half width. It shrinks as an approaching
// ball gets closer.
func (c *Controller) tolerance(towardMe bool, distX, ph, width float64) float64 {
	t := c.tuning.Tolerance

	var tol float64
	switch {
	case towardMe && distX < width*t.NearDistance:
		tol = ph * t.NearFactor
	case towardMe && distX < width*t.MidDistance:
		tol = ph * t.MidFactor
	default:
		tol = ph * t.FarFactor
	}

	return math.Max(tol, t.Floor)
}

func (c *Controller) command(d Decision, distX, paddleCY, ph float64, table canvas.Canvas) Command {
	dz := c.tuning.DeadZone

	if d.Diff > d.Tolerance {
		return Down
	}
	if d.Diff < -d.Tolerance {
		return Up
	}

	// inside the dead zone
	if d.TowardMe && distX < table.Width*dz.HoldDistance {
		if math.Abs(d.Diff) > dz.Nudge {
			return towards(d.Diff)
		}
		// both commands move the paddle, always pick the same one
		return Up
	}

	centerOffset := paddleCY - table.MidY()
	if math.Abs(centerOffset) > ph*dz.CenterDrift {
		if centerOffset > 0 {
			return Up
		}
		return Down
	}

	if d.Diff < 0 {
		return Up
	}
	return Down
}

// towards returns the command that reduces a positive or negative diff.
func towards(diff float64) Command {
	if diff > 0 {
		return Down
	}
	return Up
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
