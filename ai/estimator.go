package ai

import "math"

// Velocity is a per-frame displacement.
type Velocity struct {
	X, Y float64
}

// Speed is the euclidean norm of the velocity.
func (v Velocity) Speed() float64 {
	return math.Hypot(v.X, v.Y)
}

// Estimator turns successive ball centers into a smoothed velocity.
// The zero value is ready to use with zero weights; use NewEstimator.
type Estimator struct {
	tuning SmoothingTuning

	primed   bool
	lastX    float64
	lastY    float64
	smoothed Velocity
}

func NewEstimator(t SmoothingTuning) *Estimator {
	return &Estimator{tuning: t}
}

// Update feeds the ball center for the current frame and returns the
// smoothed velocity. The stored state is overwritten on every call.
func (e *Estimator) Update(cx, cy float64) Velocity {
	var inst Velocity
	if e.primed {
		inst = Velocity{X: cx - e.lastX, Y: cy - e.lastY}
	}

	v := inst
	if e.primed {
		alpha := e.tuning.SteadyBlend
		if math.Abs(inst.X-e.smoothed.X) > e.tuning.BounceThreshold ||
			math.Abs(inst.Y-e.smoothed.Y) > e.tuning.BounceThreshold {
			alpha = e.tuning.BounceBlend
		}
		v = Velocity{
			X: (1.0-alpha)*e.smoothed.X + alpha*inst.X,
			Y: (1.0-alpha)*e.smoothed.Y + alpha*inst.Y,
		}
	}

	e.primed = true
	e.lastX = cx
	e.lastY = cy
	e.smoothed = v

	return v
}

// Velocity returns the last smoothed estimate, zero before the first update.
func (e *Estimator) Velocity() Velocity {
	return e.smoothed
}

// Primed reports whether at least one sample has been seen.
func (e *Estimator) Primed() bool {
	return e.primed
}

// Reset forgets the history, the next Update behaves like the first one.
func (e *Estimator) Reset() {
	e.primed = false
	e.lastX, e.lastY = 0, 0
	e.smoothed = Velocity{}
}
