package ai

import (
	"errors"
	"fmt"
)

// epsilon is the magnitude below which a velocity component counts as zero.
const epsilon = 1e-9

// SmoothingTuning controls the velocity estimator's moving average.
type SmoothingTuning struct {
	// BounceThreshold is the per-axis jump between the raw and smoothed
	// velocity above which a frame is treated as a bounce.
	BounceThreshold float64
	// BounceBlend is the weight on the new sample for bounce frames.
	BounceBlend float64
	// SteadyBlend is the weight on the new sample otherwise.
	SteadyBlend float64
}

// BiasTuning controls the edge bias applied to close, fast shots.
type BiasTuning struct {
	Distance float64 // fraction of table width
	MinSpeed float64 // units per frame
	Offset   float64 // fraction of paddle height
}

// ToleranceTuning controls the dead zone around the target.
type ToleranceTuning struct {
	NearDistance float64 // fraction of table width
	NearFactor   float64 // fraction of paddle height
	MidDistance  float64
	MidFactor    float64
	FarFactor    float64
	Floor        float64 // absolute units
}

// DeadZoneTuning controls what happens once the paddle is inside the dead zone.
type DeadZoneTuning struct {
	HoldDistance float64 // fraction of table width
	Nudge        float64 // absolute units
	CenterDrift  float64 // fraction of paddle height
}

// RestingTuning controls where the paddle waits while the ball is away.
type RestingTuning struct {
	BallWeight float64
}

// Tuning groups every constant the controller uses.
type Tuning struct {
	Smoothing SmoothingTuning
	Bias      BiasTuning
	Tolerance ToleranceTuning
	DeadZone  DeadZoneTuning
	Resting   RestingTuning
}

// DefaultTuning returns the tuning the controller was designed with.
func DefaultTuning() Tuning {
	return Tuning{
		Smoothing: SmoothingTuning{
			BounceThreshold: 2.0,
			BounceBlend:     0.6,
			SteadyBlend:     0.35,
		},
		Bias: BiasTuning{
			Distance: 0.15,
			MinSpeed: 1.5,
			Offset:   0.15,
		},
		Tolerance: ToleranceTuning{
			NearDistance: 0.25,
			NearFactor:   0.02,
			MidDistance:  0.5,
			MidFactor:    0.05,
			FarFactor:    0.12,
			Floor:        0.8,
		},
		DeadZone: DeadZoneTuning{
			HoldDistance: 0.4,
			Nudge:        0.5,
			CenterDrift:  0.05,
		},
		Resting: RestingTuning{
			BallWeight: 0.4,
		},
	}
}

// Validate returns an error naming an out of range value, if any.
func (t Tuning) Validate() error {
	weights := map[string]float64{
		"smoothing.bounce_blend": t.Smoothing.BounceBlend,
		"smoothing.steady_blend": t.Smoothing.SteadyBlend,
		"resting.ball_weight":    t.Resting.BallWeight,
	}
	for name, w := range weights {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %v", name, w)
		}
	}

	nonNegative := map[string]float64{
		"smoothing.bounce_threshold": t.Smoothing.BounceThreshold,
		"bias.distance":              t.Bias.Distance,
		"bias.min_speed":             t.Bias.MinSpeed,
		"bias.offset":                t.Bias.Offset,
		"tolerance.near_factor":      t.Tolerance.NearFactor,
		"tolerance.mid_factor":       t.Tolerance.MidFactor,
		"tolerance.far_factor":       t.Tolerance.FarFactor,
		"tolerance.floor":            t.Tolerance.Floor,
		"dead_zone.hold_distance":    t.DeadZone.HoldDistance,
		"dead_zone.nudge":            t.DeadZone.Nudge,
		"dead_zone.center_drift":     t.DeadZone.CenterDrift,
	}
	for name, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("%s must be non-negative, got %v", name, v)
		}
	}

	if t.Tolerance.NearDistance < 0 || t.Tolerance.NearDistance > t.Tolerance.MidDistance {
		return errors.New("tolerance bands must satisfy 0 <= near_distance <= mid_distance")
	}

	return nil
}
