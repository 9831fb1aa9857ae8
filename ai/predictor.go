package ai

import "math"

// PredictY returns the ball's y after t frames moving at vy, reflecting
// elastically off the top (0) and bottom (height) edges.
//
// The straight-line position is folded into one up-and-down period of
// 2*height, so any number of bounces costs the same.
func PredictY(start, vy, t, height float64) float64 {
	if t <= 0 || math.Abs(vy) < epsilon {
		return start
	}

	period := 2.0 * height
	if period <= 0 {
		return start
	}

	y := start + vy*t
	if math.IsInf(y, 0) || math.IsNaN(y) {
		return start
	}

	folded := math.Mod(y, period)
	if folded < 0 {
		folded += period
	}

	if folded > height {
		return period - folded
	}
	return folded
}
