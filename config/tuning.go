package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mo-shahab/go-pong-ai/ai"
)

// TuningConfig overrides bot tuning values. Only the fields present in the
// JSON are applied, everything else keeps its current value.
type TuningConfig struct {
	// Smoothing
	BounceThreshold *float64 `json:"bounce_threshold,omitempty"`
	BounceBlend     *float64 `json:"bounce_blend,omitempty"`
	SteadyBlend     *float64 `json:"steady_blend,omitempty"`

	// Edge bias
	BiasDistance *float64 `json:"bias_distance,omitempty"`
	BiasMinSpeed *float64 `json:"bias_min_speed,omitempty"`
	BiasOffset   *float64 `json:"bias_offset,omitempty"`

	// Tolerance bands
	NearDistance   *float64 `json:"near_distance,omitempty"`
	NearFactor     *float64 `json:"near_factor,omitempty"`
	MidDistance    *float64 `json:"mid_distance,omitempty"`
	MidFactor      *float64 `json:"mid_factor,omitempty"`
	FarFactor      *float64 `json:"far_factor,omitempty"`
	ToleranceFloor *float64 `json:"tolerance_floor,omitempty"`

	// Dead zone
	HoldDistance *float64 `json:"hold_distance,omitempty"`
	Nudge        *float64 `json:"nudge,omitempty"`
	CenterDrift  *float64 `json:"center_drift,omitempty"`

	// Resting position
	RestingBallWeight *float64 `json:"resting_ball_weight,omitempty"`
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("tuning file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat tuning file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("tuning file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file: %w", err)
	}

	tc := &TuningConfig{}
	if err := json.Unmarshal(data, tc); err != nil {
		return nil, fmt.Errorf("failed to parse tuning JSON: %w", err)
	}

	return tc, nil
}

// Apply overlays the set fields on base and validates the result.
func (tc *TuningConfig) Apply(base ai.Tuning) (ai.Tuning, error) {
	t := base
	overrides := []struct {
		src *float64
		dst *float64
	}{
		{tc.BounceThreshold, &t.Smoothing.BounceThreshold},
		{tc.BounceBlend, &t.Smoothing.BounceBlend},
		{tc.SteadyBlend, &t.Smoothing.SteadyBlend},
		{tc.BiasDistance, &t.Bias.Distance},
		{tc.BiasMinSpeed, &t.Bias.MinSpeed},
		{tc.BiasOffset, &t.Bias.Offset},
		{tc.NearDistance, &t.Tolerance.NearDistance},
		{tc.NearFactor, &t.Tolerance.NearFactor},
		{tc.MidDistance, &t.Tolerance.MidDistance},
		{tc.MidFactor, &t.Tolerance.MidFactor},
		{tc.FarFactor, &t.Tolerance.FarFactor},
		{tc.ToleranceFloor, &t.Tolerance.Floor},
		{tc.HoldDistance, &t.DeadZone.HoldDistance},
		{tc.Nudge, &t.DeadZone.Nudge},
		{tc.CenterDrift, &t.DeadZone.CenterDrift},
		{tc.RestingBallWeight, &t.Resting.BallWeight},
	}
	for _, o := range overrides {
		if o.src != nil {
			*o.dst = *o.src
		}
	}

	if err := t.Validate(); err != nil {
		return base, fmt.Errorf("invalid tuning: %w", err)
	}
	return t, nil
}
