package sim

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mo-shahab/go-pong-ai/canvas"
	"github.com/mo-shahab/go-pong-ai/game"
	"github.com/mo-shahab/go-pong-ai/paddle"
)

func testOptions() Options {
	opts := DefaultOptions(game.Config{
		Canvas:   canvas.Canvas{Width: 800, Height: 600},
		Paddle:   paddle.Paddle{Width: 20, Height: 100},
		TickRate: time.Millisecond,
	})
	opts.PointsToWin = 3
	opts.MaxTicks = 50_000
	return opts
}

func TestRun_Deterministic(t *testing.T) {
	a, err := Run(context.Background(), testOptions())
	require.NoError(t, err)
	b, err := Run(context.Background(), testOptions())
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed gave different results (-first +second):\n%s", diff)
	}
}

func TestRun_ResultIsConsistent(t *testing.T) {
	opts := testOptions()
	res, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Positive(t, res.Ticks)
	assert.LessOrEqual(t, res.Ticks, opts.MaxTicks)
	assert.Positive(t, res.LeftHits+res.RightHits)

	points := int(res.Scores.LeftScores + res.Scores.RightScores)
	assert.Len(t, res.Rallies, points)

	switch res.Winner {
	case game.Left:
		assert.Equal(t, opts.PointsToWin, res.Scores.LeftScores)
	case game.Right:
		assert.Equal(t, opts.PointsToWin, res.Scores.RightScores)
	default:
		assert.Equal(t, opts.MaxTicks, res.Ticks)
	}

	var sum float64
	for _, r := range res.Rallies {
		sum += r
	}
	if points > 0 {
		assert.InDelta(t, sum/float64(points), res.MeanRally, 1e-9)
	}
}

func TestRun_Trace(t *testing.T) {
	opts := testOptions()
	opts.MaxTicks = 10
	opts.PointsToWin = 100

	var ticks []int64
	opts.Trace = func(tick int64, s game.Snapshot) {
		assert.Equal(t, tick, s.Tick)
		ticks = append(ticks, tick)
	}

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.Ticks)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ticks)
}

func TestRun_Errors(t *testing.T) {
	opts := testOptions()
	opts.PointsToWin = 0
	_, err := Run(context.Background(), opts)
	assert.ErrorIs(t, err, ErrNoPoints)

	opts = testOptions()
	opts.LeftTuning.Smoothing.SteadyBlend = -1
	_, err = Run(context.Background(), opts)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, testOptions())
	assert.ErrorIs(t, err, context.Canceled)
}
