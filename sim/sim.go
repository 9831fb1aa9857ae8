// Package sim plays headless bot-vs-bot matches on the game engine. It is
// used to compare controller tunings without a browser in the loop.
package sim

import (
	"context"
	"errors"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/mo-shahab/go-pong-ai/ai"
	"github.com/mo-shahab/go-pong-ai/game"
	"github.com/mo-shahab/go-pong-ai/paddle"
)

// Options describes one match
type Options struct {
	Game        game.Config
	LeftTuning  ai.Tuning
	RightTuning ai.Tuning
	PointsToWin int32
	MaxTicks    int64
	Seed        int64
	// Trace, when set, is called after every tick
	Trace func(tick int64, s game.Snapshot)
}

// DefaultOptions plays to 11 with both sides on the default tuning
func DefaultOptions(cfg game.Config) Options {
	return Options{
		Game:        cfg,
		LeftTuning:  ai.DefaultTuning(),
		RightTuning: ai.DefaultTuning(),
		PointsToWin: 11,
		MaxTicks:    1_000_000,
		Seed:        1,
	}
}

// Result summarises a finished match
type Result struct {
	Scores    game.Scores
	Winner    game.Team // empty when MaxTicks ran out first
	Ticks     int64
	LeftHits  int
	RightHits int
	// Rallies holds the length in ticks of every completed point
	Rallies     []float64
	MeanRally   float64
	StdDevRally float64
}

var ErrNoPoints = errors.New("points to win must be positive")

// Run plays a match between two independently tuned controllers. The
// context is checked between ticks.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.PointsToWin <= 0 {
		return Result{}, ErrNoPoints
	}
	if err := opts.LeftTuning.Validate(); err != nil {
		return Result{}, err
	}
	if err := opts.RightTuning.Validate(); err != nil {
		return Result{}, err
	}

	e := game.NewEngine(opts.Game, nil, game.WithRand(rand.New(rand.NewSource(opts.Seed))))
	e.SetBot(game.Left, ai.NewController(opts.LeftTuning))
	e.SetBot(game.Right, ai.NewController(opts.RightTuning))

	var res Result
	rallyStart := int64(0)

	for res.Ticks < opts.MaxTicks || opts.MaxTicks <= 0 {
		if res.Ticks%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		ev := e.Step()
		res.Ticks++

		switch ev.Hit {
		case paddle.LeftHit:
			res.LeftHits++
		case paddle.RightHit:
			res.RightHits++
		}

		if opts.Trace != nil {
			opts.Trace(res.Ticks, e.Snapshot())
		}

		if ev.Scored == "" {
			continue
		}

		res.Rallies = append(res.Rallies, float64(res.Ticks-rallyStart))
		rallyStart = res.Ticks

		res.Scores = e.Snapshot().Scores
		if res.Scores.LeftScores >= opts.PointsToWin {
			res.Winner = game.Left
			break
		}
		if res.Scores.RightScores >= opts.PointsToWin {
			res.Winner = game.Right
			break
		}
	}

	res.Scores = e.Snapshot().Scores
	switch {
	case len(res.Rallies) > 1:
		res.MeanRally, res.StdDevRally = stat.MeanStdDev(res.Rallies, nil)
	case len(res.Rallies) == 1:
		res.MeanRally = res.Rallies[0]
	}

	return res, nil
}
