package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mo-shahab/go-pong-ai/ai"
	"github.com/mo-shahab/go-pong-ai/canvas"
	"github.com/mo-shahab/go-pong-ai/game"
	"github.com/mo-shahab/go-pong-ai/paddle"
)

// Environment variables read by Load
const (
	EnvAddr           = "PONG_ADDR"
	EnvTickMillis     = "PONG_TICK_MS"
	EnvWidth          = "PONG_WIDTH"
	EnvHeight         = "PONG_HEIGHT"
	EnvPaddleWidth    = "PONG_PADDLE_WIDTH"
	EnvPaddleHeight   = "PONG_PADDLE_HEIGHT"
	EnvWaitingSeconds = "PONG_WAITING_SECONDS"
	EnvTuning         = "PONG_TUNING"
)

// Config is the server and match configuration
type Config struct {
	Addr        string
	Game        game.Config
	WaitingRoom time.Duration
	// TuningPath is an optional JSON file overriding the bot tuning
	TuningPath string
	Tuning     ai.Tuning
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Addr: ":8080",
		Game: game.Config{
			Canvas:   canvas.Canvas{Width: 800, Height: 600},
			Paddle:   paddle.Paddle{Width: 20, Height: 100},
			TickRate: game.DefaultTickRate,
		},
		WaitingRoom: 90 * time.Second,
		Tuning:      ai.DefaultTuning(),
	}
}

// Load reads the given .env files (".env" when none are given; a missing
// file is not an error), then overlays environment variables on Default.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := Default()
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}

	floats := []struct {
		env string
		dst *float64
	}{
		{EnvWidth, &cfg.Game.Canvas.Width},
		{EnvHeight, &cfg.Game.Canvas.Height},
		{EnvPaddleWidth, &cfg.Game.Paddle.Width},
		{EnvPaddleHeight, &cfg.Game.Paddle.Height},
	}
	for _, f := range floats {
		if err := lookupFloat(f.env, f.dst); err != nil {
			return Config{}, err
		}
	}

	tickMillis := float64(cfg.Game.TickRate.Milliseconds())
	if err := lookupFloat(EnvTickMillis, &tickMillis); err != nil {
		return Config{}, err
	}
	cfg.Game.TickRate = time.Duration(tickMillis * float64(time.Millisecond))

	waiting := cfg.WaitingRoom.Seconds()
	if err := lookupFloat(EnvWaitingSeconds, &waiting); err != nil {
		return Config{}, err
	}
	cfg.WaitingRoom = time.Duration(waiting * float64(time.Second))

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	if path := os.Getenv(EnvTuning); path != "" {
		tc, err := LoadTuningConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg.TuningPath = path
		cfg.Tuning, err = tc.Apply(cfg.Tuning)
		if err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// Validate checks that the geometry and timings make a playable match
func (c Config) Validate() error {
	g := c.Game
	if g.Canvas.Width <= 0 || g.Canvas.Height <= 0 {
		return fmt.Errorf("canvas must be positive, got %vx%v", g.Canvas.Width, g.Canvas.Height)
	}
	if g.Paddle.Width <= 0 || g.Paddle.Height <= 0 {
		return fmt.Errorf("paddle must be positive, got %vx%v", g.Paddle.Width, g.Paddle.Height)
	}
	if g.Paddle.Height > g.Canvas.Height || 2*g.Paddle.Width >= g.Canvas.Width {
		return errors.New("paddles do not fit on the canvas")
	}
	if g.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %v", g.TickRate)
	}
	if c.WaitingRoom <= 0 {
		return fmt.Errorf("waiting room duration must be positive, got %v", c.WaitingRoom)
	}
	return nil
}

func lookupFloat(env string, dst *float64) error {
	v, ok := os.LookupEnv(env)
	if !ok || v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", env, err)
	}
	*dst = f
	return nil
}
