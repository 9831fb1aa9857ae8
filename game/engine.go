// game/engine.go
package game

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/mo-shahab/go-pong-ai/ai"
	"github.com/mo-shahab/go-pong-ai/ball"
	"github.com/mo-shahab/go-pong-ai/canvas"
	"github.com/mo-shahab/go-pong-ai/paddle"
)

// Team is one side of the table
type Team string

const (
	Left  Team = "left"
	Right Team = "right"
)

// Other returns the opposing team
func (t Team) Other() Team {
	if t == Left {
		return Right
	}
	return Left
}

// DefaultTickRate is how often the game loop advances
const DefaultTickRate = 32 * time.Millisecond

// Config is the fixed geometry and pace of a match
type Config struct {
	Canvas   canvas.Canvas
	Paddle   paddle.Paddle
	TickRate time.Duration
}

// Scores holds the points of both teams
type Scores struct {
	LeftScores  int32
	RightScores int32
}

// Snapshot represents a point-in-time copy of the game state
type Snapshot struct {
	Ball        ball.Ball
	Canvas      canvas.Canvas
	Paddle      paddle.Paddle
	Left        paddle.State
	Right       paddle.State
	Scores      Scores
	BallRunning bool
	Tick        int64
}

// Event reports what happened during one Step
type Event struct {
	Hit    paddle.Hit
	Scored Team // empty unless a point was scored
}

// Listener receives game updates, the websocket layer implements it
type Listener interface {
	OnState(s Snapshot)
	OnScore(leftScore, rightScore int32, whoScored Team)
}

// Option configures an Engine
type Option func(*Engine)

// WithRand makes ball serves and bounce noise deterministic
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// Engine runs a single match. Either side can be driven by players through
// MovePaddle or by a bot controller attached with SetBot.
type Engine struct {
	mu       sync.Mutex
	cfg      Config
	ball     ball.Ball
	left     paddle.State
	right    paddle.State
	scores   Scores
	bots     map[Team]*ai.Controller
	tick     int64
	running  bool
	rng      *rand.Rand
	listener Listener
	stopChan chan struct{}
	done     chan struct{}
}

// NewEngine creates a match with the ball at the center and both paddles
// centered. listener may be nil.
func NewEngine(cfg Config, listener Listener, opts ...Option) *Engine {
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}

	e := &Engine{
		cfg:      cfg,
		bots:     make(map[Team]*ai.Controller),
		listener: listener,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	centerY := cfg.Paddle.Centered(cfg.Canvas)
	e.left.Position = centerY
	e.right.Position = centerY
	e.ball = ball.New(cfg.Canvas, -1)

	return e
}

// SetBot hands a team's paddle to a controller. Each team needs its own
// controller, passing nil removes the bot.
func (e *Engine) SetBot(team Team, c *ai.Controller) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if c == nil {
		delete(e.bots, team)
		return
	}
	e.bots[team] = c
}

// HasBot reports whether a controller drives the team's paddle
func (e *Engine) HasBot(team Team) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, ok := e.bots[team]
	return ok
}

// AddPlayer adds a player to a paddle team
func (e *Engine) AddPlayer(team Team) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state(team).Players++
}

// RemovePlayer removes a player from a paddle team
func (e *Engine) RemovePlayer(team Team) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s := e.state(team); s.Players > 0 {
		s.Players--
	}
}

// Players returns how many players control each side
func (e *Engine) Players() (left, right int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.left.Players, e.right.Players
}

// MovePaddle applies a player's movement input and returns both paddle
// positions.
func (e *Engine) MovePaddle(team Team, direction string) (float64, float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state(team).Move(direction, e.cfg.Paddle, e.cfg.Canvas)
	return e.left.Position, e.right.Position
}

// Step advances the match by one tick: bots pick a direction, the ball
// moves, collisions and scoring are resolved.
func (e *Engine) Step() Event {
	e.mu.Lock()

	e.moveBots()

	var ev Event
	e.ball.Move(e.cfg.Canvas)
	ev.Hit = paddle.Collide(&e.ball, e.cfg.Paddle, e.left.Position, e.right.Position, e.cfg.Canvas, e.rng)

	switch e.ball.Out(e.cfg.Canvas) {
	case -1:
		e.scores.RightScores++
		ev.Scored = Right
		e.serve(1)
	case 1:
		e.scores.LeftScores++
		ev.Scored = Left
		e.serve(-1)
	}
	e.tick++

	scores := e.scores
	snapshot := e.snapshotLocked()
	listener := e.listener
	e.mu.Unlock()

	if listener != nil {
		if ev.Scored != "" {
			listener.OnScore(scores.LeftScores, scores.RightScores, ev.Scored)
		}
		listener.OnState(snapshot)
	}

	return ev
}

// moveBots asks every attached controller for this tick's command. Callers
// hold e.mu.
func (e *Engine) moveBots() {
	if len(e.bots) == 0 {
		return
	}

	leftRect := e.cfg.Paddle.LeftRect(e.left.Position)
	rightRect := e.cfg.Paddle.RightRect(e.right.Position, e.cfg.Canvas)
	ballRect := e.ball.Rect()

	if bot, ok := e.bots[Left]; ok {
		cmd := bot.Decide(leftRect, rightRect, ballRect, e.cfg.Canvas)
		e.left.Move(string(cmd), e.cfg.Paddle, e.cfg.Canvas)
	}
	if bot, ok := e.bots[Right]; ok {
		cmd := bot.Decide(rightRect, leftRect, ballRect, e.cfg.Canvas)
		e.right.Move(string(cmd), e.cfg.Paddle, e.cfg.Canvas)
	}
}

// serve resets the ball towards directionX. The teleport would otherwise
// look like a huge velocity jump to the bots, so their history is dropped.
func (e *Engine) serve(directionX int) {
	e.ball.Reset(e.cfg.Canvas, directionX, e.rng)
	for _, bot := range e.bots {
		bot.Reset()
	}
	log.Printf("Score: %d-%d", e.scores.LeftScores, e.scores.RightScores)
}

// Start begins the game loop. It returns immediately; the loop ends on
// Stop or when ctx is done.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return // already running
	}
	e.running = true
	e.stopChan = make(chan struct{})
	e.done = make(chan struct{})
	stop, done := e.stopChan, e.done
	tickRate := e.cfg.TickRate
	e.mu.Unlock()

	log.Println("Starting game engine")
	go e.gameLoop(ctx, tickRate, stop, done)
}

// Stop halts the game loop and waits for it to exit
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	close(e.stopChan)
	done := e.done
	e.mu.Unlock()

	<-done
	log.Println("Game engine stopped")
}

// Running reports whether the game loop is active
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.running
}

func (e *Engine) gameLoop(ctx context.Context, tickRate time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			return
		case <-ticker.C:
			e.Step()
		}
	}
}

// Snapshot returns the current game state safely
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Ball:        e.ball,
		Canvas:      e.cfg.Canvas,
		Paddle:      e.cfg.Paddle,
		Left:        e.left,
		Right:       e.right,
		Scores:      e.scores,
		BallRunning: e.running,
		Tick:        e.tick,
	}
}

func (e *Engine) state(team Team) *paddle.State {
	if team == Left {
		return &e.left
	}
	return &e.right
}
