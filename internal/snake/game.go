package snake

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// GameID is the identifier scores are recorded under.
const GameID = "snake"

// Config is the resolved, ready-to-use game configuration.
type Config struct {
	Chain      ChainConfig
	Food       FoodConfig
	Scoreboard ScoreboardConfig

	WallBound     float64 // Head dies when |x| or |y| exceeds this
	FoodContact   float64 // Head eats when closer than this to the food
	SelfCollision float64 // Head dies when closer than this to a body segment

	// StopAfterReset skips the remaining collision checks of a tick once
	// one of them has reset the snake.
	StopAfterReset bool
}

// NewConfig validates a YAML configuration and resolves it.
func NewConfig(sc config.SnakeConfig) (Config, error) {
	if err := config.Validate(sc); err != nil {
		return Config{}, err
	}

	bodyColor, err := core.ParseColor(sc.Snake.Color)
	if err != nil {
		return Config{}, fmt.Errorf("snake: body color: %w", err)
	}
	foodColor, err := core.ParseColor(sc.Food.Color)
	if err != nil {
		return Config{}, fmt.Errorf("snake: food color: %w", err)
	}
	textColor, err := core.ParseColor(sc.Scoreboard.Color)
	if err != nil {
		return Config{}, fmt.Errorf("snake: scoreboard color: %w", err)
	}

	heading := core.HeadingRight
	if sc.Snake.Heading != "" {
		if heading, err = core.ParseHeading(sc.Snake.Heading); err != nil {
			return Config{}, fmt.Errorf("snake: start heading: %w", err)
		}
	}

	start := make([]core.Vec, len(sc.Snake.Start))
	for i, p := range sc.Snake.Start {
		start[i] = core.V(p.X, p.Y)
	}

	return Config{
		Chain: ChainConfig{
			Start:   start,
			Heading: heading,
			Step:    sc.Snake.Step,
			Look:    core.Appearance{Shape: core.ShapeSquare, Color: bodyColor, Size: sc.Snake.SegmentSize},
		},
		Food: FoodConfig{
			Bound: sc.Food.Bound(sc.Arena),
			Look:  core.Appearance{Shape: core.ShapeCircle, Color: foodColor, Size: sc.Food.Size},
		},
		Scoreboard: ScoreboardConfig{
			Position: core.V(sc.Scoreboard.X, sc.Scoreboard.Y),
			Look:     core.Appearance{Shape: core.ShapeText, Color: textColor},
		},
		WallBound:      sc.Arena.WallBound(),
		FoodContact:    sc.Food.ContactDistance,
		SelfCollision:  sc.Snake.SelfCollisionDistance,
		StopAfterReset: sc.Collision.StopAfterReset,
	}, nil
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger collision and persistence problems go to.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Game is one running snake. It is driven by a single goroutine calling
// Step once per tick; only Chain().SetDirection may be called concurrently.
type Game struct {
	cfg    Config
	logger *log.Logger
	tick   uint64

	chain      *Chain
	food       *Food
	scoreboard *Scoreboard
}

// New spawns a game on d. The high score is loaded from store first; a
// store that cannot be read fails the whole construction and nothing is
// left on the display.
func New(d core.Display, store HighScoreStore, cfg Config, seed int64, opts ...Option) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}

	sb, err := NewScoreboard(d, store, cfg.Scoreboard)
	if err != nil {
		return nil, err
	}
	g.scoreboard = sb
	g.chain = NewChain(d, cfg.Chain)
	g.food = NewFood(d, rand.New(rand.NewSource(seed)), cfg.Food)

	return g, nil
}

// Step applies the frame's direction requests in order, then runs one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	for _, a := range in.Actions {
		if h, ok := a.Heading(); ok {
			g.chain.SetDirection(h)
		}
	}
	return g.Tick()
}

// Tick runs one iteration of the loop in fixed order: advance, food,
// wall, self.
//
// A reset does not end the tick unless StopAfterReset is set. The self
// check then runs against the freshly rebuilt chain, re-reading the head
// on every comparison.
func (g *Game) Tick() core.StepResult {
	g.tick++
	var events []core.Event

	g.chain.Advance()

	if g.chain.Head().Position().Distance(g.food.Position()) < g.cfg.FoodContact {
		g.food.Respawn()
		g.chain.Grow()
		g.scoreboard.Increment()
		events = append(events, g.event(core.EventAteFood))
	}

	reset := false
	if g.outOfBounds(g.chain.Head().Position()) {
		events = append(events, g.collide(core.EventHitWall))
		reset = true
	}

	for i := 1; i < g.chain.Len(); i++ {
		if reset && g.cfg.StopAfterReset {
			break
		}
		if g.chain.Head().Position().Distance(g.chain.Segment(i).Position()) < g.cfg.SelfCollision {
			events = append(events, g.collide(core.EventHitSelf))
			reset = true
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) outOfBounds(p core.Vec) bool {
	return math.Abs(p.X) > g.cfg.WallBound || math.Abs(p.Y) > g.cfg.WallBound
}

func (g *Game) event(kind core.EventKind) core.Event {
	return core.Event{Kind: kind, Tick: g.tick, Score: g.scoreboard.Score()}
}

// collide ends the round: score handling first, then the chain rebuild.
func (g *Game) collide(kind core.EventKind) core.Event {
	ev := g.event(kind)
	g.logger.Debug("collision", "kind", kind, "tick", g.tick, "score", ev.Score)

	if err := g.scoreboard.OnCollision(); err != nil {
		g.logger.Warn("high score not saved", "err", err)
	}
	g.chain.Reset()
	return ev
}

// State returns a summary of the game.
func (g *Game) State() core.GameState {
	return core.GameState{
		Tick:      g.tick,
		Score:     g.scoreboard.Score(),
		HighScore: g.scoreboard.HighScore(),
		Length:    g.chain.Len(),
	}
}

func (g *Game) Chain() *Chain { return g.chain }

func (g *Game) Food() *Food { return g.food }

func (g *Game) Scoreboard() *Scoreboard { return g.scoreboard }
