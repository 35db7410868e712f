package snake

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// testConfig is the default geometry with the food pinned to the origin.
func testConfig(start ...core.Vec) Config {
	cfg, err := NewConfig(config.DefaultSnakeConfig())
	if err != nil {
		panic(err)
	}
	cfg.Food.Bound = 0
	if len(start) > 0 {
		cfg.Chain.Start = start
	}
	return cfg
}

func newTestGame(t *testing.T, store HighScoreStore, cfg Config) (*Game, *core.Scene) {
	t.Helper()
	scene := core.NewScene()
	g, err := New(scene, store, cfg, 42)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g, scene
}

func eventKinds(events []core.Event) []core.EventKind {
	kinds := make([]core.EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	return kinds
}

func TestNewConfigFromDefaults(t *testing.T) {
	cfg, err := NewConfig(config.DefaultSnakeConfig())
	if err != nil {
		t.Fatalf("NewConfig() failed: %v", err)
	}

	if cfg.WallBound != 280 || cfg.Food.Bound != 280 {
		t.Errorf("bounds = %v/%v, expected 280", cfg.WallBound, cfg.Food.Bound)
	}
	if cfg.FoodContact != 15 || cfg.SelfCollision != 10 || cfg.Chain.Step != 20 {
		t.Errorf("thresholds = %+v", cfg)
	}
	if cfg.Food.Look.Color != core.ColorBlue || cfg.Food.Look.Shape != core.ShapeCircle {
		t.Errorf("food look = %+v", cfg.Food.Look)
	}
	if cfg.Scoreboard.Position != core.V(0, 270) {
		t.Errorf("scoreboard at %v", cfg.Scoreboard.Position)
	}
	if cfg.StopAfterReset {
		t.Error("StopAfterReset should default to false")
	}
}

func TestNewConfigRejectsInvalid(t *testing.T) {
	sc := config.DefaultSnakeConfig()
	sc.Snake.Step = -1
	if _, err := NewConfig(sc); err == nil {
		t.Error("negative step should be rejected")
	}

	sc = config.DefaultSnakeConfig()
	sc.Snake.Heading = "sideways"
	if _, err := NewConfig(sc); err == nil {
		t.Error("unknown start heading should be rejected")
	}
}

func TestNewConfigStartHeading(t *testing.T) {
	tests := []struct {
		name string
		want core.Heading
	}{
		{"", core.HeadingRight},
		{"right", core.HeadingRight},
		{"Up", core.HeadingUp},
		{"left", core.HeadingLeft},
		{"down", core.HeadingDown},
	}

	for _, tc := range tests {
		sc := config.DefaultSnakeConfig()
		sc.Snake.Heading = tc.name
		cfg, err := NewConfig(sc)
		if err != nil {
			t.Fatalf("NewConfig(heading %q) failed: %v", tc.name, err)
		}
		if cfg.Chain.Heading != tc.want {
			t.Errorf("heading %q resolved to %v, expected %v", tc.name, cfg.Chain.Heading, tc.want)
		}
	}
}

func TestGameFirstTickAdvances(t *testing.T) {
	cfg := testConfig()
	cfg.Food.Bound = 280
	g, _ := newTestGame(t, &memStore{}, cfg)

	// Keep the food out of the way of the first step.
	g.Food().MoveTo(core.V(200, 200))

	res := g.Step(core.NewInputFrame())

	want := []core.Vec{{X: 20, Y: 0}, {X: 0, Y: 0}, {X: -20, Y: 0}}
	got := g.Chain().Positions()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d at %v, expected %v", i, got[i], want[i])
		}
	}
	if res.State.Tick != 1 || res.State.Length != 3 || len(res.Events) != 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestGameEatsFood(t *testing.T) {
	g, scene := newTestGame(t, &memStore{}, testConfig(core.V(-20, 0), core.V(-40, 0), core.V(-60, 0)))

	res := g.Tick()

	if got := eventKinds(res.Events); len(got) != 1 || got[0] != core.EventAteFood {
		t.Fatalf("events = %v, expected [ate_food]", got)
	}
	if res.Events[0].Score != 1 {
		t.Errorf("ate_food score = %d, expected 1", res.Events[0].Score)
	}
	if g.Chain().Len() != 4 || res.State.Score != 1 {
		t.Errorf("after eating len=%d score=%d", g.Chain().Len(), res.State.Score)
	}
	if got := scene.Text(g.Scoreboard().ID()); got != "Score: 1 | High Score: 0" {
		t.Errorf("scoreboard text = %q", got)
	}
}

func TestGameInputFrameTurnsSnake(t *testing.T) {
	cfg := testConfig()
	cfg.Food.Bound = 280
	g, _ := newTestGame(t, &memStore{}, cfg)
	g.Food().MoveTo(core.V(200, 200))

	in := core.NewInputFrame()
	in.Set(core.ActionUp)
	in.Set(core.ActionLeft) // reverses the applied heading: refused
	g.Step(in)

	if g.Chain().Heading() != core.HeadingUp {
		t.Errorf("Heading() = %v, expected up", g.Chain().Heading())
	}
	if got := g.Chain().Head().Position(); got != core.V(0, 20) {
		t.Errorf("head at %v, expected (0,20)", got)
	}

	reverse := core.NewInputFrame()
	reverse.Set(core.ActionDown)
	g.Step(reverse)
	if g.Chain().Heading() != core.HeadingUp {
		t.Errorf("reversal was applied: heading %v", g.Chain().Heading())
	}
}

func TestGameWallCollision(t *testing.T) {
	store := &memStore{value: 3}
	g, _ := newTestGame(t, store, testConfig(core.V(270, 0), core.V(250, 0), core.V(230, 0)))
	for i := 0; i < 5; i++ {
		g.Scoreboard().Increment()
	}

	res := g.Tick()

	if got := eventKinds(res.Events); len(got) != 1 || got[0] != core.EventHitWall {
		t.Fatalf("events = %v, expected exactly [hit_wall]", got)
	}
	if res.Events[0].Score != 5 {
		t.Errorf("hit_wall score = %d, expected 5", res.Events[0].Score)
	}
	if len(store.saves) != 1 || store.value != 5 {
		t.Errorf("saves = %v, expected one write of 5", store.saves)
	}
	if res.State.Score != 0 || res.State.HighScore != 5 || res.State.Length != 3 {
		t.Errorf("state after wall = %+v", res.State)
	}
	if got := g.Chain().Head().Position(); got != core.V(270, 0) {
		t.Errorf("head after reset at %v, expected the start (270,0)", got)
	}
}

func TestGameWallBoundIsInclusive(t *testing.T) {
	// Head lands exactly on 280: still alive.
	g, _ := newTestGame(t, &memStore{}, testConfig(core.V(260, 0), core.V(240, 0), core.V(220, 0)))
	res := g.Tick()
	if len(res.Events) != 0 {
		t.Errorf("events at the bound = %v, expected none", eventKinds(res.Events))
	}
	if g.Chain().Head().Position() != core.V(280, 0) {
		t.Errorf("head at %v", g.Chain().Head().Position())
	}
}

func TestGameSelfCollision(t *testing.T) {
	// A U-shaped body: moving right, the head lands on the spot the fourth
	// segment is pulled into.
	g, _ := newTestGame(t, &memStore{}, testConfig(
		core.V(100, 100), core.V(100, 80), core.V(120, 80), core.V(120, 100), core.V(120, 120),
	))
	g.Scoreboard().Increment()

	res := g.Tick()

	if got := eventKinds(res.Events); len(got) != 1 || got[0] != core.EventHitSelf {
		t.Fatalf("events = %v, expected [hit_self]", got)
	}
	if res.State.Score != 0 || res.State.HighScore != 1 || res.State.Length != 5 {
		t.Errorf("state after self collision = %+v", res.State)
	}
}

// doubleResetStart puts a body segment within the self-collision distance
// of the head. The first advance pulls it away; after a reset it is back.
func doubleResetStart() []core.Vec {
	return []core.Vec{core.V(270, 0), core.V(265, 0), core.V(245, 0)}
}

func TestGameWallThenSelfWithoutShortCircuit(t *testing.T) {
	store := &memStore{value: 3}
	g, _ := newTestGame(t, store, testConfig(doubleResetStart()...))
	for i := 0; i < 5; i++ {
		g.Scoreboard().Increment()
	}

	res := g.Tick()

	got := eventKinds(res.Events)
	if len(got) != 2 || got[0] != core.EventHitWall || got[1] != core.EventHitSelf {
		t.Fatalf("events = %v, expected [hit_wall hit_self]", got)
	}
	if res.Events[0].Score != 5 || res.Events[1].Score != 0 {
		t.Errorf("event scores = %d/%d, expected 5/0", res.Events[0].Score, res.Events[1].Score)
	}
	// The second collision has nothing to persist.
	if len(store.saves) != 1 || store.saves[0] != 5 {
		t.Errorf("saves = %v, expected exactly [5]", store.saves)
	}
	if res.State.HighScore != 5 || res.State.Length != 3 {
		t.Errorf("state = %+v", res.State)
	}
}

func TestGameStopAfterReset(t *testing.T) {
	cfg := testConfig(doubleResetStart()...)
	cfg.StopAfterReset = true
	store := &memStore{value: 3}
	g, _ := newTestGame(t, store, cfg)
	for i := 0; i < 5; i++ {
		g.Scoreboard().Increment()
	}

	res := g.Tick()

	if got := eventKinds(res.Events); len(got) != 1 || got[0] != core.EventHitWall {
		t.Fatalf("events = %v, expected only [hit_wall]", got)
	}
	if len(store.saves) != 1 {
		t.Errorf("saves = %v, expected one", store.saves)
	}
}

func TestGameDefaultGeometryResetsOnce(t *testing.T) {
	// Head at (290, 0) with the default start layout to reset into.
	g, _ := newTestGame(t, &memStore{}, testConfig())
	g.Chain().Head().MoveTo(core.V(270, 0))
	g.Chain().Segment(1).MoveTo(core.V(250, 0))
	g.Chain().Segment(2).MoveTo(core.V(230, 0))
	g.Scoreboard().Increment()

	res := g.Tick()

	if got := eventKinds(res.Events); len(got) != 1 || got[0] != core.EventHitWall {
		t.Fatalf("events = %v, expected exactly [hit_wall]", got)
	}
	if res.State.HighScore != 1 || res.State.Score != 0 {
		t.Errorf("state = %+v", res.State)
	}
}

func TestGameSaveFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	store := &memStore{saveErr: errTest}
	scene := core.NewScene()
	g, err := New(scene, store, testConfig(core.V(270, 0), core.V(250, 0), core.V(230, 0)), 1, WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	g.Scoreboard().Increment()

	res := g.Tick()

	if res.State.Score != 0 || res.State.HighScore != 1 {
		t.Errorf("play should continue after a failed write: %+v", res.State)
	}
	if !strings.Contains(buf.String(), "high score not saved") {
		t.Errorf("expected a warning in the log, got:\n%s", buf.String())
	}
}

func TestGameDeterminism(t *testing.T) {
	cfg := testConfig()
	cfg.Food.Bound = 280

	run := func() Snapshot {
		g, err := New(core.NewScene(), &memStore{}, cfg, 12345)
		if err != nil {
			t.Fatal(err)
		}
		in := core.NewInputFrame()
		for i := 0; i < 200; i++ {
			in.Clear()
			switch i % 40 {
			case 5:
				in.Set(core.ActionUp)
			case 15:
				in.Set(core.ActionLeft)
			case 25:
				in.Set(core.ActionDown)
			case 35:
				in.Set(core.ActionRight)
			}
			g.Step(in)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !a.Equal(b) {
		t.Errorf("same seed diverged:\n%+v\n%+v", a, b)
	}
	if a.Tick != 200 {
		t.Errorf("Tick = %d, expected 200", a.Tick)
	}
}

func TestGameFailsWithoutHighScore(t *testing.T) {
	scene := core.NewScene()
	if _, err := New(scene, &memStore{loadErr: errTest}, testConfig(), 1); err == nil {
		t.Fatal("New() should fail when the high score cannot be loaded")
	}
	if scene.Len() != 0 {
		t.Errorf("failed game left %d entities on the display", scene.Len())
	}
}
