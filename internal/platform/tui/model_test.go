package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func newTestFileStore(t *testing.T, high int) *storage.FileStore {
	t.Helper()
	fs, err := storage.NewFileStore(filepath.Join(t.TempDir(), "data.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.Save(high); err != nil {
		t.Fatal(err)
	}
	return fs
}

func newTestSession(t *testing.T, cfg SessionConfig) Model {
	t.Helper()
	if cfg.Game.Snake.Step == 0 {
		cfg.Game = config.DefaultSnakeConfig()
	}
	if cfg.Runtime.ScreenW == 0 {
		cfg.Runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 40, Seed: 1}
	}
	if cfg.HighScores == nil {
		cfg.HighScores = newTestFileStore(t, 7)
	}
	m, err := NewSession(cfg)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	return update(t, m, TickMsg{Session: m.id, Time: time.Now()})
}

func TestNewSessionFailsWithoutHighScore(t *testing.T) {
	fs, err := storage.NewFileStore(filepath.Join(t.TempDir(), "missing.txt"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewSession(SessionConfig{
		Game:       config.DefaultSnakeConfig(),
		Runtime:    core.DefaultConfig(),
		HighScores: fs,
	})
	if err == nil {
		t.Fatal("NewSession() should fail when the high score file is missing")
	}
}

func TestNewSessionDefaultRuntimeKeepsGameTick(t *testing.T) {
	fs := newTestFileStore(t, 0)
	game := config.DefaultSnakeConfig()
	game.Loop.TickInterval = 70 * time.Millisecond

	m, err := NewSession(SessionConfig{Game: game, Runtime: core.DefaultConfig(), HighScores: fs})
	if err != nil {
		t.Fatal(err)
	}
	if m.interval != 70*time.Millisecond {
		t.Errorf("interval = %v, expected the configured 70ms", m.interval)
	}
	if m.screen.Width() != 80 {
		t.Errorf("screen width = %d, expected 80", m.screen.Width())
	}
}

func TestSessionTickAdvancesSnake(t *testing.T) {
	m := newTestSession(t, SessionConfig{})
	m.Game().Food().MoveTo(core.V(200, 200))

	m = tick(t, m)

	if m.State().Tick != 1 {
		t.Errorf("Tick = %d, expected 1", m.State().Tick)
	}
	if got := m.Game().Chain().Head().Position(); got != core.V(20, 0) {
		t.Errorf("head at %v, expected (20,0)", got)
	}
}

func TestSessionIgnoresForeignTicks(t *testing.T) {
	m := newTestSession(t, SessionConfig{})

	m = update(t, m, TickMsg{Session: m.id + 1000, Time: time.Now()})

	if m.State().Tick != 0 {
		t.Errorf("a tick for another session was simulated")
	}
}

func TestSessionSteering(t *testing.T) {
	m := newTestSession(t, SessionConfig{})
	m.Game().Food().MoveTo(core.V(200, 200))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}) // left: reversal, refused
	m = tick(t, m)

	if m.Game().Chain().Heading() != core.HeadingUp {
		t.Errorf("Heading() = %v, expected up", m.Game().Chain().Heading())
	}
	if got := m.Game().Chain().Head().Position(); got != core.V(0, 20) {
		t.Errorf("head at %v, expected (0,20)", got)
	}
}

func TestSessionPause(t *testing.T) {
	m := newTestSession(t, SessionConfig{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	if !m.Paused() {
		t.Fatal("p should pause")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = tick(t, m)
	if m.State().Tick != 0 {
		t.Error("paused game should not advance")
	}
	if !strings.Contains(m.View(), "Paused") {
		t.Error("paused view should say so")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m = tick(t, m)
	if m.State().Tick != 1 {
		t.Errorf("Tick = %d after unpausing, expected 1", m.State().Tick)
	}
	if m.Game().Chain().Heading() != core.HeadingRight {
		t.Error("keys pressed while paused should be dropped")
	}
}

func TestSessionBackOnlyWhenAllowedAndPaused(t *testing.T) {
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	local := newTestSession(t, SessionConfig{})
	local = update(t, local, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	local = update(t, local, esc)
	if local.BackToMenu() {
		t.Error("local game has no menu to go back to")
	}

	remote := newTestSession(t, SessionConfig{AllowBack: true})
	remote = update(t, remote, esc)
	if remote.BackToMenu() {
		t.Error("back should need a paused game")
	}
	remote = update(t, remote, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	remote = update(t, remote, esc)
	if !remote.BackToMenu() {
		t.Error("back from a paused game should leave for the menu")
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(t, SessionConfig{})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("ctrl+c should quit")
	}
	if next.(Model).View() != "" {
		t.Error("quitting view should be empty")
	}
}

func TestSessionViewShowsArenaAndScore(t *testing.T) {
	m := newTestSession(t, SessionConfig{})
	view := m.View()

	if !strings.Contains(view, "Score: 0 | High Score: 7") {
		t.Errorf("view is missing the score line:\n%s", view)
	}
	if !strings.Contains(view, "┌") || !strings.Contains(view, "┘") {
		t.Error("view is missing the arena border")
	}
}

func TestSessionTooSmall(t *testing.T) {
	m := newTestSession(t, SessionConfig{})
	m = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 8})

	if !strings.Contains(m.View(), "Window too small") {
		t.Error("tiny terminal should show the resize hint")
	}
	m = tick(t, m)
	if m.State().Tick != 0 {
		t.Error("game should wait while the terminal is too small")
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	m = tick(t, m)
	if m.State().Tick != 1 {
		t.Error("game should resume after a resize")
	}
}

func TestSessionRecordsFinishedRounds(t *testing.T) {
	history, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer history.Close()

	highScores := newTestFileStore(t, 1)
	m := newTestSession(t, SessionConfig{
		HighScores: highScores,
		History:    history,
		HistoryID:  "snake_hard",
		Player:     "alice",
	})

	// Score three points, then drive the head into the wall.
	for i := 0; i < 3; i++ {
		m.Game().Scoreboard().Increment()
	}
	m.Game().Food().MoveTo(core.V(-200, -200))
	m.Game().Chain().Head().MoveTo(core.V(280, 0))

	m = tick(t, m)

	if m.State().Score != 0 || m.State().HighScore != 3 {
		t.Errorf("state = %+v, expected score 0 and high score 3", m.State())
	}

	scores, err := history.TopScores("snake_hard", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].Score != 3 || scores[0].Player != "alice" {
		t.Errorf("history = %+v, expected one round of 3 by alice", scores)
	}

	persisted, err := highScores.Load()
	if err != nil || persisted != 3 {
		t.Errorf("high score file holds %d (%v), expected 3", persisted, err)
	}
}

func TestSessionZeroScoreRoundNotRecorded(t *testing.T) {
	history, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer history.Close()

	m := newTestSession(t, SessionConfig{History: history})
	m.Game().Food().MoveTo(core.V(-200, -200))
	m.Game().Chain().Head().MoveTo(core.V(280, 0))
	m = tick(t, m)

	stats, err := history.Stats("snake")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Rounds != 0 {
		t.Errorf("a scoreless round was recorded: %+v", stats)
	}
}

func TestSessionObservesExternalHighScore(t *testing.T) {
	m := newTestSession(t, SessionConfig{})

	m = update(t, m, HighScoreMsg(50))
	if m.State().HighScore != 50 {
		t.Errorf("HighScore = %d, expected 50", m.State().HighScore)
	}
	m = update(t, m, HighScoreMsg(10))
	if m.State().HighScore != 50 {
		t.Errorf("a lower external score replaced the record: %d", m.State().HighScore)
	}
}

func TestSessionDifficultySpeedsUp(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	config.ApplyPreset(&cfg, config.DifficultyHard)
	m := newTestSession(t, SessionConfig{Game: cfg})
	m.Game().Food().MoveTo(core.V(200, 200))

	base := cfg.Loop.TickInterval
	m = tick(t, m)
	if m.Interval() >= base {
		t.Errorf("hard preset interval %v should be below the base %v", m.Interval(), base)
	}
}

func TestSessionRuntimeTickOverride(t *testing.T) {
	m := newTestSession(t, SessionConfig{
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 40, Seed: 1, TickInterval: 40 * time.Millisecond},
	})
	if m.Interval() != 40*time.Millisecond {
		t.Errorf("Interval() = %v, expected the runtime override", m.Interval())
	}
}

func TestComputeLayout(t *testing.T) {
	arena := config.DefaultSnakeConfig().Arena

	tests := []struct {
		name     string
		w, h     int
		rows     int
		tooSmall bool
	}{
		{"roomy", 120, 50, 30, false},
		{"short", 120, 24, 21, false},
		{"narrow", 40, 50, 19, false},
		{"tiny", 20, 10, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := computeLayout(arena, 20, tc.w, tc.h)
			if l.tooSmall != tc.tooSmall {
				t.Fatalf("tooSmall = %v, expected %v", l.tooSmall, tc.tooSmall)
			}
			if tc.tooSmall {
				return
			}
			vp := l.viewport
			if vp.Rows() != tc.rows || vp.Cols() != 2*tc.rows {
				t.Errorf("viewport %dx%d, expected %dx%d", vp.Cols(), vp.Rows(), 2*tc.rows, tc.rows)
			}
			if l.box.Right() > tc.w || l.box.Bottom() > tc.h-1 {
				t.Errorf("box %+v does not fit %dx%d with a help line", l.box, tc.w, tc.h)
			}
			// The wall sits inside the border.
			x, y := vp.Cell(core.V(280, 280))
			if !l.box.Contains(x, y) || x == l.box.Right()-1 || y == l.box.Y {
				t.Errorf("wall corner projects to (%d,%d), box %+v", x, y, l.box)
			}
		})
	}
}
