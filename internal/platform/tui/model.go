package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// HighScoreMsg carries a high score reached outside this session.
type HighScoreMsg int

// SessionConfig is everything one game session needs.
type SessionConfig struct {
	Game    config.SnakeConfig
	Runtime core.RuntimeConfig

	// HighScores is read once at start; a failure aborts the session.
	HighScores snake.HighScoreStore

	// History records finished rounds. Optional.
	History   *storage.Store
	HistoryID string // defaults to snake.GameID
	Player    string

	Logger *log.Logger

	// HighScoreUpdates delivers high scores set by other sessions sharing
	// the same store. Optional.
	HighScoreUpdates <-chan int

	// AllowBack lets the back key leave a paused game, for sessions that
	// started from a menu.
	AllowBack bool
}

// Model is the Bubble Tea model running one snake game.
type Model struct {
	id         uint64
	cfg        SessionConfig
	game       *snake.Game
	scene      *core.Scene
	screen     *core.Screen
	layout     layout
	border     core.Color
	difficulty *config.DifficultyManager
	keyMapper  *KeyMapper
	help       help.Model
	logger     *log.Logger

	inputFrame core.InputFrame
	state      core.GameState
	interval   time.Duration
	roundTicks uint64

	paused     bool
	quitting   bool
	backToMenu bool
}

// NewSession builds a game session. It fails when the configuration is
// invalid or the high score cannot be loaded.
func NewSession(cfg SessionConfig) (Model, error) {
	if cfg.Runtime.TickInterval > 0 {
		cfg.Game.Loop.TickInterval = cfg.Runtime.TickInterval
	}
	resolved, err := snake.NewConfig(cfg.Game)
	if err != nil {
		return Model{}, err
	}
	border, err := core.ParseColor(cfg.Game.Arena.Color)
	if err != nil {
		return Model{}, fmt.Errorf("tui: arena color: %w", err)
	}

	// Use time-based seed if not specified
	if cfg.Runtime.Seed == 0 {
		cfg.Runtime.Seed = time.Now().UnixNano()
	}
	if cfg.HistoryID == "" {
		cfg.HistoryID = snake.GameID
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	scene := core.NewScene()
	game, err := snake.New(scene, cfg.HighScores, resolved, cfg.Runtime.Seed, snake.WithLogger(logger))
	if err != nil {
		return Model{}, err
	}

	m := Model{
		id:         nextSessionID(),
		cfg:        cfg,
		game:       game,
		scene:      scene,
		border:     border,
		difficulty: config.NewDifficultyManager(cfg.Game.Difficulty),
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		state:      game.State(),
		interval:   cfg.Game.Loop.TickInterval,
	}
	m.screen = core.NewScreen(cfg.Runtime.ScreenW, core.Max(cfg.Runtime.ScreenH-1, 0))
	m.layout = computeLayout(cfg.Game.Arena, cfg.Game.Snake.Step, cfg.Runtime.ScreenW, cfg.Runtime.ScreenH)
	m.help.Width = cfg.Runtime.ScreenW

	logger.Debug("session started", "seed", cfg.Runtime.Seed, "history", cfg.HistoryID, "high_score", m.state.HighScore)
	return m, nil
}

// Init starts the tick loop and, when configured, the high-score feed.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.id, m.interval), waitForHighScore(m.cfg.HighScoreUpdates))
}

func waitForHighScore(ch <-chan int) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		score, ok := <-ch
		if !ok {
			return nil
		}
		return HighScoreMsg(score)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Session != m.id {
			return m, nil
		}
		return m.handleTick()

	case HighScoreMsg:
		m.game.Scoreboard().Observe(int(msg))
		m.state = m.game.State()
		return m, waitForHighScore(m.cfg.HighScoreUpdates)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.cfg.AllowBack && m.paused && m.keyMapper.IsBack(msg) {
		m.backToMenu = true
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionPause:
		m.paused = !m.paused
		return m, nil
	}

	if !m.paused {
		m.keyMapper.MapKeyToFrame(msg, &m.inputFrame)
	}
	return m, nil
}

// handleResize re-fits the arena. The game itself lives in world
// coordinates and is not affected.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.cfg.Runtime.ScreenW = msg.Width
	m.cfg.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(msg.Height-1, 0))
	m.layout = computeLayout(m.cfg.Game.Arena, m.cfg.Game.Snake.Step, msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	if m.paused || m.layout.tooSmall {
		m.inputFrame.Clear()
		return m, tickCmd(m.id, m.interval)
	}

	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.state = result.State
	m.roundTicks++

	for _, ev := range result.Events {
		if !ev.IsCollision() {
			continue
		}
		m.logger.Info("round over", "reason", ev.Kind, "score", ev.Score, "high_score", m.state.HighScore)
		m.record(ev)
		m.roundTicks = 0
	}

	m.interval = m.difficulty.Interval(m.cfg.Game.Loop.TickInterval, m.state.Score, m.roundTicks)
	return m, tickCmd(m.id, m.interval)
}

// record appends a finished round to the history. Best effort: play
// continues regardless.
func (m Model) record(ev core.Event) {
	if m.cfg.History == nil || ev.Score <= 0 {
		return
	}
	if _, err := m.cfg.History.SaveScore(m.cfg.HistoryID, m.cfg.Player, ev.Score); err != nil {
		m.logger.Warn("score not recorded", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	if m.layout.tooSmall {
		mid := m.screen.Height() / 2
		m.screen.DrawTextCentered(mid-1, "Window too small", core.ColorBrightYellow)
		m.screen.DrawTextCentered(mid, "Resize to continue", core.ColorGray)
		return RenderScreen(m.screen)
	}

	m.screen.DrawBox(m.layout.box, m.border)
	m.scene.Render(m.screen, m.layout.viewport)
	if m.paused {
		m.drawPaused()
	}

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

func (m Model) drawPaused() {
	box := m.layout.box
	mid := box.Y + box.H/2
	lines := []string{"Paused", "Press P to continue"}
	if m.cfg.AllowBack {
		lines = append(lines, "Esc for menu")
	}
	for i, line := range lines {
		x := box.X + (box.W-len(line))/2
		m.screen.DrawText(x, mid-1+i, line, core.ColorBrightYellow)
	}
}

// State returns the game summary after the last tick.
func (m Model) State() core.GameState { return m.state }

// Interval returns the delay before the next tick.
func (m Model) Interval() time.Duration { return m.interval }

func (m Model) Paused() bool { return m.paused }

func (m Model) Game() *snake.Game { return m.game }

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// Run starts a local game in the terminal.
func Run(cfg SessionConfig) error {
	model, err := NewSession(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
