package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.snake/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game is the configuration every session plays with. Its storage
	// section locates the shared high-score file and history database.
	Game config.SnakeConfig

	// Logger defaults to timestamped output on stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultSnakeConfig(),
	}
}

// SSHServer wraps a Wish SSH server where every session plays its own
// snake against one shared high score.
type SSHServer struct {
	config     SSHServerConfig
	server     *ssh.Server
	highScores *storage.FileStore
	history    *storage.Store
	hub        *highScoreHub
	logger     *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// The high-score file must already be readable.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "snake-ssh",
		})
	}

	if err := config.Validate(cfg.Game); err != nil {
		return nil, err
	}

	highScores, err := storage.NewFileStore(cfg.Game.Storage.HighScoreFile)
	if err != nil {
		return nil, err
	}
	if _, err := highScores.Load(); err != nil {
		return nil, err
	}

	srv := &SSHServer{
		config:     cfg,
		highScores: highScores,
		hub:        newHighScoreHub(),
		logger:     logger,
	}

	// Open history; the server still works without it
	if cfg.Game.Storage.HistoryDB != "" {
		history, histErr := storage.Open(cfg.Game.Storage.HistoryDB)
		if histErr != nil {
			logger.Warn("could not open scores database", "error", histErr)
		} else {
			srv.history = history
		}
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.closeHistory()
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".snake", "host_key")
	}

	// Ensure host key directory exists
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		srv.closeHistory()
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeHistory()
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	updates := s.hub.subscribe()
	go func() {
		<-sshSession.Context().Done()
		s.hub.unsubscribe(updates)
	}()

	high, err := s.highScores.Load()
	if err != nil {
		s.logger.Warn("cannot read high score", "user", sshSession.User(), "error", err)
	}

	model := NewSessionModel(SessionDeps{
		Game:       s.config.Game,
		HighScores: s.highScores,
		History:    s.history,
		Logger:     s.logger.With("user", sshSession.User()),
		Updates:    updates,
	}, sshSession.User(), pty.Window.Width, pty.Window.Height, high)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// watchHighScore pushes every change of the high-score file to the
// sessions. Sessions write the file when they beat the record, so this is
// also how one player's record reaches the others.
func (s *SSHServer) watchHighScore(ctx context.Context) {
	err := s.highScores.Watch(ctx, func(score int, err error) {
		if err != nil {
			// A rewrite shows up as a truncate followed by a write.
			s.logger.Debug("high score file unreadable", "error", err)
			return
		}
		s.logger.Info("high score changed", "score", score)
		s.hub.broadcast(score)
	})
	if err != nil {
		s.logger.Warn("not watching high score file", "path", s.highScores.Path(), "error", err)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "high_score_file", s.highScores.Path())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.watchHighScore(ctx)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
	case err := <-serveErr:
		s.logger.Error("server error", "error", err)
		s.closeHistory()
		return err
	}
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeHistory()
	return err
}

func (s *SSHServer) closeHistory() {
	if s.history != nil {
		s.history.Close()
		s.history = nil
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// highScoreHub fans high-score changes out to every connected session.
// Each subscriber holds at most one pending value; a newer score replaces
// an unread older one.
type highScoreHub struct {
	mu   sync.Mutex
	subs map[chan int]struct{}
}

func newHighScoreHub() *highScoreHub {
	return &highScoreHub{subs: make(map[chan int]struct{})}
}

func (h *highScoreHub) subscribe() chan int {
	ch := make(chan int, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *highScoreHub) unsubscribe(ch chan int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

func (h *highScoreHub) broadcast(score int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- score:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- score:
			default:
			}
		}
	}
}

func (h *highScoreHub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// SessionDeps is what the server shares with every session.
type SessionDeps struct {
	Game       config.SnakeConfig
	HighScores *storage.FileStore
	History    *storage.Store
	Logger     *log.Logger
	Updates    <-chan int
}

// SessionModel manages one SSH session: menu -> game or history -> menu.
type SessionModel struct {
	deps     SessionDeps
	username string
	width    int
	height   int

	menu    MenuModel
	game    *Model
	history *HistoryModel
	err     error // last failure to start a game, shown under the menu

	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps SessionDeps, username string, width, height, highScore int) SessionModel {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	return SessionModel{
		deps:     deps,
		username: username,
		width:    width,
		height:   height,
		menu:     NewMenuModel(width, height, highScore),
	}
}

// Init starts listening for high-score changes.
func (m SessionModel) Init() tea.Cmd {
	return waitForHighScore(m.deps.Updates)
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case HighScoreMsg:
		// Forward to whichever screen is up, then keep listening.
		m.menu.highScore = max(m.menu.highScore, int(msg))
		if m.game != nil {
			m.game.game.Scoreboard().Observe(int(msg))
		}
		return m, waitForHighScore(m.deps.Updates)
	}

	switch {
	case m.game != nil:
		return m.updateGame(msg)
	case m.history != nil:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}
	m.menu.selected = nil

	if selected.History {
		history := NewHistoryModel(m.deps.History, m.width, m.height)
		m.history = &history
		return m, history.Init()
	}

	return m.startGame(selected.Difficulty)
}

func (m SessionModel) startGame(preset config.DifficultyPreset) (tea.Model, tea.Cmd) {
	cfg := m.deps.Game
	config.ApplyPreset(&cfg, preset)

	// Some clients send no window size with the PTY request.
	runtime := core.DefaultConfig()
	if m.width > 0 && m.height > 0 {
		runtime.ScreenW, runtime.ScreenH = m.width, m.height
	}

	game, err := NewSession(SessionConfig{
		Game:       cfg,
		Runtime:    runtime,
		HighScores: m.deps.HighScores,
		History:    m.deps.History,
		HistoryID:  preset.HistoryID(),
		Player:     m.username,
		Logger:     m.deps.Logger,
		AllowBack:  true,
	})
	if err != nil {
		m.deps.Logger.Error("cannot start game", "error", err)
		m.err = err
		return m, nil
	}

	m.err = nil
	m.game = &game
	return m, game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.menu.highScore = max(m.menu.highScore, m.game.State().HighScore)
		m.game = nil
		return m, nil
	}

	return m, cmd
}

func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if historyModel, ok := newModel.(HistoryModel); ok {
		m.history = &historyModel
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.history.IsGoingBack() {
		m.history = nil
		return m, nil
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.game != nil:
		return m.game.View()
	case m.history != nil:
		return m.history.View()
	}

	view := m.menu.View()
	if m.err != nil {
		view += "\n" + overlayStyle.Render(centerText("Cannot start: "+m.err.Error(), m.width))
	}
	return view
}

// InGame reports whether a game is running.
func (m SessionModel) InGame() bool { return m.game != nil }

// InHistory reports whether the history view is up.
func (m SessionModel) InHistory() bool { return m.history != nil }
