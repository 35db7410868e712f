// Package tui runs the snake in a terminal through Bubble Tea: the tick
// loop, key bindings, rendering of the scene and the Wish SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Session tells which
// game asked for it: a game left for the menu may still have one in flight
// when the next game starts.
type TickMsg struct {
	Session uint64
	Time    time.Time
}

var lastSession atomic.Uint64

func nextSessionID() uint64 {
	return lastSession.Add(1)
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
// The model asks for the next tick when it handles this one, so a changed
// interval takes effect immediately.
func tickCmd(session uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Session: session, Time: t}
	})
}
