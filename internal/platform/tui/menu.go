package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// MenuItem is one entry of the start menu: a difficulty to play, or the
// score history.
type MenuItem struct {
	Title      string
	Difficulty config.DifficultyPreset
	History    bool
}

// DefaultMenuItems lists the presets in order of pace, then the history.
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Title: "Play", Difficulty: config.DifficultyNormal},
		{Title: "Play (easy)", Difficulty: config.DifficultyEasy},
		{Title: "Play (hard)", Difficulty: config.DifficultyHard},
		{Title: "High scores", History: true},
	}
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	highScore int
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem // Set when user picks an entry
}

// NewMenuModel creates a new menu model. highScore is shown as a banner.
func NewMenuModel(width, height, highScore int) MenuModel {
	return MenuModel{
		items:     DefaultMenuItems(),
		width:     width,
		height:    height,
		highScore: highScore,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case HighScoreMsg:
		if int(msg) > m.highScore {
			m.highScore = int(msg)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(overlayStyle.Render(centerText("  S N A K E  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("High score: %d", m.highScore), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(centerText("Up/Down: Navigate  |  Enter: Select  |  Q: Quit", m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the picked entry, or nil if none yet.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width. Styled text is measured
// without its escape sequences.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
