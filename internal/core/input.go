package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone  Action = iota
	ActionUp           // W, Up arrow
	ActionDown         // S, Down arrow
	ActionLeft         // A, Left arrow
	ActionRight        // D, Right arrow
	ActionPause        // P - pause/unpause (handled by the platform)
	ActionQuit         // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Heading returns the heading a direction action asks for.
// ok is false for actions that are not directions.
func (a Action) Heading() (h Heading, ok bool) {
	switch a {
	case ActionUp:
		return HeadingUp, true
	case ActionDown:
		return HeadingDown, true
	case ActionLeft:
		return HeadingLeft, true
	case ActionRight:
		return HeadingRight, true
	}
	return 0, false
}

// InputFrame collects the actions triggered between two simulation ticks.
// Actions keep their arrival order: two quick key presses inside one tick
// are applied in the order the player made them.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records an action for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = nil
}
