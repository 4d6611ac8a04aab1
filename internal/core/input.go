package core

// Action represents a semantic simulator action, abstracted from physical key presses.
// Shells translate their own key events into actions; the world only understands
// the four directional ones.
type Action int

const (
	ActionNone  Action = iota
	ActionUp           // Up arrow - move up one cell
	ActionDown         // Down arrow - move down one cell
	ActionLeft         // Left arrow - move left one cell
	ActionRight        // Right arrow - move right one cell
	ActionQuit         // Q, Esc, Ctrl+C - handled by the shell, never by the world
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
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Delta returns the unit grid offset for a directional action.
// ok is false for every non-directional action.
func (a Action) Delta() (dx, dy int, ok bool) {
	switch a {
	case ActionUp:
		return 0, -1, true
	case ActionDown:
		return 0, 1, true
	case ActionLeft:
		return -1, 0, true
	case ActionRight:
		return 1, 0, true
	default:
		return 0, 0, false
	}
}

// IsDirectional reports whether the action moves the robot.
func (a Action) IsDirectional() bool {
	_, _, ok := a.Delta()
	return ok
}
