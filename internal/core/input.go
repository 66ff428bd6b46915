package core

// Action is a semantic player intent, abstracted from key presses and
// mouse clicks.
type Action int

const (
	ActionNone    Action = iota
	ActionTap            // 1-4 or a click on a tile
	ActionPause          // P, Escape
	ActionHint           // H
	ActionRestart        // R after game over
	ActionBack           // B, back to the menu
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTap:
		return "Tap"
	case ActionPause:
		return "Pause"
	case ActionHint:
		return "Hint"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is one decoded player input.
type Input struct {
	Action Action
	Tile   int // Zero-based tile for ActionTap
}

// Tap returns the input for tapping tile.
func Tap(tile int) Input {
	return Input{Action: ActionTap, Tile: tile}
}

// Is reports whether the input carries action a.
func (in Input) Is(a Action) bool {
	return in.Action == a
}
