package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tapsy/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to game inputs.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game input.
// Returns the input (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (in core.Input, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.Input{Action: core.ActionQuit}, true
	case "1", "2", "3", "4":
		return core.Tap(int(msg.String()[0] - '1')), false
	case "p", "esc":
		return core.Input{Action: core.ActionPause}, false
	case "h":
		return core.Input{Action: core.ActionHint}, false
	case "r", "enter":
		return core.Input{Action: core.ActionRestart}, false
	case "b":
		return core.Input{Action: core.ActionBack}, false
	}
	return core.Input{}, false
}

// MapMouse translates a left click inside a tile rectangle to a tap.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, layout Layout) core.Input {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return core.Input{}
	}
	if tile := layout.TileAt(msg.X, msg.Y); tile >= 0 {
		return core.Tap(tile)
	}
	return core.Input{}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
