package game

import "github.com/gdamore/tcell/v2"

// Action represents a player-requested game action.
type Action uint8

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionDrop
	ActionReset
	ActionQuit
)

// keyStep is how far one key press moves the drop guide, in world units.
const keyStep = 0.5

// keyToAction maps a tcell key event to a game action.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyLeft:
		return ActionLeft
	case tcell.KeyRight:
		return ActionRight
	case tcell.KeyEnter, tcell.KeyDown:
		return ActionDrop
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	}

	// Rune keys.
	switch ev.Rune() {
	case 'h', 'H', 'a', 'A':
		return ActionLeft
	case 'l', 'L', 'd', 'D':
		return ActionRight
	case ' ', 'j', 'J', 's', 'S':
		return ActionDrop
	case 'r', 'R':
		return ActionReset
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}
