package viewer

import "github.com/gdamore/tcell/v2"

// Action represents a viewer command.
type Action uint8

const (
	ActionNone Action = iota
	ActionRegenerate
	ActionTheme1
	ActionTheme2
	ActionTheme3
	ActionPanN
	ActionPanS
	ActionPanE
	ActionPanW
	ActionInspectNext
	ActionQuit
)

// keyToAction maps a tcell key event to a viewer action.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionPanN
	case tcell.KeyDown:
		return ActionPanS
	case tcell.KeyRight:
		return ActionPanE
	case tcell.KeyLeft:
		return ActionPanW
	case tcell.KeyTab:
		return ActionInspectNext
	case tcell.KeyEscape:
		return ActionQuit
	}

	switch ev.Rune() {
	case ' ':
		return ActionRegenerate
	case '1':
		return ActionTheme1
	case '2':
		return ActionTheme2
	case '3':
		return ActionTheme3
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}
