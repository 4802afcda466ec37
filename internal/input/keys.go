package input

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// Action is a toolbar command that can also be triggered from the keyboard.
type Action int

const (
	ActionNone Action = iota
	ActionUndo
	ActionRedo
	ActionReset
	ActionRun
	ActionCopy
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:  "none",
	ActionUndo:  "undo",
	ActionRedo:  "redo",
	ActionReset: "reset",
	ActionRun:   "run",
	ActionCopy:  "copy",
	ActionQuit:  "quit",
}

func (a Action) String() string { return actionNames[a] }

// ActionForKey maps a key press to an action. Control and Meta are both
// accepted as the platform modifier.
func ActionForKey(e key.Event) Action {
	if e.Direction != key.DirPress && e.Direction != key.DirNone {
		return ActionNone
	}
	platform := e.Modifiers&(key.ModControl|key.ModMeta) != 0
	shift := e.Modifiers&key.ModShift != 0
	r := unicode.ToLower(e.Rune)
	switch {
	case platform && (r == 'z' || e.Code == key.CodeZ):
		if shift {
			return ActionRedo
		}
		return ActionUndo
	case platform && (r == 'y' || e.Code == key.CodeY):
		return ActionRedo
	case platform && (r == 'c' || e.Code == key.CodeC):
		return ActionCopy
	case platform && e.Code == key.CodeReturnEnter:
		return ActionRun
	case platform && e.Code == key.CodeDeleteBackspace:
		return ActionReset
	case !platform && (r == 'q' || e.Code == key.CodeEscape):
		return ActionQuit
	}
	return ActionNone
}
