package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/reindeer-rush/internal/core"
	"github.com/vovakirdan/reindeer-rush/internal/games/rush"
)

// KeyMapper translates Bubble Tea key and mouse messages to runner input.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case " ", "up", "w", "k":
		return core.ActionJump, false
	case "right", "d", "l":
		return core.ActionDash, false
	case "down", "s", "j":
		return core.ActionDuckStart, false
	case "p", "esc":
		return core.ActionPause, false
	case "r", "enter":
		return core.ActionRestart, false
	case "tab":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// PointerPhase is the stage of a pointer gesture.
type PointerPhase int

const (
	PointerNone PointerPhase = iota
	PointerDown
	PointerMove
	PointerUp
)

// MapMouse converts a left-button mouse message into a pointer event in
// world pixels. Other buttons map to PointerNone.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, nowMs float64) (PointerPhase, rush.PointerEvent) {
	ev := rush.PointerEvent{
		ID:     1,
		X:      float64(msg.X*rush.CellWidthPx) + rush.CellWidthPx/2,
		Y:      float64(msg.Y*rush.CellHeightPx) + rush.CellHeightPx/2,
		TimeMs: nowMs,
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			return PointerDown, ev
		}
	case tea.MouseActionMotion:
		return PointerMove, ev
	case tea.MouseActionRelease:
		return PointerUp, ev
	}
	return PointerNone, ev
}

// Feed routes a pointer phase into the interpreter.
func Feed(in *rush.Interpreter, phase PointerPhase, ev rush.PointerEvent) {
	if in == nil {
		return
	}
	switch phase {
	case PointerDown:
		in.PointerDown(ev)
	case PointerMove:
		in.PointerMove(ev)
	case PointerUp:
		in.PointerUp(ev)
	}
}
