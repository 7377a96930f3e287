package core

// Action represents a semantic game action, abstracted from physical input.
// Keys, mouse drags and touch swipes all end up as one of these.
type Action int

const (
	ActionNone       Action = iota
	ActionJump              // Tap/Space while grounded
	ActionDoubleJump        // Tap/Space while airborne, once per jump
	ActionDash              // Swipe right, Right arrow, D
	ActionDuckStart         // Swipe down, Down arrow, S
	ActionDuckEnd           // Release after a duck swipe
	ActionBack              // Tab - leaderboards, back out of them
	ActionRestart           // R key - restart after game over
	ActionQuit              // Q, Ctrl+C - exit game/session
	ActionPause             // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionDoubleJump:
		return "DoubleJump"
	case ActionDash:
		return "Dash"
	case ActionDuckStart:
		return "DuckStart"
	case ActionDuckEnd:
		return "DuckEnd"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were triggered since the previous tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// JumpHoldMs is how long the press behind a jump lasted, in milliseconds.
	JumpHoldMs float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Merge copies all actions from other into this frame.
func (f *InputFrame) Merge(other InputFrame) {
	for k, v := range other.Actions {
		if v {
			f.Set(k)
		}
	}
	if other.JumpHoldMs > f.JumpHoldMs {
		f.JumpHoldMs = other.JumpHoldMs
	}
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.JumpHoldMs = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.JumpHoldMs = f.JumpHoldMs
	return clone
}
