package rush

import (
	"math"

	"github.com/vovakirdan/reindeer-rush/internal/core"
)

// Swipe thresholds in screen pixels.
const (
	SwipeRightThreshold = 48
	SwipeDownThreshold  = 36
	MaxDiagonal         = 90
)

// PointerEvent is a raw pointer sample. TimeMs is any monotonic clock.
type PointerEvent struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	TimeMs float64 `json:"t"`
}

type swipeKind int

const (
	swipeNone swipeKind = iota
	swipeDash
	swipeDuck
)

// GestureState is a read-only view of the interpreter.
type GestureState struct {
	PointerActive bool
	PointerID     int
	Swipe         string
	Ducking       bool
	Grounded      bool
	DoubleUsed    bool
}

// Interpreter turns pointer and key events into intents. It never touches
// the simulation; the next tick drains what it buffered.
type Interpreter struct {
	grounded   bool
	doubleUsed bool

	pointerActive bool
	pointerID     int
	startX        float64
	startY        float64
	startTime     float64
	swipe         swipeKind
	ducking       bool

	duckMs    float64
	duckUntil float64 // end of a key-triggered duck, 0 when none

	pending core.InputFrame
}

// NewInterpreter creates an interpreter. duckMs is how long a key-triggered duck lasts.
func NewInterpreter(duckMs float64) *Interpreter {
	return &Interpreter{
		grounded: true,
		duckMs:   duckMs,
		pending:  core.NewInputFrame(),
	}
}

// SetGrounded mirrors the player's grounded state.
func (in *Interpreter) SetGrounded(grounded bool) {
	in.grounded = grounded
	if grounded {
		in.doubleUsed = false
	}
}

// Drain returns the buffered intents and clears the buffer.
func (in *Interpreter) Drain() core.InputFrame {
	out := in.pending
	in.pending = core.NewInputFrame()
	return out
}

// PointerDown starts tracking a pointer. A second pointer is ignored
// while one is active.
func (in *Interpreter) PointerDown(ev PointerEvent) {
	if in.pointerActive && ev.ID != in.pointerID {
		return
	}
	in.pointerActive = true
	in.pointerID = ev.ID
	in.startX = ev.X
	in.startY = ev.Y
	in.startTime = ev.TimeMs
	in.swipe = swipeNone
}

// PointerMove classifies the drag. The first classification sticks until release.
func (in *Interpreter) PointerMove(ev PointerEvent) {
	if !in.pointerActive || ev.ID != in.pointerID || in.swipe != swipeNone {
		return
	}
	dx := ev.X - in.startX
	dy := ev.Y - in.startY

	switch {
	case dx > SwipeRightThreshold && math.Abs(dy) < MaxDiagonal:
		in.swipe = swipeDash
		in.pending.Set(core.ActionDash)
	case dy > SwipeDownThreshold && math.Abs(dx) < MaxDiagonal:
		in.swipe = swipeDuck
		in.startDuck()
	}
}

// PointerUp finishes a gesture. Without a swipe it is a jump press whose
// hold duration is passed along.
func (in *Interpreter) PointerUp(ev PointerEvent) {
	if !in.pointerActive || ev.ID != in.pointerID {
		return
	}
	switch in.swipe {
	case swipeDuck:
		in.endDuck()
	case swipeDash:
		// dispatched on move
	default:
		in.press(ev.TimeMs - in.startTime)
	}
	in.release()
}

// PointerCancel drops the active pointer, ending a swipe duck.
func (in *Interpreter) PointerCancel() {
	if in.swipe == swipeDuck {
		in.endDuck()
	}
	in.release()
}

// KeyJump is a jump key press with no hold.
func (in *Interpreter) KeyJump() {
	in.press(0)
}

// KeyDash is a dash key press.
func (in *Interpreter) KeyDash() {
	in.pending.Set(core.ActionDash)
}

// KeyDuck starts a duck that ends duckMs after nowMs.
func (in *Interpreter) KeyDuck(nowMs float64) {
	in.startDuck()
	in.duckUntil = nowMs + in.duckMs
}

// Advance ends a key-triggered duck once its time is up.
func (in *Interpreter) Advance(nowMs float64) {
	if in.duckUntil > 0 && nowMs >= in.duckUntil {
		in.duckUntil = 0
		if in.swipe != swipeDuck {
			in.endDuck()
		}
	}
}

// State returns a snapshot of the interpreter.
func (in *Interpreter) State() GestureState {
	names := map[swipeKind]string{swipeNone: "", swipeDash: "dash", swipeDuck: "duck"}
	return GestureState{
		PointerActive: in.pointerActive,
		PointerID:     in.pointerID,
		Swipe:         names[in.swipe],
		Ducking:       in.ducking,
		Grounded:      in.grounded,
		DoubleUsed:    in.doubleUsed,
	}
}

func (in *Interpreter) press(heldMs float64) {
	switch {
	case in.grounded:
		in.pending.Set(core.ActionJump)
	case !in.doubleUsed:
		in.doubleUsed = true
		in.pending.Set(core.ActionDoubleJump)
	default:
		return
	}
	in.pending.JumpHoldMs = math.Max(0, heldMs)
}

func (in *Interpreter) startDuck() {
	if in.ducking {
		return
	}
	in.ducking = true
	in.pending.Set(core.ActionDuckStart)
}

func (in *Interpreter) endDuck() {
	if !in.ducking {
		return
	}
	in.ducking = false
	in.duckUntil = 0
	in.pending.Set(core.ActionDuckEnd)
}

func (in *Interpreter) release() {
	in.pointerActive = false
	in.pointerID = 0
	in.swipe = swipeNone
}
