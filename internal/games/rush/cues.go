package rush

import "github.com/vovakirdan/reindeer-rush/internal/core"

// Cue is a discrete audio event.
type Cue string

const (
	CueMusicStart Cue = "music-start"
	CueJump       Cue = "jump"
	CueDashCoin   Cue = "dash-coin"
	CueDeath      Cue = "death"
)

// CueSink receives audio cues. Implementations must not block.
type CueSink interface {
	Cue(c Cue)
}

// CueFunc adapts a function to CueSink.
type CueFunc func(c Cue)

// Cue implements CueSink.
func (f CueFunc) Cue(c Cue) { f(c) }

// RunReporter is told once when a run ends.
type RunReporter interface {
	ReportRunEnded(distance float64, reason CollisionReason)
}

// ReporterFunc adapts a function to RunReporter.
type ReporterFunc func(distance float64, reason CollisionReason)

// ReportRunEnded implements RunReporter.
func (f ReporterFunc) ReportRunEnded(distance float64, reason CollisionReason) {
	f(distance, reason)
}

// IntentSource buffers player intents between ticks.
// The Interpreter implements it.
type IntentSource interface {
	// Drain returns and clears the buffered intents.
	Drain() core.InputFrame
	// SetGrounded mirrors the player's grounded state.
	SetGrounded(grounded bool)
}
