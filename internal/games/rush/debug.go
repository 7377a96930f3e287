package rush

import (
	"math"
	"slices"

	"github.com/vovakirdan/reindeer-rush/internal/core"
)

// Inspection and test hooks. All of them are safe on a nil or idle
// *Simulation and return zero values there.

// SpacingReport summarizes the distance between consecutive snowmen.
type SpacingReport struct {
	MinGap      float64 `json:"minGap"` // 0 with fewer than two snowmen
	ScreenWidth float64 `json:"screenWidth"`
	Count       int     `json:"count"`
}

// GroundMetrics describes ground piece sizing.
type GroundMetrics struct {
	BaseWidth float64 `json:"baseWidth"`
	Frontier  float64 `json:"frontier"`
}

// IntroStatus reports the intro gate.
type IntroStatus struct {
	SnowmanUnlocked bool    `json:"snowmanUnlocked"`
	UnlockX         float64 `json:"unlockX"`
}

// Platforms returns a copy of the active ground pieces.
func (s *Simulation) Platforms() []Platform {
	if s == nil {
		return nil
	}
	return slices.Clone(s.platforms)
}

// Ledges returns a copy of the active intro ledges.
func (s *Simulation) Ledges() []Ledge {
	if s == nil {
		return nil
	}
	return slices.Clone(s.ledges)
}

// Snowmen returns a copy of the live snowmen.
func (s *Simulation) Snowmen() []Snowman {
	if s == nil {
		return nil
	}
	return slices.Clone(s.snowmen)
}

// Player returns the player.
func (s *Simulation) Player() Player {
	if s == nil {
		return Player{}
	}
	return s.player
}

// Camera returns the camera.
func (s *Simulation) Camera() Camera {
	if s == nil {
		return Camera{}
	}
	return s.camera
}

// ScrollX returns the world x of the viewport's left edge.
func (s *Simulation) ScrollX() float64 {
	if s == nil {
		return 0
	}
	return s.scrollX
}

// ClearPlatforms removes all ground and pauses generation.
// The next piece will be generated at the viewport's left edge.
func (s *Simulation) ClearPlatforms() {
	if s == nil {
		return
	}
	s.platforms = nil
	s.ledges = nil
	s.gen.Reset(s.scrollX)
	s.frozen = true
}

// EnablePlatformBuffer switches to open generation where every cluster
// boundary is a gap and plans a batch of islands.
func (s *Simulation) EnablePlatformBuffer() {
	if s == nil {
		return
	}
	s.gen.SetOpen(true)
	s.platforms = append(s.platforms, s.gen.PlanIslands(s.cfg.Ground.BufferIslands)...)
	s.frozen = false
}

// SetSinglePlatformForTest replaces the ground with one long piece at
// surfaceY and stands the player on it.
func (s *Simulation) SetSinglePlatformForTest(surfaceY float64) {
	if s == nil {
		return
	}
	x := s.scrollX - s.screenW
	w := 8 * s.screenW
	s.platforms = []Platform{{
		X:        x,
		SurfaceY: surfaceY,
		Width:    w,
		Scale:    1,
		Spans:    []Span{{Start: x, End: x + w}},
	}}
	s.ledges = nil
	s.frozen = true

	s.player.Y = surfaceY
	s.player.VY = 0
	s.player.Grounded = true
	s.player.DoubleJumpUsed = false
	s.lastSurfaceY = surfaceY
	s.fallMs = 0
	if s.intents != nil {
		s.intents.SetGrounded(true)
	}
}

// DropAllPlatforms removes every surface so the player falls.
func (s *Simulation) DropAllPlatforms() {
	if s == nil {
		return
	}
	s.platforms = nil
	s.ledges = nil
	s.frozen = true
}

// SpawnSnowmanForTest places a snowman offsetX from the player on the
// player's current surface, ignoring spacing and the intro gate.
func (s *Simulation) SpawnSnowmanForTest(offsetX float64) (Snowman, bool) {
	if s == nil || s.state != StateRunning {
		return Snowman{}, false
	}
	x := s.scrollX + s.player.X + offsetX
	idx := -1
	for i, p := range s.platforms {
		if x >= p.X && x <= p.Right() {
			idx = i
			break
		}
	}
	sm := s.spawner.Place(x, s.lastSurfaceY, idx)
	s.snowmen = append(s.snowmen, sm)
	return sm, true
}

// TriggerDash queues a dash for the next tick.
func (s *Simulation) TriggerDash() {
	if s == nil {
		return
	}
	s.pending.Set(core.ActionDash)
}

// TestSnowmanSpacing measures the live snowmen.
func (s *Simulation) TestSnowmanSpacing() SpacingReport {
	if s == nil {
		return SpacingReport{}
	}
	xs := make([]float64, 0, len(s.snowmen))
	for _, sm := range s.snowmen {
		xs = append(xs, sm.X)
	}
	slices.Sort(xs)

	r := SpacingReport{ScreenWidth: s.screenW, Count: len(xs)}
	if len(xs) < 2 {
		return r
	}
	r.MinGap = math.Inf(1)
	for i := 1; i < len(xs); i++ {
		r.MinGap = math.Min(r.MinGap, xs[i]-xs[i-1])
	}
	return r
}

// StepForTest advances by deltaMs without the frame clamp.
func (s *Simulation) StepForTest(deltaMs float64) []Cue {
	if s == nil || deltaMs <= 0 {
		return nil
	}
	return s.advance(deltaMs)
}

// MeasureJumpArcForTest integrates a single jump from the player's
// height without touching the run.
func (s *Simulation) MeasureJumpArcForTest() JumpArc {
	if s == nil {
		return JumpArc{}
	}
	startY := s.cfg.Ground.BaseY
	if s.state == StateRunning {
		startY = s.player.Y
	}
	return s.kin.MeasureJumpArc(startY)
}

// DescribeIntroSteps lays out count intro ledges every screens viewport
// widths. Zero values use the configured layout.
func (s *Simulation) DescribeIntroSteps(screens float64, count int) []IntroStep {
	if s == nil {
		return nil
	}
	return s.describeIntroSteps(s.kin.Anchor(), screens, count)
}

// GroundMetrics returns ground sizing.
func (s *Simulation) GroundMetrics() GroundMetrics {
	if s == nil {
		return GroundMetrics{}
	}
	return GroundMetrics{BaseWidth: s.gen.BaseWidth(), Frontier: s.gen.Frontier()}
}

// IntroStatus returns the intro gate.
func (s *Simulation) IntroStatus() IntroStatus {
	if s == nil {
		return IntroStatus{}
	}
	return IntroStatus{SnowmanUnlocked: s.unlocked, UnlockX: s.unlockX}
}

// SnowmanMetrics returns snowman sizing.
func (s *Simulation) SnowmanMetrics() SnowmanMetrics {
	if s == nil {
		return SnowmanMetrics{}
	}
	return s.spawner.Metrics()
}

// TriggerDeathForTest ends a running run as if a snowman was hit.
func (s *Simulation) TriggerDeathForTest() {
	if s == nil {
		return
	}
	s.end(ReasonHitSnowman)
}
