package rush

import (
	"testing"

	"github.com/vovakirdan/reindeer-rush/internal/config"
)

// recorder collects cues and run reports.
type recorder struct {
	cues    []Cue
	reports []CollisionReason
	dist    float64
}

func (r *recorder) Cue(c Cue) { r.cues = append(r.cues, c) }

func (r *recorder) ReportRunEnded(distance float64, reason CollisionReason) {
	r.reports = append(r.reports, reason)
	r.dist = distance
}

func (r *recorder) count(c Cue) int {
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

// newTestSim starts a run with the embedded defaults. mutate may adjust the
// config before the simulation is built.
func newTestSim(t *testing.T, rng Random, mutate func(*config.RushConfig)) (*Simulation, *recorder) {
	t.Helper()
	cfg := config.DefaultRushConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	sim := NewSimulation(cfg, rng)
	rec := &recorder{}
	sim.SetCueSink(rec)
	sim.SetReporter(rec)
	sim.StartGame()
	return sim, rec
}

func withoutSnowmen(cfg *config.RushConfig) {
	cfg.Snowman.Enabled = false
}

// gapsOf returns the gaps between consecutive pieces.
func gapsOf(platforms []Platform) []float64 {
	var gaps []float64
	for i := 1; i < len(platforms); i++ {
		gaps = append(gaps, Gap(platforms[i-1], platforms[i]))
	}
	return gaps
}
