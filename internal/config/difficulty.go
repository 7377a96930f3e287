package config

// DifficultyManager maps run progress to a level in [0, 1] and derives the
// speed and gap tuning from it.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = clampF(cfg.InitialLevel, 0, 1)
	return &DifficultyManager{cfg: cfg}
}

// Enabled reports whether the level ramps during a run.
func (d *DifficultyManager) Enabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty for a run that is meters past the intro
// milestone after seconds of play. It starts at the initial level and
// reaches 1 at Progression.MaxAt.
func (d *DifficultyManager) Level(meters, seconds float64) float64 {
	if !d.Enabled() {
		return d.cfg.InitialLevel
	}
	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "distance":
		progress = meters / maxAt
	case "time":
		progress = seconds / maxAt
	default:
		return d.cfg.InitialLevel
	}
	return lerp(d.cfg.InitialLevel, 1, progress)
}

// Speed returns the run speed scaled by the difficulty level.
func (d *DifficultyManager) Speed(baseSpeed, level float64) float64 {
	return baseSpeed * (1 + clampF(level, 0, 1)*d.cfg.Scaling.SpeedMultiplier)
}

// GapChance returns the probability that a cluster boundary opens a real gap.
func (d *DifficultyManager) GapChance(level float64) float64 {
	s := d.cfg.Scaling
	return lerp(s.GapChanceMin, s.GapChanceMax, level)
}

// GapSpan returns the upper gap bound for the level; the lower bound stays gapMin.
// At level 0 only the first GapSpread share of the range is used.
func (d *DifficultyManager) GapSpan(gapMin, gapMax, level float64) float64 {
	share := lerp(d.cfg.Scaling.GapSpread, 1, level)
	return gapMin + (gapMax-gapMin)*share
}

// lerp interpolates from a to b with t clamped to [0, 1].
func lerp(a, b, t float64) float64 {
	return a + (b-a)*clampF(t, 0, 1)
}
