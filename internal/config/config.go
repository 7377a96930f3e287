// Package config provides YAML-based configuration loading and difficulty
// management for the Reindeer Rush runner.
package config

import "math"

// RushConfig contains all tunables of the runner simulation.
type RushConfig struct {
	Viewport   ViewportConfig   `yaml:"viewport"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Dash       DashConfig       `yaml:"dash"`
	Ground     GroundConfig     `yaml:"ground"`
	Intro      IntroConfig      `yaml:"intro"`
	Player     PlayerConfig     `yaml:"player"`
	Camera     CameraConfig     `yaml:"camera"`
	Fall       FallConfig       `yaml:"fall"`
	Snowman    SnowmanConfig    `yaml:"snowman"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ViewportConfig is the logical playfield size in world pixels.
// Terminal front-ends override the width from the window size.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines the player's kinematics. Units are px and seconds.
type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity"`
	JumpImpulse       float64 `yaml:"jump_impulse"`        // negative is up
	DoubleJumpImpulse float64 `yaml:"double_jump_impulse"` // negative is up
	MaxFallSpeed      float64 `yaml:"max_fall_speed"`
	RunSpeed          float64 `yaml:"run_speed"`
	HoldBoost         float64 `yaml:"hold_boost"`  // extra impulse fraction at full hold
	MaxHoldMs         float64 `yaml:"max_hold_ms"` // press length giving the full boost
	StepUp            float64 `yaml:"step_up"`     // max surface change followed while running
	MaxFrameMs        float64 `yaml:"max_frame_ms"`
}

// ReachShare is the part of the double-jump reach a cluster gap may use.
const ReachShare = 0.9

// JumpReach is the horizontal distance covered at speed by a jump followed
// by a double jump at the apex, landing back at the takeoff height.
func (p PhysicsConfig) JumpReach(speed float64) float64 {
	up1 := -p.JumpImpulse / p.Gravity
	up2 := -p.DoubleJumpImpulse / p.Gravity
	height := (p.JumpImpulse*p.JumpImpulse + p.DoubleJumpImpulse*p.DoubleJumpImpulse) / (2 * p.Gravity)
	down := math.Sqrt(2 * height / p.Gravity)
	return speed * (up1 + up2 + down)
}

// DashConfig defines the dash offset curve and its reward.
type DashConfig struct {
	Amplitude  float64 `yaml:"amplitude"`
	DurationMs float64 `yaml:"duration_ms"`
	Bonus      int     `yaml:"bonus"`
}

// GroundConfig defines procedural island generation.
type GroundConfig struct {
	SpriteWidth      float64 `yaml:"sprite_width"`
	PiecesPerScreen  float64 `yaml:"pieces_per_screen"`
	ClusterMin       int     `yaml:"cluster_min"`
	ClusterMax       int     `yaml:"cluster_max"`
	GapMin           float64 `yaml:"gap_min"`
	GapMax           float64 `yaml:"gap_max"`
	MinGap           float64 `yaml:"min_gap"`
	JitterY          float64 `yaml:"jitter_y"`
	DriftY           float64 `yaml:"drift_y"`
	WalkY            float64 `yaml:"walk_y"`
	MinY             float64 `yaml:"min_y"`
	MaxY             float64 `yaml:"max_y"`
	BaseY            float64 `yaml:"base_y"`
	ScaleMin         float64 `yaml:"scale_min"`
	ScaleMax         float64 `yaml:"scale_max"`
	ConnectorMax     float64 `yaml:"connector_max"`
	LookaheadScreens float64 `yaml:"lookahead_screens"`
	BufferIslands    int     `yaml:"buffer_islands"`
	FeetInset        float64 `yaml:"feet_inset"`
	// Mask is the top alpha row of the ground sprite: '#' or '1' opaque.
	// Empty means the whole piece is walkable.
	Mask string `yaml:"mask"`
}

// IntroConfig defines the scripted opening of a run.
type IntroConfig struct {
	MilestoneMeters float64   `yaml:"milestone_meters"`
	StartScreens    float64   `yaml:"start_screens"`
	StepScreens     float64   `yaml:"step_screens"`
	StepHeights     []float64 `yaml:"step_heights"`
	LedgeWidth      float64   `yaml:"ledge_width"`
	LedgeThickness  float64   `yaml:"ledge_thickness"`
}

// PlayerConfig defines the player's placement and hitbox.
type PlayerConfig struct {
	X         float64 `yaml:"x"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	DuckScale float64 `yaml:"duck_scale"`
	DuckMs    float64 `yaml:"duck_ms"`
}

// CameraConfig defines vertical camera smoothing.
type CameraConfig struct {
	Baseline float64 `yaml:"baseline"`
	Ease     float64 `yaml:"ease"`
}

// FallConfig defines the fall-off grace window.
type FallConfig struct {
	Tolerance float64 `yaml:"tolerance"`
	GraceMs   float64 `yaml:"grace_ms"`
	KillDepth float64 `yaml:"kill_depth"`
}

// SnowmanConfig defines obstacle sizing and spacing.
type SnowmanConfig struct {
	Enabled             bool    `yaml:"enabled"`
	SpriteWidth         float64 `yaml:"sprite_width"`
	SpriteHeight        float64 `yaml:"sprite_height"`
	DrawHeight          float64 `yaml:"draw_height"`
	HitboxScale         float64 `yaml:"hitbox_scale"`
	MinBottomPadding    float64 `yaml:"min_bottom_padding"`
	PaddingRatio        float64 `yaml:"padding_ratio"`
	SpacingScreens      float64 `yaml:"spacing_screens"`
	ExtraSpacingScreens float64 `yaml:"extra_spacing_screens"`
}

// ScoringConfig converts travelled pixels to meters.
type ScoringConfig struct {
	PxPerMeter float64 `yaml:"px_per_meter"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a run.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "distance", "time", or "none"
	MaxAt float64 `yaml:"max_at"` // meters past the milestone, or seconds, at max difficulty
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to run speed at max difficulty
	GapChanceMin    float64 `yaml:"gap_chance_min"`   // Chance of a real gap right after the milestone
	GapChanceMax    float64 `yaml:"gap_chance_max"`   // Chance of a real gap at max difficulty
	GapSpread       float64 `yaml:"gap_spread"`       // Share of the gap range available at level 0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty input yields "", true.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
