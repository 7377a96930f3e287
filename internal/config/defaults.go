package config

import (
	_ "embed"
)

//go:embed defaults/rush.yaml
var defaultRushYAML []byte

// DefaultRushConfig returns the built-in runner configuration.
// It mirrors defaults/rush.yaml and is used when the embedded file fails to parse.
func DefaultRushConfig() RushConfig {
	return RushConfig{
		Viewport: ViewportConfig{
			Width:  960,
			Height: 540,
		},
		Physics: PhysicsConfig{
			Gravity:           2400,
			JumpImpulse:       -820,
			DoubleJumpImpulse: -700,
			MaxFallSpeed:      1600,
			RunSpeed:          380,
			HoldBoost:         0.15,
			MaxHoldMs:         220,
			StepUp:            36,
			MaxFrameMs:        100,
		},
		Dash: DashConfig{
			Amplitude:  70,
			DurationMs: 420,
			Bonus:      25,
		},
		Ground: GroundConfig{
			SpriteWidth:      200,
			PiecesPerScreen:  4.5,
			ClusterMin:       1,
			ClusterMax:       4,
			GapMin:           220,
			GapMax:           420,
			MinGap:           200,
			JitterY:          12,
			DriftY:           6,
			WalkY:            60,
			MinY:             140,
			MaxY:             320,
			BaseY:            220,
			ScaleMin:         0.75,
			ScaleMax:         1.05,
			ConnectorMax:     18,
			LookaheadScreens: 2,
			BufferIslands:    8,
			FeetInset:        10,
		},
		Intro: IntroConfig{
			MilestoneMeters: 1000,
			StartScreens:    1.0,
			StepScreens:     1.5,
			StepHeights:     []float64{70, 170},
			LedgeWidth:      180,
			LedgeThickness:  16,
		},
		Player: PlayerConfig{
			X:         120,
			Width:     48,
			Height:    40,
			DuckScale: 0.6,
			DuckMs:    450,
		},
		Camera: CameraConfig{
			Baseline: 220,
			Ease:     0.12,
		},
		Fall: FallConfig{
			Tolerance: 24,
			GraceMs:   250,
			KillDepth: 400,
		},
		Snowman: SnowmanConfig{
			Enabled:             true,
			SpriteWidth:         64,
			SpriteHeight:        80,
			DrawHeight:          72,
			HitboxScale:         0.7,
			MinBottomPadding:    16,
			PaddingRatio:        0.24,
			SpacingScreens:      1.0,
			ExtraSpacingScreens: 0.6,
		},
		Scoring: ScoringConfig{
			PxPerMeter: 24,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "distance",
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.0,
				GapChanceMin:    0.3,
				GapChanceMax:    0.85,
				GapSpread:       0.4,
			},
		},
	}
}
