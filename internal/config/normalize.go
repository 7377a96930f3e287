package config

import "math"

// Normalize clamps invalid values to safe minimums in place.
// The simulation relies on it and never validates its configuration again.
func (c *RushConfig) Normalize() {
	def := DefaultRushConfig()

	positive(&c.Viewport.Width, def.Viewport.Width)
	positive(&c.Viewport.Height, def.Viewport.Height)

	p := &c.Physics
	positive(&p.Gravity, def.Physics.Gravity)
	if p.JumpImpulse >= 0 {
		p.JumpImpulse = def.Physics.JumpImpulse
	}
	if p.DoubleJumpImpulse >= 0 {
		p.DoubleJumpImpulse = def.Physics.DoubleJumpImpulse
	}
	positive(&p.MaxFallSpeed, def.Physics.MaxFallSpeed)
	positive(&p.RunSpeed, def.Physics.RunSpeed)
	p.HoldBoost = clampF(p.HoldBoost, 0, 1)
	positive(&p.MaxHoldMs, def.Physics.MaxHoldMs)
	nonNegative(&p.StepUp)
	positive(&p.MaxFrameMs, def.Physics.MaxFrameMs)

	nonNegative(&c.Dash.Amplitude)
	positive(&c.Dash.DurationMs, def.Dash.DurationMs)
	if c.Dash.Bonus < 0 {
		c.Dash.Bonus = 0
	}

	g := &c.Ground
	positive(&g.SpriteWidth, def.Ground.SpriteWidth)
	positive(&g.PiecesPerScreen, def.Ground.PiecesPerScreen)
	if g.ClusterMin < 1 {
		g.ClusterMin = 1
	}
	if g.ClusterMax < g.ClusterMin {
		g.ClusterMax = g.ClusterMin
	}
	positive(&g.MinGap, def.Ground.MinGap)
	if g.GapMin < g.MinGap {
		g.GapMin = g.MinGap
	}
	if g.GapMax < g.GapMin {
		g.GapMax = g.GapMin
	}
	nonNegative(&g.JitterY)
	nonNegative(&g.DriftY)
	nonNegative(&g.WalkY)
	if g.MaxY <= g.MinY {
		g.MinY, g.MaxY = def.Ground.MinY, def.Ground.MaxY
	}
	g.BaseY = clampF(g.BaseY, g.MinY, g.MaxY)
	positive(&g.ScaleMin, def.Ground.ScaleMin)
	if g.ScaleMax < g.ScaleMin {
		g.ScaleMax = g.ScaleMin
	}
	g.ConnectorMax = clampF(g.ConnectorMax, 0, g.SpriteWidth*g.ScaleMin/2)
	if g.LookaheadScreens < 1 {
		g.LookaheadScreens = 1
	}
	if g.BufferIslands < 1 {
		g.BufferIslands = def.Ground.BufferIslands
	}
	nonNegative(&g.FeetInset)

	// Reach grows linearly with both impulses; scale them until the widest
	// allowed gap still covers MinGap.
	if reach := p.JumpReach(p.RunSpeed) * ReachShare; reach < g.MinGap {
		k := g.MinGap / reach * 1.001
		p.JumpImpulse *= k
		p.DoubleJumpImpulse *= k
	}

	in := &c.Intro
	nonNegative(&in.MilestoneMeters)
	nonNegative(&in.StartScreens)
	positive(&in.StepScreens, def.Intro.StepScreens)
	if len(in.StepHeights) == 0 {
		in.StepHeights = append([]float64(nil), def.Intro.StepHeights...)
	}
	for i := range in.StepHeights {
		positive(&in.StepHeights[i], def.Intro.StepHeights[min(i, len(def.Intro.StepHeights)-1)])
	}
	positive(&in.LedgeWidth, def.Intro.LedgeWidth)
	positive(&in.LedgeThickness, def.Intro.LedgeThickness)

	pl := &c.Player
	nonNegative(&pl.X)
	positive(&pl.Width, def.Player.Width)
	positive(&pl.Height, def.Player.Height)
	if pl.DuckScale <= 0 || pl.DuckScale > 1 {
		pl.DuckScale = def.Player.DuckScale
	}
	positive(&pl.DuckMs, def.Player.DuckMs)

	if c.Camera.Ease <= 0 || c.Camera.Ease > 1 {
		c.Camera.Ease = def.Camera.Ease
	}

	nonNegative(&c.Fall.Tolerance)
	nonNegative(&c.Fall.GraceMs)
	positive(&c.Fall.KillDepth, def.Fall.KillDepth)

	s := &c.Snowman
	nonNegative(&s.SpriteWidth)
	nonNegative(&s.SpriteHeight)
	positive(&s.DrawHeight, def.Snowman.DrawHeight)
	if s.HitboxScale <= 0 || s.HitboxScale >= 1 {
		s.HitboxScale = def.Snowman.HitboxScale
	}
	nonNegative(&s.MinBottomPadding)
	nonNegative(&s.PaddingRatio)
	positive(&s.SpacingScreens, def.Snowman.SpacingScreens)
	nonNegative(&s.ExtraSpacingScreens)

	positive(&c.Scoring.PxPerMeter, def.Scoring.PxPerMeter)

	d := &c.Difficulty
	d.InitialLevel = clampF(d.InitialLevel, 0, 1)
	switch d.Progression.Type {
	case "distance", "time", "none":
	default:
		d.Progression.Type = def.Difficulty.Progression.Type
	}
	nonNegative(&d.Scaling.SpeedMultiplier)
	d.Scaling.GapChanceMin = clampF(d.Scaling.GapChanceMin, 0, 1)
	d.Scaling.GapChanceMax = clampF(d.Scaling.GapChanceMax, d.Scaling.GapChanceMin, 1)
	d.Scaling.GapSpread = clampF(d.Scaling.GapSpread, 0, 1)
}

func positive(v *float64, fallback float64) {
	if *v <= 0 {
		*v = fallback
	}
}

func nonNegative(v *float64) {
	if *v < 0 {
		*v = 0
	}
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
