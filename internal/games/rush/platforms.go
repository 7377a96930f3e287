package rush

import (
	"math"

	"github.com/vovakirdan/reindeer-rush/internal/config"
	"github.com/vovakirdan/reindeer-rush/internal/core"
)

// Platform is one ground piece. Pieces sharing a ClusterID touch or overlap.
type Platform struct {
	X         float64 `json:"x"`
	SurfaceY  float64 `json:"surfaceY"`
	Width     float64 `json:"width"`
	Scale     float64 `json:"scale"`
	ClusterID int     `json:"clusterId"`
	Spans     []Span  `json:"spans"`
}

// Right returns the right edge of the piece.
func (p Platform) Right() float64 {
	return p.X + p.Width
}

// Gap returns the horizontal distance between prev's right edge and next.
// Negative values mean the pieces overlap.
func Gap(prev, next Platform) float64 {
	return next.X - prev.Right()
}

// PlatformGenerator produces ground pieces left to right.
type PlatformGenerator struct {
	cfg        *config.RushConfig
	rng        Random
	difficulty *config.DifficultyManager
	mask       groundMask

	screenW   float64
	baseWidth float64
	reach     float64 // widest gap a double jump can clear

	cursor    float64 // right edge of the last piece
	baseline  float64
	clusterID int
	remaining int // pieces left in the current cluster
	started   bool
	open      bool // every boundary opens a gap
}

// NewPlatformGenerator creates a generator whose first piece starts at startX.
func NewPlatformGenerator(cfg *config.RushConfig, rng Random, diff *config.DifficultyManager, screenW, startX float64) *PlatformGenerator {
	g := &PlatformGenerator{
		cfg:        cfg,
		rng:        rng,
		difficulty: diff,
		mask:       newGroundMask(cfg.Ground.Mask),
	}
	g.SetScreenWidth(screenW)
	g.Reset(startX)
	return g
}

// Reset restarts generation at startX on the configured baseline.
func (g *PlatformGenerator) Reset(startX float64) {
	g.cursor = startX
	g.baseline = g.cfg.Ground.BaseY
	g.clusterID = 0
	g.remaining = 0
	g.started = false
	g.open = false
}

// SetScreenWidth updates the viewport width the piece size derives from.
func (g *PlatformGenerator) SetScreenWidth(w float64) {
	if w <= 0 {
		w = g.cfg.Viewport.Width
	}
	g.screenW = w
	g.baseWidth = math.Min(g.cfg.Ground.SpriteWidth, w/g.cfg.Ground.PiecesPerScreen)
	g.reach = JumpReach(g.cfg.Physics, g.cfg.Physics.RunSpeed)
}

// SetOpen switches to open mode where every cluster boundary is a gap.
func (g *PlatformGenerator) SetOpen(open bool) {
	g.open = open
}

// BaseWidth is the unscaled width of one ground piece.
func (g *PlatformGenerator) BaseWidth() float64 {
	return g.baseWidth
}

// Frontier returns the right edge of the generated ground.
func (g *PlatformGenerator) Frontier() float64 {
	return g.cursor
}

// ExtendFrontier generates pieces until the frontier passes targetX plus the lookahead.
func (g *PlatformGenerator) ExtendFrontier(targetX float64) []Platform {
	limit := targetX + g.cfg.Ground.LookaheadScreens*g.screenW
	var out []Platform
	for g.cursor <= limit {
		out = append(out, g.next())
	}
	return out
}

// PlanIslands generates count whole clusters regardless of the frontier.
func (g *PlatformGenerator) PlanIslands(count int) []Platform {
	var out []Platform
	for i := 0; i < count; i++ {
		out = append(out, g.next())
		for g.remaining > 0 {
			out = append(out, g.next())
		}
	}
	return out
}

// next produces one piece, opening a new cluster when the current one is used up.
func (g *PlatformGenerator) next() Platform {
	gr := g.cfg.Ground
	x := g.cursor

	switch {
	case !g.started:
		g.started = true
		g.remaining = intBetween(g.rng, gr.ClusterMin, gr.ClusterMax)
	case g.remaining == 0:
		g.remaining = intBetween(g.rng, gr.ClusterMin, gr.ClusterMax)
		if g.open || g.rng.Float64() < g.gapChance() {
			x += g.gap()
			g.clusterID++
			g.baseline = core.ClampF(g.baseline+spread(g.rng, gr.WalkY), gr.MinY, gr.MaxY)
		} else {
			x -= between(g.rng, 0, gr.ConnectorMax)
		}
	default:
		x -= between(g.rng, 0, gr.ConnectorMax)
	}
	g.remaining--

	scale := between(g.rng, gr.ScaleMin, gr.ScaleMax)
	width := g.baseWidth * scale
	g.baseline = core.ClampF(g.baseline+spread(g.rng, gr.DriftY), gr.MinY, gr.MaxY)
	surface := core.ClampF(g.baseline+spread(g.rng, gr.JitterY), gr.MinY, gr.MaxY)

	p := Platform{
		X:         x,
		SurfaceY:  surface,
		Width:     width,
		Scale:     scale,
		ClusterID: g.clusterID,
		Spans:     g.mask.spans(x, width),
	}
	g.cursor = p.Right()
	return p
}

// metersPastMilestone is how far the cursor is beyond the intro milestone.
func (g *PlatformGenerator) metersPastMilestone() float64 {
	return g.cursor/g.cfg.Scoring.PxPerMeter - g.cfg.Intro.MilestoneMeters
}

// gapChance is zero during the intro and ramps with difficulty afterwards.
func (g *PlatformGenerator) gapChance() float64 {
	past := g.metersPastMilestone()
	if past < 0 {
		return 0
	}
	return g.difficulty.GapChance(g.level())
}

// level is the difficulty at the cursor. Time progression assumes the base run speed.
func (g *PlatformGenerator) level() float64 {
	past := math.Max(0, g.metersPastMilestone())
	seconds := past * g.cfg.Scoring.PxPerMeter / g.cfg.Physics.RunSpeed
	return g.difficulty.Level(past, seconds)
}

// gap draws a cluster gap within the reachable range.
func (g *PlatformGenerator) gap() float64 {
	gr := g.cfg.Ground
	hi := g.difficulty.GapSpan(gr.GapMin, gr.GapMax, g.level())
	gap := between(g.rng, gr.GapMin, hi)
	if maxGap := g.reach * config.ReachShare; gap > maxGap {
		gap = maxGap
	}
	return math.Max(gap, gr.MinGap)
}

// JumpReach is the horizontal distance covered by a jump followed by a
// double jump at the apex, landing back at the takeoff height.
func JumpReach(p config.PhysicsConfig, speed float64) float64 {
	return p.JumpReach(speed)
}
