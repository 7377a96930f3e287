package rush

import (
	"math"

	"github.com/vovakirdan/reindeer-rush/internal/config"
	"github.com/vovakirdan/reindeer-rush/internal/core"
)

const fallbackSnowmanAspect = 0.8

// Snowman is an obstacle standing on a ground piece. X is the left edge of
// its draw box in world coordinates.
type Snowman struct {
	ID            int        `json:"id"`
	X             float64    `json:"x"`
	SurfaceY      float64    `json:"surfaceY"`
	PlatformIndex int        `json:"platformIndex"` // -1 once the piece is collected
	Hitbox        core.RectF `json:"hitbox"`
	Alive         bool       `json:"alive"`
}

// SnowmanMetrics describes how a snowman is drawn relative to its hitbox.
type SnowmanMetrics struct {
	DrawWidth     float64 `json:"drawWidth"`
	DrawHeight    float64 `json:"drawHeight"`
	Aspect        float64 `json:"aspect"`
	BottomPadding float64 `json:"bottomPadding"`
	HitboxWidth   float64 `json:"hitboxWidth"`
	HitboxHeight  float64 `json:"hitboxHeight"`
	HitboxOffsetX float64 `json:"hitboxOffsetX"` // from the draw box's left edge
}

// ComputeSnowmanMetrics derives draw and hitbox sizes from the sprite.
// A missing sprite size falls back to a 0.8 aspect ratio.
func ComputeSnowmanMetrics(cfg config.SnowmanConfig) SnowmanMetrics {
	aspect := fallbackSnowmanAspect
	if cfg.SpriteWidth > 0 && cfg.SpriteHeight > 0 {
		aspect = cfg.SpriteWidth / cfg.SpriteHeight
	}
	drawH := cfg.DrawHeight
	drawW := drawH * aspect
	hitW := drawW * cfg.HitboxScale
	hitH := drawH * cfg.HitboxScale

	free := drawH - hitH
	padding := math.Max(cfg.MinBottomPadding, drawH*cfg.PaddingRatio)
	padding = math.Min(padding, free)

	return SnowmanMetrics{
		DrawWidth:     drawW,
		DrawHeight:    drawH,
		Aspect:        aspect,
		BottomPadding: padding,
		HitboxWidth:   hitW,
		HitboxHeight:  hitH,
		HitboxOffsetX: (drawW - hitW) / 2,
	}
}

// hitboxAt returns the world hitbox of a snowman whose draw box starts at x.
func (m SnowmanMetrics) hitboxAt(x, surfaceY float64) core.RectF {
	return core.NewRectF(x+m.HitboxOffsetX, surfaceY-m.BottomPadding-m.HitboxHeight, m.HitboxWidth, m.HitboxHeight)
}

// SnowmanSpawner places snowmen on ground spans, at least SpacingScreens apart.
type SnowmanSpawner struct {
	cfg     *config.RushConfig
	rng     Random
	metrics SnowmanMetrics
	screenW float64
	nextX   float64 // earliest x for the next snowman
	spawned int
	nextID  int
}

// SpawnProgress is the run state the spawner needs.
type SpawnProgress struct {
	ScrollX  float64 // world x of the viewport's left edge
	Unlocked bool
}

// NewSnowmanSpawner creates a spawner for the given viewport width.
func NewSnowmanSpawner(cfg *config.RushConfig, rng Random, screenW float64) *SnowmanSpawner {
	s := &SnowmanSpawner{
		cfg:     cfg,
		rng:     rng,
		metrics: ComputeSnowmanMetrics(cfg.Snowman),
		screenW: screenW,
	}
	s.Reset()
	return s
}

// Reset forgets all placement history.
func (s *SnowmanSpawner) Reset() {
	s.nextX = 0
	s.spawned = 0
	s.nextID = 1
}

// SetScreenWidth updates the viewport width used for spacing.
func (s *SnowmanSpawner) SetScreenWidth(w float64) {
	if w > 0 {
		s.screenW = w
	}
}

// Metrics returns the snowman sizing.
func (s *SnowmanSpawner) Metrics() SnowmanMetrics {
	return s.metrics
}

// Spawned returns how many snowmen were placed since the last reset.
func (s *SnowmanSpawner) Spawned() int {
	return s.spawned
}

// MaybeSpawn places at most one snowman ahead of the visible screen.
func (s *SnowmanSpawner) MaybeSpawn(platforms []Platform, progress SpawnProgress) (Snowman, bool) {
	if !s.cfg.Snowman.Enabled || !progress.Unlocked {
		return Snowman{}, false
	}

	minX := math.Max(s.nextX, progress.ScrollX+s.screenW)
	w := s.metrics.DrawWidth
	for i, p := range platforms {
		if p.Right() < minX {
			continue
		}
		for _, span := range p.Spans {
			x := math.Max(minX, span.Start)
			if x+w > span.End {
				continue
			}
			return s.place(x, p.SurfaceY, i), true
		}
	}
	return Snowman{}, false
}

// Place puts a snowman at x regardless of spacing and the unlock gate.
func (s *SnowmanSpawner) Place(x, surfaceY float64, platformIndex int) Snowman {
	return s.place(x, surfaceY, platformIndex)
}

func (s *SnowmanSpawner) place(x, surfaceY float64, platformIndex int) Snowman {
	sm := Snowman{
		ID:            s.nextID,
		X:             x,
		SurfaceY:      surfaceY,
		PlatformIndex: platformIndex,
		Hitbox:        s.metrics.hitboxAt(x, surfaceY),
		Alive:         true,
	}
	s.nextID++
	s.spawned++
	sc := s.cfg.Snowman
	s.nextX = x + s.screenW*(sc.SpacingScreens+s.rng.Float64()*sc.ExtraSpacingScreens)
	return sm
}
