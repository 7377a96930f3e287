package rush

import (
	"math"

	"github.com/vovakirdan/reindeer-rush/internal/config"
	"github.com/vovakirdan/reindeer-rush/internal/core"
)

// Player is the reindeer. X is the screen-space left edge (anchor plus
// dash offset); Y is the feet line and grows downward.
type Player struct {
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	VX             float64 `json:"vx"`
	VY             float64 `json:"vy"`
	Grounded       bool    `json:"grounded"`
	DoubleJumpUsed bool    `json:"doubleJumpUsed"`
	DashActive     bool    `json:"dashActive"`
	DashTimer      float64 `json:"dashTimer"` // ms since the dash started
	Ducking        bool    `json:"ducking"`
}

// Terrain answers support queries for a horizontal feet range [lo, hi].
type Terrain interface {
	// SupportNear returns the highest surface within tol of feetY.
	SupportNear(lo, hi, feetY, tol float64) (float64, bool)
	// Landing returns the first surface crossed moving down from prevY to y.
	Landing(lo, hi, prevY, y float64) (float64, bool)
	// AnyBelow reports a surface at or below feetY-tol.
	AnyBelow(lo, hi, feetY, tol float64) bool
}

// Motion reports what happened during one Advance call.
type Motion struct {
	Jumped       bool
	DoubleJumped bool
	Landed       bool
	DashStarted  bool
}

// Kinematics integrates the player's movement.
type Kinematics struct {
	cfg *config.RushConfig
}

// NewKinematics creates a kinematics integrator.
func NewKinematics(cfg *config.RushConfig) *Kinematics {
	return &Kinematics{cfg: cfg}
}

// Anchor is the player's screen x without dash offset.
func (k *Kinematics) Anchor() float64 {
	return k.cfg.Player.X
}

// DashOffset returns the forward offset t ms into a dash.
// It rises to the amplitude at t = duration/6 and decays towards zero.
func (k *Kinematics) DashOffset(t float64) float64 {
	d := k.cfg.Dash
	if t <= 0 || t >= d.DurationMs {
		return 0
	}
	tau := d.DurationMs / 6
	u := t / tau
	return d.Amplitude * u * math.Exp(1-u)
}

// dashVelocity is the derivative of DashOffset in px/s.
func (k *Kinematics) dashVelocity(t float64) float64 {
	d := k.cfg.Dash
	if t <= 0 || t >= d.DurationMs {
		return 0
	}
	tau := d.DurationMs / 6
	u := t / tau
	return d.Amplitude / tau * math.Exp(1-u) * (1 - u) * 1000
}

// FeetRange returns the world x range used for support checks.
func (k *Kinematics) FeetRange(p *Player, scrollX float64) (float64, float64) {
	inset := k.cfg.Ground.FeetInset
	wx := scrollX + p.X
	return wx + inset, wx + k.cfg.Player.Width - inset
}

// Hitbox returns the player's world collision box.
func (k *Kinematics) Hitbox(p *Player, scrollX float64) core.RectF {
	h := k.cfg.Player.Height
	if p.Ducking {
		h *= k.cfg.Player.DuckScale
	}
	return core.NewRectF(scrollX+p.X, p.Y-h, k.cfg.Player.Width, h)
}

// jumpVelocity scales an impulse by how long the press was held.
func (k *Kinematics) jumpVelocity(impulse, holdMs float64) float64 {
	ph := k.cfg.Physics
	hold := core.ClampF(holdMs, 0, ph.MaxHoldMs) / ph.MaxHoldMs
	return impulse * (1 + ph.HoldBoost*hold)
}

// Advance moves the player by dt seconds. scrollX must already include
// this tick's scroll so support is checked where the player now stands.
func (k *Kinematics) Advance(p *Player, scrollX, dt float64, in core.InputFrame, speed float64, t Terrain) Motion {
	var m Motion
	ph := k.cfg.Physics

	if in.Has(core.ActionDuckStart) {
		p.Ducking = true
	}
	if in.Has(core.ActionDuckEnd) {
		p.Ducking = false
	}

	if in.Has(core.ActionDash) && !p.DashActive {
		p.DashActive = true
		p.DashTimer = 0
		m.DashStarted = true
	}

	if in.Has(core.ActionJump) || in.Has(core.ActionDoubleJump) {
		switch {
		case p.Grounded:
			p.VY = k.jumpVelocity(ph.JumpImpulse, in.JumpHoldMs)
			p.Grounded = false
			m.Jumped = true
		case !p.DoubleJumpUsed:
			p.VY = k.jumpVelocity(ph.DoubleJumpImpulse, in.JumpHoldMs)
			p.DoubleJumpUsed = true
			m.DoubleJumped = true
		}
	}

	// Horizontal: the world scrolls at speed, the dash only moves the player on screen.
	p.VX = speed
	if p.DashActive {
		p.DashTimer += dt * 1000
		if p.DashTimer >= k.cfg.Dash.DurationMs {
			p.DashActive = false
			p.DashTimer = 0
		} else {
			p.VX += k.dashVelocity(p.DashTimer)
		}
	}
	p.X = k.Anchor() + k.DashOffset(p.DashTimer)

	lo, hi := k.FeetRange(p, scrollX)

	if p.Grounded {
		if y, ok := t.SupportNear(lo, hi, p.Y, ph.StepUp); ok {
			p.Y = y
			p.VY = 0
			return m
		}
		// Walked off an edge
		p.Grounded = false
		p.VY = 0
	}

	p.VY = math.Min(p.VY+ph.Gravity*dt, ph.MaxFallSpeed)
	prevY := p.Y
	p.Y += p.VY * dt

	if p.VY >= 0 {
		if y, ok := t.Landing(lo, hi, prevY, p.Y); ok {
			p.Y = y
			p.VY = 0
			p.Grounded = true
			p.DoubleJumpUsed = false
			m.Landed = true
		}
	}
	return m
}

// JumpArc describes a single jump without hold boost.
type JumpArc struct {
	Rise   float64 `json:"rise"`
	PeakY  float64 `json:"peakY"`
	StartY float64 `json:"startY"`
}

// MeasureJumpArc integrates a single jump from startY over flat ground
// using the simulation's substep.
func (k *Kinematics) MeasureJumpArc(startY float64) JumpArc {
	p := &Player{X: k.Anchor(), Y: startY, Grounded: true}
	flat := flatTerrain{y: startY}
	dt := stepMs / 1000

	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	peak := startY
	for i := 0; i < 600; i++ {
		k.Advance(p, 0, dt, in, k.cfg.Physics.RunSpeed, flat)
		in = core.InputFrame{}
		peak = math.Min(peak, p.Y)
		if p.Grounded {
			break
		}
	}
	return JumpArc{Rise: startY - peak, PeakY: peak, StartY: startY}
}

// flatTerrain is endless ground at a fixed height.
type flatTerrain struct{ y float64 }

func (f flatTerrain) SupportNear(_, _, feetY, tol float64) (float64, bool) {
	return f.y, math.Abs(feetY-f.y) <= tol
}

func (f flatTerrain) Landing(_, _, prevY, y float64) (float64, bool) {
	return f.y, prevY <= f.y && y >= f.y
}

func (f flatTerrain) AnyBelow(_, _, feetY, tol float64) bool {
	return f.y >= feetY-tol
}
