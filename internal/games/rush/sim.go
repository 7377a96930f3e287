// Package rush implements the Reindeer Rush side-scrolling runner: island
// generation, snowman placement, jump and dash kinematics, camera smoothing
// and the run state machine.
//
// The simulation is single-writer and has no clock of its own. A frame
// driver calls Step with the elapsed milliseconds and reads Snapshot.
package rush

import (
	"math"

	"github.com/vovakirdan/reindeer-rush/internal/config"
	"github.com/vovakirdan/reindeer-rush/internal/core"
)

// stepMs is the fixed substep.
const stepMs = 1000.0 / 60.0

// fpsSmoothing weights the newest frame in the FPS estimate.
const fpsSmoothing = 0.1

// Simulation owns one run and everything in it.
type Simulation struct {
	cfg        config.RushConfig
	rng        Random
	difficulty *config.DifficultyManager
	gen        *PlatformGenerator
	spawner    *SnowmanSpawner
	kin        *Kinematics

	screenW float64
	screenH float64

	state     RunState
	reason    CollisionReason
	player    Player
	camera    Camera
	platforms []Platform
	ledges    []Ledge
	snowmen   []Snowman

	scrollX      float64
	distance     float64
	bonus        int
	elapsedMs    float64
	lastSurfaceY float64
	fallMs       float64
	unlockX      float64
	unlocked     bool
	frozen       bool // ground generation paused by a test hook
	fps          float64

	cues     CueSink
	reporter RunReporter
	intents  IntentSource
	pending  core.InputFrame
	tickCues []Cue
}

// NewSimulation creates an idle simulation. The config is normalized on a copy.
func NewSimulation(cfg config.RushConfig, rng Random) *Simulation {
	cfg.Normalize()
	if rng == nil {
		rng = NewSeededRandom(1)
	}
	s := &Simulation{
		cfg:     cfg,
		rng:     rng,
		screenW: cfg.Viewport.Width,
		screenH: cfg.Viewport.Height,
		pending: core.NewInputFrame(),
	}
	s.difficulty = config.NewDifficultyManager(s.cfg.Difficulty)
	s.kin = NewKinematics(&s.cfg)
	s.gen = NewPlatformGenerator(&s.cfg, rng, s.difficulty, s.screenW, 0)
	s.spawner = NewSnowmanSpawner(&s.cfg, rng, s.screenW)
	s.camera = NewCamera(s.cfg.Camera.Baseline, s.cfg.Camera.Ease)
	return s
}

// Config returns the normalized configuration.
func (s *Simulation) Config() config.RushConfig {
	return s.cfg
}

// SetCueSink sets the audio collaborator.
func (s *Simulation) SetCueSink(c CueSink) {
	s.cues = c
}

// SetReporter sets the collaborator told about finished runs.
func (s *Simulation) SetReporter(r RunReporter) {
	s.reporter = r
}

// SetIntentSource sets where each tick pulls intents from.
func (s *Simulation) SetIntentSource(src IntentSource) {
	s.intents = src
}

// SetViewport changes the playfield size in world pixels.
func (s *Simulation) SetViewport(w, h float64) {
	if w > 0 {
		s.screenW = w
	}
	if h > 0 {
		s.screenH = h
	}
	s.gen.SetScreenWidth(s.screenW)
	s.spawner.SetScreenWidth(s.screenW)
}

// Viewport returns the playfield size.
func (s *Simulation) Viewport() (float64, float64) {
	return s.screenW, s.screenH
}

// Apply queues intents for the next tick.
func (s *Simulation) Apply(in core.InputFrame) {
	s.pending.Merge(in)
}

// StartGame resets every entity and starts a run.
func (s *Simulation) StartGame() {
	s.scrollX = 0
	s.distance = 0
	s.bonus = 0
	s.elapsedMs = 0
	s.fallMs = 0
	s.reason = ReasonNone
	s.frozen = false
	s.pending = core.NewInputFrame()
	if s.intents != nil {
		s.intents.Drain()
	}

	s.gen.Reset(-s.screenW / 2)
	s.spawner.Reset()
	s.platforms = s.gen.ExtendFrontier(s.screenW)
	s.snowmen = s.snowmen[:0]

	s.player = Player{X: s.kin.Anchor(), Y: s.cfg.Ground.BaseY, Grounded: true}
	lo, hi := s.kin.FeetRange(&s.player, 0)
	if y, ok := s.terrain().SupportNear(lo, hi, s.cfg.Ground.BaseY, math.Inf(1)); ok {
		s.player.Y = y
	}
	s.lastSurfaceY = s.player.Y

	s.unlockX = s.buildIntro(s.kin.Anchor())
	s.unlocked = len(s.ledges) == 0

	s.camera = NewCamera(s.cfg.Camera.Baseline, s.cfg.Camera.Ease)
	s.camera.Update(s.player.Y, 0)
	s.camera.Y = s.camera.Target

	s.state = StateRunning
	s.emit(CueMusicStart)
}

// Step advances by a real frame delta, clamped to max_frame_ms.
func (s *Simulation) Step(deltaMs float64) []Cue {
	if deltaMs <= 0 {
		return s.advance(0)
	}
	if s.fps == 0 {
		s.fps = 1000 / deltaMs
	} else {
		s.fps += (1000/deltaMs - s.fps) * fpsSmoothing
	}
	return s.advance(math.Min(deltaMs, s.cfg.Physics.MaxFrameMs))
}

// advance splits deltaMs into substeps of at most stepMs and returns the
// cues emitted since the previous call.
func (s *Simulation) advance(deltaMs float64) []Cue {
	for remaining := deltaMs; remaining > 1e-9 && s.state == StateRunning; {
		dt := math.Min(remaining, stepMs)
		s.tick(dt)
		remaining -= dt
	}
	out := s.tickCues
	s.tickCues = nil
	return out
}

func (s *Simulation) tick(dtMs float64) {
	dt := dtMs / 1000
	in := s.takeIntents()

	speed := s.difficulty.Speed(s.cfg.Physics.RunSpeed, s.level())
	s.scrollX += speed * dt
	s.elapsedMs += dtMs

	m := s.kin.Advance(&s.player, s.scrollX, dt, in, speed, s.terrain())
	if m.Jumped || m.DoubleJumped {
		s.emit(CueJump)
	}
	if s.intents != nil {
		s.intents.SetGrounded(s.player.Grounded)
	}
	if s.player.Grounded {
		s.lastSurfaceY = s.player.Y
		s.fallMs = 0
	}
	s.distance = math.Max(s.distance, s.scrollX/s.cfg.Scoring.PxPerMeter)

	if !s.unlocked && s.scrollX+s.player.X >= s.unlockX {
		s.unlocked = true
	}
	s.extendWorld()

	if s.checkSnowmen() || s.checkFall(dtMs) {
		return
	}

	s.camera.Update(s.lastSurfaceY, dt)
	s.collectGarbage()
}

func (s *Simulation) takeIntents() core.InputFrame {
	in := s.pending
	s.pending = core.NewInputFrame()
	if s.intents != nil {
		in.Merge(s.intents.Drain())
	}
	return in
}

// level is the difficulty level for the current position and time.
func (s *Simulation) level() float64 {
	past := math.Max(0, s.distance-s.cfg.Intro.MilestoneMeters)
	return s.difficulty.Level(past, s.elapsedMs/1000)
}

func (s *Simulation) terrain() terrain {
	return terrain{platforms: s.platforms, ledges: s.ledges}
}

func (s *Simulation) extendWorld() {
	if !s.frozen {
		s.platforms = append(s.platforms, s.gen.ExtendFrontier(s.scrollX+s.screenW)...)
	}
	sm, ok := s.spawner.MaybeSpawn(s.platforms, SpawnProgress{ScrollX: s.scrollX, Unlocked: s.unlocked})
	if ok {
		s.snowmen = append(s.snowmen, sm)
	}
}

// checkSnowmen resolves overlaps. It reports whether the run ended.
func (s *Simulation) checkSnowmen() bool {
	hit := s.kin.Hitbox(&s.player, s.scrollX)
	alive := s.snowmen[:0]
	ended := false
	for _, sm := range s.snowmen {
		if ended || !sm.Alive || !hit.Intersects(sm.Hitbox) {
			alive = append(alive, sm)
			continue
		}
		if s.player.DashActive {
			s.bonus += s.cfg.Dash.Bonus
			s.emit(CueDashCoin)
			continue
		}
		alive = append(alive, sm)
		ended = true
	}
	s.snowmen = alive
	if ended {
		s.end(ReasonHitSnowman)
	}
	return ended
}

// checkFall runs the fall-off grace window. It reports whether the run ended.
func (s *Simulation) checkFall(dtMs float64) bool {
	p := &s.player
	if p.Grounded {
		return false
	}
	if p.Y > s.cfg.Ground.MaxY+s.cfg.Fall.KillDepth {
		s.end(ReasonFellOffIsland)
		return true
	}

	tol := s.cfg.Fall.Tolerance
	lo, hi := s.kin.FeetRange(p, s.scrollX)
	if s.terrain().AnyBelow(lo, hi, p.Y, tol) || p.Y <= s.lastSurfaceY+tol {
		s.fallMs = 0
		return false
	}
	s.fallMs += dtMs
	if s.fallMs > s.cfg.Fall.GraceMs {
		s.end(ReasonFellOffIsland)
		return true
	}
	return false
}

// collectGarbage drops entities more than half a screen behind the viewport.
func (s *Simulation) collectGarbage() {
	cut := s.scrollX - s.screenW/2

	n := 0
	for n < len(s.platforms) && s.platforms[n].Right() < cut {
		n++
	}
	if n > 0 {
		s.platforms = append(s.platforms[:0], s.platforms[n:]...)
		for i := range s.snowmen {
			sm := &s.snowmen[i]
			if sm.PlatformIndex < n {
				sm.PlatformIndex = -1
			} else {
				sm.PlatformIndex -= n
			}
		}
	}

	ledges := s.ledges[:0]
	for _, l := range s.ledges {
		if l.Right() >= cut {
			ledges = append(ledges, l)
		}
	}
	s.ledges = ledges

	w := s.spawner.Metrics().DrawWidth
	snowmen := s.snowmen[:0]
	for _, sm := range s.snowmen {
		if sm.X+w >= cut {
			snowmen = append(snowmen, sm)
		}
	}
	s.snowmen = snowmen
}

func (s *Simulation) end(reason CollisionReason) {
	if s.state != StateRunning {
		return
	}
	s.state = StateEnded
	s.reason = reason
	s.emit(CueDeath)
	if s.reporter != nil {
		s.reporter.ReportRunEnded(s.distance, reason)
	}
}

func (s *Simulation) emit(c Cue) {
	s.tickCues = append(s.tickCues, c)
	if s.cues != nil {
		s.cues.Cue(c)
	}
}

// RunState returns the lifecycle state.
func (s *Simulation) RunState() RunState {
	if s == nil {
		return StateIdle
	}
	return s.state
}

// Score is the floored distance plus bonuses.
func (s *Simulation) Score() int {
	if s == nil {
		return 0
	}
	return int(math.Floor(s.distance)) + s.bonus
}

// State returns the public run summary.
func (s *Simulation) State() StateInfo {
	if s == nil {
		return StateInfo{}
	}
	return StateInfo{
		Distance:            s.distance,
		ObstacleCount:       s.spawner.Spawned(),
		FPS:                 s.fps,
		Running:             s.state == StateRunning,
		LastCollisionReason: s.reason,
		Bonus:               s.bonus,
		Score:               s.Score(),
	}
}
