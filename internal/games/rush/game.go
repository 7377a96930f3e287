package rush

import (
	"fmt"

	"github.com/vovakirdan/reindeer-rush/internal/config"
	"github.com/vovakirdan/reindeer-rush/internal/core"
	"github.com/vovakirdan/reindeer-rush/internal/registry"
)

// GameID is the score-board id of the runner.
const GameID = "fjerde-advent"

// LegacyID is the id older clients submit scores under.
const LegacyID = "reindeer-rush"

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names use the config default.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// LoadConfig loads the runner config honoring the CLI path and preset.
func LoadConfig() (config.RushConfig, error) {
	cfg, err := config.LoadRush(configPath)
	if err != nil {
		return cfg, err
	}
	config.ApplyRushPreset(&cfg, difficultyPreset)
	return cfg, nil
}

// Game adapts a Simulation to the registry's fixed-tick game interface.
// Terminal cells are mapped to world pixels by CellWidthPx and CellHeightPx.
type Game struct {
	sim      *Simulation
	gestures *Interpreter
	runtime  core.RuntimeConfig
	paused   bool
	clockMs  float64

	cues     CueSink
	reporter RunReporter
}

// New creates a new Reindeer Rush game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Fjerde Advent — Reindeer Rush"
}

// SetCueSink forwards audio cues of every run to c.
func (g *Game) SetCueSink(c CueSink) {
	g.cues = c
	if g.sim != nil {
		g.sim.SetCueSink(c)
	}
}

// SetReporter is told when a run ends.
func (g *Game) SetReporter(r RunReporter) {
	g.reporter = r
	if g.sim != nil {
		g.sim.SetReporter(r)
	}
}

// Gestures returns the interpreter fed by mouse input.
func (g *Game) Gestures() *Interpreter {
	return g.gestures
}

// Simulation exposes the underlying run.
func (g *Game) Simulation() *Simulation {
	return g.sim
}

// Reset builds a fresh simulation and starts a run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime

	cfg, err := LoadConfig()
	if err != nil {
		cfg = config.EmbeddedRush()
	}

	g.sim = NewSimulation(cfg, NewSeededRandom(runtime.Seed))
	if runtime.ScreenW > 0 && runtime.ScreenH > 0 {
		g.sim.SetViewport(float64(runtime.ScreenW*CellWidthPx), float64(runtime.ScreenH*CellHeightPx))
	}
	g.gestures = NewInterpreter(g.sim.Config().Player.DuckMs)
	g.sim.SetIntentSource(g.gestures)
	g.sim.SetCueSink(g.cues)
	g.sim.SetReporter(g.reporter)

	g.paused = false
	g.clockMs = 0
	g.sim.StartGame()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sim == nil {
		return core.StepResult{}
	}

	if g.sim.RunState() == StateEnded {
		if in.Has(core.ActionRestart) {
			g.paused = false
			g.sim.StartGame()
		}
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) {
		g.gestures.KeyJump()
	}
	if in.Has(core.ActionDash) {
		g.gestures.KeyDash()
	}
	if in.Has(core.ActionDuckStart) {
		g.gestures.KeyDuck(g.clockMs)
	}

	frame := 1000 / float64(g.runtime.TickRate)
	g.clockMs += frame
	g.gestures.Advance(g.clockMs)

	cues := g.sim.Step(frame)
	events := make([]string, 0, len(cues))
	for _, c := range cues {
		events = append(events, string(c))
	}
	return core.StepResult{State: g.State(), Events: events}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}
	RenderSnapshot(dst, g.sim.Snapshot())

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.sim.RunState() == StateEnded {
		st := g.sim.State()
		title := "YOU HIT A SNOWMAN"
		if st.LastCollisionReason == ReasonFellOffIsland {
			title = "YOU FELL OFF THE ISLAND"
		}
		drawCenteredMessage(dst, title, fmt.Sprintf("%d m  Score: %d  |  Press R to restart", int(st.Distance), st.Score))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCenteredColor(box.Y+1, title, core.ColorBrightRed)
	dst.DrawTextCentered(box.Y+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.sim.Score(),
		GameOver: g.sim.RunState() == StateEnded,
		Paused:   g.paused,
		Reason:   string(g.sim.State().LastCollisionReason),
	}
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Alias(LegacyID, GameID)
}
