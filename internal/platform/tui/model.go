package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reindeer-rush/internal/core"
	"github.com/vovakirdan/reindeer-rush/internal/games/rush"
	"github.com/vovakirdan/reindeer-rush/internal/logging"
	"github.com/vovakirdan/reindeer-rush/internal/registry"
	"github.com/vovakirdan/reindeer-rush/internal/storage"
)

// Options configures a terminal run.
type Options struct {
	Runtime    core.RuntimeConfig
	Store      *storage.Store // nil disables score saving
	PlayerName string         // leaderboard name
	Cues       rush.CueSink   // nil for silence
	Logger     *log.Logger
}

// muter is a cue sink that can be silenced, such as the speaker player.
type muter interface {
	SetMuted(bool)
	Muted() bool
}

// Model is the Bubble Tea model for one runner session.
type Model struct {
	game       registry.Game
	runner     *rush.Game // nil when game is not the runner
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	started    time.Time
	scores     *ScoreboardModel
	quitting   bool
	scoreSaved bool // score saved for the current game over
	lastSave   string
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		started:    time.Now(),
	}
	if r, ok := game.(*rush.Game); ok {
		m.runner = r
		r.SetCueSink(opts.Cues)
	}
	return m
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.scores != nil {
		return m.updateScores(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "m":
		if mu, ok := m.opts.Cues.(muter); ok {
			mu.SetMuted(!mu.Muted())
		}
		return m, nil
	}
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionBack) {
		m.inputFrame.Clear()
		sb := NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		sb.embedded = true
		sb.selectGame(m.game.ID())
		sb.SetPlayer(m.opts.PlayerName)
		m.scores = &sb
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.runner == nil || m.gameState.Paused || m.gameState.GameOver {
		return m, nil
	}
	now := float64(time.Since(m.started)) / float64(time.Millisecond)
	phase, ev := m.keyMapper.MapMouse(msg, now)
	Feed(m.runner.Gestures(), phase, ev)
	return m, nil
}

// handleResize keeps the run going and resizes the playfield.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if m.runner != nil && m.runner.Simulation() != nil {
		m.runner.Simulation().SetViewport(
			float64(msg.Width*rush.CellWidthPx),
			float64(msg.Height*rush.CellHeightPx),
		)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.scoreSaved = false
		m.lastSave = ""
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScore is best effort: failures are logged and the game goes on.
func (m *Model) saveScore() {
	logger := m.opts.Logger
	logger.Info("run ended",
		"game", m.game.ID(),
		"score", m.gameState.Score,
		"reason", m.gameState.Reason,
		"player", m.opts.PlayerName,
	)
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}
	res, err := m.opts.Store.SaveScore(m.game.ID(), m.opts.PlayerName, m.gameState.Score)
	if err != nil {
		logger.Warn("could not save score", "error", err)
		return
	}
	switch {
	case res.Improved && res.Rank > 0:
		m.lastSave = fmt.Sprintf("New best! #%d on the board", res.Rank)
	case res.Improved:
		m.lastSave = "New personal best!"
	default:
		m.lastSave = fmt.Sprintf("Best: %d", res.Best)
	}
}

func (m Model) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		// The run stays frozen behind the board.
		return m, tickCmd(m.config.TickRate)
	}
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
		m.screen.Resize(wsm.Width, wsm.Height)
	}

	updated, cmd := m.scores.Update(msg)
	sb := updated.(ScoreboardModel)
	switch {
	case sb.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case sb.IsGoingBack():
		m.scores = nil
		return m, nil
	}
	m.scores = &sb
	return m, cmd
}

// saveScreenshot writes the current screen as text under ~/.rush/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".rush", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scores != nil {
		return m.scores.View()
	}

	m.game.Render(m.screen)
	if m.gameState.GameOver && m.lastSave != "" && m.screen.Height() > 2 {
		m.screen.DrawTextCenteredColor(m.screen.Height()-2, m.lastSave, core.ColorBrightYellow)
	}
	return RenderScreen(m.screen)
}

// State returns the last stepped game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for game.
func Run(game registry.Game, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
