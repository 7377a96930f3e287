package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/reindeer-rush/internal/core"
	"github.com/vovakirdan/reindeer-rush/internal/games/rush"
	"github.com/vovakirdan/reindeer-rush/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	rush.SetConfigPath("")
	m := NewModel(rush.New(), Options{
		Runtime:    core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60, Seed: 3},
		Store:      store,
		PlayerName: "Mathias",
	})
	m.Init()
	return m
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelTicksAndRenders(t *testing.T) {
	m := newTestModel(t, nil)
	for i := 0; i < 30; i++ {
		m = step(t, m, TickMsg{})
	}
	if m.runner.Simulation().State().Distance <= 0 {
		t.Error("ticks should advance the run")
	}
	if view := m.View(); view == "" || !strings.Contains(view, "\n") {
		t.Error("view should render the screen")
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	for i := 0; i < 120; i++ {
		m = step(t, m, TickMsg{})
	}
	m.runner.Simulation().TriggerDeathForTest()
	for i := 0; i < 5; i++ {
		m = step(t, m, TickMsg{})
	}
	if !m.State().GameOver {
		t.Fatal("run should be over")
	}

	scores, _ := store.TopScores(rush.GameID, 10)
	if len(scores) != 1 || scores[0].Name != "Mathias" || scores[0].Score != m.State().Score {
		t.Errorf("unexpected board %+v", scores)
	}
	if !strings.Contains(m.View(), "#1") {
		t.Error("game over view should show the board position")
	}

	// Restart clears the saved flag for the next run.
	m = step(t, m, keyMsg("r"))
	m = step(t, m, TickMsg{})
	if m.State().GameOver || m.scoreSaved {
		t.Error("restart should begin a fresh run")
	}
}

func TestModelScoreboardOverlay(t *testing.T) {
	m := newTestModel(t, nil)
	m = step(t, m, TickMsg{})
	before := m.runner.Simulation().State().Distance

	m = step(t, m, keyMsg("tab"))
	if m.scores == nil {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "Reindeer Rush") {
		t.Error("scoreboard should open on the runner's board")
	}
	for i := 0; i < 10; i++ {
		m = step(t, m, TickMsg{})
	}
	if m.runner.Simulation().State().Distance != before {
		t.Error("run should stay frozen behind the scoreboard")
	}

	m = step(t, m, keyMsg("b"))
	if m.scores != nil {
		t.Error("back should close the scoreboard")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	m := newTestModel(t, nil)
	for i := 0; i < 10; i++ {
		m = step(t, m, TickMsg{})
	}
	dist := m.runner.Simulation().State().Distance

	m = step(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
	w, h := m.runner.Simulation().Viewport()
	if w != 140*rush.CellWidthPx || h != 40*rush.CellHeightPx {
		t.Errorf("viewport = %vx%v", w, h)
	}
	if m.runner.Simulation().State().Distance != dist {
		t.Error("resize should not restart the run")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil || !next.(Model).quitting {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model renders nothing")
	}
}

type mutableSink struct {
	muted bool
	cues  []rush.Cue
}

func (s *mutableSink) Cue(c rush.Cue)  { s.cues = append(s.cues, c) }
func (s *mutableSink) SetMuted(m bool) { s.muted = m }
func (s *mutableSink) Muted() bool     { return s.muted }

func TestModelMuteToggle(t *testing.T) {
	sink := &mutableSink{}
	m := NewModel(rush.New(), Options{
		Runtime: core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60, Seed: 3},
		Cues:    sink,
	})
	m.Init()

	m = step(t, m, keyMsg("m"))
	if !sink.muted {
		t.Error("m should mute the sink")
	}
	m = step(t, m, keyMsg("m"))
	if sink.muted {
		t.Error("second m should unmute the sink")
	}
}
