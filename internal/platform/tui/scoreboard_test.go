package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/reindeer-rush/internal/storage"
)

func newTestBoard(t *testing.T, width int) (ScoreboardModel, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, s := range []struct {
		game, name string
		score      int
	}{
		{"fjerde-advent", "Emma", 900},
		{"fjerde-advent", "Mathias", 1200},
		{"fjerde-advent", "Freja", 300},
		{"forste-advent", "Emma", 40},
	} {
		if _, err := store.SaveScore(s.game, s.name, s.score); err != nil {
			t.Fatalf("SaveScore: %v", err)
		}
	}
	return NewScoreboardModel(store, width, 40), store
}

func boardStep(m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	next, _ := m.Update(msg)
	return next.(ScoreboardModel)
}

func TestScoreboardOpensOnNewestAdvent(t *testing.T) {
	m, _ := newTestBoard(t, 120)
	if got := m.current().ID; got != "fjerde-advent" {
		t.Fatalf("current board = %q, want fjerde-advent", got)
	}
	if len(m.scores) != 3 || m.scores[0].Name != "Mathias" {
		t.Errorf("scores = %+v, want Mathias first of 3", m.scores)
	}
	view := m.View()
	for _, want := range []string{"TOP 10 - Fjerde Advent", "Mathias", "best 1200", "best 40"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestScoreboardNavigationWraps(t *testing.T) {
	m, _ := newTestBoard(t, 120)

	tests := []struct {
		key  string
		want string
	}{
		{"right", "forste-advent"},
		{"right", "anden-advent"},
		{"left", "forste-advent"},
		{"left", "fjerde-advent"},
		{"tab", "forste-advent"},
	}
	for _, tc := range tests {
		m = boardStep(m, keyMsg(tc.key))
		if got := m.current().ID; got != tc.want {
			t.Fatalf("after %s: board = %q, want %q", tc.key, got, tc.want)
		}
	}
	if len(m.scores) != 1 || m.scores[0].Score != 40 {
		t.Errorf("forste-advent scores = %+v", m.scores)
	}
}

func TestScoreboardSelectLegacyID(t *testing.T) {
	m, _ := newTestBoard(t, 120)
	m.selectGame("tredje-advent")
	m.selectGame("reindeer-rush")
	if got := m.current().ID; got != "fjerde-advent" {
		t.Errorf("legacy id selected %q, want fjerde-advent", got)
	}
}

func TestScoreboardHighlightsPlayer(t *testing.T) {
	m, _ := newTestBoard(t, 120)
	m.SetPlayer("  Freja ")
	if got := m.table.Cursor(); got != 2 {
		t.Errorf("cursor = %d, want Freja's row 2", got)
	}
	m.SetPlayer("Nobody")
	if got := m.table.Cursor(); got != 2 {
		t.Errorf("unknown player moved the cursor to %d", got)
	}
}

func TestScoreboardNarrowLayout(t *testing.T) {
	m, _ := newTestBoard(t, 50)
	if m.showDate {
		t.Error("narrow board should drop the date column")
	}
	if !strings.Contains(m.View(), "< Fjerde Advent") {
		t.Error("narrow board should show the title selector instead of candles")
	}
}

func TestScoreboardEmptyWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 120, 40)
	if !strings.Contains(m.View(), "No scores yet.") {
		t.Error("board without a store should render the empty text")
	}
}

func TestScoreboardBack(t *testing.T) {
	m, _ := newTestBoard(t, 120)
	next, cmd := m.Update(keyMsg("esc"))
	sb := next.(ScoreboardModel)
	if !sb.IsGoingBack() || cmd == nil {
		t.Error("standalone board should quit on back")
	}

	m.embedded = true
	next, cmd = m.Update(keyMsg("b"))
	sb = next.(ScoreboardModel)
	if !sb.IsGoingBack() || cmd != nil {
		t.Error("embedded board should close without quitting")
	}
	if sb.View() == "" {
		t.Error("embedded board keeps rendering until its host drops it")
	}
}
