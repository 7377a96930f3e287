package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/reindeer-rush/internal/storage"
)

// Column widths of the leaderboard table.
const (
	rankWidth  = 5
	scoreWidth = 8
	dateWidth  = 12
	candleW    = 16 // one advent candle box, border included
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Up, k.Down, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Up, k.Down},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("right", "next advent"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("left", "prev advent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the top 10 of each advent leaderboard.
type ScoreboardModel struct {
	store   *storage.Store
	games   []storage.GameInfo
	cursor  int
	highs   map[string]int // best score per board, for the candles
	scores  []storage.ScoreEntry
	loadErr error
	player  string // row to put the table cursor on

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width    int
	height   int
	showDate bool

	embedded  bool // inside a game model; back closes instead of quitting
	goingBack bool
	quitting  bool
}

// NewScoreboardModel creates a board opened on the newest advent.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		store:  store,
		games:  storage.KnownGames,
		cursor: len(storage.KnownGames) - 1,
		highs:  map[string]int{},
		help:   h,
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadHighs()
	m.loadScores()
	return m
}

// SetPlayer highlights name's row when it is on the board.
func (m *ScoreboardModel) SetPlayer(name string) {
	m.player = name
	m.focusPlayer()
}

func (m *ScoreboardModel) createTable() table.Model {
	tableWidth := m.width - 6
	m.showDate = tableWidth >= rankWidth+storage.MaxNameLength+scoreWidth+dateWidth+8

	columns := []table.Column{
		{Title: "Rank", Width: rankWidth},
		{Title: "Name", Width: storage.MaxNameLength},
		{Title: "Score", Width: scoreWidth},
	}
	if m.showDate {
		columns = append(columns, table.Column{Title: "Date", Width: dateWidth})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, min(storage.LeaderboardLimit+1, m.height-12))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(true)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) current() storage.GameInfo {
	if len(m.games) == 0 {
		return storage.GameInfo{}
	}
	return m.games[m.cursor]
}

// loadHighs fills the candle scores. Boards that fail to load stay unlit.
func (m *ScoreboardModel) loadHighs() {
	if m.store == nil {
		return
	}
	for _, g := range m.games {
		if best, err := m.store.HighScore(g.ID); err == nil {
			m.highs[g.ID] = best
		}
	}
}

func (m *ScoreboardModel) loadScores() {
	m.scores, m.loadErr = nil, nil
	if m.store != nil && len(m.games) > 0 {
		m.scores, m.loadErr = m.store.TopScores(m.current().ID, storage.LeaderboardLimit)
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		row := table.Row{fmt.Sprintf("#%d", i+1), s.Name, fmt.Sprintf("%d", s.Score)}
		if m.showDate {
			row = append(row, s.UpdatedAt.Format("Jan 02 15:04"))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.focusPlayer()
}

func (m *ScoreboardModel) focusPlayer() {
	if m.player == "" {
		return
	}
	name, err := storage.NormalizeName(m.player)
	if err != nil {
		return
	}
	for i, s := range m.scores {
		if s.Name == name {
			m.table.SetCursor(i)
			return
		}
	}
}

// move steps the advent cursor by delta, wrapping around.
func (m *ScoreboardModel) move(delta int) {
	n := len(m.games)
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
	m.loadScores()
}

// selectGame moves the cursor to id if it is a known board.
func (m *ScoreboardModel) selectGame(id string) {
	id = storage.CanonicalGameID(id)
	for i, g := range m.games {
		if g.ID == id {
			m.cursor = i
			m.loadScores()
			return
		}
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.move(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.move(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.loadScores()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || (m.goingBack && !m.embedded) {
		return ""
	}

	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(title.Render(centerText(fmt.Sprintf("TOP %d - %s", storage.LeaderboardLimit, m.current().Title), m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderCandles(), m.width))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(box.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderCandles draws one candle per advent, lit once its board has a score.
// Narrow terminals get a single "< title >" line instead.
func (m ScoreboardModel) renderCandles() string {
	if len(m.games) == 0 {
		return ""
	}
	if m.width < len(m.games)*(candleW+1) {
		return fmt.Sprintf("< %s >", m.current().Title)
	}

	candles := make([]string, len(m.games))
	for i, g := range m.games {
		flame, color := " ", lipgloss.Color("240")
		if m.highs[g.ID] > 0 {
			flame, color = "*", lipgloss.Color("214")
		}
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Width(candleW - 2).
			Align(lipgloss.Center)
		if i == m.cursor {
			style = style.BorderForeground(lipgloss.Color("229")).Bold(true)
		}
		label := fmt.Sprintf("%s %d. advent\nbest %d", flame, i+1, m.highs[g.ID])
		candles[i] = style.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, candles...)
}

func (m ScoreboardModel) renderTableContent() string {
	if m.loadErr != nil {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Padding(2, 4).
			Render("Could not load scores.")
	}
	if len(m.scores) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No scores yet.\nFinish a run to get on the board!")
	}
	return m.table.View()
}

// IsGoingBack reports whether the user closed the board.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard browses the leaderboards full screen, starting on gameID.
func RunScoreboard(store *storage.Store, gameID string, width, height int) error {
	model := NewScoreboardModel(store, width, height)
	model.selectGame(gameID)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
