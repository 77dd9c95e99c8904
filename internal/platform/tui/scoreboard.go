package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tiltmaze/internal/registry"
	"github.com/vovakirdan/tiltmaze/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForStats = 80  // Minimum width to show the stats panel
	statsWidth       = 24  // Width of the stats panel
	maxRuns          = 100 // Max runs to load
)

// scoreFilters lists the outcome filters in cycling order. Empty means all.
var scoreFilters = []storage.Outcome{
	"",
	storage.OutcomeCompleted,
	storage.OutcomeHalted,
	storage.OutcomeQuit,
}

func filterLabel(o storage.Outcome) string {
	if o == "" {
		return "all"
	}
	return string(o)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextFilter, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextFilter, k.PrevFilter},
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
		NextFilter: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next filter"),
		),
		PrevFilter: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev filter"),
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

// ScoreboardModel is the Bubble Tea model for the run history screen.
type ScoreboardModel struct {
	gameID    string
	store     *storage.Store
	runs      []storage.Run // Best runs, unfiltered
	shown     []storage.Run // Runs matching the current filter
	stats     *storage.Stats
	filter    int // Index into scoreFilters
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a scoreboard for the runs of one game.
func NewScoreboardModel(store *storage.Store, gameID string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		gameID: gameID,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m ScoreboardModel) title() string {
	if info, ok := registry.Lookup(m.gameID); ok {
		return info.Title
	}
	return m.gameID
}

func (m ScoreboardModel) showStats() bool {
	return m.width >= minWidthForStats
}

// createTable creates a new table sized for the current window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 7},
		{Title: "Level", Width: 6},
		{Title: "Result", Width: 10},
		{Title: "Date", Width: 13},
	}

	tableWidth := m.width - 4
	if m.showStats() {
		tableWidth -= statsWidth + 3
	}
	if tableWidth > 60 {
		columns[4].Width = min(tableWidth-40, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads runs and stats from the store.
func (m *ScoreboardModel) load() {
	m.runs, m.stats = nil, nil
	if m.store != nil {
		if runs, err := m.store.TopRuns(m.gameID, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GameStats(m.gameID); err == nil {
			m.stats = stats
		}
	}
	m.applyFilter()
}

// applyFilter rebuilds the table rows for the current filter.
// Ranks follow the unfiltered order.
func (m *ScoreboardModel) applyFilter() {
	want := scoreFilters[m.filter]
	m.shown = nil
	rows := make([]table.Row, 0, len(m.runs))
	for i, r := range m.runs {
		if want != "" && r.Outcome != want {
			continue
		}
		m.shown = append(m.shown, r)
		rows = append(rows, table.Row{
			"#" + strconv.Itoa(i+1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Level),
			string(r.Outcome),
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycleFilter(step int) {
	n := len(scoreFilters)
	m.filter = ((m.filter+step)%n + n) % n
	m.applyFilter()
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
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextFilter):
			m.cycleFilter(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevFilter):
			m.cycleFilter(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.applyFilter()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("BEST RUNS - "+m.title(), m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderFilters(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showStats() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderStats(), "  ", tableRendered))
	} else {
		b.WriteString(centerText(tableRendered, m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderFilters draws the outcome filter tabs.
func (m ScoreboardModel) renderFilters() string {
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(scoreFilters))
	for i, f := range scoreFilters {
		if i == m.filter {
			tabs[i] = activeStyle.Render(filterLabel(f))
		} else {
			tabs[i] = tabStyle.Render(" " + filterLabel(f) + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// renderStats draws the aggregate panel.
func (m ScoreboardModel) renderStats() string {
	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(statsWidth).
		Padding(0, 1)

	var s strings.Builder
	s.WriteString("Stats\n")
	s.WriteString(strings.Repeat("-", statsWidth-4))
	s.WriteString("\n")

	if m.stats == nil || m.stats.Runs == 0 {
		s.WriteString("No runs yet")
		return panelStyle.Render(s.String())
	}

	fmt.Fprintf(&s, "Runs:       %d\n", m.stats.Runs)
	fmt.Fprintf(&s, "Completed:  %d\n", m.stats.Completed)
	fmt.Fprintf(&s, "Best:       %d\n", m.stats.HighScore)
	fmt.Fprintf(&s, "Best level: %d\n", m.stats.BestLevel)
	fmt.Fprintf(&s, "Average:    %.1f\n", m.stats.AvgScore)
	if !m.stats.LastPlayed.IsZero() {
		fmt.Fprintf(&s, "Last:       %s", m.stats.LastPlayed.Format("Jan 02"))
	}
	return panelStyle.Render(s.String())
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.shown) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		if len(m.runs) > 0 {
			return emptyStyle.Render(fmt.Sprintf("No %s runs.", filterLabel(scoreFilters[m.filter])))
		}
		return emptyStyle.Render("No runs recorded yet.\nFinish a maze to set a high score!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, gameID string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, gameID, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
