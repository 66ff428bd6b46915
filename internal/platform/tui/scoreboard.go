package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	keybind "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tapsy/internal/memory"
	"github.com/vovakirdan/tapsy/internal/storage"
)

const (
	maxScores        = 100 // Rows loaded per tab
	scoreboardChrome = 9   // Lines around the table
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
)

// tabAccent is the highlight colour of each tab.
var tabAccent = [...]lipgloss.Color{"2", "1", "3", "4", "5"}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   keybind.Binding
	Down keybind.Binding
	Next keybind.Binding
	Prev keybind.Binding
	Back keybind.Binding
	Quit keybind.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []keybind.Binding {
	return []keybind.Binding{k.Prev, k.Next, k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]keybind.Binding {
	return [][]keybind.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   keybind.NewBinding(keybind.WithKeys("up", "k"), keybind.WithHelp("↑/k", "up")),
		Down: keybind.NewBinding(keybind.WithKeys("down", "j"), keybind.WithHelp("↓/j", "down")),
		Next: keybind.NewBinding(keybind.WithKeys("tab", "right", "l"), keybind.WithHelp("tab/→", "next")),
		Prev: keybind.NewBinding(keybind.WithKeys("shift+tab", "left", "h"), keybind.WithHelp("S-tab/←", "prev")),
		Back: keybind.NewBinding(keybind.WithKeys("esc", "b"), keybind.WithHelp("b", "menu")),
		Quit: keybind.NewBinding(keybind.WithKeys("q", "ctrl+c"), keybind.WithHelp("q", "quit")),
	}
}

// scoreboardTab is one page of the scoreboard: a mode's runs, or the
// leaderboard when leaderboard is set.
type scoreboardTab struct {
	title       string
	mode        memory.GameMode
	leaderboard bool
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	tabs      []scoreboardTab
	active    int
	store     *storage.Store
	rows      []table.Row
	summary   string
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	tabs := make([]scoreboardTab, 0, len(memory.Modes())+1)
	for _, mode := range memory.Modes() {
		tabs = append(tabs, scoreboardTab{title: mode.Title(), mode: mode})
	}
	tabs = append(tabs, scoreboardTab{title: "Leaderboard", leaderboard: true})

	m := ScoreboardModel{
		tabs:   tabs,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.loadRows()
	return m
}

// columns returns the columns of the current tab.
func (m *ScoreboardModel) columns() []table.Column {
	if m.tabs[m.active].leaderboard {
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Player", Width: 12},
			{Title: "Classic", Width: 8},
			{Title: "Reverse", Width: 8},
			{Title: "Hard", Width: 8},
			{Title: "Total", Width: 8},
		}
	}

	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 6},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 13},
	}
	// Wide terminals get a roomier player column
	if m.width >= 72 {
		columns[3].Width = 18
	}
	return columns
}

func (m *ScoreboardModel) newTable() table.Model {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("0")).
		Background(tabAccent[m.active%len(tabAccent)]).
		Bold(true)

	return table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-scoreboardChrome, 3)),
		table.WithStyles(styles),
	)
}

// loadRows loads the rows and summary of the current tab into the table.
func (m *ScoreboardModel) loadRows() {
	m.rows = nil
	m.summary = ""
	if m.store != nil {
		tab := m.tabs[m.active]
		if tab.leaderboard {
			m.rows = m.leaderboardRows()
		} else {
			m.rows = m.scoreRows(tab.mode)
			m.summary = m.modeSummary(tab.mode)
		}
	}

	// Rows must match the columns while they change.
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) scoreRows(mode memory.GameMode) []table.Row {
	scores, err := m.store.TopScores(mode.String(), maxScores)
	if err != nil {
		return nil
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		player := s.Username
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Level),
			player,
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (m *ScoreboardModel) modeSummary(mode memory.GameMode) string {
	stats, err := m.store.GetModeStats(mode.String())
	if err != nil || stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d games  ·  best %d  ·  level %d  ·  avg %.0f",
		stats.GamesCount, stats.HighScore, stats.BestLevel, stats.AvgScore)
}

func (m *ScoreboardModel) leaderboardRows() []table.Row {
	entries, err := m.store.Rankings(maxScores)
	if err != nil {
		return nil
	}
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Classic),
			fmt.Sprintf("%d", e.Reverse),
			fmt.Sprintf("%d", e.Hard),
			fmt.Sprintf("%d", e.Combined),
		}
	}
	return rows
}

// Rows returns the rows of the current tab.
func (m ScoreboardModel) Rows() []table.Row {
	return m.rows
}

// Tab returns the title of the current tab.
func (m ScoreboardModel) Tab() string {
	return m.tabs[m.active].title
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case keybind.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case keybind.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case keybind.Matches(msg, m.keys.Next):
			m.switchTab(1)
			return m, nil
		case keybind.Matches(msg, m.keys.Prev):
			m.switchTab(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.loadRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchTab(delta int) {
	m.active = (m.active + delta + len(m.tabs)) % len(m.tabs)
	m.table = m.newTable()
	m.loadRows()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render("S C O R E S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabBar(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render(m.summary), m.width))
	b.WriteString("\n")

	var body string
	switch {
	case len(m.rows) > 0:
		body = m.table.View()
	case m.tabs[m.active].leaderboard:
		body = boardEmptyStyle.Render("Nobody on the leaderboard yet.\nSet a username to take part!")
	default:
		body = boardEmptyStyle.Render("No scores recorded yet.\nPlay a round to set a high score!")
	}
	// Center the box as a block; centerText only pads single lines.
	box := boardBoxStyle.Render(body)
	b.WriteString(lipgloss.PlaceHorizontal(max(m.width, lipgloss.Width(box)), lipgloss.Center, box))
	b.WriteString("\n")

	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

// tabBar renders the tab titles, falling back to "< Title >" when they
// don't fit.
func (m ScoreboardModel) tabBar() string {
	parts := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.active {
			parts[i] = boardTabStyle.Bold(true).
				Foreground(lipgloss.Color("0")).
				Background(tabAccent[i%len(tabAccent)]).
				Render(tab.title)
			continue
		}
		parts[i] = boardTabStyle.Render(tab.title)
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(bar) > m.width {
		return fmt.Sprintf("< %s >", m.Tab())
	}
	return bar
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
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(
		model,
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
