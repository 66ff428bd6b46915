package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tapsy/internal/core"
	"github.com/vovakirdan/tapsy/internal/memory"
	"github.com/vovakirdan/tapsy/internal/storage"
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	menuPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// MenuItem is a selectable game mode.
type MenuItem struct {
	Mode memory.GameMode
	Best int
}

// MenuModel is the Bubble Tea model for the mode picker. Picking a mode or
// opening the scoreboard ends the program; the caller reads the choice.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	profile   storage.Profile
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	selected       *MenuItem
	openScoreboard bool
	quitting       bool
}

// NewMenuModel creates the menu. A nil store shows no best scores.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var best map[string]int
	var profile storage.Profile
	if store != nil {
		profile, _ = store.Profile()
		best, _ = store.BestScores(profile.Username)
	}

	var items []MenuItem
	for _, mode := range memory.Modes() {
		items = append(items, MenuItem{Mode: mode, Best: best[mode.String()]})
	}

	return MenuModel{
		items:     items,
		profile:   profile,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and records the player's choice.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case tea.KeyMsg:
		if n, ok := digit(msg); ok && n >= 1 && n <= len(m.items) {
			return m.choose(n - 1)
		}

		n := len(m.items)
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.cursor = (m.cursor + n - 1) % n
		case MenuActionDown:
			m.cursor = (m.cursor + 1) % n
		case MenuActionSelect:
			return m.choose(m.cursor)
		case MenuActionScoreboard:
			m.openScoreboard = true
			return m, tea.Quit
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MenuModel) choose(i int) (tea.Model, tea.Cmd) {
	m.cursor = i
	item := m.items[i]
	m.selected = &item
	return m, tea.Quit
}

// digit returns the value of a single digit key.
func digit(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '0'), true
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	width := m.config.ScreenW

	lines := []string{
		"",
		menuTitleStyle.Render("T A P S Y"),
		menuDimStyle.Render("Watch. Remember. Repeat."),
		m.tilePreview(),
		"",
	}
	if who := m.profileLine(); who != "" {
		lines = append(lines, menuDimStyle.Render(who), "")
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(centerText(l, width))
		b.WriteString("\n")
	}

	card := menuCardStyle.Render(m.modeList())
	b.WriteString(lipgloss.PlaceHorizontal(max(width, lipgloss.Width(card)), lipgloss.Center, card))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render("↑/↓ move  ·  enter or 1-4 play  ·  tab scores  ·  q quit"), width))
	b.WriteString("\n")
	return b.String()
}

// tilePreview is a row of the four tile colours.
func (m MenuModel) tilePreview() string {
	blocks := make([]string, len(tileColors))
	for i, c := range tileColors {
		blocks[i] = colorStyles[c].Render("██")
	}
	return strings.Join(blocks, " ")
}

func (m MenuModel) profileLine() string {
	p := m.profile
	if p.Username == "" && p.GamesPlayed == 0 {
		return ""
	}
	who := p.Username
	if who == "" {
		who = "player"
	}
	streak := "day"
	if p.StreakDays != 1 {
		streak = "days"
	}
	return fmt.Sprintf("%s  ·  %d games  ·  %d %s streak", who, p.GamesPlayed, p.StreakDays, streak)
}

func (m MenuModel) modeList() string {
	rows := make([]string, len(m.items))
	for i, item := range m.items {
		best := "-"
		if item.Best > 0 {
			best = fmt.Sprint(item.Best)
		}
		row := fmt.Sprintf("%d  %-8s %-30s %6s", i+1, item.Mode.Title(), item.Mode.Description(), best)
		if i == m.cursor {
			rows[i] = menuPickStyle.Render("▸ " + row)
		} else {
			rows[i] = "  " + row
		}
	}
	header := menuDimStyle.Render(fmt.Sprintf("   %-8s %-30s %6s", "Mode", "", "Best"))
	return header + "\n" + strings.Join(rows, "\n")
}

// Selected returns the picked mode, or nil if none was picked.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the player quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the player opened the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads a single line to the middle of width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is what the player chose in RunMenu.
type MenuResult struct {
	Mode            memory.GameMode
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the mode picker as its own program.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.selected != nil:
		res.Mode = m.selected.Mode
	default:
		res.Quit = true
	}
	return res, nil
}
