package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tapsy/internal/core"
	"github.com/vovakirdan/tapsy/internal/memory"
	"github.com/vovakirdan/tapsy/internal/storage"
)

func sendMenu(m MenuModel, msg tea.Msg) MenuModel {
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuCursorWraps(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())

	m = sendMenu(m, key("k"))
	if m.cursor != len(memory.Modes())-1 {
		t.Errorf("cursor = %d after moving up from the top, expected the last mode", m.cursor)
	}
	m = sendMenu(m, key("j"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected 0", m.cursor)
	}

	m = sendMenu(m, key("j"))
	m = sendMenu(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() == nil || m.Selected().Mode != memory.ModeSpeed {
		t.Errorf("Selected() = %+v, expected speed", m.Selected())
	}
}

func TestMenuDigitPicksMode(t *testing.T) {
	tests := []struct {
		key      string
		expected *memory.GameMode
	}{
		{"1", ptr(memory.ModeClassic)},
		{"3", ptr(memory.ModeReverse)},
		{"4", ptr(memory.ModeZen)},
		{"5", nil},
		{"0", nil},
	}

	for _, tt := range tests {
		m := sendMenu(NewMenuModel(nil, core.DefaultConfig()), key(tt.key))
		switch {
		case tt.expected == nil && m.Selected() != nil:
			t.Errorf("%s: Selected() = %v, expected nothing", tt.key, m.Selected().Mode)
		case tt.expected != nil && (m.Selected() == nil || m.Selected().Mode != *tt.expected):
			t.Errorf("%s: Selected() = %+v, expected %v", tt.key, m.Selected(), *tt.expected)
		}
	}
}

func ptr[T any](v T) *T { return &v }

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := sendMenu(NewMenuModel(nil, core.DefaultConfig()), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}

	m = sendMenu(NewMenuModel(nil, core.DefaultConfig()), key("q"))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit and clear the view")
	}
}

func TestMenuShowsBestAndProfile(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore(storage.ScoreEntry{Mode: "reverse", Score: 42, Level: 5, RunID: "r", Username: "lin"}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if err := store.SetUsername("Lin"); err != nil {
		t.Fatalf("SetUsername() failed: %v", err)
	}

	m := NewMenuModel(store, core.DefaultConfig())
	if m.items[memory.ModeReverse].Best != 42 {
		t.Errorf("Best = %d for reverse, expected 42", m.items[memory.ModeReverse].Best)
	}

	view := m.View()
	for _, want := range []string{"T A P S Y", "Reverse", "42", "lin"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() is missing %q:\n%s", want, view)
		}
	}
}

func TestMenuResize(t *testing.T) {
	m := sendMenu(NewMenuModel(nil, core.DefaultConfig()), tea.WindowSizeMsg{Width: 120, Height: 40})
	if cfg := m.Config(); cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %+v, expected 120x40", cfg)
	}
}
