package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tapsy/internal/storage"
)

func sendBoard(m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	next, _ := m.Update(msg)
	return next.(ScoreboardModel)
}

func TestScoreboardTabs(t *testing.T) {
	store := openTestStore(t)
	for _, e := range []storage.ScoreEntry{
		{Mode: "classic", Score: 30, Level: 4, RunID: "a", Username: "ada"},
		{Mode: "classic", Score: 50, Level: 6, RunID: "b"},
		{Mode: "speed", Score: 15, Level: 2, RunID: "c"},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, _, err := store.SubmitScore(storage.CategoryClassic, 30, "ada"); err != nil {
		t.Fatalf("SubmitScore() failed: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	if m.Tab() != "Classic" {
		t.Fatalf("Tab() = %q, expected Classic", m.Tab())
	}
	rows := m.Rows()
	if len(rows) != 2 || rows[0][1] != "50" || rows[0][3] != "-" || rows[1][3] != "ada" {
		t.Errorf("Rows() = %v, expected 50 (no player) then 30 by ada", rows)
	}
	if !strings.Contains(m.View(), "2 games") {
		t.Errorf("View() should summarise the mode:\n%s", m.View())
	}

	m = sendBoard(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Tab() != "Speed" || len(m.Rows()) != 1 {
		t.Errorf("Tab() = %q with %d rows, expected Speed with 1", m.Tab(), len(m.Rows()))
	}

	// Wraps around backwards to the leaderboard
	m = sendBoard(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = sendBoard(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Tab() != "Leaderboard" {
		t.Fatalf("Tab() = %q, expected Leaderboard", m.Tab())
	}
	rows = m.Rows()
	if len(rows) != 1 || rows[0][1] != "ada" || rows[0][5] != "30" {
		t.Errorf("Rows() = %v, expected ada with 30 in total", rows)
	}
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if len(m.Rows()) != 0 {
		t.Errorf("Rows() = %v without a store, expected none", m.Rows())
	}
	if !strings.Contains(m.View(), "No scores recorded yet.") {
		t.Errorf("View() should explain the empty board:\n%s", m.View())
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := sendBoard(NewScoreboardModel(nil, 80, 24), key("b"))
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("b should go back without quitting")
	}

	m = sendBoard(NewScoreboardModel(nil, 80, 24), key("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}
