package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tiltmaze/internal/storage"
)

func seedRuns(t *testing.T, store *storage.Store) {
	t.Helper()
	runs := []storage.Run{
		{GameID: "maze", Score: 40, Level: 5, Outcome: storage.OutcomeCompleted},
		{GameID: "maze", Score: 12, Level: 3, Outcome: storage.OutcomeHalted},
		{GameID: "maze", Score: -2, Level: 1, Outcome: storage.OutcomeQuit},
		{GameID: "other", Score: 99, Level: 9, Outcome: storage.OutcomeCompleted},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}
}

func TestScoreboardFilters(t *testing.T) {
	store := openStore(t)
	seedRuns(t, store)

	m := NewScoreboardModel(store, "maze", 100, 30)
	if len(m.shown) != 3 {
		t.Fatalf("shown = %d, want 3 runs of one game", len(m.shown))
	}
	if m.stats == nil || m.stats.Runs != 3 || m.stats.HighScore != 40 {
		t.Fatalf("stats = %+v", m.stats)
	}

	tests := []struct {
		key   string
		label string
		want  []int
	}{
		{"tab", "completed", []int{40}},
		{"tab", "halted", []int{12}},
		{"tab", "quit", []int{-2}},
		{"tab", "all", []int{40, 12, -2}},
		{"shift+tab", "quit", []int{-2}},
	}
	for _, tt := range tests {
		var msg tea.KeyMsg
		if tt.key == "shift+tab" {
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		} else {
			msg = keyMsg(tt.key)
		}
		next, _ := m.Update(msg)
		m = next.(ScoreboardModel)

		if got := filterLabel(scoreFilters[m.filter]); got != tt.label {
			t.Fatalf("filter = %q, want %q", got, tt.label)
		}
		if len(m.shown) != len(tt.want) {
			t.Fatalf("%s: shown = %d, want %d", tt.label, len(m.shown), len(tt.want))
		}
		for i, score := range tt.want {
			if m.shown[i].Score != score {
				t.Errorf("%s: shown[%d].Score = %d, want %d", tt.label, i, m.shown[i].Score, score)
			}
		}
	}
}

func TestScoreboardView(t *testing.T) {
	store := openStore(t)
	seedRuns(t, store)

	wide := NewScoreboardModel(store, "maze", 100, 30).View()
	for _, want := range []string{"BEST RUNS - maze", "Stats", "Runs:", "completed"} {
		if !strings.Contains(wide, want) {
			t.Errorf("wide view missing %q", want)
		}
	}

	narrow := NewScoreboardModel(store, "maze", 60, 30).View()
	if strings.Contains(narrow, "Stats") {
		t.Error("narrow view should hide the stats panel")
	}

	empty := NewScoreboardModel(nil, "maze", 100, 30).View()
	if !strings.Contains(empty, "No runs recorded yet") {
		t.Error("view without store should show the empty message")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, "maze", 80, 24)

	next, cmd := m.Update(keyMsg("b"))
	if !next.(ScoreboardModel).IsGoingBack() || cmd == nil {
		t.Error("b should go back")
	}

	next, cmd = m.Update(keyMsg("q"))
	if !next.(ScoreboardModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}
