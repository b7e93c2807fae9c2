package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func updateScoreboard(t *testing.T, m ScoreboardModel, msgs ...tea.Msg) ScoreboardModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		board, ok := next.(ScoreboardModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = board
	}
	return m
}

func TestScoreboardEmptyLedger(t *testing.T) {
	m := NewScoreboardModel(openTestStore(t), 80, 24)
	view := m.View()
	if !strings.Contains(view, "RUN LEDGER") {
		t.Error("view should carry the ledger title")
	}
	if !strings.Contains(view, "No runs recorded yet.") {
		t.Errorf("empty ledger view = %q", view)
	}
}

func TestScoreboardShowsRunsAndLevels(t *testing.T) {
	store := openTestStore(t)
	id, err := store.StartRun(scriptedID, 7, "normal")
	if err != nil {
		t.Fatalf("StartRun() failed: %v", err)
	}
	if _, err := store.RecordLevel(id, 1, 450, phaseLevelClear); err != nil {
		t.Fatalf("RecordLevel() failed: %v", err)
	}
	if _, err := store.RecordLevel(id, 2, 620, "GAMEOVER"); err != nil {
		t.Fatalf("RecordLevel() failed: %v", err)
	}
	if err := store.FinishRun(id, 620, 2, "GAMEOVER"); err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	if len(m.runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(m.runs))
	}
	if view := m.View(); !strings.Contains(view, "620") || !strings.Contains(view, "GAMEOVER") {
		t.Errorf("run row missing from view:\n%s", view)
	}

	m = updateScoreboard(t, m, keyMsg("enter"))
	if !m.showLevels {
		t.Fatal("enter should show the level history")
	}
	view := m.View()
	for _, want := range []string{"L1 ✓ 450", "L2 ✗ 620"} {
		if !strings.Contains(view, want) {
			t.Errorf("level history missing %q", want)
		}
	}

	m = updateScoreboard(t, m, keyMsg("enter"))
	if m.showLevels {
		t.Error("enter should hide the level history again")
	}
}

func TestScoreboardCycleWraps(t *testing.T) {
	m := NewScoreboardModel(openTestStore(t), 80, 24)
	n := len(m.games)
	if n == 0 {
		t.Fatal("no registered games")
	}
	m.cycle(-1)
	if m.current != n-1 {
		t.Errorf("prev from first = %d, want %d", m.current, n-1)
	}
	m.cycle(1)
	if m.current != 0 {
		t.Errorf("next from last = %d, want 0", m.current)
	}
}

func TestScoreboardExit(t *testing.T) {
	tests := []struct {
		key      string
		back     bool
		quitting bool
	}{
		{"esc", true, false},
		{"q", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := updateScoreboard(t, NewScoreboardModel(nil, 80, 24), keyMsg(tt.key))
			if m.IsGoingBack() != tt.back || m.IsQuitting() != tt.quitting {
				t.Errorf("back = %v quitting = %v", m.IsGoingBack(), m.IsQuitting())
			}
			if m.View() != "" {
				t.Error("view should be empty after leaving")
			}
		})
	}
}
