package tui

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRunLedgerRecordsLevelsAndOutcome(t *testing.T) {
	store := openTestStore(t)
	l := NewRunLedger(store, nil)

	l.Start("invaders", 7, "hard", core.GameState{Level: 1, Phase: "PLAYING"})
	id := l.RunID()
	if id == "" {
		t.Fatal("Start should open a run")
	}

	l.Observe(core.GameState{Score: 100, Level: 1, Phase: "PLAYING"})
	l.Observe(core.GameState{Score: 450, Level: 1, Phase: "LEVELCLEAR"})
	l.Observe(core.GameState{Score: 450, Level: 1, Phase: "LEVELCLEAR"}) // no change
	l.Observe(core.GameState{Score: 450, Level: 2, Phase: "PLAYING"})
	l.Observe(core.GameState{Score: 600, Level: 2, Phase: "GAMEOVER", GameOver: true})

	levels, err := store.Levels(id)
	if err != nil {
		t.Fatalf("Levels() failed: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("got %d level results, want 2", len(levels))
	}
	if levels[0].Outcome != "LEVELCLEAR" || levels[0].Score != 450 {
		t.Errorf("level 1 = %+v", levels[0])
	}
	if levels[1].Outcome != "GAMEOVER" || levels[1].Level != 2 {
		t.Errorf("level 2 = %+v", levels[1])
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run.Outcome != "GAMEOVER" || run.Score != 600 || run.Level != 2 || run.Difficulty != "hard" {
		t.Errorf("run = %+v", run)
	}
}

func TestRunLedgerAbandon(t *testing.T) {
	store := openTestStore(t)
	l := NewRunLedger(store, nil)

	l.Start("invaders", 1, "", core.GameState{Level: 1, Phase: "PLAYING"})
	first := l.RunID()
	l.Observe(core.GameState{Score: 30, Level: 1, Phase: "PLAYING"})

	// Restarting abandons the open run.
	l.Start("invaders", 2, "", core.GameState{Level: 1, Phase: "PLAYING"})
	if l.RunID() == first {
		t.Fatal("Start should open a new run")
	}

	run, err := store.RunByID(first)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run.Outcome != storage.OutcomeAbandoned {
		t.Errorf("outcome = %q, want %q", run.Outcome, storage.OutcomeAbandoned)
	}

	// Abandon after a finished run keeps its outcome.
	second := l.RunID()
	l.Observe(core.GameState{Score: 80, Level: 1, Phase: "ALIENSWIN", GameOver: true})
	l.Abandon(core.GameState{Score: 80, Level: 1, Phase: "ALIENSWIN", GameOver: true})
	run, err = store.RunByID(second)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run.Outcome != "ALIENSWIN" {
		t.Errorf("outcome = %q, want ALIENSWIN", run.Outcome)
	}
}

func TestRunLedgerWithoutStore(t *testing.T) {
	l := NewRunLedger(nil, nil)
	l.Start("invaders", 1, "", core.GameState{Phase: "PLAYING"})
	l.Observe(core.GameState{Phase: "GAMEOVER", GameOver: true})
	l.Abandon(core.GameState{})

	if l.RunID() != "" {
		t.Error("ledger without store should not open runs")
	}
}
