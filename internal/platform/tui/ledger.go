package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// Phase names reported in core.GameState by the invaders game.
const (
	phaseLevelClear = "LEVELCLEAR"
)

// RunLedger records one run at a time into the store by watching the game
// state after every tick. A nil store turns it into a no-op.
type RunLedger struct {
	store  *storage.Store
	logger *log.Logger

	runID     string
	lastPhase string
	finished  bool
}

// NewRunLedger creates a ledger writer. logger may be nil.
func NewRunLedger(store *storage.Store, logger *log.Logger) *RunLedger {
	return &RunLedger{store: store, logger: logger}
}

// RunID returns the ID of the run being recorded, or "".
func (l *RunLedger) RunID() string {
	return l.runID
}

// Start opens a new run. An unfinished previous run is closed as abandoned.
func (l *RunLedger) Start(gameID string, seed int64, difficulty string, state core.GameState) {
	l.Abandon(state)
	l.runID = ""
	l.lastPhase = state.Phase
	l.finished = false
	if l.store == nil {
		return
	}

	id, err := l.store.StartRun(gameID, seed, difficulty)
	if err != nil {
		l.warn("could not start run", err)
		return
	}
	l.runID = id
}

// Observe records level and run results when the phase changes.
func (l *RunLedger) Observe(state core.GameState) {
	if state.Phase == l.lastPhase {
		return
	}
	l.lastPhase = state.Phase
	if l.runID == "" || l.finished {
		return
	}

	switch {
	case state.Phase == phaseLevelClear:
		if _, err := l.store.RecordLevel(l.runID, state.Level, state.Score, state.Phase); err != nil {
			l.warn("could not record level", err)
		}
	case state.GameOver:
		if _, err := l.store.RecordLevel(l.runID, state.Level, state.Score, state.Phase); err != nil {
			l.warn("could not record level", err)
		}
		if err := l.store.FinishRun(l.runID, state.Score, state.Level, state.Phase); err != nil {
			l.warn("could not finish run", err)
		}
		l.finished = true
	}
}

// Abandon closes the current run if it has not reached a terminal phase.
func (l *RunLedger) Abandon(state core.GameState) {
	if l.runID == "" || l.finished {
		return
	}
	if err := l.store.FinishRun(l.runID, state.Score, state.Level, storage.OutcomeAbandoned); err != nil {
		l.warn("could not close run", err)
	}
	l.finished = true
}

func (l *RunLedger) warn(msg string, err error) {
	if l.logger != nil {
		l.logger.Warn(msg, "run", l.runID, "error", err)
	}
}
