package sim

import "sync"

// Phase is the run's lifecycle state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseLevelClear
	PhaseAliensWin
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "PLAYING"
	case PhaseLevelClear:
		return "LEVELCLEAR"
	case PhaseAliensWin:
		return "ALIENSWIN"
	case PhaseGameOver:
		return "GAMEOVER"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the run has ended.
func (p Phase) Terminal() bool {
	return p == PhaseAliensWin || p == PhaseGameOver
}

// RunState is the score, level and phase of a run. The world is the only
// writer; other goroutines read through Snapshot.
type RunState struct {
	mu    sync.RWMutex
	level int
	score int
	phase Phase
	delta float64
}

// RunSnapshot is a consistent copy of RunState.
type RunSnapshot struct {
	Level int
	Score int
	Phase Phase
	Delta float64
}

// Snapshot returns a copy safe to use from any goroutine.
func (r *RunState) Snapshot() RunSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RunSnapshot{Level: r.level, Score: r.score, Phase: r.phase, Delta: r.delta}
}

// Phase returns the current phase.
func (r *RunState) Phase() Phase {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.phase
}

// Score returns the current score.
func (r *RunState) Score() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.score
}

// Level returns the current level.
func (r *RunState) Level() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.level
}

func (r *RunState) reset(level int, delta float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.level = level
	r.score = 0
	r.phase = PhasePlaying
	r.delta = delta
}

// startLevel moves a non-terminal run to level and back into play.
func (r *RunState) startLevel(level int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase.Terminal() {
		return
	}
	r.level = level
	r.phase = PhasePlaying
}

// apply folds an event into the state. Terminal phases are sticky.
func (r *RunState) apply(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.score += ev.Score

	switch ev.Type {
	case EventPlayerDied:
		if !r.phase.Terminal() {
			r.phase = PhaseGameOver
		}
	case EventGroundBreached:
		if !r.phase.Terminal() {
			r.phase = PhaseAliensWin
		}
	case EventLevelCleared:
		if r.phase == PhasePlaying {
			r.phase = PhaseLevelClear
		}
	}
}
