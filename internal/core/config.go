package core

// ReferenceTickRate is the tick rate at which one tick advances the
// simulation by exactly one delta unit.
const ReferenceTickRate = 60

// RuntimeConfig is what the host hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second; 0 means ReferenceTickRate
	Seed     int64 // RNG seed; 0 lets the host pick one from the clock
}

func (c RuntimeConfig) rate() int {
	if c.TickRate <= 0 {
		return ReferenceTickRate
	}
	return c.TickRate
}

// Delta returns the per-tick elapsed time normalized to the reference rate:
// 1.0 at 60 ticks/s, 2.0 at 30 ticks/s.
func (c RuntimeConfig) Delta() float64 {
	return float64(ReferenceTickRate) / float64(c.rate())
}

// TickMillis returns the duration of one tick in milliseconds.
func (c RuntimeConfig) TickMillis() float64 {
	return 1000 / float64(c.rate())
}

// GameState is the part of a run the host shows and records.
type GameState struct {
	Score    int    // Current score
	Level    int    // Current level, 1-based
	Phase    string // Run phase name, e.g. "PLAYING" or "GAMEOVER"
	GameOver bool   // The run has ended
	Paused   bool
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}
