package sim

// EventType enumerates simulation events.
type EventType int

const (
	EventLevelStarted EventType = iota
	EventFormationStep
	EventFormationDescend
	EventAlienFired
	EventAlienHit
	EventAlienDestroyed
	EventPlayerFired
	EventPlayerHit
	EventPlayerDied
	EventBrickDestroyed
	EventBarrierDestroyed
	EventMotherShipSpawned
	EventMotherShipEscaped
	EventMotherShipDestroyed
	EventGroundBreached
	EventLevelCleared
	EventSpawnFailed
)

var eventNames = [...]string{
	EventLevelStarted:        "level_started",
	EventFormationStep:       "formation_step",
	EventFormationDescend:    "formation_descend",
	EventAlienFired:          "alien_fired",
	EventAlienHit:            "alien_hit",
	EventAlienDestroyed:      "alien_destroyed",
	EventPlayerFired:         "player_fired",
	EventPlayerHit:           "player_hit",
	EventPlayerDied:          "player_died",
	EventBrickDestroyed:      "brick_destroyed",
	EventBarrierDestroyed:    "barrier_destroyed",
	EventMotherShipSpawned:   "mothership_spawned",
	EventMotherShipEscaped:   "mothership_escaped",
	EventMotherShipDestroyed: "mothership_destroyed",
	EventGroundBreached:      "ground_breached",
	EventLevelCleared:        "level_cleared",
	EventSpawnFailed:         "spawn_failed",
}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// EventTypes lists every event type in declaration order.
func EventTypes() []EventType {
	out := make([]EventType, len(eventNames))
	for i := range out {
		out[i] = EventType(i)
	}
	return out
}

// Explosion is the visual effect reported with a scored destruction.
type Explosion struct {
	Size      float64
	Particles int
}

// Event is a single simulation occurrence. Fields not relevant to Type are zero.
type Event struct {
	Type      EventType
	Tick      uint64
	Pos       Vec2
	Kind      Kind
	Tier      int
	Score     int // Points awarded by this event
	Lives     int // Remaining lives after a hit
	Level     int
	Explosion Explosion
	Template  string // Set on EventSpawnFailed
}

// Sink receives events after each tick.
type Sink interface {
	HandleEvent(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// HandleEvent calls f(ev).
func (f SinkFunc) HandleEvent(ev Event) { f(ev) }

// publisher is what entities see of the world: a way to report events.
type publisher interface {
	publish(Event)
}
