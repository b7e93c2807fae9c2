// Package sim is the invaders combat simulation: the alien formation, the
// player, projectiles, barriers and the bonus mothership, advanced in fixed
// ticks on a single goroutine.
//
// Each Step runs in phases: timers, continuous movement (contacts are only
// recorded), contact resolution, then end-of-tick compaction and event
// delivery. Entities are never removed from a collection while it is being
// iterated.
package sim

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// MaxDelta bounds a single tick's normalized elapsed time.
const MaxDelta = 4.0

// Options configures a World.
type Options struct {
	Seed     int64
	TickRate int         // Ticks per second; 0 means 60
	Level    int         // Starting level; 0 means cfg.Difficulty.StartLevel
	Assets   Assets      // nil means templates from cfg
	Logger   *log.Logger // nil discards
}

// World is one run of the simulation.
type World struct {
	cfg    config.InvadersConfig
	rng    *rand.Rand
	log    *log.Logger
	assets Assets

	delta  float64
	tickMs float64
	tick   uint64

	space    *Space
	sched    *Scheduler
	frame    Observers
	run      RunState
	queue    []Event
	sinks    []Sink
	contacts []contact

	player     *Player
	formation  *Formation
	mothership *MotherShipController

	input      Input
	levelTimer *Timer
	disposed   bool
}

// NewWorld builds a world and starts its first level.
func NewWorld(cfg config.InvadersConfig, opts Options) *World {
	rc := core.RuntimeConfig{TickRate: opts.TickRate}
	delta := min(rc.Delta(), MaxDelta)

	w := &World{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(opts.Seed)), //#nosec G404 -- deterministic gameplay RNG
		log:    opts.Logger,
		assets: opts.Assets,
		delta:  delta,
		tickMs: rc.TickMillis(),
		space:  NewSpace(),
		sched:  &Scheduler{},
	}
	if w.log == nil {
		w.log = log.New(io.Discard)
	}
	if w.assets == nil {
		w.assets = NewTemplateSet(cfg.Templates)
	}

	level := opts.Level
	if level <= 0 {
		level = cfg.Difficulty.StartLevel
	}
	if level <= 0 {
		level = 1
	}
	w.run.reset(level, delta)

	w.player = newPlayer(w)
	w.mothership = newMotherShipController(w)
	w.frame.Add(func(delta float64) { w.player.update(w.input, delta) })
	w.frame.Add(w.mothership.update)

	w.player.spawn()
	w.startLevel(level)
	w.space.Compact()
	return w
}

// Subscribe registers a sink for events delivered at the end of each tick.
// Events raised while building the world arrive with the first Step.
func (w *World) Subscribe(s Sink) {
	w.sinks = append(w.sinks, s)
}

// Run returns the run state.
func (w *World) Run() *RunState { return &w.run }

// Player returns the player.
func (w *World) Player() *Player { return w.player }

// Formation returns the current level's formation.
func (w *World) Formation() *Formation { return w.formation }

// MotherShip returns the mothership controller.
func (w *World) MotherShip() *MotherShipController { return w.mothership }

// Space returns the collision space.
func (w *World) Space() *Space { return w.space }

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 { return w.tick }

// Now returns simulated time in milliseconds.
func (w *World) Now() float64 { return w.sched.Now() }

// Delta returns the normalized per-tick elapsed time.
func (w *World) Delta() float64 { return w.delta }

// Config returns the configuration the world was built with.
func (w *World) Config() config.InvadersConfig { return w.cfg }

// Step advances the simulation by one tick. Terminal runs do not advance
// but still deliver queued events.
func (w *World) Step(in Input) {
	if w.disposed {
		return
	}
	if w.run.Phase().Terminal() {
		w.flush()
		return
	}
	w.tick++
	w.input = in

	w.sched.Advance(w.tickMs)
	w.frame.Run(w.delta)

	for _, c := range w.contacts {
		c.resolve(w)
	}
	clear(w.contacts)
	w.contacts = w.contacts[:0]

	w.compact()

	if w.run.Phase() == PhasePlaying && w.formation.Cleared() {
		w.publish(Event{Type: EventLevelCleared, Level: w.run.Level()})
		w.levelTimer = w.sched.After(w.cfg.Field.LevelDelayMs, func() {
			if w.disposed || w.run.Phase().Terminal() {
				return
			}
			w.startLevel(w.run.Level() + 1)
		})
	}

	w.flush()
}

// Dispose cancels every timer and observer and releases all bodies.
func (w *World) Dispose() {
	if w.disposed {
		return
	}
	w.disposed = true
	w.levelTimer.Stop()
	if w.formation != nil {
		w.formation.dispose()
	}
	w.mothership.dispose()
	w.player.dispose()
	w.space.Compact()
}

// startLevel replaces the formation with one built for level.
func (w *World) startLevel(level int) {
	if w.formation != nil {
		w.formation.dispose()
	}
	effective := level
	if w.cfg.Difficulty.Fixed {
		effective = 1
	}
	params := ComputeLevelParams(w.cfg, effective)
	params.Level = level

	w.run.startLevel(level)
	w.formation = newFormation(w, params)
	w.mothership.start(params)
	if w.tick > 0 {
		w.player.respawn()
	}
	if len(w.formation.Aliens()) == 0 {
		w.log.Warn("level spawned no aliens, holding level", "level", level)
	}
	w.publish(Event{Type: EventLevelStarted, Level: level})
	w.log.Debug("level started", "level", level, "columns", params.Columns, "rows", params.Rows,
		"fire_rate", params.FireRate, "barriers", params.Barriers)
}

func (w *World) compact() {
	w.formation.compact()
	w.player.compact()
	w.mothership.compact()
	w.space.Compact()
}

// clone instantiates a template. Failures are logged and reported as an
// event; the caller skips the spawn.
func (w *World) clone(template string) (*Body, bool) {
	body, err := w.assets.Clone(template)
	if err != nil || body == nil {
		w.log.Warn("spawn skipped", "template", template, "err", err)
		w.publish(Event{Type: EventSpawnFailed, Template: template})
		return nil, false
	}
	return body, true
}

func (w *World) recordContact(a, b *Body) {
	w.contacts = append(w.contacts, contact{a: a, b: b})
}

// publish applies ev to the run state now and queues it for sinks.
func (w *World) publish(ev Event) {
	ev.Tick = w.tick
	if ev.Level == 0 {
		ev.Level = w.run.Level()
	}
	w.run.apply(ev)
	w.queue = append(w.queue, ev)
}

// flush delivers queued events to every sink in publication order.
func (w *World) flush() {
	if len(w.queue) == 0 {
		return
	}
	events := w.queue
	w.queue = nil
	for _, ev := range events {
		for _, s := range w.sinks {
			s.HandleEvent(ev)
		}
	}
}
