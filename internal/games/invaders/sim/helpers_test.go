package sim

import (
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

func newTestWorld(t *testing.T, mutate func(*config.InvadersConfig)) *World {
	t.Helper()
	cfg := config.DefaultInvadersConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	w := NewWorld(cfg, Options{Seed: 42, TickRate: 60})
	t.Cleanup(w.Dispose)
	return w
}

// makeVulnerable ends the spawn invincibility window immediately.
func makeVulnerable(p *Player) {
	p.invTimer.Stop()
	p.invincible = false
	p.body.SetCollisions(true)
}

func spawnAlienBullet(t *testing.T, w *World, pos Vec2) *Bullet {
	t.Helper()
	body, ok := w.clone(config.TemplateAlienBullet)
	if !ok {
		t.Fatal("clone alien bullet")
	}
	b := newBullet(body, w.space, KindAlienBullet, pos, Vec2{Y: -0.5})
	w.formation.bullets = append(w.formation.bullets, b)
	return b
}

func spawnPlayerBullet(t *testing.T, w *World, pos Vec2) *Bullet {
	t.Helper()
	body, ok := w.clone(config.TemplatePlayerBullet)
	if !ok {
		t.Fatal("clone player bullet")
	}
	b := newBullet(body, w.space, KindPlayerBullet, pos, Vec2{Y: 1.25})
	w.player.bullets = append(w.player.bullets, b)
	return b
}

// eventCounter records events by type.
type eventCounter struct {
	counts map[EventType]int
	events []Event
}

func newEventCounter(w *World) *eventCounter {
	c := &eventCounter{counts: make(map[EventType]int)}
	w.Subscribe(SinkFunc(func(ev Event) {
		c.counts[ev.Type]++
		c.events = append(c.events, ev)
	}))
	return c
}

func stepN(w *World, n int, in Input) {
	for range n {
		w.Step(in)
	}
}
