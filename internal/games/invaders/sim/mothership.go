package sim

import (
	"math/rand"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

// MotherShip is the bonus ship crossing the top of the field.
type MotherShip struct {
	body      *Body
	space     *Space
	pub       publisher
	vel       float64
	score     int
	destroyed bool
}

// Body returns the ship's physical body.
func (m *MotherShip) Body() *Body { return m.body }

// Alive reports whether the ship is still flying.
func (m *MotherShip) Alive() bool { return !m.destroyed }

// Destroy awards the ship's score. Only the first call has effect.
func (m *MotherShip) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.space.Release(m.body)
	m.pub.publish(Event{
		Type:      EventMotherShipDestroyed,
		Pos:       m.body.Pos,
		Kind:      KindMotherShip,
		Score:     m.score,
		Explosion: Explosion{Size: 1.5, Particles: 30},
	})
}

func (m *MotherShip) escape() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.space.Release(m.body)
	m.pub.publish(Event{Type: EventMotherShipEscaped, Pos: m.body.Pos, Kind: KindMotherShip})
}

// MotherShipController spawns a ship on a recurring interval and fires
// from it with the same per-tick model as the formation.
type MotherShipController struct {
	w        *World
	cfg      config.MotherShipConfig
	rng      *rand.Rand
	ship     *MotherShip
	bullets  []*Bullet
	timer    *Timer
	interval float64 // ms
	fireRate float64
}

func newMotherShipController(w *World) *MotherShipController {
	return &MotherShipController{w: w, cfg: w.cfg.MotherShip, rng: w.rng}
}

// Ship returns the active ship or nil.
func (c *MotherShipController) Ship() *MotherShip {
	if c.ship == nil || !c.ship.Alive() {
		return nil
	}
	return c.ship
}

// Bullets returns the ship's bullets in flight.
func (c *MotherShipController) Bullets() []*Bullet { return c.bullets }

// IntervalMs returns the current spawn interval.
func (c *MotherShipController) IntervalMs() float64 { return c.interval }

// FireRate returns the current shots-per-second rate.
func (c *MotherShipController) FireRate() float64 { return c.fireRate }

// start applies level parameters and arms the spawn timer. Any ship still
// flying from the previous level leaves silently.
func (c *MotherShipController) start(p LevelParams) {
	c.stop()
	c.interval = p.MotherShipIntervalSec * 1000
	c.fireRate = p.MotherShipFireRate
	c.arm()
}

func (c *MotherShipController) arm() {
	if c.interval <= 0 {
		return
	}
	c.timer = c.w.sched.After(c.interval, func() {
		if c.w.disposed {
			return
		}
		c.spawn()
		c.arm()
	})
}

func (c *MotherShipController) spawn() {
	if c.Ship() != nil || c.w.run.Phase() != PhasePlaying {
		return
	}
	body, ok := c.w.clone(config.TemplateMotherShip)
	if !ok {
		return
	}
	side := 1.0
	if c.rng.Intn(2) == 0 {
		side = -1
	}
	hw, _ := body.extent()
	ship := &MotherShip{
		body:  body,
		space: c.w.space,
		pub:   c.w,
		vel:   -side * c.cfg.Speed,
		score: c.cfg.Score,
	}
	body.classify(KindMotherShip, ship)
	body.ScoreValue = c.cfg.Score
	body.Lives = 1
	body.Pos = Vec2{X: side * (c.w.cfg.Field.PlayerMaxX + hw), Y: c.cfg.Y}
	c.w.space.Add(body)
	c.ship = ship
	c.w.publish(Event{Type: EventMotherShipSpawned, Pos: body.Pos, Kind: KindMotherShip})
}

// update runs once per tick from the world's observer list.
func (c *MotherShipController) update(delta float64) {
	field := c.w.cfg.Field
	if ship := c.Ship(); ship != nil {
		if blocker := c.w.space.Move(ship.body, Vec2{X: ship.vel * delta}); blocker != nil {
			c.w.recordContact(ship.body, blocker)
		}
		hw, _ := ship.body.extent()
		limit := field.PlayerMaxX + hw
		if (ship.vel > 0 && ship.body.Pos.X > limit) || (ship.vel < 0 && ship.body.Pos.X < -limit) {
			ship.escape()
		} else if c.w.run.Phase() == PhasePlaying && rollFire(c.rng, c.fireRate, delta) {
			c.fire(ship)
		}
	}

	for _, b := range c.bullets {
		if blocker := b.update(delta, field.FloorY, field.CeilingY); blocker != nil {
			c.w.recordContact(b.body, blocker)
		}
	}
}

func (c *MotherShipController) fire(ship *MotherShip) {
	body, ok := c.w.clone(config.TemplateAlienBullet)
	if !ok {
		return
	}
	bc := c.w.cfg.Bullets
	pos := ship.body.Pos.Add(Vec2{Y: bc.AlienOffset})
	vel := spreadVelocity(c.rng, bc.AlienSpeed, bc.SpreadArc)
	c.bullets = append(c.bullets, newBullet(body, c.w.space, KindAlienBullet, pos, vel))
	c.w.publish(Event{Type: EventAlienFired, Pos: pos, Kind: KindMotherShip})
}

func (c *MotherShipController) compact() {
	c.bullets = pruneBullets(c.bullets)
	if c.ship != nil && !c.ship.Alive() {
		c.ship = nil
	}
}

// stop cancels the spawn timer and removes the ship without scoring.
func (c *MotherShipController) stop() {
	c.timer.Stop()
	c.timer = nil
	if c.ship != nil && c.ship.Alive() {
		c.ship.destroyed = true
		c.w.space.Release(c.ship.body)
	}
	c.ship = nil
}

// dispose stops the controller and drops its bullets.
func (c *MotherShipController) dispose() {
	c.stop()
	for _, b := range c.bullets {
		b.Destroy()
	}
	c.bullets = nil
}
