package sim

import (
	"math"
	"time"

	"golang.org/x/time/rate"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

// Input is the player's control state for one tick.
type Input struct {
	Left  bool
	Right bool
	Fire  bool
}

// Player is the ship at the bottom of the field.
type Player struct {
	w   *World
	cfg config.PlayerConfig

	body     *Body
	lives    int
	momentum float64
	alive    bool

	invincible bool
	invTimer   *Timer
	visible    bool

	bullets  []*Bullet
	fireHeld bool
	limiter  *rate.Limiter
}

// simEpoch anchors simulated milliseconds to wall-clock values for the limiter.
var simEpoch = time.Unix(0, 0)

func simTime(ms float64) time.Time {
	return simEpoch.Add(time.Duration(ms * float64(time.Millisecond)))
}

func newPlayer(w *World) *Player {
	p := &Player{
		w:       w,
		cfg:     w.cfg.Player,
		lives:   w.cfg.Player.Lives,
		visible: true,
	}
	if p.cfg.FireCooldownMs > 0 {
		p.limiter = rate.NewLimiter(rate.Every(time.Duration(p.cfg.FireCooldownMs*float64(time.Millisecond))), 1)
	}
	return p
}

// spawn places the player at the start position. A missing template leaves
// the player without a body; it cannot be hit but the run continues.
func (p *Player) spawn() {
	body, ok := p.w.clone(config.TemplatePlayer)
	if !ok {
		return
	}
	body.classify(KindPlayer, p)
	body.Lives = p.lives
	body.Pos = Vec2{X: 0, Y: p.w.cfg.Field.PlayerY}
	p.w.space.Add(body)
	p.body = body
	p.alive = true
	p.SetInvincible(p.cfg.InvincibleMs)
}

// Body returns the player's body, or nil before spawn or after death.
func (p *Player) Body() *Body { return p.body }

// Lives returns the remaining lives.
func (p *Player) Lives() int { return p.lives }

// Alive reports whether the player is still in play.
func (p *Player) Alive() bool { return p.alive }

// Invincible reports whether collisions are currently disabled.
func (p *Player) Invincible() bool { return p.invincible }

// Visible reports whether the ship is drawn this tick. It alternates while invincible.
func (p *Player) Visible() bool { return p.alive && p.visible }

// Momentum returns the horizontal velocity in units per reference tick.
func (p *Player) Momentum() float64 { return p.momentum }

// Bullets returns the player's bullets in flight.
func (p *Player) Bullets() []*Bullet { return p.bullets }

// SetInvincible disables collisions for ms milliseconds. A new window
// replaces any window already running.
func (p *Player) SetInvincible(ms float64) {
	if !p.alive || p.body == nil || ms <= 0 {
		return
	}
	p.invTimer.Stop()
	p.invincible = true
	p.body.SetCollisions(false)
	p.invTimer = p.w.sched.After(ms, func() {
		if !p.alive || p.body == nil || p.body.Released() {
			return
		}
		p.invincible = false
		p.visible = true
		p.body.SetCollisions(true)
	})
}

// Hit removes a life and disposes the projectile that caused it, if any.
// The last life ends the run.
func (p *Player) Hit(projectile *Bullet) {
	if projectile != nil {
		projectile.Destroy()
	}
	if !p.alive {
		return
	}
	p.lives--
	if p.body != nil {
		p.body.Lives = p.lives
	}
	pos := Vec2{}
	if p.body != nil {
		pos = p.body.Pos
	}
	p.w.publish(Event{Type: EventPlayerHit, Pos: pos, Kind: KindPlayer, Lives: p.lives})

	if p.lives <= 0 {
		p.die(pos)
		return
	}
	p.SetInvincible(p.cfg.RespawnInvincibleMs)
}

func (p *Player) die(pos Vec2) {
	p.alive = false
	p.invTimer.Stop()
	p.invTimer = nil
	p.w.space.Release(p.body)
	p.w.publish(Event{Type: EventPlayerDied, Pos: pos, Kind: KindPlayer, Explosion: Explosion{Size: 1, Particles: 20}})
}

// respawn recenters a live player for a new level with a fresh invincibility window.
func (p *Player) respawn() {
	if !p.alive || p.body == nil {
		return
	}
	for _, b := range p.bullets {
		b.Destroy()
	}
	p.body.Pos = Vec2{X: 0, Y: p.w.cfg.Field.PlayerY}
	p.momentum = 0
	p.SetInvincible(p.cfg.InvincibleMs)
}

// update applies input, moves the ship and its bullets.
func (p *Player) update(in Input, delta float64) {
	field := p.w.cfg.Field
	for _, b := range p.bullets {
		if blocker := b.update(delta, field.FloorY, field.CeilingY); blocker != nil {
			p.w.recordContact(b.body, blocker)
		}
	}

	if !p.alive || p.body == nil {
		return
	}

	if p.invincible && p.cfg.FlickerPeriodMs > 0 {
		p.visible = math.Mod(p.w.sched.Now(), p.cfg.FlickerPeriodMs) < p.cfg.FlickerPeriodMs/2
	} else {
		p.visible = true
	}

	if in.Left {
		p.momentum -= p.cfg.Accel * delta
	}
	if in.Right {
		p.momentum += p.cfg.Accel * delta
	}
	if p.cfg.MaxMomentum > 0 {
		p.momentum = math.Max(-p.cfg.MaxMomentum, math.Min(p.cfg.MaxMomentum, p.momentum))
	}

	if in.Fire {
		if !p.fireHeld && p.tryFire() {
			p.fireHeld = true
		}
	} else {
		p.fireHeld = false
	}

	if blocker := p.w.space.Move(p.body, Vec2{X: p.momentum * delta}); blocker != nil {
		p.w.recordContact(p.body, blocker)
	}
	if p.cfg.Decay > 1 {
		p.momentum /= math.Pow(p.cfg.Decay, delta)
	}
	if p.body.Pos.X < field.PlayerMinX {
		p.body.Pos.X = field.PlayerMinX
		p.momentum = 0
	} else if p.body.Pos.X > field.PlayerMaxX {
		p.body.Pos.X = field.PlayerMaxX
		p.momentum = 0
	}
}

func (p *Player) tryFire() bool {
	if len(p.bullets) >= p.cfg.MaxBullets {
		return false
	}
	if p.limiter != nil && !p.limiter.AllowN(simTime(p.w.sched.Now()), 1) {
		return false
	}
	body, ok := p.w.clone(config.TemplatePlayerBullet)
	if !ok {
		return false
	}
	bc := p.w.cfg.Bullets
	pos := p.body.Pos.Add(Vec2{Y: bc.PlayerOffset})
	p.bullets = append(p.bullets, newBullet(body, p.w.space, KindPlayerBullet, pos, Vec2{Y: bc.PlayerSpeed}))
	p.w.publish(Event{Type: EventPlayerFired, Pos: pos, Kind: KindPlayer})
	return true
}

func (p *Player) compact() {
	p.bullets = pruneBullets(p.bullets)
}

// dispose ends the player's participation and cancels its timer.
func (p *Player) dispose() {
	p.alive = false
	p.invTimer.Stop()
	p.invTimer = nil
	p.w.space.Release(p.body)
	for _, b := range p.bullets {
		b.Destroy()
	}
	p.bullets = nil
}
