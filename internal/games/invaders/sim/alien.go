package sim

import (
	"math"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

// Alien is one member of the formation.
type Alien struct {
	body   *Body
	space  *Space
	pub    publisher
	Offset Vec2 // Slot relative to the formation pivot
	Index  int  // Position in the spawn grid, row-major from the bottom-left
	Row    int
	Col    int
	Tier   int

	lives     int
	score     int
	explosion Explosion
	destroyed bool
}

func newAlien(body *Body, space *Space, pub publisher, tier TierParams, tierIdx, row, col, index int, offset Vec2) *Alien {
	a := &Alien{
		body:   body,
		space:  space,
		pub:    pub,
		Offset: offset,
		Index:  index,
		Row:    row,
		Col:    col,
		Tier:   tierIdx,
		lives:  tier.Lives,
		score:  tier.Score,
	}
	body.classify(KindAlien, a)
	body.ScoreValue = tier.Score
	body.Lives = tier.Lives
	a.explosion = explosionFor(tier.Explosion, body.Scale)
	return a
}

// explosionFor resolves a tier's explosion preset against the model scale.
func explosionFor(e config.ExplosionConfig, scale float64) Explosion {
	size := e.Size
	if e.Mode == config.ExplosionScaled && e.ScaleDivisor > 0 {
		size = scale / e.ScaleDivisor
	}
	return Explosion{Size: size, Particles: int(math.Round(size * e.ParticlesPerSize))}
}

// Body returns the alien's physical body.
func (a *Alien) Body() *Body { return a.body }

// Lives returns the remaining hits before destruction.
func (a *Alien) Lives() int { return a.lives }

// Score returns the points awarded on destruction.
func (a *Alien) Score() int { return a.score }

// Explosion returns the effect reported on destruction.
func (a *Alien) Explosion() Explosion { return a.explosion }

// Alive reports whether the alien is still part of the formation.
func (a *Alien) Alive() bool { return !a.destroyed }

// OnHit removes one life and destroys the alien when none remain.
// Hits on a destroyed alien are ignored.
func (a *Alien) OnHit() {
	if a.destroyed {
		return
	}
	if a.lives > 0 {
		a.lives--
		a.body.Lives = a.lives
	}
	if a.lives <= 0 {
		a.Destroy()
		return
	}
	a.pub.publish(Event{Type: EventAlienHit, Pos: a.body.Pos, Kind: KindAlien, Tier: a.Tier, Lives: a.lives})
}

// Destroy releases the body and reports the kill. Only the first call has effect.
func (a *Alien) Destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	a.space.Release(a.body)
	a.pub.publish(Event{
		Type:      EventAlienDestroyed,
		Pos:       a.body.Pos,
		Kind:      KindAlien,
		Tier:      a.Tier,
		Score:     a.score,
		Explosion: a.explosion,
	})
}

// recall removes the alien without scoring.
func (a *Alien) recall() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	a.space.Release(a.body)
}

// ease moves the alien a fraction of the way toward its slot, returning the
// body that blocked it, if any.
func (a *Alien) ease(pivot Vec2, factor float64) *Body {
	target := pivot.Add(a.Offset)
	d := Vec2{X: (target.X - a.body.Pos.X) * factor, Y: (target.Y - a.body.Pos.Y) * factor}
	return a.space.Move(a.body, d)
}
