package sim

// Bullet is a player or alien projectile.
type Bullet struct {
	body      *Body
	space     *Space
	vel       Vec2 // World units per reference tick
	destroyed bool
}

func newBullet(body *Body, space *Space, kind Kind, pos, vel Vec2) *Bullet {
	b := &Bullet{body: body, space: space, vel: vel}
	body.classify(kind, b)
	body.Pos = pos
	space.Add(body)
	return b
}

// Body returns the bullet's physical body.
func (b *Bullet) Body() *Body { return b.body }

// Velocity returns the per-reference-tick displacement.
func (b *Bullet) Velocity() Vec2 { return b.vel }

// Alive reports whether the bullet is still in flight.
func (b *Bullet) Alive() bool { return !b.destroyed }

// Destroy releases the bullet. Only the first call has effect.
func (b *Bullet) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.space.Release(b.body)
}

// update advances the bullet and discards it once it leaves [minY, maxY].
func (b *Bullet) update(delta, minY, maxY float64) *Body {
	if b.destroyed {
		return nil
	}
	blocker := b.space.Move(b.body, b.vel.Scale(delta))
	if y := b.body.Pos.Y; y > maxY || y < minY {
		b.Destroy()
		return nil
	}
	return blocker
}

// pruneBullets drops destroyed bullets in place.
func pruneBullets(list []*Bullet) []*Bullet {
	live := list[:0]
	for _, b := range list {
		if b.Alive() {
			live = append(live, b)
		}
	}
	for i := len(live); i < len(list); i++ {
		list[i] = nil
	}
	return live
}
