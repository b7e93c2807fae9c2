package sim

// Brick is one destructible cell of a barrier.
type Brick struct {
	body      *Body
	space     *Space
	pub       publisher
	destroyed bool
}

// Body returns the brick's physical body.
func (b *Brick) Body() *Body { return b.body }

// Alive reports whether the brick still stands.
func (b *Brick) Alive() bool { return !b.destroyed }

// Destroy removes the brick. Only the first call has effect.
func (b *Brick) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.space.Release(b.body)
	b.pub.publish(Event{Type: EventBrickDestroyed, Pos: b.body.Pos, Kind: KindBrick})
}

// Barrier is a block of bricks shielding the player.
type Barrier struct {
	Center Vec2
	bricks []*Brick
}

// Bricks returns the standing bricks.
func (b *Barrier) Bricks() []*Brick { return b.bricks }

// Empty reports whether every brick is gone.
func (b *Barrier) Empty() bool { return len(b.bricks) == 0 }

// prune drops destroyed bricks.
func (b *Barrier) prune() {
	live := b.bricks[:0]
	for _, br := range b.bricks {
		if br.Alive() {
			live = append(live, br)
		}
	}
	for i := len(live); i < len(b.bricks); i++ {
		b.bricks[i] = nil
	}
	b.bricks = live
}

// dispose releases every brick silently.
func (b *Barrier) dispose() {
	for _, br := range b.bricks {
		br.destroyed = true
		br.space.Release(br.body)
	}
	b.bricks = nil
}

// barrierCenters spreads n barriers evenly across [minX, maxX].
func barrierCenters(n int, minX, maxX, y float64) []Vec2 {
	out := make([]Vec2, n)
	span := maxX - minX
	for i := range out {
		out[i] = Vec2{X: minX + span*(float64(i)+0.5)/float64(n), Y: y}
	}
	return out
}
