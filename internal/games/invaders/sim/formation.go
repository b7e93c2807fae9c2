package sim

import (
	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Direction is the formation's movement state.
type Direction int

const (
	DirRight Direction = iota
	DirLeft
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// Formation owns the alien grid, its bullets and the barriers for one level.
type Formation struct {
	w      *World
	cfg    config.FormationConfig
	params LevelParams

	pivot     Vec2
	direction Direction
	next      Direction
	// horizontal counts steps since the last descent; a descent needs at least one.
	horizontal int

	aliens   []*Alien
	bullets  []*Bullet
	barriers []*Barrier

	interval  float64
	animSpeed float64
	started   bool
	disposed  bool

	tickTimer *Timer
	observer  *Observer
}

// newFormation spawns the grid and barriers for params and starts the
// grace-period timer. Spawns whose template fails to clone are skipped.
func newFormation(w *World, params LevelParams) *Formation {
	f := &Formation{
		w:          w,
		cfg:        w.cfg.Formation,
		params:     params,
		pivot:      Vec2{X: w.cfg.Formation.PivotX, Y: w.cfg.Formation.PivotY},
		direction:  DirRight,
		next:       DirRight,
		horizontal: 1,
		interval:   w.cfg.Formation.IntervalMs,
		animSpeed:  w.cfg.Formation.AnimSpeed * w.cfg.Formation.StartSlowFactor,
	}
	// The opening march goes either way; drawn before spawning so the RNG order is fixed.
	if w.rng.Intn(2) == 0 {
		f.direction, f.next = DirLeft, DirLeft
	}
	f.spawnAliens()
	f.spawnBarriers()

	f.observer = w.frame.Add(f.update)
	f.tickTimer = w.sched.After(f.cfg.StartDelayMs, func() {
		if f.disposed {
			return
		}
		f.started = true
		f.animSpeed = f.cfg.AnimSpeed
		f.tick()
	})
	return f
}

func (f *Formation) spawnAliens() {
	p := f.params
	sx, sy := f.cfg.SpacingX, f.cfg.SpacingY
	sc := f.w.cfg.Scaling
	index := 0
	for row := 0; row < p.Rows; row++ {
		tierIdx := p.TierForRow(row)
		tier := p.Tiers[tierIdx]
		for col := 0; col < p.Columns; col++ {
			idx := index
			index++
			body, ok := f.w.clone(tier.Template)
			if !ok {
				continue
			}
			body.Scale = sc.RowScaleBase - float64(row)*sc.RowScaleStep
			offset := Vec2{
				X: float64(col)*sx - float64(p.Columns-1)/2*sx,
				Y: float64(row)*sy - float64(p.Rows-1)/2*sy,
			}
			a := newAlien(body, f.w.space, f.w, tier, tierIdx, row, col, idx, offset)
			// Aliens fly in from a random point above the field and ease into their slot.
			body.Pos = Vec2{
				X: f.w.rng.Float64()*40 - 20,
				Y: f.pivot.Y + 10 + f.w.rng.Float64()*30,
			}
			f.w.space.Add(body)
			f.aliens = append(f.aliens, a)
		}
	}
}

func (f *Formation) spawnBarriers() {
	bc := f.w.cfg.Barriers
	field := f.w.cfg.Field
	if f.params.Barriers <= 0 {
		return
	}
	for _, center := range barrierCenters(f.params.Barriers, field.MinX, field.MaxX, bc.Y) {
		bar := &Barrier{Center: center}
		for r := 0; r < bc.BrickRows; r++ {
			for c := 0; c < bc.BrickCols; c++ {
				body, ok := f.w.clone(config.TemplateBrick)
				if !ok {
					continue
				}
				br := &Brick{body: body, space: f.w.space, pub: f.w}
				body.classify(KindBrick, br)
				body.Lives = 1
				body.Pos = Vec2{
					X: center.X + (float64(c)-float64(bc.BrickCols-1)/2)*bc.BrickSize,
					Y: center.Y + float64(r)*bc.BrickSize,
				}
				f.w.space.Add(body)
				bar.bricks = append(bar.bricks, br)
			}
		}
		if !bar.Empty() {
			f.barriers = append(f.barriers, bar)
		}
	}
}

// Pivot returns the formation's reference point.
func (f *Formation) Pivot() Vec2 { return f.pivot }

// Direction returns the current movement state.
func (f *Formation) Direction() Direction { return f.direction }

// NextDirection returns the horizontal direction taken after a descent.
func (f *Formation) NextDirection() Direction { return f.next }

// IntervalMs returns the current formation tick interval.
func (f *Formation) IntervalMs() float64 { return f.interval }

// Started reports whether the grace period has elapsed.
func (f *Formation) Started() bool { return f.started }

// Params returns the level parameters the formation was built from.
func (f *Formation) Params() LevelParams { return f.params }

// Aliens returns the live aliens. Entries destroyed this tick remain until compaction.
func (f *Formation) Aliens() []*Alien { return f.aliens }

// Bullets returns alien bullets in flight.
func (f *Formation) Bullets() []*Bullet { return f.bullets }

// Barriers returns the standing barriers.
func (f *Formation) Barriers() []*Barrier { return f.barriers }

// LiveCount returns the number of aliens not yet destroyed.
func (f *Formation) LiveCount() int {
	n := 0
	for _, a := range f.aliens {
		if a.Alive() {
			n++
		}
	}
	return n
}

// Cleared reports whether every alien spawned for the level is gone. A
// formation that spawned no aliens is never cleared.
func (f *Formation) Cleared() bool { return len(f.aliens) > 0 && f.LiveCount() == 0 }

// tick is the discrete formation step. It moves the pivot, applies a
// pending descent and re-arms itself with an interval easing toward the floor.
func (f *Formation) tick() {
	if f.disposed {
		return
	}
	switch f.direction {
	case DirRight:
		f.pivot.X += f.cfg.StepX
		f.horizontal++
	case DirLeft:
		f.pivot.X -= f.cfg.StepX
		f.horizontal++
	case DirDown:
		// The world stops stepping once the run ends, so this only guards direct ticks.
		if f.w.run.Phase() != PhaseGameOver {
			f.pivot.Y -= f.cfg.StepY
			f.w.publish(Event{Type: EventFormationDescend, Pos: f.pivot})
		}
		f.horizontal = 0
		f.direction = f.next
	}

	if f.w.run.Phase() == PhasePlaying && f.LiveCount() > 0 {
		f.w.publish(Event{Type: EventFormationStep, Pos: f.pivot})
		f.interval = core.Lerp(f.interval, f.cfg.MinIntervalMs, f.cfg.IntervalEase)
		if f.interval < f.cfg.MinIntervalMs {
			f.interval = f.cfg.MinIntervalMs
		}
	}

	f.tickTimer = f.w.sched.After(f.interval, f.tick)
}

// update is the per-tick observer: ease aliens toward their slots, detect
// edges and ground, move bullets and roll for fire.
func (f *Formation) update(delta float64) {
	if f.disposed {
		return
	}
	field := f.w.cfg.Field
	factor := easeFactor(f.animSpeed, delta)

	for _, a := range f.aliens {
		if !a.Alive() {
			continue
		}
		if blocker := a.ease(f.pivot, factor); blocker != nil {
			f.w.recordContact(a.body, blocker)
		}

		slotX := f.pivot.X + a.Offset.X
		if f.started && f.horizontal > 0 {
			if f.direction == DirRight && slotX > field.MaxX {
				f.direction = DirDown
				f.next = DirLeft
			} else if f.direction == DirLeft && slotX < field.MinX {
				f.direction = DirDown
				f.next = DirRight
			}
		}

		if a.body.Pos.Y < field.GroundY {
			f.w.publish(Event{Type: EventGroundBreached, Pos: a.body.Pos, Kind: KindAlien, Tier: a.Tier})
			f.observer.Remove()
			f.tickTimer.Stop()
			return
		}
	}

	for _, b := range f.bullets {
		if blocker := b.update(delta, field.FloorY, field.CeilingY); blocker != nil {
			f.w.recordContact(b.body, blocker)
		}
	}

	if f.started && f.w.run.Phase() == PhasePlaying {
		if rollFire(f.w.rng, f.params.FireRate, delta) {
			f.fire()
		}
	}
}

// fire spawns a bullet under one live alien chosen uniformly.
func (f *Formation) fire() {
	live := make([]*Alien, 0, len(f.aliens))
	for _, a := range f.aliens {
		if a.Alive() {
			live = append(live, a)
		}
	}
	if len(live) == 0 {
		return
	}
	shooter := live[f.w.rng.Intn(len(live))]
	body, ok := f.w.clone(config.TemplateAlienBullet)
	if !ok {
		return
	}
	bc := f.w.cfg.Bullets
	pos := shooter.body.Pos.Add(Vec2{Y: bc.AlienOffset})
	vel := spreadVelocity(f.w.rng, bc.AlienSpeed, bc.SpreadArc)
	f.bullets = append(f.bullets, newBullet(body, f.w.space, KindAlienBullet, pos, vel))
	f.w.publish(Event{Type: EventAlienFired, Pos: pos, Kind: KindAlien, Tier: shooter.Tier})
}

// compact removes destroyed aliens, bullets and bricks. Runs at end of tick.
func (f *Formation) compact() {
	live := f.aliens[:0]
	for _, a := range f.aliens {
		if a.Alive() {
			live = append(live, a)
		}
	}
	for i := len(live); i < len(f.aliens); i++ {
		f.aliens[i] = nil
	}
	f.aliens = live
	f.bullets = pruneBullets(f.bullets)

	bars := f.barriers[:0]
	for _, bar := range f.barriers {
		bar.prune()
		if bar.Empty() {
			f.w.publish(Event{Type: EventBarrierDestroyed, Pos: bar.Center, Kind: KindBrick})
			continue
		}
		bars = append(bars, bar)
	}
	for i := len(bars); i < len(f.barriers); i++ {
		f.barriers[i] = nil
	}
	f.barriers = bars
}

// dispose cancels the observer and tick timer and releases every body it owns.
func (f *Formation) dispose() {
	if f.disposed {
		return
	}
	f.disposed = true
	f.observer.Remove()
	f.tickTimer.Stop()
	for _, a := range f.aliens {
		a.recall()
	}
	for _, b := range f.bullets {
		b.Destroy()
	}
	for _, bar := range f.barriers {
		bar.dispose()
	}
	f.aliens, f.bullets, f.barriers = nil, nil, nil
}
