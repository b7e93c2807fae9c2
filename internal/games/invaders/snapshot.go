package invaders

import (
	"math"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders/sim"
)

// snapScale converts world units to the fixed-point values stored in a Snapshot.
const snapScale = 100

// Snapshot contains the observable game state for replay and determinism checks.
// Uses primitive types only for stable serialization; positions are fixed-point
// hundredths of a world unit.
type Snapshot struct {
	Tick   uint64
	Now    int // Simulated milliseconds
	Score  int
	Level  int
	Phase  string
	Lives  int
	Paused bool

	PlayerX    int
	Momentum   int
	Invincible bool

	PivotX    int
	PivotY    int
	Direction string
	Interval  int

	// Each alien is 5 ints: X, Y, Tier, Lives, Alive
	AlienCount int
	AlienData  []int

	// Each bullet is 3 ints: Kind, X, Y
	BulletCount int
	BulletData  []int

	BrickCount int

	// Mothership X, or MinInt when no ship is flying
	MotherShipX int
}

func fixed(v float64) int {
	return int(math.Round(v * snapScale))
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	run := w.Run().Snapshot()
	p := w.Player()
	f := w.Formation()

	snap := Snapshot{
		Tick:   w.Tick(),
		Now:    int(w.Now()),
		Score:  run.Score,
		Level:  run.Level,
		Phase:  run.Phase.String(),
		Lives:  p.Lives(),
		Paused: g.paused,

		Momentum:   fixed(p.Momentum()),
		Invincible: p.Invincible(),

		PivotX:    fixed(f.Pivot().X),
		PivotY:    fixed(f.Pivot().Y),
		Direction: f.Direction().String(),
		Interval:  int(f.IntervalMs()),

		MotherShipX: math.MinInt,
	}
	if p.Body() != nil {
		snap.PlayerX = fixed(p.Body().Pos.X)
	}

	aliens := f.Aliens()
	snap.AlienCount = len(aliens)
	snap.AlienData = make([]int, 0, len(aliens)*5)
	for _, a := range aliens {
		alive := 0
		if a.Alive() {
			alive = 1
		}
		pos := a.Body().Pos
		snap.AlienData = append(snap.AlienData, fixed(pos.X), fixed(pos.Y), a.Tier, a.Lives(), alive)
	}

	var bullets []*sim.Bullet
	bullets = append(bullets, p.Bullets()...)
	bullets = append(bullets, f.Bullets()...)
	bullets = append(bullets, w.MotherShip().Bullets()...)
	snap.BulletCount = len(bullets)
	snap.BulletData = make([]int, 0, len(bullets)*3)
	for _, b := range bullets {
		pos := b.Body().Pos
		snap.BulletData = append(snap.BulletData, int(b.Body().Kind), fixed(pos.X), fixed(pos.Y))
	}

	for _, bar := range f.Barriers() {
		snap.BrickCount += len(bar.Bricks())
	}

	if ship := w.MotherShip().Ship(); ship != nil {
		snap.MotherShipX = fixed(ship.Body().Pos.X)
	}

	return snap
}

func hashString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h = h*31 + uint64(s[i])
	}
	return h
}

func hashBool(h uint64, b bool) uint64 {
	if b {
		return h*31 + 1
	}
	return h * 31
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Now)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)       //#nosec G115 -- hash computation
	h = hashString(h, snap.Phase)
	h = h*31 + uint64(snap.Lives)       //#nosec G115 -- hash computation
	h = hashBool(h, snap.Paused)
	h = h*31 + uint64(snap.PlayerX)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Momentum)    //#nosec G115 -- hash computation
	h = hashBool(h, snap.Invincible)
	h = h*31 + uint64(snap.PivotX)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PivotY)      //#nosec G115 -- hash computation
	h = hashString(h, snap.Direction)
	h = h*31 + uint64(snap.Interval)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.AlienCount)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BulletCount) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BrickCount)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.MotherShipX) //#nosec G115 -- hash computation

	for _, v := range snap.AlienData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.BulletData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}
