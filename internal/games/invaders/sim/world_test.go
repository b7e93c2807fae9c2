package sim

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

func TestClearingLevelOneScores450(t *testing.T) {
	w := newTestWorld(t, nil)
	events := newEventCounter(w)
	f := w.Formation()

	if got := len(f.Aliens()); got != 25 {
		t.Fatalf("aliens = %d, want 25", got)
	}
	for _, a := range f.Aliens() {
		a.OnHit()
	}
	w.Step(Input{})

	if got := w.Run().Score(); got != 450 {
		t.Errorf("score = %d, want 450", got)
	}
	if got := w.Run().Phase(); got != PhaseLevelClear {
		t.Errorf("phase = %s, want LEVELCLEAR", got)
	}
	if events.counts[EventAlienDestroyed] != 25 {
		t.Errorf("destroyed events = %d, want 25", events.counts[EventAlienDestroyed])
	}
	if events.counts[EventLevelCleared] != 1 {
		t.Errorf("level cleared events = %d, want 1", events.counts[EventLevelCleared])
	}
}

func TestLevelAdvancesAfterDelay(t *testing.T) {
	w := newTestWorld(t, nil)
	for _, a := range w.Formation().Aliens() {
		a.Destroy()
	}
	w.Step(Input{})
	if w.Run().Phase() != PhaseLevelClear {
		t.Fatalf("phase = %s, want LEVELCLEAR", w.Run().Phase())
	}

	stepN(w, 60, Input{}) // 1s, still waiting
	if w.Run().Level() != 1 {
		t.Fatalf("level advanced early to %d", w.Run().Level())
	}

	stepN(w, 70, Input{})
	if got := w.Run().Level(); got != 2 {
		t.Fatalf("level = %d, want 2", got)
	}
	if got := w.Run().Phase(); got != PhasePlaying {
		t.Errorf("phase = %s, want PLAYING", got)
	}
	if got := len(w.Formation().Aliens()); got != 36 {
		t.Errorf("aliens = %d, want 36 (6x6)", got)
	}
	if got := w.Run().Score(); got != 450 {
		t.Errorf("score carried = %d, want 450", got)
	}
	if !w.Player().Invincible() {
		t.Error("player should respawn invincible on a new level")
	}
}

func TestFixedDifficultyKeepsLevelOneGrid(t *testing.T) {
	w := newTestWorld(t, func(c *config.InvadersConfig) { c.Difficulty.Fixed = true })
	for _, a := range w.Formation().Aliens() {
		a.Destroy()
	}
	stepN(w, 130, Input{})
	if w.Run().Level() != 2 {
		t.Fatalf("level = %d, want 2", w.Run().Level())
	}
	if got := len(w.Formation().Aliens()); got != 25 {
		t.Errorf("aliens = %d, want 25 with fixed difficulty", got)
	}
}

func TestThreeHitsEndRunOnThird(t *testing.T) {
	w := newTestWorld(t, nil)
	events := newEventCounter(w)
	p := w.Player()

	for i := 1; i <= 2; i++ {
		p.Hit(nil)
		if got := w.Run().Phase(); got != PhasePlaying {
			t.Fatalf("after hit %d: phase = %s, want PLAYING", i, got)
		}
		if p.Lives() != 3-i {
			t.Fatalf("after hit %d: lives = %d", i, p.Lives())
		}
	}
	p.Hit(nil)
	if got := w.Run().Phase(); got != PhaseGameOver {
		t.Fatalf("after hit 3: phase = %s, want GAMEOVER", got)
	}
	if p.Alive() || !p.Body().Released() {
		t.Error("player body should be released")
	}

	p.Hit(nil)
	if p.Lives() != 0 {
		t.Errorf("hit after death changed lives to %d", p.Lives())
	}

	w.Step(Input{})
	w.flush()
	if events.counts[EventPlayerDied] != 1 {
		t.Errorf("died events = %d, want 1", events.counts[EventPlayerDied])
	}
}

func TestInvincibilityExpires(t *testing.T) {
	w := newTestWorld(t, nil)
	p := w.Player()
	if !p.Invincible() || p.Body().CollisionsEnabled() {
		t.Fatal("player should spawn with collisions disabled")
	}

	sawHidden := false
	for range 170 {
		w.Step(Input{})
		if !p.Visible() {
			sawHidden = true
		}
	}
	if !sawHidden {
		t.Error("player should flicker while invincible")
	}
	if !p.Invincible() {
		t.Fatal("invincibility ended early")
	}

	stepN(w, 20, Input{})
	if p.Invincible() || !p.Body().CollisionsEnabled() {
		t.Error("collisions should re-enable after the window")
	}
	if !p.Visible() {
		t.Error("player should be visible after the window")
	}
}

func TestRespawnInvincibilityAfterHit(t *testing.T) {
	w := newTestWorld(t, nil)
	p := w.Player()
	makeVulnerable(p)

	p.Hit(nil)
	if !p.Invincible() {
		t.Error("hit should start the respawn window")
	}

	w2 := newTestWorld(t, func(c *config.InvadersConfig) { c.Player.RespawnInvincibleMs = 0 })
	p2 := w2.Player()
	makeVulnerable(p2)
	p2.Hit(nil)
	if p2.Invincible() {
		t.Error("zero respawn window should leave the player vulnerable")
	}
}

func TestDisposeCancelsInvincibilityTimer(t *testing.T) {
	cfg := config.DefaultInvadersConfig()
	w := NewWorld(cfg, Options{Seed: 3})
	p := w.Player()
	body := p.Body()
	w.Dispose()

	w.sched.Advance(10000)
	if body.CollisionsEnabled() {
		t.Error("expired timer re-enabled a disposed body")
	}
	if w.sched.Pending() != 0 {
		t.Errorf("pending timers = %d, want 0", w.sched.Pending())
	}
}

func TestPlayerMomentumDecays(t *testing.T) {
	w := newTestWorld(t, nil)
	p := w.Player()

	stepN(w, 10, Input{Right: true})
	if p.Momentum() <= 0 || p.Body().Pos.X <= 0 {
		t.Fatalf("momentum=%v x=%v after holding right", p.Momentum(), p.Body().Pos.X)
	}
	peak := p.Momentum()
	stepN(w, 5, Input{})
	if p.Momentum() >= peak || p.Momentum() <= 0 {
		t.Errorf("momentum = %v, want decayed below %v but not stopped", p.Momentum(), peak)
	}
	stepN(w, 100, Input{})
	if p.Momentum() > 1e-6 {
		t.Errorf("momentum = %v, want near zero", p.Momentum())
	}
}

func TestPlayerClampedToField(t *testing.T) {
	w := newTestWorld(t, nil)
	p := w.Player()
	stepN(w, 300, Input{Left: true})
	if got := p.Body().Pos.X; got < w.cfg.Field.PlayerMinX {
		t.Errorf("x = %v, below clamp %v", got, w.cfg.Field.PlayerMinX)
	}
}

func TestFireIsEdgeTriggered(t *testing.T) {
	w := newTestWorld(t, nil)
	events := newEventCounter(w)

	stepN(w, 60, Input{Fire: true})
	if got := events.counts[EventPlayerFired]; got != 1 {
		t.Errorf("held fire produced %d shots, want 1", got)
	}

	w.Step(Input{})
	w.Step(Input{Fire: true})
	if got := events.counts[EventPlayerFired]; got != 2 {
		t.Errorf("shots after re-press = %d, want 2", got)
	}
}

func TestFireCooldown(t *testing.T) {
	w := newTestWorld(t, nil)
	events := newEventCounter(w)

	w.Step(Input{Fire: true})
	w.Step(Input{})
	w.Step(Input{Fire: true}) // 33ms after the first shot
	if got := events.counts[EventPlayerFired]; got != 1 {
		t.Fatalf("shots inside cooldown = %d, want 1", got)
	}
	stepN(w, 20, Input{})
	w.Step(Input{Fire: true})
	if got := events.counts[EventPlayerFired]; got != 2 {
		t.Errorf("shots after cooldown = %d, want 2", got)
	}
}

func TestPlayerBulletDestroysAlien(t *testing.T) {
	w := newTestWorld(t, nil)
	events := newEventCounter(w)
	stepN(w, 60, Input{}) // let the formation settle

	target := w.Formation().Aliens()[0]
	spawnPlayerBullet(t, w, target.Body().Pos.Add(Vec2{Y: -6}))
	w.space.Compact()

	stepN(w, 10, Input{})
	if target.Alive() {
		t.Fatal("bullet should have destroyed the alien")
	}
	if events.counts[EventAlienDestroyed] != 1 {
		t.Errorf("destroyed events = %d, want 1", events.counts[EventAlienDestroyed])
	}
	if len(w.Player().Bullets()) != 0 {
		t.Errorf("bullet should be consumed, %d left", len(w.Player().Bullets()))
	}
}

func TestAlienBulletErodesBarrier(t *testing.T) {
	w := newTestWorld(t, nil)
	events := newEventCounter(w)
	bricks := w.Formation().Barriers()[0].Bricks()
	brick := bricks[len(bricks)-1] // top row
	bullet := spawnAlienBullet(t, w, brick.Body().Pos.Add(Vec2{Y: 5}))
	w.space.Compact()

	stepN(w, 20, Input{})
	if brick.Alive() || bullet.Alive() {
		t.Errorf("brick alive=%v bullet alive=%v, want both gone", brick.Alive(), bullet.Alive())
	}
	if events.counts[EventBrickDestroyed] != 1 {
		t.Errorf("brick events = %d, want 1", events.counts[EventBrickDestroyed])
	}
}

func TestMotherShipCrossesAndEscapes(t *testing.T) {
	w := newTestWorld(t, func(c *config.InvadersConfig) {
		c.MotherShip.IntervalSec = 1
		c.MotherShip.MinIntervalSec = 0.5
		c.MotherShip.IntervalPerLevel = 0
		c.MotherShip.FireRate = 0
		c.MotherShip.FireRatePerLevel = 0
	})
	events := newEventCounter(w)

	stepN(w, 61, Input{})
	ship := w.MotherShip().Ship()
	if ship == nil {
		t.Fatal("mothership should spawn after 1s")
	}
	stepN(w, 400, Input{})
	if events.counts[EventMotherShipEscaped] < 1 {
		t.Error("mothership should leave the field")
	}
	if events.counts[EventMotherShipDestroyed] != 0 {
		t.Error("escape must not score")
	}
}

func TestMotherShipScoresWhenShot(t *testing.T) {
	w := newTestWorld(t, func(c *config.InvadersConfig) {
		c.MotherShip.IntervalSec = 1
		c.MotherShip.MinIntervalSec = 0.5
		c.MotherShip.IntervalPerLevel = 0
		c.MotherShip.FireRate = 0
		c.MotherShip.FireRatePerLevel = 0
	})
	stepN(w, 61, Input{})
	ship := w.MotherShip().Ship()
	if ship == nil {
		t.Fatal("no mothership")
	}
	before := w.Run().Score()
	bullet := spawnPlayerBullet(t, w, ship.Body().Pos)
	contact{a: bullet.Body(), b: ship.Body()}.resolve(w)

	if got := w.Run().Score() - before; got != w.cfg.MotherShip.Score {
		t.Errorf("score gained = %d, want %d", got, w.cfg.MotherShip.Score)
	}
	if w.MotherShip().Ship() != nil {
		t.Error("ship should be gone")
	}
}

func TestSpawnFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	cfg := config.DefaultInvadersConfig()
	delete(cfg.Templates, config.TemplateBrick)

	w := NewWorld(cfg, Options{Seed: 1, Logger: logger})
	defer w.Dispose()

	if len(w.Formation().Barriers()) != 0 {
		t.Errorf("barriers = %d, want 0 without a brick template", len(w.Formation().Barriers()))
	}
	if !strings.Contains(buf.String(), "spawn skipped") {
		t.Errorf("expected spawn warning in log, got %q", buf.String())
	}
}

func TestLevelWithoutAliensIsHeld(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	cfg := config.DefaultInvadersConfig()
	for _, name := range []string{"alien_1", "alien_2", "alien_3"} {
		delete(cfg.Templates, name)
	}

	w := NewWorld(cfg, Options{Seed: 1, TickRate: 60, Logger: logger})
	defer w.Dispose()
	events := newEventCounter(w)

	// Well past the level delay.
	stepN(w, 600, Input{})

	if got := w.Run().Level(); got != 1 {
		t.Errorf("level = %d, want 1", got)
	}
	if got := w.Run().Phase(); got == PhaseLevelClear {
		t.Errorf("phase = %s, want the level held", got)
	}
	if got := events.counts[EventLevelCleared]; got != 0 {
		t.Errorf("level cleared events = %d, want 0", got)
	}
	if !strings.Contains(buf.String(), "level spawned no aliens") {
		t.Errorf("expected empty level warning in log, got %q", buf.String())
	}
}

func TestWorldDeterminism(t *testing.T) {
	run := func() string {
		w := NewWorld(config.DefaultInvadersConfig(), Options{Seed: 777})
		defer w.Dispose()
		for i := range 1500 {
			in := Input{
				Left:  i%200 < 60,
				Right: i%200 >= 120,
				Fire:  i%7 == 0,
			}
			w.Step(in)
		}
		return worldDigest(w)
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed and inputs diverged:\n%s\n%s", a, b)
	}
}

func TestTickRateIndependentFormationTiming(t *testing.T) {
	pivotAfter := func(tickRate, ticks int) Vec2 {
		w := NewWorld(config.DefaultInvadersConfig(), Options{Seed: 5, TickRate: tickRate})
		defer w.Dispose()
		stepN(w, ticks, Input{})
		return w.Formation().Pivot()
	}
	// Five simulated seconds at two tick rates.
	p60 := pivotAfter(60, 300)
	p30 := pivotAfter(30, 150)
	if p60 != p30 {
		t.Errorf("pivot differs across tick rates: 60Hz=%+v 30Hz=%+v", p60, p30)
	}
}

func worldDigest(w *World) string {
	var sb strings.Builder
	snap := w.Run().Snapshot()
	fmt.Fprintf(&sb, "tick=%d score=%d level=%d phase=%s;", w.Tick(), snap.Score, snap.Level, snap.Phase)
	if b := w.Player().Body(); b != nil {
		fmt.Fprintf(&sb, "p=%.6f,%.6f,%d;", b.Pos.X, b.Pos.Y, w.Player().Lives())
	}
	f := w.Formation()
	fmt.Fprintf(&sb, "pivot=%.3f,%.3f dir=%s;", f.Pivot().X, f.Pivot().Y, f.Direction())
	for _, a := range f.Aliens() {
		fmt.Fprintf(&sb, "a%d=%.6f,%.6f,%d;", a.Index, a.Body().Pos.X, a.Body().Pos.Y, a.Lives())
	}
	for _, b := range f.Bullets() {
		fmt.Fprintf(&sb, "b=%.6f,%.6f;", b.Body().Pos.X, b.Body().Pos.Y)
	}
	return sb.String()
}
