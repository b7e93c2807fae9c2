package sim

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

func testBody(kind Kind, x, y float64) *Body {
	b := &Body{HalfW: 1, HalfH: 1, Scale: 1, Pos: Vec2{X: x, Y: y}}
	b.classify(kind, nil)
	return b
}

func TestMoveStopsBeforeBlocker(t *testing.T) {
	s := NewSpace()
	wall := testBody(KindBrick, 0, 10)
	bullet := testBody(KindPlayerBullet, 0, 0)
	s.Add(wall)
	s.Add(bullet)
	s.Compact()

	blocker := s.Move(bullet, Vec2{Y: 20})
	if blocker != wall {
		t.Fatalf("blocker = %v, want wall", blocker)
	}
	if bullet.Pos.Y > 8 {
		t.Errorf("bullet at y=%v overlaps the wall", bullet.Pos.Y)
	}
	if bullet.Pos.Y < 8-substep {
		t.Errorf("bullet stopped at y=%v, more than one substep early", bullet.Pos.Y)
	}
}

func TestMoveIgnoresNonInteracting(t *testing.T) {
	s := NewSpace()
	other := testBody(KindPlayerBullet, 0, 5)
	bullet := testBody(KindPlayerBullet, 0, 0)
	s.Add(other)
	s.Add(bullet)
	s.Compact()

	if blocker := s.Move(bullet, Vec2{Y: 10}); blocker != nil {
		t.Errorf("player bullets should not block each other")
	}
	if bullet.Pos.Y != 10 {
		t.Errorf("y = %v, want 10", bullet.Pos.Y)
	}
}

func TestMoveLowestIDWins(t *testing.T) {
	s := NewSpace()
	first := testBody(KindBrick, 0.5, 5)
	second := testBody(KindBrick, -0.5, 5)
	bullet := testBody(KindPlayerBullet, 0, 0)
	s.Add(first)
	s.Add(second)
	s.Add(bullet)
	s.Compact()

	if blocker := s.Move(bullet, Vec2{Y: 10}); blocker != first {
		t.Errorf("blocker id = %d, want %d", blocker.ID, first.ID)
	}
}

func TestPendingBodiesJoinAtCompact(t *testing.T) {
	s := NewSpace()
	bullet := testBody(KindPlayerBullet, 0, 0)
	s.Add(bullet)
	s.Compact()

	wall := testBody(KindBrick, 0, 5)
	s.Add(wall)
	if blocker := s.Move(bullet, Vec2{Y: 1}); blocker != nil {
		t.Error("pending body blocked before compaction")
	}
	s.Compact()
	if blocker := s.Move(bullet, Vec2{Y: 5}); blocker != wall {
		t.Error("compacted body should block")
	}
}

func TestReleasedBodyStopsBlocking(t *testing.T) {
	s := NewSpace()
	wall := testBody(KindBrick, 0, 5)
	bullet := testBody(KindPlayerBullet, 0, 0)
	s.Add(wall)
	s.Add(bullet)
	s.Compact()

	s.Release(wall)
	if blocker := s.Move(bullet, Vec2{Y: 10}); blocker != nil {
		t.Error("released body still blocks")
	}
	s.Compact()
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestDisabledCollisionsMoveFreely(t *testing.T) {
	s := NewSpace()
	wall := testBody(KindAlienBullet, 0, 5)
	player := testBody(KindPlayer, 0, 0)
	player.Pos = Vec2{X: 0, Y: 10}
	s.Add(wall)
	s.Add(player)
	s.Compact()

	player.SetCollisions(false)
	if blocker := s.Move(player, Vec2{Y: -10}); blocker != nil {
		t.Error("invincible body should not be blocked")
	}
}

func TestTemplateSetClone(t *testing.T) {
	ts := NewTemplateSet(config.DefaultInvadersConfig().Templates)
	b, err := ts.Clone(config.TemplatePlayer)
	if err != nil {
		t.Fatal(err)
	}
	if b.HalfW != 2 || b.Scale != 1 {
		t.Errorf("clone = %+v", b)
	}
	if _, err := ts.Clone("ufo"); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("err = %v, want ErrUnknownTemplate", err)
	}
}
