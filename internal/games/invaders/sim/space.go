package sim

import "math"

// substep is the largest distance a body travels between overlap checks.
const substep = 0.5

// Space holds every live body and answers blocking-move queries.
// Bodies added mid-tick join the query set at the next Compact.
type Space struct {
	bodies  []*Body
	pending []*Body
	nextID  uint32
}

// NewSpace creates an empty space.
func NewSpace() *Space {
	return &Space{nextID: 1}
}

// Add assigns b an id and schedules it to join the space.
func (s *Space) Add(b *Body) {
	b.ID = s.nextID
	s.nextID++
	b.released = false
	s.pending = append(s.pending, b)
}

// Release removes b from contact tests immediately. Storage is reclaimed
// by the next Compact.
func (s *Space) Release(b *Body) {
	if b == nil {
		return
	}
	b.released = true
	b.collisions = false
}

// Len returns the number of live bodies, pending ones included.
func (s *Space) Len() int {
	n := 0
	for _, b := range s.bodies {
		if !b.released {
			n++
		}
	}
	for _, b := range s.pending {
		if !b.released {
			n++
		}
	}
	return n
}

// Compact drops released bodies and admits pending ones. Call between ticks only.
func (s *Space) Compact() {
	live := s.bodies[:0]
	for _, b := range s.bodies {
		if !b.released {
			live = append(live, b)
		}
	}
	for _, b := range s.pending {
		if !b.released {
			live = append(live, b)
		}
	}
	for i := len(live); i < len(s.bodies); i++ {
		s.bodies[i] = nil
	}
	s.bodies = live
	s.pending = s.pending[:0]
}

// canCollide is the pairwise filter used by Move.
func canCollide(a, b *Body) bool {
	if a == b || !a.CollisionsEnabled() || !b.CollisionsEnabled() {
		return false
	}
	return CanInteract(Classification{a.Group, a.Mask}, Classification{b.Group, b.Mask})
}

// Move displaces b by d, stopping at the last free position before the
// first body that blocks it. The blocker is returned, or nil when the
// move completed. Among simultaneous blockers the lowest id wins.
func (s *Space) Move(b *Body, d Vec2) *Body {
	if !b.CollisionsEnabled() {
		b.Pos = b.Pos.Add(d)
		return nil
	}

	dist := math.Max(math.Abs(d.X), math.Abs(d.Y))
	n := int(math.Ceil(dist / substep))
	if n < 1 {
		n = 1
	}

	for i := 1; i <= n; i++ {
		next := b.Pos.Add(d.Scale(1 / float64(n)))
		if blocker := s.blockerAt(b, next); blocker != nil {
			return blocker
		}
		b.Pos = next
	}
	return nil
}

func (s *Space) blockerAt(b *Body, pos Vec2) *Body {
	for _, o := range s.bodies {
		if canCollide(b, o) && b.overlapsAt(pos, o) {
			return o
		}
	}
	return nil
}
