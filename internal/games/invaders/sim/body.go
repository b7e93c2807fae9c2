package sim

import "math"

// Vec2 is a point or offset in world units. Y grows upward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Body is a collidable axis-aligned box owned by the Space.
type Body struct {
	ID       uint32
	Template string
	Kind     Kind
	Pos      Vec2
	HalfW    float64
	HalfH    float64
	Scale    float64
	Group    Group
	Mask     Group

	// ScoreValue and Lives mirror the owning entity for renderers and snapshots.
	ScoreValue int
	Lives      int

	owner      any
	collisions bool
	released   bool
}

// Released reports whether the body has left the space.
func (b *Body) Released() bool { return b.released }

// CollisionsEnabled reports whether the body currently takes part in contacts.
func (b *Body) CollisionsEnabled() bool { return b.collisions && !b.released }

// SetCollisions toggles contact participation without removing the body.
func (b *Body) SetCollisions(on bool) { b.collisions = on }

// classify stamps the kind and its (group, mask) on the body.
func (b *Body) classify(k Kind, owner any) {
	c := Classify(k)
	b.Kind = k
	b.Group = c.Group
	b.Mask = c.Mask
	b.owner = owner
	b.collisions = true
}

func (b *Body) extent() (hw, hh float64) {
	s := b.Scale
	if s == 0 {
		s = 1
	}
	return b.HalfW * s, b.HalfH * s
}

// overlapsAt reports whether b placed at pos overlaps o.
func (b *Body) overlapsAt(pos Vec2, o *Body) bool {
	bw, bh := b.extent()
	ow, oh := o.extent()
	return math.Abs(pos.X-o.Pos.X) < bw+ow && math.Abs(pos.Y-o.Pos.Y) < bh+oh
}

// Overlaps reports whether the two boxes intersect at their current positions.
func (b *Body) Overlaps(o *Body) bool {
	return b.overlapsAt(b.Pos, o)
}
