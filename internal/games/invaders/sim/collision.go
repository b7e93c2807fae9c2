package sim

// Group is a collision category bit. A body belongs to one group and
// carries a mask of the groups it reacts to.
type Group uint32

const (
	GroupPlayer Group = 1 << iota
	GroupAlien
	GroupPlayerBullet
	GroupAlienBullet
	GroupBrick
	GroupMotherShip
)

// Kind identifies the entity type behind a body. It indexes the contact
// dispatch table, so every Kind has exactly one Classification.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindAlien
	KindPlayerBullet
	KindAlienBullet
	KindBrick
	KindMotherShip
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindAlien:
		return "alien"
	case KindPlayerBullet:
		return "player_bullet"
	case KindAlienBullet:
		return "alien_bullet"
	case KindBrick:
		return "brick"
	case KindMotherShip:
		return "mothership"
	default:
		return "unknown"
	}
}

// Classification is the (group, mask) pair assigned to a kind.
type Classification struct {
	Group Group
	Mask  Group
}

var classifications = [kindCount]Classification{
	KindPlayer:       {GroupPlayer, GroupAlien | GroupAlienBullet},
	KindAlien:        {GroupAlien, GroupPlayer | GroupPlayerBullet | GroupBrick},
	KindPlayerBullet: {GroupPlayerBullet, GroupAlien | GroupBrick | GroupMotherShip},
	KindAlienBullet:  {GroupAlienBullet, GroupPlayer | GroupBrick},
	KindBrick:        {GroupBrick, GroupPlayerBullet | GroupAlienBullet | GroupAlien},
	KindMotherShip:   {GroupMotherShip, GroupPlayerBullet},
}

// Classify returns the classification for k.
func Classify(k Kind) Classification {
	if k >= kindCount {
		return Classification{}
	}
	return classifications[k]
}

// CanInteract reports whether two classifications produce a contact.
// The test is symmetric: either side's mask selecting the other's group is enough.
func CanInteract(a, b Classification) bool {
	return a.Mask&b.Group != 0 || b.Mask&a.Group != 0
}

// contactHandler resolves a contact between two live bodies whose kinds
// index the handler's slot in the dispatch table.
type contactHandler func(w *World, a, b *Body)

var dispatch [kindCount][kindCount]contactHandler

// onContact registers h for the unordered pair (ka, kb). The mirrored slot
// swaps the arguments so h always sees (ka, kb) in that order.
func onContact(ka, kb Kind, h contactHandler) {
	dispatch[ka][kb] = h
	if ka != kb {
		dispatch[kb][ka] = func(w *World, a, b *Body) { h(w, b, a) }
	}
}

func init() {
	onContact(KindPlayer, KindAlienBullet, func(w *World, p, bullet *Body) {
		w.player.Hit(bullet.owner.(*Bullet))
	})
	onContact(KindPlayer, KindAlien, func(w *World, p, alien *Body) {
		w.player.Hit(nil)
		alien.owner.(*Alien).OnHit()
	})
	onContact(KindAlien, KindPlayerBullet, func(w *World, alien, bullet *Body) {
		bullet.owner.(*Bullet).Destroy()
		alien.owner.(*Alien).OnHit()
	})
	onContact(KindAlien, KindBrick, func(w *World, alien, brick *Body) {
		brick.owner.(*Brick).Destroy()
	})
	onContact(KindPlayerBullet, KindBrick, func(w *World, bullet, brick *Body) {
		bullet.owner.(*Bullet).Destroy()
		brick.owner.(*Brick).Destroy()
	})
	onContact(KindAlienBullet, KindBrick, func(w *World, bullet, brick *Body) {
		bullet.owner.(*Bullet).Destroy()
		brick.owner.(*Brick).Destroy()
	})
	onContact(KindMotherShip, KindPlayerBullet, func(w *World, ship, bullet *Body) {
		bullet.owner.(*Bullet).Destroy()
		ship.owner.(*MotherShip).Destroy()
	})
}

// contact is a pair recorded during the movement phase and resolved after it.
type contact struct {
	a, b *Body
}

// resolve applies the handler for c unless either side was released
// earlier in the same resolution pass.
func (c contact) resolve(w *World) {
	if c.a.released || c.b.released {
		return
	}
	if !c.a.collisions || !c.b.collisions {
		return
	}
	if h := dispatch[c.a.Kind][c.b.Kind]; h != nil {
		h(w, c.a, c.b)
	}
}
