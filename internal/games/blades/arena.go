package blades

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/twisty-blades/internal/core"
	"github.com/vovakirdan/twisty-blades/internal/knife"
)

// Collision tags of the arena's resolv objects.
const (
	tagTarget = "target"
	tagKnife  = "knife" // Stuck in the target
	tagBlade  = "blade" // In hand or in flight
)

const (
	// impactAngle is where a thrown knife meets the rim: straight below
	// the centre, in screen degrees.
	impactAngle = 90.0
	// cellAspect is the width/height ratio correction of terminal cells.
	cellAspect = 2.0
	// debrisFallSpeed is how fast broken knives fall, cells per second.
	debrisFallSpeed = 18.0
)

// Layout places the arena on screen. All values are in cells.
type Layout struct {
	Width, Height int
	CenterX       float64
	CenterY       float64
	Radius        float64
	KnifeLength   float64
	HandY         float64 // Top row of the knife in hand
}

// body is the arena state of one knife.
type body struct {
	p      *knife.Projectile
	obj    *resolv.Object
	vx, vy float64
	flying bool
	stuck  bool
	angle  float64 // Target-frame angle of a stuck knife
	tip    float64 // Distance of a stuck blade tip from the centre
}

// debris is a broken knife falling off screen.
type debris struct {
	x, y float64
}

// contact is a collision found during a step, delivered after it.
type contact struct {
	p     *knife.Projectile
	other knife.Category
}

// Arena is the resolv-backed physics of the target and its knives. It
// implements knife.Physics.
type Arena struct {
	layout   Layout
	hitArc   float64
	space    *resolv.Space
	target   *resolv.Object
	rotation float64

	bodies map[uint64]*body
	order  []uint64 // Body IDs in spawn order, for deterministic steps
	debris []debris

	onCollision knife.CollisionFunc
	onLost      func(p *knife.Projectile)
}

var _ knife.Physics = (*Arena)(nil)

// NewArena builds the space and the target body. hitArc is in degrees.
func NewArena(layout Layout, hitArc float64) *Arena {
	a := &Arena{
		layout: layout,
		hitArc: hitArc,
		space:  resolv.NewSpace(max(layout.Width, 1), max(layout.Height, 1), 1, 1),
		bodies: make(map[uint64]*body),
	}

	r := layout.Radius
	a.target = resolv.NewObject(
		layout.CenterX-r*cellAspect, layout.CenterY-r,
		2*r*cellAspect, 2*r,
		tagTarget,
	)
	a.space.Add(a.target)
	return a
}

// OnCollision sets the callback receiving classified contacts.
func (a *Arena) OnCollision(fn knife.CollisionFunc) {
	a.onCollision = fn
}

// OnLost sets the callback for knives that leave the arena or that no
// collision handler claimed.
func (a *Arena) OnLost(fn func(p *knife.Projectile)) {
	a.onLost = fn
}

// Spawn places the knife in the thrower's hand.
func (a *Arena) Spawn(p *knife.Projectile) {
	if old, ok := a.bodies[p.ID]; ok {
		a.remove(old)
	}
	obj := resolv.NewObject(a.layout.CenterX, a.layout.HandY, 1, a.layout.KnifeLength, tagBlade)
	obj.Data = p
	a.space.Add(obj)

	a.bodies[p.ID] = &body{p: p, obj: obj}
	a.order = append(a.order, p.ID)
}

// Launch sets the knife flying.
func (a *Arena) Launch(p *knife.Projectile, vx, vy float64) {
	if b, ok := a.bodies[p.ID]; ok {
		b.vx, b.vy = vx, vy
		b.flying = true
	}
}

// Freeze stops the knife where it is.
func (a *Arena) Freeze(p *knife.Projectile) {
	if b, ok := a.bodies[p.ID]; ok {
		b.vx, b.vy = 0, 0
		b.flying = false
	}
}

// Attach sticks the knife into the rim at the impact point. Weaker throws
// (larger offsets) leave more of the blade outside the target.
func (a *Arena) Attach(p *knife.Projectile, offset float64) {
	b, ok := a.bodies[p.ID]
	if !ok {
		return
	}

	b.stuck = true
	b.flying = false
	b.angle = core.NormalizeDeg(impactAngle - a.rotation)
	b.tip = a.layout.Radius - 1 + offset/2

	// Stuck knives get their own small body so later throws can hit them.
	a.space.Remove(b.obj)
	b.obj = resolv.NewObject(0, 0, 1, 1, tagKnife)
	b.obj.Data = p
	a.space.Add(b.obj)
	a.placeStuck(b)
}

// Drop removes a broken knife and lets it fall away.
func (a *Arena) Drop(p *knife.Projectile) {
	b, ok := a.bodies[p.ID]
	if !ok {
		return
	}
	a.debris = append(a.debris, debris{x: b.obj.X, y: b.obj.Y})
	a.remove(b)
}

// Clear removes every knife and all debris.
func (a *Arena) Clear() {
	for _, id := range a.order {
		if b, ok := a.bodies[id]; ok {
			a.space.Remove(b.obj)
		}
	}
	a.bodies = make(map[uint64]*body)
	a.order = a.order[:0]
	a.debris = a.debris[:0]
}

func (a *Arena) remove(b *body) {
	a.space.Remove(b.obj)
	delete(a.bodies, b.p.ID)
	for i, id := range a.order {
		if id == b.p.ID {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// Step moves the arena forward by dt seconds with the target at rotation
// degrees, then delivers the contacts found.
func (a *Arena) Step(dt, rotation float64) {
	a.rotation = rotation

	var contacts []contact
	var lost []*knife.Projectile

	for _, id := range a.order {
		b := a.bodies[id]
		switch {
		case b.stuck:
			a.placeStuck(b)
		case b.flying:
			if c, hit := a.move(b, dt); hit {
				contacts = append(contacts, c)
			} else if b.obj.Y+b.obj.H < 0 {
				lost = append(lost, b.p)
			}
		}
	}

	for _, c := range contacts {
		if a.onCollision != nil {
			a.onCollision(c.p, c.other)
		}
		// Unclaimed contacts would otherwise keep pushing into the target.
		if c.p.State == knife.ProjectileInFlight {
			lost = append(lost, c.p)
		}
	}
	for _, p := range lost {
		a.lose(p)
	}

	a.stepDebris(dt)
}

// move advances a flying knife and reports the first contact.
func (a *Arena) move(b *body, dt float64) (contact, bool) {
	dx, dy := b.vx*dt, b.vy*dt

	check := b.obj.Check(dx, dy, tagKnife, tagTarget)
	if check == nil {
		b.obj.X += dx
		b.obj.Y += dy
		b.obj.Update()
		return contact{}, false
	}

	if knives := check.ObjectsByTags(tagKnife); len(knives) > 0 {
		return contact{p: b.p, other: knife.CategoryWeapon}, true
	}

	// Touching the rim: snap the tip onto it and see what is there.
	b.obj.Y = a.layout.CenterY + a.layout.Radius
	b.obj.Update()
	if a.bladeAtImpact() {
		return contact{p: b.p, other: knife.CategoryWeapon}, true
	}
	return contact{p: b.p, other: knife.CategoryTarget}, true
}

// bladeAtImpact reports whether a stuck knife sits within the hit arc of
// the impact point.
func (a *Arena) bladeAtImpact() bool {
	for _, id := range a.order {
		b := a.bodies[id]
		if b.stuck && core.AngleDiff(b.angle+a.rotation, impactAngle) < a.hitArc/2 {
			return true
		}
	}
	return false
}

func (a *Arena) lose(p *knife.Projectile) {
	if a.onLost != nil {
		a.onLost(p)
	}
	// Nobody dropped it: make sure it cannot fly forever.
	if b, ok := a.bodies[p.ID]; ok && b.flying {
		a.Drop(p)
	}
}

// placeStuck moves a stuck knife's body to the middle of its blade.
func (a *Arena) placeStuck(b *body) {
	x, y := a.bladePoint(b, b.tip+a.layout.KnifeLength/2)
	b.obj.X = math.Round(x)
	b.obj.Y = math.Round(y)
	b.obj.Update()
}

// bladePoint returns the screen point at distance r from the centre along
// a stuck knife.
func (a *Arena) bladePoint(b *body, r float64) (x, y float64) {
	return core.Polar(a.layout.CenterX, a.layout.CenterY, r, b.angle+a.rotation, cellAspect)
}

func (a *Arena) stepDebris(dt float64) {
	kept := a.debris[:0]
	for _, d := range a.debris {
		d.y += debrisFallSpeed * dt
		if d.y < float64(a.layout.Height) {
			kept = append(kept, d)
		}
	}
	a.debris = kept
}

// Stuck returns the number of knives in the target.
func (a *Arena) Stuck() int {
	n := 0
	for _, b := range a.bodies {
		if b.stuck {
			n++
		}
	}
	return n
}

// Flying returns the number of knives in flight.
func (a *Arena) Flying() int {
	n := 0
	for _, b := range a.bodies {
		if b.flying {
			n++
		}
	}
	return n
}

// Rotation returns the target rotation of the last step.
func (a *Arena) Rotation() float64 {
	return a.rotation
}

// Layout returns the arena geometry.
func (a *Arena) Layout() Layout {
	return a.layout
}
