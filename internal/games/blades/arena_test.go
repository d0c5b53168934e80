package blades

import (
	"testing"

	"github.com/vovakirdan/twisty-blades/internal/knife"
)

const testDt = 1.0 / 60

func testLayout() Layout {
	return Layout{
		Width:       80,
		Height:      24,
		CenterX:     40,
		CenterY:     8,
		Radius:      5,
		KnifeLength: 3,
		HandY:       19,
	}
}

// stickyHandler mimics the impact resolver: knives stick in the target and
// break on other knives.
type stickyHandler struct {
	arena    *Arena
	contacts []knife.Category
	lost     int
}

func newStickyArena() (*Arena, *stickyHandler) {
	a := NewArena(testLayout(), 12)
	h := &stickyHandler{arena: a}
	a.OnCollision(h.collide)
	a.OnLost(h.lose)
	return a, h
}

func (h *stickyHandler) collide(p *knife.Projectile, other knife.Category) {
	h.contacts = append(h.contacts, other)
	switch other {
	case knife.CategoryTarget:
		p.State = knife.ProjectileStuck
		h.arena.Freeze(p)
		h.arena.Attach(p, knife.StickOffset(1))
	case knife.CategoryWeapon:
		p.State = knife.ProjectileBroken
		h.arena.Drop(p)
	}
}

func (h *stickyHandler) lose(p *knife.Projectile) {
	h.lost++
	p.State = knife.ProjectileBroken
	h.arena.Drop(p)
}

// throwAt launches a knife and steps until it is no longer in flight.
func throwAt(t *testing.T, a *Arena, id uint64, rotation float64) *knife.Projectile {
	t.Helper()
	p := &knife.Projectile{ID: id, State: knife.ProjectileIdle}
	a.Spawn(p)
	p.State = knife.ProjectileInFlight
	a.Launch(p, 0, -40)

	for i := 0; i < 120; i++ {
		a.Step(testDt, rotation)
		if p.State != knife.ProjectileInFlight {
			return p
		}
	}
	t.Fatalf("knife %d never landed", id)
	return nil
}

func TestArenaKnifeSticksInTarget(t *testing.T) {
	a, h := newStickyArena()

	p := throwAt(t, a, 1, 0)

	if p.State != knife.ProjectileStuck {
		t.Fatalf("Expected stuck knife, got %v", p.State)
	}
	if len(h.contacts) != 1 || h.contacts[0] != knife.CategoryTarget {
		t.Errorf("Expected one target contact, got %v", h.contacts)
	}
	if a.Stuck() != 1 || a.Flying() != 0 {
		t.Errorf("Expected 1 stuck and 0 flying, got %d and %d", a.Stuck(), a.Flying())
	}
}

func TestArenaKnifeHitsStuckKnife(t *testing.T) {
	a, h := newStickyArena()

	throwAt(t, a, 1, 0)
	p := throwAt(t, a, 2, 0)

	if p.State != knife.ProjectileBroken {
		t.Fatalf("Expected broken knife, got %v", p.State)
	}
	if last := h.contacts[len(h.contacts)-1]; last != knife.CategoryWeapon {
		t.Errorf("Expected weapon contact, got %v", last)
	}
	if a.Stuck() != 1 {
		t.Errorf("Broken knife must not stick, stuck = %d", a.Stuck())
	}
	if len(a.debris) != 1 {
		t.Errorf("Expected falling debris, got %d", len(a.debris))
	}
}

func TestArenaRotationClearsThePath(t *testing.T) {
	tests := []struct {
		name     string
		rotation float64
		want     knife.Category
	}{
		{"same spot", 0, knife.CategoryWeapon},
		{"inside hit arc", 3, knife.CategoryWeapon},
		{"quarter turn", 90, knife.CategoryTarget},
		{"half turn", 180, knife.CategoryTarget},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, h := newStickyArena()
			throwAt(t, a, 1, 0)
			throwAt(t, a, 2, tc.rotation)

			if got := h.contacts[len(h.contacts)-1]; got != tc.want {
				t.Errorf("rotation %v: expected %v, got %v", tc.rotation, tc.want, got)
			}
		})
	}
}

func TestArenaUnclaimedContactIsLost(t *testing.T) {
	a := NewArena(testLayout(), 12)
	lost := 0
	a.OnCollision(func(*knife.Projectile, knife.Category) {})
	a.OnLost(func(*knife.Projectile) { lost++ })

	p := &knife.Projectile{ID: 1, State: knife.ProjectileInFlight}
	a.Spawn(p)
	a.Launch(p, 0, -40)
	for i := 0; i < 120 && lost == 0; i++ {
		a.Step(testDt, 0)
	}

	if lost != 1 {
		t.Fatalf("Expected the knife to be reported lost once, got %d", lost)
	}
	if a.Flying() != 0 {
		t.Errorf("Lost knife must leave the arena, %d still flying", a.Flying())
	}
}

func TestArenaStuckKnivesFollowRotation(t *testing.T) {
	a, _ := newStickyArena()
	throwAt(t, a, 1, 0)

	b := a.bodies[1]
	x0 := b.obj.X
	a.Step(testDt, 90)
	if b.obj.X == x0 {
		t.Error("Stuck knife did not move with the target")
	}
	if b.angle != 90 {
		t.Errorf("Target-frame angle must not change, got %v", b.angle)
	}
}

func TestArenaClear(t *testing.T) {
	a, _ := newStickyArena()
	throwAt(t, a, 1, 0)
	throwAt(t, a, 2, 0)
	a.Spawn(&knife.Projectile{ID: 3, State: knife.ProjectileIdle})

	a.Clear()

	if len(a.bodies) != 0 || len(a.order) != 0 || len(a.debris) != 0 {
		t.Errorf("Expected empty arena, got %d bodies %d order %d debris", len(a.bodies), len(a.order), len(a.debris))
	}

	// The space is reusable after a clear.
	p := throwAt(t, a, 4, 0)
	if p.State != knife.ProjectileStuck {
		t.Errorf("Expected knife to stick after clear, got %v", p.State)
	}
}
