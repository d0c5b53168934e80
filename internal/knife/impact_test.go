package knife

import (
	"errors"
	"testing"
)

func TestNewResolverRequiresCollaborators(t *testing.T) {
	s, _, _ := newTestSession(t)

	if _, err := NewResolver(nil, newFakePhysics(), nil); !errors.Is(err, ErrMissingCollaborator) {
		t.Errorf("nil session: expected ErrMissingCollaborator, got %v", err)
	}
	if _, err := NewResolver(s, nil, nil); !errors.Is(err, ErrMissingCollaborator) {
		t.Errorf("nil physics: expected ErrMissingCollaborator, got %v", err)
	}
}

func TestStickOffset(t *testing.T) {
	tests := []struct {
		strength float64
		want     float64
	}{
		{0.5, 2},
		{2.5, 0.4},
		{1, 1},
		{0, 1 / MinStrength},
		{-3, 1 / MinStrength},
	}
	for _, tc := range tests {
		if got := StickOffset(tc.strength); !almostEqual(got, tc.want) {
			t.Errorf("StickOffset(%f) = %f, expected %f", tc.strength, got, tc.want)
		}
	}
}

func TestResolveTargetHit(t *testing.T) {
	r := newRig(DefaultThrowConfig())
	r.session.Start(LevelConfig{RequiredHits: 3, TimeLimit: 30})

	p := r.throwAt(0, 2) // full charge
	out := r.resolver.Resolve(p, CategoryTarget)

	if out != OutcomeHit {
		t.Fatalf("Expected hit, got %v", out)
	}
	if p.State != ProjectileStuck {
		t.Errorf("Expected stuck, got %v", p.State)
	}
	if !almostEqual(p.Offset, 1/2.5) {
		t.Errorf("Expected offset 0.4, got %f", p.Offset)
	}
	if off, ok := r.physics.attached[p.ID]; !ok || !almostEqual(off, p.Offset) {
		t.Errorf("Expected physics attach with offset %f, got %f (ok=%v)", p.Offset, off, ok)
	}
	if len(r.physics.frozen) != 1 {
		t.Errorf("Expected knife frozen once, got %d", len(r.physics.frozen))
	}
	if r.session.Remaining() != 2 {
		t.Errorf("Expected 2 remaining, got %d", r.session.Remaining())
	}
}

func TestResolveDuplicateHitCountsOnce(t *testing.T) {
	r := newRig(DefaultThrowConfig())
	r.session.Start(LevelConfig{RequiredHits: 3, TimeLimit: 30})

	p := r.throwAt(0, 1)
	r.resolver.Resolve(p, CategoryTarget)
	if out := r.resolver.Resolve(p, CategoryTarget); out != OutcomeIgnored {
		t.Errorf("Second callback outcome = %v, expected ignored", out)
	}
	if r.session.Remaining() != 2 {
		t.Errorf("Expected 2 remaining, got %d", r.session.Remaining())
	}
}

func TestResolveWeaponCollisionFailsOnce(t *testing.T) {
	r := newRig(DefaultThrowConfig())
	r.session.Start(LevelConfig{RequiredHits: 3, TimeLimit: 30})

	first := r.throwAt(0, 1)
	r.resolver.Resolve(first, CategoryTarget)

	second := r.throwAt(5, 1)
	cb := r.resolver.CollisionFunc()
	cb(second, CategoryWeapon)
	cb(second, CategoryWeapon)
	cb(second, CategoryWeapon)

	if second.State != ProjectileBroken {
		t.Errorf("Expected broken, got %v", second.State)
	}
	if r.session.Status() != StatusLost {
		t.Errorf("Expected Lost, got %v", r.session.Status())
	}
	if n := r.events.count(isFailed); n != 1 {
		t.Errorf("Expected exactly 1 LevelFailed, got %d", n)
	}
	if len(r.physics.dropped) != 1 {
		t.Errorf("Expected knife dropped once, got %d", len(r.physics.dropped))
	}

	failed := r.events.events[len(r.events.events)-1].(LevelFailed)
	if failed.Reason != FailCollision {
		t.Errorf("Expected collision reason, got %v", failed.Reason)
	}
}

func TestResolveIgnored(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *rig) (*Projectile, Category)
	}{
		{"nil knife", func(r *rig) (*Projectile, Category) {
			return nil, CategoryTarget
		}},
		{"idle knife", func(r *rig) (*Projectile, Category) {
			return r.thrower.Current(), CategoryTarget
		}},
		{"unarmed knife", func(r *rig) (*Projectile, Category) {
			p := r.throwAt(0, 1)
			p.Armed = false
			return p, CategoryTarget
		}},
		{"unknown category", func(r *rig) (*Projectile, Category) {
			return r.throwAt(0, 1), CategoryUnknown
		}},
		{"after timeout", func(r *rig) (*Projectile, Category) {
			p := r.throwAt(0, 1)
			r.session.Tick(100)
			return p, CategoryTarget
		}},
		{"stale generation", func(r *rig) (*Projectile, Category) {
			p := r.throwAt(0, 1)
			r.session.Restart()
			return p, CategoryWeapon
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRig(DefaultThrowConfig())
			r.session.Start(LevelConfig{RequiredHits: 3, TimeLimit: 30})
			p, cat := tc.setup(r)
			status := r.session.Status()

			if out := r.resolver.Resolve(p, cat); out != OutcomeIgnored {
				t.Errorf("Expected ignored, got %v", out)
			}
			if r.session.Remaining() != 3 {
				t.Errorf("Remaining changed to %d", r.session.Remaining())
			}
			if r.session.Status() != status {
				t.Errorf("Status changed from %v to %v", status, r.session.Status())
			}
			if len(r.physics.frozen) != 0 || len(r.physics.dropped) != 0 {
				t.Error("Ignored collision must not touch physics")
			}
		})
	}
}

func TestFullLevelThroughResolver(t *testing.T) {
	r := newRig(DefaultThrowConfig())
	r.session.Start(LevelConfig{Index: 2, RequiredHits: 5, TimeLimit: 30})

	now := 0.0
	for i := 0; i < 5; i++ {
		p := r.throwAt(now, 0.3)
		if p == nil {
			t.Fatalf("throw %d: no knife in hand", i)
		}
		if out := r.resolver.Resolve(p, CategoryTarget); out != OutcomeHit {
			t.Fatalf("throw %d: expected hit, got %v", i, out)
		}
		now += 2
		r.session.Tick(2)
	}

	if r.session.Status() != StatusWon {
		t.Fatalf("Expected Won, got %v", r.session.Status())
	}
	if r.progress.Highest != 2 || r.progress.Saves != 1 {
		t.Errorf("Expected level 2 saved once, got highest=%d saves=%d", r.progress.Highest, r.progress.Saves)
	}
	if r.thrower.Current() != nil {
		t.Error("No knife should spawn after the level is won")
	}
	if len(r.physics.spawned) != 5 {
		t.Errorf("Expected 5 spawns, got %d", len(r.physics.spawned))
	}
}
