package knife

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestNewThrowerValidation(t *testing.T) {
	bad := DefaultThrowConfig()
	bad.MaxHoldTime = 0

	if _, err := NewThrower(bad, NewBus(), newFakePhysics(), nil); !errors.Is(err, ErrInvalidThrow) {
		t.Errorf("Expected ErrInvalidThrow, got %v", err)
	}
	if _, err := NewThrower(DefaultThrowConfig(), nil, newFakePhysics(), nil); !errors.Is(err, ErrMissingCollaborator) {
		t.Errorf("nil bus: expected ErrMissingCollaborator, got %v", err)
	}
	if _, err := NewThrower(DefaultThrowConfig(), NewBus(), nil, nil); !errors.Is(err, ErrMissingCollaborator) {
		t.Errorf("nil physics: expected ErrMissingCollaborator, got %v", err)
	}
}

func TestParseSpawnPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    SpawnPolicy
		wantErr bool
	}{
		{"", SpawnOnEvent, false},
		{"event", SpawnOnEvent, false},
		{"timer", SpawnOnTimer, false},
		{"both", SpawnOnEvent, true},
	}
	for _, tc := range tests {
		got, err := ParseSpawnPolicy(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseSpawnPolicy(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseSpawnPolicy(%q) = %v, expected %v", tc.in, got, tc.want)
		}
	}
}

func TestNoSpawnBeforeStart(t *testing.T) {
	r := newRig(DefaultThrowConfig())

	if r.thrower.Spawn() {
		t.Error("Spawn() before level start should be rejected")
	}
	r.thrower.BeginCharge(0)
	if r.thrower.Charging() {
		t.Error("BeginCharge() without a knife should be ignored")
	}
}

func TestLevelStartSpawnsOneKnife(t *testing.T) {
	r := newRig(DefaultThrowConfig())
	r.session.Start(LevelConfig{RequiredHits: 3, TimeLimit: 10})

	cur := r.thrower.Current()
	if cur == nil || cur.State != ProjectileIdle {
		t.Fatalf("Expected idle knife after start, got %+v", cur)
	}
	if cur.Generation != r.session.Generation() {
		t.Errorf("Knife generation %d, session generation %d", cur.Generation, r.session.Generation())
	}
	if len(r.physics.spawned) != 1 {
		t.Errorf("Expected 1 physics spawn, got %d", len(r.physics.spawned))
	}

	// A second spawn while one is held is rejected
	if r.thrower.Spawn() {
		t.Error("Second Spawn() while a knife is idle should be rejected")
	}
	r.thrower.BeginCharge(0)
	if r.thrower.Spawn() {
		t.Error("Spawn() while charging should be rejected")
	}
	if len(r.physics.spawned) != 1 {
		t.Errorf("Expected still 1 physics spawn, got %d", len(r.physics.spawned))
	}
}

func TestReleaseStrength(t *testing.T) {
	cfg := DefaultThrowConfig()

	tests := []struct {
		name string
		hold float64
		want float64
	}{
		{"tap", 0, cfg.MinDepth * cfg.DepthScale},
		{"half", cfg.MaxHoldTime / 2, (cfg.MinDepth + cfg.MaxDepth) / 2 * cfg.DepthScale},
		{"full", cfg.MaxHoldTime, cfg.MaxDepth * cfg.DepthScale},
		{"overheld", cfg.MaxHoldTime * 3, cfg.MaxDepth * cfg.DepthScale},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRig(cfg)
			r.session.Start(LevelConfig{RequiredHits: 3, TimeLimit: 100})

			p := r.throwAt(5, tc.hold)
			if p == nil {
				t.Fatal("Release() returned nil")
			}
			if !almostEqual(p.Strength, tc.want) {
				t.Errorf("Strength = %f, expected %f", p.Strength, tc.want)
			}
		})
	}
}

func TestReleaseLaunchesUpward(t *testing.T) {
	cfg := DefaultThrowConfig()
	r := newRig(cfg)
	r.session.Start(LevelConfig{RequiredHits: 3, TimeLimit: 100})

	p := r.throwAt(0, 1)

	if p.State != ProjectileInFlight {
		t.Errorf("Expected InFlight, got %v", p.State)
	}
	if !p.Armed {
		t.Error("Released knife should be armed")
	}
	if r.physics.lastVY != -cfg.ThrowSpeed {
		t.Errorf("Expected vy %f, got %f", -cfg.ThrowSpeed, r.physics.lastVY)
	}
	if r.thrower.Current() != nil {
		t.Error("Current knife should be cleared after release")
	}
}

func TestReleaseWithoutChargeIsNoop(t *testing.T) {
	r := newRig(DefaultThrowConfig())
	r.session.Start(LevelConfig{RequiredHits: 3, TimeLimit: 100})

	if p := r.thrower.Release(1); p != nil {
		t.Error("Release() without charging should return nil")
	}
	if len(r.physics.launched) != 0 {
		t.Error("Nothing should be launched")
	}
}

func TestCooldown(t *testing.T) {
	cfg := DefaultThrowConfig()
	cfg.Cooldown = 1
	r := newRig(cfg)
	r.session.Start(LevelConfig{RequiredHits: 5, TimeLimit: 100})

	p := r.throwAt(0, 0.5) // released at 0.5
	r.resolver.Resolve(p, CategoryTarget)

	if r.thrower.Current() == nil {
		t.Fatal("Expected next knife after hit")
	}

	r.thrower.BeginCharge(1.2) // inside cooldown
	if r.thrower.Charging() {
		t.Error("BeginCharge() inside cooldown should be ignored")
	}
	if r.thrower.Ready(1.2) {
		t.Error("Ready() inside cooldown should be false")
	}

	r.thrower.BeginCharge(1.5)
	if !r.thrower.Charging() {
		t.Error("BeginCharge() after cooldown should charge")
	}
}

func TestUpdateChargePullback(t *testing.T) {
	cfg := DefaultThrowConfig()
	cfg.MaxHoldTime = 2
	cfg.MaxPullback = 4
	r := newRig(cfg)
	r.session.Start(LevelConfig{RequiredHits: 3, TimeLimit: 100})

	if got := r.thrower.UpdateCharge(0); got != 0 {
		t.Errorf("Pullback while idle = %f, expected 0", got)
	}

	r.thrower.BeginCharge(10)
	tests := []struct {
		now  float64
		want float64
	}{
		{10, 0},
		{11, -2},
		{12, -4},
		{15, -4},
	}
	for _, tc := range tests {
		got := r.thrower.UpdateCharge(tc.now)
		if math.Abs(got-tc.want) > 1e-4 {
			t.Errorf("UpdateCharge(%f) = %f, expected %f", tc.now, got, tc.want)
		}
	}

	if !r.thrower.Charging() {
		t.Error("UpdateCharge() must not change state")
	}
}

func TestEventPolicySpawnsOnlyOnHit(t *testing.T) {
	cfg := DefaultThrowConfig()
	cfg.Policy = SpawnOnEvent
	r := newRig(cfg)
	r.session.Start(LevelConfig{RequiredHits: 3, TimeLimit: 100})

	p := r.throwAt(0, 0.2)
	for now := 0.5; now < 10; now += 0.5 {
		r.thrower.Tick(now)
	}
	if r.thrower.Current() != nil {
		t.Fatal("Event policy must not spawn on time alone")
	}

	r.resolver.Resolve(p, CategoryTarget)
	if r.thrower.Current() == nil {
		t.Fatal("Expected a knife after the hit")
	}
	if len(r.physics.spawned) != 2 {
		t.Errorf("Expected 2 spawns, got %d", len(r.physics.spawned))
	}
}

func TestTimerPolicySpawnsAfterInterval(t *testing.T) {
	cfg := DefaultThrowConfig()
	cfg.Policy = SpawnOnTimer
	cfg.SpawnInterval = 1
	r := newRig(cfg)
	r.session.Start(LevelConfig{RequiredHits: 3, TimeLimit: 100})

	p := r.throwAt(0, 0.5) // released at 0.5

	r.thrower.Tick(1.0)
	if r.thrower.Current() != nil {
		t.Fatal("Spawned before the interval elapsed")
	}

	// A hit does not spawn under the timer policy
	r.resolver.Resolve(p, CategoryTarget)
	if r.thrower.Current() != nil {
		t.Fatal("Timer policy must ignore ProjectileRequested")
	}

	r.thrower.Tick(1.5)
	if r.thrower.Current() == nil {
		t.Fatal("Expected spawn once the interval elapsed")
	}
	r.thrower.Tick(2.0)
	if len(r.physics.spawned) != 2 {
		t.Errorf("Expected exactly 2 spawns, got %d", len(r.physics.spawned))
	}
}

func TestLostKnifeRespawnsUnderEventPolicy(t *testing.T) {
	r := newRig(DefaultThrowConfig())
	r.session.Start(LevelConfig{RequiredHits: 3, TimeLimit: 100})

	p := r.throwAt(0, 0)
	r.thrower.OnProjectileLost(p)

	if p.State != ProjectileBroken {
		t.Errorf("Lost knife state = %v, expected broken", p.State)
	}
	if r.thrower.Current() == nil {
		t.Error("Expected a replacement knife")
	}
	if len(r.physics.dropped) != 1 {
		t.Errorf("Expected lost knife to be dropped, got %d drops", len(r.physics.dropped))
	}

	// Second report for the same knife is a no-op
	r.thrower.OnProjectileLost(p)
	if len(r.physics.spawned) != 2 {
		t.Errorf("Expected 2 spawns, got %d", len(r.physics.spawned))
	}
}

func TestLevelEndHaltsThrower(t *testing.T) {
	r := newRig(DefaultThrowConfig())
	r.session.Start(LevelConfig{RequiredHits: 3, TimeLimit: 5})

	r.thrower.BeginCharge(0)
	r.session.Tick(6)

	if r.thrower.Charging() {
		t.Error("Charge should be cancelled when the level ends")
	}
	if p := r.thrower.Release(1); p != nil {
		t.Error("Release() after level end should be ignored")
	}
	r.thrower.BeginCharge(10)
	if r.thrower.Charging() {
		t.Error("BeginCharge() after level end should be ignored")
	}
}

func TestRestartDiscardsKnives(t *testing.T) {
	r := newRig(DefaultThrowConfig())
	r.session.Start(LevelConfig{RequiredHits: 3, TimeLimit: 100})

	old := r.throwAt(0, 0.5)
	r.thrower.BeginCharge(5) // no knife in hand yet: ignored

	r.session.Restart()

	if r.physics.clears != 2 {
		t.Errorf("Expected physics cleared on each start, got %d", r.physics.clears)
	}
	cur := r.thrower.Current()
	if cur == nil || cur.State != ProjectileIdle {
		t.Fatalf("Expected fresh idle knife, got %+v", cur)
	}
	if cur.Generation != r.session.Generation() {
		t.Error("Fresh knife should carry the new generation")
	}

	// Stale knife from the previous attempt lands: ignored
	if out := r.resolver.Resolve(old, CategoryTarget); out != OutcomeIgnored {
		t.Errorf("Stale knife outcome = %v, expected ignored", out)
	}
	if r.session.Remaining() != 3 {
		t.Errorf("Stale hit changed remaining to %d", r.session.Remaining())
	}

	// Cooldown from the previous attempt does not carry over
	r.thrower.BeginCharge(0.1)
	if !r.thrower.Charging() {
		t.Error("Expected charging right after restart")
	}
}

func TestThrowerClose(t *testing.T) {
	bus := NewBus()
	th, err := NewThrower(DefaultThrowConfig(), bus, newFakePhysics(), nil)
	if err != nil {
		t.Fatalf("NewThrower() failed: %v", err)
	}
	if bus.Len() != 1 {
		t.Fatalf("Expected 1 listener, got %d", bus.Len())
	}
	th.Close()
	th.Close()
	if bus.Len() != 0 {
		t.Errorf("Expected 0 listeners after Close, got %d", bus.Len())
	}
}
