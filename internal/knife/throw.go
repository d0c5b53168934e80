package knife

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// SpawnPolicy decides when the next knife appears in the thrower's hand.
type SpawnPolicy int

const (
	// SpawnOnEvent spawns only when the session requests a knife after a hit,
	// or when a thrown knife is lost without a classified collision.
	SpawnOnEvent SpawnPolicy = iota
	// SpawnOnTimer spawns once no knife is held and SpawnInterval has passed
	// since the last release.
	SpawnOnTimer
)

func (p SpawnPolicy) String() string {
	switch p {
	case SpawnOnEvent:
		return "event"
	case SpawnOnTimer:
		return "timer"
	default:
		return "unknown"
	}
}

// ParseSpawnPolicy parses "event" or "timer". Empty means event.
func ParseSpawnPolicy(s string) (SpawnPolicy, error) {
	switch s {
	case "", "event":
		return SpawnOnEvent, nil
	case "timer":
		return SpawnOnTimer, nil
	default:
		return SpawnOnEvent, fmt.Errorf("knife: unknown spawn policy %q", s)
	}
}

// ThrowConfig tunes the throw controller. Times are in seconds.
type ThrowConfig struct {
	MaxHoldTime   float64
	Cooldown      float64
	SpawnInterval float64
	ThrowSpeed    float64 // Upward launch speed, cells per second
	MinDepth      float64
	MaxDepth      float64
	DepthScale    float64
	MaxPullback   float64 // Visual pullback at full charge, cells
	Policy        SpawnPolicy
}

// DefaultThrowConfig returns the stock throw tuning.
func DefaultThrowConfig() ThrowConfig {
	return ThrowConfig{
		MaxHoldTime:   2,
		Cooldown:      1,
		SpawnInterval: 1,
		ThrowSpeed:    20,
		MinDepth:      0.1,
		MaxDepth:      0.5,
		DepthScale:    5,
		MaxPullback:   2,
		Policy:        SpawnOnEvent,
	}
}

// Validate checks the tuning values.
func (c ThrowConfig) Validate() error {
	switch {
	case c.MaxHoldTime <= 0:
		return fmt.Errorf("%w: max hold time must be positive", ErrInvalidThrow)
	case c.MinDepth <= 0 || c.MaxDepth < c.MinDepth:
		return fmt.Errorf("%w: depth range [%g, %g] is invalid", ErrInvalidThrow, c.MinDepth, c.MaxDepth)
	case c.DepthScale <= 0:
		return fmt.Errorf("%w: depth scale must be positive", ErrInvalidThrow)
	case c.ThrowSpeed <= 0:
		return fmt.Errorf("%w: throw speed must be positive", ErrInvalidThrow)
	case c.Cooldown < 0 || c.SpawnInterval < 0:
		return fmt.Errorf("%w: negative cooldown or spawn interval", ErrInvalidThrow)
	}
	return nil
}

// Thrower owns the hand-held knife: idle -> charging -> released.
type Thrower struct {
	cfg     ThrowConfig
	physics Physics
	logger  *log.Logger

	pullback    *gween.Tween
	current     *Projectile
	nextID      uint64
	generation  uint64
	started     bool
	halted      bool // Level ended; no throws or spawns until the next start
	lastRelease float64

	unsubscribe func()
}

// NewThrower creates a thrower subscribed to bus.
func NewThrower(cfg ThrowConfig, bus *Bus, physics Physics, logger *log.Logger) (*Thrower, error) {
	if bus == nil {
		return nil, fmt.Errorf("%w: event bus", ErrMissingCollaborator)
	}
	if physics == nil {
		return nil, fmt.Errorf("%w: physics", ErrMissingCollaborator)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Thrower{
		cfg:         cfg,
		physics:     physics,
		logger:      discardLogger(logger),
		pullback:    gween.New(0, float32(-cfg.MaxPullback), float32(cfg.MaxHoldTime), ease.Linear),
		lastRelease: math.Inf(-1),
	}
	t.unsubscribe = bus.Subscribe(t.onEvent)
	return t, nil
}

// Close detaches the thrower from its bus.
func (t *Thrower) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}

func (t *Thrower) onEvent(ev Event) {
	switch e := ev.(type) {
	case LevelStarted:
		t.OnLevelStarted(e.Generation)
	case ProjectileRequested:
		if t.cfg.Policy == SpawnOnEvent && e.Generation == t.generation {
			t.Spawn()
		}
	case LevelCompleted, LevelFailed:
		t.halted = true
		if t.current != nil && t.current.State == ProjectileCharging {
			t.current.State = ProjectileIdle
		}
	}
}

// OnLevelStarted drops every knife from the previous attempt and hands the
// player a fresh one.
func (t *Thrower) OnLevelStarted(generation uint64) {
	t.physics.Clear()
	t.current = nil
	t.generation = generation
	t.started = true
	t.halted = false
	t.lastRelease = math.Inf(-1)
	t.Spawn()
}

// Spawn puts a new idle knife in the hand. It refuses while a knife is still
// held, before the first start, and after the level ended.
func (t *Thrower) Spawn() bool {
	if !t.started || t.halted {
		return false
	}
	if t.current != nil && t.current.Live() {
		return false
	}

	t.nextID++
	p := &Projectile{
		ID:         t.nextID,
		Generation: t.generation,
		State:      ProjectileIdle,
	}
	t.current = p
	t.physics.Spawn(p)
	t.logger.Debug("knife spawned", "id", p.ID, "generation", p.Generation)
	return true
}

// BeginCharge starts charging the idle knife.
func (t *Thrower) BeginCharge(now float64) {
	if t.halted || t.current == nil || t.current.State != ProjectileIdle {
		return
	}
	if now < t.lastRelease+t.cfg.Cooldown {
		return
	}
	t.current.State = ProjectileCharging
	t.current.ChargeStart = now
}

// HoldFraction returns the normalized charge in [0, 1], or 0 when not charging.
func (t *Thrower) HoldFraction(now float64) float64 {
	if !t.Charging() {
		return 0
	}
	hold := clampF(now-t.current.ChargeStart, 0, t.cfg.MaxHoldTime)
	return hold / t.cfg.MaxHoldTime
}

// UpdateCharge returns the visual pullback offset of the charging knife. It
// has no effect on game state.
func (t *Thrower) UpdateCharge(now float64) float64 {
	if !t.Charging() {
		return 0
	}
	hold := clampF(now-t.current.ChargeStart, 0, t.cfg.MaxHoldTime)
	offset, _ := t.pullback.Set(float32(hold))
	return float64(offset)
}

// Strength converts a hold fraction to the throw strength.
func (t *Thrower) Strength(holdFraction float64) float64 {
	f := clampF(holdFraction, 0, 1)
	return (t.cfg.MinDepth*(1-f) + t.cfg.MaxDepth*f) * t.cfg.DepthScale
}

// Release throws the charging knife and returns it, or nil when nothing is
// being charged.
func (t *Thrower) Release(now float64) *Projectile {
	if t.halted || !t.Charging() {
		return nil
	}

	p := t.current
	p.Strength = t.Strength(t.HoldFraction(now))
	p.Armed = true
	p.State = ProjectileInFlight
	t.physics.Launch(p, 0, -t.cfg.ThrowSpeed)

	t.lastRelease = now
	t.current = nil
	t.logger.Debug("knife thrown", "id", p.ID, "strength", p.Strength)
	return p
}

// Tick runs the timer spawn policy.
func (t *Thrower) Tick(now float64) {
	if t.cfg.Policy != SpawnOnTimer || t.current != nil {
		return
	}
	if now >= t.lastRelease+t.cfg.SpawnInterval {
		t.Spawn()
	}
}

// OnProjectileLost handles a knife that left the arena without hitting
// anything.
func (t *Thrower) OnProjectileLost(p *Projectile) {
	if p == nil || p.Generation != t.generation || p.State != ProjectileInFlight {
		return
	}
	p.State = ProjectileBroken
	t.physics.Drop(p)
	t.logger.Debug("knife lost", "id", p.ID)
	if t.cfg.Policy == SpawnOnEvent {
		t.Spawn()
	}
}

// Current returns the knife in hand, or nil.
func (t *Thrower) Current() *Projectile {
	return t.current
}

// Charging reports whether a knife is being charged.
func (t *Thrower) Charging() bool {
	return t.current != nil && t.current.State == ProjectileCharging
}

// Ready reports whether a knife can be charged at now.
func (t *Thrower) Ready(now float64) bool {
	return !t.halted && t.current != nil && t.current.State == ProjectileIdle &&
		now >= t.lastRelease+t.cfg.Cooldown
}

// Config returns the throw tuning.
func (t *Thrower) Config() ThrowConfig {
	return t.cfg
}
