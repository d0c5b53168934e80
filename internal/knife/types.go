// Package knife implements the level/knife/target interaction loop of Twisty
// Blades: the level session state machine, the throw controller and the
// impact resolver. It contains no rendering, physics or terminal code; those
// are collaborators reached through the interfaces in collaborators.go.
package knife

import (
	"errors"
	"fmt"
)

// Setup errors. Gameplay misuse (out-of-order input, late collisions) is never
// reported as an error; it is ignored by the state machine guards.
var (
	ErrMissingCollaborator = errors.New("knife: missing collaborator")
	ErrInvalidLevel        = errors.New("knife: invalid level config")
	ErrInvalidThrow        = errors.New("knife: invalid throw config")
)

// Status is the lifecycle state of a level session.
type Status int

const (
	StatusPending Status = iota
	StatusActive
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusActive:
		return "active"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status ends a level attempt.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// Category is the collision tag of a physics body.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryTarget
	CategoryWeapon
)

func (c Category) String() string {
	switch c {
	case CategoryTarget:
		return "target"
	case CategoryWeapon:
		return "weapon"
	default:
		return "unknown"
	}
}

// Outcome is the classification of a single collision event.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeHit
	OutcomeCollision
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeCollision:
		return "collision"
	default:
		return "ignored"
	}
}

// FailReason describes why a level was lost.
type FailReason int

const (
	FailTimeout FailReason = iota
	FailCollision
)

func (r FailReason) String() string {
	switch r {
	case FailTimeout:
		return "timeout"
	case FailCollision:
		return "collision"
	default:
		return "unknown"
	}
}

// LevelConfig is the immutable per-level configuration.
type LevelConfig struct {
	Index        int     // Zero-based level index, used for persisted progress
	Name         string  // Display name
	RequiredHits int     // Knives that must stick to win
	TimeLimit    float64 // Seconds
}

// Validate checks the config invariants.
func (c LevelConfig) Validate() error {
	if c.RequiredHits <= 0 {
		return fmt.Errorf("%w: required hits must be positive, got %d", ErrInvalidLevel, c.RequiredHits)
	}
	if c.TimeLimit <= 0 {
		return fmt.Errorf("%w: time limit must be positive, got %g", ErrInvalidLevel, c.TimeLimit)
	}
	if c.Index < 0 {
		return fmt.Errorf("%w: negative level index %d", ErrInvalidLevel, c.Index)
	}
	return nil
}

// ProjectileState is the lifecycle state of a thrown knife.
type ProjectileState int

const (
	ProjectileNone ProjectileState = iota
	ProjectileIdle
	ProjectileCharging
	ProjectileInFlight
	ProjectileStuck
	ProjectileBroken
)

func (s ProjectileState) String() string {
	switch s {
	case ProjectileNone:
		return "none"
	case ProjectileIdle:
		return "idle"
	case ProjectileCharging:
		return "charging"
	case ProjectileInFlight:
		return "in_flight"
	case ProjectileStuck:
		return "stuck"
	case ProjectileBroken:
		return "broken"
	default:
		return "unknown"
	}
}

// Projectile is a single knife. Physics collaborators key their bodies by ID.
type Projectile struct {
	ID          uint64
	Generation  uint64 // Session generation the knife was spawned in
	State       ProjectileState
	ChargeStart float64
	Strength    float64
	Armed       bool    // Attack-capable; set on release
	Offset      float64 // Stick-in offset along the approach axis, set on hit
}

// Live reports whether the knife is still in the thrower's hand.
func (p *Projectile) Live() bool {
	return p.State == ProjectileIdle || p.State == ProjectileCharging
}

// Consumed reports whether the knife has been stuck or broken.
func (p *Projectile) Consumed() bool {
	return p.State == ProjectileStuck || p.State == ProjectileBroken
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
