package knife

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
)

// MinStrength keeps the inverse stick-in offset finite.
const MinStrength = 1e-3

// StickOffset returns the visual stick-in offset for a knife of the given
// strength: 1/strength, so weaker throws sit further out of the target.
func StickOffset(strength float64) float64 {
	return 1 / math.Max(strength, MinStrength)
}

// Resolver classifies collisions between a thrown knife and another body and
// reports the result to the session. It keeps no state of its own; repeated
// callbacks are filtered by the knife's state.
type Resolver struct {
	session *Session
	physics Physics
	logger  *log.Logger
}

// NewResolver creates a resolver reporting to session.
func NewResolver(session *Session, physics Physics, logger *log.Logger) (*Resolver, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: session", ErrMissingCollaborator)
	}
	if physics == nil {
		return nil, fmt.Errorf("%w: physics", ErrMissingCollaborator)
	}
	return &Resolver{session: session, physics: physics, logger: discardLogger(logger)}, nil
}

// Resolve handles one collision of p with a body of category other.
func (r *Resolver) Resolve(p *Projectile, other Category) Outcome {
	if p == nil || p.State != ProjectileInFlight {
		return OutcomeIgnored
	}
	if p.Generation != r.session.Generation() || !r.session.Active() {
		r.logger.Debug("stale collision ignored", "id", p.ID, "generation", p.Generation)
		return OutcomeIgnored
	}

	switch other {
	case CategoryTarget:
		if !p.Armed {
			return OutcomeIgnored
		}
		p.State = ProjectileStuck
		p.Offset = StickOffset(p.Strength)
		r.physics.Freeze(p)
		r.physics.Attach(p, p.Offset)
		r.session.ReportHit()
		return OutcomeHit

	case CategoryWeapon:
		p.State = ProjectileBroken
		r.physics.Drop(p)
		r.session.ReportFailure()
		return OutcomeCollision

	default:
		r.logger.Debug("unexpected collision category", "id", p.ID, "category", other)
		return OutcomeIgnored
	}
}

// CollisionFunc returns Resolve as a physics callback.
func (r *Resolver) CollisionFunc() CollisionFunc {
	return func(p *Projectile, other Category) {
		r.Resolve(p, other)
	}
}
