package blades

import (
	"math/rand"

	"github.com/vovakirdan/twisty-blades/internal/config"
	"github.com/vovakirdan/twisty-blades/internal/core"
)

// Rotator spins the target. Every ChangeInterval seconds it may flip its
// direction and pick a new speed in [base-variance, base+variance].
type Rotator struct {
	settings   config.RotatorSettings
	rng        *rand.Rand
	multiplier float64

	speed     float64 // Degrees per second, before the multiplier
	direction float64 // +1 clockwise on screen, -1 counter-clockwise
	angle     float64
	timer     float64
}

// NewRotator creates a rotator at angle 0 spinning at the base speed.
func NewRotator(s config.RotatorSettings, rng *rand.Rand) *Rotator {
	return &Rotator{
		settings:   s,
		rng:        rng,
		multiplier: 1,
		speed:      s.BaseSpeed,
		direction:  1,
	}
}

// SetMultiplier scales the spin speed (endless difficulty).
func (r *Rotator) SetMultiplier(m float64) {
	if m > 0 {
		r.multiplier = m
	}
}

// Update advances the rotation by dt seconds.
func (r *Rotator) Update(dt float64) {
	if dt <= 0 {
		return
	}

	if r.settings.ChangeInterval > 0 {
		r.timer += dt
		if r.timer >= r.settings.ChangeInterval {
			r.timer = 0
			r.change()
		}
	}

	r.angle = core.NormalizeDeg(r.angle + r.Speed()*dt)
}

// change applies the randomized direction and speed changes.
func (r *Rotator) change() {
	if r.settings.RandomizeDirection {
		r.direction = -r.direction
	}
	if r.settings.RandomizeSpeed && r.rng != nil {
		lo := r.settings.BaseSpeed - r.settings.SpeedVariance
		r.speed = lo + r.rng.Float64()*2*r.settings.SpeedVariance
	}
}

// Angle returns the current rotation in degrees, in [0, 360).
func (r *Rotator) Angle() float64 {
	return r.angle
}

// Speed returns the signed angular speed in degrees per second.
func (r *Rotator) Speed() float64 {
	return r.speed * r.direction * r.multiplier
}
