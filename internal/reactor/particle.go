package reactor

import (
	"math"
	"math/rand"
)

const (
	// CollisionRadius is shared by every particle, so a collision test is a
	// fixed-distance proximity check.
	CollisionRadius = 0.02

	// FrameRateFactor scales speeds down for a ~30 Hz tick.
	FrameRateFactor = 0.33

	// Damping is applied to a velocity component on every wall bounce.
	Damping = 0.8

	minSpeed        = 0.03
	maxSpeed        = 0.15
	minLifetime     = 60
	maxLifetime     = 180
	maxLifetimeGain = 75
	childSpeed      = 0.05
)

// Particle is a radiation particle bouncing around the unit square.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Lifetime uint8
	Radius   float64
	Energy   float64
}

// NewParticle creates a particle at (x, y) heading in a random direction.
// Higher intensity yields faster, longer lived and more energetic particles.
func NewParticle(rng *rand.Rand, x, y, intensity float64) Particle {
	intensity = clamp(intensity, 0, 1)

	angle := rng.Float64() * 2 * math.Pi
	base := (minSpeed + rng.Float64()*(maxSpeed-minSpeed)) * FrameRateFactor
	speed := base * (1 + intensity*0.5)

	lifetime := uint8(minLifetime + rng.Intn(maxLifetime-minLifetime))
	gain := uint8(math.Min(intensity*40, maxLifetimeGain))

	return Particle{
		X:        clamp(x, CollisionRadius, 1-CollisionRadius),
		Y:        clamp(y, CollisionRadius, 1-CollisionRadius),
		VX:       math.Cos(angle) * speed,
		VY:       math.Sin(angle) * speed,
		Lifetime: addSaturatingU8(lifetime, gain),
		Radius:   CollisionRadius,
		Energy:   0.5 + intensity*0.5,
	}
}

// SpawnFromCollision creates the child of two colliding particles. It is
// placed at their midpoint and inherits a share of their energy and lifetime.
func SpawnFromCollision(p1, p2 Particle, rng *rand.Rand) Particle {
	angle := rng.Float64() * 2 * math.Pi
	energy := (p1.Energy + p2.Energy) * 0.6
	speed := childSpeed * FrameRateFactor * energy

	return Particle{
		X:        (p1.X + p2.X) / 2,
		Y:        (p1.Y + p2.Y) / 2,
		VX:       math.Cos(angle) * speed,
		VY:       math.Sin(angle) * speed,
		Lifetime: narrowU8((int(p1.Lifetime) + int(p2.Lifetime)) / 3),
		Radius:   CollisionRadius,
		Energy:   energy,
	}
}

// Update advances the particle by one step, reflecting off the walls.
func (p *Particle) Update() {
	p.X += p.VX
	p.Y += p.VY

	p.X, p.VX = reflect(p.X, p.VX, p.Radius)
	p.Y, p.VY = reflect(p.Y, p.VY, p.Radius)

	if p.Lifetime > 0 {
		p.Lifetime--
	}
}

func reflect(pos, vel, radius float64) (float64, float64) {
	switch {
	case pos < radius:
		return radius, -vel * Damping
	case pos > 1-radius:
		return 1 - radius, -vel * Damping
	}
	return pos, vel
}

// Alive reports whether the particle has any lifetime left.
func (p Particle) Alive() bool {
	return p.Lifetime > 0
}

// CollidesWith reports whether the two particles overlap.
func (p Particle) CollidesWith(other Particle) bool {
	dx := p.X - other.X
	dy := p.Y - other.Y
	r := p.Radius + other.Radius
	return dx*dx+dy*dy < r*r
}

func (p *Particle) bounce() {
	p.VX = -p.VX
	p.VY = -p.VY
}
