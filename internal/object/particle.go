package object

import (
	"math"

	"github.com/tomz197/dartkids/internal/loop/config"
)

// ParticleRole selects a particle's speed, lifetime and color.
type ParticleRole int

const (
	RoleMuzzle ParticleRole = iota // Shot flash at the ship's nose
	RoleDebris                     // Sparks from hits and explosions
)

// Particle is a short-lived visual effect. Gameplay never reads particles.
type Particle struct {
	X, Y    float64 // Position
	VX, VY  float64 // Velocity in pixels per frame
	Life    int     // Frames remaining
	MaxLife int     // Initial lifetime
	Role    ParticleRole
}

// NewParticle creates a particle moving in a random direction at the role's speed.
func NewParticle(x, y float64, role ParticleRole, scale float64, rng Rand) Particle {
	base, life := float64(config.MuzzleSpeed), config.MuzzleLife
	if role == RoleDebris {
		base, life = config.DebrisSpeed, config.DebrisLife
	}
	a := rng.Float64() * 2 * math.Pi
	s := (base + rng.Float64()*config.ParticleSpeed) * scale
	return Particle{
		X:       x,
		Y:       y,
		VX:      math.Cos(a) * s,
		VY:      math.Sin(a) * s,
		Life:    life,
		MaxLife: life,
		Role:    role,
	}
}

// Update moves the particle and ages it. Returns true once it has expired.
func (p *Particle) Update() (remove bool) {
	p.X += p.VX
	p.Y += p.VY
	p.Life--
	return p.Life <= 0
}

// Alpha returns the particle's opacity from its remaining life.
func (p Particle) Alpha() float64 {
	a := float64(p.Life) / config.MaxParticleLife
	return clamp(a, 0, 1)
}

// Effects owns the live particles.
type Effects struct {
	Particles []Particle
}

// Burst adds n particles whose velocity is multiplied by boost and whose
// lifetime is replaced by life.
func (e *Effects) Burst(x, y float64, n int, role ParticleRole, boost float64, life int, scale float64, rng Rand) {
	for i := 0; i < n; i++ {
		p := NewParticle(x, y, role, scale, rng)
		p.VX *= boost
		p.VY *= boost
		p.Life = life
		p.MaxLife = life
		e.Particles = append(e.Particles, p)
	}
}

// Advance updates every particle and drops expired ones in place.
func (e *Effects) Advance() {
	alive := e.Particles[:0]
	for i := range e.Particles {
		p := e.Particles[i]
		if p.Update() {
			continue
		}
		alive = append(alive, p)
	}
	clear(e.Particles[len(alive):])
	e.Particles = alive
}

// Reset drops every particle.
func (e *Effects) Reset() {
	e.Particles = e.Particles[:0]
}
