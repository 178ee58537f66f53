package dynamo

import "github.com/san-kum/orbitsim/internal/physics"

// Above this many particles Evolve maps across goroutines.
const (
	parallelThreshold = 256
	parallelMinChunk  = 64
)

// State is one point of a run. Dt and Epsilon are fixed for the run.
type State struct {
	T         float64
	Dt        float64
	Epsilon   float64
	Particles []Particle
}

// Clone deep-copies the state.
func (s State) Clone() State {
	c := s
	c.Particles = cloneParticles(s.Particles)
	return c
}

// Evolve returns the state one step of semi-implicit Euler later. s is not
// modified and the result shares no storage with it.
func (s State) Evolve(star Star) State {
	next := State{
		T:         s.T + s.Dt,
		Dt:        s.Dt,
		Epsilon:   s.Epsilon,
		Particles: make([]Particle, len(s.Particles)),
	}

	advance := func(start, end int) {
		for i := start; i < end; i++ {
			next.Particles[i] = s.Particles[i].advance(star.Mass, s.Epsilon, s.Dt)
		}
	}

	n := len(s.Particles)
	if n >= parallelThreshold {
		ParallelFor(n, parallelMinChunk, advance)
	} else {
		advance(0, n)
	}

	return next
}

// advance applies one step to a single particle. The position update uses
// the already-updated velocity.
func (p Particle) advance(mass, epsilon, dt float64) Particle {
	ax, ay := physics.Acceleration(p.X, p.Y, mass, epsilon)
	vx := p.VX + ax*dt
	vy := p.VY + ay*dt
	return Particle{
		X:    p.X + vx*dt,
		Y:    p.Y + vy*dt,
		VX:   vx,
		VY:   vy,
		Mass: cloneMass(p.Mass),
	}
}

func cloneParticles(ps []Particle) []Particle {
	if ps == nil {
		return nil
	}
	c := make([]Particle, len(ps))
	for i, p := range ps {
		c[i] = p.Clone()
	}
	return c
}
