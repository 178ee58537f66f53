package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

// EnergyDrift tracks the largest relative change of total specific orbital
// energy, summed over particles, against the first observed snapshot.
// Symplectic Euler does not conserve it exactly; the drift stays bounded for
// bound orbits.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s dynamo.Snapshot) {
	energy := totalEnergy(s)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

func totalEnergy(s dynamo.Snapshot) float64 {
	sum := 0.0
	for _, p := range s.Particles {
		sum += physics.SpecificEnergy(p.X, p.Y, p.VX, p.VY, s.Star.Mass, s.Epsilon)
	}
	return sum
}

// AngularMomentumDrift is the largest relative change of x·vy − y·vx summed
// over particles. A central force keeps it at rounding level.
type AngularMomentumDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewAngularMomentumDrift() *AngularMomentumDrift {
	return &AngularMomentumDrift{name: "angular_momentum_drift"}
}

func (a *AngularMomentumDrift) Name() string { return a.name }

func (a *AngularMomentumDrift) Observe(s dynamo.Snapshot) {
	l := 0.0
	for _, p := range s.Particles {
		l += physics.AngularMomentum(p.X, p.Y, p.VX, p.VY)
	}

	if a.samples == 0 {
		a.initial = l
	}
	a.samples++

	if a.initial != 0 {
		a.maxDrift = math.Max(a.maxDrift, math.Abs(l-a.initial)/math.Abs(a.initial))
	}
}

func (a *AngularMomentumDrift) Value() float64 { return a.maxDrift }

func (a *AngularMomentumDrift) Reset() {
	a.initial = 0
	a.maxDrift = 0
	a.samples = 0
}
