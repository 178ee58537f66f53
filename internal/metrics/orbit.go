package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Periapsis is the closest approach of one particle to the star.
type Periapsis struct {
	index int
	min   float64
}

func NewPeriapsis(index int) *Periapsis {
	return &Periapsis{index: index, min: math.Inf(1)}
}

func (p *Periapsis) Name() string { return "periapsis" }

func (p *Periapsis) Observe(s dynamo.Snapshot) {
	if p.index < len(s.Particles) {
		p.min = math.Min(p.min, s.Particles[p.index].Radius())
	}
}

func (p *Periapsis) Value() float64 {
	if math.IsInf(p.min, 1) {
		return 0
	}
	return p.min
}

func (p *Periapsis) Reset() { p.min = math.Inf(1) }

// Apoapsis is the farthest excursion of one particle from the star.
type Apoapsis struct {
	index int
	max   float64
}

func NewApoapsis(index int) *Apoapsis {
	return &Apoapsis{index: index}
}

func (a *Apoapsis) Name() string { return "apoapsis" }

func (a *Apoapsis) Observe(s dynamo.Snapshot) {
	if a.index < len(s.Particles) {
		a.max = math.Max(a.max, s.Particles[a.index].Radius())
	}
}

func (a *Apoapsis) Value() float64 { return a.max }

func (a *Apoapsis) Reset() { a.max = 0 }

// HabitableFraction is the share of snapshots in which one particle sits
// inside the star's habitable zone.
type HabitableFraction struct {
	index   int
	inside  int
	samples int
}

func NewHabitableFraction(index int) *HabitableFraction {
	return &HabitableFraction{index: index}
}

func (h *HabitableFraction) Name() string { return "habitable_fraction" }

func (h *HabitableFraction) Observe(s dynamo.Snapshot) {
	if h.index >= len(s.Particles) {
		return
	}
	h.samples++
	if s.HabitableZone.Contains(s.Particles[h.index].Radius()) {
		h.inside++
	}
}

func (h *HabitableFraction) Value() float64 {
	if h.samples == 0 {
		return 0
	}
	return float64(h.inside) / float64(h.samples)
}

func (h *HabitableFraction) Reset() {
	h.inside = 0
	h.samples = 0
}

// Defaults is the observer set attached to CLI and API runs.
func Defaults() []dynamo.Observer {
	return []dynamo.Observer{
		NewEnergyDrift(),
		NewAngularMomentumDrift(),
		NewPeriapsis(0),
		NewApoapsis(0),
		NewHabitableFraction(0),
		NewStability(DefaultEscapeRadius),
	}
}

// DefaultEscapeRadius bounds the region counted as stable.
const DefaultEscapeRadius = 100.0
