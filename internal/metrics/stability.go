package metrics

import "github.com/san-kum/orbitsim/internal/dynamo"

// Stability is the fraction of snapshots in which every particle stays
// within maxRadius of the star.
type Stability struct {
	name       string
	maxRadius  float64
	violations int
	samples    int
}

func NewStability(maxRadius float64) *Stability {
	return &Stability{
		name:      "stability",
		maxRadius: maxRadius,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(snap dynamo.Snapshot) {
	s.samples++
	for _, p := range snap.Particles {
		if p.Radius() > s.maxRadius {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
