package dynamo

import (
	"math"

	"github.com/san-kum/orbitsim/internal/physics"
)

// CentralMassType labels the synthetic star built from a bare central mass.
const CentralMassType = "central_mass"

// Star is the fixed gravitational source at the origin. Luminosity only
// drives the habitable zone.
type Star struct {
	TypeName   string  `json:"type_name" yaml:"type_name"`
	Mass       float64 `json:"mass" yaml:"mass"`
	Luminosity float64 `json:"luminosity" yaml:"luminosity"`
}

// HabitableZone is the annulus between Inner and Outer radius.
type HabitableZone struct {
	Inner float64 `json:"r_inner"`
	Outer float64 `json:"r_outer"`
}

// HabitableZoneOf derives the annulus from the star's luminosity.
func HabitableZoneOf(star Star) HabitableZone {
	inner, outer := physics.HabitableZone(star.Luminosity)
	return HabitableZone{Inner: inner, Outer: outer}
}

// Contains reports whether radius r lies within the annulus.
func (hz HabitableZone) Contains(r float64) bool {
	return physics.InHabitableZone(r, hz.Inner, hz.Outer)
}

// Particle is a point mass. Mass is optional and never read by the force
// law; it is carried through every step unchanged.
type Particle struct {
	X    float64  `json:"x" yaml:"x"`
	Y    float64  `json:"y" yaml:"y"`
	VX   float64  `json:"vx" yaml:"vx"`
	VY   float64  `json:"vy" yaml:"vy"`
	Mass *float64 `json:"mass" yaml:"mass,omitempty"`
}

// Clone returns a copy that shares no storage with p.
func (p Particle) Clone() Particle {
	p.Mass = cloneMass(p.Mass)
	return p
}

// Radius is the distance from the star.
func (p Particle) Radius() float64 {
	return math.Hypot(p.X, p.Y)
}

func cloneMass(m *float64) *float64 {
	if m == nil {
		return nil
	}
	v := *m
	return &v
}

// Observer is notified of every snapshot appended to a timeline.
type Observer interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}
