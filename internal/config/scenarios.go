package config

import (
	"math"
	"sort"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

func mass(v float64) *float64 { return &v }

// Scenarios are ready-made starting points for the CLI.
var Scenarios = map[string]*Config{
	// bends visibly without blowing up
	"simple_orbit": {
		Name: "simple_orbit", CentralMass: mass(1.0),
		Dt: 0.02, Steps: 800, Epsilon: 0.01,
		Particles: []dynamo.Particle{{X: 1.0, Y: 0.0, VX: 0.0, VY: 1.2}},
	},
	"circular": {
		Name: "circular", Star: "sun_like",
		Dt: 0.01, Steps: 1000, Epsilon: 0,
		Particles: []dynamo.Particle{{X: 1.0, VY: 1.0}},
	},
	"eccentric": {
		Name: "eccentric", Star: "sun_like",
		Dt: 0.005, Steps: 4000, Epsilon: 0.01,
		Particles: []dynamo.Particle{{X: 2.0, VY: 0.4}},
	},
	"escape": {
		Name: "escape", Star: "white_dwarf",
		Dt: 0.02, Steps: 800, Epsilon: 0.01,
		Particles: []dynamo.Particle{{X: 1.0, VY: 1.5}},
	},
	"habitable_ring": {
		Name: "habitable_ring", Star: "red_giant",
		Dt: 0.05, Steps: 2000, Epsilon: 0.01,
		Particles: ring(8, 11.0, 1.2, 0.01),
	},
}

// ring places n particles on a circle of radius r with the softened
// circular speed around a star of mass m.
func ring(n int, r, m, epsilon float64) []dynamo.Particle {
	v := physics.CircularSpeed(r, m, epsilon)
	ps := make([]dynamo.Particle, n)
	for i := range ps {
		angle := 2 * math.Pi * float64(i) / float64(n)
		sin, cos := math.Sincos(angle)
		ps[i] = dynamo.Particle{
			X:  r * cos,
			Y:  r * sin,
			VX: -v * sin,
			VY: v * cos,
		}
	}
	return ps
}

// GetScenario returns a copy of the named scenario, or nil.
func GetScenario(name string) *Config {
	s, ok := Scenarios[name]
	if !ok {
		return nil
	}
	c := *s
	c.Particles = make([]dynamo.Particle, len(s.Particles))
	for i, p := range s.Particles {
		c.Particles[i] = p.Clone()
	}
	if s.CentralMass != nil {
		c.CentralMass = mass(*s.CentralMass)
	}
	if s.EndTime != nil {
		end := *s.EndTime
		c.EndTime = &end
	}
	return &c
}

func ListScenarios() []string {
	names := make([]string, 0, len(Scenarios))
	for name := range Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
