package config

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Request is the semantic input of a single-particle simulation: a preset
// star and one particle's initial state.
type Request struct {
	StarType string
	X, Y     float64
	VX, VY   float64
	Dt       float64
	Steps    float64
	Epsilon  *float64
}

// Derived is a Request resolved into absolute simulator parameters.
type Derived struct {
	Star      dynamo.Star
	Particles []dynamo.Particle
	Dt        float64
	Steps     int
	Epsilon   float64
}

// Derive resolves the star preset, rounds steps half-to-even of at least
// one, and fills in the default epsilon.
func Derive(req Request, catalog Catalog) (Derived, error) {
	star, err := catalog.Star(req.StarType)
	if err != nil {
		return Derived{}, err
	}

	steps := int(math.RoundToEven(req.Steps))
	if steps < 1 {
		steps = 1
	}

	epsilon := DefaultEpsilon
	if req.Epsilon != nil {
		epsilon = *req.Epsilon
	}

	return Derived{
		Star:      star,
		Particles: []dynamo.Particle{{X: req.X, Y: req.Y, VX: req.VX, VY: req.VY}},
		Dt:        req.Dt,
		Steps:     steps,
		Epsilon:   epsilon,
	}, nil
}

// Simulation converts the derived parameters into a simulator config.
func (d Derived) Simulation() dynamo.Config {
	star := d.Star
	return dynamo.Config{
		Star:      &star,
		Particles: d.Particles,
		Dt:        d.Dt,
		Epsilon:   d.Epsilon,
	}
}
