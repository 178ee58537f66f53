package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultStar    = "sun_like"
	DefaultDt      = 0.02
	DefaultSteps   = 800
	DefaultEpsilon = 0.01
)

var (
	// ErrNoParticles is returned when a scenario has nothing to integrate.
	ErrNoParticles = errors.New("scenario has no particles")

	// ErrInvalidConfig wraps every value rejected by Validate.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config is a scenario file. The star is taken from StarParams if set,
// otherwise from the Star preset name, otherwise from CentralMass.
type Config struct {
	Name        string            `yaml:"name,omitempty"`
	Star        string            `yaml:"star,omitempty"`
	StarParams  *dynamo.Star      `yaml:"star_params,omitempty"`
	CentralMass *float64          `yaml:"central_mass,omitempty"`
	Dt          float64           `yaml:"dt"`
	Steps       int               `yaml:"steps"`
	EndTime     *float64          `yaml:"end_time,omitempty"`
	Epsilon     float64           `yaml:"epsilon"`
	T0          float64           `yaml:"t0"`
	Particles   []dynamo.Particle `yaml:"particles"`
}

func DefaultConfig() *Config {
	return &Config{
		Star:    DefaultStar,
		Dt:      DefaultDt,
		Steps:   DefaultSteps,
		Epsilon: DefaultEpsilon,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Star = ""
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// the default star only applies when the file names no source at all
	if cfg.Star == "" && cfg.StarParams == nil && cfg.CentralMass == nil {
		cfg.Star = DefaultStar
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Simulation resolves the scenario into a simulator config. The catalog is
// only consulted when the star is given by preset name.
func (c *Config) Simulation(catalog Catalog) (dynamo.Config, error) {
	if len(c.Particles) == 0 {
		return dynamo.Config{}, ErrNoParticles
	}
	if err := c.Validate(); err != nil {
		return dynamo.Config{}, err
	}

	out := dynamo.Config{
		Particles: c.Particles,
		Dt:        c.Dt,
		Epsilon:   c.Epsilon,
		T0:        c.T0,
	}

	switch {
	case c.StarParams != nil:
		star := *c.StarParams
		out.Star = &star
	case c.Star != "":
		star, err := catalog.Star(c.Star)
		if err != nil {
			return dynamo.Config{}, err
		}
		out.Star = &star
	case c.CentralMass != nil:
		m := *c.CentralMass
		out.CentralMass = &m
	}

	return out, nil
}

// Validate rejects values the simulator does not check itself: a
// non-positive or non-finite dt, negative epsilon, non-finite particle
// coordinates, and an unusable run mode.
func (c *Config) Validate() error {
	if !finite(c.Dt) || c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be a finite value > 0, got %g", ErrInvalidConfig, c.Dt)
	}
	if !finite(c.Epsilon) || c.Epsilon < 0 {
		return fmt.Errorf("%w: epsilon must be a finite value >= 0, got %g", ErrInvalidConfig, c.Epsilon)
	}
	if !finite(c.T0) {
		return fmt.Errorf("%w: t0 must be finite", ErrInvalidConfig)
	}
	if c.EndTime != nil {
		if !finite(*c.EndTime) {
			return fmt.Errorf("%w: end_time must be finite", ErrInvalidConfig)
		}
	} else if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be > 0, got %d", ErrInvalidConfig, c.Steps)
	}
	if c.CentralMass != nil && (!finite(*c.CentralMass) || *c.CentralMass <= 0) {
		return fmt.Errorf("%w: central_mass must be a finite value > 0", ErrInvalidConfig)
	}
	for i, p := range c.Particles {
		if !finite(p.X) || !finite(p.Y) || !finite(p.VX) || !finite(p.VY) {
			return fmt.Errorf("%w: particle %d has a non-finite coordinate", ErrInvalidConfig, i)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// RunOptions picks end-time mode when an end time is set, steps otherwise.
func (c *Config) RunOptions() dynamo.RunOptions {
	if c.EndTime != nil {
		return dynamo.Until(*c.EndTime)
	}
	return dynamo.Steps(c.Steps)
}
