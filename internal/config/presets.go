package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// ErrUnknownPreset is returned for star names missing from a catalog.
var ErrUnknownPreset = errors.New("unknown star preset")

// StarPreset is a catalog entry. Mass and luminosity are relative to the
// sun_like baseline.
type StarPreset struct {
	Mass        float64 `json:"mass" yaml:"mass"`
	Luminosity  float64 `json:"luminosity" yaml:"luminosity"`
	Description string  `json:"description" yaml:"description"`
}

// Catalog maps preset names to stars. Treat it as read-only once built.
type Catalog map[string]StarPreset

// DefaultCatalog returns a fresh copy of the built-in stars.
func DefaultCatalog() Catalog {
	return Catalog{
		"sun_like": {
			Mass:        1.0,
			Luminosity:  1.0,
			Description: "Baseline sun-like star.",
		},
		"red_giant": {
			Mass:        1.2,
			Luminosity:  100.0,
			Description: "Expanded, luminous red giant.",
		},
		"white_dwarf": {
			Mass:        0.8,
			Luminosity:  0.01,
			Description: "Compact, dim white dwarf.",
		},
	}
}

// Star resolves a preset into a star named after it.
func (c Catalog) Star(name string) (dynamo.Star, error) {
	preset, ok := c[name]
	if !ok {
		return dynamo.Star{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, c.Names())
	}
	return dynamo.Star{TypeName: name, Mass: preset.Mass, Luminosity: preset.Luminosity}, nil
}

// Names lists the presets in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
