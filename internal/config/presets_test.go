package config

import (
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func TestCatalogStar(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		name       string
		mass, lum  float64
	}{
		{"sun_like", 1.0, 1.0},
		{"red_giant", 1.2, 100.0},
		{"white_dwarf", 0.8, 0.01},
	}
	for _, tt := range tests {
		star, err := catalog.Star(tt.name)
		require.NoError(t, err)
		assert.Equal(t, dynamo.Star{TypeName: tt.name, Mass: tt.mass, Luminosity: tt.lum}, star)
	}

	_, err := catalog.Star("neutron_star")
	assert.ErrorIs(t, err, ErrUnknownPreset)
	assert.Contains(t, err.Error(), "neutron_star")
}

func TestCatalogNames(t *testing.T) {
	assert.Equal(t, []string{"red_giant", "sun_like", "white_dwarf"}, DefaultCatalog().Names())
}

func TestDefaultCatalogIsFresh(t *testing.T) {
	a := DefaultCatalog()
	delete(a, "sun_like")
	_, err := DefaultCatalog().Star("sun_like")
	assert.NoError(t, err)
}

func TestScenarios(t *testing.T) {
	catalog := DefaultCatalog()
	for _, name := range ListScenarios() {
		cfg := GetScenario(name)
		require.NotNil(t, cfg, name)

		sc, err := cfg.Simulation(catalog)
		require.NoError(t, err, name)
		_, err = dynamo.New(sc)
		require.NoError(t, err, name)
		assert.Positive(t, cfg.Dt, name)
	}

	assert.Nil(t, GetScenario("nonexistent"))
}

func TestGetScenarioReturnsCopy(t *testing.T) {
	a := GetScenario("simple_orbit")
	a.Particles[0].X = 99
	*a.CentralMass = 7

	b := GetScenario("simple_orbit")
	assert.Equal(t, 1.0, b.Particles[0].X)
	assert.Equal(t, 1.0, *b.CentralMass)
}

func TestHabitableRingIsCircular(t *testing.T) {
	cfg := GetScenario("habitable_ring")
	for _, p := range cfg.Particles {
		assert.InDelta(t, 11.0, p.Radius(), 1e-9)
		assert.InDelta(t, 0, p.X*p.VX+p.Y*p.VY, 1e-9)
		assert.InDelta(t, physics.CircularSpeed(11.0, 1.2, cfg.Epsilon), math.Hypot(p.VX, p.VY), 1e-12)
	}
}
