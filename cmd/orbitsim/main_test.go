package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseRun(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "run"}
	addSimulationFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestResolveConfigDefaults(t *testing.T) {
	cfg, err := resolveConfig(parseRun(t))
	require.NoError(t, err)

	assert.Equal(t, "custom", cfg.Name)
	assert.Equal(t, "sun_like", cfg.Star)
	assert.Equal(t, config.DefaultSteps, cfg.Steps)
	require.Len(t, cfg.Particles, 1)
	assert.Equal(t, 1.0, cfg.Particles[0].X)
	assert.Equal(t, 1.2, cfg.Particles[0].VY)
}

func TestResolveConfigScenarioWithOverrides(t *testing.T) {
	cfg, err := resolveConfig(parseRun(t, "--scenario", "habitable_ring", "--vy", "0.3", "--end-time", "5"))
	require.NoError(t, err)

	assert.Equal(t, "habitable_ring", cfg.Name)
	assert.Equal(t, "red_giant", cfg.Star)
	assert.Len(t, cfg.Particles, 8)
	assert.Equal(t, 0.3, cfg.Particles[0].VY)
	require.NotNil(t, cfg.EndTime)
	assert.Equal(t, 5.0, *cfg.EndTime)

	// the shared scenario table is untouched
	assert.NotEqual(t, 0.3, config.Scenarios["habitable_ring"].Particles[0].VY)
}

func TestResolveConfigMassReplacesStar(t *testing.T) {
	cfg, err := resolveConfig(parseRun(t, "--mass", "2.5"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Star)
	require.NotNil(t, cfg.CentralMass)
	assert.Equal(t, 2.5, *cfg.CentralMass)

	simCfg, err := cfg.Simulation(config.DefaultCatalog())
	require.NoError(t, err)
	assert.Nil(t, simCfg.Star)
	assert.Equal(t, 2.5, *simCfg.CentralMass)
}

func TestResolveConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: from_file
star: white_dwarf
dt: 0.05
steps: 10
particles:
  - {x: 2, y: 0, vx: 0, vy: 0.5}
`), 0644))

	cfg, err := resolveConfig(parseRun(t, "--config", path, "--dt", "0.1"))
	require.NoError(t, err)
	assert.Equal(t, "from_file", cfg.Name)
	assert.Equal(t, "white_dwarf", cfg.Star)
	assert.Equal(t, 0.1, cfg.Dt)
	assert.Equal(t, 10, cfg.Steps)
	assert.Equal(t, 2.0, cfg.Particles[0].X)
}

func TestResolveConfigUnknownScenario(t *testing.T) {
	_, err := resolveConfig(parseRun(t, "--scenario", "nope"))
	assert.Error(t, err)
}

func TestResumeConfigContinuesTimeline(t *testing.T) {
	mass := 1.0
	sim, err := dynamo.New(dynamo.Config{
		CentralMass: &mass,
		Particles:   []dynamo.Particle{{X: 1, VY: 1.2}},
		Dt:          0.02,
		Epsilon:     0.01,
	})
	require.NoError(t, err)
	full, err := sim.Run(context.Background(), dynamo.Steps(20))
	require.NoError(t, err)

	cfg, err := resumeConfig(full[:10])
	require.NoError(t, err)
	resumed, err := dynamo.New(cfg)
	require.NoError(t, err)
	rest, err := resumed.Run(context.Background(), dynamo.Steps(10))
	require.NoError(t, err)

	require.Len(t, rest, 10)
	for i := range rest {
		assert.Equal(t, full[10+i].Particles, rest[i].Particles)
		assert.InDelta(t, full[10+i].T, rest[i].T, 1e-12)
	}
	assert.Equal(t, dynamo.CentralMassType, rest[0].Star.TypeName)

	_, err = resumeConfig(nil)
	assert.ErrorIs(t, err, storage.ErrEmptyTimeline)
}

func TestResolveTheme(t *testing.T) {
	theme, err := resolveTheme("retro")
	require.NoError(t, err)
	assert.Equal(t, "retro", theme.Name)

	_, err = resolveTheme("neon")
	assert.Error(t, err)
}
