package main

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/optim"
	"github.com/spf13/cobra"
)

var (
	sweepVYMin   float64
	sweepVYMax   float64
	sweepPoints  int
	sweepMetric  string
	sweepMaximum bool
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "search launch speeds for the best value of a metric",
		Args:  cobra.NoArgs,
		RunE:  sweep,
	}
	cmd.Flags().StringVar(&starName, "star", "sun_like", "star preset")
	cmd.Flags().Float64Var(&x, "x", 1.0, "launch radius on the x axis")
	cmd.Flags().Float64Var(&sweepVYMin, "vy-min", 0.5, "lowest launch speed")
	cmd.Flags().Float64Var(&sweepVYMax, "vy-max", 1.5, "highest launch speed")
	cmd.Flags().IntVar(&sweepPoints, "points", 21, "number of speeds to try")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "snapshots per trial")
	cmd.Flags().Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "gravitational softening")
	cmd.Flags().StringVar(&sweepMetric, "metric", "habitable_fraction", "metric to optimise")
	cmd.Flags().BoolVar(&sweepMaximum, "maximize", true, "maximise instead of minimise the metric")
	return cmd
}

func sweep(cmd *cobra.Command, args []string) error {
	star, err := config.DefaultCatalog().Star(starName)
	if err != nil {
		return err
	}

	goal := optim.Minimize
	if sweepMaximum {
		goal = optim.Maximize
	}

	build := func(params map[string]float64) (optim.Trial, error) {
		s := star
		return optim.Trial{
			Config: dynamo.Config{
				Star:      &s,
				Particles: []dynamo.Particle{{X: x, VY: params["vy"]}},
				Dt:        dt,
				Epsilon:   epsilon,
			},
			Run:       dynamo.Steps(steps),
			Observers: metrics.Defaults(),
		}, nil
	}

	g := optim.NewGridSearch([]string{"vy"}, [][]float64{optim.Linspace(sweepVYMin, sweepVYMax, sweepPoints)})
	best, value, err := g.Search(cmd.Context(), build, sweepMetric, goal)
	if err != nil {
		return err
	}

	logger.Info("sweep finished", "star", star.TypeName, "points", sweepPoints)
	fmt.Printf("best vy: %.4f\n%s: %.6g\n", best["vy"], sweepMetric, value)
	return nil
}
