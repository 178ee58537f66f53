package main

import (
	"errors"
	"fmt"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/viz"
	"github.com/spf13/cobra"
)

var resumeSteps int

func newResumeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resume [run_id]",
		Short: "continue a saved run from where it stopped",
		Args:  cobra.ExactArgs(1),
		RunE:  resume,
	}
	cmd.Flags().IntVar(&resumeSteps, "steps", 800, "number of further snapshots")
	return cmd
}

// resumeConfig rebuilds the simulator config that continues timeline. The
// last saved snapshot is evolved once, since the driver snapshots before it
// steps.
func resumeConfig(timeline []dynamo.Snapshot) (dynamo.Config, error) {
	if len(timeline) == 0 {
		return dynamo.Config{}, storage.ErrEmptyTimeline
	}
	last := timeline[len(timeline)-1]
	next := last.State().Evolve(last.Star)
	star := last.Star
	return dynamo.Config{
		Star:      &star,
		Particles: next.Particles,
		Dt:        next.Dt,
		Epsilon:   next.Epsilon,
		T0:        next.T,
	}, nil
}

func resume(cmd *cobra.Command, args []string) error {
	runID := args[0]
	if resumeSteps <= 0 {
		return errors.New("--steps must be > 0")
	}

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	timeline, err := st.LoadTimeline(runID)
	if err != nil {
		return err
	}

	cfg, err := resumeConfig(timeline)
	if err != nil {
		return err
	}
	sim, err := dynamo.New(cfg, dynamo.WithLogger(logger))
	if err != nil {
		return err
	}
	for _, obs := range metrics.Defaults() {
		sim.AddObserver(obs)
	}

	more, err := sim.Run(cmd.Context(), dynamo.Steps(resumeSteps))
	if err != nil {
		return err
	}

	newID, err := st.Save(meta.Scenario, more, sim.Metrics())
	if err != nil {
		return err
	}
	logger.Info("run resumed", "from", runID, "to", newID, "t0", cfg.T0)
	fmt.Println(viz.RenderSummary(newID, more, sim.Metrics()))
	return nil
}
