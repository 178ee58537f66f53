package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/spf13/cobra"
)

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	timeline, err := st.LoadTimeline(runID)
	if err != nil {
		return err
	}
	if particle < 0 || particle >= meta.Particles {
		return fmt.Errorf("particle %d out of range (run has %d)", particle, meta.Particles)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(timeline))

	series := []struct {
		caption string
		data    []float64
	}{
		{"x vs time", analysis.Component(timeline, particle, analysis.X)},
		{"y vs time", analysis.Component(timeline, particle, analysis.Y)},
		{"radius vs time", analysis.Radii(timeline, particle)},
	}
	for _, s := range series {
		if len(s.data) == 0 {
			continue
		}
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	timeline, err := st.LoadTimeline(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s (%s, %d snapshots)\n\n", meta.ID, meta.Star.TypeName, len(timeline))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLE\tPERIAPSIS\tAPOAPSIS\tECCENTRICITY\tPERIOD\tIN HZ")
	for i := 0; i < meta.Particles; i++ {
		radii := analysis.Radii(timeline, i)
		peri, apo, ok := analysis.Apsides(radii)
		if !ok {
			continue
		}

		period := "-"
		if p, ok := analysis.DominantPeriod(analysis.Component(timeline, i, analysis.X), meta.Dt); ok {
			period = fmt.Sprintf("%.3f", p)
		}

		inZone := 0
		for _, r := range radii {
			if meta.HabitableZone.Contains(r) {
				inZone++
			}
		}

		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t%s\t%.1f%%\n",
			i, peri, apo, analysis.Eccentricity(peri, apo), period,
			100*float64(inZone)/float64(len(radii)))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(meta.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for _, name := range slices.Sorted(maps.Keys(meta.Metrics)) {
			fmt.Printf("  %-20s %.6g\n", name, meta.Metrics[name])
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	timeline, err := storage.New(dataDir).LoadTimeline(runID)
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = filepath.Clean(runID + ".json")
	}
	if err := export.ExportJSON(path, timeline); err != nil {
		return err
	}
	fmt.Printf("exported %d frames to %s\n", len(timeline), path)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	timeline, err := storage.New(dataDir).LoadTimeline(runID)
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = filepath.Clean(runID + ".svg")
	}
	if err := os.WriteFile(path, []byte(export.TrajectorySVG(timeline, svgWidth, svgHeight)), 0644); err != nil {
		return err
	}
	fmt.Printf("exported trajectories to %s\n", path)
	return nil
}
