package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orbitsim/internal/dynamo"
)

// RenderSummary formats a finished run for the terminal.
func RenderSummary(runID string, timeline []dynamo.Snapshot, metrics map[string]float64) string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render("run "+runID) + "\n\n")

	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}

	if len(timeline) > 0 {
		first, last := timeline[0], timeline[len(timeline)-1]
		row("star", fmt.Sprintf("%s (M=%g, L=%g)", first.Star.TypeName, first.Star.Mass, first.Star.Luminosity))
		if first.HabitableZone.Outer > 0 {
			row("habitable zone", fmt.Sprintf("%.3f .. %.3f", first.HabitableZone.Inner, first.HabitableZone.Outer))
		}
		row("snapshots", fmt.Sprintf("%d", len(timeline)))
		row("particles", fmt.Sprintf("%d", len(first.Particles)))
		row("time", fmt.Sprintf("%.3f .. %.3f (dt=%g)", first.T, last.T, first.Dt))
	} else {
		row("snapshots", "0")
	}

	if len(metrics) > 0 {
		s.WriteString("\n" + Separator(40) + "\n\n")
		names := make([]string, 0, len(metrics))
		for name := range metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			row(name, fmt.Sprintf("%.6g", metrics[name]))
		}
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(GlassPanel.Render(s.String()))
}
