package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

var trailColors = []string{"#00ccff", "#ff00ff", "#00ff88", "#ffcc00", "#ff4444", "#8888ff"}

// TrajectorySVG draws the star, the habitable annulus and one path per
// particle, scaled to fit a width x height canvas with the star centred.
func TrajectorySVG(timeline []dynamo.Snapshot, width, height int) string {
	if len(timeline) == 0 {
		return ""
	}

	hz := timeline[0].HabitableZone
	extent := hz.Outer
	for _, snap := range timeline {
		for _, p := range snap.Particles {
			extent = math.Max(extent, math.Max(math.Abs(p.X), math.Abs(p.Y)))
		}
	}
	if extent == 0 {
		extent = 1
	}
	extent *= 1.1

	cx, cy := float64(width)/2, float64(height)/2
	scale := math.Min(cx, cy) / extent
	project := func(x, y float64) (float64, float64) {
		return cx + x*scale, cy - y*scale
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	if hz.Outer > 0 {
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#00ff88" fill-opacity="0.12"/>
<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#0a0a0a"/>
`, cx, cy, hz.Outer*scale, cx, cy, hz.Inner*scale)
	}

	fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="4" fill="#ffcc00"/>
`, cx, cy)

	for i := range timeline[0].Particles {
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, trailColors[i%len(trailColors)])
		for j, snap := range timeline {
			if i >= len(snap.Particles) {
				break
			}
			x, y := project(snap.Particles[i].X, snap.Particles[i].Y)
			if j == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
