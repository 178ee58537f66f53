package physics

import "math"

// Square-root luminosity scaling, relative to a luminosity 1.0 baseline.
const (
	HabitableInnerScale = 0.95
	HabitableOuterScale = 1.37
)

// HabitableZone returns the inner and outer radius of the habitable annulus
// for a star of the given luminosity. Luminosity must be non-negative.
func HabitableZone(luminosity float64) (inner, outer float64) {
	root := math.Sqrt(luminosity)
	return HabitableInnerScale * root, HabitableOuterScale * root
}

// InHabitableZone reports whether radius r lies inside [inner, outer].
func InHabitableZone(r, inner, outer float64) bool {
	return r >= inner && r <= outer
}
