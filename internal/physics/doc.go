// Package physics holds the closed-form pieces of the central-star model:
//
//   - [Acceleration]: softened inverse-square pull toward a star at the origin
//   - [HabitableZone]: luminosity-scaled habitable annulus
//   - [AngularMomentum] and [SpecificEnergy]: orbital invariants used by metrics
//
// Everything here is a pure function of float64 inputs. The package does not
// validate its arguments; negative luminosity or non-finite coordinates
// propagate as NaN.
//
// # Degenerate geometry
//
// A particle sitting exactly on the star feels no force:
//
//	ax, ay := physics.Acceleration(0, 0, 1.0, 0.01) // (0, 0)
package physics
