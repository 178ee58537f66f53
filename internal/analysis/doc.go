// Package analysis extracts orbital characteristics from a recorded timeline.
//
//   - [Radii]: distance from the star of one particle over time
//   - [DominantPeriod]: strongest periodic component of a sampled signal
//   - [Apsides]: closest and farthest approach
//
// # Period Estimation
//
// The orbital period of a bound particle shows up as the dominant peak of
// the spectrum of its x coordinate:
//
//	xs := analysis.Component(timeline, 0, analysis.X)
//	period, ok := analysis.DominantPeriod(xs, dt)
package analysis
