// Package dynamo is the simulation core: point masses orbiting a fixed
// central star under softened Newtonian gravity.
//
//   - [Star]: immutable gravitational source
//   - [Particle]: position, velocity and optional inert mass
//   - [State]: immutable simulation state; [State.Evolve] advances one step
//   - [Snapshot]: self-contained copy of a state for export
//   - [Simulator]: owns the current state and the cumulative timeline
//
// # Example
//
//	star := dynamo.Star{TypeName: "sun_like", Mass: 1, Luminosity: 1}
//	sim, _ := dynamo.New(dynamo.Config{
//	    Star:      &star,
//	    Particles: []dynamo.Particle{{X: 1, VY: 1.2}},
//	    Dt:        0.02,
//	    Epsilon:   0.01,
//	})
//	timeline, _ := sim.Run(ctx, dynamo.Steps(800))
//
// # Integration
//
// Each step is semi-implicit (symplectic) Euler: velocity is updated from the
// acceleration at the current position, then position is updated from the
// new velocity. Particles do not attract each other.
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. States and snapshots are values
// that are never modified after construction and may be shared freely.
package dynamo
