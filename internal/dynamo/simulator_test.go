package dynamo_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

type countingObserver struct {
	seen []float64
}

func (c *countingObserver) Name() string               { return "count" }
func (c *countingObserver) Observe(s dynamo.Snapshot) { c.seen = append(c.seen, s.T) }
func (c *countingObserver) Value() float64             { return float64(len(c.seen)) }
func (c *countingObserver) Reset()                     { c.seen = nil }

func simpleOrbit() dynamo.Config {
	mass := 1.0
	return dynamo.Config{
		CentralMass: &mass,
		Particles:   []dynamo.Particle{{X: 1.0, Y: 0.0, VX: 0.0, VY: 1.2}},
		Dt:          0.02,
		Epsilon:     0.01,
	}
}

var _ = Describe("Simulator", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("construction", func() {
		It("requires a star or a central mass", func() {
			cfg := simpleOrbit()
			cfg.CentralMass = nil

			sim, err := dynamo.New(cfg)
			Expect(err).To(MatchError(dynamo.ErrMissingSource))
			Expect(sim).To(BeNil())
		})

		It("builds a zero-luminosity star from a bare central mass", func() {
			sim, err := dynamo.New(simpleOrbit())
			Expect(err).NotTo(HaveOccurred())
			Expect(sim.Star()).To(Equal(dynamo.Star{TypeName: dynamo.CentralMassType, Mass: 1.0}))
			Expect(sim.HabitableZone()).To(Equal(dynamo.HabitableZone{}))
		})

		It("prefers an explicit star and derives the habitable zone once", func() {
			cfg := simpleOrbit()
			cfg.Star = &dynamo.Star{TypeName: "red_giant", Mass: 1.2, Luminosity: 100}

			sim, err := dynamo.New(cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(sim.Star().TypeName).To(Equal("red_giant"))
			Expect(sim.HabitableZone().Inner).To(BeNumerically("~", 9.5, 1e-12))
			Expect(sim.HabitableZone().Outer).To(BeNumerically("~", 13.7, 1e-12))
		})

		It("copies the caller's particles", func() {
			cfg := simpleOrbit()
			sim, err := dynamo.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			cfg.Particles[0].X = 50
			Expect(sim.State().Particles[0].X).To(Equal(1.0))
		})

		It("starts at t0", func() {
			cfg := simpleOrbit()
			cfg.T0 = 3.5
			sim, err := dynamo.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			timeline, err := sim.Run(ctx, dynamo.Steps(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(timeline[0].T).To(Equal(3.5))
		})
	})

	Describe("run options", func() {
		var sim *dynamo.Simulator

		BeforeEach(func() {
			var err error
			sim, err = dynamo.New(simpleOrbit())
			Expect(err).NotTo(HaveOccurred())
		})

		DescribeTable("rejects invalid modes without side effects",
			func(opts dynamo.RunOptions, want error) {
				timeline, err := sim.Run(ctx, opts)
				Expect(err).To(MatchError(want))
				Expect(timeline).To(BeNil())
				Expect(sim.Timeline()).To(BeEmpty())
				Expect(sim.State().T).To(Equal(0.0))
			},
			Entry("nothing supplied", dynamo.RunOptions{}, dynamo.ErrMissingRunMode),
			Entry("negative steps", dynamo.Steps(-3), dynamo.ErrInvalidSteps),
			Entry("both supplied", dynamo.RunOptions{Steps: 5, EndTime: ptr(1.0)}, dynamo.ErrConflictingRunMode),
		)
	})

	Describe("step-count mode", func() {
		It("produces exactly the requested number of snapshots", func() {
			sim, err := dynamo.New(simpleOrbit())
			Expect(err).NotTo(HaveOccurred())

			timeline, err := sim.Run(ctx, dynamo.Steps(800))
			Expect(err).NotTo(HaveOccurred())
			Expect(timeline).To(HaveLen(800))
		})

		It("snapshots the initial conditions first", func() {
			sim, err := dynamo.New(simpleOrbit())
			Expect(err).NotTo(HaveOccurred())

			timeline, err := sim.Run(ctx, dynamo.Steps(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(timeline).To(HaveLen(1))
			Expect(timeline[0].T).To(Equal(0.0))
			Expect(timeline[0].Particles[0]).To(Equal(dynamo.Particle{X: 1.0, VY: 1.2}))
			Expect(timeline[0].Star.Mass).To(Equal(1.0))
			Expect(timeline[0].Dt).To(Equal(0.02))
			Expect(timeline[0].Epsilon).To(Equal(0.01))

			// the evolved state is held back until the next run
			next := sim.State()
			Expect(next.T).To(BeNumerically("~", 0.02, 1e-15))
			Expect(next.Particles[0].X).To(BeNumerically("~", 0.999604, 1e-6))
			Expect(next.Particles[0].Y).To(BeNumerically("~", 0.024, 1e-6))
			Expect(next.Particles[0].VX).To(BeNumerically("~", -0.019802, 1e-6))
			Expect(next.Particles[0].VY).To(BeNumerically("~", 1.2, 1e-6))
		})

		It("accumulates across calls without a discontinuity", func() {
			sim, err := dynamo.New(simpleOrbit())
			Expect(err).NotTo(HaveOccurred())

			first, err := sim.Run(ctx, dynamo.Steps(10))
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(HaveLen(10))
			pending := sim.State()

			all, err := sim.Run(ctx, dynamo.Steps(10))
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(20))

			Expect(all[:10]).To(Equal(first))
			Expect(all[10].T).To(Equal(pending.T))
			Expect(all[10].Particles).To(Equal(pending.Particles))

			for i := 1; i < len(all); i++ {
				Expect(all[i].T - all[i-1].T).To(BeNumerically("~", 0.02, 1e-12))
			}

			// the tenth snapshot evolves into the eleventh
			evolved := all[9].State().Evolve(sim.Star())
			Expect(all[10].Particles).To(Equal(evolved.Particles))
		})

		It("returns a timeline the caller cannot use to corrupt the simulator", func() {
			sim, err := dynamo.New(simpleOrbit())
			Expect(err).NotTo(HaveOccurred())

			timeline, err := sim.Run(ctx, dynamo.Steps(3))
			Expect(err).NotTo(HaveOccurred())
			timeline[0] = dynamo.Snapshot{T: -1}

			Expect(sim.Timeline()[0].T).To(Equal(0.0))
		})

		It("does not share particle storage between returned and stored frames", func() {
			cfg := simpleOrbit()
			m := 3.0
			cfg.Particles[0].Mass = &m
			sim, err := dynamo.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			timeline, err := sim.Run(ctx, dynamo.Steps(2))
			Expect(err).NotTo(HaveOccurred())
			timeline[0].Particles[0].X = 42
			*timeline[1].Particles[0].Mass = 9

			stored := sim.Timeline()
			Expect(stored[0].Particles[0].X).To(Equal(1.0))
			Expect(*stored[1].Particles[0].Mass).To(Equal(3.0))

			again, err := sim.Run(ctx, dynamo.Steps(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(again[0].Particles[0].X).To(Equal(1.0))
		})

		It("hands observers frames detached from the timeline", func() {
			sim, err := dynamo.New(simpleOrbit())
			Expect(err).NotTo(HaveOccurred())
			sim.AddObserver(&mutatingObserver{})

			_, err = sim.Run(ctx, dynamo.Steps(3))
			Expect(err).NotTo(HaveOccurred())
			Expect(sim.Timeline()[0].Particles[0].X).To(Equal(1.0))
		})
	})

	Describe("end-time mode", func() {
		It("stops once the current time reaches the end time", func() {
			sim, err := dynamo.New(simpleOrbit())
			Expect(err).NotTo(HaveOccurred())

			end := 1.0
			timeline, err := sim.Run(ctx, dynamo.Until(end))
			Expect(err).NotTo(HaveOccurred())
			Expect(timeline).NotTo(BeEmpty())

			last := timeline[len(timeline)-1]
			Expect(last.T).To(BeNumerically("<", end))
			Expect(last.T + last.Dt).To(BeNumerically(">=", end))
			Expect(sim.State().T).To(BeNumerically(">=", end))
		})

		It("may overshoot by less than one step", func() {
			cfg := simpleOrbit()
			cfg.Dt = 0.3
			sim, err := dynamo.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			timeline, err := sim.Run(ctx, dynamo.Until(1.0))
			Expect(err).NotTo(HaveOccurred())
			Expect(timeline).To(HaveLen(4))
			Expect(sim.State().T).To(BeNumerically("~", 1.2, 1e-12))
		})

		It("does nothing when already past the end time", func() {
			cfg := simpleOrbit()
			cfg.T0 = 5
			sim, err := dynamo.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			timeline, err := sim.Run(ctx, dynamo.Until(2))
			Expect(err).NotTo(HaveOccurred())
			Expect(timeline).To(BeEmpty())
		})
	})

	Describe("observers and cancellation", func() {
		It("notifies observers for every snapshot", func() {
			sim, err := dynamo.New(simpleOrbit())
			Expect(err).NotTo(HaveOccurred())
			obs := &countingObserver{}
			sim.AddObserver(obs)

			_, err = sim.Run(ctx, dynamo.Steps(25))
			Expect(err).NotTo(HaveOccurred())
			Expect(sim.Metrics()).To(HaveKeyWithValue("count", 25.0))
			Expect(obs.seen[0]).To(Equal(0.0))
		})

		It("returns the partial timeline when the context is cancelled", func() {
			sim, err := dynamo.New(simpleOrbit())
			Expect(err).NotTo(HaveOccurred())

			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			timeline, err := sim.Run(cancelled, dynamo.Steps(10))
			Expect(err).To(MatchError(context.Canceled))
			Expect(timeline).To(BeEmpty())
			Expect(sim.State().T).To(Equal(0.0))
		})
	})
})

func ptr(v float64) *float64 { return &v }

type mutatingObserver struct{}

func (*mutatingObserver) Name() string { return "mutating" }

func (*mutatingObserver) Observe(s dynamo.Snapshot) {
	for i := range s.Particles {
		s.Particles[i].X = -100
	}
}

func (*mutatingObserver) Value() float64 { return 0 }

func (*mutatingObserver) Reset() {}
