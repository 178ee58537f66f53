package dynamo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/orbitsim/internal/logging"
)

// Config describes a run. Exactly one of Star or CentralMass is needed; Star
// wins if both are set. A bare central mass becomes a zero-luminosity star.
type Config struct {
	Star        *Star
	CentralMass *float64
	Particles   []Particle
	Dt          float64
	Epsilon     float64
	T0          float64
}

// RunOptions selects the run mode: a positive step count, or an end time.
type RunOptions struct {
	Steps   int
	EndTime *float64
}

// Steps runs exactly n snapshot-then-evolve iterations.
func Steps(n int) RunOptions {
	return RunOptions{Steps: n}
}

// Until runs while the current time is strictly below t.
func Until(t float64) RunOptions {
	return RunOptions{EndTime: &t}
}

func (o RunOptions) validate() error {
	if o.Steps < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidSteps, o.Steps)
	}
	if o.EndTime != nil && o.Steps != 0 {
		return ErrConflictingRunMode
	}
	if o.EndTime == nil && o.Steps == 0 {
		return ErrMissingRunMode
	}
	return nil
}

type Option func(*Simulator)

// WithLogger sets the logger used for run lifecycle messages.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// Simulator owns the star, the current state and the timeline. Each
// iteration snapshots the current state and then evolves it, so the state
// produced by the last step is not in the timeline until Run is called
// again.
type Simulator struct {
	star      Star
	hz        HabitableZone
	current   State
	timeline  []Snapshot
	observers []Observer
	logger    *slog.Logger
}

// New builds a simulator from cfg. Particles are copied.
func New(cfg Config, opts ...Option) (*Simulator, error) {
	var star Star
	switch {
	case cfg.Star != nil:
		star = *cfg.Star
	case cfg.CentralMass != nil:
		star = Star{TypeName: CentralMassType, Mass: *cfg.CentralMass, Luminosity: 0}
	default:
		return nil, ErrMissingSource
	}

	s := &Simulator{
		star: star,
		hz:   HabitableZoneOf(star),
		current: State{
			T:         cfg.T0,
			Dt:        cfg.Dt,
			Epsilon:   cfg.Epsilon,
			Particles: cloneParticles(cfg.Particles),
		},
		timeline:  make([]Snapshot, 0),
		observers: make([]Observer, 0),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Star() Star                   { return s.star }
func (s *Simulator) HabitableZone() HabitableZone { return s.hz }

// State returns a copy of the current, not yet snapshotted, state.
func (s *Simulator) State() State { return s.current.Clone() }

// Timeline returns a deep copy of every snapshot taken so far, oldest first.
func (s *Simulator) Timeline() []Snapshot {
	out := make([]Snapshot, len(s.timeline))
	for i, snap := range s.timeline {
		out[i] = snap.Clone()
	}
	return out
}

// Metrics reports the current value of every observer by name.
func (s *Simulator) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.observers))
	for _, o := range s.observers {
		out[o.Name()] = o.Value()
	}
	return out
}

// Run extends the timeline and returns all of it, including snapshots from
// earlier calls. Options are checked before any work. If ctx is cancelled
// the timeline accumulated so far is returned with ctx.Err().
func (s *Simulator) Run(ctx context.Context, opts RunOptions) ([]Snapshot, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	startLen := len(s.timeline)
	s.logger.Debug("run started",
		"star", s.star.TypeName,
		"particles", len(s.current.Particles),
		"t", s.current.T,
		"steps", opts.Steps,
	)

	for i := 0; s.more(i, opts); i++ {
		select {
		case <-ctx.Done():
			s.logger.Debug("run cancelled", "t", s.current.T, "snapshots", len(s.timeline)-startLen)
			return s.Timeline(), ctx.Err()
		default:
		}
		s.step()
	}

	s.logger.Debug("run finished",
		"t", s.current.T,
		"snapshots", len(s.timeline)-startLen,
		"timeline", len(s.timeline),
	)
	return s.Timeline(), nil
}

func (s *Simulator) more(i int, opts RunOptions) bool {
	if opts.EndTime != nil {
		return s.current.T < *opts.EndTime
	}
	return i < opts.Steps
}

func (s *Simulator) step() {
	snap := NewSnapshot(s.current, s.star, s.hz)
	s.timeline = append(s.timeline, snap)
	if len(s.observers) > 0 {
		view := snap.Clone()
		for _, o := range s.observers {
			o.Observe(view)
		}
	}
	s.current = s.current.Evolve(s.star)
}
