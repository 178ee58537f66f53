package dynamo

// Snapshot is a point-in-time copy of a run, detached from the simulator.
type Snapshot struct {
	T             float64       `json:"t"`
	Dt            float64       `json:"dt"`
	Epsilon       float64       `json:"epsilon"`
	Star          Star          `json:"star"`
	HabitableZone HabitableZone `json:"habitable_zone"`
	Particles     []Particle    `json:"particles"`
}

// NewSnapshot copies state and star into a snapshot.
func NewSnapshot(state State, star Star, hz HabitableZone) Snapshot {
	return Snapshot{
		T:             state.T,
		Dt:            state.Dt,
		Epsilon:       state.Epsilon,
		Star:          star,
		HabitableZone: hz,
		Particles:     cloneParticles(state.Particles),
	}
}

// Clone returns a copy that shares no particle or mass storage with s.
func (s Snapshot) Clone() Snapshot {
	s.Particles = cloneParticles(s.Particles)
	return s
}

// State rebuilds a live state from the snapshot.
func (s Snapshot) State() State {
	return State{
		T:         s.T,
		Dt:        s.Dt,
		Epsilon:   s.Epsilon,
		Particles: cloneParticles(s.Particles),
	}
}
