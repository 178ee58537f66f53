package metrics

import "testing"

func TestApsides(t *testing.T) {
	peri := NewPeriapsis(0)
	apo := NewApoapsis(0)

	for _, r := range []float64{1.0, 0.6, 1.8, 1.1} {
		s := snapshotAt(r, 0, 0, 1)
		peri.Observe(s)
		apo.Observe(s)
	}

	if peri.Value() != 0.6 {
		t.Errorf("expected periapsis 0.6, got %v", peri.Value())
	}
	if apo.Value() != 1.8 {
		t.Errorf("expected apoapsis 1.8, got %v", apo.Value())
	}

	peri.Reset()
	if peri.Value() != 0 {
		t.Errorf("expected 0 with no samples, got %v", peri.Value())
	}
}

func TestHabitableFraction(t *testing.T) {
	h := NewHabitableFraction(0)
	for _, r := range []float64{1.0, 1.2, 0.5, 2.0} {
		h.Observe(snapshotAt(r, 0, 0, 1))
	}

	if h.Value() != 0.5 {
		t.Errorf("expected 0.5, got %v", h.Value())
	}
}

func TestOutOfRangeIndexIgnored(t *testing.T) {
	h := NewHabitableFraction(3)
	p := NewPeriapsis(3)
	h.Observe(snapshotAt(1, 0, 0, 1))
	p.Observe(snapshotAt(1, 0, 0, 1))

	if h.Value() != 0 || p.Value() != 0 {
		t.Errorf("missing particle should not be sampled: %v %v", h.Value(), p.Value())
	}
}

func TestDefaultsHaveUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, o := range Defaults() {
		if seen[o.Name()] {
			t.Errorf("duplicate metric name %q", o.Name())
		}
		seen[o.Name()] = true
	}
}
