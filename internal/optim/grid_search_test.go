package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/metrics"
)

func circularBuilder(params map[string]float64) (Trial, error) {
	mass := 1.0
	return Trial{
		Config: dynamo.Config{
			CentralMass: &mass,
			Particles:   []dynamo.Particle{{X: 1, VY: params["vy"]}},
			Dt:          0.01,
		},
		Run:       dynamo.Steps(700),
		Observers: []dynamo.Observer{metrics.NewApoapsis(0)},
	}, nil
}

func TestGridSearchFindsCircularSpeed(t *testing.T) {
	g := NewGridSearch([]string{"vy"}, [][]float64{Linspace(0.8, 1.2, 5)})

	params, apo, err := g.Search(context.Background(), circularBuilder, "apoapsis", Minimize)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	// slower launches start at apoapsis, faster ones climb away
	if params["vy"] > 1.0+1e-9 {
		t.Errorf("expected vy <= 1, got %f", params["vy"])
	}
	if apo > 1.02 {
		t.Errorf("expected apoapsis near the launch radius, got %f", apo)
	}

	params, _, err = g.Search(context.Background(), circularBuilder, "apoapsis", Maximize)
	if err != nil {
		t.Fatal(err)
	}
	if params["vy"] != 1.2 {
		t.Errorf("expected fastest launch to reach farthest, got vy=%f", params["vy"])
	}
}

func TestGridSearchErrors(t *testing.T) {
	g := NewGridSearch([]string{"vy"}, [][]float64{{1.0}})
	_, _, err := g.Search(context.Background(), circularBuilder, "missing", Minimize)
	if !errors.Is(err, ErrNoCandidate) {
		t.Errorf("expected ErrNoCandidate, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := g.Search(ctx, circularBuilder, "apoapsis", Minimize); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	bad := NewGridSearch([]string{"a", "b"}, [][]float64{{1}})
	if _, _, err := bad.Search(context.Background(), circularBuilder, "apoapsis", Minimize); err == nil {
		t.Error("expected mismatch error")
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if len(Linspace(3, 4, 1)) != 1 {
		t.Error("single point expected")
	}
}
