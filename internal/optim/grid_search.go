package optim

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Goal selects whether the searched metric should be small or large.
type Goal int

const (
	Minimize Goal = iota
	Maximize
)

// ErrNoCandidate is returned when no grid point produced the metric.
var ErrNoCandidate = errors.New("optim: no grid point produced the metric")

// Trial is one simulation to score. Observers are attached by the builder.
type Trial struct {
	Config    dynamo.Config
	Run       dynamo.RunOptions
	Observers []dynamo.Observer
}

// Builder turns a grid point into a trial.
type Builder func(params map[string]float64) (Trial, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// Search runs every grid point and returns the one whose metric is best.
// Points whose trial fails to build or run are skipped.
func (g *GridSearch) Search(ctx context.Context, build Builder, metricName string, goal Goal) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("optim: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	if goal == Maximize {
		best = math.Inf(-1)
	}
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, map[string]float64{}, func(params map[string]float64) {
		val, ok := score(ctx, build, params, metricName)
		if !ok {
			return
		}
		if (goal == Minimize && val < best) || (goal == Maximize && val > best) {
			best = val
			bestParams = maps.Clone(params)
		}
	})
	if err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrNoCandidate, metricName)
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, visit func(map[string]float64)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		visit(current)
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := maps.Clone(current)
		next[paramName] = val
		if err := g.searchRecursive(ctx, depth+1, next, visit); err != nil {
			return err
		}
	}
	return nil
}

func score(ctx context.Context, build Builder, params map[string]float64, metricName string) (float64, bool) {
	trial, err := build(params)
	if err != nil {
		return 0, false
	}
	sim, err := dynamo.New(trial.Config)
	if err != nil {
		return 0, false
	}
	for _, obs := range trial.Observers {
		sim.AddObserver(obs)
	}
	if _, err := sim.Run(ctx, trial.Run); err != nil {
		return 0, false
	}
	val, ok := sim.Metrics()[metricName]
	if !ok || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}
