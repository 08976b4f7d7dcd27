// Package calibrate searches a scenario's parameter space by grid
// search, scoring each point by a chosen metric after advancing the
// built system to a fixed end time.
package calibrate

import (
	"context"
	"math"

	"github.com/BartoszBartmanski/StoSpa2/internal/engine"
	"github.com/BartoszBartmanski/StoSpa2/internal/metrics"
)

// BuildFunc constructs a voxel list from a fully-specified parameter
// set, the same signature as scenario.Spec.Build.
type BuildFunc func(params map[string]float64) ([]*engine.Voxel, error)

// GridSearch exhaustively evaluates every combination of named
// parameter values.
type GridSearch struct {
	paramNames []string
	grid       [][]float64
}

// NewGridSearch pairs each name in params with its candidate values in
// the matching position of grid.
func NewGridSearch(params []string, grid [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, grid: grid}
}

// Search evaluates build at every grid point (merged over a fixed
// base parameter set), advances to endTime with the given seed, and
// scores the point with a fresh metric from newMetric observed once on
// the final molecule vector. The lowest score wins; on a tie the point
// visited first is kept. It returns the full parameter set (base plus
// overrides) of the best point and its score, or nil if no point could
// be built and advanced.
func (g *GridSearch) Search(
	ctx context.Context,
	base map[string]float64,
	build BuildFunc,
	newMetric func() metrics.Metric,
	seed uint64,
	endTime float64,
) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	var recurse func(depth int, current map[string]float64) error
	recurse = func(depth int, current map[string]float64) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if depth == len(g.paramNames) {
			voxels, err := build(current)
			if err != nil {
				return nil // an infeasible parameter combination is skipped, not fatal
			}
			sim := engine.New(voxels)
			sim.SetSeed(seed)
			if _, err := sim.Advance(endTime); err != nil {
				return nil
			}

			m := newMetric()
			m.Observe(sim.Molecules(), sim.Time())
			score := m.Value()

			if score < best {
				best = score
				bestParams = make(map[string]float64, len(current))
				for k, v := range current {
					bestParams[k] = v
				}
			}
			return nil
		}

		name := g.paramNames[depth]
		for _, value := range g.grid[depth] {
			next := make(map[string]float64, len(current)+1)
			for k, v := range current {
				next[k] = v
			}
			next[name] = value
			if err := recurse(depth+1, next); err != nil {
				return err
			}
		}
		return nil
	}

	seedParams := make(map[string]float64, len(base))
	for k, v := range base {
		seedParams[k] = v
	}
	if err := recurse(0, seedParams); err != nil {
		return nil, 0, err
	}

	return bestParams, best, nil
}
