// Package ensemble runs many independent replicate trajectories of the
// same scenario in parallel, each with its own seed, and aggregates
// their metrics. Trajectories are independent Markov chains, so this
// is safe cross-trajectory parallelism; it does not touch the
// per-voxel stepping loop of any single trajectory.
package ensemble

import (
	"fmt"
	"sync"

	"github.com/BartoszBartmanski/StoSpa2/internal/engine"
	"github.com/BartoszBartmanski/StoSpa2/internal/metrics"
)

// Replicate is one independent run's outcome: its seed, final
// molecule vector, and the running value of every metric it was
// configured with.
type Replicate struct {
	Seed      int64
	Molecules []int
	Metrics   map[string]float64
}

// Run executes numRuns independent replicates of a scenario, seeded
// seedStart, seedStart+1, ... seedStart+numRuns-1, each advancing to
// endTime. build constructs a fresh voxel list (so replicates never
// share mutable state); newMetrics constructs a fresh metric set per
// replicate for the same reason.
func Run(
	build func() ([]*engine.Voxel, error),
	newMetrics func() []metrics.Metric,
	numRuns int,
	seedStart int64,
	endTime float64,
) ([]Replicate, error) {
	results := make([]Replicate, numRuns)
	errs := make([]error, numRuns)

	var wg sync.WaitGroup
	for i := 0; i < numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			voxels, err := build()
			if err != nil {
				errs[idx] = fmt.Errorf("ensemble: building replicate %d: %w", idx, err)
				return
			}

			seed := seedStart + int64(idx)
			sim := engine.New(voxels)
			sim.SetSeed(uint64(seed))

			ms := newMetrics()

			clamped, err := sim.Advance(endTime)
			if err != nil {
				errs[idx] = fmt.Errorf("ensemble: replicate %d: %w", idx, err)
				return
			}

			molecules := sim.Molecules()
			for _, m := range ms {
				if rec, ok := m.(interface{ Record(int) }); ok {
					rec.Record(clamped)
				}
				m.Observe(molecules, sim.Time())
			}

			values := make(map[string]float64, len(ms))
			for _, m := range ms {
				values[m.Name()] = m.Value()
			}

			results[idx] = Replicate{Seed: seed, Molecules: molecules, Metrics: values}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// MeanMolecules averages molecule counts component-wise across
// replicates. All replicates must share the same vector length.
func MeanMolecules(replicates []Replicate) []float64 {
	if len(replicates) == 0 {
		return nil
	}
	n := len(replicates[0].Molecules)
	means := make([]float64, n)
	for _, r := range replicates {
		for i, v := range r.Molecules {
			if i < n {
				means[i] += float64(v)
			}
		}
	}
	for i := range means {
		means[i] /= float64(len(replicates))
	}
	return means
}

// MeanMetric averages a single named metric across replicates,
// skipping replicates that never reported it.
func MeanMetric(replicates []Replicate, name string) float64 {
	total, count := 0.0, 0
	for _, r := range replicates {
		if v, ok := r.Metrics[name]; ok {
			total += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}
