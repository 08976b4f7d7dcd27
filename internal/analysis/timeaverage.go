// Package analysis computes properties of a trajectory that cannot be
// accumulated incrementally sample-by-sample the way internal/metrics
// does: time-weighted averages over irregular step intervals, and
// goodness-of-fit testing of the reaction sampler itself.
package analysis

import "github.com/BartoszBartmanski/StoSpa2/internal/engine"

// TimeAverage computes the time-weighted average of every species
// across a simulator's molecule vector, by stepping it to endTime and
// weighting each interval's molecule counts by its duration. Unlike a
// sample-count mean, this is exact regardless of how irregularly the
// NSM schedules events.
//
// sim is advanced in place; callers that also want the raw trajectory
// should drive the simulator themselves and call Accumulate per step.
func TimeAverage(sim *engine.Simulator, endTime float64) ([]float64, error) {
	acc := NewAccumulator(len(sim.Molecules()))
	lastTime := sim.Time()
	lastMolecules := sim.Molecules()

	for sim.Time() < endTime {
		if _, err := sim.Step(); err != nil {
			return nil, err
		}
		next := sim.Time()
		if next > endTime {
			next = endTime
		}
		acc.Accumulate(lastMolecules, next-lastTime)
		lastTime = next
		lastMolecules = sim.Molecules()
		if next >= endTime {
			break
		}
	}

	return acc.Value(), nil
}

// Accumulator builds up a time-weighted average incrementally, for
// callers driving their own stepping loop (e.g. a live TUI).
type Accumulator struct {
	sums     []float64
	duration float64
}

func NewAccumulator(numSpecies int) *Accumulator {
	return &Accumulator{sums: make([]float64, numSpecies)}
}

// Accumulate adds molecules weighted by dt, the time the system spent
// in that state before its next change.
func (a *Accumulator) Accumulate(molecules []int, dt float64) {
	if dt <= 0 {
		return
	}
	for i, m := range molecules {
		if i >= len(a.sums) {
			break
		}
		a.sums[i] += float64(m) * dt
	}
	a.duration += dt
}

// Value returns the time-weighted average for every species observed
// so far.
func (a *Accumulator) Value() []float64 {
	out := make([]float64, len(a.sums))
	if a.duration == 0 {
		return out
	}
	for i, s := range a.sums {
		out[i] = s / a.duration
	}
	return out
}
