package analysis

import (
	"fmt"
	"math"

	"github.com/BartoszBartmanski/StoSpa2/internal/engine"
)

// ChiSquaredGOF computes Pearson's chi-squared statistic for a set of
// observed category counts against expected probabilities, along with
// the corresponding degrees of freedom (len(expected)-1). It is used
// to test that PickReaction samples reactions with frequencies
// proportional to their propensities.
func ChiSquaredGOF(observed []int, expectedProbabilities []float64) (statistic float64, df int, err error) {
	if len(observed) != len(expectedProbabilities) {
		return 0, 0, fmt.Errorf("analysis: observed has %d categories, expected has %d", len(observed), len(expectedProbabilities))
	}

	total := 0
	for _, o := range observed {
		total += o
	}
	if total == 0 {
		return 0, 0, fmt.Errorf("analysis: no observations")
	}

	stat := 0.0
	for i, o := range observed {
		expectedCount := expectedProbabilities[i] * float64(total)
		if expectedCount <= 0 {
			continue
		}
		diff := float64(o) - expectedCount
		stat += diff * diff / expectedCount
	}

	return stat, len(observed) - 1, nil
}

// SampleReactionFrequencies draws PickReaction n times from voxel at a
// fixed sequence of uniform draws, tallying how often each installed
// reaction (by index) is selected. It is a test helper for checking
// that selection frequencies track propensities (not used by any
// production code path).
func SampleReactionFrequencies(v *engine.Voxel, uStream []float64) ([]int, error) {
	v.TotalPropensity(true)
	reactions := v.Reactions()
	counts := make([]int, len(reactions))

	for _, u := range uStream {
		r, err := v.PickReaction(u)
		if err != nil {
			return nil, err
		}
		for i := range reactions {
			if r.Equal(reactions[i]) {
				counts[i]++
				break
			}
		}
	}

	return counts, nil
}

// ExpectedProbabilities returns the propensity-proportional selection
// probability of each of a voxel's installed reactions.
func ExpectedProbabilities(v *engine.Voxel) []float64 {
	reactions := v.Reactions()
	total := 0.0
	raw := make([]float64, len(reactions))
	for i := range reactions {
		raw[i] = reactions[i].Propensity(v.Molecules(), v.VoxelSize())
		total += raw[i]
	}
	out := make([]float64, len(reactions))
	if total == 0 {
		return out
	}
	for i := range raw {
		out[i] = raw[i] / total
	}
	return out
}

// criticalValue95 is the upper 95th-percentile chi-squared critical
// value for small degrees of freedom, used by tests that assert a
// sampler passes goodness-of-fit at conventional significance.
var criticalValue95 = map[int]float64{
	1: 3.841, 2: 5.991, 3: 7.815, 4: 9.488, 5: 11.070,
}

// PassesGOF95 reports whether a chi-squared statistic is below the
// 95% critical value for df degrees of freedom. It returns an error
// if df is not tabulated.
func PassesGOF95(statistic float64, df int) (bool, error) {
	critical, ok := criticalValue95[df]
	if !ok {
		return false, fmt.Errorf("analysis: no tabulated chi-squared critical value for df=%d", df)
	}
	return !math.IsNaN(statistic) && statistic < critical, nil
}
