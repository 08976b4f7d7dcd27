package calibrate

import (
	"context"
	"testing"

	"github.com/BartoszBartmanski/StoSpa2/internal/engine"
	"github.com/BartoszBartmanski/StoSpa2/internal/metrics"
)

func buildDecayWithRate(params map[string]float64) ([]*engine.Voxel, error) {
	v := engine.NewVoxel([]int{100}, 1.0)
	err := v.AddReaction(engine.NewReaction(params["decay_rate"], func(m []int, _ float64) float64 { return float64(m[0]) }, []int{-1}, -1))
	return []*engine.Voxel{v}, err
}

func TestGridSearchFindsFastestDecay(t *testing.T) {
	g := NewGridSearch([]string{"decay_rate"}, [][]float64{{0.1, 1.0, 5.0}})

	best, score, err := g.Search(
		context.Background(),
		map[string]float64{},
		buildDecayWithRate,
		func() metrics.Metric { return metrics.NewTotalCount() },
		42,
		0.5,
	)
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if best["decay_rate"] != 5.0 {
		t.Fatalf("best params = %v, want decay_rate 5.0 (fastest decay minimizes remaining count)", best)
	}
	if score < 0 {
		t.Fatalf("score = %v, want non-negative remaining count", score)
	}
}

func TestGridSearchSkipsInfeasibleCombinations(t *testing.T) {
	failingBuild := func(params map[string]float64) ([]*engine.Voxel, error) {
		v := engine.NewVoxel([]int{1}, 1.0)
		return []*engine.Voxel{v}, v.AddReaction(engine.NewReaction(1.0, engine.ConstantPropensity, []int{-1, -1}, -1))
	}
	g := NewGridSearch([]string{"x"}, [][]float64{{1.0, 2.0}})
	best, _, err := g.Search(context.Background(), nil, failingBuild, func() metrics.Metric { return metrics.NewTotalCount() }, 1, 1.0)
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if best != nil {
		t.Fatalf("best = %v, want nil when every combination is infeasible", best)
	}
}
