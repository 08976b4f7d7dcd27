package ensemble

import (
	"testing"

	"github.com/BartoszBartmanski/StoSpa2/internal/engine"
	"github.com/BartoszBartmanski/StoSpa2/internal/metrics"
)

func buildDecay() ([]*engine.Voxel, error) {
	v := engine.NewVoxel([]int{100}, 1.0)
	if err := v.AddReaction(engine.NewReaction(1.0, func(m []int, _ float64) float64 { return float64(m[0]) }, []int{-1}, -1)); err != nil {
		return nil, err
	}
	return []*engine.Voxel{v}, nil
}

func TestRunProducesOneReplicatePerSeed(t *testing.T) {
	replicates, err := Run(buildDecay, func() []metrics.Metric {
		return []metrics.Metric{metrics.NewTotalCount()}
	}, 8, 1000, 2.0)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if len(replicates) != 8 {
		t.Fatalf("got %d replicates, want 8", len(replicates))
	}

	seen := map[int64]bool{}
	for _, r := range replicates {
		if seen[r.Seed] {
			t.Fatalf("seed %d appeared twice", r.Seed)
		}
		seen[r.Seed] = true
		if r.Molecules[0] > 100 {
			t.Fatalf("replicate seed %d molecule count grew during decay: %v", r.Seed, r.Molecules)
		}
	}
}

func TestRunPropagatesBuildError(t *testing.T) {
	boom := func() ([]*engine.Voxel, error) {
		v := engine.NewVoxel([]int{1}, 1.0)
		return []*engine.Voxel{v}, v.AddReaction(engine.NewReaction(1.0, engine.ConstantPropensity, []int{-1, -1}, -1))
	}
	_, err := Run(boom, func() []metrics.Metric { return nil }, 4, 1, 1.0)
	if err == nil {
		t.Fatal("Run() with a failing builder returned no error")
	}
}

func TestMeanMoleculesAverages(t *testing.T) {
	replicates := []Replicate{
		{Molecules: []int{10, 20}},
		{Molecules: []int{20, 40}},
	}
	means := MeanMolecules(replicates)
	if means[0] != 15 || means[1] != 30 {
		t.Fatalf("MeanMolecules() = %v, want [15 30]", means)
	}
}

func TestMeanMetricSkipsMissing(t *testing.T) {
	replicates := []Replicate{
		{Metrics: map[string]float64{"mean_A": 10}},
		{Metrics: map[string]float64{}},
		{Metrics: map[string]float64{"mean_A": 20}},
	}
	if got := MeanMetric(replicates, "mean_A"); got != 15 {
		t.Fatalf("MeanMetric() = %v, want 15", got)
	}
}
