package analysis

import (
	"math/rand/v2"
	"testing"

	"github.com/BartoszBartmanski/StoSpa2/internal/engine"
)

func TestChiSquaredGOFPassesForMatchingDistribution(t *testing.T) {
	v := engine.NewVoxel([]int{1}, 1.0)
	_ = v.AddReaction(engine.NewReaction(1.0, engine.ConstantPropensity, []int{-1}, -1))
	_ = v.AddReaction(engine.NewReaction(3.0, engine.ConstantPropensity, []int{-1}, -1))

	rng := rand.New(rand.NewPCG(1, 2))
	uStream := make([]float64, 4000)
	for i := range uStream {
		uStream[i] = rng.Float64()
	}

	observed, err := SampleReactionFrequencies(v, uStream)
	if err != nil {
		t.Fatalf("SampleReactionFrequencies() error: %v", err)
	}
	expected := ExpectedProbabilities(v)

	stat, df, err := ChiSquaredGOF(observed, expected)
	if err != nil {
		t.Fatalf("ChiSquaredGOF() error: %v", err)
	}
	if df != 1 {
		t.Fatalf("df = %d, want 1", df)
	}

	pass, err := PassesGOF95(stat, df)
	if err != nil {
		t.Fatalf("PassesGOF95() error: %v", err)
	}
	if !pass {
		t.Fatalf("chi-squared statistic %v exceeds the 95%% critical value for matching-proportion sampling", stat)
	}
}

func TestChiSquaredGOFLengthMismatch(t *testing.T) {
	if _, _, err := ChiSquaredGOF([]int{1, 2}, []float64{0.5}); err == nil {
		t.Fatal("ChiSquaredGOF() with mismatched lengths returned no error")
	}
}

func TestChiSquaredGOFNoObservations(t *testing.T) {
	if _, _, err := ChiSquaredGOF([]int{0, 0}, []float64{0.5, 0.5}); err == nil {
		t.Fatal("ChiSquaredGOF() with zero observations returned no error")
	}
}
