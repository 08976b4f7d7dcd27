package engine

import "testing"

func massAction1(molecules []int, _ float64) float64 {
	return float64(molecules[0])
}

func TestReactionPropensityMultipliesRate(t *testing.T) {
	r := NewReaction(2.5, massAction1, []int{-1, 1}, -1)
	got := r.Propensity([]int{4, 0}, 1.0)
	want := 2.5 * 4.0
	if got != want {
		t.Fatalf("Propensity() = %v, want %v", got, want)
	}
}

func TestReactionUpdatePropertiesOnlyRescalesDiffusion(t *testing.T) {
	local := NewReaction(3.0, ConstantPropensity, []int{-1}, -1)
	local.UpdateProperties(0.5)
	if local.Rate() != 3.0 {
		t.Fatalf("non-diffusion reaction rate changed: got %v, want 3.0", local.Rate())
	}

	diff := NewReaction(3.0, ConstantPropensity, []int{-1}, 2)
	diff.UpdateProperties(0.5)
	if diff.Rate() != 1.5 {
		t.Fatalf("diffusion reaction rate = %v, want 1.5", diff.Rate())
	}
}

func TestReactionIsDiffusion(t *testing.T) {
	local := NewReaction(1.0, ConstantPropensity, []int{-1}, -1)
	if local.IsDiffusion() {
		t.Fatal("reaction with target -1 reported as diffusion")
	}
	diff := NewReaction(1.0, ConstantPropensity, []int{-1}, 0)
	if !diff.IsDiffusion() {
		t.Fatal("reaction with non-negative target not reported as diffusion")
	}
}

func TestReactionEqualIgnoresPropensityFunc(t *testing.T) {
	a := NewReaction(1.0, ConstantPropensity, []int{1, -1}, -1)
	b := NewReaction(1.0, massAction1, []int{1, -1}, -1)
	if !a.Equal(b) {
		t.Fatal("reactions with same rate/target/stoichiometry but different propensity funcs reported unequal")
	}

	c := NewReaction(1.0, ConstantPropensity, []int{1, -2}, -1)
	if a.Equal(c) {
		t.Fatal("reactions with different stoichiometry reported equal")
	}
}
