package engine

// PropensityFunc computes the structure function of a reaction's
// propensity given the current molecule counts of the owning voxel and
// the voxel's current size (length/area/volume). It must be pure and
// deterministic; the reaction multiplies the result by its current
// rate, never the other way around.
type PropensityFunc func(molecules []int, voxelSize float64) float64

// ConstantPropensity always returns 1, used for the Extrande
// pseudo-reaction.
func ConstantPropensity(_ []int, _ float64) float64 { return 1.0 }

// Reaction is a single reaction channel: a base rate, a propensity
// structure function, a stoichiometry vector, and an optional
// diffusion target voxel index.
type Reaction struct {
	baseRate    float64
	currentRate float64

	propensity PropensityFunc

	// Stoichiometry is the per-species change applied when this
	// reaction fires. Its length must equal the owning voxel's species
	// count.
	Stoichiometry []int

	// DiffusionTarget is the index of the neighbour voxel this
	// reaction's stoichiometry is (negated) applied to, or -1 if this
	// reaction is purely local.
	DiffusionTarget int
}

// NewReaction constructs a Reaction with the given base rate,
// propensity function, and stoichiometry. diffusionTarget should be -1
// for a non-diffusion reaction.
func NewReaction(rate float64, propensity PropensityFunc, stoichiometry []int, diffusionTarget int) Reaction {
	return Reaction{
		baseRate:        rate,
		currentRate:     rate,
		propensity:      propensity,
		Stoichiometry:   stoichiometry,
		DiffusionTarget: diffusionTarget,
	}
}

// IsDiffusion reports whether this reaction carries molecules to a
// neighbouring voxel.
func (r *Reaction) IsDiffusion() bool {
	return r.DiffusionTarget >= 0
}

// SetRate overwrites the current rate directly.
func (r *Reaction) SetRate(rate float64) {
	r.currentRate = rate
}

// Rate returns the current rate.
func (r *Reaction) Rate() float64 {
	return r.currentRate
}

// Propensity returns current_rate * propensity_fn(molecules, size).
// The rate multiplication happens here, never at the call site.
func (r *Reaction) Propensity(molecules []int, voxelSize float64) float64 {
	return r.currentRate * r.propensity(molecules, voxelSize)
}

// UpdateProperties rescales the current rate by factor if, and only
// if, this is a diffusion reaction; non-diffusion reactions ignore the
// call. This models the fact that only diffusion jump rates scale with
// voxel geometry.
func (r *Reaction) UpdateProperties(factor float64) {
	if r.IsDiffusion() {
		r.currentRate = factor * r.baseRate
	}
}

// Equal reports whether two reactions have the same rate, diffusion
// target, and stoichiometry. Propensity functions are never compared.
func (r Reaction) Equal(other Reaction) bool {
	if r.currentRate != other.currentRate {
		return false
	}
	if r.DiffusionTarget != other.DiffusionTarget {
		return false
	}
	if len(r.Stoichiometry) != len(other.Stoichiometry) {
		return false
	}
	for i := range r.Stoichiometry {
		if r.Stoichiometry[i] != other.Stoichiometry[i] {
			return false
		}
	}
	return true
}
