package scenario

import "github.com/BartoszBartmanski/StoSpa2/internal/engine"

func diffusionPropensity(molecules []int, _ float64) float64 {
	return float64(molecules[0])
}

func init() {
	Register(Spec{
		Name:        "diffusion-chain",
		Description: "a line of voxels with nearest-neighbour diffusion, all molecules starting in the first voxel",
		Species:     []string{"A"},
		Params: map[string]ParamRange{
			"num_voxels":     {Default: 10, Min: 2, Max: 200},
			"voxel_size":     {Default: 1.0, Min: 0.01, Max: 100.0},
			"diffusion_rate": {Default: 1.0, Min: 0.0, Max: 10.0},
			"initial_A":      {Default: 10000.0, Min: 0.0, Max: 1_000_000.0},
		},
		Build: func(params map[string]float64) ([]*engine.Voxel, error) {
			return buildDiffusionChain(
				int(params["num_voxels"]),
				params["voxel_size"],
				params["diffusion_rate"],
				int(params["initial_A"]),
				nil,
				engine.DefaultExtrandeRatio,
			)
		},
	})
}

// buildDiffusionChain constructs n voxels of size voxelSize in a line,
// all molecules initially concentrated in the first voxel, connected by
// symmetric nearest-neighbour diffusion jumps at the given rate. When
// growthFns is non-nil, every voxel grows according to it, bounded by
// extrandeRatio (shared by the growing-domain scenario).
func buildDiffusionChain(n int, voxelSize, diffusionRate float64, initialA int, growthFns []engine.GrowthFunc, extrandeRatio float64) ([]*engine.Voxel, error) {
	voxels := make([]*engine.Voxel, n)
	for i := 0; i < n; i++ {
		counts := []int{0}
		if i == 0 {
			counts[0] = initialA
		}
		if len(growthFns) > 0 {
			v, err := engine.NewGrowingVoxel(counts, voxelSize, extrandeRatio, growthFns...)
			if err != nil {
				return nil, err
			}
			voxels[i] = v
		} else {
			voxels[i] = engine.NewVoxel(counts, voxelSize)
		}
	}

	for i := 0; i < n-1; i++ {
		if err := voxels[i].AddReaction(engine.NewReaction(diffusionRate, diffusionPropensity, []int{-1}, i+1)); err != nil {
			return nil, err
		}
		if err := voxels[i+1].AddReaction(engine.NewReaction(diffusionRate, diffusionPropensity, []int{-1}, i)); err != nil {
			return nil, err
		}
	}

	return voxels, nil
}
