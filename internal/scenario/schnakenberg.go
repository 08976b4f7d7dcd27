package scenario

import "github.com/BartoszBartmanski/StoSpa2/internal/engine"

func schnakenbergDecay(molecules []int, _ float64) float64 {
	return float64(molecules[0])
}

func schnakenbergProduction(_ []int, voxelSize float64) float64 {
	return voxelSize
}

func schnakenbergDiffusionU(molecules []int, _ float64) float64 {
	return float64(molecules[0])
}

func schnakenbergDiffusionV(molecules []int, _ float64) float64 {
	return float64(molecules[1])
}

// schnakenbergReaction is the pattern-forming 2U+V -> 3U term,
// U*(U-1)*V normalized by voxel area squared.
func schnakenbergReaction(molecules []int, voxelSize float64) float64 {
	u, v := float64(molecules[0]), float64(molecules[1])
	return u * (u - 1) * v / (voxelSize * voxelSize)
}

func init() {
	Register(Spec{
		Name:        "schnakenberg",
		Description: "two-species Schnakenberg reaction-diffusion system on a 1D line of voxels, a classic Turing pattern generator",
		Species:     []string{"U", "V"},
		Params: map[string]ParamRange{
			"num_voxels":     {Default: 40, Min: 4, Max: 400},
			"diffusion_U":    {Default: 1e-5, Min: 0.0, Max: 1.0},
			"diffusion_V":    {Default: 1e-3, Min: 0.0, Max: 1.0},
			"decay_rate":     {Default: 0.02, Min: 0.0, Max: 10.0},
			"production_U":   {Default: 40.0, Min: 0.0, Max: 1000.0},
			"reaction_rate":  {Default: 6.25e-10, Min: 0.0, Max: 1.0},
			"production_V":   {Default: 120.0, Min: 0.0, Max: 1000.0},
			"initial_U":      {Default: 200.0, Min: 0.0, Max: 100000.0},
			"initial_V":      {Default: 75.0, Min: 0.0, Max: 100000.0},
		},
		Build: func(params map[string]float64) ([]*engine.Voxel, error) {
			n := int(params["num_voxels"])
			h := 1.0 / float64(n)

			voxels := make([]*engine.Voxel, n)
			for i := 0; i < n; i++ {
				voxels[i] = engine.NewVoxel([]int{int(params["initial_U"]), int(params["initial_V"])}, h)
			}

			diffU := params["diffusion_U"] / (h * h)
			diffV := params["diffusion_V"] / (h * h)
			for i := 0; i < n-1; i++ {
				if err := voxels[i].AddReaction(engine.NewReaction(diffU, schnakenbergDiffusionU, []int{-1, 0}, i+1)); err != nil {
					return nil, err
				}
				if err := voxels[i+1].AddReaction(engine.NewReaction(diffU, schnakenbergDiffusionU, []int{-1, 0}, i)); err != nil {
					return nil, err
				}
				if err := voxels[i].AddReaction(engine.NewReaction(diffV, schnakenbergDiffusionV, []int{0, -1}, i+1)); err != nil {
					return nil, err
				}
				if err := voxels[i+1].AddReaction(engine.NewReaction(diffV, schnakenbergDiffusionV, []int{0, -1}, i)); err != nil {
					return nil, err
				}
			}

			for _, v := range voxels {
				if err := v.AddReaction(engine.NewReaction(params["decay_rate"], schnakenbergDecay, []int{-1, 0}, -1)); err != nil {
					return nil, err
				}
				if err := v.AddReaction(engine.NewReaction(params["production_U"], schnakenbergProduction, []int{1, 0}, -1)); err != nil {
					return nil, err
				}
				if err := v.AddReaction(engine.NewReaction(params["reaction_rate"], schnakenbergReaction, []int{1, -1}, -1)); err != nil {
					return nil, err
				}
				if err := v.AddReaction(engine.NewReaction(params["production_V"], schnakenbergProduction, []int{0, 1}, -1)); err != nil {
					return nil, err
				}
			}

			return voxels, nil
		},
	})
}
