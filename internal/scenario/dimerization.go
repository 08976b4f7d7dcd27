package scenario

import "github.com/BartoszBartmanski/StoSpa2/internal/engine"

// dimerizationPropensity is the combinatorial mass-action term for
// 2A -> B: A*(A-1), the number of ordered pairs of A molecules,
// divided by the voxel size.
func dimerizationPropensity(molecules []int, voxelSize float64) float64 {
	a := float64(molecules[0])
	return a * (a - 1) / voxelSize
}

func init() {
	Register(Spec{
		Name:        "dimerization",
		Description: "2A -> B, second-order dimerization in a single voxel",
		Species:     []string{"A", "B"},
		Params: map[string]ParamRange{
			"rate":       {Default: 1.0, Min: 0.0, Max: 10.0},
			"initial_A":  {Default: 100.0, Min: 0.0, Max: 10000.0},
			"voxel_size": {Default: 10.0, Min: 0.1, Max: 100.0},
		},
		Build: func(params map[string]float64) ([]*engine.Voxel, error) {
			v := engine.NewVoxel([]int{int(params["initial_A"]), 0}, params["voxel_size"])
			err := v.AddReaction(engine.NewReaction(params["rate"], dimerizationPropensity, []int{-2, 1}, -1))
			if err != nil {
				return nil, err
			}
			return []*engine.Voxel{v}, nil
		},
	})
}
