package scenario

import "github.com/BartoszBartmanski/StoSpa2/internal/engine"

// bimolecularPropensity is the mass-action term for A + B -> C.
func bimolecularPropensity(molecules []int, voxelSize float64) float64 {
	return float64(molecules[0]) * float64(molecules[1]) / voxelSize
}

func init() {
	Register(Spec{
		Name:        "bimolecular",
		Description: "A + B -> C, second-order association in a single voxel",
		Species:     []string{"A", "B", "C"},
		Params: map[string]ParamRange{
			"rate":       {Default: 1.0, Min: 0.0, Max: 10.0},
			"initial_A":  {Default: 100.0, Min: 0.0, Max: 10000.0},
			"initial_B":  {Default: 70.0, Min: 0.0, Max: 10000.0},
			"voxel_size": {Default: 10.0, Min: 0.1, Max: 100.0},
		},
		Build: func(params map[string]float64) ([]*engine.Voxel, error) {
			v := engine.NewVoxel([]int{int(params["initial_A"]), int(params["initial_B"]), 0}, params["voxel_size"])
			err := v.AddReaction(engine.NewReaction(params["rate"], bimolecularPropensity, []int{-1, -1, 1}, -1))
			if err != nil {
				return nil, err
			}
			return []*engine.Voxel{v}, nil
		},
	})
}
