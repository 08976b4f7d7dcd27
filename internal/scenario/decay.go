package scenario

import "github.com/BartoszBartmanski/StoSpa2/internal/engine"

func decayPropensity(molecules []int, _ float64) float64 {
	return float64(molecules[0])
}

func productionPropensity(_ []int, voxelSize float64) float64 {
	return voxelSize
}

func init() {
	Register(Spec{
		Name:        "decay-production",
		Description: "single voxel, first-order decay balanced by zeroth-order production",
		Species:     []string{"A"},
		Params: map[string]ParamRange{
			"decay_rate":      {Default: 1.0, Min: 0.0, Max: 10.0},
			"production_rate": {Default: 1.0, Min: 0.0, Max: 10.0},
			"initial_A":       {Default: 100.0, Min: 0.0, Max: 10000.0},
			"voxel_size":      {Default: 10.0, Min: 0.1, Max: 100.0},
		},
		Build: func(params map[string]float64) ([]*engine.Voxel, error) {
			v := engine.NewVoxel([]int{int(params["initial_A"])}, params["voxel_size"])
			if err := v.AddReaction(engine.NewReaction(params["decay_rate"], decayPropensity, []int{-1}, -1)); err != nil {
				return nil, err
			}
			if err := v.AddReaction(engine.NewReaction(params["production_rate"], productionPropensity, []int{1}, -1)); err != nil {
				return nil, err
			}
			return []*engine.Voxel{v}, nil
		},
	})
}
