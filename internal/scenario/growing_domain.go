package scenario

import (
	"math"

	"github.com/BartoszBartmanski/StoSpa2/internal/engine"
)

func init() {
	Register(Spec{
		Name:        "growing-domain",
		Description: "diffusion chain on an exponentially growing 1D domain, sampled via the Extrande pseudo-reaction",
		Species:     []string{"A"},
		Params: map[string]ParamRange{
			"num_voxels":     {Default: 10, Min: 2, Max: 200},
			"voxel_size":     {Default: 1.0, Min: 0.01, Max: 100.0},
			"diffusion_rate": {Default: 1.0, Min: 0.0, Max: 10.0},
			"initial_A":      {Default: 10000.0, Min: 0.0, Max: 1_000_000.0},
			"growth_rate":    {Default: 0.2, Min: 0.0, Max: 2.0},
			"extrande_ratio": {Default: engine.DefaultExtrandeRatio, Min: 1.0, Max: 100.0},
		},
		Build: func(params map[string]float64) ([]*engine.Voxel, error) {
			growthRate := params["growth_rate"]
			growth := func(t float64) float64 { return math.Exp(growthRate * t) }
			return buildDiffusionChain(
				int(params["num_voxels"]),
				params["voxel_size"],
				params["diffusion_rate"],
				int(params["initial_A"]),
				[]engine.GrowthFunc{growth},
				params["extrande_ratio"],
			)
		},
	})
}
