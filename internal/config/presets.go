package config

// Presets offers named, ready-to-run configurations per scenario, the
// way a first-time user would want to try one without hand-picking
// parameters.
var Presets = map[string]map[string]*Config{
	"decay-production": {
		"equilibrium": {
			Scenario: "decay-production", Dt: 0.01, NumSteps: 500,
			Params: map[string]float64{"decay_rate": 1.0, "production_rate": 1.0, "initial_A": 100},
		},
		"fast-decay": {
			Scenario: "decay-production", Dt: 0.01, NumSteps: 500,
			Params: map[string]float64{"decay_rate": 5.0, "production_rate": 1.0, "initial_A": 500},
		},
	},
	"dimerization": {
		"default": {
			Scenario: "dimerization", Dt: 0.01, NumSteps: 500,
			Params: map[string]float64{"rate": 1.0, "initial_A": 100},
		},
	},
	"bimolecular": {
		"default": {
			Scenario: "bimolecular", Dt: 0.01, NumSteps: 500,
			Params: map[string]float64{"rate": 1.0, "initial_A": 100, "initial_B": 70},
		},
	},
	"diffusion-chain": {
		"ten-voxels": {
			Scenario: "diffusion-chain", Dt: 0.01, NumSteps: 500,
			Params: map[string]float64{"num_voxels": 10, "diffusion_rate": 1.0, "initial_A": 10000},
		},
	},
	"growing-domain": {
		"default": {
			Scenario: "growing-domain", Dt: 0.01, NumSteps: 200,
			ExtrandeRatio: DefaultExtrandeRatio,
			Params:        map[string]float64{"num_voxels": 10, "diffusion_rate": 1.0, "initial_A": 10000, "growth_rate": 0.2},
		},
	},
	"schnakenberg": {
		"turing-pattern": {
			Scenario: "schnakenberg", Dt: 0.1, NumSteps: 2000,
			Params: map[string]float64{"num_voxels": 40},
		},
	},
}

// GetPreset looks up a named preset for a scenario, or nil if either
// the scenario or the preset name is unknown.
func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}

	// Return a copy: callers mutate the Config in place (applying flag
	// overrides), and Presets is a package-level map shared by every
	// caller for the life of the process.
	out := *cfg
	if cfg.Params != nil {
		out.Params = make(map[string]float64, len(cfg.Params))
		for k, v := range cfg.Params {
			out.Params[k] = v
		}
	}
	return &out
}

// ListPresets returns the preset names available for a scenario, or
// nil if the scenario has none.
func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	return names
}
