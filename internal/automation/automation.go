// Package automation runs a YAML-scripted batch of simulation steps,
// each naming a scenario, its parameters, and where to save the
// result — the unattended counterpart to the interactive CLI.
package automation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BartoszBartmanski/StoSpa2/internal/config"
	"github.com/BartoszBartmanski/StoSpa2/internal/engine"
	"github.com/BartoszBartmanski/StoSpa2/internal/scenario"
	"github.com/BartoszBartmanski/StoSpa2/internal/store"
)

// Script is a named, scripted sequence of runs.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single scripted run.
type Step struct {
	Scenario string             `yaml:"scenario"`
	Params   map[string]float64 `yaml:"params"`
	Seed     int64              `yaml:"seed"`
	Dt       float64            `yaml:"dt"`
	NumSteps int                `yaml:"num_steps"`
	SaveAs   string             `yaml:"save_as"`
}

// LoadScript reads a Script from a YAML file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, err
	}
	return &script, nil
}

// StepResult is the outcome of a single executed step.
type StepResult struct {
	Step    Step
	RunID   string
	Clamped int
}

// Run executes every step in order, writing each one's trajectory to
// outputDir/<SaveAs>.dat (or <scenario>.dat if SaveAs is empty) and then
// saving it to st, whose run ID is derived from the scenario name.
// Execution stops at the first step that fails.
func Run(script *Script, st *store.Store, outputDir string) ([]StepResult, error) {
	results := make([]StepResult, 0, len(script.Steps))

	for i, step := range script.Steps {
		fmt.Printf("running step %d/%d: %s\n", i+1, len(script.Steps), step.Scenario)

		spec, err := scenario.Get(step.Scenario)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		params := spec.Defaults()
		for k, v := range step.Params {
			params[k] = v
		}

		voxels, err := spec.Build(params)
		if err != nil {
			return results, fmt.Errorf("step %d: building %s: %w", i+1, step.Scenario, err)
		}

		sim := engine.New(voxels)
		sim.SetSeed(uint64(step.Seed))

		dt := step.Dt
		if dt <= 0 {
			dt = config.DefaultDt
		}
		numSteps := step.NumSteps
		if numSteps <= 0 {
			numSteps = config.DefaultNumSteps
		}

		name := step.SaveAs
		if name == "" {
			name = step.Scenario
		}
		trajPath := fmt.Sprintf("%s/%s.dat", outputDir, name)

		clamped, err := sim.Run(trajPath, dt, numSteps, "")
		if err != nil {
			return results, fmt.Errorf("step %d: running %s: %w", i+1, step.Scenario, err)
		}

		var speciesCount int
		if len(voxels) > 0 {
			speciesCount = len(voxels[0].Molecules())
		}

		runID, err := st.Save(store.RunMetadata{
			Scenario:     step.Scenario,
			Seed:         step.Seed,
			VoxelCount:   len(voxels),
			SpeciesCount: speciesCount,
			Dt:           dt,
			NumSteps:     numSteps,
			Metrics:      map[string]float64{"clamp_events": float64(clamped)},
		}, trajPath)
		if err != nil {
			return results, fmt.Errorf("step %d: saving %s: %w", i+1, step.Scenario, err)
		}

		results = append(results, StepResult{Step: step, RunID: runID, Clamped: clamped})
	}

	return results, nil
}
