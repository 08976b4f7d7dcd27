package automation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BartoszBartmanski/StoSpa2/internal/store"

	_ "github.com/BartoszBartmanski/StoSpa2/internal/scenario"
)

func TestLoadScriptRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.yaml")
	content := `
name: smoke-test
description: a tiny two-step batch
steps:
  - scenario: decay-production
    seed: 1
    dt: 0.01
    num_steps: 5
    save_as: run-one
  - scenario: dimerization
    seed: 2
    dt: 0.01
    num_steps: 5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing script: %v", err)
	}

	script, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript() error: %v", err)
	}
	if len(script.Steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(script.Steps))
	}
	if script.Steps[0].SaveAs != "run-one" {
		t.Fatalf("Steps[0].SaveAs = %q, want run-one", script.Steps[0].SaveAs)
	}
}

func TestRunExecutesEveryStep(t *testing.T) {
	dir := t.TempDir()
	script := &Script{
		Name: "smoke-test",
		Steps: []Step{
			{Scenario: "decay-production", Seed: 1, Dt: 0.01, NumSteps: 5, SaveAs: "run-one"},
			{Scenario: "dimerization", Seed: 2, Dt: 0.01, NumSteps: 5},
		},
	}

	st := store.New(filepath.Join(dir, "runs"))
	if err := st.Init(); err != nil {
		t.Fatalf("store.Init() error: %v", err)
	}

	results, err := Run(script, st, dir)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.RunID == "" {
			t.Errorf("step %s: empty run ID", r.Step.Scenario)
		}
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("store.List() error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("store has %d runs, want 2", len(runs))
	}
}

func TestRunStopsAtUnknownScenario(t *testing.T) {
	dir := t.TempDir()
	script := &Script{Steps: []Step{{Scenario: "does-not-exist"}}}
	st := store.New(filepath.Join(dir, "runs"))
	if err := st.Init(); err != nil {
		t.Fatalf("store.Init() error: %v", err)
	}

	if _, err := Run(script, st, dir); err == nil {
		t.Fatal("Run() with an unknown scenario returned no error")
	}
}
