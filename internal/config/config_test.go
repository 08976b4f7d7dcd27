package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Scenario != "decay-production" {
		t.Errorf("expected scenario decay-production, got %s", cfg.Scenario)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.NumSteps <= 0 {
		t.Error("num_steps should be positive")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("dimerization", "default")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params["rate"] != 1.0 {
		t.Errorf("expected rate 1.0, got %v", cfg.Params["rate"])
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if cfg := GetPreset("dimerization", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "default"); cfg != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestGetPresetReturnsIsolatedCopy(t *testing.T) {
	first := GetPreset("dimerization", "default")
	first.Seed = 999
	first.Params["rate"] = 12345

	second := GetPreset("dimerization", "default")
	if second.Seed == 999 {
		t.Error("GetPreset() leaked a scalar field mutation back into the shared preset")
	}
	if second.Params["rate"] == 12345 {
		t.Error("GetPreset() leaked a Params mutation back into the shared preset")
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets("decay-production"); len(presets) == 0 {
		t.Error("expected presets for decay-production")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	original := DefaultConfig()
	original.Seed = 42
	original.Params["initial_A"] = 250

	if err := Save(path, original); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Save() did not create file: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Seed != original.Seed {
		t.Errorf("Seed = %d, want %d", loaded.Seed, original.Seed)
	}
	if loaded.Params["initial_A"] != 250 {
		t.Errorf("Params[initial_A] = %v, want 250", loaded.Params["initial_A"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load() on a missing file returned no error")
	}
}
