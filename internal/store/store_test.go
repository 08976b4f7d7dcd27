package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFakeTrajectory(t *testing.T, path string) {
	t.Helper()
	content := "# time voxels...\n0 100\n0.1 95\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fake trajectory: %v", err)
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	trajPath := filepath.Join(tmpDir, "source.dat")
	writeFakeTrajectory(t, trajPath)

	meta := RunMetadata{
		Scenario:     "decay-production",
		Seed:         42,
		VoxelCount:   1,
		SpeciesCount: 1,
		Dt:           0.01,
		NumSteps:     2,
		Metrics:      map[string]float64{"mean_A": 97.5},
	}

	runID, err := st.Save(meta, trajPath)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Scenario != "decay-production" {
		t.Errorf("expected scenario decay-production, got %s", loaded.Scenario)
	}
	if loaded.Seed != 42 {
		t.Errorf("expected seed 42, got %d", loaded.Seed)
	}
	if loaded.Metrics["mean_A"] != 97.5 {
		t.Errorf("expected mean_A 97.5, got %f", loaded.Metrics["mean_A"])
	}

	data, err := os.ReadFile(st.TrajectoryPath(runID))
	if err != nil {
		t.Fatalf("reading saved trajectory: %v", err)
	}
	if string(data) != "# time voxels...\n0 100\n0.1 95\n" {
		t.Errorf("trajectory contents changed on save: %q", string(data))
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	trajPath := filepath.Join(tmpDir, "source.dat")
	writeFakeTrajectory(t, trajPath)

	for i := 0; i < 3; i++ {
		if _, err := st.Save(RunMetadata{Scenario: "decay-production", Seed: int64(i)}, trajPath); err != nil {
			t.Fatalf("save #%d failed: %v", i, err)
		}
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("List() returned %d runs, want 3", len(runs))
	}
}

func TestStoreListEmptyOnMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "does-not-exist"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("List() = %v, want empty", runs)
	}
}
