// Package store persists simulation runs to disk: a JSON metadata
// sidecar plus the space-separated trajectory file written by the
// engine's own Run convenience, indexed under a base directory so runs
// can be listed and reloaded later.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunMetadata records everything about a run besides the trajectory
// samples themselves.
type RunMetadata struct {
	ID           string             `json:"id"`
	Scenario     string             `json:"scenario"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	VoxelCount   int                `json:"voxel_count"`
	SpeciesCount int                `json:"species_count"`
	Dt           float64            `json:"dt"`
	NumSteps     int                `json:"num_steps"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Store roots every run under a single base directory, one
// subdirectory per run.
type Store struct {
	baseDir string
}

// New returns a Store rooted at baseDir. The directory is not created
// until the first Save.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Init creates the store's base directory if it does not exist.
func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Save writes meta and the already-produced trajectory file into a
// fresh run directory, and returns the run's ID.
func (s *Store) Save(meta RunMetadata, trajectoryPath string) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Scenario, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	data, err := os.ReadFile(trajectoryPath)
	if err != nil {
		return "", fmt.Errorf("store: reading trajectory %q: %w", trajectoryPath, err)
	}
	if err := os.WriteFile(filepath.Join(runDir, "trajectory.dat"), data, 0644); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns the metadata for every run in the store, skipping any
// run directory whose metadata could not be read.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

// Load reads a single run's metadata by ID.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// TrajectoryPath returns the path to a run's trajectory file, for
// callers that want to parse it directly (e.g. analysis, export).
func (s *Store) TrajectoryPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "trajectory.dat")
}
