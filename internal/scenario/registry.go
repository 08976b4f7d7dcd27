// Package scenario holds named, reusable reaction-diffusion system
// builders: each scenario turns a set of calibration parameters into a
// ready-to-run voxel list.
package scenario

import (
	"fmt"
	"sort"
	"sync"

	"github.com/BartoszBartmanski/StoSpa2/internal/engine"
)

// ParamRange describes the sensible calibration bounds for a single
// named parameter, used by the calibration grid search and by the
// interactive menu to seed default values.
type ParamRange struct {
	Default float64
	Min     float64
	Max     float64
}

// Spec is a named, reusable system builder: a human-readable
// description, the species names in vector order, and a factory that
// turns a set of named parameters into a fresh voxel list.
type Spec struct {
	Name        string
	Description string
	Species     []string
	Params      map[string]ParamRange
	Build       func(params map[string]float64) ([]*engine.Voxel, error)
}

// Defaults returns the parameter values a Spec's Params ranges name as
// their Default, so callers can Build without specifying every
// parameter explicitly.
func (s Spec) Defaults() map[string]float64 {
	out := make(map[string]float64, len(s.Params))
	for name, r := range s.Params {
		out[name] = r.Default
	}
	return out
}

var (
	mu       sync.RWMutex
	registry = map[string]Spec{}
)

// Register adds a scenario to the registry. It panics if name is
// already registered, since that indicates a programming error in the
// built-in scenario set rather than a runtime condition.
func Register(spec Spec) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[spec.Name]; exists {
		panic(fmt.Sprintf("scenario: %q already registered", spec.Name))
	}
	registry[spec.Name] = spec
}

// Get looks up a scenario by name.
func Get(name string) (Spec, error) {
	mu.RLock()
	defer mu.RUnlock()
	spec, ok := registry[name]
	if !ok {
		return Spec{}, fmt.Errorf("scenario: unknown scenario %q", name)
	}
	return spec, nil
}

// List returns every registered scenario name in sorted order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
