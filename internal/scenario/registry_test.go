package scenario

import "testing"

func TestListIncludesBuiltins(t *testing.T) {
	want := []string{
		"bimolecular",
		"decay-production",
		"diffusion-chain",
		"dimerization",
		"growing-domain",
		"schnakenberg",
	}
	got := List()
	if len(got) < len(want) {
		t.Fatalf("List() = %v, missing built-ins", got)
	}
	index := map[string]bool{}
	for _, name := range got {
		index[name] = true
	}
	for _, name := range want {
		if !index[name] {
			t.Errorf("List() missing built-in scenario %q", name)
		}
	}
}

func TestGetUnknownScenario(t *testing.T) {
	if _, err := Get("does-not-exist"); err == nil {
		t.Fatal("Get() with unknown name returned no error")
	}
}

func TestEveryBuiltinScenarioBuildsWithDefaults(t *testing.T) {
	for _, name := range List() {
		spec, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		voxels, err := spec.Build(spec.Defaults())
		if err != nil {
			t.Fatalf("%s: Build() error: %v", name, err)
		}
		if len(voxels) == 0 {
			t.Fatalf("%s: Build() returned no voxels", name)
		}
		for _, v := range voxels {
			if len(v.Molecules()) != len(spec.Species) {
				t.Fatalf("%s: voxel has %d species, spec declares %d", name, len(v.Molecules()), len(spec.Species))
			}
		}
	}
}
