package interaction

import (
	"testing"

	"github.com/optray/go-ray-optics/pkg/core"
)

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry(1.0)
	for _, name := range []string{
		"absorber", "transparent", "mirror", "single_sided_mirror",
		"thin_lens", "refract", "partial_mirror",
	} {
		if _, err := r.Lookup(name); err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
		}
	}
}

func TestRegistryUnknown(t *testing.T) {
	r := NewRegistry(1.0)
	if _, err := r.Lookup("prism"); err == nil {
		t.Error("unknown name should be an error")
	}
}

func TestRegistryShadowing(t *testing.T) {
	r := NewRegistry(1.0)
	r.Register("mirror", Absorber{})

	b, err := r.Lookup("mirror")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := b.Interact(core.NewVec2(1, 0), Hit{}, core.Payload{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Continue {
		t.Error("later registration should shadow the built-in")
	}
}

func TestRegistryNames(t *testing.T) {
	names := NewRegistry(1.0).Names()
	if len(names) != 7 {
		t.Fatalf("Names returned %d entries, want 7", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
