package interaction

import (
	"fmt"
	"sort"
)

// Registry maps interaction-type names to behaviors. Registration is by
// name; later registrations shadow earlier ones, so callers may replace
// built-ins with their own implementations.
type Registry struct {
	behaviors map[string]Behavior
}

// NewRegistry creates a registry pre-populated with the built-in behaviors.
// ambientIndex is the refractive index assumed outside all scene objects.
func NewRegistry(ambientIndex float64) *Registry {
	r := &Registry{behaviors: make(map[string]Behavior)}
	r.Register("absorber", Absorber{})
	r.Register("transparent", Transparent{})
	r.Register("mirror", Mirror{})
	r.Register("single_sided_mirror", SingleSidedMirror{})
	r.Register("thin_lens", ThinLens{})
	r.Register("refract", &Refract{Ambient: ambientIndex})
	r.Register("partial_mirror", PartialMirror{})
	return r
}

// Register binds a behavior to a name, shadowing any previous binding
func (r *Registry) Register(name string, b Behavior) {
	r.behaviors[name] = b
}

// Lookup resolves a behavior by name. An unknown name is a scene-authoring
// error and aborts the trace pass.
func (r *Registry) Lookup(name string) (Behavior, error) {
	b, ok := r.behaviors[name]
	if !ok {
		return nil, fmt.Errorf("unknown interaction type %q", name)
	}
	return b, nil
}

// Names returns all registered behavior names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.behaviors))
	for name := range r.behaviors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
