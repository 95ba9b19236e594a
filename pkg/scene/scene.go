package scene

import (
	"fmt"

	"github.com/optray/go-ray-optics/pkg/core"
	"github.com/optray/go-ray-optics/pkg/geometry"
)

// Object is one optical element: a set of subpaths tagged with an
// interaction behavior. Objects are read-only during a trace pass; the
// animation driver may replace them wholesale between passes.
type Object struct {
	Subpaths []geometry.Subpath
	Action   string    // Interaction behavior name; empty means inert decoration
	Args     []float64 // Numeric behavior arguments (e.g. focal length, refractive index)
	ZOrder   int       // Unique precedence key across the scene
	Tags     []string
}

// HasTag reports whether the object carries the given tag
func (o *Object) HasTag(tag string) bool {
	for _, t := range o.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ContainsOrigin tests whether the ray's origin lies inside the object's
// closed subpaths using the even-odd rule: crossings are counted along the
// straight continuation of the ray, an odd count means the origin is inside
// that subpath, and an odd number of enclosing subpaths means inside the
// object overall.
func (o *Object) ContainsOrigin(ray core.Ray, minDist float64) bool {
	insideCount := 0
	for _, sp := range o.Subpaths {
		if !sp.Closed {
			continue
		}
		crossings := 0
		for _, seg := range sp.Segments {
			crossings += seg.Crossings(ray, minDist)
		}
		if crossings%2 == 1 {
			insideCount++
		}
	}
	return insideCount%2 == 1
}

// Scene is an immutable snapshot of optical elements for one trace pass
type Scene struct {
	Objects []*Object

	// Revision identifies this snapshot; whoever swaps objects between
	// passes bumps it. Trace caches key on it.
	Revision int64
}

// Validate checks scene-authoring invariants: z-orders must be unique.
// Unknown action names surface later, at dispatch time.
func (s *Scene) Validate() error {
	seen := make(map[int]bool, len(s.Objects))
	for _, obj := range s.Objects {
		if seen[obj.ZOrder] {
			return fmt.Errorf("duplicate z-order %d", obj.ZOrder)
		}
		seen[obj.ZOrder] = true
	}
	return nil
}
