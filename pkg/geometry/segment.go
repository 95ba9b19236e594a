package geometry

import (
	"github.com/optray/go-ray-optics/pkg/core"
)

// Intersection describes where a ray strikes a segment
type Intersection struct {
	Point    core.Vec2 // Point of intersection
	Normal   core.Vec2 // Unit normal at the point; orientation is NOT corrected relative to the ray
	Distance float64   // Parametric distance along the ray
}

// Segment is a single planar curve piece that rays can strike
type Segment interface {
	// Intersect returns the nearest intersection at distance > minDist
	// along the ray, or ok=false when the ray misses the segment.
	Intersect(ray core.Ray, minDist float64) (Intersection, bool)

	// Crossings counts every intersection at distance > minDist along the
	// ray, not just the nearest. Used for even-odd containment tests.
	Crossings(ray core.Ray, minDist float64) int
}

// Subpath is an ordered run of endpoint-contiguous segments. Contiguity is
// the responsibility of whoever builds the subpath; it is not re-checked
// here.
type Subpath struct {
	Segments []Segment
	Closed   bool
}
