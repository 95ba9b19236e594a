package interaction

import (
	"github.com/optray/go-ray-optics/pkg/core"
	"github.com/optray/go-ray-optics/pkg/scene"
)

// Hit describes the surface event a behavior must resolve
type Hit struct {
	Ray     core.Ray     // The incoming ray; Origin is the previous launch point
	Point   core.Vec2    // Point of intersection
	Normal  core.Vec2    // Unit surface normal; orientation relative to the ray is NOT corrected
	Object  *scene.Object
	Scene   *scene.Scene
	MinDist float64 // Tracer's minimum hit distance, reused by containment tests
}

// Result is the outcome of one surface interaction
type Result struct {
	Direction core.Vec2    // Outgoing direction of the continuing lineage
	Branch    core.Vec2    // Direction of a split-off sibling lineage
	HasBranch bool         // Whether Branch is meaningful
	Payload   core.Payload // Updated carried state; an empty payload is dropped by the tracer
	Continue  bool         // False terminates the lineage (absorption)
}

// Behavior resolves what happens when a ray strikes a surface. The
// intersection module makes no orientation guarantee for the normal, so
// every behavior orients it itself before use.
type Behavior interface {
	Interact(dir core.Vec2, hit Hit, payload core.Payload) (Result, error)
}

// OrientOutward flips the normal if it points along the incoming ray, so
// that the result faces the side the ray arrives from.
func OrientOutward(normal, incoming core.Vec2) core.Vec2 {
	if normal.Dot(incoming) > 0 {
		return normal.Negate()
	}
	return normal
}

// Reflect mirrors a direction about a unit normal: d' = d - 2(d·n)n
func Reflect(dir, normal core.Vec2) core.Vec2 {
	return dir.Subtract(normal.Multiply(2 * dir.Dot(normal)))
}
