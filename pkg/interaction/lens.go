package interaction

import (
	"fmt"

	"github.com/optray/go-ray-optics/pkg/core"
	"github.com/optray/go-ray-optics/pkg/geometry"
)

// ThinLens models an ideal thin lens as an angular kick rather than surface
// refraction: the deflection angle is the hit point's offset from the lens
// center divided by the focal length. Positive focal lengths converge,
// negative ones diverge. The owning object must consist of exactly one
// straight segment.
type ThinLens struct{}

// Interact implements the Behavior interface for ideal thin lenses
func (ThinLens) Interact(dir core.Vec2, hit Hit, payload core.Payload) (Result, error) {
	if len(hit.Object.Args) != 1 {
		return Result{}, fmt.Errorf("thin_lens requires exactly one argument, got %d", len(hit.Object.Args))
	}
	focal := hit.Object.Args[0]
	if focal == 0 {
		return Result{}, fmt.Errorf("thin_lens focal length must be nonzero")
	}

	segment, err := lensSegment(hit)
	if err != nil {
		return Result{}, err
	}

	offset := hit.Point.Subtract(segment.Midpoint())
	theta := offset.Length() / focal
	if offset.Cross(dir) < 0 {
		theta = -theta
	}

	return Result{Direction: dir.Rotate(theta), Payload: payload, Continue: true}, nil
}

// lensSegment extracts the single straight segment a thin lens must be made
// of; anything else is a scene-authoring error.
func lensSegment(hit Hit) (*geometry.PolySegment, error) {
	if len(hit.Object.Subpaths) != 1 || len(hit.Object.Subpaths[0].Segments) != 1 {
		return nil, fmt.Errorf("thin_lens object must consist of a single segment")
	}
	segment, ok := hit.Object.Subpaths[0].Segments[0].(*geometry.PolySegment)
	if !ok || segment.Order() != 1 {
		return nil, fmt.Errorf("thin_lens object must be a single straight segment")
	}
	return segment, nil
}
