package interaction

import (
	"fmt"
	"math"

	"github.com/optray/go-ray-optics/pkg/core"
)

// Refract models a refractive interface under nested, overlapping bodies.
// The carried payload holds a medium stack keyed by object z-order that
// records every refractive body the ray currently occupies; crossing an
// interface toggles the struck object in or out of the stack, and the old
// and new indices of refraction are read from the stack tops on either
// side. Total internal reflection falls back to a mirror bounce and keeps
// the ray in its current medium.
type Refract struct {
	Ambient float64 // Refractive index outside all scene objects
}

// Interact implements the Behavior interface for refraction
func (rf *Refract) Interact(dir core.Vec2, hit Hit, payload core.Payload) (Result, error) {
	if len(hit.Object.Args) != 1 {
		return Result{}, fmt.Errorf("refract requires exactly one argument, got %d", len(hit.Object.Args))
	}
	index := math.Abs(hit.Object.Args[0])
	nOut := OrientOutward(hit.Normal, dir)

	// On first encounter the ray has no medium history; reconstruct it by
	// testing which refractive bodies already enclose the ray's origin.
	var stack core.MediumStack
	if payload.Refraction != nil {
		stack = payload.Refraction.Stack
	} else {
		stack = rf.initialStack(hit)
	}

	reflStack := stack
	transStack := stack.Toggle(core.MediumEntry{ZOrder: hit.Object.ZOrder, Index: index})
	oldIndex := reflStack.TopIndex(rf.Ambient)
	newIndex := transStack.TopIndex(rf.Ambient)

	// Snell's law via cross products of unit vectors
	sin1 := math.Abs(nOut.Cross(dir))
	sin2 := sin1 * oldIndex / newIndex

	if sin2 > 1 {
		// Total internal reflection: the ray stays in its current medium
		return Result{
			Direction: Reflect(dir, nOut),
			Payload: core.Payload{
				Refraction: &core.RefractionState{Stack: reflStack, Index: oldIndex},
				Custom:     payload.Custom,
			},
			Continue: true,
		}, nil
	}

	// Rotate the inward-pointing normal by ±θ2 and keep the candidate on
	// the same rotational side of the normal as the incident ray.
	theta2 := math.Asin(sin2)
	nIn := nOut.Negate()
	refracted := nIn.Rotate(theta2)
	if refracted.Cross(nOut)*dir.Cross(nOut) < 0 {
		refracted = nIn.Rotate(-theta2)
	}

	return Result{
		Direction: refracted,
		Payload: core.Payload{
			Refraction: &core.RefractionState{Stack: transStack, Index: newIndex},
			Custom:     payload.Custom,
		},
		Continue: true,
	}, nil
}

// initialStack reconstructs the medium stack for a ray with no refraction
// history: every other refractive object whose closed subpaths enclose the
// ray's origin (even-odd rule along the ray's straight continuation) is
// entered in descending z-order.
func (rf *Refract) initialStack(hit Hit) core.MediumStack {
	var stack core.MediumStack
	for _, obj := range hit.Scene.Objects {
		if obj == hit.Object || obj.Action != "refract" || len(obj.Args) != 1 {
			continue
		}
		if obj.ContainsOrigin(hit.Ray, hit.MinDist) {
			stack = stack.Insert(core.MediumEntry{ZOrder: obj.ZOrder, Index: math.Abs(obj.Args[0])})
		}
	}
	return stack
}
