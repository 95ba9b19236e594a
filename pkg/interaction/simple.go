package interaction

import (
	"fmt"

	"github.com/optray/go-ray-optics/pkg/core"
)

// Absorber terminates a ray lineage at the surface
type Absorber struct{}

// Interact implements the Behavior interface for absorption
func (Absorber) Interact(dir core.Vec2, hit Hit, payload core.Payload) (Result, error) {
	return Result{Direction: dir, Payload: payload, Continue: false}, nil
}

// Transparent lets the ray pass through untouched. Useful as a zero-effect
// tap point: the tracer still records a node there, so downstream reporting
// can observe the crossing.
type Transparent struct{}

// Interact implements the Behavior interface for pass-through
func (Transparent) Interact(dir core.Vec2, hit Hit, payload core.Payload) (Result, error) {
	return Result{Direction: dir, Payload: payload, Continue: true}, nil
}

// Mirror reflects the ray specularly
type Mirror struct{}

// Interact implements the Behavior interface for specular reflection
func (Mirror) Interact(dir core.Vec2, hit Hit, payload core.Payload) (Result, error) {
	n := OrientOutward(hit.Normal, dir)
	return Result{Direction: Reflect(dir, n), Payload: payload, Continue: true}, nil
}

// SingleSidedMirror reflects from one face and passes through the other.
// The single argument selects the reflective side: +1 or -1 relative to the
// raw, uncorrected normal, which here serves as the side discriminator.
type SingleSidedMirror struct{}

// Interact implements the Behavior interface for one-sided reflection
func (SingleSidedMirror) Interact(dir core.Vec2, hit Hit, payload core.Payload) (Result, error) {
	if len(hit.Object.Args) != 1 {
		return Result{}, fmt.Errorf("single_sided_mirror requires exactly one argument, got %d", len(hit.Object.Args))
	}
	sign := hit.Object.Args[0]
	if sign != 1 && sign != -1 {
		return Result{}, fmt.Errorf("single_sided_mirror side argument must be +1 or -1, got %g", sign)
	}

	// Pass through when the ray arrives from the transparent side
	if sign*hit.Normal.Dot(dir) >= 0 {
		return Result{Direction: dir, Payload: payload, Continue: true}, nil
	}
	n := OrientOutward(hit.Normal, dir)
	return Result{Direction: Reflect(dir, n), Payload: payload, Continue: true}, nil
}

// PartialMirror splits the ray: the continuing lineage transmits with its
// direction unchanged while a branch lineage carries the specular
// reflection.
type PartialMirror struct{}

// Interact implements the Behavior interface for beam splitting
func (PartialMirror) Interact(dir core.Vec2, hit Hit, payload core.Payload) (Result, error) {
	n := OrientOutward(hit.Normal, dir)
	return Result{
		Direction: dir,
		Branch:    Reflect(dir, n),
		HasBranch: true,
		Payload:   payload,
		Continue:  true,
	}, nil
}
