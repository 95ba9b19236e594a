package interaction

import (
	"math"
	"testing"

	"github.com/optray/go-ray-optics/pkg/core"
	"github.com/optray/go-ray-optics/pkg/scene"
)

// flatGlassHit is a hit on a horizontal refractive interface with the glass
// below, normal pointing up. The scene holds only the struck object, so a
// fresh payload reconstructs an empty medium stack.
func flatGlassHit(index float64) Hit {
	obj := scene.NewLineObject(core.NewVec2(-10, 0), core.NewVec2(10, 0), "refract", []float64{index}, 1)
	s := &scene.Scene{Objects: []*scene.Object{obj}, Revision: 1}
	return Hit{
		Ray:     core.NewRay(core.NewVec2(-1, 1), core.NewVec2(1, -1).Normalize()),
		Point:   core.NewVec2(0, 0),
		Normal:  core.NewVec2(0, 1),
		Object:  obj,
		Scene:   s,
		MinDist: 1e-4,
	}
}

func TestRefractSnellsLaw(t *testing.T) {
	rf := &Refract{Ambient: 1.0}
	hit := flatGlassHit(1.5)

	// 45° incidence from vacuum into glass
	dir := core.NewVec2(1, -1).Normalize()
	res, err := rf.Interact(dir, hit, core.Payload{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Continue || res.HasBranch {
		t.Fatalf("refraction must continue without branching, got %+v", res)
	}

	sin1 := math.Sqrt(2) / 2
	sin2 := sin1 / 1.5
	want := core.NewVec2(sin2, -math.Cos(math.Asin(sin2)))
	if !vecClose(res.Direction, want) {
		t.Errorf("Direction = %v, want %v", res.Direction, want)
	}

	// Payload now records the ray inside the glass
	if res.Payload.Refraction == nil {
		t.Fatal("refraction payload missing")
	}
	if res.Payload.Refraction.Index != 1.5 {
		t.Errorf("Index = %v, want 1.5", res.Payload.Refraction.Index)
	}
	if !res.Payload.Refraction.Stack.Contains(1) {
		t.Error("medium stack should contain the entered object")
	}
}

func TestRefractRoundTrip(t *testing.T) {
	// Entering and then exiting the same medium restores the original angle
	// and empties the stack.
	rf := &Refract{Ambient: 1.0}
	hit := flatGlassHit(1.5)
	dir := core.NewVec2(1, -1).Normalize()

	enter, err := rf.Interact(dir, hit, core.Payload{})
	if err != nil {
		t.Fatalf("enter: %v", err)
	}
	exit, err := rf.Interact(enter.Direction, hit, enter.Payload)
	if err != nil {
		t.Fatalf("exit: %v", err)
	}

	if !vecClose(exit.Direction, dir) {
		t.Errorf("exit Direction = %v, want the original %v", exit.Direction, dir)
	}
	if exit.Payload.Refraction == nil {
		t.Fatal("refraction payload missing")
	}
	if exit.Payload.Refraction.Index != 1.0 {
		t.Errorf("exit Index = %v, want ambient 1.0", exit.Payload.Refraction.Index)
	}
	if len(exit.Payload.Refraction.Stack) != 0 {
		t.Errorf("exit stack = %v, want empty", exit.Payload.Refraction.Stack)
	}
}

func TestRefractTotalInternalReflection(t *testing.T) {
	rf := &Refract{Ambient: 1.0}
	hit := flatGlassHit(1.5)
	thetaC := math.Asin(1.0 / 1.5)

	inside := core.Payload{Refraction: &core.RefractionState{
		Stack: core.MediumStack{{ZOrder: 1, Index: 1.5}},
		Index: 1.5,
	}}

	// Just past the critical angle: the interface acts as a mirror and the
	// ray stays in the glass.
	theta := thetaC + 0.01
	dir := core.NewVec2(math.Sin(theta), -math.Cos(theta))
	res, err := rf.Interact(dir, hit, inside)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := core.NewVec2(math.Sin(theta), math.Cos(theta))
	if !vecClose(res.Direction, want) {
		t.Errorf("Direction = %v, want mirror reflection %v", res.Direction, want)
	}
	if res.Payload.Refraction.Index != 1.5 {
		t.Errorf("Index = %v, want 1.5 (ray never left the glass)", res.Payload.Refraction.Index)
	}
	if !res.Payload.Refraction.Stack.Contains(1) {
		t.Error("medium stack must keep the current object after TIR")
	}

	// Just short of the critical angle: the ray escapes, strongly bent
	theta = thetaC - 0.01
	dir = core.NewVec2(math.Sin(theta), -math.Cos(theta))
	res, err = rf.Interact(dir, hit, inside)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sin2 := 1.5 * math.Sin(theta)
	want = core.NewVec2(sin2, -math.Cos(math.Asin(sin2)))
	if !vecClose(res.Direction, want) {
		t.Errorf("Direction = %v, want %v", res.Direction, want)
	}
	if res.Payload.Refraction.Index != 1.0 {
		t.Errorf("Index = %v, want ambient 1.0", res.Payload.Refraction.Index)
	}
}

func TestRefractNormalIncidence(t *testing.T) {
	rf := &Refract{Ambient: 1.0}
	hit := flatGlassHit(1.5)
	dir := core.NewVec2(0, -1)

	res, err := rf.Interact(dir, hit, core.Payload{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !vecClose(res.Direction, dir) {
		t.Errorf("Direction = %v, want unchanged %v at normal incidence", res.Direction, dir)
	}
}

func TestRefractInitialStackFromContainment(t *testing.T) {
	// A ray whose first recorded event is deep inside nested glass: the
	// enclosing body must be discovered by containment and the index change
	// computed against it, not against the ambient.
	outer := scene.NewCircleObject(core.NewVec2(0, 0), 5, "refract", []float64{1.3}, 1)
	inner := scene.NewCircleObject(core.NewVec2(0, 0), 2, "refract", []float64{1.5}, 2)
	s := &scene.Scene{Objects: []*scene.Object{outer, inner}, Revision: 1}

	hit := Hit{
		Ray:     core.NewRay(core.NewVec2(-4, 0), core.NewVec2(1, 0)),
		Point:   core.NewVec2(-2, 0),
		Normal:  core.NewVec2(-1, 0),
		Object:  inner,
		Scene:   s,
		MinDist: 1e-4,
	}

	rf := &Refract{Ambient: 1.0}
	res, err := rf.Interact(core.NewVec2(1, 0), hit, core.Payload{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := res.Payload.Refraction
	if st == nil {
		t.Fatal("refraction payload missing")
	}
	if st.Index != 1.5 {
		t.Errorf("Index = %v, want 1.5 (entered the inner body)", st.Index)
	}
	if len(st.Stack) != 2 {
		t.Fatalf("stack = %v, want outer and inner", st.Stack)
	}
	if st.Stack[0].ZOrder != 2 || st.Stack[1].ZOrder != 1 {
		t.Errorf("stack order = %v, want descending z-order [2 1]", st.Stack)
	}
}

func TestRefractValidation(t *testing.T) {
	rf := &Refract{Ambient: 1.0}
	hit := flatGlassHit(1.5)
	hit.Object.Args = []float64{1.5, 2.0}
	if _, err := rf.Interact(core.NewVec2(0, -1), hit, core.Payload{}); err == nil {
		t.Error("wrong argument count should be rejected")
	}
}
