package geometry

import (
	"fmt"
	"math"

	"github.com/optray/go-ray-optics/pkg/core"
)

// ArcSegment is a section of a rotated ellipse. Start/end angles are in
// radians; T1 > T2 means the arc is traversed in the decreasing-angle
// direction, and the span may exceed a full turn. Immutable once
// constructed.
type ArcSegment struct {
	Rx, Ry float64   // Ellipse radii
	Center core.Vec2 // Ellipse center
	Phi    float64   // Rotation of the ellipse axes, radians
	T1, T2 float64   // Start/end angles, radians
}

// NewArcSegment creates an elliptical-arc segment. Zero or negative radii
// describe a degenerate ellipse and are rejected.
func NewArcSegment(rx, ry float64, center core.Vec2, phi, t1, t2 float64) (*ArcSegment, error) {
	if rx <= 0 || ry <= 0 {
		return nil, fmt.Errorf("ellipse radii must be positive, got rx=%g ry=%g", rx, ry)
	}
	return &ArcSegment{Rx: rx, Ry: ry, Center: center, Phi: phi, T1: t1, T2: t2}, nil
}

// At evaluates the arc at ellipse angle theta
func (a *ArcSegment) At(theta float64) core.Vec2 {
	local := core.NewVec2(a.Rx*math.Cos(theta), a.Ry*math.Sin(theta))
	return local.Rotate(a.Phi).Add(a.Center)
}

// Start returns the arc's starting point
func (a *ArcSegment) Start() core.Vec2 {
	return a.At(a.T1)
}

// End returns the arc's ending point
func (a *ArcSegment) End() core.Vec2 {
	return a.At(a.T2)
}

// Intersect finds the nearest forward intersection of the ray with the arc.
// The returned normal is the local tangent rotated back to world space and
// then +90°, normalized; orientation relative to the ray is not corrected.
func (a *ArcSegment) Intersect(ray core.Ray, minDist float64) (Intersection, bool) {
	bestTheta, bestAlpha, ok := a.solve(ray, minDist, nil)
	if !ok {
		return Intersection{}, false
	}
	return Intersection{
		Point:    ray.At(bestAlpha),
		Normal:   a.normalAt(bestTheta),
		Distance: bestAlpha,
	}, true
}

// Crossings counts every valid forward intersection of the ray with the arc
func (a *ArcSegment) Crossings(ray core.Ray, minDist float64) int {
	count := 0
	a.solve(ray, minDist, func(theta, alpha float64) {
		count++
	})
	return count
}

// solve finds intersection parameters of the ray with the arc. When visit is
// nil it returns the (theta, alpha) pair with minimum alpha; otherwise it
// calls visit for every valid pair.
//
// The ray is rotated into the ellipse's unrotated local frame, where
// substituting it into the ellipse equation yields a quadratic in alpha.
func (a *ArcSegment) solve(ray core.Ray, minDist float64, visit func(theta, alpha float64)) (float64, float64, bool) {
	o := ray.Origin.Subtract(a.Center).Rotate(-a.Phi)
	d := ray.Direction.Rotate(-a.Phi)

	rx2, ry2 := a.Rx*a.Rx, a.Ry*a.Ry
	qa := d.X*d.X/rx2 + d.Y*d.Y/ry2
	qb := 2 * (o.X*d.X/rx2 + o.Y*d.Y/ry2)
	qc := o.X*o.X/rx2 + o.Y*o.Y/ry2 - 1

	discriminant := qb*qb - 4*qa*qc
	if discriminant < 0 || qa == 0 {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	bestTheta, bestAlpha := 0.0, math.Inf(1)
	found := false
	for _, alpha := range [2]float64{(-qb - sqrtD) / (2 * qa), (-qb + sqrtD) / (2 * qa)} {
		if alpha <= minDist {
			continue
		}
		p := o.Add(d.Multiply(alpha))
		theta := math.Atan2(p.Y/a.Ry, p.X/a.Rx)
		if !a.containsAngle(theta) {
			continue
		}
		if visit != nil {
			visit(theta, alpha)
			continue
		}
		if alpha < bestAlpha {
			bestTheta, bestAlpha = theta, alpha
			found = true
		}
	}
	return bestTheta, bestAlpha, found
}

// containsAngle tests whether some coterminal angle of theta lies within the
// arc's angular span, honoring reversed (T1 > T2) traversal and spans wider
// than one full turn: theta is a member exactly when an integer k satisfies
// T1 <= theta + 2πk <= T2 (or the mirrored bound when reversed).
func (a *ArcSegment) containsAngle(theta float64) bool {
	if a.T1 <= a.T2 {
		return math.Ceil((a.T1-theta)/(2*math.Pi)) <= math.Floor((a.T2-theta)/(2*math.Pi))
	}
	return math.Ceil((a.T2-theta)/(2*math.Pi)) <= math.Floor((a.T1-theta)/(2*math.Pi))
}

// normalAt returns the unit normal at ellipse angle theta: the local tangent
// rotated back by Phi, then +90°.
func (a *ArcSegment) normalAt(theta float64) core.Vec2 {
	tangent := core.NewVec2(-a.Rx*math.Sin(theta), a.Ry*math.Cos(theta))
	return tangent.Rotate(a.Phi).Perp().Normalize()
}
