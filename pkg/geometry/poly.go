package geometry

import (
	"fmt"
	"math"

	"github.com/optray/go-ray-optics/pkg/core"
)

// coeffEpsilon is the threshold below which a leading polynomial
// coefficient is treated as zero when reducing the intersection equation.
const coeffEpsilon = 1e-12

// PolySegment is a parametric polynomial curve of order 1-3: a straight
// line, quadratic or cubic defined by 2-4 control points. Immutable once
// constructed.
type PolySegment struct {
	points []core.Vec2
	coeffs [4]core.Vec2 // power basis: P(t) = c[0]*t³ + c[1]*t² + c[2]*t + c[3]
}

// NewPolySegment creates a polynomial segment from 2-4 control points
func NewPolySegment(points ...core.Vec2) (*PolySegment, error) {
	if len(points) < 2 || len(points) > 4 {
		return nil, fmt.Errorf("polynomial segment needs 2-4 control points, got %d", len(points))
	}
	s := &PolySegment{points: append([]core.Vec2(nil), points...)}
	s.coeffs = powerBasis(points)
	return s, nil
}

// NewLineSegment creates an order-1 segment between two points
func NewLineSegment(p0, p1 core.Vec2) *PolySegment {
	s, _ := NewPolySegment(p0, p1)
	return s
}

// Order returns the polynomial order (1-3)
func (s *PolySegment) Order() int {
	return len(s.points) - 1
}

// Start returns the first control point
func (s *PolySegment) Start() core.Vec2 {
	return s.points[0]
}

// End returns the last control point
func (s *PolySegment) End() core.Vec2 {
	return s.points[len(s.points)-1]
}

// Midpoint returns the point halfway along the curve parameter
func (s *PolySegment) Midpoint() core.Vec2 {
	return s.At(0.5)
}

// At evaluates the curve at parameter t
func (s *PolySegment) At(t float64) core.Vec2 {
	c := s.coeffs
	return c[3].Add(c[2].Multiply(t)).Add(c[1].Multiply(t * t)).Add(c[0].Multiply(t * t * t))
}

// Tangent returns the (unnormalized) curve derivative at parameter t
func (s *PolySegment) Tangent(t float64) core.Vec2 {
	c := s.coeffs
	return c[2].Add(c[1].Multiply(2 * t)).Add(c[0].Multiply(3 * t * t))
}

// Intersect finds the nearest forward intersection of the ray with the
// curve. The returned normal is the curve tangent rotated +90° and
// normalized; its orientation relative to the ray is not corrected.
func (s *PolySegment) Intersect(ray core.Ray, minDist float64) (Intersection, bool) {
	bestT, bestAlpha, ok := s.solve(ray, minDist, nil)
	if !ok {
		return Intersection{}, false
	}
	return Intersection{
		Point:    ray.At(bestAlpha),
		Normal:   s.Tangent(bestT).Perp().Normalize(),
		Distance: bestAlpha,
	}, true
}

// Crossings counts every valid forward intersection of the ray with the curve
func (s *PolySegment) Crossings(ray core.Ray, minDist float64) int {
	count := 0
	s.solve(ray, minDist, func(t, alpha float64) {
		count++
	})
	return count
}

// solve finds intersection parameters of the ray with the curve. When visit
// is nil it returns the (t, alpha) pair with minimum alpha; otherwise it
// calls visit for every valid pair.
//
// Substituting the ray b + alpha*d into P(t) and eliminating alpha via the
// 2x2 system's cross-determinant yields cross(P(t)-b, d) = 0, a polynomial
// in t of degree at most 3.
func (s *PolySegment) solve(ray core.Ray, minDist float64, visit func(t, alpha float64)) (float64, float64, bool) {
	b, d := ray.Origin, ray.Direction
	c := s.coeffs

	full := []float64{
		c[0].Cross(d),
		c[1].Cross(d),
		c[2].Cross(d),
		c[3].Subtract(b).Cross(d),
	}

	// Drop leading near-zero coefficients before root finding. If nothing
	// remains the problem is degenerate (e.g. the ray is parallel to a
	// straight segment) and there is no usable intersection.
	lead := 0
	for lead < len(full) && math.Abs(full[lead]) < coeffEpsilon {
		lead++
	}
	if lead >= len(full)-1 {
		return 0, 0, false
	}

	roots, err := RootsInUnit(full[lead:])
	if err != nil || len(roots) == 0 {
		return 0, 0, false
	}

	bestT, bestAlpha := 0.0, math.Inf(1)
	found := false
	for _, t := range roots {
		alpha, ok := s.alphaAt(t, b, d)
		if !ok || alpha <= minDist {
			continue
		}
		if visit != nil {
			visit(t, alpha)
			continue
		}
		if alpha < bestAlpha {
			bestT, bestAlpha = t, alpha
			found = true
		}
	}
	return bestT, bestAlpha, found
}

// alphaAt recovers the ray parameter for a curve parameter t, using
// whichever ray-direction component is larger in magnitude.
func (s *PolySegment) alphaAt(t float64, b, d core.Vec2) (float64, bool) {
	p := s.At(t)
	if math.Abs(d.X) >= math.Abs(d.Y) {
		if d.X == 0 {
			return 0, false
		}
		return (p.X - b.X) / d.X, true
	}
	return (p.Y - b.Y) / d.Y, true
}

// powerBasis converts 2-4 control points to power-basis coefficients,
// zero-padded at the high end for lower orders.
func powerBasis(points []core.Vec2) [4]core.Vec2 {
	var c [4]core.Vec2
	switch len(points) {
	case 2:
		c[3] = points[0]
		c[2] = points[1].Subtract(points[0])
	case 3:
		c[3] = points[0]
		c[2] = points[1].Subtract(points[0]).Multiply(2)
		c[1] = points[0].Subtract(points[1].Multiply(2)).Add(points[2])
	case 4:
		c[3] = points[0]
		c[2] = points[1].Subtract(points[0]).Multiply(3)
		c[1] = points[0].Multiply(3).Subtract(points[1].Multiply(6)).Add(points[2].Multiply(3))
		c[0] = points[3].Subtract(points[0]).Add(points[1].Subtract(points[2]).Multiply(3))
	}
	return c
}
