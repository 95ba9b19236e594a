package geometry

import (
	"fmt"
	"sort"
)

// RootsInUnit returns all real roots in [0,1] of a polynomial of degree 1-3.
// Coefficients are given highest degree first and the leading coefficient
// must be nonzero; passing a zero leading coefficient is a precondition
// violation reported as an error.
//
// Degree 1 solves directly. Higher degrees locate the critical points from
// the derivative (a strictly smaller instance of the same problem), then
// isolate one root per sign change between consecutive evaluation points by
// monotone bisection. Each bracket holds exactly one root, so bisection
// converges without multiplicity or oscillation issues.
func RootsInUnit(coeffs []float64) ([]float64, error) {
	degree := len(coeffs) - 1
	if degree < 1 || degree > 3 {
		return nil, fmt.Errorf("polynomial degree must be 1-3, got %d", degree)
	}
	if coeffs[0] == 0 {
		return nil, fmt.Errorf("leading coefficient must be nonzero")
	}

	if degree == 1 {
		root := -coeffs[1] / coeffs[0]
		if root < 0 || root > 1 {
			return nil, nil
		}
		return []float64{root}, nil
	}

	// Critical points of the polynomial are roots of its derivative. The
	// derivative's leading coefficient is degree*coeffs[0], nonzero by the
	// check above.
	critical, err := RootsInUnit(derivative(coeffs))
	if err != nil {
		return nil, err
	}

	// Evaluation grid: {0, 1} plus the critical points, sorted and deduped.
	points := append([]float64{0, 1}, critical...)
	sort.Float64s(points)
	points = dedupe(points)

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = evalPoly(coeffs, p)
	}

	// If every extreme value sits strictly on one side of zero there is no
	// root in [0,1]. A zero value is itself a root, so it clears both flags.
	allPositive, allNegative := true, true
	for _, v := range values {
		if v >= 0 {
			allNegative = false
		}
		if v <= 0 {
			allPositive = false
		}
	}
	if allPositive || allNegative {
		return nil, nil
	}

	var roots []float64
	for i := 0; i+1 < len(points); i++ {
		if values[i] == 0 {
			roots = append(roots, points[i])
		}
		if values[i]*values[i+1] < 0 {
			roots = append(roots, bisect(coeffs, points[i], points[i+1]))
		}
	}
	if last := len(points) - 1; values[last] == 0 {
		roots = append(roots, points[last])
	}

	sort.Float64s(roots)
	return dedupe(roots), nil
}

// derivative returns the coefficients of the polynomial's derivative,
// highest degree first.
func derivative(coeffs []float64) []float64 {
	degree := len(coeffs) - 1
	out := make([]float64, degree)
	for i := 0; i < degree; i++ {
		out[i] = coeffs[i] * float64(degree-i)
	}
	return out
}

// evalPoly evaluates the polynomial at t by direct summation
func evalPoly(coeffs []float64, t float64) float64 {
	sum := 0.0
	power := 1.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		sum += coeffs[i] * power
		power *= t
	}
	return sum
}

// bisect isolates the single root known to lie in [lo,hi], where the
// polynomial changes sign across the interval. Runs until the midpoint
// collapses onto an endpoint, i.e. to floating-point precision.
func bisect(coeffs []float64, lo, hi float64) float64 {
	fLo := evalPoly(coeffs, lo)
	for {
		mid := (lo + hi) / 2
		if mid == lo || mid == hi {
			return mid
		}
		fMid := evalPoly(coeffs, mid)
		if fMid == 0 {
			return mid
		}
		if (fLo < 0) == (fMid < 0) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}
}

// dedupe removes consecutive duplicates from a sorted slice
func dedupe(sorted []float64) []float64 {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
