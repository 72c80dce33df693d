package core

import "gonum.org/v1/gonum/floats/scalar"

// Epsilons used for the floating point comparisons in Knuth's algorithm
// (The Art of Computer Programming, §4.2.2, Eq. 36 and 37). Every tolerant
// comparison in the traversal goes through this file so the tolerances have a
// single definition site.
const (
	absEpsilon = 1e-12
	relEpsilon = 1e-8
)

// IsEqual determines equality between two floating point numbers using an
// absolute epsilon for values near zero and a relative epsilon otherwise.
func IsEqual(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, absEpsilon, relEpsilon)
}

// IsEqualVec3 determines component-wise Knuth equality between two vectors.
func IsEqualVec3(a, b Vec3) bool {
	return IsEqual(a.X, b.X) && IsEqual(a.Y, b.Y) && IsEqual(a.Z, b.Z)
}

// LessThan checks that a is strictly less than b under the same tolerances.
func LessThan(a, b float64) bool {
	return a < b && !IsEqual(a, b)
}
