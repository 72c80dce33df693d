package traversal

import (
	"math"

	"github.com/spherical-volume-rendering/go-spherical-voxel-traversal/pkg/core"
)

// SphericalVoxel identifies one voxel crossed by a ray, along with the ray
// times at which the ray enters and exits it. Radial indices are 1-based and
// decrease away from the sphere center; 0 means outside the outermost shell.
// Polar and azimuthal indices are 0-based.
type SphericalVoxel struct {
	Radial    int
	Polar     int
	Azimuthal int
	EnterT    float64
	ExitT     float64
}

// hitParameters is the result of a radial, polar, or azimuthal hit test.
type hitParameters struct {
	// tMax is the time at which the ray crosses the next boundary of the
	// tested kind.
	tMax float64

	// tStep is the signed index change applied when the boundary is crossed:
	// 0, +1, -1, or a larger jump when the ray passes through the center.
	tStep int
}

// noHit signals that no intersection time X with t < X < maxT exists.
var noHit = hitParameters{tMax: math.Inf(1), tStep: 0}

// voxelIntersectionType classifies which boundary, or simultaneous set of
// boundaries, carries the minimal tMax for a traversal step.
type voxelIntersectionType int

const (
	radialStep voxelIntersectionType = iota + 1
	polarStep
	azimuthalStep
	radialPolarStep
	radialAzimuthalStep
	polarAzimuthalStep
	radialPolarAzimuthalStep
)

// minimumIntersection classifies the voxel(s) with the minimal tMax for the
// next intersection. The cases:
// 1. tMaxR is the minimum.
// 2. tMaxTheta is the minimum.
// 3. tMaxPhi is the minimum.
// 4. tMaxR, tMaxTheta, tMaxPhi equal intersection.
// 5. tMaxR, tMaxTheta equal intersection.
// 6. tMaxR, tMaxPhi equal intersection.
// 7. tMaxTheta, tMaxPhi equal intersection.
// Ties are decided with IsEqual so that a simultaneous crossing updates every
// involved index at the same time value.
func minimumIntersection(radial, polar, azimuthal hitParameters) voxelIntersectionType {
	rpEq := core.IsEqual(radial.tMax, polar.tMax)
	raEq := core.IsEqual(radial.tMax, azimuthal.tMax)
	rpLt := radial.tMax < polar.tMax
	raLt := radial.tMax < azimuthal.tMax
	if rpLt && !rpEq && raLt && !raEq {
		return radialStep
	}

	paEq := core.IsEqual(polar.tMax, azimuthal.tMax)
	paLt := polar.tMax < azimuthal.tMax
	switch {
	case !rpLt && !rpEq && paLt && !paEq:
		return polarStep
	case !paLt && !paEq && !raLt && !raEq:
		return azimuthalStep
	case rpEq && raEq:
		return radialPolarAzimuthalStep
	case paEq:
		return polarAzimuthalStep
	case rpEq:
		return radialPolarStep
	default:
		return radialAzimuthalStep
	}
}
