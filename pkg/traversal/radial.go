package traversal

import (
	"math"

	"github.com/spherical-volume-rendering/go-spherical-voxel-traversal/pkg/core"
	"github.com/spherical-volume-rendering/go-spherical-voxel-traversal/pkg/geometry"
)

// radialHit determines whether the ray intersects the next radial section
// after time t. Line-sphere intersection follows the mathematics presented
// in Graphics Gems IV (Heckbert). Radial voxels are labeled 1..N..1 along a
// chord, so the step flips from +1 to -1 once the ray passes its closest
// point to the sphere center; transitioned records that flip and is owned by
// the calling traversal frame.
//
// The inputs v and rsvdMinusVSquared are the projection of the ray-sphere
// vector on the ray direction and the squared perpendicular distance from the
// center to the ray line; both are constant per traversal.
func radialHit(ray core.Ray, grid *geometry.SphericalVoxelGrid, transitioned *bool,
	currentRadialVoxel int, v, rsvdMinusVSquared, t, maxT float64) hitParameters {
	if *transitioned {
		// Moving away from the center: the only remaining crossings are the
		// far sides of successively larger shells.
		dB := math.Sqrt(grid.DeltaRadiiSquared(currentRadialVoxel-1) - rsvdMinusVSquared)
		if intersectionT := ray.TimeOfIntersectionAt(v + dB); intersectionT < maxT {
			return hitParameters{tMax: intersectionT, tStep: -1}
		}
		return noHit
	}

	previousIdx := min(currentRadialVoxel, grid.NumRadialSections()-1)
	if grid.DeltaRadiiSquared(previousIdx) < rsvdMinusVSquared {
		// The ray's closest approach to the center lies outside this shell,
		// so it can never reach it.
		previousIdx--
	}
	rA := grid.DeltaRadiiSquared(previousIdx)
	dA := math.Sqrt(rA - rsvdMinusVSquared)
	tEntrance := ray.TimeOfIntersectionAt(v - dA)
	tExit := ray.TimeOfIntersectionAt(v + dA)

	tEntranceGtT := tEntrance > t
	if tEntranceGtT && tEntrance == tExit {
		// Tangential hit.
		*transitioned = true
		return hitParameters{tMax: tEntrance, tStep: 0}
	}
	if tEntranceGtT && tEntrance < maxT {
		return hitParameters{tMax: tEntrance, tStep: 1}
	}
	if tExit < maxT {
		// tExit is the further intersection of the current sphere. Since
		// tEntrance is not within the time bounds, this is a radial
		// transition.
		*transitioned = true
		return hitParameters{tMax: tExit, tStep: -1}
	}
	return noHit
}
