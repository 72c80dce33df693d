package traversal

import (
	"math"

	"github.com/spherical-volume-rendering/go-spherical-voxel-traversal/pkg/core"
	"github.com/spherical-volume-rendering/go-spherical-voxel-traversal/pkg/geometry"
)

// angularHitInput carries the plane-specific inputs of the generic angular
// hit test. Polar sections live in the XY plane and azimuthal sections in the
// XZ plane; the only difference between the two tests is which second axis
// participates, so the adapters below fill this struct and share one kernel.
type angularHitInput struct {
	// Voxel boundary vectors from the boundary points toward the center.
	uMin, uMax core.Vec3

	// Vectors from the segment begin point to the two boundary points on the
	// maximum sphere.
	wMin, wMax core.Vec3

	// The second axis of the active plane: AxisY for polar, AxisZ for
	// azimuthal.
	secondAxis core.Axis

	// The ray direction and sphere center components on the second axis.
	rayDirection2 float64
	sphereCenter2 float64

	// Boundary point list of the active plane and the current voxel index in
	// it, used by the through-center perturbation.
	pMax         []geometry.LineSegment
	currentVoxel int
}

// perp returns the 2D perpendicular product of a and b in the plane spanned
// by the x axis and the given second axis.
func perp(a, b core.Vec3, secondAxis core.Axis) float64 {
	return a.X*b.Component(secondAxis) - a.Component(secondAxis)*b.X
}

// angularHit determines whether the ray hits the min or max boundary of the
// current angular voxel within (t, maxT). The segment-segment intersection
// calculations follow [Foley et al, 1996] and [O'Rourke, 1998]; see
// http://geomalgorithms.com/a05-_intersect-1.html#intersect2D_2Segments()
func angularHit(grid *geometry.SphericalVoxelGrid, ray core.Ray,
	raySegment *core.RaySegment, in angularHitInput,
	collinearTimes [2]float64, t, maxT float64) hitParameters {
	u := raySegment.Vector()
	perpUVMin := perp(in.uMin, u, in.secondAxis)
	perpUVMax := perp(in.uMax, u, in.secondAxis)
	perpUWMin := perp(in.uMin, in.wMin, in.secondAxis)
	perpUWMax := perp(in.uMax, in.wMax, in.secondAxis)
	perpVWMin := perp(u, in.wMin, in.secondAxis)
	perpVWMax := perp(u, in.wMax, in.secondAxis)

	isParallelMin := core.IsEqual(perpUVMin, 0.0)
	isCollinearMin := isParallelMin && core.IsEqual(perpUWMin, 0.0) && core.IsEqual(perpVWMin, 0.0)
	isParallelMax := core.IsEqual(perpUVMax, 0.0)
	isCollinearMax := isParallelMax && core.IsEqual(perpUWMax, 0.0) && core.IsEqual(perpVWMax, 0.0)

	tMin := collinearTime(isCollinearMin, collinearTimes)
	isIntersectMin := false
	if !isParallelMin {
		invPerpUVMin := 1.0 / perpUVMin
		a := perpVWMin * invPerpUVMin
		b := perpUWMin * invPerpUVMin
		if !(core.LessThan(a, 0.0) || core.LessThan(1.0, a) ||
			core.LessThan(b, 0.0) || core.LessThan(1.0, b)) {
			isIntersectMin = true
			tMin = raySegment.IntersectionTimeAt(b, ray)
		}
	}
	tMax := collinearTime(isCollinearMax, collinearTimes)
	isIntersectMax := false
	if !isParallelMax {
		invPerpUVMax := 1.0 / perpUVMax
		a := perpVWMax * invPerpUVMax
		b := perpUWMax * invPerpUVMax
		if !(core.LessThan(a, 0.0) || core.LessThan(1.0, a) ||
			core.LessThan(b, 0.0) || core.LessThan(1.0, b)) {
			isIntersectMax = true
			tMax = raySegment.IntersectionTimeAt(b, ray)
		}
	}

	tTMaxEq := core.IsEqual(t, tMax)
	tMaxWithinBounds := t < tMax && !tTMaxEq && tMax < maxT
	tTMinEq := core.IsEqual(t, tMin)
	tMinWithinBounds := t < tMin && !tTMinEq && tMin < maxT
	if !tMaxWithinBounds && !tMinWithinBounds {
		return noHit
	}
	if isIntersectMax && !isIntersectMin && !isCollinearMin && tMaxWithinBounds {
		return hitParameters{tMax: tMax, tStep: 1}
	}
	if isIntersectMin && !isIntersectMax && !isCollinearMax && tMinWithinBounds {
		return hitParameters{tMax: tMin, tStep: -1}
	}
	if (isIntersectMin && isIntersectMax) ||
		(isIntersectMin && isCollinearMax) ||
		(isIntersectMax && isCollinearMin) {
		minMaxEq := core.IsEqual(tMin, tMax)
		if minMaxEq && tMinWithinBounds {
			// The ray passes through the center of the plane: both boundaries
			// are hit at the same time, and the voxel index may jump by more
			// than one section. Ask in which angular cell an infinitesimal
			// step of the ray lies: (a, b) is the negated direction, used as a
			// center-minus-point vector, so the point projected onto the
			// maximum sphere lies ahead of the center along the ray.
			const perturbedT = 0.1
			a := -ray.Direction().X() * perturbedT
			b := -in.rayDirection2 * perturbedT
			maxRadiusOverPlaneLength := grid.SphereMaxRadius() / math.Sqrt(a*a+b*b)
			p1 := grid.SphereCenter().X - maxRadiusOverPlaneLength*a
			p2 := in.sphereCenter2 - maxRadiusOverPlaneLength*b
			nextStep := in.currentVoxel - angularVoxelIDFromPoints(in.pMax, p1, p2)
			if nextStep < 0 {
				nextStep = -nextStep
			}
			if ray.Direction().X() < 0.0 || in.rayDirection2 < 0.0 {
				return hitParameters{tMax: tMax, tStep: nextStep}
			}
			return hitParameters{tMax: tMax, tStep: -nextStep}
		}
		if tMinWithinBounds && ((tMin < tMax && !minMaxEq) || tTMaxEq) {
			return hitParameters{tMax: tMin, tStep: -1}
		}
		if tMaxWithinBounds && ((tMax < tMin && !minMaxEq) || tTMinEq) {
			return hitParameters{tMax: tMax, tStep: 1}
		}
	}
	return noHit
}

// collinearTime selects the precomputed time for a collinear boundary: the
// time at which the ray is nearest the sphere center, or 0 for the
// non-collinear default.
func collinearTime(isCollinear bool, collinearTimes [2]float64) float64 {
	if isCollinear {
		return collinearTimes[1]
	}
	return collinearTimes[0]
}

// polarHit determines whether a polar hit occurs for the given ray. A polar
// hit is an intersection of the ray with a polar section; the polar sections
// live in the XY plane.
func polarHit(ray core.Ray, grid *geometry.SphericalVoxelGrid, raySegment *core.RaySegment,
	collinearTimes [2]float64, currentPolarVoxel int, t, maxT float64) hitParameters {
	pMax := grid.PMaxPolar()
	pOne := core.NewPoint3(pMax[currentPolarVoxel].P1, pMax[currentPolarVoxel].P2, 0.0)
	pTwo := core.NewPoint3(pMax[currentPolarVoxel+1].P1, pMax[currentPolarVoxel+1].P2, 0.0)
	return angularHit(grid, ray, raySegment, angularHitInput{
		uMin:          grid.CenterToPolarBound(currentPolarVoxel),
		uMax:          grid.CenterToPolarBound(currentPolarVoxel + 1),
		wMin:          pOne.Subtract(raySegment.P1()),
		wMax:          pTwo.Subtract(raySegment.P1()),
		secondAxis:    core.AxisY,
		rayDirection2: ray.Direction().Y(),
		sphereCenter2: grid.SphereCenter().Y,
		pMax:          pMax,
		currentVoxel:  currentPolarVoxel,
	}, collinearTimes, t, maxT)
}

// azimuthalHit determines whether an azimuthal hit occurs for the given ray.
// An azimuthal hit is an intersection of the ray with an azimuthal section;
// the azimuthal sections live in the XZ plane.
func azimuthalHit(ray core.Ray, grid *geometry.SphericalVoxelGrid, raySegment *core.RaySegment,
	collinearTimes [2]float64, currentAzimuthalVoxel int, t, maxT float64) hitParameters {
	pMax := grid.PMaxAzimuthal()
	pOne := core.NewPoint3(pMax[currentAzimuthalVoxel].P1, 0.0, pMax[currentAzimuthalVoxel].P2)
	pTwo := core.NewPoint3(pMax[currentAzimuthalVoxel+1].P1, 0.0, pMax[currentAzimuthalVoxel+1].P2)
	return angularHit(grid, ray, raySegment, angularHitInput{
		uMin:          grid.CenterToAzimuthalBound(currentAzimuthalVoxel),
		uMax:          grid.CenterToAzimuthalBound(currentAzimuthalVoxel + 1),
		wMin:          pOne.Subtract(raySegment.P1()),
		wMax:          pTwo.Subtract(raySegment.P1()),
		secondAxis:    core.AxisZ,
		rayDirection2: ray.Direction().Z(),
		sphereCenter2: grid.SphereCenter().Z,
		pMax:          pMax,
		currentVoxel:  currentAzimuthalVoxel,
	}, collinearTimes, t, maxT)
}

// angularVoxelIDFromPoints locates the angular voxel containing the point
// (p1, p2). A point lies between two angular voxel boundaries iff the angle
// between it and the boundary intersection points along the circle of max
// radius is obtuse; equality is the case where the point lies on a boundary,
// which resolves to the lower voxel index. Returns len(angularMax) + 1 when
// the point is outside every arc.
func angularVoxelIDFromPoints(angularMax []geometry.LineSegment, p1, p2 float64) int {
	for i := 0; i+1 < len(angularMax); i++ {
		xDiff := angularMax[i].P1 - angularMax[i+1].P1
		yDiff := angularMax[i].P2 - angularMax[i+1].P2
		xP1Diff := angularMax[i].P1 - p1
		xP2Diff := angularMax[i].P2 - p2
		yP1Diff := angularMax[i+1].P1 - p1
		yP2Diff := angularMax[i+1].P2 - p2
		d1d2 := xP1Diff*xP1Diff + xP2Diff*xP2Diff + yP1Diff*yP1Diff + yP2Diff*yP2Diff
		d3 := xDiff*xDiff + yDiff*yDiff
		if d1d2 < d3 || core.IsEqual(d1d2, d3) {
			return i
		}
	}
	return len(angularMax) + 1
}

// initializeAngularVoxelID finds the initial angular voxel for the entry
// point. raySphere2 and gridSphere2 are the ray-sphere vector and sphere
// center components on the plane's second axis: y for polar, z for azimuthal.
// When the number of sections is 1, or the squared euclidean distance of the
// ray-sphere vector in the plane is zero, the voxel ID is 0. Otherwise the
// query point is the traversal point of the ray-center line with the circle
// of the entry radius, projected into the plane.
func initializeAngularVoxelID(grid *geometry.SphericalVoxelGrid, numberOfSections int,
	raySphere core.Vec3, angularMax []geometry.LineSegment,
	raySphere2, gridSphere2, entryRadius float64) int {
	if numberOfSections == 1 {
		return 0
	}
	// The strict equality is intentional: a zero projection means the plane
	// angle is undefined, not merely small.
	SED := raySphere.X*raySphere.X + raySphere2*raySphere2
	if SED == 0.0 {
		return 0
	}
	r := entryRadius / math.Sqrt(SED)
	p1 := grid.SphereCenter().X - raySphere.X*r
	p2 := gridSphere2 - raySphere2*r
	return angularVoxelIDFromPoints(angularMax, p1, p2)
}

// inBoundsPolar reports whether a polar step from the current voxel remains
// within the angular coverage of the grid. This matters only for grids
// spanning less than the full polar range.
func inBoundsPolar(grid *geometry.SphericalVoxelGrid, step, polarVoxel int) bool {
	if !core.LessThan(grid.SphereMaxBoundPolar()-grid.SphereMinBoundPolar(), 2*math.Pi) {
		// A full circle has no angular edge to leave.
		return true
	}
	radian := float64(polarVoxel+1) * grid.DeltaTheta()
	angval := radian - math.Abs(float64(step)*grid.DeltaTheta())
	return angval <= grid.SphereMaxBoundPolar() && angval >= grid.SphereMinBoundPolar()
}

// inBoundsAzimuthal reports whether an azimuthal step from the current voxel
// remains within the angular coverage of the grid. This matters only for grids
// spanning less than the full azimuthal range.
func inBoundsAzimuthal(grid *geometry.SphericalVoxelGrid, step, aziVoxel int) bool {
	if !core.LessThan(grid.SphereMaxBoundAzi()-grid.SphereMinBoundAzi(), 2*math.Pi) {
		// A full circle has no angular edge to leave.
		return true
	}
	radian := float64(aziVoxel+1) * grid.DeltaPhi()
	angval := radian - math.Abs(float64(step)*grid.DeltaPhi())
	return angval <= grid.SphereMaxBoundAzi() && angval >= grid.SphereMinBoundAzi()
}
