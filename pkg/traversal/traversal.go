package traversal

import (
	"math"

	"github.com/spherical-volume-rendering/go-spherical-voxel-traversal/pkg/core"
	"github.com/spherical-volume-rendering/go-spherical-voxel-traversal/pkg/geometry"
)

// WalkSphericalVolume computes the ordered sequence of voxels the ray
// traverses through the grid, with the entry and exit time of each. maxT is a
// unit-less fraction of the grid's maximum diameter; the effective time bound
// is maxT * grid.SphereMaxDiameter() past the grid entry time. The result is
// empty iff the ray misses the grid or maxT <= 0.
//
// The traversal is a pure function of its inputs: it performs no I/O, holds
// no locks, and touches only the read-only grid tables, so one grid may serve
// any number of concurrent calls.
func WalkSphericalVolume(ray core.Ray, grid *geometry.SphericalVoxelGrid, maxT float64) []SphericalVoxel {
	if maxT <= 0.0 {
		return nil
	}
	// Ray-sphere vector.
	rsv := grid.SphereCenter().Subtract(ray.PointAt(0.0))
	SEDFromCenter := rsv.LengthSquared()
	// The raw comparison is deliberate here: the table is strictly
	// descending, so the scan needs no tolerance.
	radialEntranceVoxel := 0
	for SEDFromCenter < grid.DeltaRadiiSquared(radialEntranceVoxel) {
		radialEntranceVoxel++
	}
	rayOriginIsOutsideGrid := radialEntranceVoxel == 0

	vectorIndex := radialEntranceVoxel
	if !rayOriginIsOutsideGrid {
		vectorIndex--
	}
	entryRadiusSquared := grid.DeltaRadiiSquared(vectorIndex)
	entryRadius := grid.DeltaRadius() * float64(grid.NumRadialSections()-vectorIndex)

	rsvd := rsv.Dot(rsv)
	v := rsv.Dot(ray.Direction().Vec())
	rsvdMinusVSquared := rsvd - v*v
	if entryRadiusSquared <= rsvdMinusVSquared {
		return nil
	}
	d := math.Sqrt(entryRadiusSquared - rsvdMinusVSquared)
	tRayExit := ray.TimeOfIntersectionAt(v + d)
	if tRayExit < 0.0 {
		return nil
	}
	tRayEntrance := ray.TimeOfIntersectionAt(v - d)
	currentRadialVoxel := radialEntranceVoxel
	if rayOriginIsOutsideGrid {
		currentRadialVoxel++
	}

	pPolar, pAzimuthal := initializeVoxelBoundarySegments(grid, rayOriginIsOutsideGrid, entryRadius)

	// The reference vector for the angular initialization. A ray starting
	// exactly at the center has no defined angle, so the direction is
	// subtracted from the ray-sphere vector; the reference point is then one
	// unit ahead of the origin along the ray.
	var raySphere core.Vec3
	switch {
	case rayOriginIsOutsideGrid:
		raySphere = grid.SphereCenter().Subtract(ray.PointAt(tRayEntrance))
	case SEDFromCenter == 0.0:
		raySphere = rsv.Subtract(ray.Direction().Vec())
	default:
		raySphere = rsv
	}

	currentPolarVoxel := initializeAngularVoxelID(grid, grid.NumPolarSections(),
		raySphere, pPolar, raySphere.Y, grid.SphereCenter().Y, entryRadius)
	if currentPolarVoxel >= grid.NumPolarSections() {
		return nil
	}
	currentAzimuthalVoxel := initializeAngularVoxelID(grid, grid.NumAzimuthalSections(),
		raySphere, pAzimuthal, raySphere.Z, grid.SphereCenter().Z, entryRadius)
	if currentAzimuthalVoxel >= grid.NumAzimuthalSections() {
		return nil
	}

	t := 0.0
	if rayOriginIsOutsideGrid {
		t = tRayEntrance
	}
	unitizedRayTime := maxT*grid.SphereMaxDiameter() + t
	if rayOriginIsOutsideGrid {
		maxT = min(tRayExit, unitizedRayTime)
	} else {
		maxT = unitizedRayTime
	}

	// Initial capacity N_r + N_theta + N_phi. A chord through the inner
	// shells visits each radial shell twice, so the slice may grow past it.
	voxels := make([]SphericalVoxel, 0,
		grid.NumRadialSections()+grid.NumPolarSections()+grid.NumAzimuthalSections())
	voxels = append(voxels, SphericalVoxel{
		Radial:    currentRadialVoxel,
		Polar:     currentPolarVoxel,
		Azimuthal: currentAzimuthalVoxel,
		EnterT:    t,
	})

	// Times used when an angular boundary is collinear with the ray: index 1
	// holds the time at which the ray is nearest the sphere center, index 0
	// the non-collinear default of 0.
	collinearTimes := [2]float64{0.0, ray.TimeOfIntersectionAtPoint(grid.SphereCenter())}

	raySegment := core.NewRaySegment(maxT, ray)
	radialStepHasTransitioned := false
	for {
		radial := radialHit(ray, grid, &radialStepHasTransitioned,
			currentRadialVoxel, v, rsvdMinusVSquared, t, maxT)
		raySegment.UpdateAtTime(t, ray)
		polar := polarHit(ray, grid, &raySegment, collinearTimes, currentPolarVoxel, t, maxT)
		azimuthal := azimuthalHit(ray, grid, &raySegment, collinearTimes, currentAzimuthalVoxel, t, maxT)

		if currentRadialVoxel+radial.tStep == 0 ||
			(math.IsInf(radial.tMax, 1) && math.IsInf(polar.tMax, 1) && math.IsInf(azimuthal.tMax, 1)) {
			voxels[len(voxels)-1].ExitT = tRayExit
			return voxels
		}
		switch minimumIntersection(radial, polar, azimuthal) {
		case radialStep:
			t = radial.tMax
			currentRadialVoxel += radial.tStep
		case polarStep:
			if !inBoundsPolar(grid, polar.tStep, currentPolarVoxel) {
				voxels[len(voxels)-1].ExitT = tRayExit
				return voxels
			}
			t = polar.tMax
			currentPolarVoxel = wrapAngularVoxel(currentPolarVoxel+polar.tStep, grid.NumPolarSections())
		case azimuthalStep:
			if !inBoundsAzimuthal(grid, azimuthal.tStep, currentAzimuthalVoxel) {
				voxels[len(voxels)-1].ExitT = tRayExit
				return voxels
			}
			t = azimuthal.tMax
			currentAzimuthalVoxel = wrapAngularVoxel(currentAzimuthalVoxel+azimuthal.tStep, grid.NumAzimuthalSections())
		case radialPolarStep:
			if !inBoundsPolar(grid, polar.tStep, currentPolarVoxel) {
				voxels[len(voxels)-1].ExitT = tRayExit
				return voxels
			}
			t = radial.tMax
			currentRadialVoxel += radial.tStep
			currentPolarVoxel = wrapAngularVoxel(currentPolarVoxel+polar.tStep, grid.NumPolarSections())
		case radialAzimuthalStep:
			if !inBoundsAzimuthal(grid, azimuthal.tStep, currentAzimuthalVoxel) {
				voxels[len(voxels)-1].ExitT = tRayExit
				return voxels
			}
			t = radial.tMax
			currentRadialVoxel += radial.tStep
			currentAzimuthalVoxel = wrapAngularVoxel(currentAzimuthalVoxel+azimuthal.tStep, grid.NumAzimuthalSections())
		case polarAzimuthalStep:
			if !inBoundsPolar(grid, polar.tStep, currentPolarVoxel) ||
				!inBoundsAzimuthal(grid, azimuthal.tStep, currentAzimuthalVoxel) {
				voxels[len(voxels)-1].ExitT = tRayExit
				return voxels
			}
			t = polar.tMax
			currentPolarVoxel = wrapAngularVoxel(currentPolarVoxel+polar.tStep, grid.NumPolarSections())
			currentAzimuthalVoxel = wrapAngularVoxel(currentAzimuthalVoxel+azimuthal.tStep, grid.NumAzimuthalSections())
		case radialPolarAzimuthalStep:
			if !inBoundsPolar(grid, polar.tStep, currentPolarVoxel) ||
				!inBoundsAzimuthal(grid, azimuthal.tStep, currentAzimuthalVoxel) {
				voxels[len(voxels)-1].ExitT = tRayExit
				return voxels
			}
			t = radial.tMax
			currentRadialVoxel += radial.tStep
			currentPolarVoxel = wrapAngularVoxel(currentPolarVoxel+polar.tStep, grid.NumPolarSections())
			currentAzimuthalVoxel = wrapAngularVoxel(currentAzimuthalVoxel+azimuthal.tStep, grid.NumAzimuthalSections())
		}

		last := &voxels[len(voxels)-1]
		if last.Radial == currentRadialVoxel && last.Polar == currentPolarVoxel &&
			last.Azimuthal == currentAzimuthalVoxel {
			// The computed step left the indices unchanged; nothing to emit.
			continue
		}
		last.ExitT = t
		voxels = append(voxels, SphericalVoxel{
			Radial:    currentRadialVoxel,
			Polar:     currentPolarVoxel,
			Azimuthal: currentAzimuthalVoxel,
			EnterT:    t,
		})
	}
}

// wrapAngularVoxel reduces a stepped angular index into [0, n). Steps may be
// negative, or larger than one when the ray passes through the center.
func wrapAngularVoxel(voxel, n int) int {
	voxel %= n
	if voxel < 0 {
		voxel += n
	}
	return voxel
}

// initializeVoxelBoundarySegments builds the boundary point lists used by the
// angular initialization. A ray starting outside the grid enters on the
// maximum sphere, so the precomputed tables apply directly; otherwise the
// boundary points are recomputed on the sphere of the entry radius:
//
//	P1 = entryRadius * trig.Cosine + sphereCenter.X
//	P2 = entryRadius * trig.Sine + sphereCenter.{Y,Z}
func initializeVoxelBoundarySegments(grid *geometry.SphericalVoxelGrid,
	rayOriginIsOutsideGrid bool, entryRadius float64) (pPolar, pAzimuthal []geometry.LineSegment) {
	if rayOriginIsOutsideGrid {
		return grid.PMaxPolar(), grid.PMaxAzimuthal()
	}
	pPolar = make([]geometry.LineSegment, grid.NumPolarSections()+1)
	for i, tv := range grid.PolarTrigValues() {
		pPolar[i] = geometry.LineSegment{
			P1: entryRadius*tv.Cosine + grid.SphereCenter().X,
			P2: entryRadius*tv.Sine + grid.SphereCenter().Y,
		}
	}
	pAzimuthal = make([]geometry.LineSegment, grid.NumAzimuthalSections()+1)
	for i, tv := range grid.AzimuthalTrigValues() {
		pAzimuthal[i] = geometry.LineSegment{
			P1: entryRadius*tv.Cosine + grid.SphereCenter().X,
			P2: entryRadius*tv.Sine + grid.SphereCenter().Z,
		}
	}
	return pPolar, pAzimuthal
}
