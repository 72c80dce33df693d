package geometry

import (
	"math"

	"github.com/spherical-volume-rendering/go-spherical-voxel-traversal/pkg/core"
)

// SphereBound is one corner of the spherical grid bounds: a radius paired
// with a polar and an azimuthal angle in radians.
type SphereBound struct {
	Radial    float64
	Polar     float64
	Azimuthal float64
}

// LineSegment is a voxel boundary point in its 2D active plane. For polar
// boundaries P1, P2 are (x, y); for azimuthal boundaries they are (x, z).
type LineSegment struct {
	P1 float64
	P2 float64
}

// TrigValues holds the trigonometric values for a boundary radian.
type TrigValues struct {
	Cosine float64
	Sine   float64
}

// SphericalVoxelGrid is a partition of a sphere into voxels bounded by
// concentric spheres, meridional half-planes in the XY plane, and cones in
// the XZ plane. The deltas are (max bound - min bound) / section count. The
// boundary tables are computed once at construction so each traversal reads
// them without recomputation; the grid is immutable afterwards, and one grid
// may be shared by any number of concurrent traversals.
//
// Note the angular layout does not match textbook spherical coordinates:
// both the polar and azimuthal ranges may span up to [0, 2pi].
type SphericalVoxelGrid struct {
	numRadialSections    int
	numPolarSections     int
	numAzimuthalSections int

	sphereCenter core.Point3

	sphereMaxBoundPolar float64
	sphereMinBoundPolar float64
	sphereMaxBoundAzi   float64
	sphereMinBoundAzi   float64

	sphereMaxRadius   float64
	sphereMaxDiameter float64

	deltaRadius float64
	deltaTheta  float64
	deltaPhi    float64

	// Descending shell radii squared, used by the radial hit calculations.
	deltaRadiiSquared []float64

	polarTrigValues     []TrigValues
	azimuthalTrigValues []TrigValues

	// Boundary points on the maximum sphere, per plane.
	pMaxPolar     []LineSegment
	pMaxAzimuthal []LineSegment

	// The vectors sphere center - pMax[i], per plane.
	centerToPolarBound     []core.Vec3
	centerToAzimuthalBound []core.Vec3
}

// NewSphericalVoxelGrid creates a grid between minBound and maxBound with the
// given section counts, centered at sphereCenter.
func NewSphericalVoxelGrid(minBound, maxBound SphereBound,
	numRadialSections, numPolarSections, numAzimuthalSections int,
	sphereCenter core.Point3) *SphericalVoxelGrid {
	g := &SphericalVoxelGrid{
		numRadialSections:    numRadialSections,
		numPolarSections:     numPolarSections,
		numAzimuthalSections: numAzimuthalSections,
		sphereCenter:         sphereCenter,
		sphereMaxBoundPolar:  maxBound.Polar,
		sphereMinBoundPolar:  minBound.Polar,
		sphereMaxBoundAzi:    maxBound.Azimuthal,
		sphereMinBoundAzi:    minBound.Azimuthal,
		sphereMaxRadius:      maxBound.Radial,
		sphereMaxDiameter:    maxBound.Radial * 2.0,
		deltaRadius:          (maxBound.Radial - minBound.Radial) / float64(numRadialSections),
		deltaTheta:           (maxBound.Polar - minBound.Polar) / float64(numPolarSections),
		deltaPhi:             (maxBound.Azimuthal - minBound.Azimuthal) / float64(numAzimuthalSections),
	}
	g.deltaRadiiSquared = initializeDeltaRadiiSquared(
		numRadialSections, maxBound.Radial-minBound.Radial, g.deltaRadius)
	g.polarTrigValues = initializeTrigValues(numPolarSections, minBound.Polar, g.deltaTheta)
	g.azimuthalTrigValues = initializeTrigValues(numAzimuthalSections, minBound.Azimuthal, g.deltaPhi)
	g.pMaxPolar = initializeMaxRadiusLineSegments(
		g.polarTrigValues, sphereCenter.X, sphereCenter.Y, g.sphereMaxRadius)
	g.pMaxAzimuthal = initializeMaxRadiusLineSegments(
		g.azimuthalTrigValues, sphereCenter.X, sphereCenter.Z, g.sphereMaxRadius)
	g.centerToPolarBound = initializeCenterToBoundVectors(g.pMaxPolar, sphereCenter, core.AxisY)
	g.centerToAzimuthalBound = initializeCenterToBoundVectors(g.pMaxAzimuthal, sphereCenter, core.AxisZ)
	return g
}

// initializeDeltaRadiiSquared computes deltaRadius^2 for
// numRadialSections + 1 descending shells, beginning at maxRadius.
// For example,
//
// Given: numRadialSections = 3, maxRadius = 6, deltaRadius = 2
// Returns: { 6*6, 4*4, 2*2, 0*0 }
func initializeDeltaRadiiSquared(numRadialSections int, maxRadius, deltaRadius float64) []float64 {
	deltaRadiiSquared := make([]float64, numRadialSections+1)
	currentDeltaRadius := maxRadius
	for i := range deltaRadiiSquared {
		deltaRadiiSquared[i] = currentDeltaRadius * currentDeltaRadius
		currentDeltaRadius -= deltaRadius
	}
	return deltaRadiiSquared
}

// initializeTrigValues returns the trigonometric values of numVoxels + 1
// boundary radians, beginning at minBound and incrementing by delta.
func initializeTrigValues(numVoxels int, minBound, delta float64) []TrigValues {
	trigValues := make([]TrigValues, numVoxels+1)
	radians := minBound
	for i := range trigValues {
		trigValues[i] = TrigValues{Cosine: math.Cos(radians), Sine: math.Sin(radians)}
		radians += delta
	}
	return trigValues
}

// initializeMaxRadiusLineSegments places each boundary radian on the maximum
// sphere in its 2D plane:
// P1 = maxRadius * cosine + center1, P2 = maxRadius * sine + center2.
func initializeMaxRadiusLineSegments(trigValues []TrigValues, center1, center2, maxRadius float64) []LineSegment {
	lineSegments := make([]LineSegment, len(trigValues))
	for i, tv := range trigValues {
		lineSegments[i] = LineSegment{
			P1: maxRadius*tv.Cosine + center1,
			P2: maxRadius*tv.Sine + center2,
		}
	}
	return lineSegments
}

// initializeCenterToBoundVectors computes sphere center - pMax[i] for each
// boundary point, with the second plane axis selected by secondAxis.
func initializeCenterToBoundVectors(lineSegments []LineSegment, center core.Point3, secondAxis core.Axis) []core.Vec3 {
	vectors := make([]core.Vec3, 0, len(lineSegments))
	for _, points := range lineSegments {
		if secondAxis == core.AxisY {
			vectors = append(vectors, center.Subtract(core.NewPoint3(points.P1, points.P2, 0.0)))
		} else {
			vectors = append(vectors, center.Subtract(core.NewPoint3(points.P1, 0.0, points.P2)))
		}
	}
	return vectors
}

// NumRadialSections returns the number of radial sections
func (g *SphericalVoxelGrid) NumRadialSections() int { return g.numRadialSections }

// NumPolarSections returns the number of polar sections
func (g *SphericalVoxelGrid) NumPolarSections() int { return g.numPolarSections }

// NumAzimuthalSections returns the number of azimuthal sections
func (g *SphericalVoxelGrid) NumAzimuthalSections() int { return g.numAzimuthalSections }

// SphereMaxBoundPolar returns the maximum polar bound in radians
func (g *SphericalVoxelGrid) SphereMaxBoundPolar() float64 { return g.sphereMaxBoundPolar }

// SphereMinBoundPolar returns the minimum polar bound in radians
func (g *SphericalVoxelGrid) SphereMinBoundPolar() float64 { return g.sphereMinBoundPolar }

// SphereMaxBoundAzi returns the maximum azimuthal bound in radians
func (g *SphericalVoxelGrid) SphereMaxBoundAzi() float64 { return g.sphereMaxBoundAzi }

// SphereMinBoundAzi returns the minimum azimuthal bound in radians
func (g *SphericalVoxelGrid) SphereMinBoundAzi() float64 { return g.sphereMinBoundAzi }

// SphereMaxRadius returns the maximum radius of the sphere
func (g *SphericalVoxelGrid) SphereMaxRadius() float64 { return g.sphereMaxRadius }

// SphereMaxDiameter returns the maximum diameter of the sphere
func (g *SphericalVoxelGrid) SphereMaxDiameter() float64 { return g.sphereMaxDiameter }

// SphereCenter returns the center of the sphere
func (g *SphericalVoxelGrid) SphereCenter() core.Point3 { return g.sphereCenter }

// DeltaRadius returns the radial thickness of one shell
func (g *SphericalVoxelGrid) DeltaRadius() float64 { return g.deltaRadius }

// DeltaTheta returns the angular width of one polar section
func (g *SphericalVoxelGrid) DeltaTheta() float64 { return g.deltaTheta }

// DeltaPhi returns the angular width of one azimuthal section
func (g *SphericalVoxelGrid) DeltaPhi() float64 { return g.deltaPhi }

// DeltaRadiiSquared returns the squared radius of the i-th descending shell
func (g *SphericalVoxelGrid) DeltaRadiiSquared(i int) float64 { return g.deltaRadiiSquared[i] }

// PMaxPolar returns the polar boundary points on the maximum sphere
func (g *SphericalVoxelGrid) PMaxPolar() []LineSegment { return g.pMaxPolar }

// PMaxAzimuthal returns the azimuthal boundary points on the maximum sphere
func (g *SphericalVoxelGrid) PMaxAzimuthal() []LineSegment { return g.pMaxAzimuthal }

// CenterToPolarBound returns the vector sphere center - pMaxPolar[i]
func (g *SphericalVoxelGrid) CenterToPolarBound(i int) core.Vec3 { return g.centerToPolarBound[i] }

// CenterToAzimuthalBound returns the vector sphere center - pMaxAzimuthal[i]
func (g *SphericalVoxelGrid) CenterToAzimuthalBound(i int) core.Vec3 {
	return g.centerToAzimuthalBound[i]
}

// PolarTrigValues returns the trigonometric values of the polar boundaries
func (g *SphericalVoxelGrid) PolarTrigValues() []TrigValues { return g.polarTrigValues }

// AzimuthalTrigValues returns the trigonometric values of the azimuthal
// boundaries
func (g *SphericalVoxelGrid) AzimuthalTrigValues() []TrigValues { return g.azimuthalTrigValues }
