package traversal

import (
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/floats"

	"github.com/spherical-volume-rendering/go-spherical-voxel-traversal/pkg/core"
)

// A chord through the center of a unit sphere: entry at t = 1, exit at t = 3,
// one radial crossing every quarter shell, and both angular indices flipping
// at the center.
func TestWalkSphericalVolume_UnitSphereChordThroughCenter(t *testing.T) {
	grid := fullGrid(4, 4, 4, 1.0, core.NewPoint3(0, 0, 0))
	ray := core.NewRay(core.NewPoint3(-2, 0, 0), core.NewUnitVec3(1, 0, 0))

	voxels := WalkSphericalVolume(ray, grid, 1.0)
	verifyEqualVoxels(t, voxels,
		[]int{1, 2, 3, 4, 4, 3, 2, 1},
		[]int{1, 1, 1, 1, 0, 0, 0, 0},
		[]int{1, 1, 1, 1, 0, 0, 0, 0})

	gotEnter := make([]float64, len(voxels))
	for i, voxel := range voxels {
		gotEnter[i] = voxel.EnterT
	}
	wantEnter := []float64{1.0, 1.25, 1.5, 1.75, 2.0, 2.25, 2.5, 2.75}
	if !floats.EqualApprox(gotEnter, wantEnter, 1e-9) {
		t.Errorf("Expected enter times %v, got %v", wantEnter, gotEnter)
	}
	if last := voxels[len(voxels)-1]; math.Abs(last.ExitT-3.0) > 1e-9 {
		t.Errorf("Expected final exit time 3, got %v", last.ExitT)
	}
}

// An offset chord tangent to an inner shell: the radial index peaks at the
// tangent shell, and both angular indices step down where the ray crosses the
// quarter-plane boundaries.
func TestWalkSphericalVolume_UnitSphereOffsetChord(t *testing.T) {
	grid := fullGrid(4, 4, 4, 1.0, core.NewPoint3(0, 0, 0))
	ray := core.NewRay(core.NewPoint3(-2, 0.5, 0), core.NewUnitVec3(1, 0, 0))

	voxels := WalkSphericalVolume(ray, grid, 1.0)
	verifyEqualVoxels(t, voxels,
		[]int{1, 2, 2, 1},
		[]int{1, 1, 0, 0},
		[]int{1, 1, 0, 0})

	gotEnter := make([]float64, len(voxels))
	for i, voxel := range voxels {
		gotEnter[i] = voxel.EnterT
	}
	wantEnter := []float64{
		2.0 - math.Sqrt(0.75),
		2.0 - math.Sqrt(0.3125),
		2.0,
		2.0 + math.Sqrt(0.3125),
	}
	if !floats.EqualApprox(gotEnter, wantEnter, 1e-9) {
		t.Errorf("Expected enter times %v, got %v", wantEnter, gotEnter)
	}
	if last := voxels[len(voxels)-1]; math.Abs(last.ExitT-(2.0+math.Sqrt(0.75))) > 1e-9 {
		t.Errorf("Expected final exit time %v, got %v", 2.0+math.Sqrt(0.75), last.ExitT)
	}
}

func TestWalkSphericalVolume_MissByEpsilon(t *testing.T) {
	grid := fullGrid(4, 4, 4, 1.0, core.NewPoint3(0, 0, 0))
	ray := core.NewRay(core.NewPoint3(-2, 1.0+1e-10, 0), core.NewUnitVec3(1, 0, 0))

	if voxels := WalkSphericalVolume(ray, grid, 1.0); len(voxels) != 0 {
		t.Errorf("Expected empty traversal for a ray outside the sphere, got %d voxels", len(voxels))
	}
}

func TestWalkSphericalVolume_OriginAtCenter(t *testing.T) {
	grid := fullGrid(4, 4, 4, 1.0, core.NewPoint3(0, 0, 0))
	ray := core.NewRay(core.NewPoint3(0, 0, 0), core.NewUnitVec3(1, 0, 0))

	voxels := WalkSphericalVolume(ray, grid, 1.0)
	if len(voxels) == 0 {
		t.Fatal("Expected voxels, got none")
	}
	if voxels[0].Radial != grid.NumRadialSections() {
		t.Errorf("Expected the first voxel at the innermost shell %d, got %d",
			grid.NumRadialSections(), voxels[0].Radial)
	}
	if voxels[0].EnterT != 0 {
		t.Errorf("Expected enter time 0 for an origin inside the grid, got %v", voxels[0].EnterT)
	}
	verifyEqualVoxels(t, voxels,
		[]int{4, 3, 2, 1},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0})
}

// A ray nearly collinear with the x axis must neither stall nor emit a voxel
// twice in succession.
func TestWalkSphericalVolume_NearAxialRay(t *testing.T) {
	grid := fullGrid(4, 4, 4, 1.0, core.NewPoint3(0, 0, 0))
	ray := core.NewRay(core.NewPoint3(-2, 0, 0), core.NewUnitVec3(1, 1e-12, 0))

	voxels := WalkSphericalVolume(ray, grid, 1.0)
	if len(voxels) == 0 {
		t.Fatal("Expected voxels, got none")
	}
	if voxels[0].Radial != 1 {
		t.Errorf("Expected first radial voxel 1, got %d", voxels[0].Radial)
	}
	if last := voxels[len(voxels)-1]; last.Radial != 1 {
		t.Errorf("Expected final radial voxel 1, got %d", last.Radial)
	}
	for i := 1; i < len(voxels); i++ {
		if voxels[i].EnterT <= voxels[i-1].EnterT {
			t.Errorf("Expected strictly increasing enter times, got %v after %v",
				voxels[i].EnterT, voxels[i-1].EnterT)
		}
		if voxels[i].Radial == voxels[i-1].Radial &&
			voxels[i].Polar == voxels[i-1].Polar &&
			voxels[i].Azimuthal == voxels[i-1].Azimuthal {
			t.Errorf("Voxel %d emitted twice in succession: %+v", i, voxels[i])
		}
	}
}

func TestWalkSphericalVolume_SingleAngularSectionsArePurelyRadial(t *testing.T) {
	grid := fullGrid(4, 1, 1, 1.0, core.NewPoint3(0, 0, 0))
	ray := core.NewRay(core.NewPoint3(-2, 0, 0), core.NewUnitVec3(1, 0, 0))

	voxels := WalkSphericalVolume(ray, grid, 1.0)
	verifyEqualVoxels(t, voxels,
		[]int{1, 2, 3, 4, 3, 2, 1},
		[]int{0, 0, 0, 0, 0, 0, 0},
		[]int{0, 0, 0, 0, 0, 0, 0})
}

// Output invariants that hold for every valid traversal: contiguous time
// intervals, monotone enter times, and in-range indices.
func TestWalkSphericalVolume_OutputInvariants(t *testing.T) {
	tests := []struct {
		name         string
		rayOrigin    core.Point3
		rayDirection core.UnitVec3
		maxT         float64
	}{
		{name: "outside diagonal", rayOrigin: core.NewPoint3(-13, -13, -13), rayDirection: core.NewUnitVec3(1, 1, 1), maxT: 1.0},
		{name: "inside oblique", rayOrigin: core.NewPoint3(-3, 4, 5), rayDirection: core.NewUnitVec3(1, -1, -1), maxT: 1.0},
		{name: "truncated by maxT", rayOrigin: core.NewPoint3(13, -15, 16), rayDirection: core.NewUnitVec3(-1.5, 1.2, -1.5), maxT: 0.5},
		{name: "negative octant", rayOrigin: core.NewPoint3(15, 12, 15), rayDirection: core.NewUnitVec3(-1.4, -2.0, -1.3), maxT: 1.0},
	}

	grid := fullGrid(4, 4, 4, 10.0, core.NewPoint3(0, 0, 0))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			voxels := WalkSphericalVolume(ray, grid, tt.maxT)
			if len(voxels) == 0 {
				t.Fatal("Expected voxels, got none")
			}
			originInside := tt.rayOrigin.Subtract(core.NewPoint3(0, 0, 0)).Length() < grid.SphereMaxRadius()
			if originInside && voxels[0].EnterT != 0 {
				t.Errorf("Expected enter time 0 for an origin inside the grid, got %v", voxels[0].EnterT)
			}
			for i, voxel := range voxels {
				if voxel.EnterT > voxel.ExitT {
					t.Errorf("Voxel %d: enter time %v after exit time %v", i, voxel.EnterT, voxel.ExitT)
				}
				if voxel.Radial < 1 || voxel.Radial > grid.NumRadialSections() {
					t.Errorf("Voxel %d: radial index %d out of range", i, voxel.Radial)
				}
				if voxel.Polar < 0 || voxel.Polar >= grid.NumPolarSections() {
					t.Errorf("Voxel %d: polar index %d out of range", i, voxel.Polar)
				}
				if voxel.Azimuthal < 0 || voxel.Azimuthal >= grid.NumAzimuthalSections() {
					t.Errorf("Voxel %d: azimuthal index %d out of range", i, voxel.Azimuthal)
				}
				if i == 0 {
					continue
				}
				if voxels[i-1].ExitT != voxel.EnterT {
					t.Errorf("Voxel %d: exit time %v does not match next enter time %v",
						i-1, voxels[i-1].ExitT, voxel.EnterT)
				}
				if voxel.EnterT <= voxels[i-1].EnterT {
					t.Errorf("Voxel %d: enter time %v not strictly after %v",
						i, voxel.EnterT, voxels[i-1].EnterT)
				}
			}
		})
	}
}

// Reversing a chord yields the same voxels, visited in reverse.
func TestWalkSphericalVolume_DirectionSymmetry(t *testing.T) {
	grid := fullGrid(4, 4, 4, 10.0, core.NewPoint3(0, 0, 0))
	forward := WalkSphericalVolume(
		core.NewRay(core.NewPoint3(-13, -13, -13), core.NewUnitVec3(1, 1, 1)), grid, 1.0)
	backward := WalkSphericalVolume(
		core.NewRay(core.NewPoint3(13, 13, 13), core.NewUnitVec3(-1, -1, -1)), grid, 1.0)

	indexTriples := func(voxels []SphericalVoxel) [][3]int {
		triples := make([][3]int, len(voxels))
		for i, voxel := range voxels {
			triples[i] = [3]int{voxel.Radial, voxel.Polar, voxel.Azimuthal}
		}
		sort.Slice(triples, func(a, b int) bool {
			for k := 0; k < 3; k++ {
				if triples[a][k] != triples[b][k] {
					return triples[a][k] < triples[b][k]
				}
			}
			return false
		})
		return triples
	}
	if diff := cmp.Diff(indexTriples(forward), indexTriples(backward)); diff != "" {
		t.Errorf("Voxel multiset mismatch between directions (-forward +backward):\n%s", diff)
	}
}

// Sampling the midpoint of each voxel interval and recomputing its indices
// from the point must reproduce the emitted indices.
func TestWalkSphericalVolume_MidpointContainment(t *testing.T) {
	grid := fullGrid(4, 4, 4, 10.0, core.NewPoint3(0, 0, 0))
	ray := core.NewRay(core.NewPoint3(-13, -13, -13), core.NewUnitVec3(1, 1, 1))

	voxels := WalkSphericalVolume(ray, grid, 1.0)
	if len(voxels) == 0 {
		t.Fatal("Expected voxels, got none")
	}
	const tolerance = 1e-9
	for i, voxel := range voxels {
		mid := ray.PointAt((voxel.EnterT + voxel.ExitT) / 2.0)
		fromCenter := mid.Subtract(core.NewPoint3(0, 0, 0))

		radius := fromCenter.Length()
		outer := float64(grid.NumRadialSections()-voxel.Radial+1) * grid.DeltaRadius()
		inner := float64(grid.NumRadialSections()-voxel.Radial) * grid.DeltaRadius()
		if radius > outer+tolerance || radius < inner-tolerance {
			t.Errorf("Voxel %d: midpoint radius %v outside shell [%v, %v]", i, radius, inner, outer)
		}

		polarAngle := math.Atan2(fromCenter.Y, fromCenter.X)
		if polarAngle < 0 {
			polarAngle += tau
		}
		if low := float64(voxel.Polar) * grid.DeltaTheta(); polarAngle < low-tolerance ||
			polarAngle > low+grid.DeltaTheta()+tolerance {
			t.Errorf("Voxel %d: midpoint polar angle %v outside section %d", i, polarAngle, voxel.Polar)
		}

		aziAngle := math.Atan2(fromCenter.Z, fromCenter.X)
		if aziAngle < 0 {
			aziAngle += tau
		}
		if low := float64(voxel.Azimuthal) * grid.DeltaPhi(); aziAngle < low-tolerance ||
			aziAngle > low+grid.DeltaPhi()+tolerance {
			t.Errorf("Voxel %d: midpoint azimuthal angle %v outside section %d", i, aziAngle, voxel.Azimuthal)
		}
	}
}

func BenchmarkWalkSphericalVolume(b *testing.B) {
	grid := fullGrid(64, 64, 64, 10e4, core.NewPoint3(0, 0, 0))
	ray := core.NewRay(core.NewPoint3(-13e3, -13e3, -13e3), core.NewUnitVec3(1, 1, 1))

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if voxels := WalkSphericalVolume(ray, grid, 1.0); len(voxels) == 0 {
			b.Fatal("expected voxels")
		}
	}
}
