package core

import "math"

// Axis indexes a component of a 3D vector. For example, Component(AxisX)
// returns the x-direction.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Vec3 represents a free 3D vector: a direction and a magnitude, with no
// fixed initial point.
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Divide returns the vector scaled by the inverse of a scalar
func (v Vec3) Divide(scalar float64) Vec3 {
	return Vec3{v.X / scalar, v.Y / scalar, v.Z / scalar}
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{
		X: -v.X,
		Y: -v.Y,
		Z: -v.Z,
	}
}

// Component returns the vector component on the given axis
func (v Vec3) Component(axis Axis) float64 {
	switch axis {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// Point3 represents a bound 3D vector: a fixed position in space relative to
// the frame of reference.
type Point3 struct {
	X, Y, Z float64
}

// NewPoint3 creates a new Point3
func NewPoint3(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// Add returns the point translated by a free vector
func (p Point3) Add(v Vec3) Point3 {
	return Point3{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Subtract returns the free vector pointing from other to p
func (p Point3) Subtract(other Point3) Vec3 {
	return Vec3{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// Component returns the point component on the given axis
func (p Point3) Component(axis Axis) float64 {
	switch axis {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// UnitVec3 is a free vector with a guaranteed length of 1. It is immutable so
// the unit length cannot drift after construction.
type UnitVec3 struct {
	inner Vec3
}

// NewUnitVec3 creates a unit vector in the direction of (x, y, z)
func NewUnitVec3(x, y, z float64) UnitVec3 {
	return UnitVec3FromVec3(Vec3{X: x, Y: y, Z: z})
}

// UnitVec3FromVec3 normalizes v into a unit vector
func UnitVec3FromVec3(v Vec3) UnitVec3 {
	return UnitVec3{inner: v.Divide(v.Length())}
}

// X returns the x component of the unit vector
func (u UnitVec3) X() float64 { return u.inner.X }

// Y returns the y component of the unit vector
func (u UnitVec3) Y() float64 { return u.inner.Y }

// Z returns the z component of the unit vector
func (u UnitVec3) Z() float64 { return u.inner.Z }

// Vec returns the unit vector as a free vector
func (u UnitVec3) Vec() Vec3 { return u.inner }

// Multiply returns the unit vector scaled by a scalar
func (u UnitVec3) Multiply(scalar float64) Vec3 {
	return u.inner.Multiply(scalar)
}

// Component returns the unit vector component on the given axis
func (u UnitVec3) Component(axis Axis) float64 {
	return u.inner.Component(axis)
}
