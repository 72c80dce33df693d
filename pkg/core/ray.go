package core

// Ray represents a ray with an origin and a unit direction. The inverse
// direction and the index of a non-zero direction component are cached at
// construction so they are not recomputed on each intersection query.
type Ray struct {
	origin       Point3
	direction    UnitVec3
	invDirection Vec3
	nonZeroAxis  Axis
}

// NewRay creates a new ray from an origin and a unit direction
func NewRay(origin Point3, direction UnitVec3) Ray {
	return Ray{
		origin:       origin,
		direction:    direction,
		invDirection: NewVec3(1.0/direction.X(), 1.0/direction.Y(), 1.0/direction.Z()),
		nonZeroAxis:  nonZeroDirectionAxis(direction),
	}
}

// nonZeroDirectionAxis determines an axis on which the direction is non-zero.
// A unit direction has at least one such component.
func nonZeroDirectionAxis(direction UnitVec3) Axis {
	if direction.X() != 0.0 {
		return AxisX
	}
	if direction.Y() != 0.0 {
		return AxisY
	}
	return AxisZ
}

// PointAt returns the point p(t) = origin + t * direction
func (r Ray) PointAt(t float64) Point3 {
	return r.origin.Add(r.direction.Multiply(t))
}

// TimeOfIntersectionAt converts a scalar s along the ray, already produced by
// a line-sphere quadratic, into a ray time. The point at s is
// origin + direction * s, so the time on the cached non-zero axis a reduces
// to ((origin_a + direction_a * s) - origin_a) / direction_a, a single
// multiplication. This is numerically safer than reconstructing the 3D point
// and differencing when one direction component dominates.
func (r Ray) TimeOfIntersectionAt(s float64) float64 {
	return r.direction.Component(r.nonZeroAxis) * s * r.invDirection.Component(r.nonZeroAxis)
}

// TimeOfIntersectionAtPoint returns the ray time at which the ray reaches the
// point p, using the cached non-zero direction component.
func (r Ray) TimeOfIntersectionAtPoint(p Point3) float64 {
	return (p.Component(r.nonZeroAxis) - r.origin.Component(r.nonZeroAxis)) *
		r.invDirection.Component(r.nonZeroAxis)
}

// Origin returns the origin of the ray
func (r Ray) Origin() Point3 { return r.origin }

// Direction returns the unit direction of the ray
func (r Ray) Direction() UnitVec3 { return r.direction }

// InvDirection returns the cached component-wise inverse of the direction
func (r Ray) InvDirection() Vec3 { return r.invDirection }

// NonZeroDirectionAxis returns the cached axis of a non-zero direction
// component
func (r Ray) NonZeroDirectionAxis() Axis { return r.nonZeroAxis }

// RaySegment is a view over the sub-interval [t, maxT] of a ray. The end
// point P2 is fixed for the lifetime of a traversal while P1 is moved forward
// to the current time with UpdateAtTime. The segment vector P2 - P1 feeds the
// 2D perpendicular products of the angular hit tests.
type RaySegment struct {
	p2          Point3
	nonZeroAxis Axis
	p1          Point3
	vector      Vec3
}

// NewRaySegment creates a segment ending at the ray's position at maxT
func NewRaySegment(maxT float64, ray Ray) RaySegment {
	return RaySegment{
		p2:          ray.PointAt(maxT),
		nonZeroAxis: ray.NonZeroDirectionAxis(),
	}
}

// UpdateAtTime moves the segment begin point P1 to the ray's position at time
// t and recomputes the segment vector P2 - P1
func (s *RaySegment) UpdateAtTime(t float64, ray Ray) {
	s.p1 = ray.PointAt(t)
	s.vector = s.p2.Subtract(s.p1)
}

// IntersectionTimeAt converts an intersection parameter b in [0, 1] along the
// segment into a ray time. See
// http://geomalgorithms.com/a05-_intersect-1.html#intersect2D_2Segments()
func (s *RaySegment) IntersectionTimeAt(intersectParameter float64, ray Ray) float64 {
	a := s.nonZeroAxis
	return (s.p1.Component(a) + s.vector.Component(a)*intersectParameter -
		ray.Origin().Component(a)) * ray.InvDirection().Component(a)
}

// P1 returns the begin point of the segment
func (s *RaySegment) P1() Point3 { return s.p1 }

// P2 returns the end point of the segment
func (s *RaySegment) P2() Point3 { return s.p2 }

// Vector returns the segment vector P2 - P1
func (s *RaySegment) Vector() Vec3 { return s.vector }
