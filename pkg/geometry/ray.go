package geometry

import "math"

// Ray is a half-line starting at Origin
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray with a normalized direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

const rayEpsilon = 1e-9

// IntersectTriangle returns the ray parameter of the hit with the triangle
// using the Möller–Trumbore test. Both windings are hit; hits behind the
// origin are rejected.
func (r Ray) IntersectTriangle(tri Triangle) (float64, bool) {
	edge1 := tri.B.Sub(tri.A)
	edge2 := tri.C.Sub(tri.A)
	h := r.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1.0 / det
	s := r.Origin.Sub(tri.A)
	u := inv * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(edge1)
	v := inv * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := inv * edge2.Dot(q)
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}

// IntersectPlaneY returns the point where the ray crosses the horizontal
// plane at height y
func (r Ray) IntersectPlaneY(y float64) (Vector3, bool) {
	if math.Abs(r.Direction.Y) < rayEpsilon {
		return Vector3{}, false
	}
	t := (y - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return Vector3{}, false
	}
	return r.At(t), true
}

// IntersectPlane returns the point where the ray crosses the plane through
// point with the given normal
func (r Ray) IntersectPlane(point, normal Vector3) (Vector3, bool) {
	denom := normal.Dot(r.Direction)
	if math.Abs(denom) < rayEpsilon {
		return Vector3{}, false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return Vector3{}, false
	}
	return r.At(t), true
}
