package geometry

import "math"

// Triangle is a triangle given by three corners in counter-clockwise order
type Triangle struct {
	A, B, C Vector3
}

// NewTriangle creates a triangle from its corners
func NewTriangle(a, b, c Vector3) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// AreaVector returns (B-A) x (C-A); its length is twice the area
func (t Triangle) AreaVector() Vector3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// Normal returns the unit normal following the right-hand rule
func (t Triangle) Normal() Vector3 {
	return t.AreaVector().Normalize()
}

// Area returns the surface area
func (t Triangle) Area() float64 {
	return t.AreaVector().Length() / 2.0
}

// Degenerate reports whether the triangle has (near) zero area
func (t Triangle) Degenerate(eps float64) bool {
	return t.AreaVector().Length() <= eps
}

// EdgeLengths returns |AB|, |BC| and |CA|
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.A.Distance(t.B),
		t.B.Distance(t.C),
		t.C.Distance(t.A),
	}
}

// Perimeter returns the sum of the edge lengths
func (t Triangle) Perimeter() float64 {
	l := t.EdgeLengths()
	return l[0] + l[1] + l[2]
}

// Centroid returns the mean of the corners
func (t Triangle) Centroid() Vector3 {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}

// Angles returns the interior angles at A, B and C in degrees
func (t Triangle) Angles() [3]float64 {
	angle := func(at, p, q Vector3) float64 {
		u := p.Sub(at).Normalize()
		w := q.Sub(at).Normalize()
		d := math.Max(-1, math.Min(1, u.Dot(w)))
		return math.Acos(d) * 180 / math.Pi
	}
	return [3]float64{
		angle(t.A, t.B, t.C),
		angle(t.B, t.C, t.A),
		angle(t.C, t.A, t.B),
	}
}
