package geometry

import (
	"math"
	"testing"
)

func rightTriangle() Triangle {
	// Right triangle with sides 3, 4, 5
	return NewTriangle(
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)
}

func TestTriangleArea(t *testing.T) {
	area := rightTriangle().Area()
	expected := 6.0 // (3 * 4) / 2 = 6

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleNormal(t *testing.T) {
	normal := rightTriangle().Normal()
	expected := NewVector3(0, 0, 1)

	if !normal.ApproxEqual(expected, 1e-10) {
		t.Errorf("Normal failed: expected %v, got %v", expected, normal)
	}
}

func TestTriangleEdgeLengths(t *testing.T) {
	lengths := rightTriangle().EdgeLengths()

	// Expected lengths: 3, 5, 4 (Pythagorean triple)
	if math.Abs(lengths[0]-3.0) > 1e-10 {
		t.Errorf("Edge 0 length failed: expected 3.0, got %v", lengths[0])
	}
	if math.Abs(lengths[1]-5.0) > 1e-10 {
		t.Errorf("Edge 1 length failed: expected 5.0, got %v", lengths[1])
	}
	if math.Abs(lengths[2]-4.0) > 1e-10 {
		t.Errorf("Edge 2 length failed: expected 4.0, got %v", lengths[2])
	}
}

func TestTrianglePerimeter(t *testing.T) {
	perimeter := rightTriangle().Perimeter()
	expected := 12.0 // 3 + 4 + 5 = 12

	if math.Abs(perimeter-expected) > 1e-10 {
		t.Errorf("Perimeter failed: expected %v, got %v", expected, perimeter)
	}
}

func TestTriangleCentroid(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)

	center := tri.Centroid()
	expected := NewVector3(1, 1, 0)

	if !center.ApproxEqual(expected, 1e-10) {
		t.Errorf("Centroid failed: expected %v, got %v", expected, center)
	}
}

func TestTriangleDegenerate(t *testing.T) {
	collinear := NewTriangle(
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(2, 0, 0),
	)
	if !collinear.Degenerate(1e-12) {
		t.Error("Degenerate failed: collinear triangle should be degenerate")
	}
	if rightTriangle().Degenerate(1e-12) {
		t.Error("Degenerate failed: right triangle should not be degenerate")
	}
}

func TestTriangleAngles(t *testing.T) {
	angles := rightTriangle().Angles()

	if math.Abs(angles[0]-90) > 1e-10 {
		t.Errorf("Angle at A failed: expected 90, got %v", angles[0])
	}
	sum := angles[0] + angles[1] + angles[2]
	if math.Abs(sum-180) > 1e-10 {
		t.Errorf("Angle sum failed: expected 180, got %v", sum)
	}
}
