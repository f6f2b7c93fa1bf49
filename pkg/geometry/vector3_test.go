package geometry

import (
	"math"
	"testing"
)

func TestVector3Add(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	v1 := NewVector3(5, 7, 9)
	v2 := NewVector3(1, 2, 3)
	result := v1.Sub(v2)

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Length(t *testing.T) {
	v := NewVector3(3, 4, 0)
	length := v.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector3Distance(t *testing.T) {
	v1 := NewVector3(0, 0, 0)
	v2 := NewVector3(3, 4, 0)
	distance := v1.Distance(v2)

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestVector3Normalize(t *testing.T) {
	v := NewVector3(3, 4, 0)
	normalized := v.Normalize()

	expectedLength := 1.0
	actualLength := normalized.Length()

	if math.Abs(actualLength-expectedLength) > 1e-10 {
		t.Errorf("Normalize failed: expected length %v, got %v", expectedLength, actualLength)
	}
}

func TestVector3Cross(t *testing.T) {
	v1 := NewVector3(1, 0, 0)
	v2 := NewVector3(0, 1, 0)
	result := v1.Cross(v2)

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Dot(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Dot(v2)

	expected := 32.0 // 1*4 + 2*5 + 3*6 = 32
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Lerp(t *testing.T) {
	v1 := NewVector3(0, 0, 0)
	v2 := NewVector3(2, 4, -2)
	result := v1.Lerp(v2, 0.25)

	expected := NewVector3(0.5, 1, -0.5)
	if result != expected {
		t.Errorf("Lerp failed: expected %v, got %v", expected, result)
	}
}

func TestVector3WithLength(t *testing.T) {
	v := NewVector3(0, 3, 4)
	result := v.WithLength(10)

	expected := NewVector3(0, 6, 8)
	if !result.ApproxEqual(expected, 1e-10) {
		t.Errorf("WithLength failed: expected %v, got %v", expected, result)
	}

	if zero := (Vector3{}).WithLength(5); zero != (Vector3{}) {
		t.Errorf("WithLength of zero vector failed: expected zero, got %v", zero)
	}
}

func TestVector3Snap(t *testing.T) {
	v := NewVector3(0.74, -0.26, 1.25)
	result := v.Snap(0.5)

	expected := NewVector3(0.5, -0.5, 1.5)
	if !result.ApproxEqual(expected, 1e-10) {
		t.Errorf("Snap failed: expected %v, got %v", expected, result)
	}

	if same := v.Snap(0); same != v {
		t.Errorf("Snap with zero step failed: expected %v, got %v", v, same)
	}
}

func TestVector3OnlyAxis(t *testing.T) {
	v := NewVector3(1, 2, 3)

	if result := v.OnlyAxis(AxisY); result != NewVector3(0, 2, 0) {
		t.Errorf("OnlyAxis failed: expected (0,2,0), got %v", result)
	}
	if result := v.OnlyAxis(AxisNone); result != v {
		t.Errorf("OnlyAxis(None) failed: expected %v, got %v", v, result)
	}
}

func TestVector3RotateAround(t *testing.T) {
	p := NewVector3(2, 0, 0)
	pivot := NewVector3(1, 0, 0)
	result := p.RotateAround(pivot, NewVector3(0, 1, 0), math.Pi/2)

	// Rotating +X by 90 degrees about +Y ends at -Z
	expected := NewVector3(1, 0, -1)
	if !result.ApproxEqual(expected, 1e-10) {
		t.Errorf("RotateAround failed: expected %v, got %v", expected, result)
	}
}

func TestCentroid(t *testing.T) {
	points := []Vector3{
		NewVector3(0, 0, 0),
		NewVector3(2, 0, 0),
		NewVector3(0, 0, 4),
		NewVector3(2, 0, 4),
	}

	expected := NewVector3(1, 0, 2)
	if result := Centroid(points); result != expected {
		t.Errorf("Centroid failed: expected %v, got %v", expected, result)
	}
	if result := Centroid(nil); result != (Vector3{}) {
		t.Errorf("Centroid of nothing failed: expected zero, got %v", result)
	}
}
