package geometry

import "math"

// Vector3 represents a 3D point or vector
type Vector3 struct {
	X, Y, Z float64
}

// Axis names one of the three coordinate axes
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
)

// String returns the lower-case axis name
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "none"
	}
}

// Unit returns the unit vector along the axis, or the zero vector for AxisNone
func (a Axis) Unit() Vector3 {
	switch a {
	case AxisX:
		return Vector3{X: 1}
	case AxisY:
		return Vector3{Y: 1}
	case AxisZ:
		return Vector3{Z: 1}
	default:
		return Vector3{}
	}
}

// NewVector3 creates a new 3D vector
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns the difference between two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Mul multiplies the vector by a scalar
func (v Vector3) Mul(scalar float64) Vector3 {
	return Vector3{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// Scale multiplies the vector component-wise
func (v Vector3) Scale(other Vector3) Vector3 {
	return Vector3{X: v.X * other.X, Y: v.Y * other.Y, Z: v.Z * other.Z}
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the distance between two points
func (v Vector3) Distance(other Vector3) float64 {
	return v.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction
func (v Vector3) Normalize() Vector3 {
	length := v.Length()
	if length == 0 {
		return Vector3{}
	}
	return v.Mul(1.0 / length)
}

// WithLength returns a vector in the same direction with the given magnitude.
// The zero vector stays zero.
func (v Vector3) WithLength(length float64) Vector3 {
	return v.Normalize().Mul(length)
}

// Lerp interpolates linearly towards other by t
func (v Vector3) Lerp(other Vector3, t float64) Vector3 {
	return v.Add(other.Sub(v).Mul(t))
}

// Negate returns the vector pointing the opposite way
func (v Vector3) Negate() Vector3 {
	return Vector3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// MirrorX reflects the point across the YZ plane
func (v Vector3) MirrorX() Vector3 {
	return Vector3{X: -v.X, Y: v.Y, Z: v.Z}
}

// Snap rounds every component to the nearest multiple of step
func (v Vector3) Snap(step float64) Vector3 {
	if step <= 0 {
		return v
	}
	return Vector3{
		X: SnapValue(v.X, step),
		Y: SnapValue(v.Y, step),
		Z: SnapValue(v.Z, step),
	}
}

// SnapValue rounds a single value to the nearest multiple of step
func SnapValue(value, step float64) float64 {
	if step <= 0 {
		return value
	}
	return math.Round(value/step) * step
}

// Component returns the value along the given axis
func (v Vector3) Component(axis Axis) float64 {
	switch axis {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	default:
		return 0
	}
}

// OnlyAxis keeps the component along axis and zeroes the others.
// AxisNone returns the vector unchanged.
func (v Vector3) OnlyAxis(axis Axis) Vector3 {
	if axis == AxisNone {
		return v
	}
	return axis.Unit().Mul(v.Component(axis))
}

// ApproxEqual reports whether every component differs by less than eps
func (v Vector3) ApproxEqual(other Vector3, eps float64) bool {
	return math.Abs(v.X-other.X) < eps &&
		math.Abs(v.Y-other.Y) < eps &&
		math.Abs(v.Z-other.Z) < eps
}

// Min returns a vector with the minimum components of two vectors
func (v Vector3) Min(other Vector3) Vector3 {
	return Vector3{
		X: math.Min(v.X, other.X),
		Y: math.Min(v.Y, other.Y),
		Z: math.Min(v.Z, other.Z),
	}
}

// Max returns a vector with the maximum components of two vectors
func (v Vector3) Max(other Vector3) Vector3 {
	return Vector3{
		X: math.Max(v.X, other.X),
		Y: math.Max(v.Y, other.Y),
		Z: math.Max(v.Z, other.Z),
	}
}

// Centroid returns the arithmetic mean of the points, or the zero vector when empty
func Centroid(points []Vector3) Vector3 {
	if len(points) == 0 {
		return Vector3{}
	}
	var sum Vector3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(points)))
}

// RotateAround rotates the point around an axis through pivot by angle radians
// (Rodrigues' rotation formula). A zero axis leaves the point unchanged.
func (v Vector3) RotateAround(pivot, axis Vector3, angle float64) Vector3 {
	k := axis.Normalize()
	if k == (Vector3{}) {
		return v
	}
	p := v.Sub(pivot)
	cos, sin := math.Cos(angle), math.Sin(angle)
	rotated := p.Mul(cos).
		Add(k.Cross(p).Mul(sin)).
		Add(k.Mul(k.Dot(p) * (1 - cos)))
	return rotated.Add(pivot)
}
