package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/picking"
)

const (
	minDistance = 0.1
	maxPitch    = math.Pi/2 - 0.1
)

// Camera is a perspective orbit camera around Target
type Camera struct {
	Position  geometry.Vector3
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // vertical field of view in radians
	Aspect    float64
	Near      float64
	Far       float64
	Distance  float64
	RotationX float64 // pitch
	RotationY float64 // yaw
}

// NewCamera creates a camera looking down at a bounding box from an
// elevated corner
func NewCamera(bbox geometry.BoundingBox) *Camera {
	distance := 3.0
	if !bbox.Empty() {
		size := bbox.Size()
		distance = math.Max(distance, math.Max(size.X, math.Max(size.Y, size.Z))*2.0)
	}
	c := &Camera{
		Target:    bbox.Center(),
		Up:        geometry.NewVector3(0, 1, 0),
		FOV:       math.Pi / 4,
		Aspect:    1,
		Near:      0.01,
		Far:       1000,
		Distance:  distance,
		RotationX: math.Pi / 6,
		RotationY: math.Pi / 4,
	}
	c.UpdatePosition()
	return c
}

// UpdatePosition places the camera on a sphere around Target from the
// rotation angles
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate orbits the camera by the given angles
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX = math.Max(-maxPitch, math.Min(maxPitch, c.RotationX+deltaX))
	c.RotationY += deltaY
	c.UpdatePosition()
}

// Zoom changes the camera distance by a relative amount
func (c *Camera) Zoom(delta float64) {
	c.Distance = math.Max(minDistance, c.Distance*(1.0+delta))
	c.UpdatePosition()
}

// Frame moves the orbit target to center and fits a sphere of the given
// radius into the view
func (c *Camera) Frame(center geometry.Vector3, radius float64) {
	c.Target = center
	if radius > 0 {
		c.Distance = math.Max(minDistance, radius/math.Sin(c.FOV/2))
	}
	c.UpdatePosition()
}

func vec(v geometry.Vector3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// View returns the world-to-camera matrix
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(vec(c.Position), vec(c.Target), vec(c.Up))
}

// Projection returns the perspective matrix
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// ProjectDepth projects a world point to normalized device coordinates and
// returns its depth in [-1, 1]. ok is false for points behind the camera.
func (c *Camera) ProjectDepth(p geometry.Vector3) (picking.NDC, float64, bool) {
	clip := c.ViewProjection().Mul4x1(vec(p).Vec4(1))
	if clip.W() <= c.Near {
		return picking.NDC{}, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	return picking.NDC{X: ndc.X(), Y: ndc.Y()}, ndc.Z(), true
}

// Project projects a world point to normalized device coordinates
func (c *Camera) Project(p geometry.Vector3) (picking.NDC, bool) {
	ndc, _, ok := c.ProjectDepth(p)
	return ndc, ok
}

// Ray returns the ray from the near plane through the screen position
func (c *Camera) Ray(p picking.NDC) geometry.Ray {
	inv := c.ViewProjection().Inv()
	unproject := func(z float64) geometry.Vector3 {
		v := inv.Mul4x1(mgl64.Vec4{p.X, p.Y, z, 1})
		w := v.W()
		return geometry.NewVector3(v.X()/w, v.Y()/w, v.Z()/w)
	}
	near := unproject(-1)
	far := unproject(1)
	return geometry.NewRay(near, far.Sub(near))
}
