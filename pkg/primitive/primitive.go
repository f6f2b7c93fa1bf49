// Package primitive builds starter solids as editable meshes by sampling
// signed distance fields with marching cubes
package primitive

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

// DefaultCells is the marching cubes resolution along the longest axis
const DefaultCells = 16

// ErrUnknownKind is returned by Build for an unsupported primitive name
var ErrUnknownKind = errors.New("unknown primitive")

// Options controls tessellation
type Options struct {
	// Cells along the longest axis; zero uses DefaultCells
	Cells int
	// WeldEpsilon merges the shared triangle corners; zero uses
	// mesh.DefaultWeldEpsilon
	WeldEpsilon float64
}

func (o Options) cells() int {
	if o.Cells <= 0 {
		return DefaultCells
	}
	return o.Cells
}

func (o Options) eps() float64 {
	if o.WeldEpsilon <= 0 {
		return mesh.DefaultWeldEpsilon
	}
	return o.WeldEpsilon
}

// Box returns a box of the given size, centered on X and Z and resting on
// the ground plane
func Box(width, height, depth float64, opts Options) (*mesh.EditableMesh, error) {
	s, err := sdf.Box3D(v3.Vec{X: width, Y: height, Z: depth}, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create box: %w", err)
	}
	return tessellate(sdf.Transform3D(s, sdf.Translate3d(v3.Vec{Y: height / 2})), opts), nil
}

// Sphere returns a sphere resting on the ground plane
func Sphere(radius float64, opts Options) (*mesh.EditableMesh, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("failed to create sphere: %w", err)
	}
	return tessellate(sdf.Transform3D(s, sdf.Translate3d(v3.Vec{Y: radius})), opts), nil
}

// Cylinder returns an upright cylinder standing on the ground plane
func Cylinder(height, radius float64, opts Options) (*mesh.EditableMesh, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create cylinder: %w", err)
	}
	// sdfx cylinders run along Z
	m := sdf.Translate3d(v3.Vec{Y: height / 2}).Mul(sdf.RotateX(-math.Pi / 2))
	return tessellate(sdf.Transform3D(s, m), opts), nil
}

// Build creates a primitive by name. Dimensions are width, height, depth for
// a box, radius for a sphere and height, radius for a cylinder.
func Build(kind string, dims []float64, opts Options) (*mesh.EditableMesh, error) {
	need := map[string]int{"box": 3, "sphere": 1, "cylinder": 2}
	kind = strings.ToLower(kind)
	n, ok := need[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if len(dims) != n {
		return nil, fmt.Errorf("%s needs %d dimensions, got %d", kind, n, len(dims))
	}
	for _, d := range dims {
		if d <= 0 {
			return nil, fmt.Errorf("%s dimensions must be positive", kind)
		}
	}
	switch kind {
	case "box":
		return Box(dims[0], dims[1], dims[2], opts)
	case "sphere":
		return Sphere(dims[0], opts)
	default:
		return Cylinder(dims[0], dims[1], opts)
	}
}

func tessellate(s sdf.SDF3, opts Options) *mesh.EditableMesh {
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(opts.cells()))

	m := mesh.New()
	for _, tri := range triangles {
		var idx [3]int
		for j := 0; j < 3; j++ {
			v := tri[j]
			idx[j] = m.AddVertex(geometry.NewVector3(v.X, v.Y, v.Z))
		}
		m.AddFace(idx[0], idx[1], idx[2])
	}
	m.Weld(opts.eps())
	return m
}
