// Package stl reads and writes STL files and converts them to and from
// editable meshes
package stl

import (
	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

// Model is an unindexed triangle soup as stored in an STL file
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates an empty model
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// AddTriangle appends a triangle
func (m *Model) AddTriangle(t geometry.Triangle) {
	m.Triangles = append(m.Triangles, t)
}

// TriangleCount returns the number of triangles
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox returns the bounds of all corners
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, t := range m.Triangles {
		bbox.Extend(t.A)
		bbox.Extend(t.B)
		bbox.Extend(t.C)
	}
	return bbox
}

// SurfaceArea returns the summed triangle area
func (m *Model) SurfaceArea() float64 {
	total := 0.0
	for _, t := range m.Triangles {
		total += t.Area()
	}
	return total
}

// FromMesh copies the faces of m into a model
func FromMesh(m *mesh.EditableMesh, name string) *Model {
	model := NewModel(name)
	model.Triangles = make([]geometry.Triangle, 0, m.FaceCount())
	for i := 0; i < m.FaceCount(); i++ {
		model.AddTriangle(m.Triangle(i))
	}
	return model
}

// ToMesh builds an editable mesh, sharing corners closer than eps. Faces
// that collapse while welding are dropped.
func (m *Model) ToMesh(eps float64) *mesh.EditableMesh {
	out := mesh.New()
	for _, t := range m.Triangles {
		a := out.AddVertex(t.A)
		b := out.AddVertex(t.B)
		c := out.AddVertex(t.C)
		out.AddFace(a, b, c)
	}
	out.Weld(eps)
	return out
}
