package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

func TestExtrudeFace(t *testing.T) {
	m := NewDefault()
	normal := m.FaceNormal(0)
	const height = 0.5

	top, ok := m.ExtrudeFace(0, height)

	require.True(t, ok)
	assert.Equal(t, 1, top)
	assert.Equal(t, 1+7, m.FaceCount(), "base face kept, top and six sides added")
	require.Equal(t, 6, m.VertexCount())
	for k := 0; k < 3; k++ {
		expected := m.Vertex(k).Add(normal.Mul(height))
		assert.True(t, m.Vertex(3+k).ApproxEqual(expected, 1e-12), "vertex %d: expected %v, got %v", 3+k, expected, m.Vertex(3+k))
	}
	assert.Equal(t, Face{3, 4, 5}, m.Face(top))
	assertFacesValid(t, m)
}

func TestExtrudeSideFacesPointOutward(t *testing.T) {
	m := NewDefault()
	m.ExtrudeFace(0, 1)
	center := geometry.Centroid(m.Vertices())

	for fi := 2; fi < m.FaceCount(); fi++ {
		outward := m.FaceCentroid(fi).Sub(center)
		assert.Greater(t, m.FaceNormal(fi).Dot(outward), 0.0, "side face %d faces inward", fi)
	}
}

func TestExtrudeInvalidFace(t *testing.T) {
	m := NewDefault()
	_, ok := m.ExtrudeFace(3, 1)
	assert.False(t, ok)
	assert.Equal(t, 1, m.FaceCount())
}

func TestInsetFace(t *testing.T) {
	m := NewDefault()
	centroid := m.FaceCentroid(0)
	original := m.Vertices()

	inner, ok := m.InsetFace(0, 0.1, 0)

	require.True(t, ok)
	assert.Equal(t, 7, m.FaceCount(), "original face replaced by inner face and six ring faces")
	assert.Equal(t, 0, inner)
	assert.Equal(t, Face{3, 4, 5}, m.Face(inner))
	for k := 0; k < 3; k++ {
		before := original[k].Distance(centroid)
		after := m.Vertex(3 + k).Distance(centroid)
		assert.InDelta(t, before-0.1, after, 1e-12)
	}
	assertFacesValid(t, m)
}

func TestInsetFaceWithHeight(t *testing.T) {
	m := NewDefault()
	normal := m.FaceNormal(0)

	m.InsetFace(0, 0.1, 0.25)

	for k := 3; k < 6; k++ {
		assert.InDelta(t, 0.25, m.Vertex(k).Dot(normal), 1e-12)
	}
}

func TestSplitEdge(t *testing.T) {
	m := quad()
	n0, n1 := m.FaceNormal(0), m.FaceNormal(1)

	mid, ok := m.SplitEdge(NewEdge(0, 2))

	require.True(t, ok)
	assert.Equal(t, 4, mid)
	assert.Equal(t, geometry.NewVector3(0.5, 0, 0.5), m.Vertex(mid))
	assert.Equal(t, 4, m.FaceCount())
	for fi := 0; fi < m.FaceCount(); fi++ {
		assert.True(t, m.Face(fi).Has(mid), "face %d should use the midpoint", fi)
		n := m.FaceNormal(fi)
		assert.True(t, n.ApproxEqual(n0, 1e-12) || n.ApproxEqual(n1, 1e-12), "face %d flipped", fi)
	}
	assert.False(t, m.HasEdge(NewEdge(0, 2)))
	assertFacesValid(t, m)
}

func TestSplitEdgeWithoutFaces(t *testing.T) {
	m := quad()
	_, ok := m.SplitEdge(NewEdge(1, 3))
	assert.False(t, ok)
	assert.Equal(t, 4, m.VertexCount())
}

func TestMergeVertices(t *testing.T) {
	m := quad()

	merged, ok := m.MergeVertices([]int{1, 2})

	require.True(t, ok)
	assert.Equal(t, 1, merged)
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, geometry.NewVector3(1, 0, 0.5), m.Vertex(merged))
	assert.Equal(t, []Face{{0, 2, 1}}, m.Faces(), "face using both merged vertices collapses")
	assertFacesValid(t, m)
}

func TestMergeNeedsTwoVertices(t *testing.T) {
	m := quad()
	_, ok := m.MergeVertices([]int{1, 1, 99})
	assert.False(t, ok)
	assert.Equal(t, 4, m.VertexCount())
}

func TestDuplicateFaces(t *testing.T) {
	m := NewDefault()
	normal := m.FaceNormal(0)

	created := m.DuplicateFaces([]int{0})

	require.Equal(t, []int{1}, created)
	assert.Equal(t, 6, m.VertexCount())
	for k := 0; k < 3; k++ {
		expected := m.Vertex(k).Add(normal.Mul(DuplicateOffset))
		assert.True(t, m.Vertex(3+k).ApproxEqual(expected, 1e-12))
	}
}

func TestDuplicateVerticesAndEdge(t *testing.T) {
	m := NewDefault()

	created := m.DuplicateVertices([]int{1, 1})
	require.Equal(t, []int{3}, created)
	assert.Equal(t, geometry.NewVector3(1.05, 0, 0), m.Vertex(3))

	created = m.DuplicateEdge(NewEdge(0, 2))
	require.Equal(t, []int{4, 5}, created)
	assert.Equal(t, geometry.NewVector3(0.05, 0, 1), m.Vertex(5))
	assert.Equal(t, 1, m.FaceCount())
}

func TestDeleteFacesAndEdge(t *testing.T) {
	m := quad()
	assert.Equal(t, 2, m.DeleteEdge(NewEdge(0, 2)))
	assert.Equal(t, 0, m.FaceCount())
	assert.Equal(t, 4, m.VertexCount())

	m = quad()
	assert.Equal(t, 1, m.DeleteFaces([]int{1, 1, 5}))
	assert.Equal(t, []Face{{0, 2, 1}}, m.Faces())
}

func TestDeleteVertices(t *testing.T) {
	m := quad()
	m.RemoveFaceAt(1)

	removed, inUse := m.DeleteVertices([]int{3, 0})

	assert.Equal(t, 1, removed)
	assert.Equal(t, []int{0}, inUse)
	assert.Equal(t, 3, m.VertexCount())
	assertFacesValid(t, m)
}

func TestIndexInvariantAcrossOperations(t *testing.T) {
	m := NewDefault()
	m.ExtrudeFace(0, 1)
	m.InsetFace(1, 0.05, 0.1)
	m.SplitEdge(m.Edges()[0])
	m.MirrorX(DefaultWeldEpsilon)
	m.MergeVertices([]int{0, 1})
	m.DuplicateFaces([]int{0, 2})
	m.DeleteFaces([]int{3})
	m.RemoveIsolatedVertices()
	m.Smooth(2, 0.3)
	m.Sync()

	assertFacesValid(t, m)
}
