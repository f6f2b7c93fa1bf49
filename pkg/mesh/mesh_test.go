package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

// quad builds two triangles sharing the edge (0, 2) on the ground plane
func quad() *EditableMesh {
	m := New()
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	m.AddVertex(geometry.NewVector3(1, 0, 0))
	m.AddVertex(geometry.NewVector3(1, 0, 1))
	m.AddVertex(geometry.NewVector3(0, 0, 1))
	m.AddFace(0, 2, 1)
	m.AddFace(0, 3, 2)
	return m
}

func assertFacesValid(t *testing.T, m *EditableMesh) {
	t.Helper()
	for i, f := range m.Faces() {
		for _, idx := range f {
			assert.True(t, idx >= 0 && idx < m.VertexCount(), "face %d index %d out of range", i, idx)
		}
		assert.True(t, f[0] != f[1] && f[1] != f[2] && f[0] != f[2], "face %d repeats a vertex: %v", i, f)
	}
}

func TestNewDefault(t *testing.T) {
	m := NewDefault()

	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 1, m.FaceCount())
	assert.Equal(t, Face{0, 1, 2}, m.Face(0))
	assert.Equal(t, geometry.NewVector3(0, 0, 1), m.Vertex(2))
}

func TestAddFaceRejectsInvalid(t *testing.T) {
	m := NewDefault()
	before := m.Faces()

	assert.False(t, m.AddFace(0, 0, 1))
	assert.False(t, m.AddFace(0, 1, 1))
	assert.False(t, m.AddFace(2, 1, 2))
	assert.False(t, m.AddFace(0, 1, 3))
	assert.False(t, m.AddFace(-1, 1, 2))

	assert.Equal(t, before, m.Faces())
}

func TestRemoveFaceAt(t *testing.T) {
	m := quad()

	m.RemoveFaceAt(5)
	assert.Equal(t, 2, m.FaceCount())

	m.RemoveFaceAt(0)
	require.Equal(t, 1, m.FaceCount())
	assert.Equal(t, Face{0, 3, 2}, m.Face(0))
	assert.Equal(t, 4, m.VertexCount())
}

func TestRemoveVertexIfIsolated(t *testing.T) {
	m := New()
	for i := 0; i < 4; i++ {
		m.AddVertex(geometry.NewVector3(float64(i), 0, float64(i%2)))
	}
	require.True(t, m.AddFace(0, 2, 3))

	assert.True(t, m.RemoveVertexIfIsolated(1))
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, []Face{{0, 1, 2}}, m.Faces())

	assert.False(t, m.RemoveVertexIfIsolated(0))
	assert.False(t, m.RemoveVertexIfIsolated(7))
	assert.Equal(t, 3, m.VertexCount())
}

func TestRemoveIsolatedVertices(t *testing.T) {
	m := quad()
	m.AddVertex(geometry.NewVector3(5, 5, 5))
	m.AddVertex(geometry.NewVector3(6, 6, 6))

	assert.Equal(t, 2, m.RemoveIsolatedVertices())
	assert.Equal(t, 4, m.VertexCount())
	assertFacesValid(t, m)
}

func TestSyncDirtyFlag(t *testing.T) {
	m := NewDefault()
	require.True(t, m.NeedsSync())

	first := m.Sync()
	assert.False(t, m.NeedsSync())
	assert.Same(t, first, m.Sync(), "sync without mutation must reuse buffers")

	m.SetVertex(1, geometry.NewVector3(2, 0, 0))
	assert.True(t, m.NeedsSync())
	second := m.Sync()
	assert.NotSame(t, first, second)
	assert.Greater(t, second.Version, first.Version)
	assert.Equal(t, float32(2), second.Positions[3])
}

func TestSyncBuffers(t *testing.T) {
	m := NewDefault()
	b := m.Sync()

	require.Equal(t, 9, len(b.Positions))
	require.Equal(t, 9, len(b.Normals))
	assert.Equal(t, 1, b.TriangleCount())
	// (1,0,0) x (0,0,1) points down
	for k := 0; k < 3; k++ {
		assert.Equal(t, []float32{0, -1, 0}, b.Normals[k*3:k*3+3])
	}
	assert.Len(t, b.Points, 9)
	assert.Len(t, b.Lines, 3*6)
}

func TestSyncPrunesDegenerateFaces(t *testing.T) {
	m := NewDefault()
	m.SetVertex(2, geometry.NewVector3(0.5, 0, 0))

	b := m.Sync()
	assert.Equal(t, 0, m.FaceCount())
	assert.Equal(t, 0, b.TriangleCount())
	assert.Empty(t, m.Edges())
}

func TestSyncCountsPrunes(t *testing.T) {
	m := quad()
	m.Sync()
	assert.Equal(t, uint64(0), m.Prunes())

	m.SetVertex(3, geometry.NewVector3(0, 0, 0))
	m.Sync()
	assert.Equal(t, uint64(1), m.Prunes())
	assert.Equal(t, []Face{{0, 2, 1}}, m.Faces())

	m.SetVertex(1, geometry.NewVector3(2, 0, 0))
	m.Sync()
	assert.Equal(t, uint64(1), m.Prunes(), "sync without degenerate faces")
	assert.Equal(t, uint64(1), m.Clone().Prunes())
}

func TestEdgesSliceSurvivesRebuild(t *testing.T) {
	m := quad()
	held := m.Edges()
	before := append([]Edge(nil), held...)

	m.RemoveFaceAt(0)
	m.AddFace(1, 2, 3)
	assert.NotEqual(t, before, m.Edges())
	assert.Equal(t, before, held)
}

func TestEdges(t *testing.T) {
	m := quad()

	edges := m.Edges()
	assert.Equal(t, []Edge{{0, 2}, {1, 2}, {0, 1}, {0, 3}, {2, 3}}, edges)
	assert.ElementsMatch(t, []int{0, 1}, m.EdgeFaces(NewEdge(2, 0)))
	assert.Equal(t, []int{1}, m.EdgeFaces(Edge{2, 3}))
	assert.False(t, m.HasEdge(Edge{1, 3}))
}

func TestBuildAdjacency(t *testing.T) {
	m := quad()
	m.AddVertex(geometry.NewVector3(9, 9, 9))

	adj := m.BuildAdjacency()
	require.Len(t, adj, 5)
	assert.Equal(t, []int{1, 2, 3}, adj[0])
	assert.Equal(t, []int{0, 2}, adj[1])
	assert.Empty(t, adj[4])
}

func TestSmooth(t *testing.T) {
	m := New()
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	m.AddVertex(geometry.NewVector3(2, 0, 0))
	m.AddVertex(geometry.NewVector3(0, 0, 2))
	m.AddVertex(geometry.NewVector3(7, 7, 7))
	m.AddFace(0, 1, 2)
	version := m.Version()

	m.Smooth(1, 0.5)

	// vertex 0 moves halfway to (1,0,1)
	assert.True(t, m.Vertex(0).ApproxEqual(geometry.NewVector3(0.5, 0, 0.5), 1e-12), "got %v", m.Vertex(0))
	assert.Equal(t, geometry.NewVector3(7, 7, 7), m.Vertex(3), "isolated vertex must not move")
	assert.Equal(t, version+1, m.Version())

	m.Smooth(0, 0.5)
	assert.Equal(t, version+1, m.Version())
}

func TestWeldMergesCoincidentVertices(t *testing.T) {
	m := New()
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	m.AddVertex(geometry.NewVector3(1, 0, 0))
	m.AddVertex(geometry.NewVector3(0, 0, 1))
	m.AddVertex(geometry.NewVector3(1.00001, 0, 0))
	m.AddVertex(geometry.NewVector3(1, 0, 1))
	m.AddFace(0, 1, 2)
	m.AddFace(3, 4, 2)

	merged := m.Weld(1e-3)

	assert.Equal(t, 1, merged)
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, geometry.NewVector3(1, 0, 0), m.Vertex(1), "first vertex stays canonical")
	assert.Equal(t, []Face{{0, 1, 2}, {1, 3, 2}}, m.Faces())
}

func TestWeldAcrossCellBoundary(t *testing.T) {
	m := New()
	m.AddVertex(geometry.NewVector3(0.0999, 0, 0))
	m.AddVertex(geometry.NewVector3(0.1001, 0, 0))

	assert.Equal(t, 1, m.Weld(0.1))
	assert.Equal(t, 1, m.VertexCount())
}

func TestWeldHugeCoordinates(t *testing.T) {
	m := New()
	m.AddVertex(geometry.NewVector3(1e14, 0, 0))
	m.AddVertex(geometry.NewVector3(2e14, 0, 0))
	m.AddVertex(geometry.NewVector3(-1e14, 0, 0))
	m.AddVertex(geometry.NewVector3(1e14, 0, 0))

	assert.Equal(t, 1, m.Weld(1e-6))
	assert.Equal(t, []geometry.Vector3{
		geometry.NewVector3(1e14, 0, 0),
		geometry.NewVector3(2e14, 0, 0),
		geometry.NewVector3(-1e14, 0, 0),
	}, m.Vertices())
}

func TestWeldDropsCollapsedFaces(t *testing.T) {
	m := New()
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	m.AddVertex(geometry.NewVector3(0, 0, 0.00001))
	m.AddVertex(geometry.NewVector3(1, 0, 0))
	m.AddFace(0, 1, 2)

	m.Weld(1e-3)
	assert.Equal(t, 0, m.FaceCount())
	assertFacesValid(t, m)
}

func TestMirrorSingleVertex(t *testing.T) {
	m := New()
	m.AddVertex(geometry.NewVector3(1, 0, 0))

	m.MirrorX(DefaultWeldEpsilon)

	require.Equal(t, 2, m.VertexCount())
	assert.Equal(t, geometry.NewVector3(-1, 0, 0), m.Vertex(1))
}

func TestMirrorSharesPlaneVertices(t *testing.T) {
	m := New()
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	m.AddVertex(geometry.NewVector3(1, 0, 0))
	m.AddVertex(geometry.NewVector3(0, 0, 1))
	m.AddFace(0, 2, 1)
	normal := m.FaceNormal(0)

	m.MirrorX(DefaultWeldEpsilon)

	assert.Equal(t, 4, m.VertexCount(), "plane vertices are shared")
	require.Equal(t, 2, m.FaceCount())
	assert.Equal(t, Face{3, 2, 0}, m.Face(1))
	assert.True(t, m.FaceNormal(1).ApproxEqual(normal, 1e-12), "reversed winding keeps the mirrored face facing the same way")
	assertFacesValid(t, m)
}

func TestMirrorPartners(t *testing.T) {
	m := New()
	m.AddVertex(geometry.NewVector3(1, 0, 0))
	m.AddVertex(geometry.NewVector3(-1, 0, 0))
	m.AddVertex(geometry.NewVector3(0, 1, 0))
	m.AddVertex(geometry.NewVector3(2, 0, 0))

	partners := m.MirrorPartners([]int{0, 2, 3}, DefaultWeldEpsilon)
	assert.Equal(t, map[int]int{0: 1, 2: 2}, partners)
}

func TestLiveSymmetryFlag(t *testing.T) {
	m := NewDefault()
	m.Sync()

	m.SetLiveSymmetryX(true)
	assert.True(t, m.LiveSymmetryX())
	assert.True(t, m.NeedsSync())
	assert.True(t, m.ToJSON().LiveSymmetryX)
}

func TestClone(t *testing.T) {
	m := quad()
	c := m.Clone()
	c.SetVertex(0, geometry.NewVector3(9, 9, 9))

	assert.Equal(t, geometry.NewVector3(0, 0, 0), m.Vertex(0))
	assert.Equal(t, m.Faces(), c.Faces())
}
