// Package mesh implements an editable indexed triangle mesh.
//
// Vertices are addressed by index only. Structural edits keep the index
// space dense: removals compact and remap face references, insertions
// append. Every mutation marks the mesh dirty and bumps its version; Sync
// derives render buffers and edge topology from the current state.
package mesh

import (
	"github.com/philipparndt/gomesh/pkg/geometry"
)

// Face is a triangle given by three vertex indices in counter-clockwise order
type Face [3]int

// Has reports whether the face references vertex i
func (f Face) Has(i int) bool {
	return f[0] == i || f[1] == i || f[2] == i
}

func (f Face) distinct() bool {
	return f[0] != f[1] && f[1] != f[2] && f[0] != f[2]
}

// EditableMesh owns vertex positions and triangle topology
type EditableMesh struct {
	vertices      []geometry.Vector3
	faces         []Face
	liveSymmetryX bool

	needsSync bool
	version   uint64
	prunes    uint64
	buffers   *Buffers

	topologyStale bool
	edges         []Edge
	edgeFaces     map[Edge][]int
}

// New creates an empty mesh
func New() *EditableMesh {
	return &EditableMesh{needsSync: true, topologyStale: true}
}

// NewDefault creates the seed mesh used when no saved document exists:
// a single triangle on the ground plane
func NewDefault() *EditableMesh {
	m := New()
	a := m.AddVertex(geometry.NewVector3(0, 0, 0))
	b := m.AddVertex(geometry.NewVector3(1, 0, 0))
	c := m.AddVertex(geometry.NewVector3(0, 0, 1))
	m.AddFace(a, b, c)
	return m
}

// Clone returns a deep copy of the mesh. The copy needs a sync.
func (m *EditableMesh) Clone() *EditableMesh {
	c := New()
	c.vertices = append([]geometry.Vector3(nil), m.vertices...)
	c.faces = append([]Face(nil), m.faces...)
	c.liveSymmetryX = m.liveSymmetryX
	c.version = m.version
	c.prunes = m.prunes
	return c
}

// markDirty records a mutation. structural is true when face or vertex
// indices changed, which invalidates the derived edges.
func (m *EditableMesh) markDirty(structural bool) {
	m.needsSync = true
	m.version++
	if structural {
		m.topologyStale = true
	}
}

// NeedsSync reports whether a mutation happened since the last Sync
func (m *EditableMesh) NeedsSync() bool {
	return m.needsSync
}

// Version returns a counter that increases with every mutation
func (m *EditableMesh) Version() uint64 {
	return m.version
}

// Prunes counts the Syncs that dropped degenerate faces. Face indices held
// across a change of this counter are stale.
func (m *EditableMesh) Prunes() uint64 {
	return m.prunes
}

// VertexCount returns the number of vertices
func (m *EditableMesh) VertexCount() int {
	return len(m.vertices)
}

// FaceCount returns the number of faces
func (m *EditableMesh) FaceCount() int {
	return len(m.faces)
}

// Vertex returns the position of vertex i
func (m *EditableMesh) Vertex(i int) geometry.Vector3 {
	return m.vertices[i]
}

// Face returns face i
func (m *EditableMesh) Face(i int) Face {
	return m.faces[i]
}

// Vertices returns a copy of all vertex positions
func (m *EditableMesh) Vertices() []geometry.Vector3 {
	return append([]geometry.Vector3(nil), m.vertices...)
}

// Faces returns a copy of all faces
func (m *EditableMesh) Faces() []Face {
	return append([]Face(nil), m.faces...)
}

// Triangle returns the corner positions of face i
func (m *EditableMesh) Triangle(i int) geometry.Triangle {
	return m.triangleOf(m.faces[i])
}

func (m *EditableMesh) triangleOf(f Face) geometry.Triangle {
	return geometry.NewTriangle(m.vertices[f[0]], m.vertices[f[1]], m.vertices[f[2]])
}

// Bounds returns the bounding box of all vertices
func (m *EditableMesh) Bounds() geometry.BoundingBox {
	return geometry.BoundsOf(m.vertices)
}

// LiveSymmetryX reports whether edits are mirrored across the YZ plane
func (m *EditableMesh) LiveSymmetryX() bool {
	return m.liveSymmetryX
}

// SetLiveSymmetryX toggles live X symmetry. The flag is part of the document.
func (m *EditableMesh) SetLiveSymmetryX(on bool) {
	if m.liveSymmetryX == on {
		return
	}
	m.liveSymmetryX = on
	m.markDirty(false)
}

// AddVertex appends a vertex and returns its index
func (m *EditableMesh) AddVertex(p geometry.Vector3) int {
	m.vertices = append(m.vertices, p)
	m.markDirty(true)
	return len(m.vertices) - 1
}

// SetVertex moves vertex i. Out of range indices are ignored.
func (m *EditableMesh) SetVertex(i int, p geometry.Vector3) {
	if i < 0 || i >= len(m.vertices) {
		return
	}
	m.vertices[i] = p
	m.markDirty(false)
}

func (m *EditableMesh) validFace(f Face) bool {
	for _, i := range f {
		if i < 0 || i >= len(m.vertices) {
			return false
		}
	}
	return f.distinct()
}

// AddFace appends the triangle (a, b, c). It returns false and leaves the
// mesh untouched when an index is out of range or two indices are equal.
func (m *EditableMesh) AddFace(a, b, c int) bool {
	f := Face{a, b, c}
	if !m.validFace(f) {
		return false
	}
	m.faces = append(m.faces, f)
	m.markDirty(true)
	return true
}

// RemoveFaceAt removes face i. Vertices are kept even if they become
// isolated. Out of range indices are ignored.
func (m *EditableMesh) RemoveFaceAt(i int) {
	if i < 0 || i >= len(m.faces) {
		return
	}
	m.faces = append(m.faces[:i], m.faces[i+1:]...)
	m.markDirty(true)
}

// VertexInUse reports whether any face references vertex i
func (m *EditableMesh) VertexInUse(i int) bool {
	for _, f := range m.faces {
		if f.Has(i) {
			return true
		}
	}
	return false
}

// RemoveVertexIfIsolated removes vertex i when no face references it and
// shifts higher face indices down. It returns false without mutating when
// the vertex is in use or out of range.
func (m *EditableMesh) RemoveVertexIfIsolated(i int) bool {
	if i < 0 || i >= len(m.vertices) || m.VertexInUse(i) {
		return false
	}
	keep := make([]bool, len(m.vertices))
	for j := range keep {
		keep[j] = j != i
	}
	m.compact(keep)
	return true
}

// RemoveIsolatedVertices drops every vertex no face references and returns
// how many were removed
func (m *EditableMesh) RemoveIsolatedVertices() int {
	used := make([]bool, len(m.vertices))
	for _, f := range m.faces {
		for _, i := range f {
			used[i] = true
		}
	}
	removed := 0
	for _, u := range used {
		if !u {
			removed++
		}
	}
	if removed > 0 {
		m.compact(used)
	}
	return removed
}
