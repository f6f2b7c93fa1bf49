package mesh

import "github.com/philipparndt/gomesh/pkg/geometry"

// degenerateArea is the smallest |(b-a) x (c-a)| a face may have before
// sync prunes it
const degenerateArea = 1e-12

// Buffers is the render handle derived by Sync. Positions and Normals are
// non-indexed: nine floats per face, the face normal repeated for each
// corner. Points holds one xyz triple per vertex and Lines two per edge,
// for the vertex and wireframe overlays.
type Buffers struct {
	Positions []float32
	Normals   []float32
	Points    []float32
	Lines     []float32
	Version   uint64
}

// TriangleCount returns the number of triangles in the buffers
func (b *Buffers) TriangleCount() int {
	return len(b.Positions) / 9
}

// Sync rebuilds the render buffers and derived topology when the mesh is
// dirty and returns them. Degenerate faces are pruned first. Calling Sync
// again without a mutation returns the same buffers.
func (m *EditableMesh) Sync() *Buffers {
	if !m.needsSync && m.buffers != nil {
		return m.buffers
	}
	m.pruneDegenerate()
	m.ensureTopology()

	b := &Buffers{
		Positions: make([]float32, 0, len(m.faces)*9),
		Normals:   make([]float32, 0, len(m.faces)*9),
		Points:    make([]float32, 0, len(m.vertices)*3),
		Lines:     make([]float32, 0, len(m.edges)*6),
		Version:   m.version,
	}
	for i, f := range m.faces {
		n := m.Triangle(i).Normal()
		for _, vi := range f {
			b.Positions = appendVec(b.Positions, m.vertices[vi])
			b.Normals = appendVec(b.Normals, n)
		}
	}
	for _, v := range m.vertices {
		b.Points = appendVec(b.Points, v)
	}
	for _, e := range m.edges {
		b.Lines = appendVec(b.Lines, m.vertices[e.A])
		b.Lines = appendVec(b.Lines, m.vertices[e.B])
	}

	m.buffers = b
	m.needsSync = false
	return b
}

func appendVec(dst []float32, v geometry.Vector3) []float32 {
	return append(dst, float32(v.X), float32(v.Y), float32(v.Z))
}

// pruneDegenerate drops faces with repeated indices or (near) zero area
func (m *EditableMesh) pruneDegenerate() {
	faces := m.faces[:0]
	pruned := false
	for _, f := range m.faces {
		if !f.distinct() || m.triangleOf(f).Degenerate(degenerateArea) {
			pruned = true
			continue
		}
		faces = append(faces, f)
	}
	m.faces = faces
	if pruned {
		m.prunes++
		m.topologyStale = true
	}
}
