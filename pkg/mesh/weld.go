package mesh

import (
	"math"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

// DefaultWeldEpsilon is the distance under which vertices are considered
// coincident by mirror and weld
const DefaultWeldEpsilon = 1e-4

// MergeEpsilon is the tolerance used to compact merged vertices
const MergeEpsilon = 1e-6

type cell struct {
	x, y, z int64
}

// spatialHash buckets vertices into cubic cells of size eps so that a
// distance query only inspects the 27 cells around a point
type spatialHash struct {
	size  float64
	cells map[cell][]int
}

func newSpatialHash(eps float64) *spatialHash {
	size := eps
	if size <= 0 {
		size = 1
	}
	return &spatialHash{size: size, cells: make(map[cell][]int)}
}

// maxCell bounds cell coordinates so the int64 conversion and the
// neighbour offsets never overflow
const maxCell = 1 << 52

func (h *spatialHash) cellOf(p geometry.Vector3) cell {
	return cell{
		x: cellCoord(p.X, h.size),
		y: cellCoord(p.Y, h.size),
		z: cellCoord(p.Z, h.size),
	}
}

// cellCoord returns the cell index of v. Coordinates beyond maxCell cells
// share the outermost cell, which keeps lookups correct since nearest still
// compares real distances.
func cellCoord(v, size float64) int64 {
	c := math.Floor(v / size)
	switch {
	case math.IsNaN(c):
		return 0
	case c > maxCell:
		return maxCell
	case c < -maxCell:
		return -maxCell
	}
	return int64(c)
}

func (h *spatialHash) insert(p geometry.Vector3, index int) {
	c := h.cellOf(p)
	h.cells[c] = append(h.cells[c], index)
}

// nearest returns the lowest index stored within eps of p
func (h *spatialHash) nearest(p geometry.Vector3, eps float64, positions []geometry.Vector3) (int, bool) {
	c := h.cellOf(p)
	best := -1
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				for _, i := range h.cells[cell{c.x + dx, c.y + dy, c.z + dz}] {
					if (best < 0 || i < best) && positions[i].Distance(p) <= eps {
						best = i
					}
				}
			}
		}
	}
	return best, best >= 0
}

// Weld merges vertices closer than eps. Vertices are visited in index
// order; the first vertex of a cluster stays canonical and later vertices
// within eps of it are folded into it. Faces collapsing to a repeated index
// are dropped. It returns the number of removed vertices.
func (m *EditableMesh) Weld(eps float64) int {
	remap := m.weld(eps)
	return len(remap) - m.VertexCount()
}

// weld performs Weld and returns the old-to-new index mapping
func (m *EditableMesh) weld(eps float64) []int {
	hash := newSpatialHash(eps)
	remap := make([]int, len(m.vertices))
	vertices := make([]geometry.Vector3, 0, len(m.vertices))
	for i, v := range m.vertices {
		if j, ok := hash.nearest(v, eps, vertices); ok {
			remap[i] = j
			continue
		}
		remap[i] = len(vertices)
		hash.insert(v, len(vertices))
		vertices = append(vertices, v)
	}
	m.vertices = vertices
	m.applyRemap(remap)
	return remap
}

// MirrorX makes the mesh symmetric across the YZ plane. Every vertex with
// x > eps gets a mirrored copy, every face touching that side gets a
// mirrored face with reversed winding, and the result is welded with eps so
// vertices on the plane are shared.
func (m *EditableMesh) MirrorX(eps float64) {
	original := len(m.vertices)
	faces := append([]Face(nil), m.faces...)
	for i := 0; i < original; i++ {
		if v := m.vertices[i]; v.X > eps {
			m.vertices = append(m.vertices, v.MirrorX())
		}
	}
	for _, f := range faces {
		if !m.touchesPositiveX(f, eps) {
			continue
		}
		a := m.mirrorPartner(f[0], eps)
		b := m.mirrorPartner(f[1], eps)
		c := m.mirrorPartner(f[2], eps)
		if g := (Face{c, b, a}); g.distinct() {
			m.faces = append(m.faces, g)
		}
	}
	m.markDirty(true)
	m.weld(eps)
}

func (m *EditableMesh) touchesPositiveX(f Face, eps float64) bool {
	for _, i := range f {
		if m.vertices[i].X > eps {
			return true
		}
	}
	return false
}

// mirrorPartner returns the first vertex within eps of the mirror image of
// vertex i, appending one if none exists
func (m *EditableMesh) mirrorPartner(i int, eps float64) int {
	target := m.vertices[i].MirrorX()
	if j, ok := m.FindVertex(target, eps); ok {
		return j
	}
	m.vertices = append(m.vertices, target)
	return len(m.vertices) - 1
}

// FindVertex returns the lowest index of a vertex within eps of p
func (m *EditableMesh) FindVertex(p geometry.Vector3, eps float64) (int, bool) {
	for i, v := range m.vertices {
		if v.Distance(p) <= eps {
			return i, true
		}
	}
	return -1, false
}

// MirrorPartners maps each of the given vertices to the vertex at its
// mirror position across the YZ plane, if any. Vertices on the plane map to
// themselves.
func (m *EditableMesh) MirrorPartners(indices []int, eps float64) map[int]int {
	partners := make(map[int]int, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(m.vertices) {
			continue
		}
		if j, ok := m.FindVertex(m.vertices[i].MirrorX(), eps); ok {
			partners[i] = j
		}
	}
	return partners
}

// Smooth applies Laplacian relaxation: each vertex moves towards the mean of
// its neighbours by lambda. Iterations run on the updated positions.
// Vertices without neighbours do not move.
func (m *EditableMesh) Smooth(iterations int, lambda float64) {
	if iterations <= 0 || len(m.vertices) == 0 {
		return
	}
	adj := m.BuildAdjacency()
	current := m.vertices
	for it := 0; it < iterations; it++ {
		next := append([]geometry.Vector3(nil), current...)
		for i, neighbours := range adj {
			if len(neighbours) == 0 {
				continue
			}
			var sum geometry.Vector3
			for _, n := range neighbours {
				sum = sum.Add(current[n])
			}
			avg := sum.Mul(1.0 / float64(len(neighbours)))
			next[i] = current[i].Lerp(avg, lambda)
		}
		current = next
	}
	m.vertices = current
	m.markDirty(false)
}
