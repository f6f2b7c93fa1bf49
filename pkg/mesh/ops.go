package mesh

import (
	"sort"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

// DuplicateOffset is the distance a duplicate is moved away from its source
const DuplicateOffset = 0.05

// FaceNormal returns the unit normal of face i
func (m *EditableMesh) FaceNormal(i int) geometry.Vector3 {
	return m.Triangle(i).Normal()
}

// FaceCentroid returns the centroid of face i
func (m *EditableMesh) FaceCentroid(i int) geometry.Vector3 {
	return m.Triangle(i).Centroid()
}

// Centroid returns the mean position of the given vertices
func (m *EditableMesh) Centroid(indices []int) geometry.Vector3 {
	points := make([]geometry.Vector3, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(m.vertices) {
			points = append(points, m.vertices[i])
		}
	}
	return geometry.Centroid(points)
}

func (m *EditableMesh) validFaceIndex(i int) bool {
	return i >= 0 && i < len(m.faces)
}

// addRing adds the face top and six side faces joining the corners of base
// to it, each quad split in two
func (m *EditableMesh) addRing(base, top Face) {
	a, b, c := base[0], base[1], base[2]
	ia, ib, ic := top[0], top[1], top[2]
	m.faces = append(m.faces,
		Face{ia, ib, ic},
		Face{a, b, ib}, Face{a, ib, ia},
		Face{b, c, ic}, Face{b, ic, ib},
		Face{c, a, ia}, Face{c, ia, ic},
	)
}

// ExtrudeFace pushes a copy of face f out along its normal by height and
// joins it to the original with three quads. The base face is kept. It
// returns the index of the new top face.
func (m *EditableMesh) ExtrudeFace(f int, height float64) (int, bool) {
	if !m.validFaceIndex(f) {
		return -1, false
	}
	base := m.faces[f]
	offset := m.FaceNormal(f).Mul(height)
	var top Face
	for k, vi := range base {
		top[k] = len(m.vertices)
		m.vertices = append(m.vertices, m.vertices[vi].Add(offset))
	}
	topIndex := len(m.faces)
	m.addRing(base, top)
	m.markDirty(true)
	return topIndex, true
}

// InsetFace replaces face f with a smaller copy whose corners move towards
// the centroid by inset and along the normal by height, surrounded by a
// ring of quads. It returns the index of the inner face.
func (m *EditableMesh) InsetFace(f int, inset, height float64) (int, bool) {
	if !m.validFaceIndex(f) {
		return -1, false
	}
	base := m.faces[f]
	centroid := m.FaceCentroid(f)
	lift := m.FaceNormal(f).Mul(height)
	var inner Face
	for k, vi := range base {
		v := m.vertices[vi]
		moved := v.Add(centroid.Sub(v).WithLength(inset)).Add(lift)
		inner[k] = len(m.vertices)
		m.vertices = append(m.vertices, moved)
	}
	m.faces = append(m.faces[:f], m.faces[f+1:]...)
	innerIndex := len(m.faces)
	m.addRing(base, inner)
	m.markDirty(true)
	return innerIndex, true
}

// SplitEdge inserts a vertex at the midpoint of e and splits every face
// bordering it in two, keeping the winding. It returns the new vertex.
func (m *EditableMesh) SplitEdge(e Edge) (int, bool) {
	e = NewEdge(e.A, e.B)
	bordering := append([]int(nil), m.EdgeFaces(e)...)
	if len(bordering) == 0 {
		return -1, false
	}
	mid := len(m.vertices)
	m.vertices = append(m.vertices, m.vertices[e.A].Lerp(m.vertices[e.B], 0.5))
	for _, fi := range bordering {
		f := m.faces[fi]
		for k := 0; k < 3; k++ {
			p, q, r := f[k], f[(k+1)%3], f[(k+2)%3]
			if NewEdge(p, q) != e {
				continue
			}
			m.faces[fi] = Face{p, mid, r}
			m.faces = append(m.faces, Face{mid, q, r})
			break
		}
	}
	m.markDirty(true)
	return mid, true
}

// MergeVertices collapses the given vertices into one at their mean
// position. References are redirected and the index space is compacted. It
// returns the index of the merged vertex.
func (m *EditableMesh) MergeVertices(indices []int) (int, bool) {
	unique := uniqueInRange(indices, len(m.vertices))
	if len(unique) < 2 {
		return -1, false
	}
	target := unique[0]
	mean := m.Centroid(unique)
	remap := make([]int, len(m.vertices))
	for i := range remap {
		remap[i] = i
	}
	for _, i := range unique {
		remap[i] = target
		m.vertices[i] = mean
	}
	m.applyRemap(remap)
	welded := m.weld(MergeEpsilon)
	return welded[target], true
}

// DuplicateFaces copies each face with its own vertices, offset along the
// face normal. It returns the indices of the copies.
func (m *EditableMesh) DuplicateFaces(faces []int) []int {
	var created []int
	for _, fi := range faces {
		if !m.validFaceIndex(fi) {
			continue
		}
		offset := m.FaceNormal(fi).Mul(DuplicateOffset)
		var copyFace Face
		for k, vi := range m.faces[fi] {
			copyFace[k] = len(m.vertices)
			m.vertices = append(m.vertices, m.vertices[vi].Add(offset))
		}
		m.faces = append(m.faces, copyFace)
		created = append(created, len(m.faces)-1)
	}
	if len(created) > 0 {
		m.markDirty(true)
	}
	return created
}

// DuplicateVertices copies each vertex offset along +X and returns the new
// indices
func (m *EditableMesh) DuplicateVertices(indices []int) []int {
	var created []int
	offset := geometry.NewVector3(DuplicateOffset, 0, 0)
	for _, i := range uniqueInRange(indices, len(m.vertices)) {
		m.vertices = append(m.vertices, m.vertices[i].Add(offset))
		created = append(created, len(m.vertices)-1)
	}
	if len(created) > 0 {
		m.markDirty(true)
	}
	return created
}

// DuplicateEdge copies both endpoints of e offset along +X. It returns the
// new vertex indices.
func (m *EditableMesh) DuplicateEdge(e Edge) []int {
	return m.DuplicateVertices([]int{e.A, e.B})
}

// DeleteFaces removes the given faces and returns how many were removed
func (m *EditableMesh) DeleteFaces(faces []int) int {
	unique := uniqueInRange(faces, len(m.faces))
	if len(unique) == 0 {
		return 0
	}
	drop := make(map[int]struct{}, len(unique))
	for _, fi := range unique {
		drop[fi] = struct{}{}
	}
	kept := m.faces[:0]
	for fi, f := range m.faces {
		if _, ok := drop[fi]; !ok {
			kept = append(kept, f)
		}
	}
	m.faces = kept
	m.markDirty(true)
	return len(unique)
}

// DeleteEdge removes every face bordering e
func (m *EditableMesh) DeleteEdge(e Edge) int {
	return m.DeleteFaces(append([]int(nil), m.EdgeFaces(e)...))
}

// DeleteVertices removes the given vertices that no face uses. It returns
// the number removed and the vertices that were kept because they are in
// use.
func (m *EditableMesh) DeleteVertices(indices []int) (int, []int) {
	unique := uniqueInRange(indices, len(m.vertices))
	sort.Ints(unique)
	removed := 0
	var inUse []int
	// descending so lower indices stay valid
	for k := len(unique) - 1; k >= 0; k-- {
		if m.RemoveVertexIfIsolated(unique[k]) {
			removed++
		} else {
			inUse = append(inUse, unique[k])
		}
	}
	sort.Ints(inUse)
	return removed, inUse
}

// uniqueInRange returns the distinct indices in [0, n), in first-seen order
func uniqueInRange(indices []int, n int) []int {
	seen := make(map[int]struct{}, len(indices))
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= n {
			continue
		}
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	return out
}
