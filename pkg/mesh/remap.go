package mesh

import "github.com/philipparndt/gomesh/pkg/geometry"

// compact keeps the vertices flagged in keep, in order, and rewrites face
// indices to the new positions. Faces referencing a dropped vertex are
// removed.
func (m *EditableMesh) compact(keep []bool) {
	remap := make([]int, len(m.vertices))
	vertices := make([]geometry.Vector3, 0, len(m.vertices))
	for i, v := range m.vertices {
		if !keep[i] {
			remap[i] = -1
			continue
		}
		remap[i] = len(vertices)
		vertices = append(vertices, v)
	}
	m.vertices = vertices
	m.applyRemap(remap)
}

// applyRemap rewrites every face through remap. Faces that reference a
// removed vertex (-1) or collapse to a repeated index are dropped.
func (m *EditableMesh) applyRemap(remap []int) {
	faces := m.faces[:0]
	for _, f := range m.faces {
		g := Face{remap[f[0]], remap[f[1]], remap[f[2]]}
		if g[0] < 0 || g[1] < 0 || g[2] < 0 || !g.distinct() {
			continue
		}
		faces = append(faces, g)
	}
	m.faces = faces
	m.markDirty(true)
}
