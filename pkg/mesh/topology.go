package mesh

import "sort"

// Edge is an undirected vertex pair with A < B
type Edge struct {
	A, B int
}

// NewEdge returns the edge between a and b with its endpoints ordered
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Edges returns the unique edges implied by the faces, in order of first
// appearance walking faces and their corners (a,b), (b,c), (c,a).
// The returned slice must not be modified.
func (m *EditableMesh) Edges() []Edge {
	m.ensureTopology()
	return m.edges
}

// EdgeFaces returns the indices of the faces bordering e
func (m *EditableMesh) EdgeFaces(e Edge) []int {
	m.ensureTopology()
	return m.edgeFaces[NewEdge(e.A, e.B)]
}

// HasEdge reports whether some face uses the edge
func (m *EditableMesh) HasEdge(e Edge) bool {
	return len(m.EdgeFaces(e)) > 0
}

func (m *EditableMesh) ensureTopology() {
	if !m.topologyStale && m.edgeFaces != nil {
		return
	}
	// callers may still hold the previous slice
	m.edges = make([]Edge, 0, len(m.faces)*3/2)
	m.edgeFaces = make(map[Edge][]int, len(m.faces)*3/2)
	for fi, f := range m.faces {
		for k := 0; k < 3; k++ {
			e := NewEdge(f[k], f[(k+1)%3])
			if _, seen := m.edgeFaces[e]; !seen {
				m.edges = append(m.edges, e)
			}
			m.edgeFaces[e] = append(m.edgeFaces[e], fi)
		}
	}
	m.topologyStale = false
}

// Adjacency lists the direct neighbours of each vertex, sorted ascending.
// Vertices without faces have an empty list.
type Adjacency [][]int

// BuildAdjacency derives vertex neighbours from the faces
func (m *EditableMesh) BuildAdjacency() Adjacency {
	sets := make([]map[int]struct{}, len(m.vertices))
	link := func(a, b int) {
		if sets[a] == nil {
			sets[a] = make(map[int]struct{})
		}
		sets[a][b] = struct{}{}
	}
	for _, f := range m.faces {
		for k := 0; k < 3; k++ {
			a, b := f[k], f[(k+1)%3]
			link(a, b)
			link(b, a)
		}
	}
	adj := make(Adjacency, len(m.vertices))
	for i, set := range sets {
		for n := range set {
			adj[i] = append(adj[i], n)
		}
		sort.Ints(adj[i])
	}
	return adj
}
