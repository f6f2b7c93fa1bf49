// Package analysis reports measurements and topology diagnostics of a mesh
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

// EdgeInfo describes one unique edge of the mesh
type EdgeInfo struct {
	Edge   mesh.Edge
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
	// Faces is the number of faces bordering the edge: 1 on a boundary,
	// 2 inside a manifold surface, more where the surface is non-manifold
	Faces int
}

// Report contains the measurements of a mesh
type Report struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	Volume        float64
	VertexCount   int
	TriangleCount int

	Edges         []EdgeInfo
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64

	BoundaryEdges    []mesh.Edge
	NonManifoldEdges []mesh.Edge
	IsolatedVertices []int
	DegenerateFaces  []int
}

// Closed reports whether every edge borders exactly two faces
func (r *Report) Closed() bool {
	return len(r.Edges) > 0 && len(r.BoundaryEdges) == 0 && len(r.NonManifoldEdges) == 0
}

// Analyze measures m. Volume is the signed volume enclosed by the faces and
// is only meaningful for a closed, consistently wound mesh.
func Analyze(m *mesh.EditableMesh) *Report {
	r := &Report{
		BoundingBox:   m.Bounds(),
		VertexCount:   m.VertexCount(),
		TriangleCount: m.FaceCount(),
	}
	r.Dimensions = r.BoundingBox.Size()

	for i := 0; i < m.FaceCount(); i++ {
		t := m.Triangle(i)
		r.SurfaceArea += t.Area()
		// divergence theorem: sum of signed tetrahedra against the origin
		r.Volume += t.A.Dot(t.B.Cross(t.C)) / 6
		if t.Degenerate(1e-12) {
			r.DegenerateFaces = append(r.DegenerateFaces, i)
		}
	}

	total := 0.0
	r.MinEdgeLength = math.MaxFloat64
	for _, e := range m.Edges() {
		info := EdgeInfo{
			Edge:  e,
			Start: m.Vertex(e.A),
			End:   m.Vertex(e.B),
			Faces: len(m.EdgeFaces(e)),
		}
		info.Length = info.Start.Distance(info.End)
		r.Edges = append(r.Edges, info)

		total += info.Length
		r.MinEdgeLength = math.Min(r.MinEdgeLength, info.Length)
		r.MaxEdgeLength = math.Max(r.MaxEdgeLength, info.Length)
		switch {
		case info.Faces == 1:
			r.BoundaryEdges = append(r.BoundaryEdges, e)
		case info.Faces > 2:
			r.NonManifoldEdges = append(r.NonManifoldEdges, e)
		}
	}
	if len(r.Edges) > 0 {
		r.AvgEdgeLength = total / float64(len(r.Edges))
	} else {
		r.MinEdgeLength = 0
	}

	for i := 0; i < m.VertexCount(); i++ {
		if !m.VertexInUse(i) {
			r.IsolatedVertices = append(r.IsolatedVertices, i)
		}
	}
	return r
}

// EdgesByLength returns the edges whose length lies in [minLength, maxLength]
func EdgesByLength(r *Report, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, e := range r.Edges {
		if e.Length >= minLength && e.Length <= maxLength {
			edges = append(edges, e)
		}
	}
	return edges
}

// LongestEdges returns the count longest edges
func LongestEdges(r *Report, count int) []EdgeInfo {
	return sortedEdges(r, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// ShortestEdges returns the count shortest edges
func ShortestEdges(r *Report, count int) []EdgeInfo {
	return sortedEdges(r, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(r *Report, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := append([]EdgeInfo(nil), r.Edges...)
	sort.SliceStable(edges, func(i, j int) bool { return less(edges[i], edges[j]) })
	if count < 0 {
		count = 0
	}
	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}

// NearestVertex returns the vertex of m closest to point, or -1 for an
// empty mesh
func NearestVertex(m *mesh.EditableMesh, point geometry.Vector3) (int, float64) {
	nearest, best := -1, math.MaxFloat64
	for i := 0; i < m.VertexCount(); i++ {
		if d := point.Distance(m.Vertex(i)); d < best {
			nearest, best = i, d
		}
	}
	return nearest, best
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
