// Package picking resolves screen positions to mesh vertices, edges and
// faces
package picking

import (
	"math"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

// Default pick radii in normalized device coordinates
const (
	DefaultVertexThreshold = 0.05
	DefaultEdgeThreshold   = 0.03
)

// NDC is a position in normalized device coordinates, both axes in [-1, 1]
type NDC struct {
	X, Y float64
}

// Distance returns the euclidean distance between two screen positions
func (p NDC) Distance(other NDC) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Camera is what picking needs from a view: projecting world points to the
// screen and casting rays from screen positions into the world
type Camera interface {
	Project(p geometry.Vector3) (NDC, bool)
	Ray(p NDC) geometry.Ray
}

// Source is the read-only view of a mesh picking works on
type Source interface {
	VertexCount() int
	Vertex(i int) geometry.Vector3
	FaceCount() int
	Triangle(i int) geometry.Triangle
	Edges() []mesh.Edge
}

// Mode selects which element kind is picked
type Mode int

const (
	ModeVertex Mode = iota
	ModeEdge
	ModeFace
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeVertex:
		return "vertex"
	case ModeEdge:
		return "edge"
	case ModeFace:
		return "face"
	default:
		return "unknown"
	}
}

// Hit is a picked element. Index is the vertex or face index; Edge is set
// in edge mode. Distance is the screen distance for vertices and edges and
// the ray parameter for faces.
type Hit struct {
	Mode     Mode
	Index    int
	Edge     mesh.Edge
	Distance float64
}

// Options configures pick radii
type Options struct {
	VertexThreshold float64
	EdgeThreshold   float64
}

// DefaultOptions returns the standard pick radii
func DefaultOptions() Options {
	return Options{
		VertexThreshold: DefaultVertexThreshold,
		EdgeThreshold:   DefaultEdgeThreshold,
	}
}

// Picker resolves screen positions against a mesh through a camera
type Picker struct {
	camera Camera
	opts   Options
}

// NewPicker creates a picker. Zero thresholds fall back to the defaults.
func NewPicker(camera Camera, opts Options) *Picker {
	if opts.VertexThreshold <= 0 {
		opts.VertexThreshold = DefaultVertexThreshold
	}
	if opts.EdgeThreshold <= 0 {
		opts.EdgeThreshold = DefaultEdgeThreshold
	}
	return &Picker{camera: camera, opts: opts}
}

// Camera returns the camera the picker projects through
func (p *Picker) Camera() Camera {
	return p.camera
}

// Pick dispatches to the picker for the given mode
func (p *Picker) Pick(src Source, mode Mode, at NDC) (Hit, bool) {
	switch mode {
	case ModeVertex:
		return p.PickVertex(src, at)
	case ModeEdge:
		return p.PickEdge(src, at)
	case ModeFace:
		return p.PickFace(src, at)
	default:
		return Hit{}, false
	}
}

// PickVertex returns the vertex whose projection is closest to at, if it
// lies within the vertex threshold
func (p *Picker) PickVertex(src Source, at NDC) (Hit, bool) {
	best := Hit{Mode: ModeVertex, Index: -1, Distance: math.Inf(1)}
	for i := 0; i < src.VertexCount(); i++ {
		screen, ok := p.camera.Project(src.Vertex(i))
		if !ok {
			continue
		}
		if d := screen.Distance(at); d < best.Distance {
			best.Index, best.Distance = i, d
		}
	}
	if best.Index < 0 || best.Distance > p.opts.VertexThreshold {
		return Hit{}, false
	}
	return best, true
}

// PickEdge returns the edge whose projected segment is closest to at, if it
// lies within the edge threshold
func (p *Picker) PickEdge(src Source, at NDC) (Hit, bool) {
	best := Hit{Mode: ModeEdge, Index: -1, Distance: math.Inf(1)}
	for i, e := range src.Edges() {
		a, okA := p.camera.Project(src.Vertex(e.A))
		b, okB := p.camera.Project(src.Vertex(e.B))
		if !okA || !okB {
			continue
		}
		if d := segmentDistance(at, a, b); d < best.Distance {
			best.Index, best.Edge, best.Distance = i, e, d
		}
	}
	if best.Index < 0 || best.Distance > p.opts.EdgeThreshold {
		return Hit{}, false
	}
	return best, true
}

// PickFace casts a ray through at and returns the nearest face it hits
func (p *Picker) PickFace(src Source, at NDC) (Hit, bool) {
	ray := p.camera.Ray(at)
	best := Hit{Mode: ModeFace, Index: -1, Distance: math.Inf(1)}
	for i := 0; i < src.FaceCount(); i++ {
		if t, ok := ray.IntersectTriangle(src.Triangle(i)); ok && t < best.Distance {
			best.Index, best.Distance = i, t
		}
	}
	if best.Index < 0 {
		return Hit{}, false
	}
	return best, true
}

// Ground casts a ray through at onto the horizontal plane at height y
func (p *Picker) Ground(at NDC, y float64) (geometry.Vector3, bool) {
	return p.camera.Ray(at).IntersectPlaneY(y)
}

// segmentDistance returns the distance from p to the segment ab
func segmentDistance(p, a, b NDC) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return p.Distance(a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lengthSq
	t = math.Max(0, math.Min(1, t))
	return p.Distance(NDC{X: a.X + t*dx, Y: a.Y + t*dy})
}
