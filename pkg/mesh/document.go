package mesh

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

// ErrInvalidDocument is returned when a document does not describe a valid mesh
var ErrInvalidDocument = errors.New("invalid mesh document")

// Document is the serialized form of a mesh
type Document struct {
	Vertices      [][]float64 `json:"vertices"`
	Faces         [][]int     `json:"faces"`
	LiveSymmetryX bool        `json:"liveSymmetryX"`
}

// Validate checks the shape of every entry and that faces reference
// existing, distinct vertices
func (d Document) Validate() error {
	for i, v := range d.Vertices {
		if len(v) != 3 {
			return fmt.Errorf("%w: vertex %d has %d components", ErrInvalidDocument, i, len(v))
		}
		for _, c := range v {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return fmt.Errorf("%w: vertex %d is not finite", ErrInvalidDocument, i)
			}
		}
	}
	for i, f := range d.Faces {
		if len(f) != 3 {
			return fmt.Errorf("%w: face %d has %d indices", ErrInvalidDocument, i, len(f))
		}
		for _, idx := range f {
			if idx < 0 || idx >= len(d.Vertices) {
				return fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidDocument, i, idx, len(d.Vertices))
			}
		}
		if !(Face{f[0], f[1], f[2]}).distinct() {
			return fmt.Errorf("%w: face %d repeats a vertex", ErrInvalidDocument, i)
		}
	}
	return nil
}

// ParseDocument decodes and validates a JSON document
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Encode returns the JSON encoding of the document
func (d Document) Encode() ([]byte, error) {
	if d.Vertices == nil {
		d.Vertices = [][]float64{}
	}
	if d.Faces == nil {
		d.Faces = [][]int{}
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mesh document: %w", err)
	}
	return data, nil
}

// ToJSON returns the serialized form of the mesh
func (m *EditableMesh) ToJSON() Document {
	doc := Document{
		Vertices:      make([][]float64, len(m.vertices)),
		Faces:         make([][]int, len(m.faces)),
		LiveSymmetryX: m.liveSymmetryX,
	}
	for i, v := range m.vertices {
		doc.Vertices[i] = []float64{v.X, v.Y, v.Z}
	}
	for i, f := range m.faces {
		doc.Faces[i] = []int{f[0], f[1], f[2]}
	}
	return doc
}

// FromJSON replaces the mesh contents with the document. The document is
// validated first; on error the mesh is left unchanged.
func (m *EditableMesh) FromJSON(doc Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	vertices := make([]geometry.Vector3, len(doc.Vertices))
	for i, v := range doc.Vertices {
		vertices[i] = geometry.NewVector3(v[0], v[1], v[2])
	}
	faces := make([]Face, len(doc.Faces))
	for i, f := range doc.Faces {
		faces[i] = Face{f[0], f[1], f[2]}
	}
	m.vertices = vertices
	m.faces = faces
	m.liveSymmetryX = doc.LiveSymmetryX
	m.markDirty(true)
	return nil
}

// Encode serializes the mesh to JSON
func (m *EditableMesh) Encode() ([]byte, error) {
	return m.ToJSON().Encode()
}

// Decode parses a JSON document and loads it into the mesh. On error the
// mesh is left unchanged.
func (m *EditableMesh) Decode(data []byte) error {
	doc, err := ParseDocument(data)
	if err != nil {
		return err
	}
	return m.FromJSON(doc)
}

// FromDocument creates a mesh from a document
func FromDocument(doc Document) (*EditableMesh, error) {
	m := New()
	if err := m.FromJSON(doc); err != nil {
		return nil, err
	}
	return m, nil
}
