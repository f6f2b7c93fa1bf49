package picking

import (
	"sort"

	"github.com/philipparndt/gomesh/pkg/mesh"
)

// Selection is the set of selected elements of one kind. The zero value is
// an empty vertex selection.
type Selection struct {
	Mode    Mode
	Indices []int
	Edges   []mesh.Edge
}

// Empty reports whether nothing is selected
func (s Selection) Empty() bool {
	return len(s.Indices) == 0 && len(s.Edges) == 0
}

// Len returns the number of selected elements
func (s Selection) Len() int {
	if s.Mode == ModeEdge {
		return len(s.Edges)
	}
	return len(s.Indices)
}

// Clear empties the selection and sets its mode
func (s *Selection) Clear(mode Mode) {
	s.Mode = mode
	s.Indices = nil
	s.Edges = nil
}

// Contains reports whether the hit element is selected
func (s Selection) Contains(h Hit) bool {
	if h.Mode != s.Mode {
		return false
	}
	if h.Mode == ModeEdge {
		for _, e := range s.Edges {
			if e == h.Edge {
				return true
			}
		}
		return false
	}
	for _, i := range s.Indices {
		if i == h.Index {
			return true
		}
	}
	return false
}

// Replace selects only the hit element
func (s *Selection) Replace(h Hit) {
	s.Clear(h.Mode)
	s.Add(h)
}

// Add selects the hit element in addition to the current selection. A hit of
// another mode starts a new selection.
func (s *Selection) Add(h Hit) {
	if h.Mode != s.Mode {
		s.Clear(h.Mode)
	}
	if s.Contains(h) {
		return
	}
	if h.Mode == ModeEdge {
		s.Edges = append(s.Edges, h.Edge)
		return
	}
	s.Indices = append(s.Indices, h.Index)
}

// Toggle adds the hit element, or removes it when already selected
func (s *Selection) Toggle(h Hit) {
	if !s.Contains(h) {
		s.Add(h)
		return
	}
	if h.Mode == ModeEdge {
		s.Edges = removeEdge(s.Edges, h.Edge)
		return
	}
	s.Indices = removeIndex(s.Indices, h.Index)
}

// FaceSource gives access to face corners
type FaceSource interface {
	FaceCount() int
	Face(i int) mesh.Face
}

// Vertices returns the sorted, distinct vertex indices touched by the
// selection
func (s Selection) Vertices(src FaceSource) []int {
	seen := make(map[int]struct{})
	switch s.Mode {
	case ModeVertex:
		for _, i := range s.Indices {
			seen[i] = struct{}{}
		}
	case ModeEdge:
		for _, e := range s.Edges {
			seen[e.A] = struct{}{}
			seen[e.B] = struct{}{}
		}
	case ModeFace:
		for _, fi := range s.Indices {
			if fi < 0 || fi >= src.FaceCount() {
				continue
			}
			for _, vi := range src.Face(fi) {
				seen[vi] = struct{}{}
			}
		}
	}
	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func removeIndex(list []int, v int) []int {
	out := list[:0]
	for _, i := range list {
		if i != v {
			out = append(out, i)
		}
	}
	return out
}

func removeEdge(list []mesh.Edge, v mesh.Edge) []mesh.Edge {
	out := list[:0]
	for _, e := range list {
		if e != v {
			out = append(out, e)
		}
	}
	return out
}
