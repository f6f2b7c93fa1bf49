package script

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

type builtin func(m *mesh.EditableMesh, args []zygo.Sexp) (zygo.Sexp, error)

// builtins maps script names (after kebab-case rewriting) to mesh operations
var builtins = map[string]builtin{
	"vertex":          vertexFn,
	"face":            faceFn,
	"move_vertex":     moveVertexFn,
	"extrude":         extrudeFn,
	"inset":           insetFn,
	"split_edge":      splitEdgeFn,
	"merge":           mergeFn,
	"delete_faces":    deleteFacesFn,
	"duplicate_faces": duplicateFacesFn,
	"mirror_x":        mirrorFn,
	"smooth":          smoothFn,
	"weld":            weldFn,
	"vertex_count":    func(m *mesh.EditableMesh, _ []zygo.Sexp) (zygo.Sexp, error) { return intSexp(m.VertexCount()), nil },
	"face_count":      func(m *mesh.EditableMesh, _ []zygo.Sexp) (zygo.Sexp, error) { return intSexp(m.FaceCount()), nil },
}

func registerBuiltins(env *zygo.Zlisp, m *mesh.EditableMesh) {
	for name, fn := range builtins {
		fn := fn
		env.AddFunction(name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			out, err := fn(m, args)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return out, nil
		})
	}
}

func intSexp(v int) zygo.Sexp {
	return &zygo.SexpInt{Val: int64(v)}
}

func toFloat(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %s", s.SexpString(nil))
}

func floats(args []zygo.Sexp, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d arguments, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := toFloat(a)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// ints accepts integers given inline or as a single list or array
func ints(args []zygo.Sexp) ([]int, error) {
	if len(args) == 1 {
		switch v := args[0].(type) {
		case *zygo.SexpArray:
			args = v.Val
		case *zygo.SexpPair:
			list, err := zygo.ListToArray(v)
			if err != nil {
				return nil, err
			}
			args = list
		}
	}
	out := make([]int, 0, len(args))
	for _, a := range args {
		i, err := toInt(a)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, nil
}

func vertexIndex(m *mesh.EditableMesh, s zygo.Sexp) (int, error) {
	i, err := toInt(s)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= m.VertexCount() {
		return 0, fmt.Errorf("vertex %d out of range", i)
	}
	return i, nil
}

// (vertex x y z) adds a vertex and returns its index
func vertexFn(m *mesh.EditableMesh, args []zygo.Sexp) (zygo.Sexp, error) {
	p, err := floats(args, 3)
	if err != nil {
		return nil, err
	}
	return intSexp(m.AddVertex(geometry.NewVector3(p[0], p[1], p[2]))), nil
}

// (face a b c) adds a face and returns its index, or -1 when rejected
func faceFn(m *mesh.EditableMesh, args []zygo.Sexp) (zygo.Sexp, error) {
	idx, err := ints(args)
	if err != nil {
		return nil, err
	}
	if len(idx) != 3 {
		return nil, fmt.Errorf("expected 3 indices, got %d", len(idx))
	}
	if !m.AddFace(idx[0], idx[1], idx[2]) {
		return intSexp(-1), nil
	}
	return intSexp(m.FaceCount() - 1), nil
}

// (move-vertex i dx dy dz)
func moveVertexFn(m *mesh.EditableMesh, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 4 {
		return nil, fmt.Errorf("expected 4 arguments, got %d", len(args))
	}
	i, err := vertexIndex(m, args[0])
	if err != nil {
		return nil, err
	}
	d, err := floats(args[1:], 3)
	if err != nil {
		return nil, err
	}
	m.SetVertex(i, m.Vertex(i).Add(geometry.NewVector3(d[0], d[1], d[2])))
	return intSexp(i), nil
}

// (extrude face height) returns the top face or -1
func extrudeFn(m *mesh.EditableMesh, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	f, err := toInt(args[0])
	if err != nil {
		return nil, err
	}
	h, err := toFloat(args[1])
	if err != nil {
		return nil, err
	}
	top, _ := m.ExtrudeFace(f, h)
	return intSexp(top), nil
}

// (inset face amount height) returns the inner face or -1
func insetFn(m *mesh.EditableMesh, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("expected 3 arguments, got %d", len(args))
	}
	f, err := toInt(args[0])
	if err != nil {
		return nil, err
	}
	p, err := floats(args[1:], 2)
	if err != nil {
		return nil, err
	}
	inner, _ := m.InsetFace(f, p[0], p[1])
	return intSexp(inner), nil
}

// (split-edge a b) returns the midpoint vertex or -1
func splitEdgeFn(m *mesh.EditableMesh, args []zygo.Sexp) (zygo.Sexp, error) {
	idx, err := ints(args)
	if err != nil {
		return nil, err
	}
	if len(idx) != 2 {
		return nil, fmt.Errorf("expected 2 indices, got %d", len(idx))
	}
	mid, _ := m.SplitEdge(mesh.NewEdge(idx[0], idx[1]))
	return intSexp(mid), nil
}

// (merge a b ...) returns the merged vertex or -1
func mergeFn(m *mesh.EditableMesh, args []zygo.Sexp) (zygo.Sexp, error) {
	idx, err := ints(args)
	if err != nil {
		return nil, err
	}
	merged, _ := m.MergeVertices(idx)
	return intSexp(merged), nil
}

// (delete-faces f ...) returns the number removed
func deleteFacesFn(m *mesh.EditableMesh, args []zygo.Sexp) (zygo.Sexp, error) {
	idx, err := ints(args)
	if err != nil {
		return nil, err
	}
	return intSexp(m.DeleteFaces(idx)), nil
}

// (duplicate-faces f ...) returns the number of copies
func duplicateFacesFn(m *mesh.EditableMesh, args []zygo.Sexp) (zygo.Sexp, error) {
	idx, err := ints(args)
	if err != nil {
		return nil, err
	}
	return intSexp(len(m.DuplicateFaces(idx))), nil
}

// (mirror-x) or (mirror-x eps)
func mirrorFn(m *mesh.EditableMesh, args []zygo.Sexp) (zygo.Sexp, error) {
	eps := mesh.DefaultWeldEpsilon
	if len(args) == 1 {
		f, err := toFloat(args[0])
		if err != nil {
			return nil, err
		}
		eps = f
	}
	m.MirrorX(eps)
	return intSexp(m.VertexCount()), nil
}

// (smooth iterations lambda)
func smoothFn(m *mesh.EditableMesh, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	n, err := toInt(args[0])
	if err != nil {
		return nil, err
	}
	lambda, err := toFloat(args[1])
	if err != nil {
		return nil, err
	}
	m.Smooth(n, lambda)
	return intSexp(n), nil
}

// (weld) or (weld eps) returns the number of merged vertices
func weldFn(m *mesh.EditableMesh, args []zygo.Sexp) (zygo.Sexp, error) {
	eps := mesh.DefaultWeldEpsilon
	if len(args) == 1 {
		f, err := toFloat(args[0])
		if err != nil {
			return nil, err
		}
		eps = f
	}
	return intSexp(m.Weld(eps)), nil
}
