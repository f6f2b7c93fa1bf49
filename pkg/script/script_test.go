package script

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gomesh/pkg/mesh"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"kebab names", "(move-vertex 0 1 0 0)", "(move_vertex 0 1 0 0)"},
		{"subtraction kept", "(- 3 1)", "(- 3 1)"},
		{"negative numbers kept", "(vertex -1 0 2)", "(vertex -1 0 2)"},
		{"comments", "; build\n(weld) ;; tidy", "// build\n(weld) // tidy"},
		{"strings untouched", `(def s "a-b; c")`, `(def s "a-b; c")`},
		{"escaped quote", `"x\"-y" a-b`, `"x\"-y" a_b`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, preprocess(tt.in))
		})
	}
}

func TestRunBuildsQuad(t *testing.T) {
	src := `
; second triangle next to the default one
(def d (vertex 1 0 1))
(face 1 d 2)
(face-count)
`
	m := mesh.NewDefault()
	res, err := NewRunner().Run(src, m)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Mesh.VertexCount())
	assert.Equal(t, 2, res.Mesh.FaceCount())
	assert.Equal(t, mesh.Face{1, 3, 2}, res.Mesh.Face(1))
	assert.Equal(t, "2", res.Value)

	// source mesh is untouched
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 1, m.FaceCount())
}

func TestRunOperations(t *testing.T) {
	src := `
(def top (extrude 0 1))
(inset top 0.2 0.1)
(split-edge 0 1)
(mirror-x)
(weld)
`
	res, err := NewRunner().Run(src, mesh.NewDefault())
	require.NoError(t, err)
	assert.Greater(t, res.Mesh.FaceCount(), 8)
}

func TestRunFaceAcceptsList(t *testing.T) {
	res, err := NewRunner().Run("(vertex 1 0 1)\n(face '(1 3 2))", mesh.NewDefault())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Mesh.FaceCount())
}

func TestRunRejectedFace(t *testing.T) {
	res, err := NewRunner().Run("(face 0 0 1)", mesh.NewDefault())
	require.NoError(t, err)
	assert.Equal(t, "-1", res.Value)
	assert.Equal(t, 1, res.Mesh.FaceCount())
}

func TestRunEmptySource(t *testing.T) {
	res, err := NewRunner().Run("  \n", mesh.NewDefault())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Mesh.VertexCount())
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "(vertex 0 0"},
		{"undefined", "(lathe 1)"},
		{"arity", "(vertex 1 2)"},
		{"type", `(vertex "a" 0 0)`},
		{"range", "(move-vertex 9 1 0 0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner().Run(tt.src, mesh.NewDefault())
			require.Error(t, err)
			var evalErr EvalError
			assert.True(t, errors.As(err, &evalErr), "got %T", err)
			assert.NotEmpty(t, evalErr.Message)
		})
	}
}

func TestWaitTimesOut(t *testing.T) {
	ch := make(chan outcome)
	_, err := wait(ch, 10*time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestToEvalError(t *testing.T) {
	e := toEvalError(errors.New("Error on line 3: unexpected )"))
	assert.Equal(t, 3, e.Line)
	assert.Equal(t, "unexpected )", e.Message)
	assert.Equal(t, "line 3: unexpected )", e.Error())

	e = toEvalError(errors.New("boom"))
	assert.Equal(t, 0, e.Line)
	assert.Equal(t, "boom", e.Error())
}
