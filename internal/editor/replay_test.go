package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gomesh/pkg/mesh"
)

const buildQuadScript = `
steps:
  - tool: add-vertex
  - pointer: down
    x: 1
    y: 1
  - tool: make-triangle
  - pointer: down
    x: 1
    y: 0
  - pointer: down
    x: 1
    y: 1
  - pointer: down
    x: 0
    y: 1
`

func TestReplayBuildsQuad(t *testing.T) {
	m := mesh.NewDefault()
	c, _ := newController(m)

	script, err := ParseScript([]byte(buildQuadScript))
	require.NoError(t, err)
	require.Len(t, script.Steps, 6)

	require.NoError(t, c.Replay(script))
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 2, m.FaceCount())
	assert.Equal(t, mesh.Face{1, 3, 2}, m.Face(1))
	assert.Equal(t, 2, c.History().UndoDepth())
}

func TestReplayDrag(t *testing.T) {
	m := mesh.NewDefault()
	c, _ := newController(m)

	script, err := ParseScript([]byte(`
steps:
  - key: w
  - pointer: down
    x: 1
  - pointer: move
    x: 1.5
    y: 0.5
    shift: true
  - pointer: up
  - key: z
    ctrl: true
  - key: y
    ctrl: true
`))
	require.NoError(t, err)
	require.NoError(t, c.Replay(script))

	assertVertex(t, m, 1, 1.5, 0, 0.5)
}

func TestReplayRejectsBadSteps(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"unknown tool", "steps:\n  - tool: lasso\n"},
		{"unknown mode", "steps:\n  - mode: object\n"},
		{"unknown pointer", "steps:\n  - pointer: wheel\n"},
		{"empty step", "steps:\n  - shift: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newController(mesh.NewDefault())
			script, err := ParseScript([]byte(tt.script))
			require.NoError(t, err)

			err = c.Replay(script)
			assert.ErrorIs(t, err, ErrInvalidStep)
			assert.Contains(t, err.Error(), "step 1")
		})
	}
}

func TestParseScriptError(t *testing.T) {
	_, err := ParseScript([]byte("steps: [unterminated"))
	assert.Error(t, err)
}

func TestReplayMode(t *testing.T) {
	c, _ := newController(mesh.NewDefault())
	script, err := ParseScript([]byte("steps:\n  - mode: face\n"))
	require.NoError(t, err)
	require.NoError(t, c.Replay(script))
	assert.Equal(t, "face", c.Mode().String())
}
