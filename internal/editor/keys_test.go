package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
	"github.com/philipparndt/gomesh/pkg/picking"
)

func key(k string, mods ...Modifiers) KeyEvent {
	ev := KeyEvent{Key: k}
	if len(mods) > 0 {
		ev.Modifiers = mods[0]
	}
	return ev
}

func TestToolKeys(t *testing.T) {
	tests := []struct {
		key  string
		tool Tool
	}{
		{"w", ToolMove},
		{"o", ToolRotate},
		{"s", ToolScale},
		{"a", ToolAddVertex},
		{"t", ToolMakeTriangle},
		{"e", ToolExtrude},
		{"r", ToolInset},
		{"q", ToolSelect},
	}
	c, _ := newController(mesh.NewDefault())
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.True(t, c.KeyDown(key(tt.key)))
			assert.Equal(t, tt.tool, c.Tool())
		})
	}
}

func TestModeAndAxisKeys(t *testing.T) {
	c, _ := newController(mesh.NewDefault())

	c.KeyDown(key("2"))
	assert.Equal(t, picking.ModeEdge, c.Mode())
	c.KeyDown(key("3"))
	assert.Equal(t, picking.ModeFace, c.Mode())
	c.KeyDown(key("1"))
	assert.Equal(t, picking.ModeVertex, c.Mode())

	c.KeyDown(key("x"))
	assert.Equal(t, geometry.AxisX, c.Axis())
	c.KeyDown(key("Z"))
	assert.Equal(t, geometry.AxisZ, c.Axis())
	c.KeyDown(key("z"))
	assert.Equal(t, geometry.AxisNone, c.Axis())
}

func TestToggleKeys(t *testing.T) {
	m := mesh.NewDefault()
	c, _ := newController(m)

	c.KeyDown(key("n"))
	assert.True(t, c.Snapping())
	c.KeyDown(key("w", Modifiers{Shift: true}))
	assert.True(t, c.Wireframe())
	assert.Equal(t, ToolSelect, c.Tool())
	c.KeyDown(key("x", Modifiers{Shift: true}))
	assert.True(t, m.LiveSymmetryX())
	assert.Equal(t, geometry.AxisNone, c.Axis())
}

func TestHistoryKeys(t *testing.T) {
	m := mesh.NewDefault()
	c, _ := newController(m)
	c.KeyDown(key("m"))
	require.Equal(t, 2, m.FaceCount())

	c.KeyDown(key("z", Modifiers{Ctrl: true}))
	assert.Equal(t, 1, m.FaceCount())
	c.KeyDown(key("y", Modifiers{Ctrl: true}))
	assert.Equal(t, 2, m.FaceCount())
	c.KeyDown(key("z", Modifiers{Meta: true}))
	assert.Equal(t, 1, m.FaceCount())
	c.KeyDown(key("z", Modifiers{Ctrl: true, Shift: true}))
	assert.Equal(t, 2, m.FaceCount())

	c.KeyDown(key("a", Modifiers{Ctrl: true}))
	assert.Equal(t, 4, c.Selection().Len())
	assert.Equal(t, ToolSelect, c.Tool())
}

func TestKeysIgnoredInTextInputs(t *testing.T) {
	c, _ := newController(mesh.NewDefault())

	assert.False(t, c.KeyDown(KeyEvent{Key: "w", Target: "INPUT"}))
	assert.False(t, c.KeyDown(KeyEvent{Key: "w", Target: "textarea"}))
	assert.Equal(t, ToolSelect, c.Tool())

	assert.True(t, c.KeyDown(KeyEvent{Key: "w", Target: "canvas"}))
	assert.Equal(t, ToolMove, c.Tool())
}

func TestUnboundKey(t *testing.T) {
	c, _ := newController(mesh.NewDefault())
	assert.False(t, c.KeyDown(key("p")))
	assert.False(t, c.KeyDown(key("p", Modifiers{Ctrl: true})))
}

func TestEscapeCancelsAndClears(t *testing.T) {
	m := mesh.NewDefault()
	c, _ := newController(m)
	c.KeyDown(key("w"))
	c.PointerDown(at(1, 0))
	c.PointerMove(at(1.5, 0))

	c.KeyDown(key("Escape"))
	assert.False(t, c.Dragging())
	assert.True(t, c.Selection().Empty())
	assertVertex(t, m, 1, 1, 0, 0)
}

func TestDeleteKeys(t *testing.T) {
	m := mesh.NewDefault()
	c, _ := newController(m)
	c.KeyDown(key("3"))
	c.PointerDown(at(0.2, 0.2))

	c.KeyDown(key("Backspace"))
	assert.Equal(t, 0, m.FaceCount())
}

func TestEditKeysIgnoredWhileDragging(t *testing.T) {
	m := mesh.NewDefault()
	c, _ := newController(m)
	c.KeyDown(key("w"))
	c.PointerDown(at(1, 0))
	c.PointerMove(at(2, 0))

	for _, k := range []string{"m", "l", "d", "j", "k", "delete", "1"} {
		assert.False(t, c.KeyDown(key(k)), k)
		assert.Equal(t, StatusDragging, c.Status(), k)
	}
	assert.False(t, c.KeyDown(key("a", Modifiers{Ctrl: true})))
	assert.False(t, c.KeyDown(key("x", Modifiers{Shift: true})))
	assert.False(t, m.LiveSymmetryX())
	require.True(t, c.Dragging())
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, []mesh.Face{{0, 1, 2}}, m.Faces())

	c.KeyDown(key("escape"))
	assert.False(t, c.Dragging())
	assertVertex(t, m, 0, 0, 0, 0)
	assertVertex(t, m, 1, 1, 0, 0)
	assertVertex(t, m, 2, 0, 0, 1)
	assert.Equal(t, []mesh.Face{{0, 1, 2}}, m.Faces())
	assert.Equal(t, 0, c.History().UndoDepth())
}

func TestDragKeysWhileDragging(t *testing.T) {
	m := mesh.NewDefault()
	c, _ := newController(m)
	c.KeyDown(key("w"))
	c.PointerDown(at(1, 0))

	assert.True(t, c.KeyDown(key("x")))
	assert.Equal(t, geometry.AxisX, c.Axis())
	assert.True(t, c.KeyDown(key("n")))
	assert.True(t, c.Snapping())
	require.True(t, c.Dragging())

	c.PointerMove(at(2.2, 0.7))
	c.PointerUp(at(2.2, 0.7))
	assertVertex(t, m, 1, 2, 0, 0)
	assert.Equal(t, 1, c.History().UndoDepth())
}
