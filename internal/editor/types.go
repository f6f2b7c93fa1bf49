package editor

import (
	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/picking"
)

// Tool is the active editing tool
type Tool int

const (
	ToolSelect Tool = iota
	ToolMove
	ToolRotate
	ToolScale
	ToolAddVertex
	ToolMakeTriangle
	ToolExtrude
	ToolInset
)

var toolNames = map[Tool]string{
	ToolSelect:       "select",
	ToolMove:         "move",
	ToolRotate:       "rotate",
	ToolScale:        "scale",
	ToolAddVertex:    "add-vertex",
	ToolMakeTriangle: "make-triangle",
	ToolExtrude:      "extrude-face",
	ToolInset:        "bevel-inset",
}

// String returns the tool name
func (t Tool) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTool returns the tool with the given name
func ParseTool(name string) (Tool, bool) {
	for t, n := range toolNames {
		if n == name {
			return t, true
		}
	}
	return ToolSelect, false
}

// transforms reports whether the tool drags the selection
func (t Tool) transforms() bool {
	return t == ToolMove || t == ToolRotate || t == ToolScale
}

// Modifiers holds the modifier keys held during an event
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Meta  bool
	Alt   bool
}

// PointerEvent is a pointer press, move or release at a screen position
type PointerEvent struct {
	Position picking.NDC
	Modifiers
}

// KeyEvent is a key press. Target names the element that had focus; key
// presses aimed at text inputs are ignored.
type KeyEvent struct {
	Key    string
	Target string
	Modifiers
}

// OrbitControls is the camera controller, disabled while a drag is active
type OrbitControls interface {
	SetEnabled(enabled bool)
}

// Framer points the view at a region of the scene
type Framer interface {
	Frame(center geometry.Vector3, radius float64)
}

// Status messages reported to the user
const (
	StatusReady           = "ready"
	StatusNothingToUndo   = "nothing to undo"
	StatusNothingToRedo   = "nothing to redo"
	StatusUndo            = "undo"
	StatusRedo            = "redo"
	StatusVertexInUse     = "cannot delete: vertex in use"
	StatusNoSelection     = "nothing selected"
	StatusNoGroundHit     = "no ground hit"
	StatusInvalidFace     = "cannot make triangle"
	StatusParseFailed     = "parse failed"
	StatusImported        = "imported"
	StatusNeedTwoVertices = "select at least two vertices"
	StatusNeedEdge        = "select an edge"
	StatusDragging        = "finish the drag first"
)
