package editor

import (
	"strings"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/picking"
)

var toolKeys = map[string]Tool{
	"q": ToolSelect,
	"w": ToolMove,
	"o": ToolRotate,
	"s": ToolScale,
	"a": ToolAddVertex,
	"t": ToolMakeTriangle,
	"e": ToolExtrude,
	"r": ToolInset,
}

var modeKeys = map[string]picking.Mode{
	"1": picking.ModeVertex,
	"2": picking.ModeEdge,
	"3": picking.ModeFace,
}

var axisKeys = map[string]geometry.Axis{
	"x": geometry.AxisX,
	"y": geometry.AxisY,
	"z": geometry.AxisZ,
}

// textTargets are focus targets that receive typed text
var textTargets = map[string]bool{
	"input":    true,
	"textarea": true,
}

// KeyDown handles a key press. It reports whether the key was bound.
func (c *Controller) KeyDown(ev KeyEvent) bool {
	if textTargets[strings.ToLower(ev.Target)] {
		return false
	}
	key := strings.ToLower(ev.Key)
	ctrl := ev.Ctrl || ev.Meta
	c.revalidate()
	if c.drag != nil {
		return c.dragKey(key, ev)
	}

	if ctrl {
		switch {
		case key == "z" && ev.Shift, key == "y":
			c.Redo()
		case key == "z":
			c.Undo()
		case key == "a":
			c.SelectAll()
		default:
			return false
		}
		return true
	}

	if ev.Shift {
		switch key {
		case "w":
			c.ToggleWireframe()
			return true
		case "x":
			c.ToggleLiveSymmetry()
			return true
		}
	}

	if tool, ok := toolKeys[key]; ok {
		c.SetTool(tool)
		return true
	}
	if mode, ok := modeKeys[key]; ok {
		c.SetMode(mode)
		return true
	}
	if axis, ok := axisKeys[key]; ok {
		c.ToggleAxis(axis)
		return true
	}

	switch key {
	case "f":
		c.Frame()
	case "delete", "backspace":
		c.Delete()
	case "d":
		c.Duplicate()
	case "m":
		c.Mirror()
	case "l":
		c.Smooth()
	case "k":
		c.SplitEdge()
	case "j":
		c.Merge()
	case "n":
		c.ToggleSnap()
	case "escape":
		c.Cancel()
		c.selection.Clear(c.mode)
	default:
		return false
	}
	return true
}

// dragKey handles a key press while a drag is running. Only keys that adjust
// the drag or the view are honoured; edits wait until the drag ends.
func (c *Controller) dragKey(key string, ev KeyEvent) bool {
	if ev.Ctrl || ev.Meta {
		c.setStatus(StatusDragging)
		return false
	}
	if ev.Shift && key == "w" {
		c.ToggleWireframe()
		return true
	}
	if tool, ok := toolKeys[key]; ok {
		c.SetTool(tool)
		return true
	}
	if axis, ok := axisKeys[key]; ok {
		c.ToggleAxis(axis)
		return true
	}
	switch key {
	case "f":
		c.Frame()
	case "n":
		c.ToggleSnap()
	case "escape":
		c.Cancel()
		c.selection.Clear(c.mode)
	default:
		c.setStatus(StatusDragging)
		return false
	}
	return true
}
