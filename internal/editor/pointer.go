package editor

import (
	"fmt"

	"github.com/philipparndt/gomesh/internal/metrics"
	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/picking"
)

// snapping reports whether snapping applies to an event
func (c *Controller) snapping(mods Modifiers) bool {
	return c.snap || mods.Shift
}

// PointerDown handles a primary button press
func (c *Controller) PointerDown(ev PointerEvent) {
	if c.drag != nil {
		return
	}
	c.revalidate()
	switch {
	case c.tool.transforms():
		c.beginDrag(ev)
	case c.tool == ToolAddVertex:
		c.addVertex(ev)
	case c.tool == ToolMakeTriangle:
		c.pickTriangleCorner(ev)
	case c.tool == ToolExtrude || c.tool == ToolInset:
		c.faceOperation(ev)
	default:
		c.selectAt(ev)
	}
}

// PointerMove handles pointer motion. Only drags react to it.
func (c *Controller) PointerMove(ev PointerEvent) {
	if c.drag == nil {
		return
	}
	current, ok := c.dragPlaneHit(ev.Position)
	if !ok {
		return
	}
	c.applyDrag(current, c.snapping(ev.Modifiers))
}

// PointerUp ends a drag. A drag that never moved leaves no undo step.
func (c *Controller) PointerUp(PointerEvent) {
	if c.drag == nil {
		return
	}
	d := c.drag
	c.drag = nil
	c.setOrbit(true)
	if !d.changed {
		c.history.Discard()
	}
	metrics.RecordOperation(d.tool.String(), d.changed)
	metrics.SetHistoryDepth(c.history.UndoDepth())
	c.logger.Debug("drag finished", "tool", d.tool.String(), "vertices", len(d.indices), "changed", d.changed)
}

// Cancel aborts a running drag, restoring pre-drag positions and dropping
// its undo step, and clears the make-triangle buffer. It is also the
// teardown hook when the editor goes away mid-drag.
func (c *Controller) Cancel() {
	c.triBuffer = nil
	if c.drag == nil {
		return
	}
	c.restoreDrag()
	c.drag = nil
	c.history.Discard()
	c.setOrbit(true)
	c.setStatus("cancelled")
}

func (c *Controller) setOrbit(enabled bool) {
	if c.orbit != nil {
		c.orbit.SetEnabled(enabled)
	}
}

func (c *Controller) selectAt(ev PointerEvent) {
	hit, ok := c.picker.Pick(c.mesh, c.mode, ev.Position)
	if !ok {
		if !ev.Shift && !ev.Ctrl && !ev.Meta {
			c.selection.Clear(c.mode)
		}
		return
	}
	switch {
	case ev.Ctrl || ev.Meta:
		c.selection.Toggle(hit)
	case ev.Shift:
		c.selection.Add(hit)
	default:
		c.selection.Replace(hit)
	}
	c.setStatus(fmt.Sprintf("%d %s selected", c.selection.Len(), c.mode))
}

func (c *Controller) addVertex(ev PointerEvent) {
	p, ok := c.picker.Ground(ev.Position, c.cfg.Editor.GroundY)
	if !ok {
		c.setStatus(StatusNoGroundHit)
		return
	}
	if c.snapping(ev.Modifiers) {
		p = p.Snap(c.cfg.Editor.SnapStep)
		p.Y = c.cfg.Editor.GroundY
	}
	var index int
	c.edit("add-vertex", func() bool {
		index = c.mesh.AddVertex(p)
		return true
	})
	c.SetMode(picking.ModeVertex)
	c.selection.Replace(picking.Hit{Mode: picking.ModeVertex, Index: index})
	c.setStatus(fmt.Sprintf("vertex %d added", index))
}

func (c *Controller) pickTriangleCorner(ev PointerEvent) {
	hit, ok := c.picker.PickVertex(c.mesh, ev.Position)
	if !ok {
		return
	}
	for _, i := range c.triBuffer {
		if i == hit.Index {
			return
		}
	}
	c.triBuffer = append(c.triBuffer, hit.Index)
	if len(c.triBuffer) < 3 {
		c.setStatus(fmt.Sprintf("triangle %d/3", len(c.triBuffer)))
		return
	}
	corners := c.triBuffer
	c.triBuffer = nil
	if c.edit("make-triangle", func() bool {
		return c.mesh.AddFace(corners[0], corners[1], corners[2])
	}) {
		c.setStatus("triangle added")
		return
	}
	c.setStatus(StatusInvalidFace)
}

func (c *Controller) faceOperation(ev PointerEvent) {
	hit, ok := c.picker.PickFace(c.mesh, ev.Position)
	if !ok {
		return
	}
	var face int
	applied := false
	switch c.tool {
	case ToolExtrude:
		applied = c.edit("extrude-face", func() bool {
			var ok bool
			face, ok = c.mesh.ExtrudeFace(hit.Index, c.cfg.Operations.ExtrudeHeight)
			return ok
		})
	case ToolInset:
		applied = c.edit("bevel-inset", func() bool {
			var ok bool
			face, ok = c.mesh.InsetFace(hit.Index, c.cfg.Operations.InsetAmount, c.cfg.Operations.InsetHeight)
			return ok
		})
	}
	if !applied {
		return
	}
	c.SetMode(picking.ModeFace)
	c.selection.Replace(picking.Hit{Mode: picking.ModeFace, Index: face})
	c.setStatus(c.tool.String() + " applied")
}

func (c *Controller) beginDrag(ev PointerEvent) {
	if c.selection.Empty() {
		if hit, ok := c.picker.Pick(c.mesh, c.mode, ev.Position); ok {
			c.selection.Replace(hit)
		}
	}
	indices := c.selection.Vertices(c.mesh)
	if len(indices) == 0 {
		c.setStatus(StatusNoSelection)
		return
	}
	pivot := c.mesh.Centroid(indices)
	ray := c.picker.Camera().Ray(ev.Position)
	normal := dragPlaneNormal(c.axis, ray.Direction)
	start, ok := ray.IntersectPlane(pivot, normal)
	if !ok {
		c.setStatus(StatusNoGroundHit)
		return
	}

	d := &dragState{
		tool:        c.tool,
		start:       start,
		pivot:       pivot,
		planeNormal: normal,
		indices:     indices,
		original:    make(map[int]geometry.Vector3, len(indices)),
		mirrors:     make(map[int]int),
	}
	for _, i := range indices {
		d.original[i] = c.mesh.Vertex(i)
	}
	if c.mesh.LiveSymmetryX() {
		for source, mirror := range c.mesh.MirrorPartners(indices, c.cfg.Operations.WeldEpsilon) {
			if _, selected := d.original[mirror]; selected {
				continue
			}
			d.mirrors[mirror] = source
			d.original[mirror] = c.mesh.Vertex(mirror)
		}
	}

	c.history.Snapshot()
	c.drag = d
	c.setOrbit(false)
	c.setStatus(c.tool.String())
}

// dragPlaneHit intersects the pointer ray with the active drag plane
func (c *Controller) dragPlaneHit(at picking.NDC) (geometry.Vector3, bool) {
	return c.picker.Camera().Ray(at).IntersectPlane(c.drag.pivot, c.drag.planeNormal)
}
