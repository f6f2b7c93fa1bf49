package editor

import (
	"math"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

// dragState holds a transform drag from pointer-down to pointer-up
type dragState struct {
	tool        Tool
	start       geometry.Vector3         // drag plane hit at pointer-down
	pivot       geometry.Vector3         // selection centroid
	planeNormal geometry.Vector3         // normal of the drag plane through pivot
	indices     []int                    // selected vertices
	original    map[int]geometry.Vector3 // positions before the drag, mirrors included
	mirrors     map[int]int              // mirror vertex -> selected source vertex
	changed     bool
}

// dragPlaneNormal returns the plane the pointer is tracked on. Drags run on
// the horizontal plane through the pivot, except for a Y lock which needs a
// vertical plane facing the viewer.
func dragPlaneNormal(axis geometry.Axis, view geometry.Vector3) geometry.Vector3 {
	if axis != geometry.AxisY {
		return geometry.NewVector3(0, 1, 0)
	}
	n := geometry.NewVector3(view.X, 0, view.Z).Normalize()
	if n == (geometry.Vector3{}) {
		return geometry.NewVector3(0, 0, 1)
	}
	return n
}

// transformed returns where p ends up for the current pointer position
func (c *Controller) transformed(d *dragState, p geometry.Vector3, current geometry.Vector3, snap bool) geometry.Vector3 {
	switch d.tool {
	case ToolMove:
		return p.Add(c.moveDelta(d, current, snap))
	case ToolRotate:
		axis, angle := c.rotation(d, current, snap)
		return p.RotateAround(d.pivot, axis, angle)
	case ToolScale:
		return d.pivot.Add(p.Sub(d.pivot).Scale(c.scaleFactor(d, current, snap)))
	default:
		return p
	}
}

func (c *Controller) moveDelta(d *dragState, current geometry.Vector3, snap bool) geometry.Vector3 {
	delta := current.Sub(d.start).OnlyAxis(c.axis)
	if snap {
		delta = delta.Snap(c.cfg.Editor.SnapStep)
	}
	return delta
}

// rotation returns the rotation axis and the signed angle swept from the
// drag start around the pivot
func (c *Controller) rotation(d *dragState, current geometry.Vector3, snap bool) (geometry.Vector3, float64) {
	axis := c.axis.Unit()
	if c.axis == geometry.AxisNone {
		axis = geometry.NewVector3(0, 1, 0)
	}
	flatten := func(v geometry.Vector3) geometry.Vector3 {
		return v.Sub(axis.Mul(v.Dot(axis)))
	}
	a := flatten(d.start.Sub(d.pivot))
	b := flatten(current.Sub(d.pivot))
	if a.Length() < 1e-9 || b.Length() < 1e-9 {
		return axis, 0
	}
	angle := math.Atan2(axis.Dot(a.Cross(b)), a.Dot(b))
	if snap {
		step := c.cfg.Editor.SnapAngle * math.Pi / 180
		angle = geometry.SnapValue(angle, step)
	}
	return axis, angle
}

// scaleFactor returns the per-axis scale: the ratio of the pointer's
// distance from the pivot now and at the drag start
func (c *Controller) scaleFactor(d *dragState, current geometry.Vector3, snap bool) geometry.Vector3 {
	startDist := d.start.Distance(d.pivot)
	factor := 1.0
	if startDist > 1e-9 {
		factor = current.Distance(d.pivot) / startDist
	}
	if snap {
		factor = geometry.SnapValue(factor, c.cfg.Editor.ScaleStep)
	}
	if c.axis == geometry.AxisNone {
		return geometry.NewVector3(factor, factor, factor)
	}
	s := geometry.NewVector3(1, 1, 1)
	switch c.axis {
	case geometry.AxisX:
		s.X = factor
	case geometry.AxisY:
		s.Y = factor
	case geometry.AxisZ:
		s.Z = factor
	}
	return s
}

// applyDrag writes transformed pre-drag positions into the mesh
func (c *Controller) applyDrag(current geometry.Vector3, snap bool) {
	d := c.drag
	for _, i := range d.indices {
		p := c.transformed(d, d.original[i], current, snap)
		c.mesh.SetVertex(i, p)
	}
	for mirror, source := range d.mirrors {
		c.mesh.SetVertex(mirror, c.mesh.Vertex(source).MirrorX())
	}
	d.changed = true
}

// restoreDrag puts every touched vertex back to its pre-drag position
func (c *Controller) restoreDrag() {
	for i, p := range c.drag.original {
		c.mesh.SetVertex(i, p)
	}
}
