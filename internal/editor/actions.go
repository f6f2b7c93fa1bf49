package editor

import (
	"fmt"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
	"github.com/philipparndt/gomesh/pkg/picking"
)

// SelectAll selects every element of the current mode
func (c *Controller) SelectAll() {
	if c.busy() {
		return
	}
	c.selection.Clear(c.mode)
	switch c.mode {
	case picking.ModeVertex:
		for i := 0; i < c.mesh.VertexCount(); i++ {
			c.selection.Indices = append(c.selection.Indices, i)
		}
	case picking.ModeEdge:
		c.selection.Edges = append(c.selection.Edges, c.mesh.Edges()...)
	case picking.ModeFace:
		for i := 0; i < c.mesh.FaceCount(); i++ {
			c.selection.Indices = append(c.selection.Indices, i)
		}
	}
	c.setStatus(fmt.Sprintf("%d %s selected", c.selection.Len(), c.mode))
}

// Delete removes the selected elements. Vertices still used by a face are
// kept and reported.
func (c *Controller) Delete() {
	if c.busy() {
		return
	}
	c.revalidate()
	if c.selection.Empty() {
		c.setStatus(StatusNoSelection)
		return
	}
	var inUse []int
	removed := 0
	c.edit("delete", func() bool {
		switch c.selection.Mode {
		case picking.ModeVertex:
			removed, inUse = c.mesh.DeleteVertices(c.selection.Indices)
		case picking.ModeEdge:
			for _, e := range c.selection.Edges {
				removed += c.mesh.DeleteEdge(e)
			}
		case picking.ModeFace:
			removed = c.mesh.DeleteFaces(c.selection.Indices)
		}
		return removed > 0
	})
	c.resetSelection()
	if len(inUse) > 0 {
		c.setStatus(StatusVertexInUse)
		c.logger.Info("vertices kept", "in_use", inUse)
		return
	}
	c.setStatus(fmt.Sprintf("%d deleted", removed))
}

// Duplicate copies the selection and selects the copy. Edges are copied as
// their two endpoints, which become a vertex selection.
func (c *Controller) Duplicate() {
	if c.busy() {
		return
	}
	c.revalidate()
	if c.selection.Empty() {
		c.setStatus(StatusNoSelection)
		return
	}
	var created []int
	mode := c.selection.Mode
	c.edit("duplicate", func() bool {
		switch mode {
		case picking.ModeVertex:
			created = c.mesh.DuplicateVertices(c.selection.Indices)
		case picking.ModeEdge:
			for _, e := range c.selection.Edges {
				created = append(created, c.mesh.DuplicateEdge(e)...)
			}
		case picking.ModeFace:
			created = c.mesh.DuplicateFaces(c.selection.Indices)
		}
		return len(created) > 0
	})
	if len(created) == 0 {
		return
	}
	if mode == picking.ModeEdge {
		mode = picking.ModeVertex
	}
	c.SetMode(mode)
	c.selection.Clear(mode)
	c.selection.Indices = created
	c.setStatus(fmt.Sprintf("%d duplicated", len(created)))
}

// Mirror reflects the mesh across the YZ plane and welds the seam
func (c *Controller) Mirror() {
	if c.busy() {
		return
	}
	c.edit("mirror-x", func() bool {
		if c.mesh.VertexCount() == 0 {
			return false
		}
		c.mesh.MirrorX(c.cfg.Operations.WeldEpsilon)
		return true
	})
	c.resetSelection()
	c.setStatus("mirrored")
}

// Smooth relaxes the whole mesh with the configured iterations and strength
func (c *Controller) Smooth() {
	if c.busy() {
		return
	}
	iterations := c.cfg.Operations.SmoothIterations
	c.edit("smooth", func() bool {
		if iterations <= 0 || c.mesh.VertexCount() == 0 {
			return false
		}
		c.mesh.Smooth(iterations, c.cfg.Operations.SmoothLambda)
		return true
	})
	c.setStatus("smoothed")
}

// SplitEdge splits the first selected edge at its midpoint and selects the
// new vertex
func (c *Controller) SplitEdge() {
	if c.busy() {
		return
	}
	edges := c.selectedEdges()
	if c.selection.Mode != picking.ModeEdge || len(edges) == 0 {
		c.setStatus(StatusNeedEdge)
		return
	}
	edge := edges[0]
	var mid int
	if !c.edit("split-edge", func() bool {
		var ok bool
		mid, ok = c.mesh.SplitEdge(edge)
		return ok
	}) {
		c.setStatus(StatusNeedEdge)
		return
	}
	c.SetMode(picking.ModeVertex)
	c.selection.Replace(picking.Hit{Mode: picking.ModeVertex, Index: mid})
	c.setStatus("edge split")
}

// Merge collapses the selected vertices into one
func (c *Controller) Merge() {
	if c.busy() {
		return
	}
	c.revalidate()
	indices := c.selection.Vertices(c.mesh)
	if len(indices) < 2 {
		c.setStatus(StatusNeedTwoVertices)
		return
	}
	var merged int
	if !c.edit("merge", func() bool {
		var ok bool
		merged, ok = c.mesh.MergeVertices(indices)
		return ok
	}) {
		return
	}
	c.SetMode(picking.ModeVertex)
	c.resetSelection()
	c.selection.Replace(picking.Hit{Mode: picking.ModeVertex, Index: merged})
	c.setStatus("merged")
}

// Weld merges coincident vertices within the configured epsilon
func (c *Controller) Weld() int {
	if c.busy() {
		return 0
	}
	var merged int
	c.edit("weld", func() bool {
		merged = c.mesh.Weld(c.cfg.Operations.WeldEpsilon)
		return merged > 0
	})
	if merged > 0 {
		c.resetSelection()
	}
	c.setStatus(fmt.Sprintf("%d welded", merged))
	return merged
}

// Frame points the view at the selection, or the whole mesh when nothing
// is selected
func (c *Controller) Frame() {
	if c.framer == nil {
		return
	}
	c.revalidate()
	var bounds geometry.BoundingBox
	if indices := c.selection.Vertices(c.mesh); len(indices) > 0 {
		points := make([]geometry.Vector3, 0, len(indices))
		for _, i := range indices {
			if i < c.mesh.VertexCount() {
				points = append(points, c.mesh.Vertex(i))
			}
		}
		bounds = geometry.BoundsOf(points)
	} else {
		bounds = c.mesh.Bounds()
	}
	if bounds.Empty() {
		return
	}
	radius := bounds.Diagonal() / 2
	if radius < 0.5 {
		radius = 0.5
	}
	c.framer.Frame(bounds.Center(), radius)
}

// selectedEdges returns the selected edges that still exist in the mesh
func (c *Controller) selectedEdges() []mesh.Edge {
	var out []mesh.Edge
	for _, e := range c.selection.Edges {
		if c.mesh.HasEdge(e) {
			out = append(out, e)
		}
	}
	return out
}
