// Package editor turns pointer and keyboard events into mesh edits
package editor

import (
	"errors"
	"log/slog"

	"github.com/philipparndt/gomesh/internal/config"
	"github.com/philipparndt/gomesh/internal/metrics"
	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/history"
	"github.com/philipparndt/gomesh/pkg/mesh"
	"github.com/philipparndt/gomesh/pkg/picking"
)

// ErrDragging is returned by edits attempted while a transform drag is running
var ErrDragging = errors.New("drag in progress")

// Options wires the controller to its collaborators. All fields are optional.
type Options struct {
	Logger *slog.Logger
	Orbit  OrbitControls
	Framer Framer
}

// Controller is the interaction state machine of the editor. It is not safe
// for concurrent use; all events must come from one goroutine.
type Controller struct {
	mesh    *mesh.EditableMesh
	picker  *picking.Picker
	history *history.History[mesh.Document]
	cfg     config.Config
	logger  *slog.Logger
	orbit   OrbitControls
	framer  Framer

	tool      Tool
	mode      picking.Mode
	selection picking.Selection
	axis      geometry.Axis
	snap      bool
	wireframe bool

	// vertices picked so far by the make-triangle tool
	triBuffer []int
	drag      *dragState
	status    string
	// mesh prune count the face and edge selections were made against
	prunes uint64
}

// New creates a controller editing m. Picks go through camera.
func New(m *mesh.EditableMesh, camera picking.Camera, cfg config.Config, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		mesh: m,
		picker: picking.NewPicker(camera, picking.Options{
			VertexThreshold: cfg.Picking.VertexThreshold,
			EdgeThreshold:   cfg.Picking.EdgeThreshold,
		}),
		cfg:    cfg,
		logger: logger,
		orbit:  opts.Orbit,
		framer: opts.Framer,
		tool:   ToolSelect,
		mode:   picking.ModeVertex,
		snap:   cfg.Editor.SnapEnabled,
		status: StatusReady,
	}
	c.history = history.New(cfg.History.Capacity, m.ToJSON, c.restore)
	c.selection.Clear(c.mode)
	c.prunes = m.Prunes()
	return c
}

// Mesh returns the edited mesh
func (c *Controller) Mesh() *mesh.EditableMesh {
	return c.mesh
}

// Tool returns the active tool
func (c *Controller) Tool() Tool {
	return c.tool
}

// Mode returns the selection mode
func (c *Controller) Mode() picking.Mode {
	return c.mode
}

// Selection returns a copy of the current selection
func (c *Controller) Selection() picking.Selection {
	c.revalidate()
	return picking.Selection{
		Mode:    c.selection.Mode,
		Indices: append([]int(nil), c.selection.Indices...),
		Edges:   append([]mesh.Edge(nil), c.selection.Edges...),
	}
}

// Axis returns the active axis lock
func (c *Controller) Axis() geometry.Axis {
	return c.axis
}

// Snapping reports whether snapping is on without holding shift
func (c *Controller) Snapping() bool {
	return c.snap
}

// Wireframe reports whether the wireframe overlay is requested
func (c *Controller) Wireframe() bool {
	return c.wireframe
}

// Dragging reports whether a transform drag is in progress
func (c *Controller) Dragging() bool {
	return c.drag != nil
}

// Status returns the last status message
func (c *Controller) Status() string {
	return c.status
}

// History returns the undo history
func (c *Controller) History() *history.History[mesh.Document] {
	return c.history
}

func (c *Controller) setStatus(status string) {
	c.status = status
	c.logger.Debug("editor status", "status", status)
}

// SetTool switches the active tool. A running drag is cancelled and the
// make-triangle buffer is cleared.
func (c *Controller) SetTool(t Tool) {
	if c.drag != nil {
		c.Cancel()
	}
	c.tool = t
	c.triBuffer = nil
	if t == ToolExtrude || t == ToolInset {
		c.SetMode(picking.ModeFace)
	}
	c.setStatus(t.String())
}

// SetMode switches the selection mode and clears the selection
func (c *Controller) SetMode(mode picking.Mode) {
	if c.mode == mode {
		return
	}
	c.mode = mode
	c.selection.Clear(mode)
	c.setStatus(mode.String() + " mode")
}

// ToggleAxis locks transforms to axis, or unlocks when it is already locked
func (c *Controller) ToggleAxis(axis geometry.Axis) {
	if c.axis == axis {
		c.axis = geometry.AxisNone
	} else {
		c.axis = axis
	}
	c.setStatus("axis lock: " + c.axis.String())
}

// ToggleSnap toggles permanent snapping
func (c *Controller) ToggleSnap() {
	c.snap = !c.snap
	if c.snap {
		c.setStatus("snap on")
	} else {
		c.setStatus("snap off")
	}
}

// ToggleWireframe toggles the wireframe overlay flag
func (c *Controller) ToggleWireframe() {
	c.wireframe = !c.wireframe
}

// ToggleLiveSymmetry toggles live X symmetry on the mesh document
func (c *Controller) ToggleLiveSymmetry() {
	if c.busy() {
		return
	}
	c.edit("live-symmetry", func() bool {
		c.mesh.SetLiveSymmetryX(!c.mesh.LiveSymmetryX())
		return true
	})
}

// edit runs a mutating operation under an undo snapshot. When fn reports
// that nothing changed the snapshot is discarded. Edits are refused while a
// drag holds its own snapshot.
func (c *Controller) edit(name string, fn func() bool) bool {
	if c.busy() {
		return false
	}
	c.history.Snapshot()
	ok := fn()
	if !ok {
		c.history.Discard()
	}
	metrics.RecordOperation(name, ok)
	metrics.SetHistoryDepth(c.history.UndoDepth())
	c.logger.Debug("operation",
		"operation", name,
		"applied", ok,
		"vertices", c.mesh.VertexCount(),
		"faces", c.mesh.FaceCount())
	return ok
}

// restore loads a history snapshot into the mesh
func (c *Controller) restore(doc mesh.Document) {
	if err := c.mesh.FromJSON(doc); err != nil {
		c.logger.Error("failed to restore snapshot", "error", err)
	}
}

// busy reports whether a drag is running and sets the status if so
func (c *Controller) busy() bool {
	if c.drag == nil {
		return false
	}
	c.setStatus(StatusDragging)
	return true
}

// revalidate drops a face selection once Sync has pruned and renumbered
// faces. Pruning never removes vertices, so vertex and edge selections and
// the make-triangle buffer stay valid.
func (c *Controller) revalidate() {
	prunes := c.mesh.Prunes()
	if prunes == c.prunes {
		return
	}
	c.prunes = prunes
	if c.selection.Mode == picking.ModeFace && !c.selection.Empty() {
		c.selection.Clear(picking.ModeFace)
		c.logger.Debug("face selection dropped after prune")
	}
}

// resetSelection drops selection state that may refer to renumbered
// elements
func (c *Controller) resetSelection() {
	c.selection.Clear(c.mode)
	c.triBuffer = nil
}

// Undo restores the previous snapshot
func (c *Controller) Undo() bool {
	if c.drag != nil {
		return false
	}
	if !c.history.Undo() {
		c.setStatus(StatusNothingToUndo)
		return false
	}
	c.resetSelection()
	metrics.SetHistoryDepth(c.history.UndoDepth())
	c.setStatus(StatusUndo)
	return true
}

// Redo re-applies the last undone snapshot
func (c *Controller) Redo() bool {
	if c.drag != nil {
		return false
	}
	if !c.history.Redo() {
		c.setStatus(StatusNothingToRedo)
		return false
	}
	c.resetSelection()
	metrics.SetHistoryDepth(c.history.UndoDepth())
	c.setStatus(StatusRedo)
	return true
}

// Import replaces the mesh with a JSON document under an undo snapshot. On
// error the mesh is unchanged and the status reports the failure.
func (c *Controller) Import(data []byte) error {
	if c.busy() {
		return ErrDragging
	}
	var parseErr error
	c.edit("import", func() bool {
		parseErr = c.mesh.Decode(data)
		return parseErr == nil
	})
	if parseErr != nil {
		c.setStatus(StatusParseFailed)
		c.logger.Warn("import failed", "error", parseErr)
		return parseErr
	}
	c.resetSelection()
	c.setStatus(StatusImported)
	return nil
}

// Export returns the mesh as a JSON document
func (c *Controller) Export() ([]byte, error) {
	return c.mesh.Encode()
}
