// Package history provides snapshot-based undo and redo over any state that
// can be captured and restored as a value.
package history

// DefaultCapacity is the number of undo steps kept by default
const DefaultCapacity = 150

// History keeps bounded undo and redo stacks of snapshots
type History[T any] struct {
	capacity int
	save     func() T
	restore  func(T)
	undo     []T
	redo     []T
}

// New creates a history. save captures the current state and restore
// replaces it. A capacity below one uses DefaultCapacity.
func New[T any](capacity int, save func() T, restore func(T)) *History[T] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &History[T]{capacity: capacity, save: save, restore: restore}
}

// Snapshot records the current state as an undo step, evicting the oldest
// step past capacity, and clears the redo stack
func (h *History[T]) Snapshot() {
	h.undo = append(h.undo, h.save())
	if len(h.undo) > h.capacity {
		h.undo = append(h.undo[:0], h.undo[len(h.undo)-h.capacity:]...)
	}
	h.redo = h.redo[:0]
}

// Undo restores the most recent snapshot. The current state moves to the
// redo stack. It returns false when there is nothing to undo.
func (h *History[T]) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, h.save())
	h.restore(prev)
	return true
}

// Redo re-applies the most recently undone state. The current state moves
// to the undo stack. It returns false when there is nothing to redo.
func (h *History[T]) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, h.save())
	h.restore(next)
	return true
}

// Discard drops the most recent undo step without restoring it
func (h *History[T]) Discard() bool {
	if len(h.undo) == 0 {
		return false
	}
	h.undo = h.undo[:len(h.undo)-1]
	return true
}

// CanUndo reports whether an undo step exists
func (h *History[T]) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether a redo step exists
func (h *History[T]) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoDepth returns the number of undo steps
func (h *History[T]) UndoDepth() int {
	return len(h.undo)
}

// RedoDepth returns the number of redo steps
func (h *History[T]) RedoDepth() int {
	return len(h.redo)
}

// Clear drops both stacks
func (h *History[T]) Clear() {
	h.undo = nil
	h.redo = nil
}
