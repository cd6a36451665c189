// ABOUTME: Bounded undo/redo history of buffer snapshots
// ABOUTME: Undo and Redo trade the caller's current state for the stored one

package undo

// History keeps snapshots taken before each edit. Undo hands back the
// previous snapshot and parks the caller's current state for Redo.
type History[S any] struct {
	past   []S
	future []S
	depth  int
}

// New creates a History that retains at most depth snapshots on each side.
func New[S any](depth int) *History[S] {
	if depth < 1 {
		depth = 1
	}
	return &History[S]{
		past:   make([]S, 0, depth),
		future: make([]S, 0, depth),
		depth:  depth,
	}
}

// Record stores the state as it was before an edit and drops redo history.
func (h *History[S]) Record(before S) {
	h.past = pushBounded(h.past, before, h.depth)
	h.future = h.future[:0]
}

// Undo returns the most recent recorded state. current is kept so that a
// following Redo can restore it. Returns false when there is nothing to undo.
func (h *History[S]) Undo(current S) (S, bool) {
	if len(h.past) == 0 {
		var zero S
		return zero, false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = pushBounded(h.future, current, h.depth)
	return prev, true
}

// Redo returns the state most recently replaced by Undo.
func (h *History[S]) Redo(current S) (S, bool) {
	if len(h.future) == 0 {
		var zero S
		return zero, false
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = pushBounded(h.past, current, h.depth)
	return next, true
}

// CanUndo reports whether Undo would succeed.
func (h *History[S]) CanUndo() bool {
	return len(h.past) > 0
}

// CanRedo reports whether Redo would succeed.
func (h *History[S]) CanRedo() bool {
	return len(h.future) > 0
}

// pushBounded appends s, evicting the oldest entry once depth is reached.
func pushBounded[S any](stack []S, s S, depth int) []S {
	if len(stack) >= depth {
		copy(stack, stack[1:])
		stack = stack[:len(stack)-1]
	}
	return append(stack, s)
}
