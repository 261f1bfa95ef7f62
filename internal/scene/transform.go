package scene

import (
	"fmt"

	"collage-maker/pkg/geometry"
)

// gestureKind identifies the active gesture of an Engine.
type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureMove
	gestureResize
)

func (k gestureKind) String() string {
	switch k {
	case gestureMove:
		return "move"
	case gestureResize:
		return "resize"
	default:
		return "none"
	}
}

// Engine applies move and resize gestures to a scene as atomic
// begin/update/end sequences. Every update recomputes candidate bounds from
// the captured starting bounds plus the cumulative delta, so long drags do
// not accumulate floating error, and every update clamps progressively: the
// scene is legal after each intermediate step, not just at the end.
type Engine struct {
	scene *Scene
	kind  gestureKind

	// Move gesture: the participating items and their captured bounds.
	moving    []*PlacedItem
	moveStart []geometry.Rect

	// Resize gesture.
	resizing    *PlacedItem
	resizeStart geometry.Rect
	handle      geometry.Handle
}

// NewEngine creates a transform engine bound to the scene.
func NewEngine(s *Scene) *Engine {
	return &Engine{scene: s}
}

// Active reports whether a gesture is in progress.
func (e *Engine) Active() bool {
	return e.kind != gestureNone
}

// BeginMove starts a move gesture over the current selection, capturing each
// member's starting bounds. An empty selection begins a gesture whose updates
// are no-ops. Beginning while another gesture is active is a caller bug.
func (e *Engine) BeginMove() error {
	if e.kind != gestureNone {
		return fmt.Errorf("begin move during %s gesture: %w", e.kind, ErrInvalidOperation)
	}
	items := e.scene.Selection().Items()
	e.kind = gestureMove
	e.moving = items
	e.moveStart = make([]geometry.Rect, len(items))
	for i, it := range items {
		e.moveStart[i] = it.Bounds
	}
	return nil
}

// UpdateMove translates every item of the active move gesture by the
// cumulative delta (dx, dy) from its captured bounds. If the union bounding
// box of the candidate positions exceeds the canvas, the delta is corrected
// uniformly for the whole selection, so relative offsets between members are
// preserved at the boundary instead of members clamping independently.
func (e *Engine) UpdateMove(dx, dy float64) error {
	if e.kind != gestureMove {
		return fmt.Errorf("update move without begin: %w", ErrInvalidOperation)
	}
	if len(e.moving) == 0 {
		return nil
	}

	candidates := make([]geometry.Rect, len(e.moving))
	for i, start := range e.moveStart {
		candidates[i] = start.Translated(dx, dy)
	}

	canvas := e.scene.CanvasBounds()
	union := geometry.BoundingBox(candidates)
	cdx, cdy := correctionInto(union, canvas)

	for i, it := range e.moving {
		it.Bounds = candidates[i].Translated(cdx, cdy)
	}
	e.scene.touch()
	return nil
}

// BeginResize starts a resize gesture on a single item. Resize is undefined
// for multi-item selections; requesting one is a caller contract violation.
// An item no longer owned by the scene yields ErrNotFound.
func (e *Engine) BeginResize(id string, handle geometry.Handle) error {
	if e.kind != gestureNone {
		return fmt.Errorf("begin resize during %s gesture: %w", e.kind, ErrInvalidOperation)
	}
	if e.scene.Selection().Len() > 1 {
		return fmt.Errorf("resize with %d items selected: %w", e.scene.Selection().Len(), ErrInvalidOperation)
	}
	it := e.scene.Item(id)
	if it == nil {
		return fmt.Errorf("resize %q: %w", id, ErrNotFound)
	}
	e.kind = gestureResize
	e.resizing = it
	e.resizeStart = it.Bounds
	e.handle = handle
	return nil
}

// UpdateResize recomputes the resized rectangle from the captured starting
// bounds, the handle, and the cumulative delta, clamped to the canvas without
// moving the handle's anchor point.
func (e *Engine) UpdateResize(dx, dy float64, preserveAspect bool) error {
	if e.kind != gestureResize {
		return fmt.Errorf("update resize without begin: %w", ErrInvalidOperation)
	}
	e.resizing.Bounds = geometry.ResizeWithinBounds(
		e.resizeStart, e.handle, dx, dy, MinItemSize, preserveAspect, e.scene.CanvasBounds())
	e.scene.touch()
	return nil
}

// End commits the active gesture. Bounds are already legal by construction,
// so this only clears gesture state. Ending with no active gesture is a
// caller bug.
func (e *Engine) End() error {
	if e.kind == gestureNone {
		return fmt.Errorf("end without active gesture: %w", ErrInvalidOperation)
	}
	e.reset()
	return nil
}

// Cancel aborts the active gesture and restores every participating item to
// its captured starting bounds, leaving the scene exactly as it was before
// the begin call. Cancelling with no active gesture is a no-op, since aborts
// can race with gesture completion.
func (e *Engine) Cancel() {
	switch e.kind {
	case gestureMove:
		for i, it := range e.moving {
			it.Bounds = e.moveStart[i]
		}
		e.scene.touch()
	case gestureResize:
		e.resizing.Bounds = e.resizeStart
		e.scene.touch()
	}
	e.reset()
}

// DeleteSelected removes every selected item from the scene and empties the
// selection. The whole batch is removed atomically; an empty selection is a
// no-op. Returns the number of items removed. Deleting during an active
// gesture is a caller bug.
func (e *Engine) DeleteSelected() (int, error) {
	if e.kind != gestureNone {
		return 0, fmt.Errorf("delete during %s gesture: %w", e.kind, ErrInvalidOperation)
	}
	selected := e.scene.Selection().Items()
	if len(selected) == 0 {
		return 0, nil
	}

	doomed := make(map[*PlacedItem]bool, len(selected))
	for _, it := range selected {
		doomed[it] = true
	}
	kept := e.scene.items[:0]
	for _, it := range e.scene.items {
		if !doomed[it] {
			kept = append(kept, it)
		}
	}
	e.scene.items = kept
	e.scene.selection.Clear()
	e.scene.touch()
	return len(selected), nil
}

func (e *Engine) reset() {
	e.kind = gestureNone
	e.moving = nil
	e.moveStart = nil
	e.resizing = nil
	e.resizeStart = geometry.Rect{}
}

// correctionInto returns the translation that moves rect minimally so it lies
// within bounds. rect is assumed to be no larger than bounds on either axis.
func correctionInto(rect, bounds geometry.Rect) (dx, dy float64) {
	if rect.X < bounds.X {
		dx = bounds.X - rect.X
	} else if rect.Right() > bounds.Right() {
		dx = bounds.Right() - rect.Right()
	}
	if rect.Y < bounds.Y {
		dy = bounds.Y - rect.Y
	} else if rect.Bottom() > bounds.Bottom() {
		dy = bounds.Bottom() - rect.Bottom()
	}
	return dx, dy
}
