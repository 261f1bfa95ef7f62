package scene

import (
	"fmt"
	"sort"
	"time"

	"collage-maker/internal/catalog"
	"collage-maker/pkg/geometry"
)

// Default canvas dimensions, matching a fresh collage.
const (
	DefaultCanvasWidth  = 800.0
	DefaultCanvasHeight = 600.0
)

// Scene owns the ordered collection of placed items, the canvas dimensions,
// the selection set, and the collage metadata. All mutation goes through
// Scene methods (or the transform Engine in this package) so z-order and
// containment invariants hold after every operation.
type Scene struct {
	items     []*PlacedItem // insertion order; paint order is by ZOrder
	selection *SelectionSet

	width  float64
	height float64

	// Background is an opaque image reference (catalog filename or local
	// path) rendered behind all items. Empty means plain white.
	Background string

	Title       string
	Description string
	CreatedAt   time.Time
	ModifiedAt  time.Time

	nextID int
}

// NewScene creates an empty scene with the given canvas size. Sizes below
// the item minimum are raised to the defaults.
func NewScene(width, height float64) *Scene {
	if width < MinItemSize {
		width = DefaultCanvasWidth
	}
	if height < MinItemSize {
		height = DefaultCanvasHeight
	}
	now := time.Now()
	return &Scene{
		selection:  NewSelectionSet(),
		width:      width,
		height:     height,
		CreatedAt:  now,
		ModifiedAt: now,
		nextID:     1,
	}
}

// Width returns the canvas width.
func (s *Scene) Width() float64 { return s.width }

// Height returns the canvas height.
func (s *Scene) Height() float64 { return s.height }

// CanvasBounds returns the canvas rectangle at the origin.
func (s *Scene) CanvasBounds() geometry.Rect {
	return geometry.NewRect(0, 0, s.width, s.height)
}

// Selection returns the scene's selection set.
func (s *Scene) Selection() *SelectionSet {
	return s.selection
}

// Len returns the number of placed items.
func (s *Scene) Len() int {
	return len(s.items)
}

// Items returns the items in insertion order. The returned slice is a copy.
func (s *Scene) Items() []*PlacedItem {
	out := make([]*PlacedItem, len(s.items))
	copy(out, s.items)
	return out
}

// ItemsByZ returns the items in ascending paint order: lowest z-order first,
// ties broken by insertion order.
func (s *Scene) ItemsByZ() []*PlacedItem {
	out := s.Items()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZOrder < out[j].ZOrder
	})
	return out
}

// Item returns the item with the given ID, or nil.
func (s *Scene) Item(id string) *PlacedItem {
	for _, it := range s.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// touch updates the modification timestamp.
func (s *Scene) touch() {
	s.ModifiedAt = time.Now()
}

// AddItem places a new furniture instance with its default bounds centered
// at the drop position, boundary-clamped, on top of all existing items.
func (s *Scene) AddItem(record *catalog.FurnitureRecord, drop geometry.Point2D) (*PlacedItem, error) {
	if record == nil || record.ID == "" {
		return nil, validationErrorf("furniture_id", "missing furniture record")
	}

	item := newPlacedItem(fmt.Sprintf("item-%d", s.nextID), record, drop, s.CanvasBounds())
	s.nextID++
	item.ZOrder = s.maxZ() + 1
	s.items = append(s.items, item)
	s.touch()
	return item, nil
}

// RemoveItem removes the item with the given ID and evicts it from the
// selection. A missing ID returns ErrNotFound, which callers may treat as a
// no-op (the item may have been deleted by a queued event already).
func (s *Scene) RemoveItem(id string) error {
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.selection.remove(it)
			s.touch()
			return nil
		}
	}
	return fmt.Errorf("remove %q: %w", id, ErrNotFound)
}

// Clear removes every item and empties the selection.
func (s *Scene) Clear() {
	s.items = s.items[:0]
	s.selection.Clear()
	s.touch()
}

// BringToFront assigns the item the highest z-order.
func (s *Scene) BringToFront(id string) error {
	it := s.Item(id)
	if it == nil {
		return fmt.Errorf("bring to front %q: %w", id, ErrNotFound)
	}
	it.ZOrder = s.maxZ() + 1
	s.renormalizeZ()
	s.touch()
	return nil
}

// SendToBack assigns the item the lowest z-order.
func (s *Scene) SendToBack(id string) error {
	it := s.Item(id)
	if it == nil {
		return fmt.Errorf("send to back %q: %w", id, ErrNotFound)
	}
	it.ZOrder = s.minZ() - 1
	s.renormalizeZ()
	s.touch()
	return nil
}

// HitTest returns the topmost item containing the point, or nil.
func (s *Scene) HitTest(p geometry.Point2D) *PlacedItem {
	ordered := s.ItemsByZ()
	for i := len(ordered) - 1; i >= 0; i-- {
		if ordered[i].Bounds.Contains(p) {
			return ordered[i]
		}
	}
	return nil
}

// Resize changes the canvas dimensions and re-clamps every item into the new
// bounds. Items that no longer fit are shrunk or translated, never deleted.
func (s *Scene) Resize(width, height float64) error {
	if width < MinItemSize || height < MinItemSize {
		return validationErrorf("canvas", "size %gx%g below minimum %g", width, height, MinItemSize)
	}
	s.width = width
	s.height = height
	canvas := s.CanvasBounds()
	for _, it := range s.items {
		it.Bounds = clampItemBounds(it.Bounds, canvas)
	}
	s.touch()
	return nil
}

// clampItemBounds forces bounds into legal item geometry on the canvas: each
// dimension within [MinItemSize, canvas dimension], then the rect translated
// fully inside. Dimensions are clamped per axis, not scaled together, so the
// containment and minimum-size invariants always win over aspect ratio. The
// canvas is never smaller than MinItemSize, so a legal result exists.
func clampItemBounds(r, canvas geometry.Rect) geometry.Rect {
	if r.Width > canvas.Width {
		r.Width = canvas.Width
	}
	if r.Height > canvas.Height {
		r.Height = canvas.Height
	}
	if r.Width < MinItemSize {
		r.Width = MinItemSize
	}
	if r.Height < MinItemSize {
		r.Height = MinItemSize
	}
	return geometry.ClampRectToBounds(r, canvas)
}

// ToggleFlip flips the item horizontally.
func (s *Scene) ToggleFlip(id string) error {
	it := s.Item(id)
	if it == nil {
		return fmt.Errorf("flip %q: %w", id, ErrNotFound)
	}
	it.ToggleFlip()
	s.touch()
	return nil
}

// ApplyAdjustment sets one image adjustment field on the item, clamping the
// value to the field's range.
func (s *Scene) ApplyAdjustment(id string, field AdjustmentField, value int) error {
	it := s.Item(id)
	if it == nil {
		return fmt.Errorf("adjust %q: %w", id, ErrNotFound)
	}
	it.ApplyAdjustment(field, value)
	s.touch()
	return nil
}

// SelectSingle makes the item the only selected one.
func (s *Scene) SelectSingle(id string) error {
	it := s.Item(id)
	if it == nil {
		return fmt.Errorf("select %q: %w", id, ErrNotFound)
	}
	s.selection.SetSingle(it)
	return nil
}

// SelectToggle toggles the item's membership in the selection.
func (s *Scene) SelectToggle(id string) error {
	it := s.Item(id)
	if it == nil {
		return fmt.Errorf("select toggle %q: %w", id, ErrNotFound)
	}
	s.selection.Toggle(it)
	return nil
}

// ClearSelection empties the selection.
func (s *Scene) ClearSelection() {
	s.selection.Clear()
}

func (s *Scene) maxZ() int {
	max := 0
	for _, it := range s.items {
		if it.ZOrder > max {
			max = it.ZOrder
		}
	}
	return max
}

func (s *Scene) minZ() int {
	if len(s.items) == 0 {
		return 0
	}
	min := s.items[0].ZOrder
	for _, it := range s.items[1:] {
		if it.ZOrder < min {
			min = it.ZOrder
		}
	}
	return min
}

// renormalizeZ reassigns contiguous z-order values 1..n (preserving order)
// once the span has drifted past twice the item count, so repeated
// front/back moves cannot grow values without bound.
func (s *Scene) renormalizeZ() {
	if len(s.items) == 0 {
		return
	}
	if s.maxZ()-s.minZ() < 2*len(s.items) {
		return
	}
	ordered := s.ItemsByZ()
	for i, it := range ordered {
		it.ZOrder = i + 1
	}
}
