// Package scene provides the canvas scene model: placed furniture items, the
// selection set, the move/resize transform engine, and the serializable
// canvas state. The package is pure and single-threaded; it performs no IO.
package scene

import (
	"collage-maker/internal/catalog"
	"collage-maker/pkg/geometry"
)

const (
	// MinItemSize is the minimum width and height of a placed item, in
	// canvas units. Every operation leaves both dimensions at or above it.
	MinItemSize = 100.0

	// DefaultItemWidth is the width assigned to a newly dropped item before
	// boundary fitting; the height follows the furniture's aspect ratio.
	DefaultItemWidth = 200.0
)

// Image adjustment ranges. Values are clamped to these on write, matching the
// slider bounds of the adjustment dialog.
const (
	MinColorTemperature     = 2000
	MaxColorTemperature     = 10000
	DefaultColorTemperature = 6500

	MinAdjustPercent  = 0
	MaxAdjustPercent  = 200
	DefaultBrightness = 100
	DefaultSaturation = 100
)

// AdjustmentField selects one of the per-item image adjustment parameters.
type AdjustmentField int

const (
	AdjustColorTemperature AdjustmentField = iota
	AdjustBrightness
	AdjustSaturation
)

func (f AdjustmentField) String() string {
	switch f {
	case AdjustColorTemperature:
		return "color temperature"
	case AdjustBrightness:
		return "brightness"
	case AdjustSaturation:
		return "saturation"
	default:
		return "unknown"
	}
}

// PlacedItem is one furniture instance placed on the canvas. The scene
// exclusively owns every PlacedItem; FurnitureID references a catalog record
// without owning it.
type PlacedItem struct {
	ID          string
	FurnitureID string
	Bounds      geometry.Rect
	ZOrder      int
	IsFlipped   bool

	ColorTemperature int // Kelvin, [2000, 10000]
	Brightness       int // percent, [0, 200]
	Saturation       int // percent, [0, 200]
}

// newPlacedItem builds an item with default adjustments and default bounds
// centered on drop: DefaultItemWidth wide, height from the furniture's
// intrinsic aspect ratio (square when unknown), shrunk to fit the canvas and
// never below MinItemSize.
func newPlacedItem(id string, record *catalog.FurnitureRecord, drop geometry.Point2D, canvas geometry.Rect) *PlacedItem {
	ratio := record.AspectRatio()
	if ratio <= 0 {
		ratio = 1
	}
	size := geometry.NewSize(DefaultItemWidth, DefaultItemWidth/ratio)
	size = geometry.FitWithin(size, geometry.NewSize(canvas.Width, canvas.Height))
	if size.Width < MinItemSize {
		size.Width = MinItemSize
	}
	if size.Height < MinItemSize {
		size.Height = MinItemSize
	}

	bounds := geometry.NewRect(drop.X-size.Width/2, drop.Y-size.Height/2, size.Width, size.Height)
	bounds = geometry.ClampRectToBounds(bounds, canvas)

	return &PlacedItem{
		ID:               id,
		FurnitureID:      record.ID,
		Bounds:           bounds,
		ColorTemperature: DefaultColorTemperature,
		Brightness:       DefaultBrightness,
		Saturation:       DefaultSaturation,
	}
}

// ApplyAdjustment sets one image adjustment field. Out-of-range values are
// clamped to the field's range, never rejected.
func (it *PlacedItem) ApplyAdjustment(field AdjustmentField, value int) {
	switch field {
	case AdjustColorTemperature:
		it.ColorTemperature = clampInt(value, MinColorTemperature, MaxColorTemperature)
	case AdjustBrightness:
		it.Brightness = clampInt(value, MinAdjustPercent, MaxAdjustPercent)
	case AdjustSaturation:
		it.Saturation = clampInt(value, MinAdjustPercent, MaxAdjustPercent)
	}
}

// ToggleFlip inverts the horizontal mirror flag.
func (it *PlacedItem) ToggleFlip() {
	it.IsFlipped = !it.IsFlipped
}

// HasDefaultAdjustments reports whether all adjustment fields are at their
// defaults, so rendering can skip the filter pipeline.
func (it *PlacedItem) HasDefaultAdjustments() bool {
	return it.ColorTemperature == DefaultColorTemperature &&
		it.Brightness == DefaultBrightness &&
		it.Saturation == DefaultSaturation
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
