package scene

import (
	"testing"

	"collage-maker/internal/catalog"
	"collage-maker/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(id string) *catalog.FurnitureRecord {
	return &catalog.FurnitureRecord{
		ID:            id,
		Brand:         "Aalto",
		Name:          "Lounge Chair",
		ImageFilename: id + ".png",
		Price:         1200,
		Type:          "chair",
		Width:         600,
		Depth:         700,
		Height:        300,
	}
}

func TestNewPlacedItemDefaultBounds(t *testing.T) {
	s := NewScene(800, 600)
	// 600x300 mm furniture: aspect 2, so 200x100 default bounds.
	it, err := s.AddItem(testRecord("f1"), geometry.NewPoint2D(400, 300))
	require.NoError(t, err)

	assert.InDelta(t, 200, it.Bounds.Width, 1e-9)
	assert.InDelta(t, 100, it.Bounds.Height, 1e-9)
	// Centered on the drop position.
	assert.InDelta(t, 300, it.Bounds.X, 1e-9)
	assert.InDelta(t, 250, it.Bounds.Y, 1e-9)

	assert.Equal(t, DefaultColorTemperature, it.ColorTemperature)
	assert.Equal(t, DefaultBrightness, it.Brightness)
	assert.Equal(t, DefaultSaturation, it.Saturation)
	assert.False(t, it.IsFlipped)
	assert.True(t, it.HasDefaultAdjustments())
}

func TestNewPlacedItemUnknownAspectIsSquare(t *testing.T) {
	s := NewScene(800, 600)
	rec := testRecord("f2")
	rec.Width = 0
	rec.Height = 0

	it, err := s.AddItem(rec, geometry.NewPoint2D(400, 300))
	require.NoError(t, err)
	assert.InDelta(t, 200, it.Bounds.Width, 1e-9)
	assert.InDelta(t, 200, it.Bounds.Height, 1e-9)
}

func TestNewPlacedItemClampedAtEdge(t *testing.T) {
	s := NewScene(800, 600)
	it, err := s.AddItem(testRecord("f3"), geometry.NewPoint2D(790, 10))
	require.NoError(t, err)
	assert.True(t, s.CanvasBounds().ContainsRect(it.Bounds))
}

func TestApplyAdjustmentClamps(t *testing.T) {
	it := &PlacedItem{}

	it.ApplyAdjustment(AdjustColorTemperature, 50000)
	assert.Equal(t, MaxColorTemperature, it.ColorTemperature)
	it.ApplyAdjustment(AdjustColorTemperature, 0)
	assert.Equal(t, MinColorTemperature, it.ColorTemperature)
	it.ApplyAdjustment(AdjustColorTemperature, 3400)
	assert.Equal(t, 3400, it.ColorTemperature)

	it.ApplyAdjustment(AdjustBrightness, -5)
	assert.Equal(t, 0, it.Brightness)
	it.ApplyAdjustment(AdjustSaturation, 300)
	assert.Equal(t, 200, it.Saturation)
}

func TestToggleFlip(t *testing.T) {
	it := &PlacedItem{}
	it.ToggleFlip()
	assert.True(t, it.IsFlipped)
	it.ToggleFlip()
	assert.False(t, it.IsFlipped)
}
