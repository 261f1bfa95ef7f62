package panels

import (
	"testing"

	"collage-maker/internal/adjust"
	"collage-maker/internal/app"
	"collage-maker/internal/catalog"
	"collage-maker/internal/scene"
	"collage-maker/pkg/geometry"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func panelState(t *testing.T) *app.State {
	t.Helper()
	state := app.NewState(nil, nil)
	state.Catalog.Replace([]*catalog.FurnitureRecord{
		{ID: "chair-1", Brand: "Vitra", Name: "Chair", Type: "chair",
			ImageFilename: "chair.png", Width: 500, Height: 500},
	})
	return state
}

func TestTemperatureSwatchTracksSelection(t *testing.T) {
	test.NewApp()
	state := panelState(t)
	p := NewItemsPanel(state, nil)

	// With nothing selected the swatch shows the neutral white point.
	assert.Equal(t, adjust.WhitePoint(scene.DefaultColorTemperature), p.tempSwatch.FillColor)

	it, err := state.Scene.AddItem(state.Catalog.Get("chair-1"), geometry.NewPoint2D(200, 150))
	require.NoError(t, err)
	state.Emit(app.EventItemsChanged, nil)
	state.Scene.Selection().SetSingle(it)
	state.Emit(app.EventSelectionChanged, nil)

	require.NoError(t, state.ApplyAdjustment(it.ID, scene.AdjustColorTemperature, 3000))
	state.Emit(app.EventSelectionChanged, nil)

	assert.Equal(t, "3000 K", p.tempLabel.Text)
	assert.Equal(t, adjust.WhitePoint(3000), p.tempSwatch.FillColor)

	warm := adjust.WhitePoint(3000)
	assert.Greater(t, warm.R, warm.B, "a warm temperature tints the swatch towards red")
}
