package panels

import (
	"fmt"
	"log/slog"

	"collage-maker/internal/adjust"
	"collage-maker/internal/app"
	"collage-maker/internal/scene"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ItemsPanel lists the placed items and exposes per-item controls: stacking,
// flipping, deletion, and the three image adjustments for the selected item.
type ItemsPanel struct {
	state  *app.State
	logger *slog.Logger

	list  *widget.List
	items []*scene.PlacedItem

	temperature *widget.Slider
	brightness  *widget.Slider
	saturation  *widget.Slider
	tempLabel   *widget.Label
	tempSwatch  *fynecanvas.Rectangle

	// Guards against slider callbacks firing while we push values into them.
	syncing bool

	container *fyne.Container
}

// NewItemsPanel creates the placed-items bottom panel.
func NewItemsPanel(state *app.State, logger *slog.Logger) *ItemsPanel {
	if logger == nil {
		logger = slog.Default()
	}
	p := &ItemsPanel{state: state, logger: logger}

	p.list = widget.NewList(
		func() int { return len(p.items) },
		func() fyne.CanvasObject { return widget.NewLabel("item") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(p.items) {
				return
			}
			it := p.items[id]
			label := obj.(*widget.Label)
			rec := state.Catalog.Get(it.FurnitureID)
			if rec != nil {
				label.SetText(fmt.Sprintf("%s %s", rec.Brand, rec.Name))
			} else {
				label.SetText(it.FurnitureID)
			}
		},
	)
	p.list.OnSelected = func(id widget.ListItemID) {
		if id < 0 || id >= len(p.items) {
			return
		}
		state.Scene.Selection().SetSingle(p.items[id])
		state.Emit(app.EventSelectionChanged, nil)
	}

	front := widget.NewButton("Bring to Front", func() { p.restack(true) })
	back := widget.NewButton("Send to Back", func() { p.restack(false) })
	flip := widget.NewButton("Flip", p.flipSelected)
	del := widget.NewButton("Delete", func() {
		if _, err := state.DeleteSelection(); err != nil {
			p.logger.Warn("delete failed", "error", err)
		}
	})

	p.temperature = widget.NewSlider(scene.MinColorTemperature, scene.MaxColorTemperature)
	p.temperature.Step = 100
	p.temperature.OnChanged = p.onAdjust(scene.AdjustColorTemperature)
	p.tempLabel = widget.NewLabel("6500 K")
	p.tempSwatch = fynecanvas.NewRectangle(adjust.WhitePoint(scene.DefaultColorTemperature))
	p.tempSwatch.SetMinSize(fyne.NewSize(16, 16))

	p.brightness = widget.NewSlider(scene.MinAdjustPercent, scene.MaxAdjustPercent)
	p.brightness.OnChanged = p.onAdjust(scene.AdjustBrightness)
	p.saturation = widget.NewSlider(scene.MinAdjustPercent, scene.MaxAdjustPercent)
	p.saturation.OnChanged = p.onAdjust(scene.AdjustSaturation)

	adjustments := container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Temperature"),
			container.NewHBox(p.tempSwatch, p.tempLabel), p.temperature),
		container.NewBorder(nil, nil, widget.NewLabel("Brightness"), nil, p.brightness),
		container.NewBorder(nil, nil, widget.NewLabel("Saturation"), nil, p.saturation),
	)

	buttons := container.NewHBox(front, back, flip, del)
	p.container = container.NewBorder(nil, nil, nil,
		container.NewVBox(buttons, adjustments),
		p.list,
	)

	state.On(app.EventItemsChanged, func(interface{}) { p.reload() })
	state.On(app.EventSelectionChanged, func(interface{}) { p.syncSelection() })
	state.On(app.EventSceneLoaded, func(interface{}) { p.reload() })
	p.reload()
	return p
}

// Container returns the panel's root container.
func (p *ItemsPanel) Container() fyne.CanvasObject {
	return p.container
}

func (p *ItemsPanel) reload() {
	// Topmost first, matching how users think about the stack.
	byZ := p.state.Scene.ItemsByZ()
	p.items = make([]*scene.PlacedItem, 0, len(byZ))
	for i := len(byZ) - 1; i >= 0; i-- {
		p.items = append(p.items, byZ[i])
	}
	p.list.Refresh()
	p.syncSelection()
}

func (p *ItemsPanel) syncSelection() {
	anchor := p.state.Scene.Selection().Anchor()
	if anchor == nil {
		p.list.UnselectAll()
		return
	}
	for i, it := range p.items {
		if it == anchor {
			p.list.Select(i)
			break
		}
	}

	p.syncing = true
	p.temperature.SetValue(float64(anchor.ColorTemperature))
	p.brightness.SetValue(float64(anchor.Brightness))
	p.saturation.SetValue(float64(anchor.Saturation))
	p.setTemperatureDisplay(anchor.ColorTemperature)
	p.syncing = false
}

// setTemperatureDisplay updates the Kelvin readout and tints the swatch with
// the interpolated blackbody white point for that temperature.
func (p *ItemsPanel) setTemperatureDisplay(kelvin int) {
	p.tempLabel.SetText(fmt.Sprintf("%d K", kelvin))
	p.tempSwatch.FillColor = adjust.WhitePoint(kelvin)
	p.tempSwatch.Refresh()
}

func (p *ItemsPanel) onAdjust(field scene.AdjustmentField) func(float64) {
	return func(value float64) {
		if p.syncing {
			return
		}
		anchor := p.state.Scene.Selection().Anchor()
		if anchor == nil {
			return
		}
		if err := p.state.ApplyAdjustment(anchor.ID, field, int(value)); err != nil {
			p.logger.Warn("adjustment failed", "error", err)
			return
		}
		if field == scene.AdjustColorTemperature {
			p.setTemperatureDisplay(anchor.ColorTemperature)
		}
	}
}

func (p *ItemsPanel) restack(front bool) {
	anchor := p.state.Scene.Selection().Anchor()
	if anchor == nil {
		return
	}
	var err error
	if front {
		err = p.state.Scene.BringToFront(anchor.ID)
	} else {
		err = p.state.Scene.SendToBack(anchor.ID)
	}
	if err != nil {
		p.logger.Warn("restack failed", "error", err)
		return
	}
	p.state.SetModified(true)
	p.state.Emit(app.EventItemsChanged, nil)
}

func (p *ItemsPanel) flipSelected() {
	anchor := p.state.Scene.Selection().Anchor()
	if anchor == nil {
		return
	}
	if err := p.state.Scene.ToggleFlip(anchor.ID); err != nil {
		p.logger.Warn("flip failed", "error", err)
		return
	}
	p.state.SetModified(true)
	p.state.Emit(app.EventAdjustmentChanged, anchor.ID)
}
