// Package canvas provides the interactive collage canvas widget: item
// selection, drag-to-move, and handle-based resizing.
package canvas

import (
	"context"
	"image"
	"log/slog"

	"collage-maker/internal/app"
	"collage-maker/internal/scene"
	"collage-maker/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// Handle hit targets are this many screen pixels across.
const handleHitSize = 10

// ImageSource resolves furniture image filenames to decoded images.
type ImageSource interface {
	Get(ctx context.Context, filename string) (image.Image, error)
}

// CollageCanvas displays the scene and translates pointer gestures into
// transform engine calls.
type CollageCanvas struct {
	widget.BaseWidget

	state  *app.State
	images ImageSource
	logger *slog.Logger

	raster *fynecanvas.Raster

	// Gesture tracking. Deltas accumulate in scene units; the engine wants
	// totals from the gesture start, not increments.
	dragging     bool
	resizing     bool
	resizeHandle geometry.Handle
	totalDX      float64
	totalDY      float64
	aspectLocked bool

	// Rendered item cache, keyed by filename, flip, and adjustments.
	rendered map[string]*image.RGBA

	// Background image cache, invalidated when the scene path changes.
	bgPath string
	bgImg  image.Image
}

// New creates a collage canvas bound to the application state.
func New(state *app.State, images ImageSource, logger *slog.Logger) *CollageCanvas {
	if logger == nil {
		logger = slog.Default()
	}
	c := &CollageCanvas{
		state:    state,
		images:   images,
		logger:   logger,
		rendered: make(map[string]*image.RGBA),
	}
	c.raster = fynecanvas.NewRaster(c.draw)
	c.ExtendBaseWidget(c)

	state.On(app.EventItemsChanged, func(interface{}) { c.Refresh() })
	state.On(app.EventSelectionChanged, func(interface{}) { c.Refresh() })
	state.On(app.EventCanvasResized, func(interface{}) { c.Refresh() })
	state.On(app.EventAdjustmentChanged, func(interface{}) {
		c.invalidateRendered()
		c.Refresh()
	})
	state.On(app.EventSceneLoaded, func(interface{}) {
		c.invalidateRendered()
		c.Refresh()
	})
	return c
}

// CreateRenderer implements fyne.Widget.
func (c *CollageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}

// MinSize keeps the canvas usable even in a small window.
func (c *CollageCanvas) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

// SetAspectLocked controls whether resize gestures preserve aspect ratio.
func (c *CollageCanvas) SetAspectLocked(locked bool) {
	c.aspectLocked = locked
}

// Refresh redraws the scene.
func (c *CollageCanvas) Refresh() {
	c.raster.Refresh()
	c.BaseWidget.Refresh()
}

func (c *CollageCanvas) invalidateRendered() {
	c.rendered = make(map[string]*image.RGBA)
	c.bgPath = ""
	c.bgImg = nil
}

// Tapped selects the topmost item under the pointer, or clears the
// selection on empty canvas.
func (c *CollageCanvas) Tapped(ev *fyne.PointEvent) {
	p, ok := c.toScene(ev.Position)
	if !ok {
		return
	}
	if it := c.state.Scene.HitTest(p); it != nil {
		c.state.Scene.Selection().SetSingle(it)
	} else {
		c.state.Scene.ClearSelection()
	}
	c.state.Emit(app.EventSelectionChanged, nil)
}

// TappedSecondary toggles membership of the item under the pointer, leaving
// the rest of the selection alone.
func (c *CollageCanvas) TappedSecondary(ev *fyne.PointEvent) {
	p, ok := c.toScene(ev.Position)
	if !ok {
		return
	}
	if it := c.state.Scene.HitTest(p); it != nil {
		c.state.Scene.Selection().Toggle(it)
		c.state.Emit(app.EventSelectionChanged, nil)
	}
}

// Dragged starts a move or resize gesture on the first event and feeds
// cumulative deltas to the engine on every subsequent one.
func (c *CollageCanvas) Dragged(ev *fyne.DragEvent) {
	scale, _, _ := c.transform()
	if scale <= 0 {
		return
	}
	dx := float64(ev.Dragged.DX) / scale
	dy := float64(ev.Dragged.DY) / scale

	if !c.dragging {
		start := fyne.NewPos(ev.Position.X-ev.Dragged.DX, ev.Position.Y-ev.Dragged.DY)
		if !c.beginGesture(start) {
			return
		}
		c.dragging = true
		c.totalDX, c.totalDY = 0, 0
	}

	c.totalDX += dx
	c.totalDY += dy

	var err error
	if c.resizing {
		err = c.state.Engine.UpdateResize(c.totalDX, c.totalDY, c.aspectLocked)
	} else {
		err = c.state.Engine.UpdateMove(c.totalDX, c.totalDY)
	}
	if err != nil {
		c.logger.Warn("gesture update failed", "error", err)
		return
	}
	c.Refresh()
}

// DragEnd commits the active gesture.
func (c *CollageCanvas) DragEnd() {
	if !c.dragging {
		return
	}
	c.dragging = false
	c.resizing = false
	if err := c.state.Engine.End(); err != nil {
		c.logger.Warn("gesture end failed", "error", err)
		return
	}
	c.state.SetModified(true)
	c.state.Emit(app.EventItemsChanged, nil)
	c.Refresh()
}

// CancelGesture aborts the active gesture and restores starting bounds.
func (c *CollageCanvas) CancelGesture() {
	if !c.dragging {
		return
	}
	c.dragging = false
	c.resizing = false
	c.state.Engine.Cancel()
	c.Refresh()
}

// beginGesture decides between resize (pointer on a selection handle) and
// move (pointer on an item), starting the engine gesture. Returns false if
// the press landed on empty canvas.
func (c *CollageCanvas) beginGesture(start fyne.Position) bool {
	sel := c.state.Scene.Selection()

	if sel.Len() == 1 {
		anchor := sel.Anchor()
		if handle, ok := c.handleAt(anchor, start); ok {
			if err := c.state.Engine.BeginResize(anchor.ID, handle); err != nil {
				c.logger.Warn("resize begin failed", "error", err)
				return false
			}
			c.resizing = true
			c.resizeHandle = handle
			return true
		}
	}

	p, ok := c.toScene(start)
	if !ok {
		return false
	}
	it := c.state.Scene.HitTest(p)
	if it == nil {
		return false
	}
	if !sel.Contains(it) {
		sel.SetSingle(it)
		c.state.Emit(app.EventSelectionChanged, nil)
	}
	if err := c.state.Engine.BeginMove(); err != nil {
		c.logger.Warn("move begin failed", "error", err)
		return false
	}
	return true
}

// handleAt returns the resize handle under the screen position, if any.
func (c *CollageCanvas) handleAt(it *scene.PlacedItem, pos fyne.Position) (geometry.Handle, bool) {
	scale, ox, oy := c.transform()
	if scale <= 0 {
		return 0, false
	}
	for _, h := range geometry.AllHandles() {
		hp := geometry.HandlePoint(it.Bounds, h)
		sx := float32(hp.X*scale) + ox
		sy := float32(hp.Y*scale) + oy
		if abs32(pos.X-sx) <= handleHitSize/2 && abs32(pos.Y-sy) <= handleHitSize/2 {
			return h, true
		}
	}
	return 0, false
}

// transform returns the scene-to-screen scale and pixel offsets that center
// the canvas within the widget.
func (c *CollageCanvas) transform() (scale float64, ox, oy float32) {
	size := c.Size()
	sc := c.state.Scene
	if size.Width <= 0 || size.Height <= 0 || sc.Width() <= 0 || sc.Height() <= 0 {
		return 0, 0, 0
	}
	sx := float64(size.Width) / sc.Width()
	sy := float64(size.Height) / sc.Height()
	scale = sx
	if sy < sx {
		scale = sy
	}
	ox = (size.Width - float32(sc.Width()*scale)) / 2
	oy = (size.Height - float32(sc.Height()*scale)) / 2
	return scale, ox, oy
}

// toScene maps a widget position to scene coordinates. ok is false when the
// position falls outside the canvas area.
func (c *CollageCanvas) toScene(pos fyne.Position) (geometry.Point2D, bool) {
	scale, ox, oy := c.transform()
	if scale <= 0 {
		return geometry.Point2D{}, false
	}
	p := geometry.NewPoint2D(
		float64(pos.X-ox)/scale,
		float64(pos.Y-oy)/scale,
	)
	if !c.state.Scene.CanvasBounds().Contains(p) {
		return geometry.Point2D{}, false
	}
	return p, true
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
