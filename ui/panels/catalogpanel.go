// Package panels provides the side and bottom panels of the main window.
package panels

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"collage-maker/internal/app"
	"collage-maker/internal/catalog"
	"collage-maker/internal/imagecache"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const thumbnailSize = 64

// ImageSource resolves furniture image filenames to decoded images.
type ImageSource interface {
	Get(ctx context.Context, filename string) (image.Image, error)
}

// CatalogPanel shows the searchable furniture catalog. Tapping "Add" places
// the item in the middle of the canvas.
type CatalogPanel struct {
	state  *app.State
	images ImageSource
	logger *slog.Logger

	search  *widget.Entry
	list    *widget.List
	status  *widget.Label
	records []*catalog.FurnitureRecord

	// OnPlace is invoked with the furniture ID the user wants to add.
	OnPlace func(furnitureID string)

	container *fyne.Container
}

// NewCatalogPanel creates the catalog side panel.
func NewCatalogPanel(state *app.State, images ImageSource, logger *slog.Logger) *CatalogPanel {
	if logger == nil {
		logger = slog.Default()
	}
	p := &CatalogPanel{
		state:  state,
		images: images,
		logger: logger,
	}

	p.search = widget.NewEntry()
	p.search.SetPlaceHolder("Search furniture...")
	p.search.OnChanged = func(string) { p.reload() }

	p.status = widget.NewLabel("No catalog loaded")

	p.list = widget.NewList(
		func() int { return len(p.records) },
		func() fyne.CanvasObject {
			thumb := fynecanvas.NewImageFromImage(nil)
			thumb.FillMode = fynecanvas.ImageFillContain
			thumb.SetMinSize(fyne.NewSize(thumbnailSize, thumbnailSize))
			name := widget.NewLabel("name")
			name.TextStyle.Bold = true
			detail := widget.NewLabel("detail")
			add := widget.NewButton("Add", nil)
			return container.NewBorder(nil, nil, thumb, add,
				container.NewVBox(name, detail))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			p.updateRow(id, obj)
		},
	)

	p.container = container.NewBorder(
		container.NewVBox(p.search, p.status), nil, nil, nil,
		p.list,
	)

	state.On(app.EventCatalogLoaded, func(interface{}) { p.reload() })
	p.reload()
	return p
}

// Container returns the panel's root container.
func (p *CatalogPanel) Container() fyne.CanvasObject {
	return p.container
}

func (p *CatalogPanel) reload() {
	p.records = p.state.Catalog.Search(p.search.Text)
	if p.state.Catalog.Len() == 0 {
		p.status.SetText("No catalog loaded")
	} else {
		p.status.SetText(fmt.Sprintf("%d of %d items", len(p.records), p.state.Catalog.Len()))
	}
	p.list.Refresh()
}

func (p *CatalogPanel) updateRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if id < 0 || id >= len(p.records) {
		return
	}
	rec := p.records[id]

	border := obj.(*fyne.Container)
	var thumb *fynecanvas.Image
	var add *widget.Button
	var labels *fyne.Container
	for _, child := range border.Objects {
		switch v := child.(type) {
		case *fynecanvas.Image:
			thumb = v
		case *widget.Button:
			add = v
		case *fyne.Container:
			labels = v
		}
	}

	name := labels.Objects[0].(*widget.Label)
	detail := labels.Objects[1].(*widget.Label)
	name.SetText(fmt.Sprintf("%s %s", rec.Brand, rec.Name))
	detail.SetText(fmt.Sprintf("%s · $%d", rec.Type, rec.Price))

	add.OnTapped = func() {
		if p.OnPlace != nil {
			p.OnPlace(rec.ID)
		}
	}

	if rec.ImageFilename != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if img, err := p.images.Get(ctx, rec.ImageFilename); err == nil {
			thumb.Image = imagecache.Thumbnail(img, thumbnailSize)
			thumb.Refresh()
		} else {
			p.logger.Warn("thumbnail load failed", "file", rec.ImageFilename, "error", err)
		}
	}
}
