// Package export renders a scene to shareable artifacts: a composited PNG
// and an HTML shopping list of the furniture in it.
package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"

	"collage-maker/internal/adjust"
	"collage-maker/internal/catalog"
	"collage-maker/internal/scene"

	xdraw "golang.org/x/image/draw"
)

// ImageSource resolves a furniture image filename to a decoded image.
// *imagecache.Cache satisfies it.
type ImageSource interface {
	Get(ctx context.Context, filename string) (image.Image, error)
}

// Exporter composites scenes against a catalog and an image source.
type Exporter struct {
	catalog *catalog.Catalog
	images  ImageSource
	logger  *slog.Logger
}

// NewExporter builds an exporter. logger may be nil.
func NewExporter(cat *catalog.Catalog, images ImageSource, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{catalog: cat, images: images, logger: logger}
}

// RenderPNG composites the scene into an RGBA image at canvas resolution.
// Items are painted back to front. An item whose image cannot be resolved is
// painted as a flat placeholder instead of failing the whole render.
func (e *Exporter) RenderPNG(ctx context.Context, s *scene.Scene) (*image.RGBA, error) {
	w, h := int(s.Width()), int(s.Height())
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("degenerate canvas %dx%d", w, h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	if s.Background != "" {
		if bg := e.loadBackground(s.Background); bg != nil {
			xdraw.CatmullRom.Scale(dst, dst.Bounds(), bg, bg.Bounds(), xdraw.Src, nil)
		}
	}

	for _, it := range s.ItemsByZ() {
		target := image.Rect(
			int(it.Bounds.X), int(it.Bounds.Y),
			int(it.Bounds.Right()), int(it.Bounds.Bottom()))

		img := e.resolveImage(ctx, it)
		if img == nil {
			draw.Draw(dst, target, image.NewUniform(color.RGBA{R: 220, G: 220, B: 220, A: 255}),
				image.Point{}, draw.Over)
			continue
		}

		if it.IsFlipped {
			img = flipHorizontal(img)
		}
		if settings := e.settingsFor(it); !settings.IsNeutral() {
			img = e.adjustImage(img, settings)
		}

		xdraw.CatmullRom.Scale(dst, target, img, img.Bounds(), xdraw.Over, nil)
	}
	return dst, nil
}

// WritePNG renders the scene and writes it to path.
func (e *Exporter) WritePNG(ctx context.Context, s *scene.Scene, path string) error {
	img, err := e.RenderPNG(ctx, s)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// loadBackground reads a background image from disk. A missing or unreadable
// file degrades to the plain white sheet.
func (e *Exporter) loadBackground(path string) image.Image {
	f, err := os.Open(path)
	if err != nil {
		e.logger.Warn("failed to open background image", "path", path, "error", err)
		return nil
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		e.logger.Warn("failed to decode background image", "path", path, "error", err)
		return nil
	}
	return img
}

func (e *Exporter) resolveImage(ctx context.Context, it *scene.PlacedItem) image.Image {
	rec := e.catalog.Get(it.FurnitureID)
	if rec == nil || rec.ImageFilename == "" {
		e.logger.Warn("no catalog record for placed item",
			"item", it.ID, "furniture", it.FurnitureID)
		return nil
	}
	img, err := e.images.Get(ctx, rec.ImageFilename)
	if err != nil {
		e.logger.Warn("failed to load furniture image",
			"item", it.ID, "file", rec.ImageFilename, "error", err)
		return nil
	}
	return img
}

// matPixelThreshold is the source size, in pixels, above which adjustments go
// through the OpenCV pipeline instead of the per-pixel Go loop.
const matPixelThreshold = 1 << 20

// adjustImage applies the item adjustments, routing large sources through the
// Mat fast path and falling back to the pure-Go loop if conversion fails.
func (e *Exporter) adjustImage(img image.Image, settings adjust.Settings) image.Image {
	b := img.Bounds()
	if b.Dx()*b.Dy() >= matPixelThreshold {
		out, err := adjust.ApplyImageMat(img, settings)
		if err == nil {
			return out
		}
		e.logger.Warn("mat adjustment failed, using pixel loop", "error", err)
	}
	return adjust.Apply(img, settings)
}

func (e *Exporter) settingsFor(it *scene.PlacedItem) adjust.Settings {
	return adjust.Settings{
		ColorTemperature: it.ColorTemperature,
		Brightness:       it.Brightness,
		Saturation:       it.Saturation,
	}
}

func flipHorizontal(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Set(b.Dx()-1-x, y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}
