package canvas

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"collage-maker/internal/adjust"
	"collage-maker/internal/scene"
	"collage-maker/pkg/geometry"

	xdraw "golang.org/x/image/draw"
)

var (
	canvasBorder   = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	selectionBlue  = color.RGBA{R: 58, G: 123, B: 213, A: 255}
	handleFill     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	placeholderFll = color.RGBA{R: 220, G: 220, B: 220, A: 255}
)

const handleDrawSize = 8

// draw renders the whole widget. It is the raster callback, so it runs on
// every refresh at the current widget size.
func (c *CollageCanvas) draw(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	// Window background around the canvas sheet.
	draw.Draw(out, out.Bounds(), image.NewUniform(color.RGBA{R: 235, G: 232, B: 228, A: 255}),
		image.Point{}, draw.Src)

	scale, ox, oy := c.transform()
	if scale <= 0 {
		return out
	}

	sheet := c.toScreenRect(c.state.Scene.CanvasBounds())
	draw.Draw(out, sheet, image.NewUniform(color.White), image.Point{}, draw.Src)
	if bg := c.backgroundImage(); bg != nil {
		xdraw.ApproxBiLinear.Scale(out, sheet, bg, bg.Bounds(), xdraw.Src, nil)
	}
	strokeRect(out, sheet, canvasBorder, 1)

	for _, it := range c.state.Scene.ItemsByZ() {
		target := c.toScreenRect(it.Bounds)
		if img := c.itemImage(it); img != nil {
			xdraw.ApproxBiLinear.Scale(out, target, img, img.Bounds(), xdraw.Over, nil)
		} else {
			draw.Draw(out, target, image.NewUniform(placeholderFll), image.Point{}, draw.Over)
		}
	}

	sel := c.state.Scene.Selection()
	for _, it := range sel.Items() {
		target := c.toScreenRect(it.Bounds)
		strokeRect(out, target, selectionBlue, 2)
	}
	if sel.Len() == 1 {
		c.drawHandles(out, sel.Anchor(), scale, ox, oy)
	}

	return out
}

// backgroundImage returns the scene's background image, if one is set and
// readable, caching the decode until the path changes.
func (c *CollageCanvas) backgroundImage() image.Image {
	path := c.state.Scene.Background
	if path == "" {
		return nil
	}
	if path == c.bgPath {
		return c.bgImg
	}
	f, err := os.Open(path)
	if err != nil {
		c.logger.Warn("failed to open background image", "path", path, "error", err)
		return nil
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		c.logger.Warn("failed to decode background image", "path", path, "error", err)
		return nil
	}
	c.bgPath = path
	c.bgImg = img
	return img
}

// itemImage returns the item's furniture image with flip and adjustments
// applied, from the per-item render cache.
func (c *CollageCanvas) itemImage(it *scene.PlacedItem) *image.RGBA {
	rec := c.state.Catalog.Get(it.FurnitureID)
	if rec == nil || rec.ImageFilename == "" {
		return nil
	}

	key := fmt.Sprintf("%s|%t|%d|%d|%d",
		rec.ImageFilename, it.IsFlipped, it.ColorTemperature, it.Brightness, it.Saturation)
	if img, ok := c.rendered[key]; ok {
		return img
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	src, err := c.images.Get(ctx, rec.ImageFilename)
	if err != nil {
		c.logger.Warn("failed to load furniture image",
			"file", rec.ImageFilename, "error", err)
		return nil
	}

	settings := adjust.Settings{
		ColorTemperature: it.ColorTemperature,
		Brightness:       it.Brightness,
		Saturation:       it.Saturation,
	}
	img := adjust.Apply(src, settings)
	if it.IsFlipped {
		img = flipHorizontal(img)
	}
	c.rendered[key] = img
	return img
}

func (c *CollageCanvas) drawHandles(out *image.RGBA, it *scene.PlacedItem, scale float64, ox, oy float32) {
	for _, h := range geometry.AllHandles() {
		hp := geometry.HandlePoint(it.Bounds, h)
		cx := int(float32(hp.X*scale) + ox)
		cy := int(float32(hp.Y*scale) + oy)
		r := image.Rect(
			cx-handleDrawSize/2, cy-handleDrawSize/2,
			cx+handleDrawSize/2, cy+handleDrawSize/2)
		draw.Draw(out, r, image.NewUniform(handleFill), image.Point{}, draw.Src)
		strokeRect(out, r, selectionBlue, 1)
	}
}

// toScreenRect maps a scene rect to widget pixels.
func (c *CollageCanvas) toScreenRect(r geometry.Rect) image.Rectangle {
	scale, ox, oy := c.transform()
	return image.Rect(
		int(float32(r.X*scale)+ox),
		int(float32(r.Y*scale)+oy),
		int(float32(r.Right()*scale)+ox),
		int(float32(r.Bottom()*scale)+oy),
	)
}

// strokeRect draws a width-pixel border just inside r.
func strokeRect(out *image.RGBA, r image.Rectangle, col color.RGBA, width int) {
	u := image.NewUniform(col)
	draw.Draw(out, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), u, image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

func flipHorizontal(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.SetRGBA(b.Dx()-1-x, y, src.RGBAAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}
