package geometry

// Handle identifies one of the eight resize handles on a rectangle's border.
type Handle int

const (
	HandleTopLeft Handle = iota
	HandleTop
	HandleTopRight
	HandleLeft
	HandleRight
	HandleBottomLeft
	HandleBottom
	HandleBottomRight
)

// AllHandles lists the eight handles in declaration order.
func AllHandles() []Handle {
	return []Handle{
		HandleTopLeft, HandleTop, HandleTopRight,
		HandleLeft, HandleRight,
		HandleBottomLeft, HandleBottom, HandleBottomRight,
	}
}

// HandlePoint returns the location of a handle on rect's border: corners for
// corner handles, edge midpoints for edge handles.
func HandlePoint(rect Rect, handle Handle) Point2D {
	var x, y float64

	switch {
	case handle.isLeft():
		x = rect.X
	case handle.isRight():
		x = rect.Right()
	default:
		x = rect.X + rect.Width/2
	}

	switch {
	case handle.isTop():
		y = rect.Y
	case handle.isBottom():
		y = rect.Bottom()
	default:
		y = rect.Y + rect.Height/2
	}

	return Point2D{X: x, Y: y}
}

func (h Handle) String() string {
	switch h {
	case HandleTopLeft:
		return "top-left"
	case HandleTop:
		return "top"
	case HandleTopRight:
		return "top-right"
	case HandleLeft:
		return "left"
	case HandleRight:
		return "right"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleBottom:
		return "bottom"
	case HandleBottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// isLeft reports whether the handle sits on the left edge.
func (h Handle) isLeft() bool {
	return h == HandleTopLeft || h == HandleLeft || h == HandleBottomLeft
}

// isRight reports whether the handle sits on the right edge.
func (h Handle) isRight() bool {
	return h == HandleTopRight || h == HandleRight || h == HandleBottomRight
}

// isTop reports whether the handle sits on the top edge.
func (h Handle) isTop() bool {
	return h == HandleTopLeft || h == HandleTop || h == HandleTopRight
}

// isBottom reports whether the handle sits on the bottom edge.
func (h Handle) isBottom() bool {
	return h == HandleBottomLeft || h == HandleBottom || h == HandleBottomRight
}

// AnchorPoint returns the point of rect that stays fixed while the given
// handle is dragged: the opposite corner for corner handles, the midpoint of
// the opposite edge for edge handles.
func AnchorPoint(rect Rect, handle Handle) Point2D {
	var ax, ay float64

	switch {
	case handle.isLeft():
		ax = rect.Right()
	case handle.isRight():
		ax = rect.X
	default: // top/bottom edge handles anchor on the opposite edge midpoint
		ax = rect.X + rect.Width/2
	}

	switch {
	case handle.isTop():
		ay = rect.Bottom()
	case handle.isBottom():
		ay = rect.Y
	default:
		ay = rect.Y + rect.Height/2
	}

	return Point2D{X: ax, Y: ay}
}

// placeFromAnchor positions a width×height rectangle so that its anchor point
// for the given handle coincides with anchor.
func placeFromAnchor(anchor Point2D, handle Handle, width, height float64) Rect {
	var x, y float64

	switch {
	case handle.isLeft():
		x = anchor.X - width
	case handle.isRight():
		x = anchor.X
	default:
		x = anchor.X - width/2
	}

	switch {
	case handle.isTop():
		y = anchor.Y - height
	case handle.isBottom():
		y = anchor.Y
	default:
		y = anchor.Y - height/2
	}

	return Rect{X: x, Y: y, Width: width, Height: height}
}

// ResizeFromHandle computes the rectangle that results from dragging the
// given handle of original by (dx, dy). The opposite corner or edge midpoint
// stays fixed. Dimensions are clamped to minSize, expanding outward from the
// anchor, never past it.
//
// With preserveAspect set, the axis with the larger relative delta drives the
// other through the original aspect ratio, so the result keeps the original
// width/height ratio; for edge handles the dragged axis drives. The min-size
// clamp then scales both axes together.
func ResizeFromHandle(original Rect, handle Handle, dx, dy float64, minSize float64, preserveAspect bool) Rect {
	width := original.Width
	height := original.Height

	switch {
	case handle.isLeft():
		width -= dx
	case handle.isRight():
		width += dx
	}
	switch {
	case handle.isTop():
		height -= dy
	case handle.isBottom():
		height += dy
	}

	if preserveAspect {
		ratio := original.AspectRatio()
		dw := width - original.Width
		dh := height - original.Height
		relW, relH := dw, dh
		if relW < 0 {
			relW = -relW
		}
		if relH < 0 {
			relH = -relH
		}
		if original.Width > 0 {
			relW /= original.Width
		}
		if original.Height > 0 {
			relH /= original.Height
		}
		if relW >= relH {
			height = width / ratio
		} else {
			width = height * ratio
		}
		if width < minSize || height < minSize {
			scale := 1.0
			if width < minSize && width > 0 {
				scale = minSize / width
			}
			if height < minSize && height > 0 {
				if s := minSize / height; s > scale {
					scale = s
				}
			}
			if width <= 0 || height <= 0 {
				// Dragged past the anchor: reset to the smallest legal
				// rectangle with the original ratio.
				if ratio >= 1 {
					height = minSize
					width = minSize * ratio
				} else {
					width = minSize
					height = minSize / ratio
				}
			} else {
				width *= scale
				height *= scale
			}
		}
	} else {
		if width < minSize {
			width = minSize
		}
		if height < minSize {
			height = minSize
		}
	}

	return placeFromAnchor(AnchorPoint(original, handle), handle, width, height)
}

// ResizeWithinBounds is ResizeFromHandle followed by a boundary clamp that
// keeps the anchor point fixed: instead of translating the result back inside
// (which would move the anchor), the growth available from the anchor toward
// each canvas edge limits the computed dimensions. With preserveAspect set
// the limit scales both axes together.
//
// bounds is assumed to be at least minSize on both axes.
func ResizeWithinBounds(original Rect, handle Handle, dx, dy float64, minSize float64, preserveAspect bool, bounds Rect) Rect {
	r := ResizeFromHandle(original, handle, dx, dy, minSize, preserveAspect)
	anchor := AnchorPoint(original, handle)

	maxW, maxH := maxExtents(anchor, handle, bounds)
	width, height := r.Width, r.Height

	if preserveAspect {
		scale := 1.0
		if width > maxW && width > 0 {
			scale = maxW / width
		}
		if height > maxH && height > 0 {
			if s := maxH / height; s < scale {
				scale = s
			}
		}
		width *= scale
		height *= scale
	} else {
		if width > maxW {
			width = maxW
		}
		if height > maxH {
			height = maxH
		}
	}

	// Min size wins over the canvas limit; the canvas is never smaller than
	// an item's minimum.
	if width < minSize {
		width = minSize
	}
	if height < minSize {
		height = minSize
	}

	return placeFromAnchor(anchor, handle, width, height)
}

// maxExtents returns the maximum width and height a rectangle anchored at
// anchor for the given handle may reach without leaving bounds. Edge-midpoint
// anchors grow symmetrically on the perpendicular axis, so the nearer canvas
// edge limits both directions.
func maxExtents(anchor Point2D, handle Handle, bounds Rect) (maxW, maxH float64) {
	switch {
	case handle.isLeft():
		maxW = anchor.X - bounds.X
	case handle.isRight():
		maxW = bounds.Right() - anchor.X
	default:
		left := anchor.X - bounds.X
		right := bounds.Right() - anchor.X
		if left < right {
			maxW = 2 * left
		} else {
			maxW = 2 * right
		}
	}

	switch {
	case handle.isTop():
		maxH = anchor.Y - bounds.Y
	case handle.isBottom():
		maxH = bounds.Bottom() - anchor.Y
	default:
		top := anchor.Y - bounds.Y
		bottom := bounds.Bottom() - anchor.Y
		if top < bottom {
			maxH = 2 * top
		} else {
			maxH = 2 * bottom
		}
	}
	return maxW, maxH
}
