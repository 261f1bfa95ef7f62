package geometry

// ClampRectToBounds returns the minimal adjustment of rect that lies fully
// within bounds. A rect that already fits is returned unchanged. A rect that
// fits but is offset is translated, never resized. Only when rect is larger
// than bounds on an axis is it shrunk, uniformly on both axes so the aspect
// ratio is preserved, and then translated inside.
func ClampRectToBounds(rect, bounds Rect) Rect {
	r := rect

	if r.Width > bounds.Width || r.Height > bounds.Height {
		scale := 1.0
		if r.Width > 0 && bounds.Width/r.Width < scale {
			scale = bounds.Width / r.Width
		}
		if r.Height > 0 && bounds.Height/r.Height < scale {
			scale = bounds.Height / r.Height
		}
		r.Width *= scale
		r.Height *= scale
	}

	if r.X < bounds.X {
		r.X = bounds.X
	}
	if r.Y < bounds.Y {
		r.Y = bounds.Y
	}
	if r.Right() > bounds.Right() {
		r.X = bounds.Right() - r.Width
	}
	if r.Bottom() > bounds.Bottom() {
		r.Y = bounds.Bottom() - r.Height
	}
	return r
}

// FitWithin scales size down, preserving aspect ratio, so it fits inside
// bounds. A size that already fits is returned unchanged.
func FitWithin(size, bounds Size) Size {
	if size.Width <= bounds.Width && size.Height <= bounds.Height {
		return size
	}
	if size.Width <= 0 || size.Height <= 0 {
		return size
	}
	scale := bounds.Width / size.Width
	if s := bounds.Height / size.Height; s < scale {
		scale = s
	}
	return Size{Width: size.Width * scale, Height: size.Height * scale}
}
