package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func TestClampRectToBoundsIdentity(t *testing.T) {
	bounds := NewRect(0, 0, 1000, 800)
	r := NewRect(100, 200, 300, 150)
	assert.Equal(t, r, ClampRectToBounds(r, bounds))
}

func TestClampRectToBoundsTranslates(t *testing.T) {
	bounds := NewRect(0, 0, 1000, 800)

	r := ClampRectToBounds(NewRect(950, 750, 100, 100), bounds)
	assert.Equal(t, NewRect(900, 700, 100, 100), r)

	r = ClampRectToBounds(NewRect(-20, -30, 100, 100), bounds)
	assert.Equal(t, NewRect(0, 0, 100, 100), r)
}

func TestClampRectToBoundsShrinksPreservingAspect(t *testing.T) {
	bounds := NewRect(0, 0, 500, 500)

	// 2:1 rect wider than the canvas
	r := ClampRectToBounds(NewRect(0, 0, 1000, 500), bounds)
	assert.InDelta(t, 500, r.Width, tol)
	assert.InDelta(t, 250, r.Height, tol)
	assert.InDelta(t, 2.0, r.AspectRatio(), tol)
	assert.True(t, bounds.ContainsRect(r))
}

func TestFitWithin(t *testing.T) {
	fit := FitWithin(NewSize(200, 100), NewSize(800, 600))
	assert.Equal(t, NewSize(200, 100), fit)

	fit = FitWithin(NewSize(1600, 800), NewSize(800, 600))
	assert.InDelta(t, 800, fit.Width, tol)
	assert.InDelta(t, 400, fit.Height, tol)
}

func TestBoundingBox(t *testing.T) {
	box := BoundingBox([]Rect{
		NewRect(0, 0, 100, 100),
		NewRect(200, 50, 100, 100),
	})
	assert.Equal(t, NewRect(0, 0, 300, 150), box)

	assert.Equal(t, Rect{}, BoundingBox(nil))
}

func allHandles() []Handle {
	return []Handle{
		HandleTopLeft, HandleTop, HandleTopRight,
		HandleLeft, HandleRight,
		HandleBottomLeft, HandleBottom, HandleBottomRight,
	}
}

func TestResizeFromHandleAnchorFixed(t *testing.T) {
	orig := NewRect(300, 200, 200, 100)

	for _, h := range allHandles() {
		anchor := AnchorPoint(orig, h)
		got := ResizeFromHandle(orig, h, 37, -23, 100, false)
		assert.InDelta(t, anchor.X, AnchorPoint(got, h).X, tol, "handle %s", h)
		assert.InDelta(t, anchor.Y, AnchorPoint(got, h).Y, tol, "handle %s", h)
	}
}

func TestResizeFromHandleCorners(t *testing.T) {
	orig := NewRect(300, 200, 200, 100)

	// Dragging bottom-right outward grows the rect in place.
	got := ResizeFromHandle(orig, HandleBottomRight, 50, 30, 100, false)
	assert.Equal(t, NewRect(300, 200, 250, 130), got)

	// Dragging top-left outward grows toward the top-left.
	got = ResizeFromHandle(orig, HandleTopLeft, -50, -30, 100, false)
	assert.Equal(t, NewRect(250, 170, 250, 130), got)
}

func TestResizeFromHandleEdges(t *testing.T) {
	orig := NewRect(300, 200, 200, 100)

	// The right edge handle only changes width.
	got := ResizeFromHandle(orig, HandleRight, 40, 999, 100, false)
	assert.Equal(t, NewRect(300, 200, 240, 100), got)

	// The top edge handle only changes height, moving the top edge.
	got = ResizeFromHandle(orig, HandleTop, 999, -40, 100, false)
	assert.Equal(t, NewRect(300, 160, 200, 140), got)
}

func TestResizeFromHandleMinSize(t *testing.T) {
	orig := NewRect(300, 200, 200, 150)

	// Shrinking far past the minimum clamps at minSize and keeps the anchor:
	// for a left handle the right edge must not move.
	got := ResizeFromHandle(orig, HandleLeft, 500, 0, 100, false)
	assert.InDelta(t, 100, got.Width, tol)
	assert.InDelta(t, orig.Right(), got.Right(), tol)
	assert.InDelta(t, orig.Height, got.Height, tol)
}

func TestResizeFromHandlePreserveAspectAllHandles(t *testing.T) {
	orig := NewRect(300, 200, 200, 100)
	ratio := orig.AspectRatio()

	for _, h := range allHandles() {
		got := ResizeFromHandle(orig, h, 60, 25, 100, true)
		require.Greater(t, got.Height, 0.0, "handle %s", h)
		assert.InDelta(t, ratio, got.AspectRatio(), 1e-6, "handle %s", h)

		anchor := AnchorPoint(orig, h)
		assert.InDelta(t, anchor.X, AnchorPoint(got, h).X, 1e-6, "handle %s", h)
		assert.InDelta(t, anchor.Y, AnchorPoint(got, h).Y, 1e-6, "handle %s", h)
	}
}

func TestResizeFromHandlePreserveAspectDominantAxis(t *testing.T) {
	orig := NewRect(0, 0, 200, 100)

	// dx is relatively larger (80/200 > 10/100): width drives height.
	got := ResizeFromHandle(orig, HandleBottomRight, 80, 10, 10, true)
	assert.InDelta(t, 280, got.Width, tol)
	assert.InDelta(t, 140, got.Height, tol)

	// dy relatively larger: height drives width.
	got = ResizeFromHandle(orig, HandleBottomRight, 10, 40, 10, true)
	assert.InDelta(t, 140, got.Height, tol)
	assert.InDelta(t, 280, got.Width, tol)
}

func TestResizeFromHandlePreserveAspectPastAnchor(t *testing.T) {
	orig := NewRect(300, 200, 200, 100)

	// Dragging far past the anchor collapses to the minimal legal rect.
	got := ResizeFromHandle(orig, HandleBottomRight, -1000, -1000, 100, true)
	assert.InDelta(t, 2.0, got.AspectRatio(), 1e-6)
	assert.GreaterOrEqual(t, got.Width, 100.0)
	assert.GreaterOrEqual(t, got.Height, 100.0)
}

func TestResizeWithinBoundsClampsGrowth(t *testing.T) {
	bounds := NewRect(0, 0, 1000, 800)
	orig := NewRect(700, 600, 200, 100)

	// Dragging the bottom-right corner far outside: growth stops at the
	// canvas edge and the anchor (top-left corner) does not move.
	got := ResizeWithinBounds(orig, HandleBottomRight, 500, 500, 100, false, bounds)
	assert.Equal(t, NewRect(700, 600, 300, 200), got)
	assert.True(t, bounds.ContainsRect(got))
}

func TestResizeWithinBoundsPreserveAspect(t *testing.T) {
	bounds := NewRect(0, 0, 1000, 800)
	orig := NewRect(700, 650, 200, 100)
	ratio := orig.AspectRatio()

	got := ResizeWithinBounds(orig, HandleBottomRight, 500, 500, 100, true, bounds)
	assert.True(t, bounds.ContainsRect(got))
	assert.InDelta(t, ratio, got.AspectRatio(), 1e-6)
	// Anchor fixed.
	assert.InDelta(t, 700, got.X, tol)
	assert.InDelta(t, 650, got.Y, tol)
	// Height was the limiting axis: 800-650 = 150 high, so 300 wide.
	assert.InDelta(t, 150, got.Height, tol)
	assert.InDelta(t, 300, got.Width, tol)
}

func TestResizeWithinBoundsEdgeHandleSymmetric(t *testing.T) {
	bounds := NewRect(0, 0, 1000, 800)
	// Item near the top edge; the right-edge handle with aspect lock grows
	// height symmetrically around the anchor midpoint, limited by the
	// distance to the nearer (top) edge.
	orig := NewRect(100, 20, 200, 100)

	got := ResizeWithinBounds(orig, HandleRight, 800, 0, 100, true, bounds)
	assert.True(t, bounds.ContainsRect(got))
	assert.InDelta(t, orig.AspectRatio(), got.AspectRatio(), 1e-6)
	// Anchor is the left edge midpoint at y=70; max height is 2*70 = 140.
	assert.InDelta(t, 140, got.Height, tol)
	assert.InDelta(t, 0, got.Y, tol)
}
