package scene

import (
	"errors"
	"fmt"
	"testing"

	"collage-maker/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestScene builds an 800x600 scene with n items dropped along a diagonal.
func newTestScene(t *testing.T, n int) *Scene {
	t.Helper()
	s := NewScene(800, 600)
	for i := 0; i < n; i++ {
		_, err := s.AddItem(testRecord(fmt.Sprintf("f%d", i)),
			geometry.NewPoint2D(150+float64(i)*50, 150+float64(i)*50))
		require.NoError(t, err)
	}
	return s
}

func TestAddItemAssignsIncreasingZOrder(t *testing.T) {
	s := newTestScene(t, 3)
	items := s.Items()
	assert.Equal(t, 1, items[0].ZOrder)
	assert.Equal(t, 2, items[1].ZOrder)
	assert.Equal(t, 3, items[2].ZOrder)
	assert.Equal(t, "item-1", items[0].ID)
	assert.Equal(t, "item-3", items[2].ID)
}

func TestRemoveItemNotFound(t *testing.T) {
	s := newTestScene(t, 1)
	err := s.RemoveItem("item-99")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestBringToFrontAndSendToBack(t *testing.T) {
	s := newTestScene(t, 3)
	items := s.Items()

	require.NoError(t, s.BringToFront(items[0].ID))
	ordered := s.ItemsByZ()
	assert.Same(t, items[0], ordered[2])

	require.NoError(t, s.SendToBack(items[2].ID))
	ordered = s.ItemsByZ()
	assert.Same(t, items[2], ordered[0])

	assert.ErrorIs(t, s.BringToFront("nope"), ErrNotFound)
	assert.ErrorIs(t, s.SendToBack("nope"), ErrNotFound)
}

func TestZOrderRenormalization(t *testing.T) {
	s := newTestScene(t, 3)
	items := s.Items()

	// Churn the z-order far past the renormalization threshold.
	for i := 0; i < 20; i++ {
		require.NoError(t, s.BringToFront(items[i%3].ID))
		require.NoError(t, s.SendToBack(items[(i+1)%3].ID))
	}

	zs := make([]int, 0, 3)
	for _, it := range s.ItemsByZ() {
		zs = append(zs, it.ZOrder)
	}
	assert.Less(t, zs[2]-zs[0], 2*s.Len(), "span must stay bounded: %v", zs)
	assert.Less(t, zs[0], zs[1])
	assert.Less(t, zs[1], zs[2])
}

func TestHitTestTopmostWins(t *testing.T) {
	s := NewScene(800, 600)
	a, err := s.AddItem(testRecord("a"), geometry.NewPoint2D(300, 300))
	require.NoError(t, err)
	b, err := s.AddItem(testRecord("b"), geometry.NewPoint2D(320, 320))
	require.NoError(t, err)

	// Overlapping region: the later (higher z) item wins.
	hit := s.HitTest(geometry.NewPoint2D(310, 310))
	assert.Same(t, b, hit)

	require.NoError(t, s.BringToFront(a.ID))
	hit = s.HitTest(geometry.NewPoint2D(310, 310))
	assert.Same(t, a, hit)

	assert.Nil(t, s.HitTest(geometry.NewPoint2D(10, 10)))
}

func TestCanvasResizeReclampsItems(t *testing.T) {
	s := newTestScene(t, 1)
	it := s.Items()[0]
	it.Bounds = geometry.NewRect(600, 400, 200, 100)

	require.NoError(t, s.Resize(400, 300))
	assert.True(t, s.CanvasBounds().ContainsRect(it.Bounds))
	assert.GreaterOrEqual(t, it.Bounds.Width, MinItemSize)
	assert.GreaterOrEqual(t, it.Bounds.Height, MinItemSize)
	assert.Equal(t, 1, s.Len(), "resize must never delete items")

	var verr *ValidationError
	err := s.Resize(10, 10)
	assert.True(t, errors.As(err, &verr))
}

func TestCanvasResizeMinSizeRestoreStaysInside(t *testing.T) {
	s := NewScene(1000, 1100)
	it, err := s.AddItem(testRecord("sofa-1"), geometry.NewPoint2D(500, 550))
	require.NoError(t, err)
	// A wide sliver hugging the bottom edge: the aspect-preserving shrink
	// drops it below minimum height, and the restored height must not push
	// it past the canvas bottom.
	it.Bounds = geometry.NewRect(0, 995, 1000, 100)

	require.NoError(t, s.Resize(100, 1000))
	assert.True(t, s.CanvasBounds().ContainsRect(it.Bounds),
		"item escapes canvas: bottom=%g > %g", it.Bounds.Bottom(), s.Height())
	assert.GreaterOrEqual(t, it.Bounds.Width, MinItemSize)
	assert.GreaterOrEqual(t, it.Bounds.Height, MinItemSize)
}

func TestSelectSingleAndToggle(t *testing.T) {
	s := newTestScene(t, 2)
	items := s.Items()

	require.NoError(t, s.SelectSingle(items[0].ID))
	assert.Equal(t, 1, s.Selection().Len())

	require.NoError(t, s.SelectToggle(items[1].ID))
	assert.Equal(t, 2, s.Selection().Len())
	assert.Same(t, items[1], s.Selection().Anchor())

	require.NoError(t, s.SelectToggle(items[1].ID))
	assert.Equal(t, 1, s.Selection().Len())

	assert.ErrorIs(t, s.SelectSingle("nope"), ErrNotFound)

	s.ClearSelection()
	assert.Equal(t, 0, s.Selection().Len())
}

func TestClear(t *testing.T) {
	s := newTestScene(t, 3)
	s.Selection().Add(s.Items()[0])
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Selection().Len())
}

func TestModifiedAtAdvances(t *testing.T) {
	s := newTestScene(t, 1)
	before := s.ModifiedAt
	require.NoError(t, s.ToggleFlip(s.Items()[0].ID))
	assert.False(t, s.ModifiedAt.Before(before))
}
