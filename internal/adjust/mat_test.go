package adjust

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientPatch(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(30 * x % 200),
				G: uint8(25 * y % 200),
				B: uint8(200 - 10*(x%8)),
				A: 255,
			})
		}
	}
	return img
}

func TestApplyImageMatNeutralIsIdentity(t *testing.T) {
	src := gradientPatch(8, 8)
	got, err := ApplyImageMat(src, Neutral())
	require.NoError(t, err)

	for _, p := range []image.Point{{0, 0}, {3, 5}, {7, 7}} {
		want := src.RGBAAt(p.X, p.Y)
		have := got.RGBAAt(p.X, p.Y)
		assert.Equal(t, want.R, have.R)
		assert.Equal(t, want.G, have.G)
		assert.Equal(t, want.B, have.B)
	}
}

func TestApplyImageMatMatchesApply(t *testing.T) {
	src := gradientPatch(8, 8)
	// Settings chosen so no channel saturates at any stage, where the two
	// pipelines' clamping orders would legitimately diverge.
	settings := Settings{ColorTemperature: 3000, Brightness: 80, Saturation: 60}

	want := Apply(src, settings)
	got, err := ApplyImageMat(src, settings)
	require.NoError(t, err)

	for _, p := range []image.Point{{0, 0}, {2, 3}, {5, 1}, {7, 7}} {
		w := want.RGBAAt(p.X, p.Y)
		g := got.RGBAAt(p.X, p.Y)
		assert.InDelta(t, int(w.R), int(g.R), 4, "R at %v", p)
		assert.InDelta(t, int(w.G), int(g.G), 4, "G at %v", p)
		assert.InDelta(t, int(w.B), int(g.B), 4, "B at %v", p)
	}
}
