package adjust

import (
	"image/color"
	"sync"

	"gonum.org/v1/gonum/interp"
)

// Blackbody white points sampled every 1000K, used to render the temperature
// slider gradient. Values follow the usual tabulated blackbody RGB chart.
var (
	lutKelvin = []float64{2000, 3000, 4000, 5000, 6000, 6500, 7000, 8000, 9000, 10000}
	lutRed    = []float64{255, 255, 255, 255, 255, 255, 245, 227, 214, 204}
	lutGreen  = []float64{138, 180, 209, 228, 243, 249, 243, 233, 225, 219}
	lutBlue   = []float64{18, 107, 163, 206, 239, 253, 255, 255, 255, 255}
)

var (
	lutOnce          sync.Once
	lutR, lutG, lutB interp.PiecewiseLinear
)

// WhitePoint returns the approximate RGB white point of a blackbody at the
// given Kelvin temperature, interpolated from the sample table. Temperatures
// outside [2000, 10000] are clamped.
func WhitePoint(kelvin int) color.RGBA {
	lutOnce.Do(func() {
		// Fit cannot fail here: the xs are fixed and strictly increasing.
		_ = lutR.Fit(lutKelvin, lutRed)
		_ = lutG.Fit(lutKelvin, lutGreen)
		_ = lutB.Fit(lutKelvin, lutBlue)
	})

	k := float64(kelvin)
	if k < minKelvin {
		k = minKelvin
	}
	if k > maxKelvin {
		k = maxKelvin
	}
	return color.RGBA{
		R: clamp8(lutR.Predict(k)),
		G: clamp8(lutG.Predict(k)),
		B: clamp8(lutB.Predict(k)),
		A: 255,
	}
}
