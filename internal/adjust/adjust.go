// Package adjust implements the per-item image adjustments: color
// temperature, brightness, and saturation.
package adjust

import (
	"image"
	"image/color"
)

const (
	neutralKelvin = 6500
	minKelvin     = 2000
	maxKelvin     = 10000
)

// Settings holds one item's adjustment values. Temperature is in Kelvin,
// brightness and saturation in percent where 100 is neutral.
type Settings struct {
	ColorTemperature int
	Brightness       int
	Saturation       int
}

// Neutral returns settings that leave an image unchanged.
func Neutral() Settings {
	return Settings{ColorTemperature: neutralKelvin, Brightness: 100, Saturation: 100}
}

// IsNeutral reports whether applying s would be a no-op.
func (s Settings) IsNeutral() bool {
	return s.ColorTemperature == neutralKelvin && s.Brightness == 100 && s.Saturation == 100
}

// TemperatureFactors returns the per-channel multipliers that shift an
// image's white point from neutral toward the given Kelvin temperature.
// Warm temperatures boost red and cut blue; cool ones do the reverse.
func TemperatureFactors(kelvin int) (r, g, b float64) {
	r, g, b = 1, 1, 1
	switch {
	case kelvin < neutralKelvin:
		t := float64(neutralKelvin-kelvin) / float64(neutralKelvin-minKelvin)
		r = 1 + 0.2*t
		b = 1 - 0.6*t
	case kelvin > neutralKelvin:
		t := float64(kelvin-neutralKelvin) / float64(maxKelvin-neutralKelvin)
		r = 1 - 0.4*t
		g = 1 - 0.2*t
		b = 1 + 0.2*t
	}
	return r, g, b
}

// Apply returns a copy of img with the settings applied: white point shift,
// brightness scale, then a saturation blend against Rec.601 luma. Alpha is
// preserved.
func Apply(img image.Image, s Settings) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(bounds)
	if s.IsNeutral() {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				dst.Set(x, y, img.At(x, y))
			}
		}
		return dst
	}

	rf, gf, bf := TemperatureFactors(s.ColorTemperature)
	bright := float64(s.Brightness) / 100
	sat := float64(s.Saturation) / 100

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sr, sg, sb, sa := img.At(x, y).RGBA()
			r := float64(sr) / 257 * rf * bright
			g := float64(sg) / 257 * gf * bright
			b := float64(sb) / 257 * bf * bright

			if sat != 1 {
				luma := 0.299*r + 0.587*g + 0.114*b
				r = luma + (r-luma)*sat
				g = luma + (g-luma)*sat
				b = luma + (b-luma)*sat
			}

			dst.SetRGBA(x, y, color.RGBA{
				R: clamp8(r),
				G: clamp8(g),
				B: clamp8(b),
				A: uint8(sa / 257),
			})
		}
	}
	return dst
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
