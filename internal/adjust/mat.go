package adjust

import (
	"image"
	"image/draw"

	"gocv.io/x/gocv"
)

// ApplyMat is the OpenCV fast path for large images: it applies the settings
// to a BGR Mat and returns a new Mat. The caller owns the result and must
// Close it. The source is left untouched.
func ApplyMat(src gocv.Mat, s Settings) gocv.Mat {
	out := src.Clone()
	if s.IsNeutral() || out.Empty() {
		return out
	}

	if s.ColorTemperature != neutralKelvin {
		rf, gf, bf := TemperatureFactors(s.ColorTemperature)
		chans := gocv.Split(out)
		// Channel order is BGR.
		chans[0].MultiplyFloat(float32(bf))
		chans[1].MultiplyFloat(float32(gf))
		chans[2].MultiplyFloat(float32(rf))
		merged := gocv.NewMat()
		gocv.Merge(chans, &merged)
		for i := range chans {
			chans[i].Close()
		}
		out.Close()
		out = merged
	}

	if s.Brightness != 100 {
		out.MultiplyFloat(float32(s.Brightness) / 100)
	}

	if s.Saturation != 100 {
		gray := gocv.NewMat()
		defer gray.Close()
		gocv.CvtColor(out, &gray, gocv.ColorBGRToGray)
		gray3 := gocv.NewMat()
		defer gray3.Close()
		gocv.CvtColor(gray, &gray3, gocv.ColorGrayToBGR)

		sat := float64(s.Saturation) / 100
		blended := gocv.NewMat()
		gocv.AddWeighted(out, sat, gray3, 1-sat, 0, &blended)
		out.Close()
		out = blended
	}

	return out
}

// ApplyImageMat runs the OpenCV pipeline against a decoded image. The Mat
// path carries no alpha channel, so callers whose sources have meaningful
// transparency use Apply instead.
func ApplyImageMat(img image.Image, s Settings) (*image.RGBA, error) {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	out := ApplyMat(src, s)
	defer out.Close()

	res, err := out.ToImage()
	if err != nil {
		return nil, err
	}
	rgba, ok := res.(*image.RGBA)
	if !ok {
		b := res.Bounds()
		rgba = image.NewRGBA(b)
		draw.Draw(rgba, b, res, b.Min, draw.Src)
	}
	return rgba, nil
}
