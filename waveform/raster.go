// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"image"
	"image/color"
	"image/draw"
)

// Rasterize paints series onto a new image laid out by g.
//
// Every pixel starts as bg. Bar i covers columns [i*Period, i*Period+SampleWidth)
// and rows [Center-h, Center+h], both clipped to the image, and is painted
// with fg using source replacement: a transparent fg clears the alpha of
// those pixels whatever bg is. Gap columns and zero magnitudes keep bg.
func Rasterize(g Geometry, series []float64, fg, bg color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	ink := image.NewUniform(fg)
	for i, m := range series {
		if i >= g.Bars {
			break
		}
		if m <= 0 {
			continue
		}
		h := g.HalfExtent(m)
		x := i * g.Period
		bar := image.Rect(x, g.Center-h, x+g.SampleWidth, g.Center+h+1).Intersect(img.Bounds())
		if bar.Empty() {
			continue
		}
		draw.Draw(img, bar, ink, image.Point{}, draw.Src)
	}
	return img
}
