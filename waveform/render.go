// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/ik5/audwave/audio"
)

// MIMEType of the encoded output of Result.Encode.
const MIMEType = "image/png"

// Result is a finished rendering. The image belongs to the caller.
type Result struct {
	Image    *image.NRGBA
	MIMEType string
	Geometry Geometry
	Series   []float64
}

// Encode writes the image as PNG.
func (r *Result) Encode(w io.Writer) error {
	if err := png.Encode(w, r.Image); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// Render draws buf according to cfg. It either returns a fully painted
// image or an error, never both. Render keeps no state between calls and
// is safe for concurrent use with distinct buffers.
func Render(buf *audio.Buffer, cfg Config) (*Result, error) {
	s, err := cfg.resolve()
	if err != nil {
		return nil, err
	}

	samples, err := Reduce(buf)
	if err != nil {
		return nil, err
	}

	g, err := s.plan(len(samples), buf.SampleRate)
	if err != nil {
		return nil, err
	}

	series := Aggregate(samples, g.Bars, s.method)

	return &Result{
		Image:    Rasterize(g, series, s.fg, s.bg),
		MIMEType: MIMEType,
		Geometry: g,
		Series:   series,
	}, nil
}
