// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"fmt"
	"math"
)

// Geometry is the pixel layout of one rendering. It depends only on the
// Config and the audio duration.
type Geometry struct {
	Width       int
	Height      int
	Center      int     // row the bars are mirrored around, Height/2
	HalfScale   float64 // pixels per unit magnitude above the center, Height/2
	SampleWidth int     // painted columns per slot
	Period      int     // SampleWidth + gap
	Bars        int     // slots needed to cover Width, the last may be clipped
}

// HalfExtent is the number of rows a bar of magnitude m reaches above and
// below Center. It rounds half up and never exceeds Center, so m = 1
// touches row 0.
func (g Geometry) HalfExtent(m float64) int {
	if m <= 0 {
		return 0
	}
	h := int(math.Floor(m*g.HalfScale + 0.5))
	return min(h, g.Center)
}

// AutoWidth converts a duration to pixels, rounding half up.
func AutoWidth(seconds, pixelsPerSecond float64) int {
	return int(math.Floor(seconds*pixelsPerSecond + 0.5))
}

// Plan computes the Geometry for frames of audio at sampleRate.
func Plan(cfg Config, frames, sampleRate int) (Geometry, error) {
	s, err := cfg.resolve()
	if err != nil {
		return Geometry{}, err
	}
	return s.plan(frames, sampleRate)
}

func (s settings) plan(frames, sampleRate int) (Geometry, error) {
	width := s.width
	if width == 0 {
		width = DefaultWidth
		if s.autoWidth > 0 {
			if sampleRate <= 0 {
				return Geometry{}, audioErr(fmt.Errorf("sample rate %d: duration unknown", sampleRate))
			}
			width = AutoWidth(float64(frames)/float64(sampleRate), s.autoWidth)
		}
	}
	if width <= 0 {
		return Geometry{}, configErr("width", fmt.Errorf("%w: computed width %d", ErrNonPositiveSize, width))
	}
	if s.height <= 0 {
		return Geometry{}, configErr("height", fmt.Errorf("%w: height %d", ErrNonPositiveSize, s.height))
	}

	period := s.sampleWidth + s.gapWidth
	return Geometry{
		Width:       width,
		Height:      s.height,
		Center:      s.height / 2,
		HalfScale:   float64(s.height) / 2,
		SampleWidth: s.sampleWidth,
		Period:      period,
		Bars:        (width + period - 1) / period,
	}, nil
}
