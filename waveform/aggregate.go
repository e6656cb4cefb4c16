// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Aggregate reduces samples to exactly bars magnitudes, one per time window.
//
// Windows are contiguous and len(samples)/bars frames long; the last window
// also takes the remainder, so every frame is counted exactly once. With
// more bars than frames, the leading windows hold one frame each and the
// rest are empty. Empty windows have magnitude 0. Magnitudes are clamped
// to [0,1] and never normalized per window.
func Aggregate(samples []float64, bars int, method Method) []float64 {
	if bars <= 0 {
		return nil
	}
	out := make([]float64, bars)

	size := len(samples) / bars
	for i := range out {
		lo, hi := window(i, bars, size, len(samples))
		if lo >= hi {
			continue
		}
		out[i] = magnitude(samples[lo:hi], method)
	}
	return out
}

func window(i, bars, size, n int) (int, int) {
	if size == 0 {
		if i >= n {
			return n, n
		}
		return i, i + 1
	}
	lo := i * size
	if i == bars-1 {
		return lo, n
	}
	return lo, lo + size
}

func magnitude(w []float64, method Method) float64 {
	var m float64
	switch method {
	case RMS:
		m = math.Sqrt(floats.Dot(w, w) / float64(len(w)))
	default:
		m = math.Max(math.Abs(floats.Max(w)), math.Abs(floats.Min(w)))
	}
	return math.Min(m, 1)
}
