// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audwave/utils"
)

// Resampler converts src to another sample rate with Catmull-Rom cubic
// interpolation. Channel count is preserved and samples stay interleaved.
// When downsampling, input frames pass through a one-pole low-pass filter first.
type Resampler struct {
	src      Source
	channels int
	dstRate  int
	step     float64 // source frames per output frame
	frac     float64 // position between hist[1] and hist[2]

	// hist[1] and hist[2] bracket the output position, hist[0] and hist[3]
	// are the outer control points.
	hist    [4][]float32
	present [4]bool
	started bool

	block    []float32
	blockPos int
	blockLen int
	srcErr   error
	empty    int

	lowpass bool
	state   []float32
}

const lowpassAlpha = 0.5

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		channels: channels,
		dstRate:  dstRate,
		step:     step,
		block:    make([]float32, max(channels, 4096-4096%max(channels, 1))),
		lowpass:  step > 1,
		state:    make([]float32, channels),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// pull copies the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) pull(dst []float32) (bool, error) {
	for r.blockPos+r.channels > r.blockLen {
		if r.srcErr != nil {
			if r.srcErr == io.EOF {
				return false, nil
			}
			return false, r.srcErr
		}
		n, err := r.src.ReadSamples(r.block)
		r.blockPos, r.blockLen = 0, n-n%r.channels
		switch {
		case err != nil:
			r.srcErr = err
		case n > 0:
			r.empty = 0
		default:
			if r.empty++; r.empty >= maxEmptyReads {
				r.srcErr = io.ErrNoProgress
			}
		}
	}

	copy(dst, r.block[r.blockPos:r.blockPos+r.channels])
	r.blockPos += r.channels

	if r.lowpass {
		for c := range dst {
			dst[c] = lowpassAlpha*dst[c] + (1-lowpassAlpha)*r.state[c]
			r.state[c] = dst[c]
		}
	}
	return true, nil
}

// advance shifts the history by one frame, padding with the previous frame
// when the source has run dry.
func (r *Resampler) advance() error {
	first := r.hist[0]
	copy(r.hist[:], r.hist[1:])
	copy(r.present[:], r.present[1:])
	r.hist[3] = first

	ok, err := r.pull(r.hist[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.hist[3], r.hist[2])
	}
	r.present[3] = ok
	return nil
}

func (r *Resampler) start() error {
	ok, err := r.pull(r.hist[1])
	if err != nil || !ok {
		return err
	}
	r.present[1] = true
	if r.lowpass {
		// Restart the filter from the first frame to avoid a fade-in.
		copy(r.state, r.hist[1])
	}
	copy(r.hist[0], r.hist[1])

	for i := 2; i < 4; i++ {
		ok, err = r.pull(r.hist[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.hist[i], r.hist[i-1])
		}
		r.present[i] = ok
	}
	return nil
}

// ReadSamples produces interleaved samples at the target rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels <= 0 {
		return 0, ErrNoChannels
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.started {
		r.started = true
		if err := r.start(); err != nil {
			return 0, fmt.Errorf("priming resampler: %w", err)
		}
	}

	frames := len(dst) / r.channels
	written := 0
	for written < frames {
		for r.frac >= 1 {
			r.frac--
			if err := r.advance(); err != nil {
				return written * r.channels, fmt.Errorf("reading source: %w", err)
			}
		}
		if !r.present[1] || (!r.present[2] && r.frac > 0) {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		x := float32(r.frac)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}

		written++
		r.frac += r.step
	}

	return written * r.channels, nil
}
