// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// Buffer is a fully decoded, planar audio signal. Channels[c][f] is the
// sample of channel c at frame f, normalized to [-1,1].
//
// A Buffer is treated as read-only once built; consumers never modify it.
type Buffer struct {
	Channels   [][]float32
	SampleRate int
}

// NewBuffer wraps per-channel sample slices without copying them.
func NewBuffer(sampleRate int, channels ...[]float32) *Buffer {
	return &Buffer{
		Channels:   channels,
		SampleRate: sampleRate,
	}
}

// Frames returns the length of the first channel, or 0 for an empty buffer.
func (b *Buffer) Frames() int {
	if b == nil || len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration of the signal, or 0 when the sample rate is unknown.
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.Frames()) / float64(b.SampleRate) * float64(time.Second))
}

// Seconds is Duration expressed as a float, without time.Duration rounding.
func (b *Buffer) Seconds() float64 {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

const maxEmptyReads = 100

// ReadAll drains src and de-interleaves it into a Buffer.
// It does not close src.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	// Keep reads frame aligned so a frame is never split between calls.
	bufSize -= bufSize % channels
	buf := make([]float32, bufSize)

	out := &Buffer{
		Channels:   make([][]float32, channels),
		SampleRate: src.SampleRate(),
	}

	var pending []float32
	empty := 0
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			data := buf[:n]
			if len(pending) > 0 {
				data = append(pending, data...)
				pending = nil
			}
			frames := len(data) / channels
			for c := range channels {
				ch := out.Channels[c]
				for f := range frames {
					ch = append(ch, data[f*channels+c])
				}
				out.Channels[c] = ch
			}
			if rest := data[frames*channels:]; len(rest) > 0 {
				pending = append([]float32(nil), rest...)
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
		if n > 0 {
			empty = 0
			continue
		}
		if empty++; empty >= maxEmptyReads {
			return nil, io.ErrNoProgress
		}
	}

	return out, nil
}

// Interleave returns the samples of b in interleaved order.
func (b *Buffer) Interleave() []float32 {
	frames := b.Frames()
	channels := len(b.Channels)
	out := make([]float32, frames*channels)
	for c, ch := range b.Channels {
		for f := 0; f < frames && f < len(ch); f++ {
			out[f*channels+c] = ch[f]
		}
	}
	return out
}

// BufferSource streams a Buffer as an interleaved Source.
type BufferSource struct {
	buf *Buffer
	pos int
}

func NewBufferSource(b *Buffer) *BufferSource {
	return &BufferSource{buf: b}
}

func (s *BufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *BufferSource) Channels() int   { return len(s.buf.Channels) }
func (s *BufferSource) BufSize() int    { return 4096 }
func (s *BufferSource) Close() error    { return nil }

func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	channels := len(s.buf.Channels)
	if channels == 0 {
		return 0, io.EOF
	}
	frames := min(len(dst)/channels, s.buf.Frames()-s.pos)
	if frames <= 0 {
		return 0, io.EOF
	}
	for f := range frames {
		for c, ch := range s.buf.Channels {
			dst[f*channels+c] = ch[s.pos+f]
		}
	}
	s.pos += frames
	if s.pos >= s.buf.Frames() {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}
