// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/ik5/audwave/audio"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// frameParser is an interface for flac.Stream to allow testing
type frameParser interface {
	ParseNext() (*frame.Frame, error)
	Close() error
}

type source struct {
	stream     frameParser
	sampleRate int
	channels   int
	scale      float64

	// cur holds the undrained samples of the last parsed frame; pos counts
	// frames already handed out from it.
	cur *frame.Frame
	pos int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 * s.channels }
func (s *source) Close() error {
	if err := s.stream.Close(); err != nil {
		return fmt.Errorf("closing flac stream: %w", err)
	}
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) < s.channels {
		return 0, nil
	}

	if s.cur == nil || s.pos >= frameLen(s.cur) {
		f, err := s.stream.ParseNext()
		if err == io.EOF {
			return 0, io.EOF
		}
		if err != nil {
			return 0, fmt.Errorf("decoding flac frame: %w", err)
		}
		if len(f.Subframes) != s.channels {
			return 0, fmt.Errorf("%w: got %d subframes, want %d", ErrChannelCount, len(f.Subframes), s.channels)
		}
		s.cur, s.pos = f, 0
	}

	frames := min(len(dst)/s.channels, frameLen(s.cur)-s.pos)
	for i := range frames {
		for c, sub := range s.cur.Subframes {
			dst[i*s.channels+c] = float32(float64(sub.Samples[s.pos+i]) / s.scale)
		}
	}
	s.pos += frames

	return frames * s.channels, nil
}

// frameLen is the number of inter-channel samples in f.
func frameLen(f *frame.Frame) int {
	n := -1
	for _, sub := range f.Subframes {
		l := min(sub.NSamples, len(sub.Samples))
		if n < 0 || l < n {
			n = l
		}
	}
	return max(n, 0)
}

// Decoder reads native FLAC streams with github.com/mewkiz/flac.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("opening flac stream: %w", err)
	}

	info := stream.Info
	if info.NChannels < 1 {
		stream.Close()
		return nil, audio.ErrNoChannels
	}
	if info.BitsPerSample < 1 || info.BitsPerSample > 32 {
		stream.Close()
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, info.BitsPerSample)
	}

	return newSource(stream, int(info.SampleRate), int(info.NChannels), int(info.BitsPerSample)), nil
}

func newSource(stream frameParser, sampleRate, channels, bitsPerSample int) *source {
	return &source{
		stream:     stream,
		sampleRate: sampleRate,
		channels:   channels,
		scale:      float64(int64(1) << (bitsPerSample - 1)),
	}
}
