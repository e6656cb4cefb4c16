// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts the integer PCM readers of the go-audio decoders
// to audio.Source.
package intpcm

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audwave/utils"
)

const defaultBufSize = 4096

// Reader is the PCMBuffer method shared by the go-audio wav and aiff
// decoders.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts integer samples to float32 as they are read.
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	bitDepth   int
	// offset is subtracted before scaling; 128 for unsigned 8-bit data.
	offset int
	intBuf *goaudio.IntBuffer
	done   bool
}

// NewSource wraps dec. bitDepth must be one of 8, 16, 24 or 32.
func NewSource(dec Reader, sampleRate, channels, bitDepth, offset int) *Source {
	return &Source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
		offset:     offset,
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }
func (s *Source) BufSize() int {
	if s.intBuf != nil && cap(s.intBuf.Data) > 0 {
		return cap(s.intBuf.Data)
	}
	return defaultBufSize
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.done {
		return 0, io.EOF
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data: make([]int, len(dst)),
			Format: &goaudio.Format{
				NumChannels: s.channels,
				SampleRate:  s.sampleRate,
			},
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("reading pcm: %w", err)
	}
	// A short read is not the end; only an empty one is.
	if n == 0 {
		s.done = true
		return 0, io.EOF
	}
	if err == io.EOF {
		s.done = true
	}

	for i, v := range s.intBuf.Data[:n] {
		dst[i] = utils.PCMToFloat32(v-s.offset, s.bitDepth)
	}

	return n, nil
}
