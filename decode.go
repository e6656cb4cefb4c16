// SPDX-License-Identifier: EPL-2.0

package audwave

import (
	"errors"
	"fmt"
	"os"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/formats/aiff"
	"github.com/ik5/audwave/formats/flac"
	"github.com/ik5/audwave/formats/mp3"
	"github.com/ik5/audwave/formats/vorbis"
	"github.com/ik5/audwave/formats/wav"
	"github.com/ik5/audwave/waveform"
)

// DefaultRegistry returns a new registry holding every bundled decoder.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("flac", flac.Decoder{})
	return reg
}

// OpenFile decodes the head of the file at path with the decoder
// registered for its extension. Closing the returned source closes the
// file. A nil reg means DefaultRegistry.
func OpenFile(path string, reg *audio.Registry) (audio.Source, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}

	dec, err := reg.ForPath(path)
	if err != nil {
		return nil, &waveform.InvalidAudioError{Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &waveform.InvalidAudioError{Err: err}
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, &waveform.InvalidAudioError{Err: fmt.Errorf("decoding %s: %w", path, err)}
	}

	return &fileSource{Source: src, file: f}, nil
}

type fileSource struct {
	audio.Source
	file *os.File
}

func (s *fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.file.Close())
}

// DecodeFile reads the whole file at path into a Buffer.
func DecodeFile(path string, reg *audio.Registry) (*audio.Buffer, error) {
	src, err := OpenFile(path, reg)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, &waveform.InvalidAudioError{Err: fmt.Errorf("reading %s: %w", path, err)}
	}
	return buf, nil
}
