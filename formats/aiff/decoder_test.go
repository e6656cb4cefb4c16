// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math/bits"
	"testing"

	"github.com/ik5/audwave/audio"
)

// extended encodes an integer sample rate as an 80-bit IEEE 754
// extended float, as stored in the COMM chunk.
func extended(rate int) []byte {
	out := make([]byte, 10)
	if rate == 0 {
		return out
	}
	exp := bits.Len64(uint64(rate)) - 1
	binary.BigEndian.PutUint16(out[0:2], uint16(16383+exp))
	binary.BigEndian.PutUint64(out[2:10], uint64(rate)<<(63-exp))
	return out
}

// rawAIFF builds a FORM/AIFF file with COMM and SSND chunks.
func rawAIFF(channels, bitDepth, rate int, data []byte) []byte {
	frames := 0
	if channels > 0 && bitDepth > 0 {
		frames = len(data) / (channels * bitDepth / 8)
	}

	var comm bytes.Buffer
	_ = binary.Write(&comm, binary.BigEndian, int16(channels))
	_ = binary.Write(&comm, binary.BigEndian, uint32(frames))
	_ = binary.Write(&comm, binary.BigEndian, int16(bitDepth))
	comm.Write(extended(rate))

	var body bytes.Buffer
	body.WriteString("AIFF")
	body.WriteString("COMM")
	_ = binary.Write(&body, binary.BigEndian, uint32(comm.Len()))
	body.Write(comm.Bytes())
	body.WriteString("SSND")
	_ = binary.Write(&body, binary.BigEndian, uint32(8+len(data)))
	_ = binary.Write(&body, binary.BigEndian, uint32(0)) // offset
	_ = binary.Write(&body, binary.BigEndian, uint32(0)) // block size
	body.Write(data)

	var file bytes.Buffer
	file.WriteString("FORM")
	_ = binary.Write(&file, binary.BigEndian, uint32(body.Len()))
	file.Write(body.Bytes())
	return file.Bytes()
}

func pcm16(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.BigEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

func TestDecoder_PCM16Stereo(t *testing.T) {
	t.Parallel()

	file := rawAIFF(2, 16, 44100, pcm16(16384, -16384, 8192, -32768))

	src, err := Decoder{}.Decode(bytes.NewReader(file))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Errorf("got %d Hz, %d channels, want 44100 Hz, 2 channels", src.SampleRate(), src.Channels())
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	want := [][]float32{{0.5, 0.25}, {-0.5, -1}}
	for c := range want {
		for i, v := range want[c] {
			if buf.Channels[c][i] != v {
				t.Errorf("channel %d sample %d = %v, want %v", c, i, buf.Channels[c][i], v)
			}
		}
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	file := rawAIFF(1, 16, 8000, pcm16(16384, 16384))
	r := struct{ io.Reader }{bytes.NewReader(file)}

	src, err := Decoder{}.Decode(r)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if buf.Frames() != 2 || buf.SampleRate != 8000 {
		t.Errorf("got %d frames at %d Hz, want 2 at 8000 Hz", buf.Frames(), buf.SampleRate)
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{"empty", nil, ErrNotAiffFile},
		{"riff data", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), ErrNotAiffFile},
		{"twelve bit", rawAIFF(1, 12, 8000, make([]byte, 8)), ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestExtended(t *testing.T) {
	t.Parallel()

	got := extended(44100)
	want := []byte{0x40, 0x0E, 0xAC, 0x44, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("extended(44100) = % x, want % x", got, want)
	}
}
