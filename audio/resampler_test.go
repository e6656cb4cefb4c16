// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audwave/internal/audiotest"
)

func drain(t *testing.T, src Source) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, 256*src.Channels())
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		srcRate  int
		dstRate  int
		frames   int
		channels int
		want     int
	}{
		{"same rate", 8000, 8000, 8000, 1, 8000},
		{"downsample 44.1k to 16k", 44100, 16000, 44100, 1, 16000},
		{"downsample by two", 16000, 8000, 16000, 2, 8000},
		{"upsample by two", 8000, 16000, 8000, 1, 15999},
		{"single frame", 8000, 8000, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, tt.channels, tt.frames, 220)
			r := NewResampler(src, tt.dstRate)
			if r.SampleRate() != tt.dstRate {
				t.Errorf("SampleRate() = %d, want %d", r.SampleRate(), tt.dstRate)
			}

			got := len(drain(t, r)) / tt.channels
			if got != tt.want {
				t.Errorf("frames = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResampler_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 1, 64, audiotest.Sawtooth(16, 0.8))
	got := drain(t, NewResampler(src, 8000))

	for i, v := range got {
		want := audiotest.Sawtooth(16, 0.8)(i, 0)
		if math.Abs(float64(v-want)) > 1e-6 {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestResampler_ConstantStaysConstant(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(44100, 2, 4410, 0.3)
	got := drain(t, NewResampler(src, 8000))

	if len(got) == 0 {
		t.Fatal("no output")
	}
	for i, v := range got {
		if math.Abs(float64(v-0.3)) > 1e-5 {
			t.Fatalf("sample %d = %v, want 0.3", i, v)
		}
	}
}

func TestResampler_InvalidDst(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 2, 10), 4000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 1, 0), 4000)
	n, err := r.ReadSamples(make([]float32, 16))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = (%d, %v), want (0, io.EOF)", n, err)
	}
}
