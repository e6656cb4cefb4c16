// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds synthetic signals and sources for tests.
// It does not import the audio package so that package can use it too.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of channel at frame.
type Waveform func(frame int, channel int) float32

// MockSource generates interleaved audio from a Waveform and satisfies
// audio.Source.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	wave       Waveform

	// Chunk caps the frames returned per ReadSamples call when > 0.
	Chunk int
}

func NewMockSource(sampleRate, channels, frames int, wave Waveform) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		wave:       wave,
	}
}

func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return 0 })
}

func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, Sine(sampleRate, frequency))
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the source to frame 0.
func (m *MockSource) Reset() {
	m.pos = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.pos)
	if m.Chunk > 0 {
		n = min(n, m.Chunk)
	}
	for f := range n {
		for c := range m.channels {
			dst[f*m.channels+c] = m.wave(m.pos+f, c)
		}
	}
	m.pos += n

	if m.pos >= m.frames {
		return n * m.channels, io.EOF
	}
	return n * m.channels, nil
}

// Sine is a full-scale sine wave at frequency Hz.
func Sine(sampleRate int, frequency float64) Waveform {
	return func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	}
}

// Sawtooth rises linearly from 0 towards peak over period frames, then
// wraps.
func Sawtooth(period int, peak float32) Waveform {
	return func(frame int, _ int) float32 {
		return peak * float32(frame%period+1) / float32(period)
	}
}

// Samples renders frames of one channel of w.
func Samples(frames int, w Waveform) []float32 {
	out := make([]float32, frames)
	for i := range out {
		out[i] = w(i, 0)
	}
	return out
}

// Constant returns frames copies of v.
func Constant(frames int, v float32) []float32 {
	out := make([]float32, frames)
	for i := range out {
		out[i] = v
	}
	return out
}
