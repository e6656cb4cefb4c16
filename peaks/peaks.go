// SPDX-License-Identifier: EPL-2.0

package peaks

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/utils"
	"github.com/ik5/audwave/waveform"
	"gonum.org/v1/gonum/floats"
)

const (
	// Version of the audiowaveform JSON layout produced by Compute.
	Version = 2

	DefaultPixelsPerSecond = 10
	DefaultBits            = 16
)

// Options controls the resolution of the peak data. Zero values take the
// defaults.
type Options struct {
	PixelsPerSecond int `yaml:"pixels_per_second"`
	Bits            int `yaml:"bits"`
}

// DefaultOptions returns 10 pixels per second at 16 bits.
func DefaultOptions() Options {
	return Options{PixelsPerSecond: DefaultPixelsPerSecond, Bits: DefaultBits}
}

func (o Options) withDefaults() Options {
	if o.PixelsPerSecond == 0 {
		o.PixelsPerSecond = DefaultPixelsPerSecond
	}
	if o.Bits == 0 {
		o.Bits = DefaultBits
	}
	return o
}

// Validate reports the first invalid field after defaults are applied.
func (o Options) Validate() error {
	o = o.withDefaults()
	if o.PixelsPerSecond < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPixelsPerSecond, o.PixelsPerSecond)
	}
	if o.Bits != 8 && o.Bits != 16 {
		return fmt.Errorf("%w: %d", ErrInvalidBits, o.Bits)
	}
	return nil
}

// Data is the audiowaveform JSON peak format. Data holds Length min/max
// pairs, interleaved as min0, max0, min1, max1 and so on.
type Data struct {
	Version         int   `json:"version"`
	Channels        int   `json:"channels"`
	SampleRate      int   `json:"sample_rate"`
	SamplesPerPixel int   `json:"samples_per_pixel"`
	Bits            int   `json:"bits"`
	Length          int   `json:"length"`
	Data            []int `json:"data"`
}

// Compute derives min/max peak pairs from buf. Channels are averaged
// into one, as audiowaveform does without --split-channels.
func Compute(buf *audio.Buffer, opts Options) (*Data, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	samples, err := waveform.Reduce(buf)
	if err != nil {
		return nil, err
	}
	if buf.SampleRate <= 0 {
		return nil, &waveform.InvalidAudioError{Err: fmt.Errorf("sample rate %d", buf.SampleRate)}
	}

	spp := max(buf.SampleRate/opts.PixelsPerSecond, 1)
	length := (len(samples) + spp - 1) / spp

	d := &Data{
		Version:         Version,
		Channels:        1,
		SampleRate:      buf.SampleRate,
		SamplesPerPixel: spp,
		Bits:            opts.Bits,
		Length:          length,
		Data:            make([]int, 0, length*2),
	}

	for i := range length {
		w := samples[i*spp : min((i+1)*spp, len(samples))]
		d.Data = append(d.Data,
			utils.ScaleToBits(floats.Min(w), opts.Bits),
			utils.ScaleToBits(floats.Max(w), opts.Bits),
		)
	}

	return d, nil
}

// Encode writes d as a single JSON document.
func (d *Data) Encode(w io.Writer) error {
	if err := json.NewEncoder(w).Encode(d); err != nil {
		return fmt.Errorf("encoding peak data: %w", err)
	}
	return nil
}

// Decode reads peak data written by Encode or by audiowaveform.
func Decode(r io.Reader) (*Data, error) {
	var d Data
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding peak data: %w", err)
	}
	if len(d.Data) != d.Length*2*max(d.Channels, 1) {
		return nil, fmt.Errorf("decoding peak data: %d values for length %d", len(d.Data), d.Length)
	}
	return &d, nil
}
