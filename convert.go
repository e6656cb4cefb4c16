// SPDX-License-Identifier: EPL-2.0

package audwave

import (
	"fmt"
	"io"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/formats/wav"
	"github.com/ik5/audwave/internal/staging"
	"github.com/ik5/audwave/utils"
	"github.com/ik5/audwave/waveform"
)

// ConvertOptions shapes the output of ConvertToWAV. The zero value keeps
// the source rate and channel layout.
type ConvertOptions struct {
	// SampleRate resamples the output when positive.
	SampleRate int
	// Mono averages all channels into one.
	Mono bool
	// Registry picks the input decoder; nil means DefaultRegistry.
	Registry *audio.Registry
}

// ConvertToWAV decodes in and writes it to out as 16-bit PCM WAV. out is
// written atomically, so a failed conversion leaves no partial file.
func ConvertToWAV(in, out string, opts ConvertOptions) error {
	if opts.SampleRate < 0 {
		return &waveform.InvalidConfigError{Field: "sample_rate", Err: waveform.ErrNonPositiveSize}
	}

	src, err := OpenFile(in, opts.Registry)
	if err != nil {
		return err
	}
	defer src.Close()

	var pipeline audio.Source = src
	if opts.SampleRate > 0 && opts.SampleRate != src.SampleRate() {
		pipeline = audio.NewResampler(pipeline, opts.SampleRate)
	}
	if opts.Mono && pipeline.Channels() > 1 {
		pipeline = audio.NewMonoMixer(pipeline)
	}

	buf, err := audio.ReadAll(pipeline)
	if err != nil {
		return &waveform.InvalidAudioError{Err: fmt.Errorf("reading %s: %w", in, err)}
	}

	return staging.WriteFile(out, func(w io.Writer) error {
		return wav.WriteBuffer(w, buf)
	})
}

// ResampleToMono16 resamples src to targetRate, mixes it down to mono and
// collects the result as 16-bit PCM. bufferSize is the read chunk in
// samples. The returned rate always equals targetRate.
//
// For more control over the pipeline use audio.NewResampler and
// audio.NewMonoMixer directly.
func ResampleToMono16(src audio.Source, targetRate int, bufferSize int) ([]int16, int, error) {
	mono := audio.NewMonoMixer(audio.NewResampler(src, targetRate))

	// Start with room for about two seconds and grow from there.
	pcm16 := make([]int16, 0, targetRate*2)
	buf := make([]float32, max(bufferSize, 1))

	for {
		n, err := mono.ReadSamples(buf)
		for _, v := range buf[:n] {
			pcm16 = append(pcm16, utils.Float32ToInt16(v))
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, targetRate, fmt.Errorf("resampling: %w", err)
		}
	}

	return pcm16, targetRate, nil
}
