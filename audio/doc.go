// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample source side of the waveform pipeline.
//
// It contains:
//   - Source, the streaming interface every decoder returns
//   - Registry, mapping file types to decoders
//   - Buffer and ReadAll, a fully decoded planar signal
//   - MonoMixer for streaming channel averaging
//   - Resampler for sample rate conversion
//
// # Sources
//
// A Source yields interleaved float32 samples in [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples returns io.EOF once the stream is finished; n may be non-zero
// on the final call.
//
// # Buffers
//
// Rendering needs the whole signal at once, so sources are drained into a
// Buffer:
//
//	src, _ := wav.Decoder{}.Decode(f)
//	buf, err := audio.ReadAll(src)
//	// buf.Channels[c][frame], buf.SampleRate, buf.Seconds()
//
// # Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	dec, err := registry.ForPath("song.WAV")
//
// Lookups are case insensitive and ignore a leading dot. ForPath wraps
// ErrUnsupportedFormat for unknown types.
//
// # Streaming conversion
//
// MonoMixer and Resampler are Sources themselves and can be chained:
//
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 44100))
package audio
