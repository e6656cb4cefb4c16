// SPDX-License-Identifier: EPL-2.0

// Package audwave turns audio files into waveform images and peak data.
//
// The file level operations live here; the building blocks are in the
// subpackages:
//   - audio: the Source contract, Registry, Buffer, MonoMixer and Resampler
//   - formats/...: decoders for WAV, MP3, Ogg Vorbis, AIFF and FLAC
//   - waveform: the rendering engine (reduce, aggregate, plan, rasterize)
//   - peaks: audiowaveform compatible JSON peak data
//
// # Quick Start
//
//	out, err := audwave.Generate("song.mp3", audwave.Options{
//	    Config: waveform.Config{Method: waveform.RMS, AutoWidth: 10},
//	})
//	// out == "song.png"
//
//	data, err := audwave.GenerateData(ctx, "song.mp3", audwave.DataOptions{})
//	// data == "song.json"
//
// # Wrong or Unsupported Extensions
//
// Decoders are chosen by file extension. When an upload carries the wrong
// one, SetExtension renames the file for the duration of the call and
// renames it back afterwards. ConvertTo "wav" instead transcodes the file
// into a temporary tmp_<name>_<uuid>.wav next to it, which is removed
// once the output is written.
//
// # Errors
//
// Unusable input is reported as *waveform.InvalidAudioError and bad
// options as *waveform.InvalidConfigError; use errors.As to tell them
// apart. Failures of the external audiowaveform tool are
// *peaks.ExternalToolError.
package audwave
