// SPDX-License-Identifier: EPL-2.0

// Package peaks produces waveform peak data in the JSON layout of the BBC
// audiowaveform tool (format version 2).
//
// Compute derives the data natively from a decoded audio.Buffer. Tool
// shells out to audiowaveform for callers that want its exact output:
//
//	err := peaks.Tool{}.Run(ctx, "song.mp3", "song.json", peaks.DefaultOptions())
//
// Both honour the same Options: SamplesPerPixel is SampleRate divided by
// PixelsPerSecond, and each pixel stores its minimum then maximum sample
// scaled to an 8 or 16 bit signed range.
package peaks
