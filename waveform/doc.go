// SPDX-License-Identifier: EPL-2.0

// Package waveform renders decoded audio into a bar-style waveform image.
//
// Rendering runs in four steps, each exported for direct use:
//
//	samples, _ := waveform.Reduce(buf)                    // channels -> one channel
//	geom, _ := waveform.Plan(cfg, len(samples), buf.SampleRate)
//	series := waveform.Aggregate(samples, geom.Bars, waveform.Peak)
//	img := waveform.Rasterize(geom, series, fg, bg)
//
// Render does all of it and returns a Result tagged with its MIME type:
//
//	res, err := waveform.Render(buf, waveform.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	return res.Encode(w)
//
// # Layout
//
// The image is divided into slots of SampleWidth+GapWidth columns. Each
// slot shows one window of audio as a bar SampleWidth columns wide, drawn
// symmetrically around row Height/2; gap columns are background. Enough
// slots are planned to cover the whole width, and the last one is clipped
// at the right edge instead of being squeezed.
//
// # Transparency
//
// Pixels carry a real alpha channel. A Transparent background gives alpha 0
// everywhere except the bars; a Transparent foreground cuts the bars out of
// an opaque background. No color value is reserved, so any background works
// with a transparent foreground.
//
// # Errors
//
// Bad input yields *InvalidAudioError, misuse of Config yields
// *InvalidConfigError; both unwrap to the sentinel errors in this package.
package waveform
