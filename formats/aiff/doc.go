// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff. Uncompressed big-endian
// PCM of 8, 16, 24 and 32 bits is supported with any channel count and
// sample rate.
//
//	f, _ := os.Open("audio.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//	buf, err := audio.ReadAll(src)
//
// Readers that cannot seek are buffered in memory first, since go-audio
// walks the chunk list with Seek.
package aiff
