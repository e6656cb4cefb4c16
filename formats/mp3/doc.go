// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3. The library always
// emits interleaved 16-bit stereo, so every source reports two channels
// even for mono files; the waveform reducer averages them back.
//
//	f, _ := os.Open("audio.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//	buf, err := audio.ReadAll(src)
package mp3
