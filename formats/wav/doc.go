// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding is done through github.com/go-audio/wav and accepts integer
// PCM at 8, 16, 24 and 32 bits, including WAVE_FORMAT_EXTENSIBLE files
// that carry PCM. Compressed and IEEE float files are rejected with
// ErrUnsupportedEncoding.
//
//	f, _ := os.Open("audio.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//	buf, err := audio.ReadAll(src)
//
// Samples are normalized to [-1, 1). Unsigned 8-bit data is recentred
// around zero before scaling.
//
// # Writing WAV Files
//
// WriteWAV16 writes interleaved int16 PCM with a canonical 44 byte
// header. WriteBuffer does the same for a planar audio.Buffer:
//
//	out, _ := os.Create("output.wav")
//	err := wav.WriteBuffer(out, buf)
//
// Both write the header first and never seek, so any io.Writer works.
package wav
