// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
// The library already produces float32 samples, so the source only
// clamps them to [-1, 1] and keeps reads frame aligned.
//
//	f, _ := os.Open("audio.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
package vorbis
