// SPDX-License-Identifier: EPL-2.0

// Package flac decodes native FLAC files with github.com/mewkiz/flac.
//
// Frames are parsed one at a time and handed out across ReadSamples
// calls, so memory use is bounded by the largest block in the stream.
// Samples of any bit depth up to 32 are normalized to [-1, 1).
package flac
