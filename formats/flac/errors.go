// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	// ErrUnsupportedBitDepth indicates a stream declaring more than 32 bits per sample.
	ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")

	// ErrChannelCount indicates a frame whose subframes disagree with the stream header.
	ErrChannelCount = errors.New("FLAC frame channel count mismatch")
)
