// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile indicates the input has no valid RIFF/WAVE header.
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrUnsupportedEncoding indicates a compressed or floating point WAV.
	ErrUnsupportedEncoding = errors.New("only integer PCM WAV is supported")

	// ErrUnsupportedBitDepth indicates a PCM depth other than 8, 16, 24 or 32.
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")

	// ErrInvalidChannels is returned by the writers for a channel count below one
	// or a sample slice that does not hold whole frames.
	ErrInvalidChannels = errors.New("invalid channel layout")
)
