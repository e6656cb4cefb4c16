// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrUnsupportedFormat is returned when no decoder handles a file type.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrNoChannels is returned for sources reporting zero channels.
	ErrNoChannels = errors.New("source has no channels")
)
