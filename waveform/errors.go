// SPDX-License-Identifier: EPL-2.0

package waveform

import "errors"

var (
	ErrEmptyAudio      = errors.New("audio has no samples")
	ErrChannelMismatch = errors.New("channel lengths differ")

	ErrUnsupportedMethod = errors.New("unsupported aggregation method")
	ErrInvalidColor      = errors.New("invalid color")
	ErrNonPositiveSize   = errors.New("size must be positive")
	ErrInvalidSpacing    = errors.New("invalid bar spacing")
)

// InvalidAudioError reports an unusable audio input: missing or empty
// source, an undecodable file or channels of different lengths.
type InvalidAudioError struct {
	Err error
}

func (e *InvalidAudioError) Error() string { return "invalid audio: " + e.Err.Error() }
func (e *InvalidAudioError) Unwrap() error { return e.Err }

// InvalidConfigError reports caller misuse of Config.
type InvalidConfigError struct {
	Field string
	Err   error
}

func (e *InvalidConfigError) Error() string {
	if e.Field == "" {
		return "invalid config: " + e.Err.Error()
	}
	return "invalid config: " + e.Field + ": " + e.Err.Error()
}

func (e *InvalidConfigError) Unwrap() error { return e.Err }

func audioErr(err error) error { return &InvalidAudioError{Err: err} }

func configErr(field string, err error) error {
	return &InvalidConfigError{Field: field, Err: err}
}
