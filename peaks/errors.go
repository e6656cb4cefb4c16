// SPDX-License-Identifier: EPL-2.0

package peaks

import (
	"errors"
	"strings"
)

var (
	ErrInvalidBits            = errors.New("bits must be 8 or 16")
	ErrInvalidPixelsPerSecond = errors.New("pixels per second must be positive")

	// ErrToolFailed is reported when the external tool wrote an error to stderr.
	ErrToolFailed = errors.New("external tool reported an error")
	// ErrNotConvertible is reported when the tool could not read the input format.
	ErrNotConvertible = errors.New("source could not be converted")
)

// ExternalToolError carries the diagnostics of a failed external tool run.
type ExternalToolError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ExternalToolError) Error() string {
	var b strings.Builder
	b.WriteString(e.Command)
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	if e.Stderr != "" {
		b.WriteString(" (")
		b.WriteString(e.Stderr)
		b.WriteString(")")
	}
	return b.String()
}

func (e *ExternalToolError) Unwrap() error { return e.Err }
