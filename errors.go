// SPDX-License-Identifier: EPL-2.0

package audwave

import "errors"

var (
	ErrNoSource = errors.New("no source audio filename given")

	// ErrUnsupportedConversion is returned for a ConvertTo other than "wav".
	ErrUnsupportedConversion = errors.New("only conversion to wav is supported")
)
