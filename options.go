// SPDX-License-Identifier: EPL-2.0

package audwave

import (
	"io"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/peaks"
	"github.com/ik5/audwave/waveform"
)

// Staging is the source and output handling shared by Generate and
// GenerateData.
type Staging struct {
	// Filename of the output. Empty means the source path with its
	// extension replaced.
	Filename string
	// SetExtension renames the source to this extension while it is read.
	SetExtension string
	// ConvertTo transcodes the source into a temporary file of this type
	// first. Only "wav" is supported. It takes precedence over SetExtension.
	ConvertTo string
	// Logger receives progress and timing lines. Nil is silent.
	Logger io.Writer
	// Registry picks decoders; nil means DefaultRegistry.
	Registry *audio.Registry
}

// Options for Generate.
type Options struct {
	waveform.Config
	Staging
}

// DataOptions for GenerateData.
type DataOptions struct {
	peaks.Options
	Staging
	// Tool, when set, produces the file with the external audiowaveform
	// program instead of the native peak computation.
	Tool *peaks.Tool
}
