// SPDX-License-Identifier: EPL-2.0

package audwave

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/internal/benchlog"
	"github.com/ik5/audwave/internal/staging"
	"github.com/ik5/audwave/peaks"
	"github.com/ik5/audwave/waveform"
)

// Generate renders the waveform of source into a PNG file and returns its
// path. The image is written to a temporary file and renamed into place,
// so a failed call never leaves a partial image.
func Generate(source string, opts Options) (out string, err error) {
	if err := opts.Config.Validate(); err != nil {
		return "", err
	}

	out, path, cleanup, log, err := opts.Staging.begin(source, "png")
	if err != nil {
		return "", err
	}
	defer func() { err = errors.Join(err, cleanup()) }()

	var buf *audio.Buffer
	err = log.Timed("Loading audio...", func() error {
		var err error
		buf, err = DecodeFile(path, opts.Registry)
		return err
	})
	if err != nil {
		return "", err
	}

	var res *waveform.Result
	err = log.Timed("Rendering waveform...", func() error {
		var err error
		res, err = waveform.Render(buf, opts.Config)
		return err
	})
	if err != nil {
		return "", err
	}

	if err := staging.WriteFile(out, res.Encode); err != nil {
		return "", err
	}

	log.Done(fmt.Sprintf("Generated waveform '%s'", out))
	return out, nil
}

// GenerateData writes audiowaveform JSON peak data for source and returns
// the output path. ctx bounds the external tool when DataOptions.Tool is
// set and is checked before the native computation otherwise.
func GenerateData(ctx context.Context, source string, opts DataOptions) (out string, err error) {
	if err := opts.Options.Validate(); err != nil {
		return "", err
	}

	out, path, cleanup, log, err := opts.Staging.begin(source, "json")
	if err != nil {
		return "", err
	}
	defer func() { err = errors.Join(err, cleanup()) }()

	if opts.Tool != nil {
		tool := *opts.Tool
		if tool.Warnings == nil {
			tool.Warnings = opts.Logger
		}
		err = log.Timed("Generating...", func() error {
			return tool.Run(ctx, path, out, opts.Options)
		})
		if err != nil {
			return "", err
		}
		log.Done(fmt.Sprintf("Generated waveform data '%s'", out))
		return out, nil
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	var data *peaks.Data
	err = log.Timed("Generating...", func() error {
		buf, err := DecodeFile(path, opts.Registry)
		if err != nil {
			return err
		}
		data, err = peaks.Compute(buf, opts.Options)
		return err
	})
	if err != nil {
		return "", err
	}

	if err := staging.WriteFile(out, data.Encode); err != nil {
		return "", err
	}

	log.Done(fmt.Sprintf("Generated waveform data '%s'", out))
	return out, nil
}

// begin resolves the output name, checks the source exists and applies
// SetExtension or ConvertTo. cleanup undoes the staging and must always
// be called. The log has a running clock for the whole operation.
func (s Staging) begin(source, ext string) (out, path string, cleanup func() error, log *benchlog.Log, err error) {
	if source == "" {
		return "", "", nil, nil, &waveform.InvalidAudioError{Err: ErrNoSource}
	}

	out = s.Filename
	if out == "" {
		out = staging.OutputPath(source, ext)
	}

	if _, err := os.Stat(source); err != nil {
		return "", "", nil, nil, &waveform.InvalidAudioError{
			Err: fmt.Errorf("source audio file '%s' not found: %w", source, err),
		}
	}

	log = benchlog.New(s.Logger)
	log.Start()

	switch {
	case s.ConvertTo != "":
		target := strings.ToLower(strings.TrimPrefix(s.ConvertTo, "."))
		if target != "wav" {
			return "", "", nil, nil, &waveform.InvalidConfigError{
				Field: "convert_to",
				Err:   fmt.Errorf("%w: %q", ErrUnsupportedConversion, s.ConvertTo),
			}
		}
		if staging.Ext(source) == target {
			return out, source, noop, log, nil
		}

		tmp := staging.TempPath(source, target)
		if err := ConvertToWAV(source, tmp, ConvertOptions{Registry: s.Registry}); err != nil {
			return "", "", nil, nil, fmt.Errorf("source file %s could not be converted to .wav: %w", source, err)
		}
		return out, tmp, func() error {
			log.Printf("Removing temporary file at %s", tmp)
			return staging.Remove(tmp)
		}, log, nil

	case s.SetExtension != "":
		path, restore, err := staging.WithExtension(source, s.SetExtension)
		if err != nil {
			return "", "", nil, nil, err
		}
		return out, path, func() error {
			if path != source {
				log.Printf("Renaming file at %s", path)
			}
			return restore()
		}, log, nil
	}

	return out, source, noop, log, nil
}

func noop() error { return nil }
