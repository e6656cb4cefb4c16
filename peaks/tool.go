// SPDX-License-Identifier: EPL-2.0

package peaks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultCommand is the audiowaveform binary looked up in PATH.
const DefaultCommand = "audiowaveform"

// Tool runs the external audiowaveform program.
type Tool struct {
	// Command overrides DefaultCommand.
	Command string
	// Warnings receives stderr output the tool marks as recoverable.
	// Nil discards it.
	Warnings io.Writer
}

func (t Tool) command() string {
	if t.Command == "" {
		return DefaultCommand
	}
	return t.Command
}

// Args returns the argument list passed to the tool.
func Args(src, dst string, opts Options) []string {
	opts = opts.withDefaults()
	return []string{
		"-i", src,
		"--pixels-per-second", strconv.Itoa(opts.PixelsPerSecond),
		"-b", strconv.Itoa(opts.Bits),
		"-o", dst,
	}
}

// Run converts src into the peak file dst. Any stderr output is an error
// unless it contains "Recoverable", in which case it goes to Warnings.
func (t Tool) Run(ctx context.Context, src, dst string, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, t.command(), Args(src, dst, opts)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	msg := strings.TrimSpace(stderr.String())

	switch {
	case msg == "":
	case strings.Contains(msg, "Recoverable"):
		if t.Warnings != nil {
			fmt.Fprintln(t.Warnings, msg)
		}
	case strings.Contains(msg, "FAIL formats:"):
		return &ExternalToolError{
			Command: t.command(),
			Stderr:  msg,
			Err:     fmt.Errorf("%w: %s", ErrNotConvertible, src),
		}
	default:
		return &ExternalToolError{Command: t.command(), Stderr: msg, Err: ErrToolFailed}
	}

	if runErr != nil {
		return &ExternalToolError{Command: t.command(), Stderr: msg, Err: runErr}
	}
	return nil
}
