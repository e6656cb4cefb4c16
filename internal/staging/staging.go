// SPDX-License-Identifier: EPL-2.0

// Package staging handles the files around a conversion: derived output
// names, temporary renames and transcodes, and atomic writes.
package staging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Ext returns the extension of path without the dot, lower cased.
func Ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// trimExt drops the extension from path, keeping the directory.
func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// OutputPath swaps the extension of source for ext: "dir/song.wav" with
// "png" gives "dir/song.png".
func OutputPath(source, ext string) string {
	return trimExt(source) + "." + ext
}

// TempPath names a unique sibling of source for a transcode:
// "dir/tmp_song_<uuid>.wav".
func TempPath(source, ext string) string {
	base := filepath.Base(trimExt(source))
	name := fmt.Sprintf("tmp_%s_%s.%s", base, uuid.NewString(), ext)
	return filepath.Join(filepath.Dir(source), name)
}

// WithExtension renames source so its extension is ext and returns the new
// path with a function that renames it back. When the extension already
// matches nothing is renamed and restore is a no-op.
func WithExtension(source, ext string) (path string, restore func() error, err error) {
	ext = strings.TrimPrefix(ext, ".")
	if strings.EqualFold(Ext(source), ext) {
		return source, func() error { return nil }, nil
	}

	path = OutputPath(source, ext)
	if _, err := os.Stat(path); err == nil {
		return "", nil, fmt.Errorf("renaming %s: %w", source, os.ErrExist)
	}
	if err := os.Rename(source, path); err != nil {
		return "", nil, fmt.Errorf("renaming %s: %w", source, err)
	}

	restore = func() error {
		if err := os.Rename(path, source); err != nil {
			return fmt.Errorf("restoring %s: %w", source, err)
		}
		return nil
	}
	return path, restore, nil
}

// WriteFile writes the output of fn to a temporary file next to path and
// renames it onto path once fn and the close succeed. On failure path is
// left untouched and the temporary file is removed.
func WriteFile(path string, fn func(w io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file for %s: %w", path, err)
	}
	tmp := f.Name()

	defer func() {
		if err != nil {
			err = errors.Join(err, removeIfExists(tmp))
		}
	}()

	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("moving output to %s: %w", path, err)
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Remove deletes a temporary file. A file that is already gone is not an error.
func Remove(path string) error {
	if err := removeIfExists(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}
