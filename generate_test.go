// SPDX-License-Identifier: EPL-2.0

package audwave

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/formats/wav"
	"github.com/ik5/audwave/internal/audiotest"
	"github.com/ik5/audwave/peaks"
	"github.com/ik5/audwave/waveform"
)

// writeWAV stores a 16-bit WAV of a sine tone at path.
func writeWAV(t *testing.T, path string, rate, channels, frames int) {
	t.Helper()

	src := audiotest.NewSineSource(rate, channels, frames, 440)
	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	var out bytes.Buffer
	if err := wav.WriteBuffer(&out, buf); err != nil {
		t.Fatalf("WriteBuffer() error = %v", err)
	}
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func decodePNGSize(t *testing.T, path string) (int, int) {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding %s: %v", path, err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestGenerate_DefaultOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "song.wav")
	writeWAV(t, source, 8000, 2, 8000)

	out, err := Generate(source, Options{Config: waveform.DefaultConfig()})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if want := filepath.Join(dir, "song.png"); out != want {
		t.Errorf("Generate() = %q, want %q", out, want)
	}
	if w, h := decodePNGSize(t, out); w != 1800 || h != 280 {
		t.Errorf("image is %dx%d, want 1800x280", w, h)
	}
}

func TestGenerate_FilenameAndAutoWidth(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "song.wav")
	writeWAV(t, source, 8000, 1, 16000)
	target := filepath.Join(dir, "custom.png")

	out, err := Generate(source, Options{
		Config:  waveform.Config{AutoWidth: 10, Height: 40, Method: waveform.RMS},
		Staging: Staging{Filename: target},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if out != target {
		t.Errorf("Generate() = %q, want %q", out, target)
	}
	if w, h := decodePNGSize(t, out); w != 20 || h != 40 {
		t.Errorf("image is %dx%d, want 20x40", w, h)
	}
}

func TestGenerate_UnknownExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(source, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Generate(source, Options{})

	var audioErr *waveform.InvalidAudioError
	if !errors.As(err, &audioErr) {
		t.Fatalf("Generate() error = %v, want InvalidAudioError", err)
	}
	if !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Errorf("Generate() error = %v, want ErrUnsupportedFormat", err)
	}
	if !strings.Contains(err.Error(), "no handler for given file type `txt'") {
		t.Errorf("error message = %q", err.Error())
	}
	if names := dirNames(t, dir); len(names) != 1 {
		t.Errorf("directory holds %v, want only the source", names)
	}
}

func TestGenerate_MissingSource(t *testing.T) {
	t.Parallel()

	_, err := Generate(filepath.Join(t.TempDir(), "gone.wav"), Options{})

	var audioErr *waveform.InvalidAudioError
	if !errors.As(err, &audioErr) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Generate() error = %v, want InvalidAudioError wrapping ErrNotExist", err)
	}

	if _, err := Generate("", Options{}); !errors.Is(err, ErrNoSource) {
		t.Errorf("Generate(\"\") error = %v, want ErrNoSource", err)
	}
}

func TestGenerate_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "song.wav")
	writeWAV(t, source, 8000, 1, 800)

	_, err := Generate(source, Options{Config: waveform.Config{Color: "#12345z"}})

	var cfgErr *waveform.InvalidConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Generate() error = %v, want InvalidConfigError", err)
	}
	if names := dirNames(t, dir); len(names) != 1 {
		t.Errorf("directory holds %v, want only the source", names)
	}
}

func TestGenerate_SetExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "upload.bin")
	writeWAV(t, source, 8000, 1, 800)

	var log bytes.Buffer
	out, err := Generate(source, Options{
		Staging: Staging{SetExtension: "wav", Logger: &log},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if want := filepath.Join(dir, "upload.png"); out != want {
		t.Errorf("Generate() = %q, want %q", out, want)
	}
	if _, err := os.Stat(source); err != nil {
		t.Errorf("source not restored: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "upload.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("renamed copy left behind: %v", err)
	}
	if !strings.Contains(log.String(), "Renaming file at") {
		t.Errorf("log = %q, want rename notice", log.String())
	}
}

func TestGenerate_ConvertTo(t *testing.T) {
	t.Parallel()

	// The "raw" decoder only exists in this registry, so the conversion
	// output is the one thing the default registry can read.
	reg := DefaultRegistry()
	reg.Register("raw", wav.Decoder{})

	dir := t.TempDir()
	source := filepath.Join(dir, "take.raw")
	writeWAV(t, source, 8000, 2, 4000)

	var log bytes.Buffer
	out, err := Generate(source, Options{
		Config:  waveform.Config{Width: 50, Height: 20},
		Staging: Staging{ConvertTo: "wav", Registry: reg, Logger: &log},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if want := filepath.Join(dir, "take.png"); out != want {
		t.Errorf("Generate() = %q, want %q", out, want)
	}
	names := dirNames(t, dir)
	if len(names) != 2 {
		t.Errorf("directory holds %v, want source and image only", names)
	}
	if !strings.Contains(log.String(), "Removing temporary file at") ||
		!strings.Contains(log.String(), "tmp_take_") {
		t.Errorf("log = %q, want removal of the temporary file", log.String())
	}
}

func TestGenerate_ConvertToUnsupported(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "song.wav")
	writeWAV(t, source, 8000, 1, 800)

	_, err := Generate(source, Options{Staging: Staging{ConvertTo: "mp3"}})

	var cfgErr *waveform.InvalidConfigError
	if !errors.As(err, &cfgErr) || !errors.Is(err, ErrUnsupportedConversion) {
		t.Errorf("Generate() error = %v, want InvalidConfigError wrapping ErrUnsupportedConversion", err)
	}
}

func TestGenerate_Logger(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "song.wav")
	writeWAV(t, source, 8000, 1, 800)

	var log bytes.Buffer
	if _, err := Generate(source, Options{Staging: Staging{Logger: &log}}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for _, want := range []string{"Loading audio...", "Rendering waveform...", "Generated waveform '"} {
		if !strings.Contains(log.String(), want) {
			t.Errorf("log = %q, want %q", log.String(), want)
		}
	}
}

func TestGenerateData_Native(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "song.wav")
	writeWAV(t, source, 8000, 1, 16000)

	out, err := GenerateData(context.Background(), source, DataOptions{})
	if err != nil {
		t.Fatalf("GenerateData() error = %v", err)
	}
	if want := filepath.Join(dir, "song.json"); out != want {
		t.Errorf("GenerateData() = %q, want %q", out, want)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	d, err := peaks.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if d.SamplesPerPixel != 800 || d.Length != 20 || d.Bits != 16 {
		t.Errorf("header = %+v, want 800 samples per pixel, 20 pixels, 16 bits", d)
	}
}

func TestGenerateData_Canceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "song.wav")
	writeWAV(t, source, 8000, 1, 800)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := GenerateData(ctx, source, DataOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("GenerateData() error = %v, want context.Canceled", err)
	}
}

func TestGenerateData_Tool(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	dir := t.TempDir()
	source := filepath.Join(dir, "song.wav")
	writeWAV(t, source, 8000, 1, 800)

	script := filepath.Join(t.TempDir(), "audiowaveform")
	body := "#!/bin/sh\necho 'Recoverable: odd header' >&2\nprintf 'tool output' > \"$8\"\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	out, err := GenerateData(context.Background(), source, DataOptions{
		Staging: Staging{Logger: &log},
		Tool:    &peaks.Tool{Command: script},
	})
	if err != nil {
		t.Fatalf("GenerateData() error = %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil || string(got) != "tool output" {
		t.Errorf("output = %q, %v", got, err)
	}
	if !strings.Contains(log.String(), "Recoverable: odd header") {
		t.Errorf("log = %q, want the recoverable warning", log.String())
	}
}
