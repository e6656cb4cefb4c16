// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"sort"
	"sync"
	"testing"

	"github.com/ik5/audwave/internal/audiotest"
)

type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 2, 100), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wav := &mockDecoder{name: "wav"}
	mp3 := &mockDecoder{name: "mp3"}
	registry.Register("wav", wav)
	registry.Register(".MP3", mp3)

	tests := []struct {
		format string
		want   Decoder
		wantOK bool
	}{
		{"wav", wav, true},
		{"WAV", wav, true},
		{"mp3", mp3, true},
		{".mp3", mp3, true},
		{"flac", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, ok := registry.Get(tt.format)
			if ok != tt.wantOK {
				t.Fatalf("Get(%q) ok = %v, want %v", tt.format, ok, tt.wantOK)
			}
			if tt.wantOK && got != tt.want {
				t.Errorf("Get(%q) returned the wrong decoder", tt.format)
			}
		})
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("ogg", &mockDecoder{})
	registry.Register("aiff", &mockDecoder{})

	got := registry.Formats()
	sort.Strings(got)
	if len(got) != 2 || got[0] != "aiff" || got[1] != "ogg" {
		t.Errorf("Formats() = %v, want [aiff ogg]", got)
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{})

	if _, err := registry.ForPath("/tmp/Kickstart My Heart.WAV"); err != nil {
		t.Errorf("ForPath(.WAV) error = %v", err)
	}

	_, err := registry.ForPath("fixtures/sample.txt")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("ForPath(.txt) error = %v, want ErrUnsupportedFormat", err)
	}
	if want := "unsupported audio format: no handler for given file type `txt'"; err.Error() != want {
		t.Errorf("ForPath(.txt) error = %q, want %q", err.Error(), want)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			registry.Register("format", decoder)
		}()
		go func() {
			defer wg.Done()
			registry.Get("format")
		}()
	}
	wg.Wait()

	if _, ok := registry.Get("format"); !ok {
		t.Error("decoder missing after concurrent registration")
	}
}

func TestFileType(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"a.wav":           "wav",
		"dir/b.Mp3":       "mp3",
		"noext":           "",
		"tmp/x.tar.FLAC":  "flac",
		"/abs/path/c.ogg": "ogg",
	}
	for in, want := range tests {
		if got := FileType(in); got != want {
			t.Errorf("FileType(%q) = %q, want %q", in, got, want)
		}
	}
}
