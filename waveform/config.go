// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"fmt"
	"image/color"
	"strings"
)

// Method selects how a window of samples is reduced to one magnitude.
type Method string

const (
	Peak Method = "peak"
	RMS  Method = "rms"
)

// ParseMethod accepts "peak" and "rms" in any case. The empty string is Peak.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case "", Peak:
		return Peak, nil
	case RMS:
		return RMS, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedMethod, s)
	}
}

// Defaults used when a Config leaves a field unset. They are part of the
// public contract: changing one changes rendered output.
const (
	DefaultMethod          = Peak
	DefaultWidth           = 1800
	DefaultHeight          = 280
	DefaultSampleWidth     = 1
	DefaultGapWidth        = 1
	DefaultColor           = "#00ccff"
	DefaultBackgroundColor = "#666666"
)

// Config describes how a waveform image is laid out and colored.
//
// Width, Height and AutoWidth are optional: zero means "not given". An
// explicit Width wins over AutoWidth; without either, DefaultWidth is used.
// SampleWidth zero means DefaultSampleWidth. GapWidth zero means the bars
// touch. Colors accept "#rgb", "#rrggbb" (the "#" is optional) or
// Transparent; an empty color selects the default.
type Config struct {
	Method          Method  `yaml:"method"`
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	AutoWidth       float64 `yaml:"auto_width"`
	SampleWidth     int     `yaml:"sample_width"`
	GapWidth        int     `yaml:"gap_width"`
	Color           string  `yaml:"color"`
	BackgroundColor string  `yaml:"background_color"`
}

// DefaultConfig returns a Config with every default spelled out.
func DefaultConfig() Config {
	return Config{
		Method:          DefaultMethod,
		Height:          DefaultHeight,
		SampleWidth:     DefaultSampleWidth,
		GapWidth:        DefaultGapWidth,
		Color:           DefaultColor,
		BackgroundColor: DefaultBackgroundColor,
	}
}

// settings is a validated Config with defaults applied and colors parsed.
type settings struct {
	method      Method
	width       int
	height      int
	autoWidth   float64
	sampleWidth int
	gapWidth    int
	fg          color.NRGBA
	bg          color.NRGBA
}

func (c Config) resolve() (settings, error) {
	var s settings

	method, err := ParseMethod(string(c.Method))
	if err != nil {
		return s, configErr("method", err)
	}
	s.method = method

	switch {
	case c.Width < 0:
		return s, configErr("width", fmt.Errorf("%w: %d", ErrNonPositiveSize, c.Width))
	case c.Height < 0:
		return s, configErr("height", fmt.Errorf("%w: %d", ErrNonPositiveSize, c.Height))
	case c.AutoWidth < 0:
		return s, configErr("auto_width", fmt.Errorf("%w: %g", ErrNonPositiveSize, c.AutoWidth))
	case c.SampleWidth < 0:
		return s, configErr("sample_width", fmt.Errorf("%w: sample width %d < 1", ErrInvalidSpacing, c.SampleWidth))
	case c.GapWidth < 0:
		return s, configErr("gap_width", fmt.Errorf("%w: gap width %d < 0", ErrInvalidSpacing, c.GapWidth))
	}

	s.width = c.Width
	s.height = c.Height
	if s.height == 0 {
		s.height = DefaultHeight
	}
	s.autoWidth = c.AutoWidth
	s.sampleWidth = c.SampleWidth
	if s.sampleWidth == 0 {
		s.sampleWidth = DefaultSampleWidth
	}
	s.gapWidth = c.GapWidth

	fg, bg := c.Color, c.BackgroundColor
	if fg == "" {
		fg = DefaultColor
	}
	if bg == "" {
		bg = DefaultBackgroundColor
	}
	if s.fg, err = ParseColor(fg); err != nil {
		return s, configErr("color", err)
	}
	if s.bg, err = ParseColor(bg); err != nil {
		return s, configErr("background_color", err)
	}

	return s, nil
}

// Validate reports whether c can be rendered, without touching any audio.
// Sizes that depend on the audio duration are checked by Plan.
func (c Config) Validate() error {
	_, err := c.resolve()
	return err
}
