// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Transparent is the color value that paints fully transparent pixels.
const Transparent = "transparent"

// ParseColor turns a hex color or Transparent into a non-premultiplied
// color. Hex colors are always opaque; Transparent is the zero NRGBA.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, Transparent) {
		return color.NRGBA{}, nil
	}

	hex := strings.ToLower(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if (len(hex) != 4 && len(hex) != 7) || strings.Trim(hex[1:], "0123456789abcdef") != "" {
		return color.NRGBA{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}
