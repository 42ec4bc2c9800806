package ui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2/theme"
	"github.com/tartampluch/go-hijri-date/internal/config"
)

// ParseHexColor parses "#rrggbb" or "#rrggbbaa". The empty string means
// "use the theme foreground" and yields the zero color with no error.
func ParseHexColor(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("%s: %q", config.ErrColorParse, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%s: %q: %w", config.ErrColorParse, s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// FormatHexColor renders c as "#rrggbb", or "#rrggbbaa" when not opaque.
func FormatHexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// textColor resolves a stored color, defaulting to the theme foreground.
func textColor(s string) color.Color {
	if c, err := ParseHexColor(s); err == nil && s != "" {
		return c
	}
	return theme.Color(theme.ColorNameForeground)
}
