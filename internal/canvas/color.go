package canvas

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// PaletteColor associates a palette entry with a display name.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var palette = []PaletteColor{
	{"White", color.RGBA{255, 255, 255, 255}},
	{"Red", color.RGBA{238, 51, 51, 255}},
	{"Pink", color.RGBA{230, 73, 128, 255}},
	{"Grape", color.RGBA{190, 75, 219, 255}},
	{"Violet", color.RGBA{137, 61, 232, 255}},
	{"Indigo", color.RGBA{76, 110, 245, 255}},
	{"Cyan", color.RGBA{34, 139, 230, 255}},
	{"Teal", color.RGBA{21, 170, 191, 255}},
	{"Green", color.RGBA{18, 184, 134, 255}},
	{"Lime", color.RGBA{64, 192, 87, 255}},
	{"Yellow", color.RGBA{250, 176, 5, 255}},
	{"Orange", color.RGBA{253, 126, 20, 255}},
}

// Palette returns a copy of the toolbar colours in display order.
func Palette() []PaletteColor {
	out := make([]PaletteColor, len(palette))
	copy(out, palette)
	return out
}

// ParseColor accepts a palette name, an SVG colour name or a #rrggbb /
// #rrggbbaa hex value.
func ParseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	for _, entry := range palette {
		if strings.EqualFold(entry.Name, spec) {
			return entry.Color, nil
		}
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if !strings.HasPrefix(spec, "#") || (len(spec) != 7 && len(spec) != 9) {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	val, err := strconv.ParseUint(spec[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(spec) == 7 {
		return color.RGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}, nil
	}
	return color.RGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
