package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/qrtile/pkg/errors"
)

// Default module colors.
var (
	DefaultForeground = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff} // #000000
	DefaultBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff} // #ffffff
)

// DefaultColors returns black modules on a white background.
func DefaultColors() Colors {
	return Colors{Foreground: DefaultForeground, Background: DefaultBackground}
}

// ParseColor parses "#rgb" or "#rrggbb" (the leading '#' is optional) into
// an opaque color. Malformed input is an INVALID_COLOR error.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "color cannot be empty")
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 || strings.Trim(s[1:], "0123456789abcdefABCDEF") != "" {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q (want #rgb or #rrggbb)", s)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q (want #rgb or #rrggbb)", s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Hex formats c as "#rrggbb". Alpha is ignored.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
