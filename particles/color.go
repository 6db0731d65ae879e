package particles

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a packed RGBA color in 0xRRGGBBAA byte order.
type Color uint32

// Common colors.
const (
	White       Color = 0xFFFFFFFF
	Black       Color = 0x000000FF
	Transparent Color = 0x00000000
)

// RGBA packs four 8-bit channels into a Color.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// Components splits the color into its channels.
func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Normalized returns the channels scaled to [0, 1], e.g. for a clear color.
func (c Color) Normalized() (r, g, b, a float32) {
	cr, cg, cb, ca := c.Components()
	return float32(cr) / 255, float32(cg) / 255, float32(cb) / 255, float32(ca) / 255
}

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	return c&^0xFF | Color(a)
}

// String formats the color as #RRGGBBAA.
func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// ParseColor parses "#RRGGBBAA", "0xRRGGBBAA" or "#RRGGBB" (opaque).
func ParseColor(s string) (Color, error) {
	hex := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(hex, "#"):
		hex = hex[1:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	if len(hex) != 6 && len(hex) != 8 {
		return 0, fmt.Errorf("color %q: want 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return Color(v), nil
}
