package loadout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is a color with 8-bit channels, as carried on the wire.
type RGB struct {
	R, G, B uint8
}

// RGBFromFloat converts normalized 0-1 channels to 8-bit channels, rounding
// to the nearest value. Out-of-range input is clamped.
func RGBFromFloat(r, g, b float64) RGB {
	return RGB{R: floatChannel(r), G: floatChannel(g), B: floatChannel(b)}
}

// Float returns the channels normalized to 0-1.
func (c RGB) Float() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// ParseHexRGB parses "#rrggbb" or "rrggbb".
func ParseHexRGB(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func floatChannel(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(math.Round(v * 255))
}
