package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGBA color with channel fractions in [0, 1].
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// ErrColorPrefix is returned by ParseColor for strings that do not start
// with '#'.
var ErrColorPrefix = errors.New("does not start with '#'")

// ColorParseError wraps the failure to parse a hex channel pair.
type ColorParseError struct {
	Err error
}

func (e *ColorParseError) Error() string {
	return fmt.Sprintf("invalid hex color: %v", e.Err)
}

func (e *ColorParseError) Unwrap() error {
	return e.Err
}

// ParseColor converts a '#RRGGBB' line color into channel fractions
// (byte/255 per channel) with full opacity. A missing '#' prefix and an
// unparseable hex digit fail with distinct errors.
func ParseColor(s string) (Color, error) {
	if !strings.HasPrefix(s, "#") {
		return Color{}, ErrColorPrefix
	}
	if len(s) != 7 {
		return Color{}, &ColorParseError{Err: fmt.Errorf("want 7 characters, have %d", len(s))}
	}
	var channels [3]uint8
	for i := range channels {
		v, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return Color{}, &ColorParseError{Err: err}
		}
		channels[i] = uint8(v)
	}
	return Color{
		R: float64(channels[0]) / 255.0,
		G: float64(channels[1]) / 255.0,
		B: float64(channels[2]) / 255.0,
		A: 1.0,
	}, nil
}

// Hex returns the '#rrggbb' form of the color, dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(c.R*255.0+0.5),
		uint8(c.G*255.0+0.5),
		uint8(c.B*255.0+0.5))
}
