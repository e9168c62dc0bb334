package colorutil

import (
	"fmt"
	"strings"
)

// ContrastText returns the text color ("#000000" or "#ffffff") that stays
// readable on top of the given background color. Malformed input falls back
// to black text.
func ContrastText(hexColor string) string {
	r, g, b, err := ParseHex(hexColor)
	if err != nil {
		return "#000000"
	}

	if relativeLuminance(r, g, b) > 0.5 {
		return "#000000"
	}
	return "#ffffff"
}

// ParseHex parses "#rgb" or "#rrggbb" (with or without the leading '#') into
// 8-bit channels.
func ParseHex(hexColor string) (uint8, uint8, uint8, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hexColor), "#")

	var r, g, b uint8
	switch len(s) {
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return 0, 0, 0, fmt.Errorf("invalid color %q: %w", hexColor, err)
		}
		// expand shorthand: "f" means "ff"
		r, g, b = r*17, g*17, b*17
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return 0, 0, 0, fmt.Errorf("invalid color %q: %w", hexColor, err)
		}
	default:
		return 0, 0, 0, fmt.Errorf("invalid color %q", hexColor)
	}
	return r, g, b, nil
}

// relativeLuminance is the WCAG-weighted brightness of an sRGB color,
// normalized to [0,1].
func relativeLuminance(r, g, b uint8) float64 {
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
}
