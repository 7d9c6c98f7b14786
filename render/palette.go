package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor accepts "#rrggbb", "#rrggbb@alpha" or CSS-style "rgba(r,g,b,a)" / "rgb(r,g,b)"
func ParseColor(s string) (RGBA, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		hex, alpha := s, 1.0
		if i := strings.IndexByte(s, '@'); i >= 0 {
			a, err := strconv.ParseFloat(s[i+1:], 64)
			if err != nil {
				return RGBA{}, fmt.Errorf("color %q: alpha: %w", s, err)
			}
			hex, alpha = s[:i], a
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return RGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return RGBA{RGB: RGB{r, g, b}, A: clampAlpha(alpha)}, nil

	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		open := strings.IndexByte(s, '(')
		if !strings.HasSuffix(s, ")") {
			return RGBA{}, fmt.Errorf("color %q: missing ')'", s)
		}
		parts := strings.Split(s[open+1:len(s)-1], ",")
		if len(parts) != 3 && len(parts) != 4 {
			return RGBA{}, fmt.Errorf("color %q: expected 3 or 4 components", s)
		}

		var ch [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil || v < 0 || v > 255 {
				return RGBA{}, fmt.Errorf("color %q: channel %d out of range", s, i)
			}
			ch[i] = uint8(v)
		}

		alpha := 1.0
		if len(parts) == 4 {
			a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
			if err != nil {
				return RGBA{}, fmt.Errorf("color %q: alpha: %w", s, err)
			}
			alpha = a
		}
		return RGBA{RGB: RGB{ch[0], ch[1], ch[2]}, A: clampAlpha(alpha)}, nil
	}

	return RGBA{}, fmt.Errorf("color %q: unsupported format", s)
}

// MustColor is ParseColor for static tables, panicking on malformed input
func MustColor(s string) RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func clampAlpha(a float64) float64 {
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}
