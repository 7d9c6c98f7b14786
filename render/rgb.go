package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit color as written to terminal cells
type RGB struct {
	R, G, B uint8
}

// RGBA is a palette color with its own alpha, as used by canvas fill styles
type RGBA struct {
	RGB
	A float64
}

// channel rounds and clamps a float channel into 0-255
func channel(v float64) uint8 {
	switch {
	case v >= 255:
		return 255
	case v <= 0:
		return 0
	}
	return uint8(v + 0.5)
}

// each applies fn per channel
func each(a, b RGB, fn func(x, y float64) float64) RGB {
	return RGB{
		R: channel(fn(float64(a.R), float64(b.R))),
		G: channel(fn(float64(a.G), float64(b.G))),
		B: channel(fn(float64(a.B), float64(b.B))),
	}
}

// Blend paints src over dst with coverage alpha
func Blend(dst, src RGB, alpha float64) RGB {
	switch {
	case alpha >= 1:
		return src
	case alpha <= 0:
		return dst
	}
	return each(dst, src, func(d, s float64) float64 { return d + (s-d)*alpha })
}

// Add brightens dst by src, saturating at white, then blends the result in by alpha
func Add(dst, src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	return Blend(dst, each(dst, src, func(d, s float64) float64 { return d + s }), alpha)
}

// Scale multiplies every channel by factor, saturating at 255
func Scale(c RGB, factor float64) RGB {
	return each(c, c, func(v, _ float64) float64 { return v * factor })
}

// Mix interpolates in CIE L*a*b*
// t=0 returns a, t=1 returns b
func Mix(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	mixed := a.colorful().BlendLab(b.colorful(), t).Clamped()
	r, g, bl := mixed.RGB255()
	return RGB{R: r, G: g, B: bl}
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
