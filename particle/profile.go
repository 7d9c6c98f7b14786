package particle

import (
	"slices"

	"github.com/lixenwraith/weathermood/render"
	"github.com/lixenwraith/weathermood/weather"
)

// Range is a closed-open sampling interval
type Range struct {
	Min, Max float64
}

// Profile governs one weather kind's particle behavior
type Profile struct {
	Count  int
	Size   Range
	Speed  Range
	Colors []render.RGBA

	// Glow draws a halo in the particle's own color
	Glow bool
	// Drift gives ambient and snow particles a lateral velocity scaled by speed
	Drift bool
	// Rain particles fall as streaks and ignore the pointer
	Rain bool
	// Snow particles fall with a sinusoidal wobble
	Snow bool
}

// Falling reports whether particles recycle from the top instead of wrapping
func (p Profile) Falling() bool {
	return p.Rain || p.Snow
}

// Connected reports whether connection lines are drawn between particles
func (p Profile) Connected() bool {
	return !p.Rain && !p.Snow
}

var profiles = [...]Profile{
	weather.KindSunny: {
		Count: 50,
		Size:  Range{1, 3},
		Speed: Range{0.2, 0.8},
		Colors: []render.RGBA{
			render.MustColor("rgba(245,158,11,0.4)"),
			render.MustColor("rgba(249,115,22,0.3)"),
			render.MustColor("rgba(251,191,36,0.3)"),
		},
		Glow:  true,
		Drift: true,
	},
	weather.KindCloudy: {
		Count: 40,
		Size:  Range{1, 4},
		Speed: Range{0.1, 0.5},
		Colors: []render.RGBA{
			render.MustColor("rgba(96,165,250,0.3)"),
			render.MustColor("rgba(129,140,248,0.2)"),
			render.MustColor("rgba(147,197,253,0.25)"),
		},
		Drift: true,
	},
	weather.KindRainy: {
		Count: 80,
		Size:  Range{1, 2},
		Speed: Range{3, 7},
		Colors: []render.RGBA{
			render.MustColor("rgba(99,102,241,0.3)"),
			render.MustColor("rgba(139,92,246,0.2)"),
		},
		Rain: true,
	},
	weather.KindStormy: {
		Count: 60,
		Size:  Range{1, 3},
		Speed: Range{2, 5},
		Colors: []render.RGBA{
			render.MustColor("rgba(168,85,247,0.3)"),
			render.MustColor("rgba(236,72,153,0.2)"),
		},
		Glow: true,
		Rain: true,
	},
	weather.KindSnowy: {
		Count: 70,
		Size:  Range{2, 5},
		Speed: Range{0.3, 1.2},
		Colors: []render.RGBA{
			render.MustColor("rgba(255,255,255,0.5)"),
			render.MustColor("rgba(56,189,248,0.3)"),
			render.MustColor("rgba(125,211,252,0.3)"),
		},
		Glow:  true,
		Drift: true,
		Snow:  true,
	},
}

// ProfileFor returns the motion profile for k; unknown kinds get the sunny profile
// The returned palette is a copy, the table itself is never mutated
func ProfileFor(k weather.Kind) Profile {
	if !k.Valid() {
		k = weather.KindSunny
	}
	p := profiles[k]
	p.Colors = slices.Clone(p.Colors)
	return p
}
