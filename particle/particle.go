package particle

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/weathermood/render"
)

// Particle is one mutable visual element, owned by a Field
type Particle struct {
	X, Y     float64
	Size     float64
	BaseSize float64
	SpeedX   float64
	SpeedY   float64
	Color    render.RGBA
	Opacity  float64

	// Angle advances by AngleSpeed every frame and drives oscillation
	Angle      float64
	AngleSpeed float64

	// Wobble is the snow sway amplitude; WobbleSpeed its sampled frequency
	Wobble      float64
	WobbleSpeed float64
}

// PointerState is the last known pointer position
type PointerState struct {
	X, Y    float64
	Present bool
	Radius  float64
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// centered returns a sample in [-0.5, 0.5)
func centered(rng *rand.Rand) float64 {
	return rng.Float64() - 0.5
}

// spawn samples a new particle for profile p on a w x h surface
func spawn(rng *rand.Rand, p Profile, w, h float64) Particle {
	size := uniform(rng, p.Size.Min, p.Size.Max)
	speed := uniform(rng, p.Speed.Min, p.Speed.Max)

	pt := Particle{
		X:          rng.Float64() * w,
		Size:       size,
		BaseSize:   size,
		Opacity:    opacityMin + rng.Float64()*opacityRange,
		Angle:      rng.Float64() * 2 * math.Pi,
		AngleSpeed: centered(rng) * 2 * angleSpeedMax,
	}
	if len(p.Colors) > 0 {
		pt.Color = p.Colors[rng.IntN(len(p.Colors))]
	}

	if p.Falling() {
		// Start above the visible area so the first frames show particles arriving
		pt.Y = rng.Float64()*h - h
	} else {
		pt.Y = rng.Float64() * h
	}

	switch {
	case p.Rain:
		pt.SpeedX = centered(rng) * RainLateral
		pt.SpeedY = speed
	case p.Snow:
		pt.SpeedX = centered(rng) * speed
		pt.SpeedY = speed * SnowFallRatio
		pt.Wobble = rng.Float64() * wobbleMax
		pt.WobbleSpeed = wobbleSpeedMin + rng.Float64()*wobbleSpeedRange
	case p.Drift:
		pt.SpeedX = centered(rng) * speed
		pt.SpeedY = centered(rng) * speed
	default:
		pt.SpeedX = centered(rng) * RainLateral
		pt.SpeedY = centered(rng) * speed
	}

	return pt
}

// generate builds exactly p.Count particles
func generate(rng *rand.Rand, p Profile, w, h float64) []Particle {
	out := make([]Particle, p.Count)
	for i := range out {
		out[i] = spawn(rng, p, w, h)
	}
	return out
}
