package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

// HissGenerator streams low-pass filtered white noise with a slow swell
// Smoothing in (0,1]: lower is darker
type HissGenerator struct {
	sr        beep.SampleRate
	rng       *rand.Rand
	smoothing float64
	swell     float64
	pos       int
	last      float64
}

// NewHissGenerator creates an endless filtered noise bed
func NewHissGenerator(sr beep.SampleRate, rng *rand.Rand, smoothing, swell float64) *HissGenerator {
	return &HissGenerator{sr: sr, rng: rng, smoothing: smoothing, swell: swell}
}

func (g *HissGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		noise := g.rng.Float64()*2 - 1
		g.last += (noise - g.last) * g.smoothing

		amp := 1 - g.swell*(0.5+0.5*math.Sin(2*math.Pi*0.1*t))
		sample := g.last * amp

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *HissGenerator) Err() error {
	return nil
}

// HumGenerator generates a sweeping low drone
type HumGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
	low     float64
	span    float64
}

// NewHumGenerator sweeps from low to low+span Hz and back over period
func NewHumGenerator(sr beep.SampleRate, low, span float64, period time.Duration) *HumGenerator {
	return &HumGenerator{
		sr:      sr,
		samples: max(sr.N(period), 1),
		low:     low,
		span:    span,
	}
}

func (g *HumGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		cyclePos := float64(g.pos%g.samples) / float64(g.samples)
		freq := g.low + g.span*math.Sin(cyclePos*math.Pi)

		amplitude := 0.5 + 0.5*math.Sin(cyclePos*math.Pi*2)
		sample := amplitude * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *HumGenerator) Err() error {
	return nil
}

// CrackGenerator is a decaying noise burst over a low rumble, the body of a thunder clap
type CrackGenerator struct {
	sr   beep.SampleRate
	rng  *rand.Rand
	pos  int
	last float64
}

// NewCrackGenerator creates a thunder clap generator; bound it with beep.Take
func NewCrackGenerator(sr beep.SampleRate, rng *rand.Rand) *CrackGenerator {
	return &CrackGenerator{sr: sr, rng: rng}
}

func (g *CrackGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Quick attack, slower decay
		env := math.Exp(-t * 3)
		if t < 0.02 {
			env *= t / 0.02
		}

		noise := g.rng.Float64()*2 - 1
		g.last += (noise - g.last) * 0.2
		rumble := 0.4 * math.Sin(2*math.Pi*45*t)

		sample := env * (0.6*g.last + rumble)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *CrackGenerator) Err() error {
	return nil
}
