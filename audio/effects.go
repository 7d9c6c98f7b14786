package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects an oscillator waveform
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// waveform maps a phase in [0,1) to a sample in [-1,1]
type waveform func(phase float64) float64

var waveforms = map[WaveType]waveform{
	WaveSine: func(ph float64) float64 { return math.Sin(2 * math.Pi * ph) },
	WaveSquare: func(ph float64) float64 {
		if ph < 0.5 {
			return 1
		}
		return -1
	},
	WaveSaw: func(ph float64) float64 { return 2*ph - 1 },
}

// oscillator plays a periodic or noise wave for a fixed number of samples
type oscillator struct {
	shape     waveform
	step      float64 // phase increment per sample
	phase     float64
	remaining int
}

// NewOscillator creates a finite oscillator; rng feeds WaveNoise and may be nil otherwise
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	shape, ok := waveforms[wave]
	if wave == WaveNoise || !ok {
		if rng == nil {
			rng = rand.New(rand.NewPCG(uint64(freq), 0x9e3779b97f4a7c15))
		}
		shape = func(float64) float64 { return rng.Float64()*2 - 1 }
	}
	return &oscillator{
		shape:     shape,
		step:      freq / float64(rate),
		remaining: rate.N(duration),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.remaining <= 0 {
		return 0, false
	}
	n = min(len(samples), o.remaining)
	for i := range samples[:n] {
		v := o.shape(o.phase)
		samples[i] = [2]float64{v, v}
		_, o.phase = math.Modf(o.phase + o.step)
	}
	o.remaining -= n
	return n, true
}

func (o *oscillator) Err() error { return nil }

// envelope multiplies a stream by a gain curve over its first total samples:
// linear rise over the attack, flat sustain, quadratic fall over the release
type envelope struct {
	beep.Streamer
	pos, total      int
	attack, decayAt int
}

// NewEnvelope wraps s with an attack and release over duration and cuts it at duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	return &envelope{
		Streamer: s,
		total:    total,
		attack:   att,
		decayAt:  max(total-rate.N(release), att),
	}
}

func (e *envelope) gain(pos int) float64 {
	switch {
	case pos < e.attack:
		return float64(pos) / float64(e.attack)
	case pos >= e.decayAt:
		left := float64(e.total-pos) / float64(e.total-e.decayAt)
		return left * left
	default:
		return 1
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.pos >= e.total {
		return 0, false
	}
	n, ok = e.Streamer.Stream(samples[:min(len(samples), e.total-e.pos)])
	for i := range samples[:n] {
		g := e.gain(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok || n > 0
}

// newVolume scales s linearly by vol
// math.Log2(0) is -Inf, so zero volume becomes an explicit silent stage
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Accent sounds, unity gain before volume

// bellDuration is the full ring of a bell strike
const bellDuration = 1200 * time.Millisecond

// newBell strikes freq with an octave overtone that fades faster
func newBell(freq float64, rate beep.SampleRate) beep.Streamer {
	fund := NewOscillator(freq, bellDuration, WaveSine, rate, nil)
	fundShaped := NewEnvelope(fund, bellDuration, 5*time.Millisecond, 1100*time.Millisecond, rate)

	over := NewOscillator(freq*2, bellDuration, WaveSine, rate, nil)
	overShaped := NewEnvelope(over, bellDuration, 5*time.Millisecond, 400*time.Millisecond, rate)

	return beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
}

// chimeDuration is shorter and brighter than a bell
const chimeDuration = 600 * time.Millisecond

func newChime(freq float64, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, chimeDuration, WaveSine, rate, nil)
	return NewEnvelope(osc, chimeDuration, 2*time.Millisecond, 580*time.Millisecond, rate)
}

// newThunder is a long crack of noise over a falling rumble
func newThunder(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	length := time.Duration(900+rng.IntN(900)) * time.Millisecond
	return beep.Take(rate.N(length), NewCrackGenerator(rate, rng))
}
