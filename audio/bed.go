package audio

import (
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/lixenwraith/weathermood/weather"
)

// Bell and chime pitches: A5, C6, E6, G6
var (
	bellNotes  = []float64{880.00, 1046.50}
	chimeNotes = []float64{1318.51, 1567.98, 1760.00, 2093.00}
)

// Bed builds the endless ambience stream for k at unity master volume
// Unknown kinds get the sunny bed
func Bed(k weather.Kind, cfg AudioConfig, rng *rand.Rand) beep.Streamer {
	rate := cfg.rate()
	accent := cfg.AccentVolume

	switch k {
	case weather.KindCloudy:
		return newVolume(NewHumGenerator(rate, 70, 50, 8*time.Second), 0.12)

	case weather.KindRainy:
		return newVolume(NewHissGenerator(rate, rng, 0.35, 0.2), 0.25)

	case weather.KindStormy:
		return beep.Mix(
			newVolume(NewHissGenerator(rate, rng, 0.5, 0.4), 0.3),
			newVolume(NewHumGenerator(rate, 35, 15, 5*time.Second), 0.15),
			newVolume(accents(rate, rng, 6*time.Second, 15*time.Second, func() beep.Streamer {
				return newThunder(rate, rng)
			}), accent),
		)

	case weather.KindSnowy:
		return beep.Mix(
			newVolume(NewHissGenerator(rate, rng, 0.05, 0.6), 0.15),
			newVolume(accents(rate, rng, time.Second, 3*time.Second, func() beep.Streamer {
				return newChime(chimeNotes[rng.IntN(len(chimeNotes))], rate)
			}), accent*0.3),
		)

	default:
		return beep.Mix(
			newVolume(NewHumGenerator(rate, 110, 20, 12*time.Second), 0.05),
			newVolume(accents(rate, rng, 3*time.Second, 7*time.Second, func() beep.Streamer {
				return newBell(bellNotes[rng.IntN(len(bellNotes))], rate)
			}), accent*0.25),
		)
	}
}

// accents plays next() forever, each preceded by a random silence in [minGap, maxGap)
func accents(rate beep.SampleRate, rng *rand.Rand, minGap, maxGap time.Duration, next func() beep.Streamer) beep.Streamer {
	return beep.Iterate(func() beep.Streamer {
		gap := minGap + time.Duration(rng.Int64N(int64(maxGap-minGap)))
		return beep.Seq(beep.Silence(rate.N(gap)), next())
	})
}
