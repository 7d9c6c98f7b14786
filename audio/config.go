// Package audio synthesizes a looping weather ambience with beep: a noise or
// drone bed per weather kind with sparse accents (bells, chimes, thunder).
package audio

import "github.com/gopxl/beep"

// AudioConfig controls ambience playback
type AudioConfig struct {
	Enabled bool
	// MasterVolume scales everything, 0 silences
	MasterVolume float64
	// AccentVolume scales bells, chimes and thunder relative to the bed
	AccentVolume float64
	SampleRate   int
}

// DefaultAudioConfig returns the playback defaults
func DefaultAudioConfig() AudioConfig {
	return AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		AccentVolume: 0.6,
		SampleRate:   44100,
	}
}

func (c AudioConfig) rate() beep.SampleRate {
	if c.SampleRate <= 0 {
		return beep.SampleRate(DefaultAudioConfig().SampleRate)
	}
	return beep.SampleRate(c.SampleRate)
}
