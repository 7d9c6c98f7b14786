package audio

import (
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/weathermood/status"
	"github.com/lixenwraith/weathermood/weather"
)

// Ambience plays one weather bed at a time through the speaker
// All methods are safe without Initialize; they then only track state
type Ambience struct {
	mu          sync.Mutex
	cfg         AudioConfig
	rng         *rand.Rand
	mixer       *beep.Mixer
	bed         *beep.Ctrl
	kind        weather.Kind
	hasKind     bool
	muted       bool
	initialized bool

	statKind  *status.AtomicString
	statMuted *atomic.Bool
}

// NewAmbience creates an idle ambience
func NewAmbience(cfg AudioConfig, reg *status.Registry) *Ambience {
	if reg == nil {
		reg = status.NewRegistry()
	}
	seed := uint64(time.Now().UnixNano())
	return &Ambience{
		cfg:       cfg,
		rng:       rand.New(rand.NewPCG(seed, seed>>7|1)),
		mixer:     &beep.Mixer{},
		statKind:  reg.Strings.Get("audio.bed"),
		statMuted: reg.Bools.Get("audio.muted"),
	}
}

// Initialize opens the speaker; a disabled config leaves audio off without error
func (a *Ambience) Initialize() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized || !a.cfg.Enabled {
		return nil
	}

	rate := a.cfg.rate()
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(a.mixer)
	a.initialized = true

	if a.hasKind {
		a.startBed(a.kind)
	}
	return nil
}

// SetWeather switches to the bed for k; repeated kinds are ignored
func (a *Ambience) SetWeather(k weather.Kind) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.hasKind && a.kind == k {
		return
	}
	a.kind, a.hasKind = k, true
	a.statKind.Store(k.String())

	if a.initialized {
		a.startBed(k)
	}
}

// startBed swaps the playing bed, caller holds a.mu
func (a *Ambience) startBed(k weather.Kind) {
	bedRng := rand.New(rand.NewPCG(a.rng.Uint64(), a.rng.Uint64()))
	stream := newVolume(Bed(k, a.cfg, bedRng), a.cfg.MasterVolume)

	speaker.Lock()
	if a.bed != nil {
		a.bed.Paused = true
		a.bed.Streamer = nil
	}
	a.mixer.Clear()
	a.bed = &beep.Ctrl{Streamer: stream, Paused: a.muted}
	a.mixer.Add(a.bed)
	speaker.Unlock()

	log.Printf("audio: playing %s bed", k)
}

// ToggleMute flips the mute state and returns the new value
func (a *Ambience) ToggleMute() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.muted = !a.muted
	a.statMuted.Store(a.muted)
	if a.initialized && a.bed != nil {
		speaker.Lock()
		a.bed.Paused = a.muted
		speaker.Unlock()
	}
	return a.muted
}

// Muted reports the mute state
func (a *Ambience) Muted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.muted
}

// Kind returns the last requested weather kind
func (a *Ambience) Kind() (weather.Kind, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.kind, a.hasKind
}

// Close stops playback and releases the speaker
func (a *Ambience) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	a.bed = nil
	a.initialized = false
}
