package particle

import (
	"context"
	"log"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/weathermood/status"
	"github.com/lixenwraith/weathermood/weather"
)

// Field owns a particle set and advances it once per frame
type Field struct {
	mu sync.Mutex

	surface     Surface
	scheduler   Scheduler
	unsubscribe func()

	rng       *rand.Rand
	kind      weather.Kind
	profile   Profile
	particles []Particle
	pointer   PointerState

	// afterTick runs under the engine lock after each drawn tick
	afterTick func()

	active   atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once

	statTicks       *atomic.Int64
	statParticles   *atomic.Int64
	statConnections *atomic.Int64
	statKind        *status.AtomicString
}

// Option configures a Field at construction
type Option func(*Field)

// WithRand sets the random source used for all sampling
func WithRand(rng *rand.Rand) Option {
	return func(f *Field) { f.rng = rng }
}

// WithPointerRadius sets the pointer interaction radius
func WithPointerRadius(r float64) Option {
	return func(f *Field) {
		if r > 0 {
			f.pointer.Radius = r
		}
	}
}

// WithAfterTick registers a hook run after every drawn tick
// The hook runs with the engine lock held and must not call back into the Field
func WithAfterTick(fn func()) Option {
	return func(f *Field) { f.afterTick = fn }
}

// WithMetrics publishes tick and particle counters into reg
func WithMetrics(reg *status.Registry) Option {
	return func(f *Field) { f.bindMetrics(reg) }
}

// New sizes surface to the viewport, builds the particle set for kind and
// subscribes to events; events may be nil for a fixed-size surface
// Call Run to start animating
func New(surface Surface, scheduler Scheduler, events EventSource, kind weather.Kind, opts ...Option) *Field {
	f := &Field{
		surface:   surface,
		scheduler: scheduler,
		pointer:   PointerState{Radius: DefaultPointerRadius},
		stop:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		seed := uint64(time.Now().UnixNano())
		f.rng = rand.New(rand.NewPCG(seed, seed^0xda3e39cb94b95bdb))
	}
	if f.statTicks == nil {
		f.bindMetrics(status.NewRegistry())
	}

	if events != nil && surface != nil {
		surface.Resize(events.Viewport())
	}

	f.kind = kindOrSunny(kind)
	f.profile = ProfileFor(f.kind)
	f.rebuild()

	if events != nil {
		f.unsubscribe = events.Subscribe(f)
	}

	f.active.Store(true)
	return f
}

func (f *Field) bindMetrics(reg *status.Registry) {
	f.statTicks = reg.Ints.Get("field.ticks")
	f.statParticles = reg.Ints.Get("field.particles")
	f.statConnections = reg.Ints.Get("field.connections")
	f.statKind = reg.Strings.Get("field.kind")
}

func kindOrSunny(k weather.Kind) weather.Kind {
	if !k.Valid() {
		return weather.KindSunny
	}
	return k
}

// rebuild discards all particles and generates a fresh set, caller holds mu
func (f *Field) rebuild() {
	var w, h float64
	if f.surface != nil {
		w, h = f.surface.Size()
	}
	f.particles = generate(f.rng, f.profile, w, h)
	f.statParticles.Store(int64(len(f.particles)))
	f.statKind.Store(f.kind.String())
}

// SetWeather switches the motion profile and regenerates every particle
func (f *Field) SetWeather(k weather.Kind) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.kind = kindOrSunny(k)
	f.profile = ProfileFor(f.kind)
	f.rebuild()
	log.Printf("particle: weather set to %s, %d particles", f.kind, len(f.particles))
}

// Kind returns the active weather kind
func (f *Field) Kind() weather.Kind {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.kind
}

// Profile returns a copy of the active motion profile
func (f *Field) Profile() Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.profile
	p.Colors = slices.Clone(p.Colors)
	return p
}

// Particles returns a snapshot of the particle set
func (f *Field) Particles() []Particle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.particles)
}

// Pointer returns the current pointer state
func (f *Field) Pointer() PointerState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pointer
}

// PointerMoved records the pointer position for the next tick
func (f *Field) PointerMoved(x, y float64) {
	f.mu.Lock()
	f.pointer.X, f.pointer.Y = x, y
	f.pointer.Present = true
	f.mu.Unlock()
}

// PointerLeft marks the pointer absent
func (f *Field) PointerLeft() {
	f.mu.Lock()
	f.pointer.Present = false
	f.mu.Unlock()
}

// ViewportResized resizes the surface and regenerates every particle
func (f *Field) ViewportResized(w, h float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.surface == nil {
		return
	}
	f.surface.Resize(w, h)
	f.rebuild()
	sw, sh := f.surface.Size()
	log.Printf("particle: surface resized to %.0fx%.0f", sw, sh)
}

// Tick advances and draws one frame
// A missing or zero-area surface makes the tick a no-op
func (f *Field) Tick() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tick() && f.afterTick != nil {
		f.afterTick()
	}
}

func (f *Field) tick() bool {
	if f.surface == nil {
		return false
	}
	w, h := f.surface.Size()
	if w <= 0 || h <= 0 {
		return false
	}

	f.surface.Clear()
	for i := range f.particles {
		p := &f.particles[i]
		f.update(p, w, h)
		f.draw(p)
	}

	if f.profile.Connected() {
		f.statConnections.Store(int64(f.drawConnections()))
	} else {
		f.statConnections.Store(0)
	}

	f.statTicks.Add(1)
	return true
}

// Run ticks once per scheduler frame until Teardown or ctx cancellation
// Returns nil after Teardown, the context error otherwise
func (f *Field) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-f.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	for f.active.Load() {
		if err := f.scheduler.WaitFrame(ctx); err != nil {
			if !f.active.Load() {
				return nil
			}
			return err
		}
		if !f.active.Load() {
			return nil
		}
		f.Tick()
	}
	return nil
}

// Active reports whether the field has not been torn down
func (f *Field) Active() bool {
	return f.active.Load()
}

// Teardown stops the loop and unsubscribes from events; safe to call repeatedly
func (f *Field) Teardown() {
	f.stopOnce.Do(func() {
		f.active.Store(false)
		close(f.stop)

		f.mu.Lock()
		unsub := f.unsubscribe
		f.unsubscribe = nil
		f.mu.Unlock()

		if unsub != nil {
			unsub()
		}
	})
}
