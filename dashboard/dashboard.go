// Package dashboard composes the weather provider, the particle field, the
// terminal host and the ambience into the running program.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/weathermood/audio"
	"github.com/lixenwraith/weathermood/config"
	"github.com/lixenwraith/weathermood/engine"
	"github.com/lixenwraith/weathermood/input"
	"github.com/lixenwraith/weathermood/particle"
	"github.com/lixenwraith/weathermood/render"
	"github.com/lixenwraith/weathermood/screen"
	"github.com/lixenwraith/weathermood/status"
	"github.com/lixenwraith/weathermood/store"
	"github.com/lixenwraith/weathermood/weather"
)

// Deps are the optional collaborators; zero values get working defaults
type Deps struct {
	// Scheduler paces frames, default engine.FrameScheduler at the configured fps
	Scheduler particle.Scheduler
	// Live is the network weather source, nil runs on mock data
	Live weather.Source
	// Store caches reports and saved locations, nil disables persistence
	Store    *store.Store
	Ambience *audio.Ambience
	Registry *status.Registry
	Rand     *rand.Rand
}

// Dashboard owns every running component
type Dashboard struct {
	cfg config.Config
	loc weather.Location
	reg *status.Registry

	screen    tcell.Screen
	display   *screen.Display
	canvas    *render.Canvas
	pump      *screen.Pump
	field     *particle.Field
	scheduler particle.Scheduler
	provider  *weather.Provider
	ambience  *audio.Ambience
	store     *store.Store

	unsubscribe func()
	showHUD     atomic.Bool
	needSync    atomic.Bool
	refreshNow  chan struct{}

	// mu guards report and forecast; taken inside the field lock by the frame hook
	mu       sync.Mutex
	report   weather.Report
	forecast []weather.ForecastDay

	statFPS       *status.AtomicFloat
	statParticles *atomic.Int64
	statLive      *atomic.Bool
	statRefreshes *atomic.Int64

	closeOnce sync.Once
}

// New wires the dashboard onto an initialized screen
// Custom key bindings from cfg.Keys are merged over the defaults
func New(cfg config.Config, s tcell.Screen, deps Deps) (*Dashboard, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	override, err := input.LoadBindings(cfg.Keys)
	if err != nil {
		return nil, fmt.Errorf("dashboard: key bindings: %w", err)
	}
	keys := input.MergeKeyTable(input.DefaultKeyTable(), override)

	reg := deps.Registry
	if reg == nil {
		reg = status.NewRegistry()
	}
	rng := deps.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>11))
	}
	scheduler := deps.Scheduler
	if scheduler == nil {
		scheduler = engine.NewFrameScheduler(cfg.Display.FPS, reg)
	}
	ambience := deps.Ambience
	if ambience == nil {
		ambience = audio.NewAmbience(cfg.AudioSettings(), reg)
	}

	var cache weather.Cache
	if deps.Store != nil {
		cache = deps.Store
	}
	subRng := func() *rand.Rand { return rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64())) }
	provider := weather.NewProvider(deps.Live, cache, weather.NewMockSource(subRng(), nil), subRng())

	d := &Dashboard{
		cfg:           cfg,
		loc:           cfg.Location(),
		reg:           reg,
		screen:        s,
		display:       screen.NewDisplay(s),
		scheduler:     scheduler,
		provider:      provider,
		ambience:      ambience,
		store:         deps.Store,
		refreshNow:    make(chan struct{}, 1),
		statFPS:       reg.Floats.Get("engine.fps"),
		statParticles: reg.Ints.Get("field.particles"),
		statLive:      reg.Bools.Get("weather.live"),
		statRefreshes: reg.Ints.Get("weather.refreshes"),
	}
	d.showHUD.Store(cfg.Display.ShowHUD)

	canvasCfg := render.DefaultCanvasConfig()
	canvasCfg.CellWidth = cfg.Display.CellWidth
	canvasCfg.CellHeight = cfg.Display.CellHeight
	d.canvas = render.NewCanvas(0, 0, canvasCfg)
	d.pump = screen.NewPump(s, cfg.Display.CellWidth, cfg.Display.CellHeight, keys, reg)
	d.unsubscribe = d.pump.Subscribe(resizeWatcher{d})

	kind := cfg.InitialKind()
	d.field = particle.New(d.canvas, scheduler, d.pump, kind,
		particle.WithRand(subRng()),
		particle.WithPointerRadius(cfg.Display.PointerRadius),
		particle.WithAfterTick(d.present),
		particle.WithMetrics(reg),
	)

	seed := provider.Select(kind)
	seed.Location = d.loc
	d.report = seed
	ambience.SetWeather(kind)

	return d, nil
}

// resizeWatcher forces a full repaint after the terminal changes size
type resizeWatcher struct{ d *Dashboard }

func (resizeWatcher) PointerMoved(float64, float64) {}
func (resizeWatcher) PointerLeft()                  {}
func (w resizeWatcher) ViewportResized(float64, float64) {
	w.d.needSync.Store(true)
}

// Field exposes the particle engine
func (d *Dashboard) Field() *particle.Field {
	return d.field
}

// Report returns the report currently shown
func (d *Dashboard) Report() weather.Report {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.report
}

// present runs after every drawn tick with the field lock held
func (d *Dashboard) present() {
	if d.showHUD.Load() {
		d.drawHUD()
	}
	d.display.Show(d.canvas)
	if d.needSync.Swap(false) {
		d.display.Sync()
	}
}

// Run animates, handles keys and refreshes the weather until quit or ctx ends
// Returns nil on quit, the context error otherwise
func (d *Dashboard) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if d.store != nil {
		if saved, err := d.store.AddLocation(ctx, d.loc); err != nil {
			log.Printf("dashboard: save location: %v", err)
		} else {
			log.Printf("dashboard: %d saved locations", len(saved))
		}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	screen.Go(func() {
		defer wg.Done()
		d.pump.Run(ctx)
	})
	screen.Go(func() {
		defer wg.Done()
		d.refreshLoop(ctx)
	})

	fieldDone := make(chan error, 1)
	screen.Go(func() {
		fieldDone <- d.field.Run(ctx)
	})

	var err error
loop:
	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break loop
		case ferr := <-fieldDone:
			fieldDone = nil
			if ferr != nil && !errors.Is(ferr, context.Canceled) {
				err = ferr
			}
			break loop
		case intent := <-d.pump.Intents():
			if !d.handle(intent) {
				break loop
			}
		}
	}

	d.field.Teardown()
	cancel()
	if fieldDone != nil {
		<-fieldDone
	}
	wg.Wait()
	return err
}

// handle applies one key intent; false means quit
func (d *Dashboard) handle(intent input.Intent) bool {
	switch intent.Type {
	case input.IntentQuit:
		return false
	case input.IntentCycleWeather:
		d.apply(d.provider.CycleTheme())
	case input.IntentSelectWeather:
		d.apply(d.provider.Select(intent.Kind))
	case input.IntentRefresh:
		select {
		case d.refreshNow <- struct{}{}:
		default:
		}
	case input.IntentToggleHUD:
		d.showHUD.Store(!d.showHUD.Load())
	case input.IntentToggleMute:
		muted := d.ambience.ToggleMute()
		log.Printf("dashboard: ambience muted=%v", muted)
	}
	return true
}

// apply shows r and switches visuals and ambience when its kind differs
func (d *Dashboard) apply(r weather.Report) {
	if r.Location == (weather.Location{}) {
		r.Location = d.loc
	}
	d.mu.Lock()
	d.report = r
	d.mu.Unlock()
	d.statLive.Store(r.Live)

	if d.field.Kind() != r.Kind {
		d.field.SetWeather(r.Kind)
	}
	d.ambience.SetWeather(r.Kind)
}

// Close tears down in order: engine, frames, audio, terminal, store
// Safe to call more than once
func (d *Dashboard) Close() {
	d.closeOnce.Do(func() {
		d.field.Teardown()
		d.unsubscribe()
		if s, ok := d.scheduler.(interface{ Stop() }); ok {
			s.Stop()
		}
		d.ambience.Close()

		screen.RegisterCrashScreen(nil)
		d.screen.Fini()

		if d.store != nil {
			if err := d.store.Close(); err != nil {
				log.Printf("dashboard: close store: %v", err)
			}
		}
	})
}
