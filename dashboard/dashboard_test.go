package dashboard

import (
	"context"
	"errors"
	"math/rand/v2"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/weathermood/config"
	"github.com/lixenwraith/weathermood/engine"
	"github.com/lixenwraith/weathermood/input"
	"github.com/lixenwraith/weathermood/weather"
)

// fixedSource reports the same live weather on every call
type fixedSource struct {
	kind  weather.Kind
	calls atomic.Int32
}

func (f *fixedSource) Current(_ context.Context, loc weather.Location) (weather.Report, error) {
	f.calls.Add(1)
	e := weather.Lookup(f.kind)
	return weather.Report{
		Kind:       f.kind,
		Icon:       e.Icon,
		Condition:  e.Condition,
		Location:   loc,
		Temp:       12,
		Activities: e.Activities,
		Live:       true,
		Timestamp:  time.Now(),
	}, nil
}

func (f *fixedSource) Forecast(context.Context, weather.Location) ([]weather.ForecastDay, error) {
	return []weather.ForecastDay{{Day: "Mon", Icon: "☁", TempHigh: 14, TempLow: 8}}, nil
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Audio.Enabled = false
	cfg.Store.Enabled = false
	return cfg
}

func newTestDashboard(t *testing.T, cfg config.Config, live weather.Source) (*Dashboard, tcell.SimulationScreen, *engine.StepScheduler) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	s.SetSize(60, 16)

	steps := engine.NewStepScheduler()
	d, err := New(cfg, s, Deps{
		Scheduler: steps,
		Live:      live,
		Rand:      rand.New(rand.NewPCG(3, 4)),
	})
	if err != nil {
		s.Fini()
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(d.Close)
	return d, s, steps
}

func rowText(s tcell.SimulationScreen, row int) string {
	cols, _ := s.Size()
	var sb strings.Builder
	for col := 0; col < cols; col++ {
		r, _, _, _ := s.GetContent(col, row)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestNewSeedsInitialKind(t *testing.T) {
	cfg := testConfig()
	cfg.Weather.Initial = "snowy"
	d, _, _ := newTestDashboard(t, cfg, nil)

	if got := d.Field().Kind(); got != weather.KindSnowy {
		t.Errorf("field kind = %v, want snowy", got)
	}
	r := d.Report()
	if r.Kind != weather.KindSnowy || r.Live {
		t.Errorf("seed report = %v live=%v, want snowy demo", r.Kind, r.Live)
	}
	if r.Location != cfg.Location() {
		t.Errorf("seed location = %+v", r.Location)
	}
	if k, ok := d.ambience.Kind(); !ok || k != weather.KindSnowy {
		t.Errorf("ambience kind = %v,%v, want snowy", k, ok)
	}
}

func TestNewRejectsUnknownAction(t *testing.T) {
	cfg := testConfig()
	cfg.Keys = map[string]string{"x": "dance"}
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer s.Fini()

	if _, err := New(cfg, s, Deps{Scheduler: engine.NewStepScheduler()}); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Display.FPS = 0
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer s.Fini()

	if _, err := New(cfg, s, Deps{}); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("New = %v, want ErrInvalid", err)
	}
}

func TestHandleIntents(t *testing.T) {
	d, _, _ := newTestDashboard(t, testConfig(), nil)

	if !d.handle(input.Intent{Type: input.IntentCycleWeather}) {
		t.Fatal("cycle requested quit")
	}
	if got := d.Field().Kind(); got != weather.KindCloudy {
		t.Errorf("after cycle kind = %v, want cloudy", got)
	}

	d.handle(input.Intent{Type: input.IntentSelectWeather, Kind: weather.KindStormy})
	if got := d.Field().Kind(); got != weather.KindStormy {
		t.Errorf("after select kind = %v, want stormy", got)
	}
	if d.Report().Live {
		t.Error("selected theme should be demo data")
	}

	d.handle(input.Intent{Type: input.IntentToggleHUD})
	if d.showHUD.Load() {
		t.Error("HUD still shown after toggle")
	}

	d.handle(input.Intent{Type: input.IntentToggleMute})
	if !d.ambience.Muted() {
		t.Error("ambience not muted after toggle")
	}

	// Refresh requests coalesce without blocking
	d.handle(input.Intent{Type: input.IntentRefresh})
	d.handle(input.Intent{Type: input.IntentRefresh})
	if len(d.refreshNow) != 1 {
		t.Errorf("pending refreshes = %d, want 1", len(d.refreshNow))
	}

	if d.handle(input.Intent{Type: input.IntentQuit}) {
		t.Error("quit did not stop")
	}
}

func TestRefreshAppliesOnlyChangedKind(t *testing.T) {
	src := &fixedSource{kind: weather.KindRainy}
	d, _, _ := newTestDashboard(t, testConfig(), src)
	ctx := context.Background()

	d.refresh(ctx)
	if got := d.Field().Kind(); got != weather.KindRainy {
		t.Fatalf("kind after refresh = %v, want rainy", got)
	}
	if !d.Report().Live || !d.statLive.Load() {
		t.Error("live report not marked live")
	}
	before := d.Field().Particles()

	d.refresh(ctx)
	if after := d.Field().Particles(); !reflect.DeepEqual(before, after) {
		t.Error("same kind regenerated the particle set")
	}
	if src.calls.Load() != 2 {
		t.Errorf("live calls = %d, want 2", src.calls.Load())
	}
	if d.statRefreshes.Load() != 2 {
		t.Errorf("refresh metric = %d, want 2", d.statRefreshes.Load())
	}
}

func TestPresentDrawsHUD(t *testing.T) {
	d, s, _ := newTestDashboard(t, testConfig(), nil)

	d.Field().Tick()
	if row := rowText(s, 1); !strings.Contains(row, "Clear Sky") {
		t.Errorf("HUD row = %q, want condition", row)
	}
	if row := rowText(s, 15); !strings.Contains(row, "q quit") {
		t.Errorf("help row = %q", row)
	}

	d.handle(input.Intent{Type: input.IntentToggleHUD})
	d.Field().Tick()
	if row := rowText(s, 1); strings.Contains(row, "Clear Sky") {
		t.Errorf("HUD still drawn when hidden: %q", row)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	src := &fixedSource{kind: weather.KindCloudy}
	d, s, steps := newTestDashboard(t, testConfig(), src)

	done := make(chan error, 1)
	go func() { done <- d.Run(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if !steps.Step(ctx, 3) {
		t.Fatal("frames not consumed")
	}

	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v, want nil on quit", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit key")
	}
	if d.Field().Active() {
		t.Error("field still active after quit")
	}
	if src.calls.Load() < 1 {
		t.Error("weather never refreshed")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	d, _, _ := newTestDashboard(t, testConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	d, _, _ := newTestDashboard(t, testConfig(), nil)
	d.Close()
	d.Close()
	if d.Field().Active() {
		t.Error("field active after Close")
	}
}

func TestHUDLines(t *testing.T) {
	r := weather.Report{
		Kind:       weather.KindRainy,
		Icon:       "🌧",
		Condition:  "Rainy",
		Location:   weather.Location{Name: "Oslo", Country: "NO"},
		Temp:       7,
		Activities: []weather.Activity{{Icon: "📚", Name: "Read a book"}},
		Live:       true,
	}
	days := []weather.ForecastDay{{Day: "Tue", Icon: "☀", TempHigh: 10, TempLow: 2}}

	got := hudLines(r, days, "imperial", hudStats{FPS: 59.6, Particles: 100, Muted: true})
	want := []string{
		"🌧 Rainy",
		"7°F  live",
		"Oslo, NO",
		"Productivity 80%",
		"📚 Read a book",
		"Tue ☀ 10/2",
		"60 fps  100 particles  muted",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("hudLines =\n%q\nwant\n%q", got, want)
	}

	bare := hudLines(weather.Report{Kind: weather.KindSunny}, nil, "metric", hudStats{})
	if len(bare) != 4 || bare[1] != "0°C  demo" {
		t.Errorf("bare hudLines = %q", bare)
	}
}
