package screen

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/weathermood/input"
	"github.com/lixenwraith/weathermood/render"
	"github.com/lixenwraith/weathermood/weather"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	s.SetSize(80, 24)
	t.Cleanup(s.Fini)
	return s
}

type recorder struct {
	mu      sync.Mutex
	moves   [][2]float64
	left    int
	resizes [][2]float64
}

func (r *recorder) PointerMoved(x, y float64) {
	r.mu.Lock()
	r.moves = append(r.moves, [2]float64{x, y})
	r.mu.Unlock()
}

func (r *recorder) PointerLeft() {
	r.mu.Lock()
	r.left++
	r.mu.Unlock()
}

func (r *recorder) ViewportResized(w, h float64) {
	r.mu.Lock()
	r.resizes = append(r.resizes, [2]float64{w, h})
	r.mu.Unlock()
}

func (r *recorder) resizeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.resizes)
}

func TestDisplayShowsCanvas(t *testing.T) {
	s := newSimScreen(t)
	c := render.NewCanvas(80, 24, render.DefaultCanvasConfig())
	c.FillCircle(4*8+4, 2*16+8, 3, render.RGBA{RGB: render.RGB{R: 255, G: 255, B: 255}, A: 1}, render.Stroke{Alpha: 1})
	c.DrawText(0, 0, "晴 sunny", render.RGB{R: 200, G: 200, B: 200})

	d := NewDisplay(s)
	d.Show(c)

	mainc, _, style, _ := s.GetContent(4, 2)
	if mainc != '●' {
		t.Errorf("disc cell rune = %q, want ●", mainc)
	}
	fg, bg, _ := style.Decompose()
	want := c.At(4, 2)
	if fg != Color(want.Fg) || bg != Color(want.Bg) {
		t.Errorf("disc style fg=%v bg=%v, want %v %v", fg, bg, Color(want.Fg), Color(want.Bg))
	}

	if r, _, _, _ := s.GetContent(0, 0); r != '晴' {
		t.Errorf("text cell = %q, want 晴", r)
	}
	if r, _, _, _ := s.GetContent(3, 0); r != 's' {
		t.Errorf("text after wide rune = %q, want s", r)
	}

	cols, rows := d.Size()
	if cols != 80 || rows != 24 {
		t.Errorf("Size() = %d,%d", cols, rows)
	}
}

func TestPumpViewportAndPointer(t *testing.T) {
	s := newSimScreen(t)
	p := NewPump(s, 8, 16, nil, nil)

	if w, h := p.Viewport(); w != 640 || h != 384 {
		t.Fatalf("Viewport() = %v,%v, want 640,384", w, h)
	}

	rec := &recorder{}
	cancel := p.Subscribe(rec)

	p.Dispatch(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))
	if len(rec.moves) != 1 || rec.moves[0] != [2]float64{84, 88} {
		t.Errorf("moves = %v, want [[84 88]]", rec.moves)
	}

	p.Dispatch(tcell.NewEventMouse(-1, 5, tcell.ButtonNone, tcell.ModNone))
	p.Dispatch(tcell.NewEventFocus(false))
	p.Dispatch(tcell.NewEventFocus(true))
	if rec.left != 2 {
		t.Errorf("left = %d, want 2", rec.left)
	}

	p.Dispatch(tcell.NewEventResize(100, 30))
	if len(rec.resizes) != 1 || rec.resizes[0] != [2]float64{800, 480} {
		t.Errorf("resizes = %v, want [[800 480]]", rec.resizes)
	}
	if w, h := p.Viewport(); w != 800 || h != 480 {
		t.Errorf("Viewport() after resize = %v,%v", w, h)
	}

	// Previously outside, now inside the larger grid
	p.Dispatch(tcell.NewEventMouse(90, 25, tcell.ButtonNone, tcell.ModNone))
	if len(rec.moves) != 2 {
		t.Errorf("move after resize not delivered: %v", rec.moves)
	}

	cancel()
	cancel()
	p.Dispatch(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))
	if len(rec.moves) != 2 {
		t.Error("listener notified after unsubscribe")
	}
}

func TestPumpKeyIntents(t *testing.T) {
	s := newSimScreen(t)
	p := NewPump(s, 8, 16, input.DefaultKeyTable(), nil)

	p.Dispatch(tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone))
	p.Dispatch(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))
	p.Dispatch(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))

	want := []input.Intent{
		{Type: input.IntentSelectWeather, Kind: weather.KindRainy},
		{Type: input.IntentQuit},
	}
	for _, w := range want {
		select {
		case got := <-p.Intents():
			if got != w {
				t.Errorf("intent = %v, want %v", got, w)
			}
		default:
			t.Fatalf("missing intent %v", w)
		}
	}
	select {
	case got := <-p.Intents():
		t.Errorf("unexpected intent %v", got)
	default:
	}
}

func TestPumpDropsWhenFull(t *testing.T) {
	s := newSimScreen(t)
	p := NewPump(s, 8, 16, nil, nil)
	for i := 0; i < intentBuffer+5; i++ {
		p.Dispatch(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	}
	if got := len(p.Intents()); got != intentBuffer {
		t.Errorf("queued %d intents, want %d", got, intentBuffer)
	}
	if got := p.statDropped.Load(); got != 5 {
		t.Errorf("dropped = %d, want 5", got)
	}
}

func TestPumpRunForwardsEvents(t *testing.T) {
	s := newSimScreen(t)
	p := NewPump(s, 8, 16, nil, nil)
	rec := &recorder{}
	p.Subscribe(rec)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	if err := s.PostEvent(tcell.NewEventResize(40, 10)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for rec.resizeCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("resize not forwarded")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	// Unblock PollEvent so the reader goroutine observes cancellation
	_ = s.PostEvent(tcell.NewEventInterrupt(nil))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
