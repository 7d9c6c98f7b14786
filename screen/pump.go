package screen

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/weathermood/input"
	"github.com/lixenwraith/weathermood/particle"
	"github.com/lixenwraith/weathermood/status"
)

// intentBuffer bounds queued key intents; extra presses are dropped
const intentBuffer = 16

// Pump translates tcell events into particle.Listener calls and key intents
// Cell coordinates are mapped to the logical pixel at the cell center
type Pump struct {
	screen       tcell.Screen
	cellW, cellH float64
	keys         *input.KeyTable

	mu         sync.Mutex
	cols, rows int
	listeners  map[uint64]particle.Listener
	nextID     uint64

	intents chan input.Intent

	statEvents  *atomic.Int64
	statDropped *atomic.Int64
}

// NewPump enables mouse motion and focus reporting on s
// A nil key table uses the default bindings
func NewPump(s tcell.Screen, cellW, cellH float64, keys *input.KeyTable, reg *status.Registry) *Pump {
	if keys == nil {
		keys = input.DefaultKeyTable()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	s.EnableMouse(tcell.MouseMotionEvents)
	s.EnableFocus()

	cols, rows := s.Size()
	return &Pump{
		screen:      s,
		cellW:       cellW,
		cellH:       cellH,
		keys:        keys,
		cols:        cols,
		rows:        rows,
		listeners:   make(map[uint64]particle.Listener),
		intents:     make(chan input.Intent, intentBuffer),
		statEvents:  reg.Ints.Get("input.events"),
		statDropped: reg.Ints.Get("input.dropped"),
	}
}

// Viewport returns the screen size in logical pixels
func (p *Pump) Viewport() (w, h float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return float64(p.cols) * p.cellW, float64(p.rows) * p.cellH
}

// Subscribe registers l for pointer and viewport notifications
func (p *Pump) Subscribe(l particle.Listener) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = l
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.listeners, id)
			p.mu.Unlock()
		})
	}
}

// Intents delivers resolved key intents
func (p *Pump) Intents() <-chan input.Intent {
	return p.intents
}

// Run forwards screen events to Dispatch until ctx is done or the screen is finalized
func (p *Pump) Run(ctx context.Context) {
	events := make(chan tcell.Event, 64)
	go func() {
		defer close(events)
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			p.Dispatch(ev)
		}
	}
}

// snapshot copies the listener set so callbacks run without p.mu held
func (p *Pump) snapshot() []particle.Listener {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]particle.Listener, 0, len(p.listeners))
	for _, l := range p.listeners {
		out = append(out, l)
	}
	return out
}

// Dispatch handles one terminal event
func (p *Pump) Dispatch(ev tcell.Event) {
	p.statEvents.Add(1)

	switch ev := ev.(type) {
	case *tcell.EventMouse:
		col, row := ev.Position()
		p.mu.Lock()
		inside := col >= 0 && col < p.cols && row >= 0 && row < p.rows
		p.mu.Unlock()

		if !inside {
			for _, l := range p.snapshot() {
				l.PointerLeft()
			}
			return
		}
		x := (float64(col) + 0.5) * p.cellW
		y := (float64(row) + 0.5) * p.cellH
		for _, l := range p.snapshot() {
			l.PointerMoved(x, y)
		}

	case *tcell.EventFocus:
		if !ev.Focused {
			for _, l := range p.snapshot() {
				l.PointerLeft()
			}
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		p.mu.Lock()
		p.cols, p.rows = cols, rows
		p.mu.Unlock()

		w, h := float64(cols)*p.cellW, float64(rows)*p.cellH
		for _, l := range p.snapshot() {
			l.ViewportResized(w, h)
		}

	case *tcell.EventKey:
		intent, ok := p.keys.Lookup(ev)
		if !ok {
			return
		}
		select {
		case p.intents <- intent:
		default:
			p.statDropped.Add(1)
			log.Printf("screen: intent queue full, dropped %s", intent)
		}
	}
}
