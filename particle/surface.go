package particle

import (
	"context"

	"github.com/lixenwraith/weathermood/render"
)

// Surface is the drawable target, measured in logical pixels
type Surface interface {
	Size() (w, h float64)
	Resize(w, h float64)
	Clear()
	FillCircle(x, y, r float64, c render.RGBA, st render.Stroke)
	StrokeLine(x0, y0, x1, y1, width float64, c render.RGBA, st render.Stroke)
}

// Scheduler paces the animation loop
type Scheduler interface {
	// WaitFrame blocks until the next display frame or ctx is done
	WaitFrame(ctx context.Context) error
}

// Listener receives pointer and viewport notifications, possibly from another goroutine
type Listener interface {
	PointerMoved(x, y float64)
	PointerLeft()
	ViewportResized(w, h float64)
}

// EventSource delivers host notifications to subscribed listeners
type EventSource interface {
	// Viewport returns the current viewport size in logical pixels
	Viewport() (w, h float64)
	// Subscribe registers l and returns a function that removes it
	Subscribe(l Listener) (cancel func())
}
