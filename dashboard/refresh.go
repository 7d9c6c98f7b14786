package dashboard

import (
	"context"
	"log"
	"time"
)

// refreshLoop resolves the weather at once, then on every interval or request
func (d *Dashboard) refreshLoop(ctx context.Context) {
	d.refresh(ctx)

	ticker := time.NewTicker(d.cfg.Weather.RefreshInterval.Duration)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.refresh(ctx)
		case <-d.refreshNow:
			d.refresh(ctx)
		}
	}
}

// refresh fetches current conditions and the forecast for the configured location
func (d *Dashboard) refresh(ctx context.Context) {
	r := d.provider.Current(ctx, d.loc)
	if ctx.Err() != nil {
		return
	}
	days := d.provider.Forecast(ctx, d.loc)

	d.mu.Lock()
	d.forecast = days
	d.mu.Unlock()
	d.apply(r)

	d.statRefreshes.Add(1)
	src := "mock"
	if r.Live {
		src = "live"
	}
	log.Printf("dashboard: %s weather %s %d° (%s)", src, r.Kind, r.Temp, r.Condition)
}
