package weather

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"sync"
	"time"
)

// Provider resolves the current weather through a fallback chain:
// live source, then cached report for the same location, then mock data
type Provider struct {
	live  Source
	cache Cache
	mock  *MockSource
	rng   *rand.Rand

	mu      sync.Mutex
	current Report
	have    bool
}

// NewProvider builds a provider; live and cache may be nil
func NewProvider(live Source, cache Cache, mock *MockSource, rng *rand.Rand) *Provider {
	if mock == nil {
		mock = NewMockSource(nil, nil)
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Provider{live: live, cache: cache, mock: mock, rng: rng}
}

// Current fetches conditions for loc; it always yields a report
func (p *Provider) Current(ctx context.Context, loc Location) Report {
	r := p.resolve(ctx, loc)

	p.mu.Lock()
	p.current = r
	p.have = true
	p.mu.Unlock()
	return r
}

func (p *Provider) resolve(ctx context.Context, loc Location) Report {
	if p.live != nil {
		r, err := p.live.Current(ctx, loc)
		if err == nil {
			if p.cache != nil {
				if cerr := p.cache.SaveReport(ctx, r); cerr != nil {
					log.Printf("weather: cache save failed: %v", cerr)
				}
			}
			return r
		}
		if !errors.Is(err, ErrNoAPIKey) {
			log.Printf("weather: live fetch failed: %v", err)
		}

		if p.cache != nil {
			cached, cerr := p.cache.LoadReport(ctx, loc)
			if cerr == nil {
				cached.Live = false
				log.Printf("weather: using cached report from %s", cached.Timestamp.Format(time.RFC3339))
				return cached
			}
		}
	}

	r, _ := p.mock.Current(ctx, loc)
	return r
}

// Forecast returns the live forecast, or a mock forecast on any failure
func (p *Provider) Forecast(ctx context.Context, loc Location) []ForecastDay {
	if p.live != nil {
		days, err := p.live.Forecast(ctx, loc)
		if err == nil {
			return days
		}
		if !errors.Is(err, ErrNoAPIKey) {
			log.Printf("weather: forecast fetch failed: %v", err)
		}
	}
	days, _ := p.mock.Forecast(ctx, loc)
	return days
}

// Last returns the most recently resolved report
func (p *Provider) Last() (Report, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.have
}

// CycleTheme advances the current report to the next kind in cycle order
func (p *Provider) CycleTheme() Report {
	p.mu.Lock()
	next := p.current.Kind.Next()
	p.mu.Unlock()
	return p.Select(next)
}

// Select overrides the current report's kind, marking it as demo data
func (p *Provider) Select(k Kind) Report {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry := Lookup(k)
	r := p.current
	r.Kind = k
	r.Icon = entry.Icon
	r.Condition = entry.Condition
	r.Activities = PickActivities(p.rng, k, 4)
	r.Live = false
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}

	p.current = r
	p.have = true
	return r
}
