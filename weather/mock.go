package weather

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// MockSource synthesizes plausible weather from latitude, season and time of day
type MockSource struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time

	lastTemp int
	haveLast bool
}

// NewMockSource creates a mock source; nil rng seeds from the clock
func NewMockSource(rng *rand.Rand, now func() time.Time) *MockSource {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	if now == nil {
		now = time.Now
	}
	return &MockSource{rng: rng, now: now}
}

// Current returns a synthetic report, never fails
func (m *MockSource) Current(_ context.Context, loc Location) (Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	temp := m.baseTemp(loc.Lat, now)
	kind := m.kindForTemp(temp)
	entry := Lookup(kind)

	r := Report{
		Kind:       kind,
		Icon:       entry.Icon,
		Condition:  entry.Condition,
		Location:   loc,
		Temp:       temp,
		FeelsLike:  temp + m.rng.IntN(5) - 2,
		TempMin:    temp - m.rng.IntN(5),
		TempMax:    temp + m.rng.IntN(5),
		Humidity:   40 + m.rng.IntN(40),
		Wind:       5 + m.rng.IntN(25),
		Visibility: 5 + m.rng.IntN(10),
		Pressure:   1000 + m.rng.IntN(30),
		Sunrise:    fmt.Sprintf("%d:%02d", 6+m.rng.IntN(2), m.rng.IntN(60)),
		Sunset:     fmt.Sprintf("%d:%02d", 17+m.rng.IntN(3), m.rng.IntN(60)),
		Activities: PickActivities(m.rng, kind, 4),
		Live:       false,
		Timestamp:  now,
	}
	m.lastTemp, m.haveLast = temp, true
	return r, nil
}

// Forecast returns five synthetic days following today
func (m *MockSource) Forecast(_ context.Context, _ Location) ([]ForecastDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	base := 20
	if m.haveLast {
		base = m.lastTemp
	}

	today := m.now()
	days := make([]ForecastDay, 0, 5)
	for i := 1; i <= 5; i++ {
		date := today.AddDate(0, 0, i)
		kind := Kind(m.rng.IntN(int(kindCount)))
		entry := Lookup(kind)
		days = append(days, ForecastDay{
			Date:        date,
			Day:         date.Weekday().String()[:3],
			Icon:        entry.Icon,
			TempHigh:    base + m.rng.IntN(6) - 2,
			TempLow:     base - m.rng.IntN(8) - 2,
			Description: entry.Condition,
		})
	}
	return days, nil
}

func (m *MockSource) baseTemp(lat float64, now time.Time) int {
	t := 25 - math.Abs(lat)*0.5

	// Zero-based month to match the seasonal bands
	month := int(now.Month()) - 1
	summer := month >= 5 && month <= 8
	winter := month >= 11 || month <= 2
	if lat > 0 {
		if summer {
			t += 10
		}
		if winter {
			t -= 10
		}
	} else {
		if summer {
			t -= 10
		}
		if winter {
			t += 10
		}
	}

	hour := now.Hour()
	switch {
	case hour >= 6 && hour < 12:
		t -= 3
	case hour >= 12 && hour < 18:
		t += 3
	default:
		t -= 5
	}

	t += (m.rng.Float64() - 0.5) * 8
	return int(math.Round(t))
}

func (m *MockSource) kindForTemp(temp int) Kind {
	r := m.rng.Float64()
	switch {
	case temp < 0:
		if r < 0.7 {
			return KindSnowy
		}
		return KindCloudy
	case temp < 10:
		if r < 0.4 {
			return KindRainy
		} else if r < 0.7 {
			return KindCloudy
		}
		return KindSunny
	case temp < 25:
		if r < 0.5 {
			return KindSunny
		} else if r < 0.8 {
			return KindCloudy
		}
		return KindRainy
	default:
		if r < 0.6 {
			return KindSunny
		} else if r < 0.9 {
			return KindCloudy
		}
		return KindStormy
	}
}

// PickActivities returns n activities for k in shuffled order
func PickActivities(rng *rand.Rand, k Kind, n int) []Activity {
	src := Lookup(k).Activities
	out := make([]Activity, len(src))
	copy(out, src)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if n < len(out) {
		out = out[:n]
	}
	return out
}
