package weather

import (
	"context"
	"errors"
	"time"
)

// ErrNoAPIKey is returned by live sources configured without credentials
var ErrNoAPIKey = errors.New("weather: no api key configured")

// Location is a geographic point with an optional display name
type Location struct {
	Name    string
	Country string
	Lat     float64
	Lon     float64
}

// Report is a snapshot of current conditions
type Report struct {
	Kind       Kind
	Icon       string
	Condition  string
	Location   Location
	Temp       int
	FeelsLike  int
	TempMin    int
	TempMax    int
	Humidity   int
	Wind       int // km/h
	Visibility int // km
	Pressure   int // hPa
	Sunrise    string
	Sunset     string
	Activities []Activity
	Live       bool
	Timestamp  time.Time
}

// ForecastDay is one day of a multi-day forecast
type ForecastDay struct {
	Date        time.Time
	Day         string
	Icon        string
	TempHigh    int
	TempLow     int
	Description string
}

// Source produces weather for a location
type Source interface {
	Current(ctx context.Context, loc Location) (Report, error)
	Forecast(ctx context.Context, loc Location) ([]ForecastDay, error)
}

// Cache stores the last good report per location
type Cache interface {
	SaveReport(ctx context.Context, r Report) error
	LoadReport(ctx context.Context, loc Location) (Report, error)
}

// MaxSavedLocations bounds the saved location list
const MaxSavedLocations = 5

// AddLocation prepends loc unless a location with identical coordinates exists,
// then truncates to MaxSavedLocations
func AddLocation(saved []Location, loc Location) ([]Location, bool) {
	for _, l := range saved {
		if l.Lat == loc.Lat && l.Lon == loc.Lon {
			return saved, false
		}
	}
	out := make([]Location, 0, len(saved)+1)
	out = append(out, loc)
	out = append(out, saved...)
	if len(out) > MaxSavedLocations {
		out = out[:MaxSavedLocations]
	}
	return out, true
}

// RemoveLocation drops the location at index; out-of-range indexes leave saved unchanged
func RemoveLocation(saved []Location, index int) ([]Location, bool) {
	if index < 0 || index >= len(saved) {
		return saved, false
	}
	out := make([]Location, 0, len(saved)-1)
	out = append(out, saved[:index]...)
	out = append(out, saved[index+1:]...)
	return out, true
}
