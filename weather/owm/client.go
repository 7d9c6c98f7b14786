// Package owm is an OpenWeatherMap client producing weather reports
package owm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v5"
	"github.com/tidwall/gjson"

	"github.com/lixenwraith/weathermood/weather"
)

// DefaultBaseURL is the public API root
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// ErrInvalidAPIKey is returned when the API rejects the configured key
var ErrInvalidAPIKey = errors.New("owm: invalid api key")

// Config configures a Client
type Config struct {
	APIKey  string
	BaseURL string
	Units   string
	Timeout time.Duration
	// MaxTries bounds attempts per request, including the first
	MaxTries uint
	// RetryInitial is the first backoff interval
	RetryInitial time.Duration
}

// Client fetches current weather and forecasts
type Client struct {
	cfg  Config
	http *http.Client
	rng  *rand.Rand
	loc  *time.Location
	now  func() time.Time
}

// New creates a client; a nil httpClient uses a client with cfg.Timeout
func New(cfg Config, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Units == "" {
		cfg.Units = "metric"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxTries == 0 {
		cfg.MaxTries = 3
	}
	if cfg.RetryInitial <= 0 {
		cfg.RetryInitial = 500 * time.Millisecond
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	seed := uint64(time.Now().UnixNano())
	return &Client{
		cfg:  cfg,
		http: httpClient,
		rng:  rand.New(rand.NewPCG(seed, seed>>3)),
		loc:  time.Local,
		now:  time.Now,
	}
}

// Current fetches current conditions for loc
func (c *Client) Current(ctx context.Context, loc weather.Location) (weather.Report, error) {
	body, err := c.get(ctx, "weather", loc)
	if err != nil {
		return weather.Report{}, err
	}
	return c.parseCurrent(body, loc)
}

// Forecast fetches the 5-day/3-hour forecast and reduces it to one entry per day
func (c *Client) Forecast(ctx context.Context, loc weather.Location) ([]weather.ForecastDay, error) {
	body, err := c.get(ctx, "forecast", loc)
	if err != nil {
		return nil, err
	}
	return c.parseForecast(body)
}

func (c *Client) get(ctx context.Context, endpoint string, loc weather.Location) ([]byte, error) {
	if c.cfg.APIKey == "" {
		return nil, weather.ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	q.Set("units", c.cfg.Units)
	q.Set("appid", c.cfg.APIKey)
	target := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + endpoint + "?" + q.Encode()

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.cfg.RetryInitial

	op := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("build request: %w", err))
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s request: %w", endpoint, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%s read body: %w", endpoint, err)
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, backoff.Permanent(ErrInvalidAPIKey)
		case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
			return nil, backoff.Permanent(fmt.Errorf("%s: status %d", endpoint, resp.StatusCode))
		case resp.StatusCode != http.StatusOK:
			return nil, fmt.Errorf("%s: status %d", endpoint, resp.StatusCode)
		}

		if !gjson.ValidBytes(body) {
			return nil, backoff.Permanent(fmt.Errorf("%s: malformed json", endpoint))
		}
		return body, nil
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(eb),
		backoff.WithMaxTries(c.cfg.MaxTries),
	)
}

func (c *Client) parseCurrent(body []byte, loc weather.Location) (weather.Report, error) {
	doc := gjson.ParseBytes(body)

	cond := doc.Get("weather.0")
	if !cond.Exists() {
		return weather.Report{}, errors.New("owm: response has no weather condition")
	}
	id := int(cond.Get("id").Int())
	kind := MapConditionID(id)

	if name := doc.Get("name").String(); name != "" {
		loc.Name = name
	}
	if country := doc.Get("sys.country").String(); country != "" {
		loc.Country = country
	}

	visibility := 10
	if v := doc.Get("visibility"); v.Exists() && v.Float() > 0 {
		visibility = round(v.Float() / 1000)
	}

	main := doc.Get("main")
	return weather.Report{
		Kind:       kind,
		Icon:       ConditionIcon(id, cond.Get("icon").String()),
		Condition:  capitalize(cond.Get("description").String()),
		Location:   loc,
		Temp:       round(main.Get("temp").Float()),
		FeelsLike:  round(main.Get("feels_like").Float()),
		TempMin:    round(main.Get("temp_min").Float()),
		TempMax:    round(main.Get("temp_max").Float()),
		Humidity:   int(main.Get("humidity").Int()),
		Pressure:   int(main.Get("pressure").Int()),
		Wind:       round(doc.Get("wind.speed").Float() * 3.6),
		Visibility: visibility,
		Sunrise:    c.clock(doc.Get("sys.sunrise").Int()),
		Sunset:     c.clock(doc.Get("sys.sunset").Int()),
		Activities: weather.PickActivities(c.rng, kind, 4),
		Live:       true,
		Timestamp:  c.now(),
	}, nil
}

// parseForecast keeps one entry per future day, preferring 11:00-14:00 samples
// and filling remaining days from any sample
func (c *Client) parseForecast(body []byte) ([]weather.ForecastDay, error) {
	list := gjson.GetBytes(body, "list")
	if !list.IsArray() {
		return nil, errors.New("owm: forecast has no list")
	}

	today := dayKey(c.now().In(c.loc))
	seen := make(map[string]bool)
	days := make([]weather.ForecastDay, 0, 5)

	collect := func(midday bool) {
		list.ForEach(func(_, item gjson.Result) bool {
			if len(days) >= 5 {
				return false
			}
			date := time.Unix(item.Get("dt").Int(), 0).In(c.loc)
			key := dayKey(date)
			if key == today || seen[key] {
				return true
			}
			if midday && (date.Hour() < 11 || date.Hour() > 14) {
				return true
			}
			seen[key] = true
			id := int(item.Get("weather.0.id").Int())
			days = append(days, weather.ForecastDay{
				Date:        date,
				Day:         date.Weekday().String()[:3],
				Icon:        ConditionIcon(id, item.Get("weather.0.icon").String()),
				TempHigh:    round(item.Get("main.temp_max").Float()),
				TempLow:     round(item.Get("main.temp_min").Float()),
				Description: item.Get("weather.0.main").String(),
			})
			return true
		})
	}

	collect(true)
	if len(days) < 5 {
		collect(false)
	}
	slices.SortFunc(days, func(a, b weather.ForecastDay) int { return a.Date.Compare(b.Date) })
	return days, nil
}

func (c *Client) clock(unix int64) string {
	if unix == 0 {
		return ""
	}
	return time.Unix(unix, 0).In(c.loc).Format("15:04")
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func round(v float64) int {
	return int(math.Round(v))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
