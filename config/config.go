// Package config loads weathermood settings from a TOML file with
// WEATHERMOOD_* environment overrides, and validates the result.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/weathermood/audio"
	"github.com/lixenwraith/weathermood/weather"
	"github.com/lixenwraith/weathermood/weather/owm"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("config: invalid")

const appDir = "weathermood"

// Duration is a time.Duration read from strings like "30m" in TOML and env
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the full program configuration
type Config struct {
	Display DisplayConfig     `toml:"display"`
	Weather WeatherConfig     `toml:"weather"`
	Audio   AudioConfig       `toml:"audio"`
	Store   StoreConfig       `toml:"store"`
	Log     LogConfig         `toml:"log"`
	Keys    map[string]string `toml:"keys"`
}

// DisplayConfig sizes the logical surface and paces frames
type DisplayConfig struct {
	FPS int `toml:"fps" env:"WEATHERMOOD_FPS"`
	// CellWidth and CellHeight are logical pixels per terminal cell
	CellWidth     float64 `toml:"cell_width" env:"WEATHERMOOD_CELL_WIDTH"`
	CellHeight    float64 `toml:"cell_height" env:"WEATHERMOOD_CELL_HEIGHT"`
	PointerRadius float64 `toml:"pointer_radius" env:"WEATHERMOOD_POINTER_RADIUS"`
	ShowHUD       bool    `toml:"show_hud" env:"WEATHERMOOD_SHOW_HUD"`
}

// WeatherConfig selects the data source and refresh cadence
type WeatherConfig struct {
	Initial         string         `toml:"initial" env:"WEATHERMOOD_WEATHER"`
	APIKey          string         `toml:"api_key" env:"WEATHERMOOD_OWM_API_KEY"`
	BaseURL         string         `toml:"base_url" env:"WEATHERMOOD_OWM_BASE_URL"`
	Units           string         `toml:"units" env:"WEATHERMOOD_OWM_UNITS"`
	Timeout         Duration       `toml:"timeout" env:"WEATHERMOOD_OWM_TIMEOUT"`
	MaxTries        uint           `toml:"max_tries" env:"WEATHERMOOD_OWM_MAX_TRIES"`
	RefreshInterval Duration       `toml:"refresh_interval" env:"WEATHERMOOD_REFRESH_INTERVAL"`
	Location        LocationConfig `toml:"location"`
}

// LocationConfig is the place the dashboard reports on
type LocationConfig struct {
	Name    string  `toml:"name" env:"WEATHERMOOD_LOCATION_NAME"`
	Country string  `toml:"country" env:"WEATHERMOOD_LOCATION_COUNTRY"`
	Lat     float64 `toml:"lat" env:"WEATHERMOOD_LAT"`
	Lon     float64 `toml:"lon" env:"WEATHERMOOD_LON"`
}

// AudioConfig mirrors audio.AudioConfig for decoding
type AudioConfig struct {
	Enabled      bool    `toml:"enabled" env:"WEATHERMOOD_AUDIO"`
	MasterVolume float64 `toml:"master_volume" env:"WEATHERMOOD_VOLUME"`
	AccentVolume float64 `toml:"accent_volume" env:"WEATHERMOOD_ACCENT_VOLUME"`
	SampleRate   int     `toml:"sample_rate" env:"WEATHERMOOD_SAMPLE_RATE"`
}

// StoreConfig locates the SQLite cache
type StoreConfig struct {
	Enabled bool   `toml:"enabled" env:"WEATHERMOOD_STORE"`
	Path    string `toml:"path" env:"WEATHERMOOD_STORE_PATH"`
}

// LogConfig toggles the debug log file
type LogConfig struct {
	Debug bool `toml:"debug" env:"WEATHERMOOD_DEBUG"`
}

// Default returns the built-in configuration
func Default() Config {
	a := audio.DefaultAudioConfig()
	return Config{
		Display: DisplayConfig{
			FPS:           60,
			CellWidth:     8,
			CellHeight:    16,
			PointerRadius: 120,
			ShowHUD:       true,
		},
		Weather: WeatherConfig{
			Initial:         weather.KindSunny.String(),
			BaseURL:         owm.DefaultBaseURL,
			Units:           "metric",
			Timeout:         Duration{10 * time.Second},
			MaxTries:        3,
			RefreshInterval: Duration{30 * time.Minute},
			Location:        LocationConfig{Name: "Greenwich", Country: "GB", Lat: 51.4779, Lon: -0.0015},
		},
		Audio: AudioConfig{
			Enabled:      a.Enabled,
			MasterVolume: a.MasterVolume,
			AccentVolume: a.AccentVolume,
			SampleRate:   a.SampleRate,
		},
		Store: StoreConfig{
			Enabled: true,
			Path:    defaultStorePath(),
		},
		Keys: map[string]string{},
	}
}

// DefaultPath returns ~/.config/weathermood/config.toml or the platform equivalent
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", appDir+".toml")
	}
	return filepath.Join(dir, appDir, "config.toml")
}

func defaultStorePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".", appDir+".db")
	}
	return filepath.Join(dir, appDir, appDir+".db")
}

// Load reads path (DefaultPath when empty) over the defaults, applies
// environment overrides and validates; a missing file is not an error
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("config: %s not found, using defaults", path)
	case err != nil:
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	default:
		for _, key := range md.Undecoded() {
			log.Printf("config: unknown key %q in %s", key.String(), path)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes cfg as TOML
func Write(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return nil
}

// Validate reports the first out-of-range setting wrapped in ErrInvalid
func (c Config) Validate() error {
	if c.Display.FPS < 1 || c.Display.FPS > 240 {
		return fmt.Errorf("%w: display.fps %d outside 1-240", ErrInvalid, c.Display.FPS)
	}
	if c.Display.CellWidth <= 0 || c.Display.CellHeight <= 0 {
		return fmt.Errorf("%w: display cell size %gx%g must be positive", ErrInvalid, c.Display.CellWidth, c.Display.CellHeight)
	}
	if c.Display.PointerRadius <= 0 {
		return fmt.Errorf("%w: display.pointer_radius %g must be positive", ErrInvalid, c.Display.PointerRadius)
	}
	if _, ok := weather.ParseKind(c.Weather.Initial); !ok {
		return fmt.Errorf("%w: weather.initial %q is not one of %v", ErrInvalid, c.Weather.Initial, weather.Kinds())
	}
	if c.Weather.RefreshInterval.Duration <= 0 {
		return fmt.Errorf("%w: weather.refresh_interval must be positive", ErrInvalid)
	}
	if c.Weather.Location.Lat < -90 || c.Weather.Location.Lat > 90 ||
		c.Weather.Location.Lon < -180 || c.Weather.Location.Lon > 180 {
		return fmt.Errorf("%w: weather.location %g,%g out of range", ErrInvalid, c.Weather.Location.Lat, c.Weather.Location.Lon)
	}
	for name, v := range map[string]float64{
		"audio.master_volume": c.Audio.MasterVolume,
		"audio.accent_volume": c.Audio.AccentVolume,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s %g outside 0-1", ErrInvalid, name, v)
		}
	}
	return nil
}

// InitialKind returns the validated starting weather
func (c Config) InitialKind() weather.Kind {
	k, _ := weather.ParseKind(c.Weather.Initial)
	return k
}

// AudioSettings converts to the audio package's config
func (c Config) AudioSettings() audio.AudioConfig {
	return audio.AudioConfig{
		Enabled:      c.Audio.Enabled,
		MasterVolume: c.Audio.MasterVolume,
		AccentVolume: c.Audio.AccentVolume,
		SampleRate:   c.Audio.SampleRate,
	}
}

// OWM converts to the OpenWeatherMap client config
func (c Config) OWM() owm.Config {
	return owm.Config{
		APIKey:   c.Weather.APIKey,
		BaseURL:  c.Weather.BaseURL,
		Units:    c.Weather.Units,
		Timeout:  c.Weather.Timeout.Duration,
		MaxTries: c.Weather.MaxTries,
	}
}

// Location converts to the weather domain location
func (c Config) Location() weather.Location {
	l := c.Weather.Location
	return weather.Location{Name: l.Name, Country: l.Country, Lat: l.Lat, Lon: l.Lon}
}
