package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/weathermood/weather"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.InitialKind() != weather.KindSunny {
		t.Errorf("initial kind = %v, want sunny", cfg.InitialKind())
	}
	if cfg.Weather.RefreshInterval.Duration != 30*time.Minute {
		t.Errorf("refresh = %v, want 30m", cfg.Weather.RefreshInterval)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.FPS != 60 || cfg.Display.CellWidth != 8 || cfg.Display.CellHeight != 16 {
		t.Errorf("display = %+v, want defaults", cfg.Display)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
[display]
fps = 30

[weather]
initial = "snowy"
refresh_interval = "5m"

[weather.location]
name = "Oslo"
lat = 59.91
lon = 10.75

[audio]
enabled = false

[keys]
x = "quit"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.FPS != 30 {
		t.Errorf("fps = %d, want 30", cfg.Display.FPS)
	}
	if cfg.Display.CellWidth != 8 {
		t.Errorf("unset cell_width = %g, want default 8", cfg.Display.CellWidth)
	}
	if cfg.InitialKind() != weather.KindSnowy {
		t.Errorf("initial = %v, want snowy", cfg.InitialKind())
	}
	if cfg.Weather.RefreshInterval.Duration != 5*time.Minute {
		t.Errorf("refresh = %v, want 5m", cfg.Weather.RefreshInterval)
	}
	if loc := cfg.Location(); loc.Name != "Oslo" || loc.Lat != 59.91 {
		t.Errorf("location = %+v", loc)
	}
	if cfg.AudioSettings().Enabled {
		t.Error("audio should be disabled")
	}
	if cfg.Keys["x"] != "quit" {
		t.Errorf("keys = %v", cfg.Keys)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "[display]\nfps = 30\n")
	t.Setenv("WEATHERMOOD_FPS", "90")
	t.Setenv("WEATHERMOOD_OWM_API_KEY", "secret")
	t.Setenv("WEATHERMOOD_REFRESH_INTERVAL", "90s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.FPS != 90 {
		t.Errorf("fps = %d, want env value 90", cfg.Display.FPS)
	}
	if got := cfg.OWM(); got.APIKey != "secret" || got.MaxTries != 3 {
		t.Errorf("owm config = %+v", got)
	}
	if cfg.Weather.RefreshInterval.Duration != 90*time.Second {
		t.Errorf("refresh = %v, want 90s", cfg.Weather.RefreshInterval)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeFile(t, "[display\nfps = ")
	if _, err := Load(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"fps zero", func(c *Config) { c.Display.FPS = 0 }},
		{"fps too high", func(c *Config) { c.Display.FPS = 241 }},
		{"cell width", func(c *Config) { c.Display.CellWidth = 0 }},
		{"cell height", func(c *Config) { c.Display.CellHeight = -1 }},
		{"pointer radius", func(c *Config) { c.Display.PointerRadius = 0 }},
		{"unknown weather", func(c *Config) { c.Weather.Initial = "foggy" }},
		{"refresh", func(c *Config) { c.Weather.RefreshInterval.Duration = 0 }},
		{"latitude", func(c *Config) { c.Weather.Location.Lat = 91 }},
		{"master volume", func(c *Config) { c.Audio.MasterVolume = 1.5 }},
		{"accent volume", func(c *Config) { c.Audio.AccentVolume = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}

	cfg := Default()
	cfg.Display.FPS = 240
	cfg.Audio.MasterVolume = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("boundary values rejected: %v", err)
	}
}

func TestWriteRoundTrips(t *testing.T) {
	cfg := Default()
	cfg.Weather.Initial = "rainy"
	var buf bytes.Buffer
	if err := Write(&buf, cfg); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), `refresh_interval = "30m0s"`) {
		t.Errorf("encoded durations as %q", buf.String())
	}

	path := writeFile(t, buf.String())
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if got.InitialKind() != weather.KindRainy || got.Display != cfg.Display {
		t.Errorf("round trip = %+v", got)
	}
}
