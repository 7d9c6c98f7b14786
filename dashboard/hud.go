package dashboard

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/weathermood/render"
	"github.com/lixenwraith/weathermood/weather"
)

var (
	hudText  = render.RGB{R: 235, G: 235, B: 245}
	hudDim   = render.RGB{R: 150, G: 155, B: 175}
	hudLive  = render.RGB{R: 120, G: 220, B: 140}
	hudDemo  = render.RGB{R: 240, G: 190, B: 90}
	helpLine = "q quit  w theme  1-5 weather  r refresh  h hud  m mute"
)

// hudStats are the engine figures shown under the weather
type hudStats struct {
	FPS       float64
	Particles int64
	Muted     bool
}

// unitSymbol maps OpenWeatherMap units to a temperature suffix
func unitSymbol(units string) string {
	switch units {
	case "imperial":
		return "°F"
	case "standard":
		return "K"
	default:
		return "°C"
	}
}

// hudLines renders the overlay text, one entry per row
func hudLines(r weather.Report, days []weather.ForecastDay, units string, st hudStats) []string {
	lines := []string{
		fmt.Sprintf("%s %s", r.Icon, r.Condition),
		fmt.Sprintf("%d%s  %s", r.Temp, unitSymbol(units), sourceLabel(r.Live)),
	}
	if name := r.Location.Name; name != "" {
		if r.Location.Country != "" {
			name += ", " + r.Location.Country
		}
		lines = append(lines, name)
	}
	lines = append(lines, fmt.Sprintf("Productivity %d%%", weather.ProductivityScore(r.Kind)))
	if len(r.Activities) > 0 {
		a := r.Activities[0]
		lines = append(lines, fmt.Sprintf("%s %s", a.Icon, a.Name))
	}
	if len(days) > 0 {
		parts := make([]string, 0, len(days))
		for _, day := range days {
			parts = append(parts, fmt.Sprintf("%s %s %d/%d", day.Day, day.Icon, day.TempHigh, day.TempLow))
		}
		lines = append(lines, strings.Join(parts, "  "))
	}

	stats := fmt.Sprintf("%.0f fps  %d particles", st.FPS, st.Particles)
	if st.Muted {
		stats += "  muted"
	}
	return append(lines, stats)
}

func sourceLabel(live bool) string {
	if live {
		return "live"
	}
	return "demo"
}

// drawHUD writes the overlay into the canvas; caller holds the field lock
func (d *Dashboard) drawHUD() {
	d.mu.Lock()
	r := d.report
	days := d.forecast
	d.mu.Unlock()

	lines := hudLines(r, days, d.cfg.Weather.Units, hudStats{
		FPS:       d.statFPS.Get(),
		Particles: d.statParticles.Load(),
		Muted:     d.ambience.Muted(),
	})
	last := len(lines) - 1
	for i, line := range lines {
		color := hudText
		switch {
		case i == 1:
			color = hudDemo
			if r.Live {
				color = hudLive
			}
		case i == last:
			color = hudDim
		}
		d.canvas.DrawText(1, 1+i, line, color)
	}
	if rows := d.canvas.Rows(); rows > len(lines)+2 {
		d.canvas.DrawText(1, rows-1, helpLine, hudDim)
	}
}
