package particle

import (
	"math"

	"github.com/lixenwraith/weathermood/render"
)

// draw renders p with its opacity applied, caller holds mu
func (f *Field) draw(p *Particle) {
	c := p.Color
	st := render.Stroke{Alpha: p.Opacity}
	if f.profile.Glow {
		st.Glow = GlowBlur
	}

	if f.profile.Rain {
		f.surface.StrokeLine(
			p.X, p.Y,
			p.X+p.SpeedX*StreakSpeedScale, p.Y+p.Size*StreakSizeScale,
			p.Size*StreakWidthScale, c, st,
		)
		return
	}
	f.surface.FillCircle(p.X, p.Y, p.Size, c, st)
}

// drawConnections links every pair closer than ConnectionRange and returns the line count
func (f *Field) drawConnections() int {
	lines := 0
	ps := f.particles
	for i := range ps {
		a := &ps[i]
		for j := i + 1; j < len(ps); j++ {
			b := &ps[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d >= ConnectionRange {
				continue
			}
			st := render.Stroke{Alpha: (1 - d/ConnectionRange) * ConnectionAlpha}
			f.surface.StrokeLine(a.X, a.Y, b.X, b.Y, ConnectionWidth, a.Color, st)
			lines++
		}
	}
	return lines
}
