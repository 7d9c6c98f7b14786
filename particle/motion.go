package particle

import "math"

// update advances p by one frame on a w x h surface, caller holds mu
func (f *Field) update(p *Particle, w, h float64) {
	prof := &f.profile
	p.Angle += p.AngleSpeed

	switch {
	case prof.Snow:
		p.X += math.Sin(p.Angle)*p.Wobble + p.SpeedX
		p.Y += p.SpeedY
	case prof.Rain:
		p.X += p.SpeedX
		p.Y += p.SpeedY
	default:
		p.X += p.SpeedX + math.Sin(p.Angle)*AmbientSway
		p.Y += p.SpeedY + math.Cos(p.Angle)*AmbientSway
	}

	if !prof.Rain {
		f.interact(p)
	}

	if prof.Falling() {
		if p.Y > h+RecycleMargin {
			p.Y = -RecycleMargin
			p.X = f.rng.Float64() * w
		}
		return
	}
	p.X = wrap(p.X, w)
	p.Y = wrap(p.Y, h)
}

// interact applies pointer repulsion or relaxes size toward BaseSize
func (f *Field) interact(p *Particle) {
	ptr := f.pointer
	if ptr.Present {
		dx := p.X - ptr.X
		dy := p.Y - ptr.Y
		d := math.Hypot(dx, dy)
		if d < ptr.Radius {
			force := (ptr.Radius - d) / ptr.Radius
			// Direction is undefined on top of the pointer, inflate only
			if d >= repelEpsilon {
				p.X += dx / d * force * RepelStrength
				p.Y += dy / d * force * RepelStrength
			}
			p.Size = p.BaseSize * (1 + force*InflateFactor)
			return
		}
	}
	p.Size += (p.BaseSize - p.Size) * RelaxRate
}

// wrap moves v to the opposite edge once it passes the margin around [0, extent]
func wrap(v, extent float64) float64 {
	switch {
	case v < -WrapMargin:
		return extent + WrapMargin
	case v > extent+WrapMargin:
		return -WrapMargin
	}
	return v
}
