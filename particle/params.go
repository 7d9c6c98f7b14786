package particle

// Motion and rendering constants, in logical pixels per frame where applicable
const (
	DefaultPointerRadius = 120.0

	// ConnectionRange is the maximum distance for a connection line
	ConnectionRange = 150.0
	// ConnectionAlpha is the alpha of a connection at zero distance
	ConnectionAlpha = 0.15
	ConnectionWidth = 0.5

	// WrapMargin lets ambient particles leave the surface before wrapping
	WrapMargin = 50.0
	// RecycleMargin is how far below the surface falling particles travel before
	// respawning, and how far above it they reappear
	RecycleMargin = 10.0

	// RelaxRate is the per-frame fraction of size error removed when not repelled
	RelaxRate = 0.05
	// RepelStrength scales the pointer push distance per frame
	RepelStrength = 2.0
	// InflateFactor scales size growth under full pointer force
	InflateFactor = 0.5

	// GlowBlur is the halo radius for glowing profiles
	GlowBlur = 15.0

	// AmbientSway is the oscillation amplitude added to ambient motion
	AmbientSway = 0.3
	// RainLateral bounds the lateral drift of rain streaks
	RainLateral = 0.3
	// SnowFallRatio scales sampled speed into snow fall speed
	SnowFallRatio = 0.5

	// StreakSpeedScale and StreakSizeScale shape a rain streak
	StreakSpeedScale = 2.0
	StreakSizeScale  = 5.0
	StreakWidthScale = 0.5

	opacityMin       = 0.3
	opacityRange     = 0.5
	angleSpeedMax    = 0.01
	wobbleMax        = 2.0
	wobbleSpeedMin   = 0.01
	wobbleSpeedRange = 0.02

	// repelEpsilon guards the direction normalization when the pointer sits on a particle
	repelEpsilon = 1e-9
)
