// Package particle implements the weather particle field: a bounded set of
// particles advanced once per frame under a weather-dependent motion profile
// and drawn onto an injected surface.
//
// The engine is single-writer: Tick, SetWeather, pointer and viewport
// notifications are serialized by one mutex, so event sources may deliver
// from their own goroutines.
//
// Timing is fixed-cadence: every tick advances motion by one frame regardless
// of wall-clock time, matching a display-synchronized callback.
package particle
