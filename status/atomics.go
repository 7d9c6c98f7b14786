package status

import (
	"math"
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen caps stored string metrics in bytes
const MaxStringLen = 32

// AtomicFloat is a float64 stored as its IEEE bits; the zero value reads 0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(v float64) { f.bits.Store(math.Float64bits(v)) }

func (f *AtomicFloat) Get() float64 { return math.Float64frombits(f.bits.Load()) }

// Add applies delta with a CAS loop and returns the result
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		cur := f.bits.Load()
		next := math.Float64frombits(cur) + delta
		if f.bits.CompareAndSwap(cur, math.Float64bits(next)) {
			return next
		}
	}
}

// AtomicString holds a short label such as the active weather kind
type AtomicString struct {
	v atomic.Pointer[string]
}

// Store keeps at most MaxStringLen bytes, cut on a rune boundary
func (s *AtomicString) Store(v string) {
	if len(v) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(v[cut]) {
			cut--
		}
		v = v[:cut]
	}
	s.v.Store(&v)
}

func (s *AtomicString) Load() string {
	p := s.v.Load()
	if p == nil {
		return ""
	}
	return *p
}
