// Package weather holds the weather domain: condition kinds, reports, the
// per-kind catalog and the provider that falls back from live data to cache
// to synthetic reports.
package weather

import "strings"

// Kind is the coarse weather category driving visuals and ambience
type Kind uint8

const (
	KindSunny Kind = iota
	KindCloudy
	KindRainy
	KindStormy
	KindSnowy

	kindCount
)

var kindNames = [kindCount]string{
	KindSunny:  "sunny",
	KindCloudy: "cloudy",
	KindRainy:  "rainy",
	KindStormy: "stormy",
	KindSnowy:  "snowy",
}

// Kinds returns all kinds in cycle order
func Kinds() []Kind {
	return []Kind{KindSunny, KindCloudy, KindRainy, KindStormy, KindSnowy}
}

// String returns the lowercase name, "sunny" for out-of-range values
func (k Kind) String() string {
	if k >= kindCount {
		return kindNames[KindSunny]
	}
	return kindNames[k]
}

// Valid reports whether k is one of the defined kinds
func (k Kind) Valid() bool {
	return k < kindCount
}

// Next returns the following kind in cycle order, wrapping after snowy
func (k Kind) Next() Kind {
	if !k.Valid() {
		return KindSunny
	}
	return (k + 1) % kindCount
}

// ParseKind resolves a weather name case-insensitively
// Unknown names resolve to KindSunny with ok=false
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return KindSunny, false
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, rejecting unknown names
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := ParseKind(string(text))
	if !ok {
		return &UnknownKindError{Name: string(text)}
	}
	*k = parsed
	return nil
}

// UnknownKindError reports a weather name outside the known set
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return "unknown weather kind " + `"` + e.Name + `"`
}
