// Package input maps terminal key events to dashboard intents through a
// rebindable key table.
package input

import "github.com/lixenwraith/weathermood/weather"

// IntentType discriminates dashboard actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit
	IntentCycleWeather  // advance to the next weather kind
	IntentSelectWeather // jump to Intent.Kind
	IntentRefresh       // fetch weather now
	IntentToggleHUD
	IntentToggleMute
)

var intentNames = [...]string{
	IntentNone:          "none",
	IntentQuit:          "quit",
	IntentCycleWeather:  "cycle_weather",
	IntentSelectWeather: "select_weather",
	IntentRefresh:       "refresh",
	IntentToggleHUD:     "toggle_hud",
	IntentToggleMute:    "toggle_mute",
}

func (t IntentType) String() string {
	if int(t) < len(intentNames) {
		return intentNames[t]
	}
	return "unknown"
}

// Intent is one resolved action; Kind is set only for IntentSelectWeather
type Intent struct {
	Type IntentType
	Kind weather.Kind
}

func (i Intent) String() string {
	if i.Type == IntentSelectWeather {
		return "weather_" + i.Kind.String()
	}
	return i.Type.String()
}
