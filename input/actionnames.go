package input

import (
	"maps"
	"slices"

	"github.com/lixenwraith/weathermood/weather"
)

// actionRegistry maps canonical action names to intents
// Used by the keymap loader to resolve configured action strings
var actionRegistry = buildActionRegistry()

func buildActionRegistry() map[string]Intent {
	reg := map[string]Intent{
		// Unbind sentinel
		"none": {},

		"quit":          {Type: IntentQuit},
		"cycle_weather": {Type: IntentCycleWeather},
		"refresh":       {Type: IntentRefresh},
		"toggle_hud":    {Type: IntentToggleHUD},
		"toggle_mute":   {Type: IntentToggleMute},
	}
	for _, k := range weather.Kinds() {
		i := Intent{Type: IntentSelectWeather, Kind: k}
		reg[i.String()] = i
	}
	return reg
}

// ActionIntent resolves a canonical action name
func ActionIntent(name string) (Intent, bool) {
	i, ok := actionRegistry[name]
	return i, ok
}

// ActionNames returns all registered action names, sorted
func ActionNames() []string {
	return slices.Sorted(maps.Keys(actionRegistry))
}
