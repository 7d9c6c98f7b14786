package owm

import (
	"strings"

	"github.com/lixenwraith/weathermood/weather"
)

// MapConditionID maps an OpenWeatherMap condition code to a weather kind
// https://openweathermap.org/weather-conditions
func MapConditionID(id int) weather.Kind {
	switch {
	case id >= 200 && id < 300:
		return weather.KindStormy
	case id >= 300 && id < 400:
		return weather.KindRainy
	case id >= 500 && id < 600:
		return weather.KindRainy
	case id >= 600 && id < 700:
		return weather.KindSnowy
	case id >= 700 && id < 800:
		return weather.KindCloudy
	case id == 800:
		return weather.KindSunny
	default:
		return weather.KindCloudy
	}
}

// ConditionIcon picks a glyph for a condition code; iconCode is the API icon id
// whose "n" suffix marks night
func ConditionIcon(id int, iconCode string) string {
	night := strings.Contains(iconCode, "n")

	switch {
	case id >= 200 && id < 300:
		return "⛈"
	case id >= 300 && id < 400:
		return "🌧"
	case id >= 500 && id < 511:
		return "🌧"
	case id == 511:
		return "🌨"
	case id >= 520 && id < 600:
		return "🌧"
	case id >= 600 && id < 700:
		return "🌨"
	case id >= 700 && id < 800:
		return "🌫"
	case id == 800:
		if night {
			return "🌙"
		}
		return "☀"
	case id == 801:
		if night {
			return "🌙"
		}
		return "🌤"
	case id == 802:
		return "⛅"
	case id >= 803:
		return "☁"
	default:
		return "🌤"
	}
}
