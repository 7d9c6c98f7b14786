package weather

// Activity is a suggestion shown alongside the current weather
type Activity struct {
	Icon   string
	Name   string
	Reason string
	Tag    string
}

// Entry describes the presentation of one weather kind
type Entry struct {
	Icon       string
	Condition  string
	Activities []Activity
	// ProdBoost is added to the productivity base score
	ProdBoost int
	MoodHint  string
}

const productivityBase = 60

var catalog = [kindCount]Entry{
	KindSunny: {
		Icon:      "☀",
		Condition: "Clear Sky",
		Activities: []Activity{
			{"🏃", "Go for a run", "Perfect weather for outdoor exercise", "fitness"},
			{"🌳", "Park walk", "Enjoy the sunshine and fresh air", "outdoor"},
			{"📸", "Photography", "Great natural lighting conditions", "creative"},
			{"🧘", "Outdoor yoga", "Warm and calm conditions", "wellness"},
			{"🚴", "Cycling", "Clear roads and good visibility", "fitness"},
			{"🏖", "Beach time", "Sunny and warm, hit the beach", "leisure"},
		},
		ProdBoost: 15,
		MoodHint:  "Sunny days boost serotonin. Great day to tackle challenging tasks!",
	},
	KindCloudy: {
		Icon:      "⛅",
		Condition: "Partly Cloudy",
		Activities: []Activity{
			{"📚", "Read a book", "Soft light, perfect for reading", "learning"},
			{"☕", "Coffee & planning", "Cozy atmosphere for deep thinking", "productivity"},
			{"🎨", "Art & creativity", "Overcast skies inspire creativity", "creative"},
			{"🚶", "Gentle walk", "Comfortable temperature for walking", "outdoor"},
			{"🎵", "Music session", "Great vibe for playing or listening", "leisure"},
			{"📝", "Journaling", "Reflective weather for introspection", "wellness"},
		},
		ProdBoost: 10,
		MoodHint:  "Cloudy days are great for focused, creative work. Less screen glare too!",
	},
	KindRainy: {
		Icon:      "🌧",
		Condition: "Rainy",
		Activities: []Activity{
			{"💻", "Deep work session", "Rain creates perfect focus ambiance", "productivity"},
			{"🎮", "Indoor gaming", "Stay cozy and entertained", "leisure"},
			{"🍳", "Cook a meal", "Perfect day for comfort food", "self-care"},
			{"📚", "Online course", "Great day to learn something new", "learning"},
			{"🎬", "Movie marathon", "Rainy day classic activity", "leisure"},
			{"🧹", "Organize space", "Productive indoor activity", "productivity"},
		},
		ProdBoost: 20,
		MoodHint:  "Rain sound is nature's white noise. Perfect for deep concentration!",
	},
	KindStormy: {
		Icon:      "⛈",
		Condition: "Thunderstorm",
		Activities: []Activity{
			{"🛡", "Stay safe indoors", "Safety first during storms", "safety"},
			{"📖", "Deep reading", "Storm sounds enhance focus", "learning"},
			{"🧘", "Meditation", "Find calm within the storm", "wellness"},
			{"✍", "Creative writing", "Storms inspire dramatic writing", "creative"},
			{"🏋", "Home workout", "Burn energy without going out", "fitness"},
			{"📱", "Catch up with friends", "Connect while staying in", "social"},
		},
		ProdBoost: 5,
		MoodHint:  "Storms can be cozy. Embrace the dramatic atmosphere for creative work!",
	},
	KindSnowy: {
		Icon:      "🌨",
		Condition: "Snowy",
		Activities: []Activity{
			{"⛷", "Winter sports", "Fresh snow on the ground!", "fitness"},
			{"☕", "Hot chocolate time", "Warm up with a cozy drink", "self-care"},
			{"📸", "Snow photography", "Beautiful winter landscapes", "creative"},
			{"🎯", "Goal planning", "Quiet winter day for reflection", "productivity"},
			{"🍲", "Make soup", "Warm comfort food for cold days", "self-care"},
			{"⛄", "Build a snowman", "Classic snow day activity", "leisure"},
		},
		ProdBoost: 8,
		MoodHint:  "Snow creates a magical atmosphere. Perfect for mindful activities!",
	},
}

// Lookup returns the catalog entry for k, sunny for invalid kinds
func Lookup(k Kind) Entry {
	if !k.Valid() {
		return catalog[KindSunny]
	}
	return catalog[k]
}

// ProductivityScore returns the weather-only productivity estimate, capped at 100
func ProductivityScore(k Kind) int {
	score := productivityBase + Lookup(k).ProdBoost
	if score > 100 {
		score = 100
	}
	return score
}
