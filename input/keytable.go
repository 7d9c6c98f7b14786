package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/weathermood/weather"
)

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Esc, Ctrl+*, function keys)
	SpecialKeys map[tcell.Key]Intent

	// Printable rune bindings
	Runes map[rune]Intent
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	kt := &KeyTable{
		SpecialKeys: map[tcell.Key]Intent{
			tcell.KeyEscape: {Type: IntentQuit},
			tcell.KeyCtrlC:  {Type: IntentQuit},
			tcell.KeyF5:     {Type: IntentRefresh},
		},
		Runes: map[rune]Intent{
			'q': {Type: IntentQuit},
			'w': {Type: IntentCycleWeather},
			'r': {Type: IntentRefresh},
			'h': {Type: IntentToggleHUD},
			'm': {Type: IntentToggleMute},
		},
	}
	for i, k := range weather.Kinds() {
		kt.Runes[rune('1'+i)] = Intent{Type: IntentSelectWeather, Kind: k}
	}
	return kt
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		SpecialKeys: maps.Clone(kt.SpecialKeys),
		Runes:       maps.Clone(kt.Runes),
	}
}

// Lookup resolves a key event; modified runes other than Shift never match
func (kt *KeyTable) Lookup(ev *tcell.EventKey) (Intent, bool) {
	if ev.Key() == tcell.KeyRune {
		if ev.Modifiers()&^tcell.ModShift != 0 {
			return Intent{}, false
		}
		i, ok := kt.Runes[ev.Rune()]
		return i, ok
	}
	i, ok := kt.SpecialKeys[ev.Key()]
	return i, ok
}
