package tui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keydrill/keydrill/internal/model"
)

// shiftedSymbols are the US-layout characters that imply a held Shift.
const shiftedSymbols = "!@#$%^&*()_+{}|:\"<>?~"

func isShiftedSymbol(r rune) bool {
	for _, s := range shiftedSymbols {
		if r == s {
			return true
		}
	}
	return false
}

// keyEventFromMsg translates a Bubble Tea key message into the engine's raw
// key event. Not every engine key is reachable from a terminal (CapsLock
// and Ctrl+digit never arrive as key input); those items stay matchable
// only in shells that can deliver them.
func keyEventFromMsg(msg tea.KeyMsg) (model.KeyEvent, bool) {
	var ev model.KeyEvent
	if msg.Alt {
		ev.Mods |= model.ModAlt
	}

	switch {
	case msg.Type == tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return ev, false
		}
		r := msg.Runes[0]
		switch {
		case unicode.IsUpper(r):
			ev.Mods |= model.ModShift
			ev.Key = model.KeyFromRune(unicode.ToLower(r))
		case isShiftedSymbol(r):
			ev.Mods |= model.ModShift
			ev.Key = model.KeyFromRune(r)
		default:
			ev.Key = model.KeyFromRune(r)
		}
		ev.Rune = r
		return ev, true

	case msg.Type == tea.KeySpace:
		ev.Key = model.KeySpace
		ev.Rune = ' '
		return ev, true

	case msg.Type == tea.KeyTab:
		ev.Key = model.KeyTab
		return ev, true

	default:
		if key, ok := fnKeys[msg.Type]; ok {
			ev.Key = key
			return ev, true
		}
		if r, ok := ctrlKeys[msg.Type]; ok {
			ev.Mods |= model.ModCtrl
			ev.Key = model.KeyFromRune(r)
			return ev, true
		}
	}

	return ev, false
}

var fnKeys = map[tea.KeyType]model.Key{
	tea.KeyF1: model.KeyF1,
	tea.KeyF2: model.KeyF2,
	tea.KeyF3: model.KeyF3,
	tea.KeyF4: model.KeyF4,
	tea.KeyF5: model.KeyF5,
	tea.KeyF6: model.KeyF6,
	tea.KeyF7: model.KeyF7,
	tea.KeyF8: model.KeyF8,
}

// ctrlKeys covers the Ctrl+letter combos the catalog trains. Ctrl+I/M are
// deliberately absent: terminals deliver them as Tab and Enter.
var ctrlKeys = map[tea.KeyType]rune{
	tea.KeyCtrlA: 'a',
	tea.KeyCtrlC: 'c',
	tea.KeyCtrlD: 'd',
	tea.KeyCtrlE: 'e',
	tea.KeyCtrlF: 'f',
	tea.KeyCtrlQ: 'q',
	tea.KeyCtrlR: 'r',
	tea.KeyCtrlS: 's',
	tea.KeyCtrlV: 'v',
	tea.KeyCtrlW: 'w',
	tea.KeyCtrlX: 'x',
	tea.KeyCtrlZ: 'z',
}
