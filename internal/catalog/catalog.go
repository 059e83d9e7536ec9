// Package catalog builds the fixed set of trainable items.
package catalog

import (
	"fmt"
	"strings"

	"github.com/keydrill/keydrill/internal/model"
)

func singleKey(ch rune, diff model.Difficulty) model.TrainingItem {
	s := strings.ToLower(string(ch))
	return model.TrainingItem{
		Type:          model.SingleKey,
		Label:         strings.ToUpper(s),
		Sequence:      s,
		MinDifficulty: diff,
	}
}

func sequence(seq string, diff model.Difficulty) model.TrainingItem {
	return model.TrainingItem{
		Type:          model.Sequence,
		Label:         strings.ToUpper(seq),
		Sequence:      strings.ToLower(seq),
		MinDifficulty: diff,
	}
}

func combo(mods model.Modifier, key model.Key, label string, diff model.Difficulty) model.TrainingItem {
	return model.TrainingItem{
		Type:          model.Combo,
		Label:         label,
		Key:           key,
		Mods:          mods,
		MinDifficulty: diff,
	}
}

func specialKey(key model.Key, label string, diff model.Difficulty) model.TrainingItem {
	return model.TrainingItem{
		Type:          model.SpecialKey,
		Label:         label,
		Key:           key,
		MinDifficulty: diff,
	}
}

// shiftDigitKeys maps Shift+digit combos to the shifted-symbol key identity.
// Real keyboard input reports Shift+1 as '!' rather than digit '1', so the
// combo must be keyed by the symbol to ever match.
var shiftDigitKeys = [...]struct {
	digit  rune
	symbol rune
}{
	{'1', '!'},
	{'2', '@'},
	{'3', '#'},
	{'4', '$'},
	{'5', '%'},
}

// All returns every trainable item. The result is deterministic and the
// same on every call.
func All() []model.TrainingItem {
	var items []model.TrainingItem

	// Single keys: left-hand base set, then the inner-column extension.
	for _, ch := range "12345qwertasdfgzxcvb" {
		items = append(items, singleKey(ch, model.Beginner))
	}
	for _, ch := range "67yhun" {
		items = append(items, singleKey(ch, model.Intermediate))
	}

	// Special keys.
	items = append(items,
		specialKey(model.KeySpace, "Space", model.Beginner),
		specialKey(model.KeyTab, "Tab", model.Intermediate),
		specialKey(model.KeyCapsLock, "Caps", model.Intermediate),
	)
	for i := 0; i < 8; i++ {
		diff := model.Intermediate
		if i >= 4 {
			diff = model.Advanced
		}
		items = append(items, specialKey(model.KeyF1+model.Key(i), fmt.Sprintf("F%d", i+1), diff))
	}

	// Ctrl+digit control groups.
	for i := 1; i <= 5; i++ {
		key := model.KeyFromRune(rune('0' + i))
		items = append(items, combo(model.ModCtrl, key, fmt.Sprintf("Ctrl+%d", i), model.Intermediate))
	}
	for i := 6; i <= 9; i++ {
		key := model.KeyFromRune(rune('0' + i))
		items = append(items, combo(model.ModCtrl, key, fmt.Sprintf("Ctrl+%d", i), model.Advanced))
	}
	items = append(items, combo(model.ModCtrl, model.KeyFromRune('0'), "Ctrl+0", model.Advanced))

	// Shift+digit combos, keyed by the shifted symbol.
	for _, sd := range shiftDigitKeys {
		label := fmt.Sprintf("Shift+%c", sd.digit)
		items = append(items, combo(model.ModShift, model.KeyFromRune(sd.symbol), label, model.Intermediate))
	}

	// Common Ctrl+letter combos.
	for _, ch := range "qwerasdfzxcv" {
		label := "Ctrl+" + strings.ToUpper(string(ch))
		items = append(items, combo(model.ModCtrl, model.KeyFromRune(ch), label, model.Intermediate))
	}

	// Shift+letter combos.
	for _, ch := range "qweras" {
		label := "Shift+" + strings.ToUpper(string(ch))
		items = append(items, combo(model.ModShift, model.KeyFromRune(ch), label, model.Advanced))
	}

	// Alt+F combos. Alt+F4 doubles as the close-request combo.
	for i := 0; i < 4; i++ {
		items = append(items, combo(model.ModAlt, model.KeyF1+model.Key(i), fmt.Sprintf("Alt+F%d", i+1), model.Advanced))
	}

	// Sequences.
	for _, seq := range []string{
		"1a", "2a", "3a",
		"1s", "2s", "3s",
		"1d", "2d", "3d",
		"1q", "2q", "3q",
	} {
		items = append(items, sequence(seq, model.Intermediate))
	}
	for _, seq := range []string{
		"1aa", "2aa", "3aa",
		"1ss", "2ss", "3ss",
		"1qqqq", "2ww", "3ee",
		"qwer", "asdf", "zxcv",
		"wasd", "1a2a", "1s2s",
		"4sd", "5vv", "1a2a3a",
		"qqqq", "aaaa", "ssss",
		"1234", "5432", "qwert",
		"asdfg", "zxcvb",
	} {
		items = append(items, sequence(seq, model.Advanced))
	}

	return items
}

// KeyDisplayName returns the virtual-keyboard cap for a key, or "" when the
// key has no cap on the left-hand layout.
func KeyDisplayName(key model.Key) string {
	switch key {
	case model.KeySpace:
		return "Space"
	case model.KeyTab:
		return "Tab"
	case model.KeyCapsLock:
		return "Caps"
	case model.KeyF1, model.KeyF2, model.KeyF3, model.KeyF4,
		model.KeyF5, model.KeyF6, model.KeyF7, model.KeyF8:
		return fmt.Sprintf("F%d", int(key-model.KeyF1)+1)
	}
	// Shifted digit symbols highlight the digit cap they live on.
	for _, sd := range shiftDigitKeys {
		if key == model.KeyFromRune(sd.symbol) {
			return string(sd.digit)
		}
	}
	if r := key.Rune(); r != 0 {
		return strings.ToUpper(string(r))
	}
	return ""
}
