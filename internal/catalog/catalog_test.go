package catalog

import (
	"reflect"
	"strings"
	"testing"

	"github.com/keydrill/keydrill/internal/model"
)

func findByLabel(t *testing.T, items []model.TrainingItem, label string) model.TrainingItem {
	t.Helper()
	for _, item := range items {
		if item.Label == label {
			return item
		}
	}
	t.Fatalf("catalog has no item labelled %q", label)
	return model.TrainingItem{}
}

func TestAllIsDeterministic(t *testing.T) {
	first := All()
	second := All()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical catalogs across calls")
	}
	if len(first) == 0 {
		t.Fatalf("expected a non-empty catalog")
	}
}

func TestShiftDigitCombosUseSymbolKeys(t *testing.T) {
	items := All()
	cases := []struct {
		label  string
		symbol rune
	}{
		{"Shift+1", '!'},
		{"Shift+2", '@'},
		{"Shift+3", '#'},
		{"Shift+4", '$'},
		{"Shift+5", '%'},
	}
	for _, tc := range cases {
		item := findByLabel(t, items, tc.label)
		if item.Type != model.Combo {
			t.Fatalf("%s: expected a combo, got %v", tc.label, item.Type)
		}
		if item.Key != model.KeyFromRune(tc.symbol) {
			t.Fatalf("%s: expected key %q, got %v", tc.label, tc.symbol, item.Key)
		}
		if item.Mods != model.ModShift {
			t.Fatalf("%s: expected shift-only modifiers, got %v", tc.label, item.Mods)
		}
	}
}

func TestComboModifiersAreExact(t *testing.T) {
	items := All()
	for _, item := range items {
		if item.Type != model.Combo {
			continue
		}
		if item.Mods == 0 {
			t.Fatalf("combo %q has no modifiers", item.Label)
		}
		if item.Key == model.KeyNone {
			t.Fatalf("combo %q has no key", item.Label)
		}
	}
}

func TestSequenceCasing(t *testing.T) {
	for _, item := range All() {
		if item.Type != model.Sequence && item.Type != model.SingleKey {
			continue
		}
		if item.Sequence == "" {
			t.Fatalf("%q: expected a character sequence", item.Label)
		}
		if item.Sequence != strings.ToLower(item.Sequence) {
			t.Fatalf("%q: expected lowercase sequence, got %q", item.Label, item.Sequence)
		}
		if item.Label != strings.ToUpper(item.Sequence) {
			t.Fatalf("%q: label does not match sequence %q", item.Label, item.Sequence)
		}
	}
}

func TestTierMembership(t *testing.T) {
	items := All()
	if d := findByLabel(t, items, "Q").MinDifficulty; d != model.Beginner {
		t.Fatalf("Q: expected beginner, got %v", d)
	}
	if d := findByLabel(t, items, "Y").MinDifficulty; d != model.Intermediate {
		t.Fatalf("Y: expected intermediate, got %v", d)
	}
	if d := findByLabel(t, items, "Ctrl+6").MinDifficulty; d != model.Advanced {
		t.Fatalf("Ctrl+6: expected advanced, got %v", d)
	}
	if d := findByLabel(t, items, "Alt+F4").MinDifficulty; d != model.Advanced {
		t.Fatalf("Alt+F4: expected advanced, got %v", d)
	}
}

func TestKeyDisplayName(t *testing.T) {
	cases := []struct {
		key  model.Key
		want string
	}{
		{model.KeySpace, "Space"},
		{model.KeyTab, "Tab"},
		{model.KeyCapsLock, "Caps"},
		{model.KeyF3, "F3"},
		{model.KeyFromRune('q'), "Q"},
		{model.KeyFromRune('!'), "1"},
		{model.KeyFromRune('%'), "5"},
	}
	for _, tc := range cases {
		if got := KeyDisplayName(tc.key); got != tc.want {
			t.Fatalf("KeyDisplayName(%v) = %q, want %q", tc.key, got, tc.want)
		}
	}
}
