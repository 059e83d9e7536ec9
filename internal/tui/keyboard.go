package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/keydrill/keydrill/internal/model"
)

// keyboardRows is the left-hand layout the trainer highlights.
var keyboardRows = [][]string{
	{"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8"},
	{"`", "1", "2", "3", "4", "5", "6"},
	{"Tab", "Q", "W", "E", "R", "T"},
	{"Caps", "A", "S", "D", "F", "G"},
	{"Shift", "Z", "X", "C", "V", "B"},
	{"Ctrl", "Alt", "Space"},
}

func capWidth(name string) int {
	switch name {
	case "Space":
		return 19
	case "Tab", "Caps", "Shift", "Ctrl", "Alt":
		return 6
	default:
		return 4
	}
}

// padCap centers a key label inside its cap, display-width aware.
func padCap(name string, width int) string {
	w := runewidth.StringWidth(name)
	if w >= width {
		return name
	}
	left := (width - w) / 2
	right := width - w - left
	return strings.Repeat(" ", left) + name + strings.Repeat(" ", right)
}

// renderKeyboard draws the virtual keyboard with the engine's highlighted
// target keys and active modifier caps.
func renderKeyboard(st styleSet, keys []string, mods model.Modifier) string {
	highlight := map[string]bool{}
	for _, k := range keys {
		if k != "" {
			highlight[k] = true
		}
	}
	modCaps := map[string]bool{
		"Ctrl":  mods.Has(model.ModCtrl),
		"Shift": mods.Has(model.ModShift),
		"Alt":   mods.Has(model.ModAlt),
	}

	rows := make([]string, 0, len(keyboardRows))
	for _, row := range keyboardRows {
		caps := make([]string, 0, len(row))
		for _, name := range row {
			style := st.key
			switch {
			case highlight[name]:
				style = st.keyHighlight
			case modCaps[name]:
				style = st.keyModifier
			}
			caps = append(caps, style.Render(padCap(name, capWidth(name))))
		}
		rows = append(rows, strings.Join(caps, " "))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
