package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keydrill/keydrill/internal/model"
)

type settingRow struct {
	name   string
	value  func(m *Model) string
	adjust func(m *Model, delta int)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

var baseSettingRows = []settingRow{
	{
		name:  "Difficulty",
		value: func(m *Model) string { return m.engine.Settings().Difficulty.String() },
		adjust: func(m *Model, delta int) {
			d := m.engine.Settings().Difficulty
			m.engine.SetDifficulty(cycleDifficulty(d, delta))
		},
	},
	{
		name:  "Mode",
		value: func(m *Model) string { return m.engine.Settings().Mode.String() },
		adjust: func(m *Model, delta int) {
			md := m.engine.Settings().Mode
			m.engine.SetMode(cycleMode(md, delta))
		},
	},
	{
		name:  "Time limit",
		value: func(m *Model) string { return fmt.Sprintf("%ds", m.engine.Settings().TimeLimitSeconds) },
		adjust: func(m *Model, delta int) {
			v := m.engine.Settings().TimeLimitSeconds + delta*10
			m.engine.SetTimeLimit(clampInt(v, 10, 600))
		},
	},
	{
		name:  "Target rounds",
		value: func(m *Model) string { return fmt.Sprintf("%d", m.engine.Settings().TargetRounds) },
		adjust: func(m *Model, delta int) {
			v := m.engine.Settings().TargetRounds + delta*5
			m.engine.SetTargetRounds(clampInt(v, 5, 500))
		},
	},
	{
		name:  "Sound",
		value: func(m *Model) string { return onOff(m.engine.Settings().SoundEnabled) },
		adjust: func(m *Model, _ int) {
			m.engine.SetSoundEnabled(!m.engine.Settings().SoundEnabled)
		},
	},
	{
		name:  "Keyboard",
		value: func(m *Model) string { return onOff(m.engine.Settings().ShowKeyboard) },
		adjust: func(m *Model, _ int) {
			m.engine.SetShowKeyboard(!m.engine.Settings().ShowKeyboard)
		},
	},
}

// customSettingRows are shown only when the Custom difficulty is selected.
var customSettingRows = []settingRow{
	customToggle("Single keys", model.SingleKey, func(s model.Settings) bool { return s.CustomSingleKeys }),
	customToggle("Special keys", model.SpecialKey, func(s model.Settings) bool { return s.CustomSpecialKeys }),
	customToggle("Combos", model.Combo, func(s model.Settings) bool { return s.CustomCombos }),
	customToggle("Sequences", model.Sequence, func(s model.Settings) bool { return s.CustomSequences }),
}

func customToggle(name string, t model.ItemType, get func(model.Settings) bool) settingRow {
	return settingRow{
		name:  name,
		value: func(m *Model) string { return onOff(get(m.engine.Settings())) },
		adjust: func(m *Model, _ int) {
			m.engine.SetCustomToggle(t, !get(m.engine.Settings()))
		},
	}
}

func (m *Model) settingRows() []settingRow {
	rows := baseSettingRows
	if m.engine.Settings().Difficulty == model.Custom {
		rows = append(rows[:len(rows):len(rows)], customSettingRows...)
	}
	return rows
}

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.settingRows()
	switch msg.String() {
	case "up", "k":
		if m.settingIndex > 0 {
			m.settingIndex--
		}
	case "down", "j":
		if m.settingIndex < len(rows)-1 {
			m.settingIndex++
		}
	case "left":
		rows[m.settingIndex].adjust(m, -1)
		m.clampSettingIndex()
	case "right", "enter", " ":
		rows[m.settingIndex].adjust(m, 1)
		m.clampSettingIndex()
	case "tab":
		m.refreshHistory()
		m.page = pageHistory
		m.histTable.Focus()
	case "esc", "q":
		m.page = pageTraining
	}
	return m, nil
}

// clampSettingIndex keeps the cursor valid when leaving the Custom
// difficulty hides the toggle rows.
func (m *Model) clampSettingIndex() {
	if n := len(m.settingRows()); m.settingIndex >= n {
		m.settingIndex = n - 1
	}
}

func cycleDifficulty(d model.Difficulty, delta int) model.Difficulty {
	n := int(model.Custom) + 1
	return model.Difficulty((int(d) + delta + n) % n)
}

func cycleMode(md model.Mode, delta int) model.Mode {
	n := int(model.Zen) + 1
	return model.Mode((int(md) + delta + n) % n)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m *Model) viewSettings() string {
	st := m.styles
	lines := []string{st.timer.Render("Settings"), ""}
	for i, row := range m.settingRows() {
		cursor := "  "
		if i == m.settingIndex {
			cursor = st.cursor.Render("> ")
		}
		lines = append(lines, fmt.Sprintf("%s%s %s",
			cursor,
			st.settingKey.Render(fmt.Sprintf("%-14s", row.name)),
			st.settingVal.Render(row.value(m))))
	}
	lines = append(lines, "", st.footer.Render("up/down select · left/right change · esc back"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
