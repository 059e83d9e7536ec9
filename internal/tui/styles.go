package tui

import "github.com/charmbracelet/lipgloss"

type styleSet struct {
	header       lipgloss.Style
	timer        lipgloss.Style
	prompt       lipgloss.Style
	seqProgress  lipgloss.Style
	errText      lipgloss.Style
	statsLine    lipgloss.Style
	footer       lipgloss.Style
	key          lipgloss.Style
	keyHighlight lipgloss.Style
	keyModifier  lipgloss.Style
	settingKey   lipgloss.Style
	settingVal   lipgloss.Style
	cursor       lipgloss.Style
	summary      lipgloss.Style
}

func newStyles(dark bool) styleSet {
	if dark {
		keyBase := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EAEAEA")).
			Background(lipgloss.Color("#16213E"))
		return styleSet{
			header:      lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
			timer:       lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true),
			prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true),
			seqProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
			errText:     lipgloss.NewStyle().Foreground(lipgloss.Color("#E94560")).Bold(true),
			statsLine:   lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")),
			footer:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
			key:         keyBase,
			keyHighlight: keyBase.
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#E94560")).
				Bold(true),
			keyModifier: keyBase.
				Foreground(lipgloss.Color("#00D9FF")).
				Background(lipgloss.Color("#0F3460")).
				Bold(true),
			settingKey: lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")),
			settingVal: lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true),
			cursor:     lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true),
			summary:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		}
	}
	keyBase := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#333333")).
		Background(lipgloss.Color("#E8E8E8"))
	return styleSet{
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		timer:       lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Bold(true),
		prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Bold(true),
		seqProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("#A06B00")),
		errText:     lipgloss.NewStyle().Foreground(lipgloss.Color("#D32F2F")).Bold(true),
		statsLine:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4D4D4D")),
		footer:      lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		key:         keyBase,
		keyHighlight: keyBase.
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#1976D2")).
			Bold(true),
		keyModifier: keyBase.
			Foreground(lipgloss.Color("#1976D2")).
			Background(lipgloss.Color("#E3F2FD")).
			Bold(true),
		settingKey: lipgloss.NewStyle().Foreground(lipgloss.Color("#4D4D4D")),
		settingVal: lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Bold(true),
		cursor:     lipgloss.NewStyle().Foreground(lipgloss.Color("#A06B00")).Bold(true),
		summary:    lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}
