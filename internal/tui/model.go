// Package tui provides the Bubble Tea trainer interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keydrill/keydrill/internal/engine"
	"github.com/keydrill/keydrill/internal/history"
	"github.com/keydrill/keydrill/internal/model"
	"github.com/keydrill/keydrill/internal/stats"
)

type page int

const (
	pageTraining page = iota
	pageSettings
	pageHistory
)

// tickMsg drives the 1 Hz engine tick. The sequence number invalidates
// ticks scheduled before a pause or stop.
type tickMsg struct{ seq int }

// Model implements the Bubble Tea trainer UI.
type Model struct {
	engine *engine.Engine
	store  *history.Store

	styles styleSet
	page   page

	width  int
	height int

	prog      progress.Model
	histTable table.Model

	settingIndex int
	tickSeq      int
}

// NewModel constructs the trainer UI model.
func NewModel(eng *engine.Engine, store *history.Store) *Model {
	m := &Model{
		engine: eng,
		store:  store,
		styles: newStyles(eng.Settings().DarkTheme),
		prog:   progress.New(progress.WithDefaultGradient()),
	}
	m.histTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "When", Width: 16},
			{Title: "Mode", Width: 9},
			{Title: "Difficulty", Width: 12},
			{Title: "Rounds", Width: 9},
			{Title: "Accuracy", Width: 9},
			{Title: "Speed", Width: 10},
		}),
		table.WithHeight(12),
	)
	m.refreshHistory()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) tickCmd() tea.Cmd {
	seq := m.tickSeq
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{seq: seq} })
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prog.Width = min(48, max(10, m.width-10))
		return m, nil
	case tickMsg:
		if msg.seq != m.tickSeq {
			return m, nil
		}
		if err := m.engine.Tick(context.Background()); err != nil {
			logErrf("failed to save session: %v\n", err)
		}
		if m.engine.Phase() == model.Running {
			return m, m.tickCmd()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	if msg.Type == tea.KeyCtrlC && !m.isCtrlCAnswer() {
		accept, err := m.engine.HandleCloseRequest(ctx)
		if err != nil {
			logErrf("failed to save session: %v\n", err)
		}
		if accept {
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.engine.Phase() {
	case model.Running:
		switch msg.Type {
		case tea.KeyEscape:
			if err := m.engine.Stop(ctx); err != nil {
				logErrf("failed to save session: %v\n", err)
			}
			m.tickSeq++
			return m, nil
		case tea.KeyCtrlP:
			m.engine.Pause()
			m.tickSeq++
			return m, nil
		}
		// The catalog never trains 'p', so it is free to mean pause.
		if msg.String() == "p" {
			m.engine.Pause()
			m.tickSeq++
			return m, nil
		}
		if ev, ok := keyEventFromMsg(msg); ok {
			if err := m.engine.HandleKey(ctx, ev); err != nil {
				logErrf("failed to save session: %v\n", err)
			}
			if m.engine.Phase() != model.Running {
				// Challenge target reached mid-key.
				m.tickSeq++
			}
		}
		return m, nil

	case model.Paused:
		if msg.String() == "p" {
			m.engine.Resume()
			m.tickSeq++
			return m, m.tickCmd()
		}
		switch msg.Type {
		case tea.KeySpace, tea.KeyCtrlP:
			m.engine.Resume()
			m.tickSeq++
			return m, m.tickCmd()
		case tea.KeyEscape:
			if err := m.engine.Stop(ctx); err != nil {
				logErrf("failed to save session: %v\n", err)
			}
			m.tickSeq++
			return m, nil
		}
		return m, nil
	}

	// Idle or stopped: navigation and page-local keys.
	switch m.page {
	case pageSettings:
		return m.updateSettings(msg)
	case pageHistory:
		return m.updateHistory(msg)
	default:
		return m.updateTrainingIdle(msg)
	}
}

// isCtrlCAnswer reports whether Ctrl+C is the expected answer right now, in
// which case it is forwarded as input instead of acting as a close request.
func (m *Model) isCtrlCAnswer() bool {
	if m.engine.Phase() != model.Running {
		return false
	}
	item, ok := m.engine.CurrentItem()
	return ok && item.Type == model.Combo &&
		item.Mods == model.ModCtrl && item.Key == model.KeyFromRune('c')
}

func (m *Model) updateTrainingIdle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s", "enter":
		m.engine.Start()
		m.tickSeq++
		return m, m.tickCmd()
	case "tab":
		m.page = pageSettings
		return m, nil
	case "h":
		m.refreshHistory()
		m.page = pageHistory
		m.histTable.Focus()
		return m, nil
	case "t":
		dark := !m.engine.Settings().DarkTheme
		m.engine.SetDarkTheme(dark)
		m.styles = newStyles(dark)
		return m, nil
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		if err := m.engine.ResetHistory(context.Background()); err != nil {
			logErrf("failed to clear history: %v\n", err)
		}
		m.refreshHistory()
		return m, nil
	case "tab":
		m.histTable.Blur()
		m.page = pageTraining
		return m, nil
	case "esc", "q":
		m.histTable.Blur()
		m.page = pageTraining
		return m, nil
	}
	var cmd tea.Cmd
	m.histTable, cmd = m.histTable.Update(msg)
	return m, cmd
}

func (m *Model) refreshHistory() {
	records := m.store.Records()
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, table.Row{
			r.Timestamp.Format("2006-01-02 15:04"),
			r.Mode.String(),
			r.Difficulty.String(),
			fmt.Sprintf("%d/%d", r.CorrectRounds, r.TotalRounds),
			fmt.Sprintf("%.1f%%", stats.RecordAccuracy(r)),
			fmt.Sprintf("%.1f/min", stats.RecordSpeed(r)),
		})
	}
	m.histTable.SetRows(rows)
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.page {
	case pageSettings:
		content = m.viewSettings()
	case pageHistory:
		content = m.viewHistory()
	default:
		content = m.viewTraining()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewTraining() string {
	st := m.styles
	settings := m.engine.Settings()

	header := st.header.Render("mode: "+settings.Mode.String()+" · "+settings.Difficulty.String()) +
		"   " + st.timer.Render(m.engine.TimerText())

	display := m.engine.CurrentDisplay()
	prompt := st.prompt.Render(display.Label)
	if display.SeqLen > 0 {
		prompt += "\n" + st.seqProgress.Render(fmt.Sprintf("(%d/%d)", display.SeqPos, display.SeqLen))
	}

	errLine := " "
	if msg := m.engine.ErrorMessage(); msg != "" {
		errLine = st.errText.Render(msg)
	}

	sections := []string{header, "", prompt, "", errLine, m.statsLine()}

	if frac, visible := m.engine.Progress(); visible {
		sections = append(sections, m.prog.ViewAs(frac))
	}
	if settings.ShowKeyboard {
		keys, mods := m.engine.HighlightedKeys()
		sections = append(sections, "", renderKeyboard(st, keys, mods))
	}
	sections = append(sections, "", st.footer.Render(m.footerHelp()))

	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

func (m *Model) statsLine() string {
	s := m.engine.SessionStats()
	if s.Zen {
		return m.styles.statsLine.Render("zen mode · just practice")
	}
	return m.styles.statsLine.Render(fmt.Sprintf(
		"done %d/%d · accuracy %.1f%% · speed %.1f/min",
		s.Done, s.Total, s.AccuracyPct, s.PerMinute))
}

func (m *Model) footerHelp() string {
	switch m.engine.Phase() {
	case model.Running:
		return "esc stop · p pause · ctrl+c close"
	case model.Paused:
		return "p/space resume · esc stop"
	default:
		return "s start · tab settings · h history · t theme · q quit"
	}
}

func (m *Model) viewHistory() string {
	st := m.styles
	summary := stats.Summarize(m.store.Records())
	header := st.timer.Render("History")
	line := st.summary.Render(fmt.Sprintf(
		"sessions %d · best speed %.1f/min · best accuracy %.1f%%",
		summary.Count, summary.BestSpeed, summary.BestAccuracy))
	footer := st.footer.Render("r clear history · esc back")
	return lipgloss.JoinVertical(lipgloss.Center, header, "", line, "", m.histTable.View(), "", footer)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
