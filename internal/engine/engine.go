// Package engine implements the training core: item pool, input matching,
// session lifecycle, and the display state the presentation renders.
package engine

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/keydrill/keydrill/internal/catalog"
	"github.com/keydrill/keydrill/internal/model"
	"github.com/keydrill/keydrill/internal/stats"
)

// Recorder owns the session log. *history.Store satisfies it.
type Recorder interface {
	Append(ctx context.Context, rec model.SessionRecord) error
	Clear(ctx context.Context) error
}

// Engine is the single-writer training state machine. It is not safe for
// concurrent use; the presentation must feed it one event at a time.
type Engine struct {
	catalog  []model.TrainingItem
	pool     []model.TrainingItem
	settings model.Settings
	recorder Recorder

	phase         model.Phase
	currentIndex  int
	seqPos        int
	roundsTotal   int
	roundsCorrect int
	remaining     int
	startedAt     time.Time
	frozenElapsed time.Duration
	errText       string
	notice        string

	// pick and now are injectable so tests can drive selection and the
	// clock deterministically.
	pick func(n int) int
	now  func() time.Time
}

// New builds an engine over the full catalog. recorder may be nil when no
// history should be kept.
func New(settings model.Settings, recorder Recorder) *Engine {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	e := &Engine{
		catalog:      catalog.All(),
		settings:     settings,
		recorder:     recorder,
		currentIndex: -1,
		pick:         rnd.Intn,
		now:          time.Now,
	}
	e.refilter()
	return e
}

// Settings returns a copy of the current preferences.
func (e *Engine) Settings() model.Settings {
	return e.settings
}

// Phase returns the session phase.
func (e *Engine) Phase() model.Phase {
	return e.phase
}

// Training reports whether a session is active (running or paused).
func (e *Engine) Training() bool {
	return e.phase == model.Running || e.phase == model.Paused
}

// SetDifficulty switches the difficulty tier and recomputes the pool.
func (e *Engine) SetDifficulty(d model.Difficulty) {
	e.settings.Difficulty = d
	e.refilter()
}

// SetCustomToggle enables or disables one item type for Custom difficulty.
func (e *Engine) SetCustomToggle(t model.ItemType, on bool) {
	switch t {
	case model.SingleKey:
		e.settings.CustomSingleKeys = on
	case model.SpecialKey:
		e.settings.CustomSpecialKeys = on
	case model.Combo:
		e.settings.CustomCombos = on
	case model.Sequence:
		e.settings.CustomSequences = on
	}
	e.refilter()
}

// SetMode switches the training mode.
func (e *Engine) SetMode(m model.Mode) { e.settings.Mode = m }

// SetTimeLimit sets the Timed-mode limit in seconds.
func (e *Engine) SetTimeLimit(seconds int) { e.settings.TimeLimitSeconds = seconds }

// SetTargetRounds sets the Challenge-mode target.
func (e *Engine) SetTargetRounds(n int) { e.settings.TargetRounds = n }

// SetDarkTheme flips the persisted theme flag.
func (e *Engine) SetDarkTheme(on bool) { e.settings.DarkTheme = on }

// SetSoundEnabled flips the persisted sound flag.
func (e *Engine) SetSoundEnabled(on bool) { e.settings.SoundEnabled = on }

// SetShowKeyboard flips the persisted keyboard visibility flag.
func (e *Engine) SetShowKeyboard(on bool) { e.settings.ShowKeyboard = on }

func (e *Engine) refilter() {
	e.pool = FilterPool(e.catalog, e.settings)
	if e.currentIndex >= len(e.pool) {
		e.currentIndex = -1
		e.seqPos = 0
	}
}

// Start begins a session from Idle or Stopped. No-op while training.
func (e *Engine) Start() {
	if e.Training() {
		return
	}
	e.refilter()
	e.roundsTotal = 0
	e.roundsCorrect = 0
	e.seqPos = 0
	e.frozenElapsed = 0
	e.errText = ""
	e.notice = ""
	e.remaining = 0
	if e.settings.Mode == model.Timed {
		e.remaining = e.settings.TimeLimitSeconds
	}
	e.startedAt = e.now()
	e.phase = model.Running
	e.nextItem()
}

// Stop ends the session and, for non-empty non-Zen sessions, hands a record
// to the recorder. No-op unless training.
func (e *Engine) Stop(ctx context.Context) error {
	if !e.Training() {
		return nil
	}
	e.frozenElapsed = e.elapsed()
	e.phase = model.Stopped
	e.errText = ""
	if e.notice == "" {
		e.notice = "Session ended"
	}
	if e.roundsTotal > 0 && e.settings.Mode != model.Zen && e.recorder != nil {
		rec := model.SessionRecord{
			Timestamp:       e.now(),
			TotalRounds:     e.roundsTotal,
			CorrectRounds:   e.roundsCorrect,
			DurationSeconds: e.frozenElapsed.Seconds(),
			Difficulty:      e.settings.Difficulty,
			Mode:            e.settings.Mode,
		}
		return e.recorder.Append(ctx, rec)
	}
	return nil
}

// Pause freezes the elapsed clock. No-op unless running.
func (e *Engine) Pause() {
	if e.phase != model.Running {
		return
	}
	e.frozenElapsed = e.elapsed()
	e.phase = model.Paused
}

// Resume restarts the elapsed clock from a fresh reference point, keeping
// the frozen accumulation as an offset. No-op unless paused.
func (e *Engine) Resume() {
	if e.phase != model.Paused {
		return
	}
	e.startedAt = e.now()
	e.phase = model.Running
}

// Tick advances the 1 Hz countdown. Only Timed mode terminates on it; the
// scheduler must not tick while paused.
func (e *Engine) Tick(ctx context.Context) error {
	if e.phase != model.Running || e.settings.Mode != model.Timed {
		return nil
	}
	if e.remaining > 0 {
		e.remaining--
	}
	if e.remaining <= 0 {
		e.notice = "Time's up!"
		return e.Stop(ctx)
	}
	return nil
}

// HandleKey validates one raw key event against the active item. Events are
// ignored unless the session is running.
func (e *Engine) HandleKey(ctx context.Context, ev model.KeyEvent) error {
	if e.phase != model.Running {
		return nil
	}
	if e.currentIndex < 0 || e.currentIndex >= len(e.pool) {
		return nil
	}
	item := e.pool[e.currentIndex]
	res := match(item, ev, e.seqPos)
	switch res.outcome {
	case OutcomeProgress:
		e.seqPos = res.seqPos
		e.errText = ""
	case OutcomeCorrect:
		e.roundsTotal++
		e.roundsCorrect++
		e.errText = ""
		e.nextItem()
		return e.checkChallenge(ctx)
	case OutcomeWrong:
		e.roundsTotal++
		e.seqPos = res.seqPos
		e.errText = res.errText
	}
	return nil
}

// HandleCloseRequest processes a window/terminal close signal. It returns
// true when the close should proceed. While training with the Alt+F4 combo
// active (running or paused) the signal counts as a successful match and the
// close is suppressed; any other in-training close is rejected with a
// warning.
func (e *Engine) HandleCloseRequest(ctx context.Context) (bool, error) {
	if !e.Training() {
		return true, nil
	}
	if e.IsCurrentItemAltF4() {
		e.roundsTotal++
		e.roundsCorrect++
		e.errText = ""
		e.nextItem()
		return false, e.checkChallenge(ctx)
	}
	e.errText = "cannot close while training; stop the session first"
	return false, nil
}

// IsCurrentItemAltF4 reports whether training is active with the Alt+F4
// combo as the current item.
func (e *Engine) IsCurrentItemAltF4() bool {
	if !e.Training() || e.currentIndex < 0 || e.currentIndex >= len(e.pool) {
		return false
	}
	item := e.pool[e.currentIndex]
	return item.Type == model.Combo && item.Key == model.KeyF4 && item.Mods.Has(model.ModAlt)
}

// ResetHistory clears the recorder's session log. No-op without a recorder.
func (e *Engine) ResetHistory(ctx context.Context) error {
	if e.recorder == nil {
		return nil
	}
	return e.recorder.Clear(ctx)
}

func (e *Engine) checkChallenge(ctx context.Context) error {
	if e.settings.Mode != model.Challenge {
		return nil
	}
	if e.settings.TargetRounds > 0 && e.roundsCorrect >= e.settings.TargetRounds {
		e.notice = "Challenge complete!"
		return e.Stop(ctx)
	}
	return nil
}

// nextItem picks a uniformly random item from the pool, with replacement.
func (e *Engine) nextItem() {
	if len(e.pool) == 0 {
		e.currentIndex = -1
		e.seqPos = 0
		return
	}
	e.currentIndex = e.pick(len(e.pool))
	e.seqPos = 0
}

func (e *Engine) elapsed() time.Duration {
	if e.phase == model.Running {
		return e.frozenElapsed + e.now().Sub(e.startedAt)
	}
	return e.frozenElapsed
}

// CurrentItem returns the active item, if any.
func (e *Engine) CurrentItem() (model.TrainingItem, bool) {
	if e.currentIndex < 0 || e.currentIndex >= len(e.pool) {
		return model.TrainingItem{}, false
	}
	return e.pool[e.currentIndex], true
}

// Display is the prompt state the presentation renders.
type Display struct {
	Label  string
	SeqPos int
	SeqLen int
}

// CurrentDisplay returns the prompt for the current phase. Sequence items
// carry their cursor so the shell can render progress.
func (e *Engine) CurrentDisplay() Display {
	switch e.phase {
	case model.Idle:
		return Display{Label: "Press s to start"}
	case model.Paused:
		return Display{Label: "Paused"}
	case model.Stopped:
		return Display{Label: e.notice}
	}
	item, ok := e.CurrentItem()
	if !ok {
		return Display{Label: "no training item"}
	}
	d := Display{Label: item.Label}
	if item.Type == model.Sequence {
		d.SeqPos = e.seqPos
		d.SeqLen = len(item.Sequence)
	}
	return d
}

// HighlightedKeys returns the virtual-keyboard caps to highlight for the
// active item plus the required modifier bits.
func (e *Engine) HighlightedKeys() ([]string, model.Modifier) {
	if e.phase != model.Running {
		return nil, 0
	}
	item, ok := e.CurrentItem()
	if !ok {
		return nil, 0
	}
	switch item.Type {
	case model.Sequence:
		seq := []rune(item.Sequence)
		pos := e.seqPos
		if pos < 0 || pos >= len(seq) {
			pos = 0
		}
		if len(seq) == 0 {
			return nil, 0
		}
		return []string{catalog.KeyDisplayName(model.KeyFromRune(seq[pos]))}, 0
	case model.Combo:
		return []string{catalog.KeyDisplayName(item.Key)}, item.Mods
	case model.SpecialKey:
		return []string{item.Label}, 0
	default:
		return []string{strings.ToUpper(item.Sequence)}, 0
	}
}

// ErrorMessage returns the current miss or warning text, empty when none.
func (e *Engine) ErrorMessage() string {
	return e.errText
}

// Stats is the live counter view for the stats line.
type Stats struct {
	Done        int
	Total       int
	AccuracyPct float64
	PerMinute   float64
	Zen         bool
}

// SessionStats derives the live stats from the running counters.
func (e *Engine) SessionStats() Stats {
	if e.settings.Mode == model.Zen {
		return Stats{Zen: true}
	}
	return Stats{
		Done:        e.roundsCorrect,
		Total:       e.roundsTotal,
		AccuracyPct: stats.Accuracy(e.roundsTotal, e.roundsCorrect),
		PerMinute:   stats.PerMinute(e.roundsTotal, e.elapsed()),
	}
}

// TimerText formats the clock: countdown for Timed mode, elapsed otherwise.
func (e *Engine) TimerText() string {
	if e.settings.Mode == model.Timed {
		secs := e.remaining
		if e.phase == model.Idle {
			secs = e.settings.TimeLimitSeconds
		}
		return stats.Clock(time.Duration(secs) * time.Second)
	}
	return stats.Clock(e.elapsed())
}

// Progress returns the progress-bar fraction and whether the bar is shown.
// Timed mode shows remaining/limit, Challenge shows correct/target.
func (e *Engine) Progress() (float64, bool) {
	if !e.Training() {
		return 0, false
	}
	switch e.settings.Mode {
	case model.Timed:
		if e.settings.TimeLimitSeconds <= 0 {
			return 0, false
		}
		return float64(e.remaining) / float64(e.settings.TimeLimitSeconds), true
	case model.Challenge:
		if e.settings.TargetRounds <= 0 {
			return 0, false
		}
		return float64(e.roundsCorrect) / float64(e.settings.TargetRounds), true
	default:
		return 0, false
	}
}
