package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/keydrill/keydrill/internal/model"
)

type fakeRecorder struct {
	records []model.SessionRecord
}

func (f *fakeRecorder) Append(_ context.Context, rec model.SessionRecord) error {
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeRecorder) Clear(_ context.Context) error {
	f.records = nil
	return nil
}

// fakeClock drives the engine's clock deterministically.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(t *testing.T, settings model.Settings) (*Engine, *fakeRecorder, *fakeClock) {
	t.Helper()
	rec := &fakeRecorder{}
	clock := &fakeClock{t: time.Unix(1000, 0)}
	e := New(settings, rec)
	e.now = clock.now
	return e, rec, clock
}

// pickLabel pins the engine's item selection to the pool item with the given
// label prefix.
func pickLabel(t *testing.T, e *Engine, prefix string) {
	t.Helper()
	for i, item := range e.pool {
		if strings.HasPrefix(item.Label, prefix) {
			idx := i
			e.pick = func(int) int { return idx }
			return
		}
	}
	t.Fatalf("no pool item with label prefix %q", prefix)
}

func TestChallengeStopsAtTarget(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Mode = model.Challenge
	settings.TargetRounds = 3
	e, rec, _ := newTestEngine(t, settings)
	pickLabel(t, e, "Q")

	e.Start()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if e.Phase() != model.Running {
			t.Fatalf("round %d: expected running, got %v", i, e.Phase())
		}
		if err := e.HandleKey(ctx, runeEvent('q')); err != nil {
			t.Fatalf("handle key: %v", err)
		}
	}

	if e.Phase() != model.Stopped {
		t.Fatalf("expected stopped after target, got %v", e.Phase())
	}
	if got := e.CurrentDisplay().Label; got != "Challenge complete!" {
		t.Fatalf("unexpected notice: %q", got)
	}
	if len(rec.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(rec.records))
	}
	r := rec.records[0]
	if r.TotalRounds != 3 || r.CorrectRounds != 3 {
		t.Fatalf("unexpected record counters: %+v", r)
	}
	if r.Mode != model.Challenge {
		t.Fatalf("unexpected record mode: %v", r.Mode)
	}
}

func TestTimedStopsWhenTimeRunsOut(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Mode = model.Timed
	settings.TimeLimitSeconds = 2
	e, rec, _ := newTestEngine(t, settings)
	pickLabel(t, e, "Q")

	e.Start()
	ctx := context.Background()
	if err := e.HandleKey(ctx, runeEvent('q')); err != nil {
		t.Fatalf("handle key: %v", err)
	}

	if err := e.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if e.Phase() != model.Running {
		t.Fatalf("expected still running after first tick, got %v", e.Phase())
	}
	if err := e.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if e.Phase() != model.Stopped {
		t.Fatalf("expected stopped after countdown, got %v", e.Phase())
	}
	if got := e.CurrentDisplay().Label; got != "Time's up!" {
		t.Fatalf("unexpected notice: %q", got)
	}
	if len(rec.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(rec.records))
	}
}

func TestTickIgnoredOutsideTimedRunning(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Mode = model.Endless
	e, rec, _ := newTestEngine(t, settings)

	e.Start()
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		if err := e.Tick(ctx); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
	if e.Phase() != model.Running {
		t.Fatalf("expected endless session to keep running, got %v", e.Phase())
	}
	if len(rec.records) != 0 {
		t.Fatalf("expected no records, got %d", len(rec.records))
	}
}

func TestPauseExcludedFromDuration(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Mode = model.Endless
	e, rec, clock := newTestEngine(t, settings)
	pickLabel(t, e, "Q")

	e.Start()
	ctx := context.Background()
	clock.advance(2 * time.Second)
	e.Pause()
	if e.Phase() != model.Paused {
		t.Fatalf("expected paused, got %v", e.Phase())
	}
	clock.advance(10 * time.Second)
	e.Resume()
	clock.advance(3 * time.Second)

	if err := e.HandleKey(ctx, runeEvent('q')); err != nil {
		t.Fatalf("handle key: %v", err)
	}
	if err := e.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	if len(rec.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(rec.records))
	}
	if got := rec.records[0].DurationSeconds; got != 5 {
		t.Fatalf("expected 5s duration excluding the pause, got %v", got)
	}
}

func TestKeysIgnoredWhilePaused(t *testing.T) {
	settings := model.DefaultSettings()
	e, _, _ := newTestEngine(t, settings)
	pickLabel(t, e, "Q")

	e.Start()
	e.Pause()
	if err := e.HandleKey(context.Background(), runeEvent('q')); err != nil {
		t.Fatalf("handle key: %v", err)
	}
	if got := e.SessionStats().Total; got != 0 {
		t.Fatalf("expected no attempts while paused, got %d", got)
	}
}

func TestZenSessionsNeverRecorded(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Mode = model.Zen
	e, rec, _ := newTestEngine(t, settings)
	pickLabel(t, e, "Q")

	e.Start()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := e.HandleKey(ctx, runeEvent('q')); err != nil {
			t.Fatalf("handle key: %v", err)
		}
	}
	if err := e.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if len(rec.records) != 0 {
		t.Fatalf("expected no records for zen mode, got %d", len(rec.records))
	}
	if !e.SessionStats().Zen {
		t.Fatalf("expected zen stats view")
	}
}

func TestEmptySessionNotRecorded(t *testing.T) {
	settings := model.DefaultSettings()
	e, rec, _ := newTestEngine(t, settings)

	e.Start()
	if err := e.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if len(rec.records) != 0 {
		t.Fatalf("expected no record for empty session, got %d", len(rec.records))
	}
}

func TestWrongKeyCountsAttempt(t *testing.T) {
	settings := model.DefaultSettings()
	e, _, _ := newTestEngine(t, settings)
	pickLabel(t, e, "Q")

	e.Start()
	ctx := context.Background()
	if err := e.HandleKey(ctx, runeEvent('x')); err != nil {
		t.Fatalf("handle key: %v", err)
	}
	if err := e.HandleKey(ctx, runeEvent('q')); err != nil {
		t.Fatalf("handle key: %v", err)
	}

	s := e.SessionStats()
	if s.Total != 2 || s.Done != 1 {
		t.Fatalf("expected 1/2, got %d/%d", s.Done, s.Total)
	}
	if s.AccuracyPct != 50 {
		t.Fatalf("expected 50%% accuracy, got %v", s.AccuracyPct)
	}
}

func TestCloseRequestMatchesAltF4(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Difficulty = model.Advanced
	e, _, _ := newTestEngine(t, settings)
	pickLabel(t, e, "Alt+F4")

	e.Start()
	ctx := context.Background()
	if !e.IsCurrentItemAltF4() {
		t.Fatalf("expected Alt+F4 as the active item")
	}
	proceed, err := e.HandleCloseRequest(ctx)
	if err != nil {
		t.Fatalf("close request: %v", err)
	}
	if proceed {
		t.Fatalf("expected close to be suppressed during training")
	}
	if s := e.SessionStats(); s.Done != 1 || s.Total != 1 {
		t.Fatalf("expected the close to count as a correct round, got %d/%d", s.Done, s.Total)
	}
}

func TestCloseRequestMatchesAltF4WhilePaused(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Difficulty = model.Advanced
	e, _, _ := newTestEngine(t, settings)
	pickLabel(t, e, "Alt+F4")

	e.Start()
	e.Pause()
	proceed, err := e.HandleCloseRequest(context.Background())
	if err != nil {
		t.Fatalf("close request: %v", err)
	}
	if proceed {
		t.Fatalf("expected close to be suppressed while paused")
	}
	if s := e.SessionStats(); s.Done != 1 || s.Total != 1 {
		t.Fatalf("expected the close to count as a correct round, got %d/%d", s.Done, s.Total)
	}
	if e.Phase() != model.Paused {
		t.Fatalf("expected to stay paused, got %v", e.Phase())
	}
	if e.ErrorMessage() != "" {
		t.Fatalf("unexpected warning: %q", e.ErrorMessage())
	}
}

func TestCloseRequestRejectedWhileTraining(t *testing.T) {
	settings := model.DefaultSettings()
	e, _, _ := newTestEngine(t, settings)
	pickLabel(t, e, "Q")

	e.Start()
	ctx := context.Background()
	proceed, err := e.HandleCloseRequest(ctx)
	if err != nil {
		t.Fatalf("close request: %v", err)
	}
	if proceed {
		t.Fatalf("expected close to be rejected")
	}
	if e.ErrorMessage() == "" {
		t.Fatalf("expected a warning message")
	}

	if err := e.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	proceed, err = e.HandleCloseRequest(ctx)
	if err != nil {
		t.Fatalf("close request: %v", err)
	}
	if !proceed {
		t.Fatalf("expected close to proceed once stopped")
	}
}

func TestResetHistoryClearsRecorder(t *testing.T) {
	settings := model.DefaultSettings()
	e, rec, _ := newTestEngine(t, settings)
	pickLabel(t, e, "Q")

	ctx := context.Background()
	e.Start()
	if err := e.HandleKey(ctx, runeEvent('q')); err != nil {
		t.Fatalf("handle key: %v", err)
	}
	if err := e.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if len(rec.records) != 1 {
		t.Fatalf("expected 1 record before reset, got %d", len(rec.records))
	}

	if err := e.ResetHistory(ctx); err != nil {
		t.Fatalf("reset history: %v", err)
	}
	if len(rec.records) != 0 {
		t.Fatalf("expected empty history after reset, got %d records", len(rec.records))
	}
}

func TestRestartResetsCounters(t *testing.T) {
	settings := model.DefaultSettings()
	e, _, _ := newTestEngine(t, settings)
	pickLabel(t, e, "Q")

	ctx := context.Background()
	e.Start()
	if err := e.HandleKey(ctx, runeEvent('q')); err != nil {
		t.Fatalf("handle key: %v", err)
	}
	if err := e.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	e.Start()
	if e.Phase() != model.Running {
		t.Fatalf("expected running after restart, got %v", e.Phase())
	}
	if s := e.SessionStats(); s.Total != 0 || s.Done != 0 {
		t.Fatalf("expected counters reset, got %d/%d", s.Done, s.Total)
	}
}
