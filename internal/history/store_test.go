package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/keydrill/keydrill/internal/model"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func testRecord(i int) model.SessionRecord {
	return model.SessionRecord{
		Timestamp:       time.Unix(int64(1000+i), 0).UTC(),
		TotalRounds:     i,
		CorrectRounds:   i,
		DurationSeconds: 30,
		Difficulty:      model.Intermediate,
		Mode:            model.Endless,
	}
}

func TestAppendCapsRecords(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "keydrill.db")
	st := openTestStore(t, dbPath)

	ctx := context.Background()
	for i := 1; i <= MaxRecords+1; i++ {
		if err := st.Append(ctx, testRecord(i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	records := st.Records()
	if len(records) != MaxRecords {
		t.Fatalf("expected %d records, got %d", MaxRecords, len(records))
	}
	if records[0].TotalRounds != MaxRecords+1 {
		t.Fatalf("expected newest record first, got %d", records[0].TotalRounds)
	}
	if records[len(records)-1].TotalRounds != 2 {
		t.Fatalf("expected the oldest record to be discarded, got %d", records[len(records)-1].TotalRounds)
	}
}

func TestRecordsSurviveReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "keydrill.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	ctx := context.Background()
	want := model.SessionRecord{
		Timestamp:       time.Unix(2000, 123456789).UTC(),
		TotalRounds:     12,
		CorrectRounds:   10,
		DurationSeconds: 45.5,
		Difficulty:      model.Advanced,
		Mode:            model.Challenge,
	}
	if err := st.Append(ctx, want); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	st = openTestStore(t, dbPath)
	records := st.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record after reopen, got %d", len(records))
	}
	got := records[0]
	if !got.Timestamp.Equal(want.Timestamp) {
		t.Fatalf("timestamp mismatch: got %v, want %v", got.Timestamp, want.Timestamp)
	}
	if got.TotalRounds != want.TotalRounds || got.CorrectRounds != want.CorrectRounds {
		t.Fatalf("counter mismatch: %+v", got)
	}
	if got.DurationSeconds != want.DurationSeconds {
		t.Fatalf("duration mismatch: got %v", got.DurationSeconds)
	}
	if got.Difficulty != want.Difficulty || got.Mode != want.Mode {
		t.Fatalf("enum mismatch: %+v", got)
	}
}

func TestClear(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "keydrill.db")
	st := openTestStore(t, dbPath)

	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		if err := st.Append(ctx, testRecord(i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if err := st.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := len(st.Records()); got != 0 {
		t.Fatalf("expected empty history, got %d records", got)
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "keydrill.db")
	st := openTestStore(t, dbPath)

	if err := st.Append(context.Background(), testRecord(1)); err != nil {
		t.Fatalf("append: %v", err)
	}
	records := st.Records()
	records[0].TotalRounds = 999
	if got := st.Records()[0].TotalRounds; got == 999 {
		t.Fatalf("expected Records to return a copy")
	}
}
