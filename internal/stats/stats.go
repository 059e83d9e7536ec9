// Package stats computes session metrics.
package stats

import (
	"fmt"
	"time"

	"github.com/keydrill/keydrill/internal/model"
)

// Accuracy returns the percentage of correct rounds, 0 when no rounds were
// attempted.
func Accuracy(total, correct int) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(correct) / float64(total)
}

// PerMinute returns rounds per minute over the elapsed span. The span is
// clamped to one second so the first keystroke cannot produce an absurd
// rate. Throughput counts total attempts, not correct completions.
func PerMinute(total int, elapsed time.Duration) float64 {
	seconds := elapsed.Seconds()
	if seconds < 1 {
		seconds = 1
	}
	return 60 * float64(total) / seconds
}

// Clock formats a duration as mm:ss, clamping negatives to zero.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// RecordSpeed returns a record's rounds per minute, 0 when the duration is
// not positive.
func RecordSpeed(r model.SessionRecord) float64 {
	if r.DurationSeconds <= 0 {
		return 0
	}
	return 60 * float64(r.TotalRounds) / r.DurationSeconds
}

// RecordAccuracy returns a record's correct percentage, 0 when it has no
// rounds.
func RecordAccuracy(r model.SessionRecord) float64 {
	if r.TotalRounds <= 0 {
		return 0
	}
	return 100 * float64(r.CorrectRounds) / float64(r.TotalRounds)
}

// Summary aggregates history-wide bests. Bests are independent per-record
// maxima, not the metrics of a single best session.
type Summary struct {
	Count        int
	BestSpeed    float64
	BestAccuracy float64
}

// Summarize folds records into a Summary, skipping zero denominators.
func Summarize(records []model.SessionRecord) Summary {
	s := Summary{Count: len(records)}
	for _, r := range records {
		if r.DurationSeconds > 0 {
			if speed := RecordSpeed(r); speed > s.BestSpeed {
				s.BestSpeed = speed
			}
		}
		if r.TotalRounds > 0 {
			if acc := RecordAccuracy(r); acc > s.BestAccuracy {
				s.BestAccuracy = acc
			}
		}
	}
	return s
}
