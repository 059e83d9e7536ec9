package engine

import (
	"fmt"
	"unicode"

	"github.com/keydrill/keydrill/internal/model"
)

// Outcome classifies what a key event did to the active item.
type Outcome int

// Matcher outcomes.
const (
	// OutcomeIgnored means the event was not an attempt (pure modifier,
	// unprintable input for a character item).
	OutcomeIgnored Outcome = iota
	// OutcomeProgress means a sequence advanced without completing.
	OutcomeProgress
	// OutcomeCorrect completes the item.
	OutcomeCorrect
	// OutcomeWrong is a failed attempt; the item stays active.
	OutcomeWrong
)

type matchResult struct {
	outcome Outcome
	seqPos  int
	errText string
}

// match validates one raw key event against the active item. Pure function:
// all state lives in the seqPos cursor passed in and returned.
func match(item model.TrainingItem, ev model.KeyEvent, seqPos int) matchResult {
	if ev.Key == model.KeyNone && ev.Rune == 0 {
		// Pure modifier press, never an attempt.
		return matchResult{outcome: OutcomeIgnored, seqPos: seqPos}
	}

	switch item.Type {
	case model.SingleKey:
		if ev.Rune == 0 || item.Sequence == "" {
			return matchResult{outcome: OutcomeIgnored, seqPos: seqPos}
		}
		got := unicode.ToLower(ev.Rune)
		expected := []rune(item.Sequence)[0]
		if got == expected {
			return matchResult{outcome: OutcomeCorrect}
		}
		return matchResult{
			outcome: OutcomeWrong,
			errText: fmt.Sprintf("wrong key: expected '%c', got '%c'", expected, got),
		}

	case model.Combo:
		if ev.Key == item.Key && ev.Mods.Canonical() == item.Mods.Canonical() {
			return matchResult{outcome: OutcomeCorrect}
		}
		return matchResult{
			outcome: OutcomeWrong,
			errText: fmt.Sprintf("wrong combo: press %s", item.Label),
		}

	case model.SpecialKey:
		if ev.Key == item.Key {
			return matchResult{outcome: OutcomeCorrect}
		}
		return matchResult{
			outcome: OutcomeWrong,
			errText: fmt.Sprintf("wrong key: press %s", item.Label),
		}

	case model.Sequence:
		if ev.Rune == 0 || item.Sequence == "" {
			return matchResult{outcome: OutcomeIgnored, seqPos: seqPos}
		}
		seq := []rune(item.Sequence)
		if seqPos < 0 || seqPos >= len(seq) {
			seqPos = 0
		}
		got := unicode.ToLower(ev.Rune)
		expected := seq[seqPos]
		if got != expected {
			// One failed attempt for the whole in-progress sequence.
			return matchResult{
				outcome: OutcomeWrong,
				seqPos:  0,
				errText: fmt.Sprintf("wrong key: expected '%c', got '%c'", expected, got),
			}
		}
		seqPos++
		if seqPos >= len(seq) {
			return matchResult{outcome: OutcomeCorrect}
		}
		return matchResult{outcome: OutcomeProgress, seqPos: seqPos}

	default:
		return matchResult{outcome: OutcomeIgnored, seqPos: seqPos}
	}
}
