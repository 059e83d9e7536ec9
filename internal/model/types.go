// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty selects which catalog items are eligible for training.
type Difficulty int

// Difficulty tiers. Custom filters by item type instead of tier.
const (
	Beginner Difficulty = iota
	Intermediate
	Advanced
	Custom
)

var difficultyNames = [...]string{"beginner", "intermediate", "advanced", "custom"}

// String returns the lowercase difficulty name.
func (d Difficulty) String() string {
	if d < 0 || int(d) >= len(difficultyNames) {
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// ParseDifficulty parses a difficulty name, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range difficultyNames {
		if s == name {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q (expected one of: %s)", s, strings.Join(difficultyNames[:], ", "))
}

// Mode selects the session termination rule.
type Mode int

// Training modes.
const (
	Endless Mode = iota
	Timed
	Challenge
	Zen
)

var modeNames = [...]string{"endless", "timed", "challenge", "zen"}

// String returns the lowercase mode name.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q (expected one of: %s)", s, strings.Join(modeNames[:], ", "))
}

// ItemType distinguishes how a training item is matched against input.
type ItemType int

// Training item types.
const (
	SingleKey ItemType = iota
	Combo
	SpecialKey
	Sequence
)

var itemTypeNames = [...]string{"single", "combo", "special", "sequence"}

// String returns the lowercase item type name.
func (t ItemType) String() string {
	if t < 0 || int(t) >= len(itemTypeNames) {
		return fmt.Sprintf("itemtype(%d)", int(t))
	}
	return itemTypeNames[t]
}

// Phase is the session controller state.
type Phase int

// Session phases. Stopped re-enters Running via Start.
const (
	Idle Phase = iota
	Running
	Paused
	Stopped
)

// TrainingItem is one drill unit. Immutable once built.
//
// SingleKey and Sequence items carry the full expected character string in
// Sequence (length 1 for SingleKey). Combo and SpecialKey items identify the
// physical key via Key plus, for combos, the exact required modifier mask.
type TrainingItem struct {
	Type          ItemType
	Label         string
	Sequence      string
	Key           Key
	Mods          Modifier
	MinDifficulty Difficulty
}

// SessionRecord summarizes one completed, non-Zen, non-empty session.
type SessionRecord struct {
	Timestamp       time.Time
	TotalRounds     int
	CorrectRounds   int
	DurationSeconds float64
	Difficulty      Difficulty
	Mode            Mode
}

// Settings holds the persisted, process-wide preferences.
type Settings struct {
	Difficulty       Difficulty
	Mode             Mode
	TimeLimitSeconds int
	TargetRounds     int
	DarkTheme        bool
	SoundEnabled     bool
	ShowKeyboard     bool

	CustomSingleKeys  bool
	CustomSpecialKeys bool
	CustomCombos      bool
	CustomSequences   bool
}

// DefaultSettings returns the out-of-the-box preferences.
func DefaultSettings() Settings {
	return Settings{
		Difficulty:        Intermediate,
		Mode:              Endless,
		TimeLimitSeconds:  60,
		TargetRounds:      50,
		DarkTheme:         true,
		SoundEnabled:      true,
		ShowKeyboard:      true,
		CustomSingleKeys:  true,
		CustomSpecialKeys: true,
		CustomCombos:      true,
		CustomSequences:   true,
	}
}

// TypeEnabled reports whether the given item type is enabled for Custom
// difficulty filtering.
func (s Settings) TypeEnabled(t ItemType) bool {
	switch t {
	case SingleKey:
		return s.CustomSingleKeys
	case SpecialKey:
		return s.CustomSpecialKeys
	case Combo:
		return s.CustomCombos
	case Sequence:
		return s.CustomSequences
	default:
		return false
	}
}
