// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/keydrill/keydrill/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Settings SettingsConfig `toml:"settings"`
}

// SettingsConfig maps the persisted preferences. Pointer fields so absent
// keys keep their defaults.
type SettingsConfig struct {
	Difficulty     *string `toml:"difficulty"`
	Mode           *string `toml:"mode"`
	TimeLimit      *int    `toml:"time-limit"`
	TargetRounds   *int    `toml:"target-rounds"`
	DarkTheme      *bool   `toml:"dark-theme"`
	Sound          *bool   `toml:"sound"`
	Keyboard       *bool   `toml:"keyboard"`
	CustomSingle   *bool   `toml:"custom-single"`
	CustomSpecial  *bool   `toml:"custom-special"`
	CustomCombo    *bool   `toml:"custom-combo"`
	CustomSequence *bool   `toml:"custom-sequence"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// LoadSettings overlays the file config on top of the defaults.
func LoadSettings(path string) (model.Settings, error) {
	settings := model.DefaultSettings()
	cfg, err := LoadConfig(path)
	if err != nil {
		return settings, err
	}
	sc := cfg.Settings
	if sc.Difficulty != nil {
		d, err := model.ParseDifficulty(*sc.Difficulty)
		if err != nil {
			return settings, fmt.Errorf("invalid difficulty in config: %w", err)
		}
		settings.Difficulty = d
	}
	if sc.Mode != nil {
		m, err := model.ParseMode(*sc.Mode)
		if err != nil {
			return settings, fmt.Errorf("invalid mode in config: %w", err)
		}
		settings.Mode = m
	}
	if sc.TimeLimit != nil {
		if *sc.TimeLimit <= 0 {
			return settings, fmt.Errorf("invalid time-limit in config: must be greater than 0, got %d", *sc.TimeLimit)
		}
		settings.TimeLimitSeconds = *sc.TimeLimit
	}
	if sc.TargetRounds != nil {
		if *sc.TargetRounds <= 0 {
			return settings, fmt.Errorf("invalid target-rounds in config: must be greater than 0, got %d", *sc.TargetRounds)
		}
		settings.TargetRounds = *sc.TargetRounds
	}
	if sc.DarkTheme != nil {
		settings.DarkTheme = *sc.DarkTheme
	}
	if sc.Sound != nil {
		settings.SoundEnabled = *sc.Sound
	}
	if sc.Keyboard != nil {
		settings.ShowKeyboard = *sc.Keyboard
	}
	if sc.CustomSingle != nil {
		settings.CustomSingleKeys = *sc.CustomSingle
	}
	if sc.CustomSpecial != nil {
		settings.CustomSpecialKeys = *sc.CustomSpecial
	}
	if sc.CustomCombo != nil {
		settings.CustomCombos = *sc.CustomCombo
	}
	if sc.CustomSequence != nil {
		settings.CustomSequences = *sc.CustomSequence
	}
	return settings, nil
}

// SaveSettings writes the preferences back to the TOML file via a temp file
// plus rename.
func SaveSettings(path string, s model.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	diff := s.Difficulty.String()
	mode := s.Mode.String()
	cfg := FileConfig{Settings: SettingsConfig{
		Difficulty:     &diff,
		Mode:           &mode,
		TimeLimit:      &s.TimeLimitSeconds,
		TargetRounds:   &s.TargetRounds,
		DarkTheme:      &s.DarkTheme,
		Sound:          &s.SoundEnabled,
		Keyboard:       &s.ShowKeyboard,
		CustomSingle:   &s.CustomSingleKeys,
		CustomSpecial:  &s.CustomSpecialKeys,
		CustomCombo:    &s.CustomCombos,
		CustomSequence: &s.CustomSequences,
	}}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), "config-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := toml.NewEncoder(tmpFile).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
