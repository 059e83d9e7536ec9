// Package main provides the CLI entrypoint for keydrill.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/keydrill/keydrill/internal/config"
	"github.com/keydrill/keydrill/internal/engine"
	"github.com/keydrill/keydrill/internal/history"
	"github.com/keydrill/keydrill/internal/model"
	"github.com/keydrill/keydrill/internal/stats"
	"github.com/keydrill/keydrill/internal/tui"
)

var (
	trainDifficulty string
	trainMode       string
	trainTime       int
	trainRounds     int
	trainNoKeyboard bool

	historyLast int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keydrill",
		Short:         "TUI keyboard shortcut trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTrainCmd,
	}

	rootCmd.Flags().StringVar(&trainDifficulty, "difficulty", "", "difficulty tier (beginner, intermediate, advanced, custom)")
	rootCmd.Flags().StringVar(&trainMode, "mode", "", "training mode (endless, timed, challenge, zen)")
	rootCmd.Flags().IntVar(&trainTime, "time", 0, "time limit in seconds for timed mode")
	rootCmd.Flags().IntVar(&trainRounds, "rounds", 0, "target rounds for challenge mode")
	rootCmd.Flags().BoolVar(&trainNoKeyboard, "no-keyboard", false, "hide the virtual keyboard")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newResetCmd())

	return rootCmd
}

func runTrainCmd(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyTrainFlags(cmd, &settings); err != nil {
		return err
	}

	st, err := history.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	eng := engine.New(settings, st)
	program := tea.NewProgram(tui.NewModel(eng, st), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if err := config.SaveSettings(config.DefaultConfigPath(), eng.Settings()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// applyTrainFlags overlays explicitly set CLI flags on the loaded settings.
func applyTrainFlags(cmd *cobra.Command, settings *model.Settings) error {
	if cmd.Flags().Changed("difficulty") {
		d, err := model.ParseDifficulty(trainDifficulty)
		if err != nil {
			return err
		}
		settings.Difficulty = d
	}
	if cmd.Flags().Changed("mode") {
		m, err := model.ParseMode(trainMode)
		if err != nil {
			return err
		}
		settings.Mode = m
	}
	if cmd.Flags().Changed("time") {
		if trainTime <= 0 {
			return fmt.Errorf("--time must be greater than 0")
		}
		settings.TimeLimitSeconds = trainTime
	}
	if cmd.Flags().Changed("rounds") {
		if trainRounds <= 0 {
			return fmt.Errorf("--rounds must be greater than 0")
		}
		settings.TargetRounds = trainRounds
	}
	if cmd.Flags().Changed("no-keyboard") {
		settings.ShowKeyboard = !trainNoKeyboard
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show session history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N sessions")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := history.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	records := st.Records()
	if historyLast > 0 && historyLast < len(records) {
		records = records[:historyLast]
	}
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		if _, err := fmt.Fprintln(out, "No sessions recorded yet."); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	wide := true
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil && width < 80 {
			wide = false
		}
	}

	for _, r := range records {
		if wide {
			_, err = fmt.Fprintf(out, "%s  %-9s %-12s %4d/%-4d %6.1f%% %7.1f/min\n",
				r.Timestamp.Format("2006-01-02 15:04"),
				r.Mode, r.Difficulty,
				r.CorrectRounds, r.TotalRounds,
				stats.RecordAccuracy(r), stats.RecordSpeed(r))
		} else {
			_, err = fmt.Fprintf(out, "%s  %d/%d %.1f%%\n",
				r.Timestamp.Format("2006-01-02"),
				r.CorrectRounds, r.TotalRounds, stats.RecordAccuracy(r))
		}
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	summary := stats.Summarize(st.Records())
	if _, err := fmt.Fprintf(out, "\n%d sessions · best speed %.1f/min · best accuracy %.1f%%\n",
		summary.Count, summary.BestSpeed, summary.BestAccuracy); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear session history",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	st, err := history.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if err := st.Clear(context.Background()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "History cleared."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	defaults := model.DefaultSettings()
	return fmt.Sprintf(`# keydrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[settings]
# difficulty = %q       # beginner, intermediate, advanced, custom
# mode = %q                  # endless, timed, challenge, zen
# time-limit = %d                 # Timed mode limit in seconds
# target-rounds = %d             # Challenge mode target
# dark-theme = %t
# sound = %t
# keyboard = %t                # Show the virtual keyboard
# custom-single = %t           # Custom difficulty: single keys
# custom-special = %t          # Custom difficulty: special keys
# custom-combo = %t            # Custom difficulty: combos
# custom-sequence = %t         # Custom difficulty: sequences
`,
		defaults.Difficulty.String(),
		defaults.Mode.String(),
		defaults.TimeLimitSeconds,
		defaults.TargetRounds,
		defaults.DarkTheme,
		defaults.SoundEnabled,
		defaults.ShowKeyboard,
		defaults.CustomSingleKeys,
		defaults.CustomSpecialKeys,
		defaults.CustomCombos,
		defaults.CustomSequences,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
