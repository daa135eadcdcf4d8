// Package main provides the CLI entrypoint for sornpim.
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

	"github.com/siriwatk/sornpim/internal/config"
	"github.com/siriwatk/sornpim/internal/curriculum"
	"github.com/siriwatk/sornpim/internal/model"
	"github.com/siriwatk/sornpim/internal/progress"
	"github.com/siriwatk/sornpim/internal/stats"
	"github.com/siriwatk/sornpim/internal/store"
	"github.com/siriwatk/sornpim/internal/textseg"
	"github.com/siriwatk/sornpim/internal/tui"
)

const (
	defaultUser          = "guest"
	defaultRequiredPlays = 3
	defaultRequiredScore = 5
	defaultCurveWindow   = 10
)

var (
	playUser         string
	playLevel        string
	playCurriculum   string
	playMaxLineChars int

	levelsUser       string
	levelsCurriculum string

	statsUser        string
	statsLevel       string
	statsLast        int
	statsCurveWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sornpim",
		Short:         "Thai/English typing tutor",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playUser, "user", "", "player name (empty plays as guest with all levels open)")
	rootCmd.Flags().StringVar(&playLevel, "level", "", "level id to start directly")
	rootCmd.Flags().StringVar(&playCurriculum, "curriculum", "", "path to a curriculum TOML file")
	rootCmd.Flags().IntVar(&playMaxLineChars, "max-line-chars", 0, "max characters per typing line (0 uses default)")

	rootCmd.AddCommand(newLevelsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCurriculumCmd())

	return rootCmd
}

type runtimeSettings struct {
	user         string
	authed       bool
	maxLineChars int
	gateCfg      model.GateConfig
	curriculum   *curriculum.Curriculum
}

// loadSettings merges config file values with flags; explicit flags win.
func loadSettings(cmd *cobra.Command, user, curriculumPath string, maxLineChars int) (runtimeSettings, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return runtimeSettings{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "user", &user, fileCfg.Player.Name)
	applyIntConfig(cmd, "max-line-chars", &maxLineChars, fileCfg.Game.MaxLineChars)
	if maxLineChars < 0 {
		return runtimeSettings{}, fmt.Errorf("--max-line-chars must be >= 0")
	}

	gateCfg := model.GateConfig{
		RequiredPlays: defaultRequiredPlays,
		RequiredScore: defaultRequiredScore,
	}
	if fileCfg.Progression.RequiredPlays != nil {
		gateCfg.RequiredPlays = *fileCfg.Progression.RequiredPlays
	}
	if fileCfg.Progression.RequiredScore != nil {
		gateCfg.RequiredScore = *fileCfg.Progression.RequiredScore
	}

	if curriculumPath == "" {
		curriculumPath = config.DefaultCurriculumPath()
	}
	cur, err := curriculum.Load(curriculumPath)
	if err != nil {
		return runtimeSettings{}, fmt.Errorf("failed to load curriculum: %w", err)
	}

	authed := user != ""
	if user == "" {
		user = defaultUser
	}
	return runtimeSettings{
		user:         user,
		authed:       authed,
		maxLineChars: maxLineChars,
		gateCfg:      gateCfg,
		curriculum:   cur,
	}, nil
}

func openStore() (*store.Store, func(), error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	closer := func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	return st, closer, nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd, playUser, playCurriculum, playMaxLineChars)
	if err != nil {
		return err
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	progressMap, err := st.ListProgress(context.Background(), settings.user)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}

	levels := settings.curriculum.Flatten()
	firstLevelID := settings.curriculum.FirstLevelID()
	recorder := store.NewUserRecorder(st, settings.user)
	m := tui.NewModel(levels, firstLevelID, progressMap, settings.authed, settings.gateCfg, settings.maxLineChars, recorder)

	if playLevel != "" {
		level, ok := settings.curriculum.Find(playLevel)
		if !ok {
			return fmt.Errorf("unknown level %q (see: sornpim levels)", playLevel)
		}
		if !progress.Unlocked(level.ID, firstLevelID, levels, progressMap, settings.authed, settings.gateCfg) {
			return fmt.Errorf("level %q is locked; finish earlier levels first", playLevel)
		}
		m.StartLevel(level)
	}

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newLevelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Show levels with lock status and progress",
		Args:  cobra.NoArgs,
		RunE:  runLevelsCmd,
	}
	cmd.Flags().StringVar(&levelsUser, "user", "", "player name")
	cmd.Flags().StringVar(&levelsCurriculum, "curriculum", "", "path to a curriculum TOML file")
	return cmd
}

func runLevelsCmd(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd, levelsUser, levelsCurriculum, 0)
	if err != nil {
		return err
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	report, err := stats.BuildReport(context.Background(), st, settings.user, model.StatsConfig{})
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}
	return stats.RenderProgress(cmd.OutOrStdout(), settings.curriculum.Flatten(), settings.curriculum.FirstLevelID(), report, settings.authed, settings.gateCfg)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show attempt history and learning curves",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsUser, "user", "", "player name")
	cmd.Flags().StringVar(&statsLevel, "level", "", "limit to one level id")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N attempts")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "user", &statsUser, fileCfg.Player.Name)
	user := statsUser
	if user == "" {
		user = defaultUser
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	cfg := model.StatsConfig{
		Level:       statsLevel,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}
	report, err := stats.BuildReport(context.Background(), st, user, cfg)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Attempts); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if err := stats.RenderCurves(out, report.Attempts, cfg.CurveWindow); err != nil {
		return fmt.Errorf("failed to render curves: %w", err)
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
	return editFile(config.DefaultConfigPath(), defaultConfigTemplate())
}

func newCurriculumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curriculum",
		Short: "Create/open curriculum file",
		Args:  cobra.NoArgs,
		RunE:  runCurriculumCmd,
	}
}

func runCurriculumCmd(cmd *cobra.Command, _ []string) error {
	path := config.DefaultCurriculumPath()
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), path); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return editFile(path, curriculum.DefaultTOML())
}

// editFile seeds path with content when absent, then opens $EDITOR on it.
func editFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat file: %w", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
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

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# sornpim configuration
# Uncomment a value to enable it. CLI flags override config values.

[player]
# name = "guest"          # Player name; empty plays as guest

[game]
# max-line-chars = %d     # Max characters per typing line

[progression]
# required-plays = %d      # Plays of the previous level before unlock
# required-score = %d      # Previous level score must exceed this
`,
		textseg.DefaultMaxLineChars,
		defaultRequiredPlays,
		defaultRequiredScore,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
