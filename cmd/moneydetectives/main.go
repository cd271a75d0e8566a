// Package main provides the CLI entrypoint for moneydetectives.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/moneydetectives/internal/commentary"
	"github.com/verte-zerg/moneydetectives/internal/config"
	"github.com/verte-zerg/moneydetectives/internal/economy"
	"github.com/verte-zerg/moneydetectives/internal/leaderboard"
	"github.com/verte-zerg/moneydetectives/internal/model"
	"github.com/verte-zerg/moneydetectives/internal/progression"
	"github.com/verte-zerg/moneydetectives/internal/round"
	"github.com/verte-zerg/moneydetectives/internal/sound"
	"github.com/verte-zerg/moneydetectives/internal/store"
	"github.com/verte-zerg/moneydetectives/internal/tui"
)

const (
	defaultStartDelayMs = 1000
	defaultShuffleMs    = 1500
	defaultRevealMs     = 2500
	defaultTransitionMs = 1000
	defaultSound        = true
	defaultCommentary   = true
	maxPlayerNameRunes  = 20
)

var (
	playName         string
	playStartDelayMs int
	playShuffleMs    int
	playRevealMs     int
	playTransitionMs int
	playSound        bool
	playCommentary   bool

	catalogCategory string
	leaderboardColor bool
	resetYes         bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "moneydetectives",
		Short:         "Find the money under the cup",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}
	addPlayFlags(rootCmd)

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game (default)",
		Args:  cobra.NoArgs,
		RunE:  runPlayCmd,
	}
	addPlayFlags(playCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newResetCmd())

	return rootCmd
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&playName, "name", "", "agent name (skips the welcome screen)")
	cmd.Flags().IntVar(&playStartDelayMs, "start-delay-ms", defaultStartDelayMs, "delay before the first shuffle")
	cmd.Flags().IntVar(&playShuffleMs, "shuffle-ms", defaultShuffleMs, "shuffle duration")
	cmd.Flags().IntVar(&playRevealMs, "reveal-ms", defaultRevealMs, "how long the reveal stays on screen")
	cmd.Flags().IntVar(&playTransitionMs, "transition-ms", defaultTransitionMs, "pause between rounds")
	cmd.Flags().BoolVar(&playSound, "sound", defaultSound, "ring the terminal bell on wins and losses")
	cmd.Flags().BoolVar(&playCommentary, "commentary", defaultCommentary, "ask the text service for host commentary")
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "name", &playName, fileCfg.Player.Name)
	applyIntConfig(cmd, "start-delay-ms", &playStartDelayMs, fileCfg.Game.StartDelayMs)
	applyIntConfig(cmd, "shuffle-ms", &playShuffleMs, fileCfg.Game.ShuffleMs)
	applyIntConfig(cmd, "reveal-ms", &playRevealMs, fileCfg.Game.RevealMs)
	applyIntConfig(cmd, "transition-ms", &playTransitionMs, fileCfg.Game.TransitionMs)
	applyBoolConfig(cmd, "sound", &playSound, fileCfg.Game.Sound)
	applyBoolConfig(cmd, "commentary", &playCommentary, fileCfg.Commentary.Enabled)

	cfg := model.Config{
		PlayerName:      strings.TrimSpace(playName),
		StartDelay:      time.Duration(playStartDelayMs) * time.Millisecond,
		ShuffleDelay:    time.Duration(playShuffleMs) * time.Millisecond,
		RevealDelay:     time.Duration(playRevealMs) * time.Millisecond,
		TransitionDelay: time.Duration(playTransitionMs) * time.Millisecond,
		Sound:           playSound,
		Commentary:      playCommentary,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	var commentator commentary.Commentator = commentary.Static{}
	if cfg.Commentary {
		envCfg, err := commentary.LoadEnv()
		if err != nil {
			return fmt.Errorf("failed to load commentary settings: %w", err)
		}
		commentator = commentary.FromEnv(envCfg)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	logPath := config.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := tea.LogToFile(logPath, "moneydetectives")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()

	ctrl := progression.NewController(cmd.Context(), progression.NewKVPersister(st))
	m := tui.NewModel(tui.Options{
		Config:      cfg,
		Progress:    ctrl,
		Commentator: commentator,
		Sound:       sound.NewBell(os.Stderr),
		Picker:      round.NewPicker(),
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if err := ctrl.SaveErr(); err != nil {
		logErrf("warning: last progress save failed: %v\n", err)
	}
	return nil
}

func openController(ctx context.Context) (*progression.Controller, *store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	return progression.NewController(ctx, progression.NewKVPersister(st)), st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show wallet, rank and outfit",
		Args:  cobra.NoArgs,
		RunE:  runStatusCmd,
	}
}

func runStatusCmd(cmd *cobra.Command, _ []string) error {
	ctrl, st, err := openController(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore(st)

	lastSaved := "never"
	if at, ok, err := st.UpdatedAt(cmd.Context(), progression.KeyWallet); err != nil {
		logErrf("failed to read save time: %v\n", err)
	} else if ok {
		lastSaved = at.Local().Format("2006-01-02 15:04")
	}
	return writeStatus(cmd.OutOrStdout(), ctrl, lastSaved)
}

func writeStatus(w io.Writer, ctrl *progression.Controller, lastSaved string) error {
	name := ctrl.PlayerName()
	if name == "" {
		name = progression.AnonymousName
	}
	rank := ctrl.Rank()
	prog := ctrl.Progress()
	next := "top rank reached"
	if !prog.Maxed {
		next = fmt.Sprintf("%d more to next rank (%.0f%%)", prog.Remaining, prog.Percent)
	}
	avatar := ctrl.Avatar()
	lines := []string{
		fmt.Sprintf("Agent:     %s", name),
		fmt.Sprintf("Stars:     %d", ctrl.Wallet()),
		fmt.Sprintf("Rank:      %s %s (%s)", rank.Icon, rank.Name, rank.Title),
		fmt.Sprintf("Progress:  %s", next),
		fmt.Sprintf("Outfit:    color=%s hat=%s glasses=%s shirt=%s", avatar.Color, avatar.Hat, avatar.Glasses, avatar.Shirt),
		fmt.Sprintf("Owned:     %d items", len(ctrl.Purchased())),
		fmt.Sprintf("Games:     %d on the board", ctrl.Leaderboard().Len()),
		fmt.Sprintf("Saved:     %s", lastSaved),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the top results",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
	cmd.Flags().BoolVar(&leaderboardColor, "color", false, "force colored output")
	return cmd
}

func runLeaderboardCmd(cmd *cobra.Command, _ []string) error {
	ctrl, st, err := openController(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore(st)
	if err := leaderboard.Write(cmd.OutOrStdout(), ctrl.Leaderboard(), leaderboardColor); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List store items",
		Args:  cobra.NoArgs,
		RunE:  runCatalogCmd,
	}
	cmd.Flags().StringVar(&catalogCategory, "category", "", "only list one category (hat, glasses, shirt, color)")
	return cmd
}

func runCatalogCmd(cmd *cobra.Command, _ []string) error {
	categories, err := resolveCategories(catalogCategory)
	if err != nil {
		return err
	}
	ctrl, st, err := openController(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore(st)
	return writeCatalog(cmd.OutOrStdout(), categories, ctrl)
}

func resolveCategories(raw string) ([]model.Category, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return append([]model.Category(nil), model.Categories...), nil
	}
	names := make([]string, 0, len(model.Categories))
	for _, cat := range model.Categories {
		if string(cat) == raw {
			return []model.Category{cat}, nil
		}
		names = append(names, string(cat))
	}
	return nil, fmt.Errorf("unknown category %q (available: %s)", raw, strings.Join(names, ", "))
}

func writeCatalog(w io.Writer, categories []model.Category, ctrl *progression.Controller) error {
	for _, cat := range categories {
		if _, err := fmt.Fprintf(w, "[%s]\n", cat); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		for _, item := range economy.ItemsIn(cat) {
			price := "free"
			if item.Price > 0 {
				price = fmt.Sprintf("%d stars", item.Price)
			}
			state := ""
			switch {
			case ctrl == nil:
			case ctrl.Equipped(item):
				state = "equipped"
			case item.Price > 0 && ctrl.Owns(item):
				state = "owned"
			}
			line := strings.TrimRight(fmt.Sprintf("  %s %-16s %-14s %-9s %s", item.Icon, item.Name, item.ID, price, state), " ")
			if _, err := fmt.Fprintln(w, line); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
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

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase wallet, purchases and leaderboard",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetYes, "yes", false, "confirm the reset")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		return fmt.Errorf("reset erases all progress; rerun with --yes to confirm")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)
	if err := st.DeleteAll(cmd.Context()); err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	logErrln("Progress erased.")
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# moneydetectives configuration
# Uncomment a value to enable it. CLI flags override config values.
# The commentary API key is read from GEMINI_API_KEY, never from this file.

[player]
# name = "Ada"            # Agent name; skips the welcome screen

[game]
# start-delay-ms = %d     # Delay before the first shuffle
# shuffle-ms = %d         # Shuffle duration
# reveal-ms = %d          # How long the reveal stays on screen
# transition-ms = %d      # Pause between rounds
# sound = %t              # Ring the terminal bell

[commentary]
# enabled = %t            # Ask the text service for host commentary
`,
		defaultStartDelayMs,
		defaultShuffleMs,
		defaultRevealMs,
		defaultTransitionMs,
		defaultSound,
		defaultCommentary,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.StartDelay <= 0 {
		return fmt.Errorf("--start-delay-ms must be > 0")
	}
	if cfg.ShuffleDelay <= 0 {
		return fmt.Errorf("--shuffle-ms must be > 0")
	}
	if cfg.RevealDelay <= 0 {
		return fmt.Errorf("--reveal-ms must be > 0")
	}
	if cfg.TransitionDelay <= 0 {
		return fmt.Errorf("--transition-ms must be > 0")
	}
	if len([]rune(cfg.PlayerName)) > maxPlayerNameRunes {
		return fmt.Errorf("--name must be at most %d characters", maxPlayerNameRunes)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
