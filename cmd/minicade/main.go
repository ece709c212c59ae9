// Package main provides the CLI entrypoint for minicade.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/minicade/minicade/internal/config"
	"github.com/minicade/minicade/internal/leaderboard"
	"github.com/minicade/minicade/internal/model"
	"github.com/minicade/minicade/internal/pitch"
	"github.com/minicade/minicade/internal/report"
	"github.com/minicade/minicade/internal/tui"
)

const (
	defaultHistoryLast   = 50
	defaultHistoryWindow = 10
)

var (
	arcadeNickname string
	arcadeAPIURL   string

	rankGame   string
	rankAPIURL string

	historyGame   string
	historyLast   int
	historyWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "minicade",
		Short:         "TUI mini-game arcade",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runArcadeCmd,
	}

	rootCmd.Flags().StringVar(&arcadeNickname, "nickname", "", "leaderboard nickname")
	rootCmd.Flags().StringVar(&arcadeAPIURL, "api-url", "", "remote leaderboard base URL (empty: local board)")

	rootCmd.AddCommand(newRankCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runArcadeCmd(cmd *cobra.Command, _ []string) error {
	if err := pitch.ValidateLevels(); err != nil {
		return fmt.Errorf("invalid level table: %w", err)
	}

	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "nickname", &arcadeNickname, fileCfg.Player.Nickname)
	applyStringConfig(cmd, "api-url", &arcadeAPIURL, fileCfg.Leaderboard.APIURL)

	cfg := model.Config{
		Nickname: strings.TrimSpace(arcadeNickname),
		APIURL:   strings.TrimSpace(arcadeAPIURL),
	}

	st, err := leaderboard.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	gateway := selectGateway(cfg, st)
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	shell := tui.NewModel(cfg, st, gateway, rnd)
	program := tea.NewProgram(shell, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newRankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Show leaderboards",
		Args:  cobra.NoArgs,
		RunE:  runRankCmd,
	}
	cmd.Flags().StringVar(&rankGame, "game", "", "game filter: pitch, reaction, mole or blocks")
	cmd.Flags().StringVar(&rankAPIURL, "api-url", "", "remote leaderboard base URL (empty: local board)")
	return cmd
}

func runRankCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "api-url", &rankAPIURL, fileCfg.Leaderboard.APIURL)
	cfg := model.Config{APIURL: strings.TrimSpace(rankAPIURL)}

	st, err := leaderboard.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	gateway := selectGateway(cfg, st)

	if rankGame == "" && term.IsTerminal(int(os.Stdout.Fd())) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		shell := tui.NewModel(cfg, st, gateway, rnd)
		shell.StartAtRankings()
		program := tea.NewProgram(shell, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return nil
	}

	ctx := context.Background()
	out := cmd.OutOrStdout()
	if rankGame != "" {
		game, err := parseGame(rankGame)
		if err != nil {
			return err
		}
		entries, err := gateway.FetchRankings(ctx, game)
		if err != nil {
			return fmt.Errorf("failed to fetch rankings: %w", err)
		}
		return report.RenderGameRankings(out, game, entries)
	}
	all, err := gateway.FetchAllRankings(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch rankings: %w", err)
	}
	return report.RenderRankings(out, all)
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show local session history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyGame, "game", "", "game filter: pitch, reaction, mole or blocks")
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "limit to last N sessions")
	cmd.Flags().IntVar(&historyWindow, "window", defaultHistoryWindow, "moving average window")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLast <= 0 {
		return fmt.Errorf("--last must be > 0")
	}
	if historyWindow <= 0 {
		return fmt.Errorf("--window must be > 0")
	}

	games := model.Games
	if historyGame != "" {
		game, err := parseGame(historyGame)
		if err != nil {
			return err
		}
		games = []model.GameID{game}
	}

	st, err := leaderboard.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	out := cmd.OutOrStdout()
	for _, game := range games {
		records, err := st.ListHistory(ctx, game, historyLast)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if err := report.RenderHistory(out, game, records, historyWindow); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
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

func selectGateway(cfg model.Config, st *leaderboard.Store) leaderboard.Gateway {
	if cfg.APIURL != "" {
		return leaderboard.NewClient(cfg.APIURL)
	}
	return st
}

func parseGame(s string) (model.GameID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pitch", strings.ToLower(string(model.AbsolutePitch)):
		return model.AbsolutePitch, nil
	case "reaction", strings.ToLower(string(model.ReactionSpeed)):
		return model.ReactionSpeed, nil
	case "mole", strings.ToLower(string(model.MoleCatch)):
		return model.MoleCatch, nil
	case "blocks", strings.ToLower(string(model.FallingBlocks)):
		return model.FallingBlocks, nil
	}
	return "", fmt.Errorf("unknown game %q (use pitch, reaction, mole or blocks)", s)
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

func defaultConfigTemplate() string {
	return `# minicade configuration
# Uncomment a value to enable it. CLI flags override config values.

[player]
# nickname = ""        # Leaderboard nickname

[leaderboard]
# api-url = ""         # Remote leaderboard base URL; empty keeps scores local
`
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
