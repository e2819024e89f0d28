package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/timeaxis/timeaxis/internal/ai"
	"github.com/timeaxis/timeaxis/internal/logging"
	"github.com/timeaxis/timeaxis/internal/tui"
)

func init() {
	rootCmd.AddCommand(tuiCmd)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive timeline",
	Long:  "Launch the pannable, zoomable dual-track timeline in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func runTUI() error {
	if !hasTTY() {
		return fmt.Errorf("the timeline requires an interactive terminal; use subcommands (see --help) otherwise")
	}

	cfg := GetConfig()

	// The TUI owns the terminal, so logs must go to a file.
	if cfg.Logging.File == "" {
		if f, err := os.OpenFile(defaultTUILogFile(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			logging.Init(logging.Config{Level: cfg.Logging.Level, Format: "json", Output: f})
			defer f.Close()
		}
	}

	ctx := context.Background()
	st, db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := ai.NewService(cfg.AI.RequestTimeout)
	return tui.Run(ctx, st, svc, tui.Config{
		Theme:       cfg.TUI.Theme,
		InitialYear: cfg.TUI.InitialYear,
		InitialZoom: cfg.TUI.InitialZoom,
	})
}

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
