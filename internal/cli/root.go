// Package cli provides the timeaxis command line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/timeaxis/timeaxis/internal/config"
	"github.com/timeaxis/timeaxis/internal/logging"
	"github.com/timeaxis/timeaxis/internal/store"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "timeaxis",
	Short: "Interactive dual-track historical timeline",
	Long: `timeaxis is a pannable, zoomable chronology of Chinese and world history
with on-demand AI enrichment for events.

Run without arguments to launch the interactive timeline.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd.Version = version
	return rootCmd.Execute()
}

func initApp() error {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: logOutput(cfg),
	})

	appConfig = cfg
	return nil
}

// logOutput resolves the log destination. A configured file always wins;
// otherwise stderr.
func logOutput(cfg *config.Config) *os.File {
	if cfg.Logging.File == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot open log file %s: %v\n", cfg.Logging.File, err)
		return os.Stderr
	}
	return f
}

// GetConfig returns the loaded application config.
func GetConfig() *config.Config {
	return appConfig
}

func openDatabase() (*store.DB, error) {
	cfg := GetConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return store.Open(cfg.DatabasePath(), cfg.Database.BusyTimeoutMs)
}

func openStore(ctx context.Context) (*store.Store, *store.DB, error) {
	db, err := openDatabase()
	if err != nil {
		return nil, nil, err
	}
	st, err := store.New(ctx, db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return st, db, nil
}

// defaultTUILogFile is where the TUI logs when no file is configured, since
// stderr belongs to the rendered terminal.
func defaultTUILogFile() string {
	cfg := GetConfig()
	if cfg == nil {
		return ""
	}
	return filepath.Join(cfg.Global.DataDir, "timeaxis.log")
}
