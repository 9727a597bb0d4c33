package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sadopc/stitchr/internal/config"
	"github.com/sadopc/stitchr/internal/session"
	"github.com/sadopc/stitchr/internal/stats"
	"github.com/sadopc/stitchr/internal/store"
	"github.com/sadopc/stitchr/internal/tui"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	logFile    string
	logLevel   string
	load       string
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "stitchr",
		Short: "Crochet stitch counter and project tracker for the terminal",
		Long: `stitchr counts stitches row by row and keeps patterns, goals, a yarn
stash and project photos alongside them.

Nothing is kept between runs. Press e to save the session as JSON and
start the next run with --load to pick up where you left off.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/stitchr/config.yaml)")
	f.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	f.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.StringVar(&opts.load, "load", "", "start from a saved session file")
	return cmd
}

// loadConfig reads the config file and applies any flags the user set.
func loadConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path = p
	}

	cfg, err := config.Load(config.ExpandHome(path))
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = config.ExpandHome(opts.logFile)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	return cfg, nil
}

// seedSettings sets a new session's list orders from the config.
func seedSettings(s *store.Store, cfg config.Config) error {
	if err := s.SetSetting(store.SettingRowSort, string(stats.ParseSort(stats.RowSorts, cfg.RowSort))); err != nil {
		return err
	}
	return s.SetSetting(store.SettingYarnSort, string(stats.ParseSort(stats.YarnSorts, cfg.YarnSort)))
}

func run(cmd *cobra.Command, opts options) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return errors.New("stitchr needs an interactive terminal")
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log, closer, err := config.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(log)

	sess, err := session.New(log, session.WithExportDir(cfg.ExportDir))
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := seedSettings(sess.Store, cfg); err != nil {
		return err
	}
	if opts.load != "" {
		if err := sess.Load(config.ExpandHome(opts.load)); err != nil {
			return err
		}
	}

	p := tea.NewProgram(tui.NewApp(sess), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
