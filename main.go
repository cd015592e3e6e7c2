package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"notepad/config"
	"notepad/editor"
	"notepad/importer"
	"notepad/update"
)

var version = "1.6.1"

var (
	flagConfigDir     string
	flagNoUpdateCheck bool
	flagDebug         bool
	flagNoWatch       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "notepad [files...]",
	Short: "Multi-tab text and Markdown editor for the terminal",
	Long: `notepad is a multi-tab text and Markdown editor for the terminal with
syntax highlighting, a live browser preview and Word/HTML import.

Examples:
  notepad                  # Start with the welcome screen
  notepad notes.md todo.txt
  notepad report.docx      # Import into a Markdown bundle`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := flagConfigDir
		if dir == "" {
			dir = config.Dir()
		}
		closeLog, err := setupLogging(dir, flagDebug)
		if err != nil {
			return err
		}
		defer closeLog()

		store := config.NewFileStore(dir)
		cfg, ok := config.Load(store)
		if !ok {
			slog.Warn("using default settings", slog.String("dir", dir))
		}

		opts := editor.Options{
			Version: version,
			Store:   store,
			Watch:   !flagNoWatch,
		}
		if !flagNoUpdateCheck {
			opts.Checker = update.NewChecker(version)
		}

		if !(importer.Pandoc{}).Available() {
			slog.Warn("pandoc not found on PATH, document import will fail")
		}

		slog.Info("starting", slog.String("version", version), slog.Int("files", len(args)))
		return editor.New(cfg, opts).Run(args)
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagConfigDir, "config-dir", "", "Directory holding settings.json and the log file")
	rootCmd.Flags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "Do not check for a newer release on start")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Write debug messages to the log file")
	rootCmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "Do not reload files changed on disk")
}

// setupLogging sends slog output to a file in dir; the terminal belongs to
// the editor.
func setupLogging(dir string, debug bool) (func(), error) {
	if err := os.MkdirAll(dir, config.DirPerm); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, config.LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, config.FilePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return func() { f.Close() }, nil
}
