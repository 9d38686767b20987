package main

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/extsort/internal/config"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extsort --source <dir> --output <dir>",
		Short: "Sort files into folders by extension",
		Long: `extsort - copy files into folders named after their extension

Every regular file under the source folder is copied, concurrently, to
<output>/<extension>/<name>. Files without an extension go to
<output>/unknown. The source is never modified. Files that share a name
and extension overwrite each other; the last copy wins.

A failed copy is logged and does not stop the others. The exit status is
non-zero only when the run could not start.

Examples:
  extsort -s ~/Downloads -o ~/Sorted
  extsort -s ./photos -o ./by-type --workers 8
  extsort -s ./photos -o ./by-type --dry-run
  extsort history --failed`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSortCmd,
	}

	cmd.Flags().StringP("source", "s", "", "Source folder path")
	cmd.Flags().StringP("output", "o", "", "Output folder path")
	cmd.Flags().IntP("workers", "w", 0, "Maximum concurrent copies (0 = one per file; default from config, 32)")
	cmd.Flags().Bool("dry-run", false, "Log planned copies without writing")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("output")

	cmd.PersistentFlags().String("config", "", "Path to config file (default: discovered)")
	cmd.PersistentFlags().String("history", "", "Path to history database (enables history)")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newInitCmd())

	cmd.Version = version
	cmd.SetVersionTemplate("extsort {{.Version}}\n")

	return cmd
}

// loadConfig resolves configuration from --config, discovery, or defaults,
// then applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		found, err := config.Discover()
		switch {
		case err == nil:
			path = found
		case errors.Is(err, config.ErrNotFound):
		default:
			return nil, err
		}
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		cfg.Log.Level = strings.ToLower(level)
	}
	if flags.Changed("history") {
		cfg.History.Path, _ = flags.GetString("history")
	}
	if flags.Changed("workers") {
		cfg.Sort.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("dry-run") {
		cfg.Sort.DryRun, _ = flags.GetBool("dry-run")
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		if path == "" {
			path = "(defaults and flags)"
		}
		return nil, &config.ConfigError{Path: path, Errors: errs}
	}
	return cfg, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}
