package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/extsort/internal/history"
	"github.com/vmunix/extsort/internal/runlock"
	"github.com/vmunix/extsort/internal/sorter"
	"github.com/vmunix/extsort/internal/suggest"
)

func runSortCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Log.Level)

	source, _ := cmd.Flags().GetString("source")
	output, _ := cmd.Flags().GetString("output")

	if err := sorter.CheckSource(source); err != nil {
		logger.Error("invalid source", "source", source, "error", err)
		if errors.Is(err, sorter.ErrSourceNotFound) {
			if guess, ok := suggest.Directory(source); ok {
				return fmt.Errorf("%w (did you mean %s?)", err, guess)
			}
		}
		return err
	}

	lock, err := runlock.Acquire(os.TempDir(), output)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release lock", "error", err)
		}
	}()

	opts := sorter.Options{
		Workers: cfg.Sort.Workers,
		DryRun:  cfg.Sort.DryRun,
	}
	if rel, ok := sorter.NestedOutput(source, output); ok {
		logger.Debug("output is inside source, excluding it", "output", output)
		opts.Exclude = []string{rel}
	}

	if cfg.History.Path != "" && !opts.DryRun {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			logger.Warn("history disabled", "path", cfg.History.Path, "error", err)
		} else {
			defer func() { _ = store.Close() }()
			opts.Recorder = store
		}
	}

	s := sorter.New(sorter.Dir(source), sorter.Dir(output), opts, logger)
	report, err := s.Run(cmd.Context())
	if report != nil && err != nil {
		logger.Warn("sorting stopped early", "copied", report.Copied(), "failed", report.Failed(), "error", err)
		return err
	}
	if err != nil {
		return err
	}

	logSummary(logger, report)
	return nil
}

func logSummary(logger *slog.Logger, report *sorter.Report) {
	attrs := []any{
		"run", report.ID,
		"copied", report.Copied(),
		"failed", report.Failed(),
		"bytes", report.Bytes(),
		"duration", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond),
	}
	if report.DryRun {
		attrs = append(attrs, "dry_run", true)
	}
	logger.Info("sorting completed", attrs...)
}
