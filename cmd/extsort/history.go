package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vmunix/extsort/internal/config"
	"github.com/vmunix/extsort/internal/history"
)

var errNoHistory = errors.New("history is not enabled")

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Long: `Show runs recorded in the history database.

History is recorded only when a database path is configured, either with
--history or [history] path in the config file.`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}
	cmd.Flags().IntP("limit", "n", 20, "Maximum rows to show (0 = all)")
	cmd.Flags().Bool("failed", false, "List failed copies instead of runs")
	cmd.Flags().String("run", "", "Restrict --failed to one run ID")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.History.Path == "" {
		return fmt.Errorf("%w (try --history %s)", errNoHistory, config.DefaultHistoryPath())
	}
	if _, err := os.Stat(cfg.History.Path); err != nil {
		return fmt.Errorf("open history %s: %w", cfg.History.Path, err)
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	limit, _ := cmd.Flags().GetInt("limit")
	failed, _ := cmd.Flags().GetBool("failed")
	runID, _ := cmd.Flags().GetString("run")

	out := cmd.OutOrStdout()
	setColor(out)

	if failed {
		copies, err := store.ListFailures(cmd.Context(), runID, limit)
		if err != nil {
			return err
		}
		printFailures(out, copies)
		return nil
	}

	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	printRuns(out, runs)
	return nil
}

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

// setColor turns color off unless w is a terminal.
func setColor(w io.Writer) {
	f, ok := w.(*os.File)
	tty := ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	for _, c := range []*color.Color{okColor, failColor, dimColor} {
		if tty && !color.NoColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

func printRuns(w io.Writer, runs []*history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	p := message.NewPrinter(language.English)
	fmt.Fprintf(w, "  %-8s %-19s %8s %8s %10s %9s  %s\n",
		"RUN", "STARTED", "COPIED", "FAILED", "SIZE", "DURATION", "SOURCE -> OUTPUT")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 100))

	for _, r := range runs {
		failed := okColor.Sprintf("%8s", p.Sprintf("%d", r.Failed))
		if r.Failed > 0 {
			failed = failColor.Sprintf("%8s", p.Sprintf("%d", r.Failed))
		}
		fmt.Fprintf(w, "  %-8s %-19s %8s %s %10s %9s  %s\n",
			shortID(r.ID),
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			p.Sprintf("%d", r.Copied),
			failed,
			formatSize(r.Bytes),
			r.Duration().Round(time.Millisecond),
			truncatePath(r.Source, 24)+" -> "+truncatePath(r.Output, 24))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, dimColor.Sprintf("  %s", p.Sprintf("%d runs", len(runs))))
}

func printFailures(w io.Writer, copies []*history.Copy) {
	if len(copies) == 0 {
		fmt.Fprintln(w, "No failed copies.")
		return
	}

	fmt.Fprintf(w, "  %-8s %-50s %s\n", "RUN", "SOURCE", "ERROR")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 100))

	for _, c := range copies {
		fmt.Fprintf(w, "  %-8s %-50s %s\n",
			shortID(c.RunID),
			truncatePath(c.Source, 50),
			failColor.Sprint(c.Error))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
