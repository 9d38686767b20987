package sorter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the copy concurrency used when none is configured.
const DefaultWorkers = 32

//go:generate mockgen -destination=mocks/mock_recorder.go -package=mocks github.com/vmunix/extsort/internal/sorter Recorder

// Recorder persists the outcome of a completed run.
type Recorder interface {
	Record(ctx context.Context, report *Report) error
}

// Options controls a Sorter run.
type Options struct {
	// Workers caps concurrent copies. Zero or less starts one copy per
	// discovered file immediately.
	Workers int

	// DryRun resolves and logs every copy without writing anything.
	DryRun bool

	// Exclude lists source-relative directories to skip while walking.
	Exclude []string

	// Recorder, when set, receives the report of every non-dry run.
	Recorder Recorder
}

// Result is the terminal state of one copy task.
type Result struct {
	Source      string
	Destination string
	Bytes       int64
	Duration    time.Duration
	Err         error
}

// OK reports whether the copy succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Report collects the results of one run.
type Report struct {
	ID         string
	Source     string
	Output     string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
}

// Copied returns the number of successful copies.
func (r *Report) Copied() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed copies.
func (r *Report) Failed() int {
	return len(r.Results) - r.Copied()
}

// Bytes returns the total number of bytes copied.
func (r *Report) Bytes() int64 {
	var n int64
	for _, res := range r.Results {
		n += res.Bytes
	}
	return n
}

// Sorter copies every regular file of a source filesystem into extension
// folders on a destination filesystem.
type Sorter struct {
	src    billy.Filesystem
	dst    billy.Filesystem
	opts   Options
	logger *slog.Logger
}

// New creates a sorter.
func New(src, dst billy.Filesystem, opts Options, logger *slog.Logger) *Sorter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sorter{
		src:    src,
		dst:    dst,
		opts:   opts,
		logger: logger,
	}
}

// Run walks the source, copies every file concurrently and waits for all
// copies to finish. Individual copy failures are logged and reported in the
// returned Report; they never fail the run. An error is returned only when
// the walk itself fails or ctx is canceled, in which case copies already
// started still run to completion and the partial Report is returned and
// recorded alongside the error.
func (s *Sorter) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		ID:        uuid.NewString(),
		Source:    s.src.Root(),
		Output:    s.dst.Root(),
		DryRun:    s.opts.DryRun,
		StartedAt: time.Now(),
	}
	log := s.logger.With("run", report.ID)

	results := make(chan Result)
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		targets := make(map[string]string)
		for res := range results {
			if prev, ok := targets[res.Destination]; ok {
				log.Debug("destination collision, last writer wins",
					"destination", res.Destination, "first", prev, "second", res.Source)
			}
			targets[res.Destination] = res.Source
			report.Results = append(report.Results, res)
		}
	}()

	var g errgroup.Group
	if s.opts.Workers > 0 {
		g.SetLimit(s.opts.Workers)
	}

	walkErr := Walk(ctx, s.src, ".", s.opts.Exclude, log, func(file SourceFile) error {
		task := Resolve(file, ".")
		g.Go(func() error {
			results <- s.execute(log, task)
			return nil
		})
		return nil
	})

	_ = g.Wait()
	close(results)
	<-collected
	report.FinishedAt = time.Now()

	// Copies that finished before a walk error are on disk; record them too.
	if s.opts.Recorder != nil && !s.opts.DryRun {
		if err := s.opts.Recorder.Record(context.WithoutCancel(ctx), report); err != nil {
			log.Error("failed to record run", "error", err)
		}
	}

	if walkErr != nil {
		return report, fmt.Errorf("walk source: %w", walkErr)
	}
	return report, nil
}

// execute runs a single task. It never panics; any failure becomes the
// Result's error.
func (s *Sorter) execute(log *slog.Logger, task Task) (res Result) {
	start := time.Now()
	res = Result{
		Source:      displayPath(s.src, task.Source.Path),
		Destination: displayPath(s.dst, task.Target),
	}

	defer func() {
		if r := recover(); r != nil {
			res.Bytes = 0
			res.Err = fmt.Errorf("%w: panic: %v", ErrCopyFailed, r)
		}
		res.Duration = time.Since(start)

		switch {
		case res.Err != nil:
			log.Error("copy failed", "source", res.Source, "error", res.Err)
		case s.opts.DryRun:
			log.Info("would copy", "source", res.Source, "destination", res.Destination)
		default:
			log.Info("copied", "source", res.Source, "destination", res.Destination, "bytes", res.Bytes)
		}
	}()

	if s.opts.DryRun {
		return res
	}

	res.Bytes, res.Err = Copy(s.src, s.dst, task)
	return res
}
