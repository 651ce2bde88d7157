package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yaklabco/mdindent/internal/logging"
	"github.com/yaklabco/mdindent/pkg/lint"
)

// Runner orchestrates multi-file linting using a lint.Pipeline.
type Runner struct {
	// Pipeline reads and lints each file.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// job is one file to lint and its position in the result.
type job struct {
	index int
	path  string
}

// Run discovers files under opts.Paths and lints them concurrently.
// Outcomes are returned in discovery order whatever order workers finish in.
// A file that cannot be read or parsed is recorded in its outcome; Run only
// fails when discovery fails or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	start := time.Now()
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		result.Stats.Elapsed = time.Since(start)
		return result, nil
	}

	jobs := min(opts.Jobs, len(files))

	pipelineOpts := lint.PipelineOptions{
		MaxFileSize: opts.MaxFileSize,
		Stdin:       opts.Stdin,
	}

	workCh := make(chan job)
	outcomes := make([]*FileOutcome, len(files))

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outcomes, opts, pipelineOpts)
		}()
	}

	go func() {
		defer close(workCh)
		for i, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- job{index: i, path: path}:
			}
		}
	}()

	wg.Wait()

	// Each slot is written by exactly one worker before wg.Wait returns.
	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}
	result.Stats.Elapsed = time.Since(start)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	logger.Info("lint complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldElapsed, result.Stats.Elapsed)

	return result, nil
}

// worker lints files from workCh and stores each outcome at its job index.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan job,
	outcomes []*FileOutcome,
	opts Options,
	pipelineOpts lint.PipelineOptions,
) {
	for j := range workCh {
		if ctx.Err() != nil {
			return
		}

		fileCtx := logging.WithFields(ctx, logging.FieldPath, j.path)
		outcome := &FileOutcome{Path: j.path}

		pr, err := r.Pipeline.ProcessFile(fileCtx, j.path, opts.Config, pipelineOpts)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logging.FromContext(fileCtx).Debug("file failed", logging.FieldError, err)
			outcome.Error = err
		} else {
			outcome.Result = pr
		}

		outcomes[j.index] = outcome
	}
}
