package encryption

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/sealwalk/internal/filter"
)

// Select enumerates root and returns the files policy selects for direction, together
// with a summary holding the scan counts and any unreadable directories.
// Nothing is modified.
func (p *Processor) Select(root string, policy filter.Policy, direction Direction) ([]string, Summary, error) {
	summary := Summary{Root: root, Direction: direction}

	if len(policy.Suffixes) == 0 {
		return nil, summary, fmt.Errorf("%w: %w", ErrConfiguration, filter.ErrEmptyPolicy)
	}

	flt, err := filter.NewFilter(policy)
	if err != nil {
		return nil, summary, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	listing, err := filter.Walk(p.fs, root, flt)

	switch {
	case errors.Is(err, filter.ErrRootNotFound):
		summary.Note = fmt.Sprintf("directory %q does not exist", root)

		return nil, summary, fmt.Errorf("%w: %q", ErrDirectoryNotFound, root)
	case err != nil:
		return nil, summary, fmt.Errorf("%w: %w", ErrIO, err)
	}

	summary.Scanned = listing.Scanned

	for _, e := range listing.Errors {
		summary.Failures = append(summary.Failures, Failure{
			Path: e.Path,
			Kind: KindIO,
			Err:  fmt.Errorf("%w: %w", ErrIO, e.Err),
		})
	}

	files := listing.Files[:0]

	for _, file := range listing.Files {
		// Never seal an artifact a second time.
		if direction == Encrypt && strings.HasSuffix(filepath.Base(file), p.suffix) {
			continue
		}

		files = append(files, file)
	}

	summary.Selected = len(files)

	return files, summary, nil
}

// Walk transforms every file under root that policy selects.
//
// Configuration errors and a missing root are returned before any file is touched.
// Per-file failures are recorded in the summary and never stop the walk.
// A random source failure aborts the files not yet started and is returned.
// Cancellation of ctx is honoured between files: a file that has started always runs
// to completion.
func (p *Processor) Walk(ctx context.Context, root string, policy filter.Policy, direction Direction) (Summary, error) {
	files, summary, err := p.Select(root, policy, direction)
	if err != nil {
		return summary, err
	}

	return p.Process(ctx, files, direction, summary)
}

// Process transforms files previously returned by Select, folding the outcomes into
// summary. Failure and cancellation semantics are those of Walk.
func (p *Processor) Process(ctx context.Context, files []string, direction Direction, summary Summary) (Summary, error) {
	p.reporter.Debugw("walk", "root", summary.Root, "direction", direction, "selected", len(files), "scanned", summary.Scanned)

	err := p.process(ctx, files, direction, &summary)

	return summary, err
}

// process transforms files with bounded parallelism. Outcomes are collected by a
// single goroutine, so summary needs no locking.
func (p *Processor) process(ctx context.Context, files []string, direction Direction, summary *Summary) error {
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(p.parallel)

	results := make(chan Outcome, len(files))
	done := make(chan struct{})

	collected := 0

	go func() {
		defer close(done)

		for outcome := range results {
			collected++

			summary.Add(outcome)
		}
	}()

	for _, file := range files {
		if gctx.Err() != nil {
			break
		}

		group.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			outcome := p.Transform(file, direction)

			results <- outcome

			if IsFatal(outcome.Err) {
				return outcome.Err
			}

			return nil
		})
	}

	err := group.Wait()

	close(results)

	<-done // Wait for collector to finish

	summary.Remaining = len(files) - collected

	if err != nil {
		return fmt.Errorf("aborting walk of %q: %w", summary.Root, err)
	}

	if err := ctx.Err(); err != nil && summary.Remaining > 0 {
		return fmt.Errorf("walk of %q canceled: %w", summary.Root, err)
	}

	return nil
}
