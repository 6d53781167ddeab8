// Package logic implements the core business logic for the encryption/decryption commands.
package logic

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/absfs/absfs"

	"github.com/idelchi/sealwalk/internal/config"
	"github.com/idelchi/sealwalk/internal/encryption"
	"github.com/idelchi/sealwalk/internal/filter"
)

// Env carries the collaborators of a run. Zero fields fall back to the process defaults.
type Env struct {
	// FS is the filesystem to walk. Nil means the host filesystem.
	FS absfs.FileSystem
	// Reporter receives per-file events.
	Reporter encryption.Reporter
	// Stdin is used for the key prompt.
	Stdin *os.File
	// Stdout receives dry-run listings.
	Stdout io.Writer
	// Stderr receives the summary, stats and the key prompt.
	Stderr io.Writer
}

func (e *Env) defaults() {
	if e.Stdout == nil {
		e.Stdout = os.Stdout
	}

	if e.Stderr == nil {
		e.Stderr = os.Stderr
	}
}

// Run is the main logic of the application.
func Run(ctx context.Context, cfg *config.Config, env Env) error {
	env.defaults()

	start := time.Now()

	key, err := resolveKey(cfg, env.Stdin, env.Stderr)
	if err != nil {
		return err
	}

	proc, err := encryption.NewProcessor(key, encryption.Options{
		FS:                 env.FS,
		Suite:              encryption.Suite(cfg.Cipher),
		Suffix:             cfg.Suffix,
		DecryptSuffix:      cfg.DecryptSuffix,
		Parallel:           cfg.Parallel,
		NoWipe:             cfg.NoWipe,
		PreserveTimestamps: cfg.PreserveTimestamps,
		Reporter:           env.Reporter,
	})

	clear(key)

	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	policy, err := buildPolicy(cfg, proc.Suffix())
	if err != nil {
		return err
	}

	direction := encryption.Encrypt
	if cfg.Decrypt {
		direction = encryption.Decrypt
	}

	total := encryption.Summary{Direction: direction}

	// Every root is enumerated before the first file is touched, so a bad root
	// later in the list fails the run without a partial transform.
	selections := make([]selection, 0, len(cfg.Paths))

	for _, root := range dedupe(cfg.Paths) {
		files, summary, err := proc.Select(root, policy, direction)
		if err != nil {
			total.Merge(summary)
			Report(env.Stderr, total)

			return fmt.Errorf("running logic: %w", err)
		}

		selections = append(selections, selection{files: files, summary: summary})
	}

	for _, sel := range selections {
		if cfg.Dry {
			dryRun(env.Stdout, proc, sel.files, direction)
			total.Merge(sel.summary)

			continue
		}

		summary, err := proc.Process(ctx, sel.files, direction, sel.summary)

		total.Merge(summary)

		if err != nil {
			Report(env.Stderr, total)

			return fmt.Errorf("running logic: %w", err)
		}
	}

	Report(env.Stderr, total)

	if cfg.Stats {
		printStats(env.Stderr, total, time.Since(start))
	}

	if cfg.Dry {
		return nil
	}

	return total.Err()
}

// selection is the enumerated work for one root.
type selection struct {
	files   []string
	summary encryption.Summary
}

// dryRun previews what would be processed without actually encrypting/decrypting.
func dryRun(w io.Writer, proc *encryption.Processor, files []string, direction encryption.Direction) {
	for _, file := range files {
		fmt.Fprintf(w, "%s %q -> %q\n", direction, file, proc.OutputPath(file, direction))
	}
}

// buildPolicy merges --include, --exclude and --exclude-from. Decrypting without
// includes selects every artifact.
func buildPolicy(cfg *config.Config, suffix string) (filter.Policy, error) {
	policy := filter.Policy{
		Suffixes: append([]string{}, cfg.Include...),
		Excludes: append([]string{}, cfg.Exclude...),
	}

	if cfg.ExcludeFrom != "" {
		patterns, err := filter.LoadPatterns(cfg.ExcludeFrom)
		if err != nil {
			return policy, fmt.Errorf("loading exclude patterns: %w", err)
		}

		policy.Excludes = append(policy.Excludes, patterns...)
	}

	if cfg.Decrypt && len(policy.Suffixes) == 0 {
		policy.Suffixes = []string{suffix}
	}

	return policy, nil
}

// dedupe cleans the roots and drops repeats, defaulting to the current directory.
func dedupe(paths []string) []string {
	if len(paths) == 0 {
		return []string{"."}
	}

	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))

	for _, p := range paths {
		p = filepath.Clean(p)

		if _, ok := seen[p]; ok {
			continue
		}

		seen[p] = struct{}{}
		out = append(out, p)
	}

	return out
}
