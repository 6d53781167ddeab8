package logic

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/sealwalk/internal/encryption"
)

// Report writes the failures and warnings of a summary, one per line.
// Nothing is written for a clean run.
func Report(w io.Writer, s encryption.Summary) {
	if s.Note != "" {
		fmt.Fprintf(w, "Note: %s\n", s.Note)
	}

	if len(s.Failures) > 0 {
		fmt.Fprintf(w, "\nFailures (%d)\n", len(s.Failures))

		for _, f := range s.Failures {
			fmt.Fprintf(w, "  %-22s %q: %v\n", f.Kind, f.Path, f.Err)
		}
	}

	if len(s.Warnings) > 0 {
		fmt.Fprintf(w, "\nWarnings (%d)\n", len(s.Warnings))

		for _, f := range s.Warnings {
			fmt.Fprintf(w, "  %-22s %q: %v\n", f.Kind, f.Path, f.Err)
		}
	}

	if s.Remaining > 0 {
		fmt.Fprintf(w, "\n%d selected file(s) were not started\n", s.Remaining)
	}
}

func printStats(w io.Writer, s encryption.Summary, duration time.Duration) {
	fmt.Fprintf(w, "\nStats (%s)\n", s.Direction)
	fmt.Fprintf(w, "  Scanned:   %d\n", s.Scanned)
	fmt.Fprintf(w, "  Excluded:  %d\n", s.Scanned-s.Selected)
	fmt.Fprintf(w, "  Processed: %d\n", s.Processed)
	fmt.Fprintf(w, "  Errors:    %d\n", len(s.Failures))
	fmt.Fprintf(w, "  Warnings:  %d\n", len(s.Warnings))
	//nolint:gosec // Bytes is always non-negative (sum of file sizes)
	fmt.Fprintf(w, "  Size:      %s\n", humanize.IBytes(uint64(max(0, s.Bytes))))
	fmt.Fprintf(w, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
