package encryption

import (
	"fmt"
	"strings"
)

// Direction selects which transform a walk applies.
type Direction int

const (
	// Encrypt seals plaintext files into artifacts.
	Encrypt Direction = iota
	// Decrypt opens artifacts back into plaintext files.
	Decrypt
)

func (d Direction) String() string {
	if d == Decrypt {
		return "decrypt"
	}

	return "encrypt"
}

// Outcome represents the result of transforming a single file.
type Outcome struct {
	// Source is the file that was read.
	Source string

	// Target is the file that was (or would have been) written.
	Target string

	// Size of the written target in bytes.
	Size int64

	// Err is set when the transform did not complete. The source is then untouched.
	Err error

	// Warnings are problems after the target was durably written, such as a failed erase
	// of the original. They never undo the transform.
	Warnings []error
}

// OK reports whether the transform completed.
func (o Outcome) OK() bool { return o.Err == nil }

// Failure is one failed path in a Summary.
type Failure struct {
	Path string
	Kind Kind
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %s: %v", f.Kind, f.Path, f.Err)
}

// Summary aggregates the outcomes of a walk.
type Summary struct {
	Root      string
	Direction Direction

	// Scanned counts every regular file seen under Root.
	Scanned int
	// Selected counts the files the policy selected.
	Selected int
	// Processed counts successful transforms.
	Processed int
	// Remaining counts selected files never started because the walk was canceled or aborted.
	Remaining int
	// Bytes is the total size of written targets.
	Bytes int64

	// Failures lists every file or directory that could not be processed.
	Failures []Failure
	// Warnings lists post-write problems on files that were processed.
	Warnings []Failure

	// Note explains an empty summary, such as a missing root.
	Note string
}

// Add folds one outcome into the summary. It is not safe for concurrent use;
// walks feed it from a single collector goroutine.
func (s *Summary) Add(o Outcome) {
	if o.Err != nil {
		s.Failures = append(s.Failures, Failure{Path: o.Source, Kind: KindOf(o.Err), Err: o.Err})

		return
	}

	s.Processed++
	s.Bytes += o.Size

	for _, w := range o.Warnings {
		s.Warnings = append(s.Warnings, Failure{Path: o.Source, Kind: KindOf(w), Err: w})
	}
}

// Merge adds the counts and records of other into s.
func (s *Summary) Merge(other Summary) {
	s.Scanned += other.Scanned
	s.Selected += other.Selected
	s.Processed += other.Processed
	s.Remaining += other.Remaining
	s.Bytes += other.Bytes
	s.Failures = append(s.Failures, other.Failures...)
	s.Warnings = append(s.Warnings, other.Warnings...)

	if other.Note != "" {
		s.Note = strings.TrimPrefix(s.Note+"; "+other.Note, "; ")
	}
}

// Err returns an error when any file or directory failed, nil otherwise.
func (s Summary) Err() error {
	if len(s.Failures) == 0 {
		return nil
	}

	return fmt.Errorf("%d failure(s) across %d selected file(s)", len(s.Failures), s.Selected)
}

// FailuresOf returns the failures of the given kind.
func (s Summary) FailuresOf(kind Kind) []Failure {
	var out []Failure

	for _, f := range s.Failures {
		if f.Kind == kind {
			out = append(out, f)
		}
	}

	return out
}
