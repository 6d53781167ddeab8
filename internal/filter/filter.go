// Package filter selects files by suffix policy and exclude globs, and enumerates
// directory trees over an absfs.FileSystem.
package filter

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/idelchi/sealwalk/internal/fileutil"
)

// ErrEmptyPolicy is returned when a policy has no suffixes.
var ErrEmptyPolicy = errors.New("selection policy needs at least one suffix")

// Policy decides which files a walk acts on.
type Policy struct {
	// Suffixes is the ordered set of name suffixes to select. Matching is exact and case-sensitive.
	Suffixes []string

	// Excludes are glob patterns; a file matching any of them is never selected.
	// '*' also matches '/', as with find -path.
	Excludes []string
}

// Filter is a compiled Policy.
// Excludes always win over suffixes.
type Filter struct {
	suffixes []string
	excludes []glob.Glob
}

// NewFilter compiles the policy into a reusable filter.
func NewFilter(policy Policy) (*Filter, error) {
	suffixes := make([]string, 0, len(policy.Suffixes))

	for _, s := range policy.Suffixes {
		if s == "" {
			return nil, errors.New("selection policy contains an empty suffix")
		}

		suffixes = append(suffixes, s)
	}

	if len(suffixes) == 0 {
		return nil, ErrEmptyPolicy
	}

	excludes := make([]glob.Glob, 0, len(policy.Excludes))

	for _, pattern := range normalizePatterns(policy.Excludes) {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling exclude pattern %q: %w", pattern, err)
		}

		excludes = append(excludes, g)
	}

	return &Filter{suffixes: suffixes, excludes: excludes}, nil
}

// Match reports whether the file at rel, a path relative to the walk root, is selected.
func (f *Filter) Match(rel string) bool {
	clean := filepath.ToSlash(filepath.Clean(rel))
	name := path.Base(clean)

	if fileutil.IsTemp(name) {
		return false
	}

	if !f.hasSuffix(name) {
		return false
	}

	for _, g := range f.excludes {
		if g.Match(clean) || g.Match(name) {
			return false
		}
	}

	return true
}

// Suffix returns the first policy suffix name ends with, or "".
func (f *Filter) Suffix(name string) string {
	for _, s := range f.suffixes {
		if strings.HasSuffix(name, s) {
			return s
		}
	}

	return ""
}

func (f *Filter) hasSuffix(name string) bool {
	return f.Suffix(name) != ""
}

// normalizePatterns strips leading "./" from patterns so they match cleaned paths.
func normalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))

	for _, p := range patterns {
		p = strings.TrimPrefix(strings.TrimSpace(p), "./")
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
