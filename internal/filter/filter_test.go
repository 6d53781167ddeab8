package filter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/sealwalk/internal/filter"
)

type matchCase struct {
	Name     string   `yaml:"name"`
	Suffixes []string `yaml:"suffixes"`
	Excludes []string `yaml:"excludes"`
	Selected []string `yaml:"selected"`
	Rejected []string `yaml:"rejected"`
}

func loadCases(t *testing.T) []matchCase {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", "match.yml"))
	require.NoError(t, err)

	var cases []matchCase
	require.NoError(t, yaml.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)

	return cases
}

func TestMatch(t *testing.T) {
	t.Parallel()

	for _, tc := range loadCases(t) {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			flt, err := filter.NewFilter(filter.Policy{Suffixes: tc.Suffixes, Excludes: tc.Excludes})
			require.NoError(t, err)

			for _, path := range tc.Selected {
				assert.True(t, flt.Match(path), "expected %q to be selected", path)
			}

			for _, path := range tc.Rejected {
				assert.False(t, flt.Match(path), "expected %q to be rejected", path)
			}
		})
	}
}

func TestNewFilterRejects(t *testing.T) {
	t.Parallel()

	_, err := filter.NewFilter(filter.Policy{})
	require.ErrorIs(t, err, filter.ErrEmptyPolicy)

	_, err = filter.NewFilter(filter.Policy{Suffixes: []string{".txt", ""}})
	require.Error(t, err)
	assert.NotErrorIs(t, err, filter.ErrEmptyPolicy)
}

func TestSuffixReturnsFirstMatch(t *testing.T) {
	t.Parallel()

	flt, err := filter.NewFilter(filter.Policy{Suffixes: []string{".gz", ".tar.gz"}})
	require.NoError(t, err)

	assert.Equal(t, ".gz", flt.Suffix("archive.tar.gz"))
	assert.Empty(t, flt.Suffix("archive.zip"))
}

func TestLoadPatterns(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "excludes.jsonc")
	content := `[
  // build output
  "./dist/*",
  "*.tmp", /* scratch */
  "  ",
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	patterns, err := filter.LoadPatterns(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"dist/*", "*.tmp"}, patterns)
}

func TestLoadPatternsErrors(t *testing.T) {
	t.Parallel()

	_, err := filter.LoadPatterns(filepath.Join(t.TempDir(), "missing.jsonc"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "object.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`{"exclude": "*.tmp"}`), 0o600))

	_, err = filter.LoadPatterns(path)
	require.Error(t, err)
}
