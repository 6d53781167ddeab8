package filter_test

import (
	"path/filepath"
	"testing"

	"github.com/absfs/absfs"
	"github.com/absfs/osfs"
	"github.com/absfs/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/sealwalk/internal/filter"
)

func hostFS(t *testing.T) absfs.FileSystem {
	t.Helper()

	fsys, err := osfs.NewFS()
	require.NoError(t, err)

	return fsys
}

func memTree(t *testing.T, files ...string) absfs.FileSystem {
	t.Helper()

	fsys, err := memfs.NewFS()
	require.NoError(t, err)

	for _, name := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(name), 0o755))

		f, err := fsys.Create(name)
		require.NoError(t, err)

		_, err = f.Write([]byte(name))
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}

	return fsys
}

func mustFilter(t *testing.T, policy filter.Policy) *filter.Filter {
	t.Helper()

	flt, err := filter.NewFilter(policy)
	require.NoError(t, err)

	return flt
}

func TestWalkTree(t *testing.T) {
	t.Parallel()

	fsys := memTree(t,
		"/root/b.txt",
		"/root/a.txt",
		"/root/c.log",
		"/root/sub/d.txt",
		"/root/sub/deeper/e.txt",
		"/root/skip/f.txt",
		"/elsewhere/g.txt",
	)

	flt := mustFilter(t, filter.Policy{Suffixes: []string{".txt"}, Excludes: []string{"skip/*"}})

	listing, err := filter.Walk(fsys, "/root", flt)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/root/a.txt",
		"/root/b.txt",
		"/root/sub/d.txt",
		"/root/sub/deeper/e.txt",
	}, listing.Files)
	assert.Equal(t, 6, listing.Scanned)
	assert.Empty(t, listing.Errors)
}

func TestWalkSingleFile(t *testing.T) {
	t.Parallel()

	fsys := memTree(t, "/data/one.txt", "/data/two.txt")

	listing, err := filter.Walk(fsys, "/data/one.txt", mustFilter(t, filter.Policy{Suffixes: []string{".txt"}}))
	require.NoError(t, err)

	assert.Equal(t, []string{"/data/one.txt"}, listing.Files)
	assert.Equal(t, 1, listing.Scanned)
}

func TestWalkEmptyDirectory(t *testing.T) {
	t.Parallel()

	fsys := memTree(t)
	require.NoError(t, fsys.MkdirAll("/empty", 0o755))

	listing, err := filter.Walk(fsys, "/empty", mustFilter(t, filter.Policy{Suffixes: []string{".txt"}}))
	require.NoError(t, err)

	assert.Empty(t, listing.Files)
	assert.Zero(t, listing.Scanned)
}

func TestWalkMissingRoot(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "nope")

	_, err := filter.Walk(hostFS(t), root, mustFilter(t, filter.Policy{Suffixes: []string{".txt"}}))
	require.ErrorIs(t, err, filter.ErrRootNotFound)
}
