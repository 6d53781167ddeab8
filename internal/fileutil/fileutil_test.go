package fileutil_test

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/absfs/absfs"
	"github.com/absfs/osfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/sealwalk/internal/fileutil"
)

func hostFS(t *testing.T) absfs.FileSystem {
	t.Helper()

	fsys, err := osfs.NewFS()
	require.NoError(t, err)

	return fsys
}

func TestErase(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 1, 32 * 1024, 100_000} {
		path := filepath.Join(t.TempDir(), "victim")
		require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0xFF}, size), 0o600))

		require.NoError(t, fileutil.Erase(hostFS(t), path), "size %d", size)

		_, err := os.Stat(path)
		assert.ErrorIs(t, err, fs.ErrNotExist, "size %d", size)
	}
}

func TestEraseMissingFile(t *testing.T) {
	t.Parallel()

	err := fileutil.Erase(hostFS(t), filepath.Join(t.TempDir(), "ghost"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestEraseTruncatesSharedInode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "victim")
	link := filepath.Join(dir, "link")

	require.NoError(t, os.WriteFile(path, []byte("sensitive"), 0o600))
	// A second hard link keeps the inode reachable after removal.
	require.NoError(t, os.Link(path, link))

	require.NoError(t, fileutil.Erase(hostFS(t), path))

	data, err := os.ReadFile(link)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestWriteExclusive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "out.bin")

	require.NoError(t, fileutil.WriteExclusive(hostFS(t), target, []byte("payload"), 0o640))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestWriteExclusiveRefusesExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "out.bin")
	require.NoError(t, os.WriteFile(target, []byte("original"), 0o600))

	err := fileutil.WriteExclusive(hostFS(t), target, []byte("intruder"), 0o600)
	require.ErrorIs(t, err, fileutil.ErrTargetExists)
	require.ErrorIs(t, err, fs.ErrExist)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCommitRechecksTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "race.bin")

	tc, err := fileutil.NewTempContext(hostFS(t), target)
	require.NoError(t, err)
	assert.True(t, fileutil.IsTemp(tc.TmpName))

	_, err = tc.TmpFile.Write([]byte("late"))
	require.NoError(t, err)

	// Another writer wins the race.
	require.NoError(t, os.WriteFile(target, []byte("early"), 0o600))

	err = tc.Commit(0o600)
	tc.CleanupOnError(&err)
	require.ErrorIs(t, err, fs.ErrExist)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "early", string(data))

	_, err = os.Stat(tc.TmpName)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFinalizeOutput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 42)), 0o600))

	stamp := time.Date(2010, 6, 1, 12, 0, 0, 0, time.UTC)

	size, err := fileutil.FinalizeOutput(hostFS(t), path, true, stamp)
	require.NoError(t, err)
	assert.EqualValues(t, 42, size)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp))

	_, err = fileutil.FinalizeOutput(hostFS(t), path+".missing", false, stamp)
	require.Error(t, err)
}

func TestIsTemp(t *testing.T) {
	t.Parallel()

	assert.True(t, fileutil.IsTemp(filepath.Join("a", "b", fileutil.TempPrefix+"x")))
	assert.False(t, fileutil.IsTemp("a/b/file.txt"))
	assert.False(t, fileutil.IsTemp(fileutil.TempPrefix+"dir/file.txt"))
}
