// Package fileutil provides shared file operation helpers over an absfs.FileSystem.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/absfs/absfs"
	"github.com/google/uuid"
)

// TempPrefix prefixes the names of in-progress output files.
const TempPrefix = ".sealwalk-tmp-"

// ErrTargetExists is returned when an output path is already taken.
var ErrTargetExists = fmt.Errorf("target already exists: %w", fs.ErrExist)

// IsTemp reports whether name is an in-progress output file.
func IsTemp(name string) bool {
	return strings.HasPrefix(filepath.Base(name), TempPrefix)
}

// TempContext holds state for an exclusive, atomic file write: data goes to a
// temporary sibling of Target which is renamed into place on Commit.
type TempContext struct {
	fs      absfs.FileSystem
	Target  string
	TmpFile absfs.File
	TmpName string
}

// NewTempContext fails with ErrTargetExists if target is present, otherwise creates
// the temporary file next to it. Caller must defer CleanupOnError.
func NewTempContext(fsys absfs.FileSystem, target string) (*TempContext, error) {
	if err := checkAbsent(fsys, target); err != nil {
		return nil, err
	}

	const ownerReadWrite = 0o600

	tmpName := filepath.Join(filepath.Dir(target), TempPrefix+uuid.NewString())

	tmpFile, err := fsys.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, ownerReadWrite)
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &TempContext{
		fs:      fsys,
		Target:  target,
		TmpFile: tmpFile,
		TmpName: tmpName,
	}, nil
}

// CleanupOnError closes the temp file and removes it if the write failed.
func (tc *TempContext) CleanupOnError(errp *error) {
	tc.TmpFile.Close() //nolint:errcheck,gosec // best-effort cleanup

	if *errp != nil {
		tc.fs.Remove(tc.TmpName) //nolint:errcheck,gosec // best-effort cleanup
	}
}

// Commit syncs and closes the temp file, applies perm and renames it to Target.
// The target is checked again right before the rename. This is best-effort: a path
// created between that check and the rename is still replaced.
func (tc *TempContext) Commit(perm os.FileMode) error {
	if err := tc.TmpFile.Sync(); err != nil {
		return fmt.Errorf("syncing temporary file: %w", err)
	}

	if err := tc.TmpFile.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := tc.fs.Chmod(tc.TmpName, perm); err != nil {
		return fmt.Errorf("setting file permissions: %w", err)
	}

	if err := checkAbsent(tc.fs, tc.Target); err != nil {
		return err
	}

	if err := tc.fs.Rename(tc.TmpName, tc.Target); err != nil {
		return fmt.Errorf("renaming output file: %w", err)
	}

	return nil
}

// WriteExclusive atomically writes data to target, refusing to replace an existing file.
func WriteExclusive(fsys absfs.FileSystem, target string, data []byte, perm os.FileMode) (err error) {
	tc, err := NewTempContext(fsys, target)
	if err != nil {
		return err
	}

	defer tc.CleanupOnError(&err)

	if _, err = tc.TmpFile.Write(data); err != nil {
		return fmt.Errorf("writing %q: %w", tc.TmpName, err)
	}

	return tc.Commit(perm)
}

// FinalizeOutput optionally preserves timestamps and returns the output file size.
func FinalizeOutput(fsys absfs.FileSystem, outPath string, preserveTimestamps bool, modTime time.Time) (int64, error) {
	if preserveTimestamps {
		if err := fsys.Chtimes(outPath, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	outInfo, err := fsys.Stat(outPath)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", outPath, err)
	}

	return outInfo.Size(), nil
}

func checkAbsent(fsys absfs.FileSystem, path string) error {
	_, err := fsys.Stat(path)

	switch {
	case err == nil:
		return fmt.Errorf("%q: %w", path, ErrTargetExists)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("stat %q: %w", path, err)
	}
}
