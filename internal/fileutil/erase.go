package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/absfs/absfs"
)

// Erase overwrites the current extent of path with zeros, syncs, truncates it to
// zero length and removes the directory entry.
//
// This is a single best-effort pass over the extent the filesystem reports.
// It gives no guarantee on copy-on-write filesystems, SSDs with wear levelling,
// or storage with snapshots.
func Erase(fsys absfs.FileSystem, path string) (err error) {
	file, err := fsys.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("opening %q for erase: %w", path, err)
	}

	closed := false

	defer func() {
		if !closed {
			err = errors.Join(err, file.Close())
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat %q: %w", path, err)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seeking %q: %w", path, err)
	}

	if err := writeZeros(file, info.Size()); err != nil {
		return fmt.Errorf("overwriting %q: %w", path, err)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("syncing %q: %w", path, err)
	}

	if err := file.Truncate(0); err != nil {
		return fmt.Errorf("truncating %q: %w", path, err)
	}

	closed = true

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", path, err)
	}

	if err := fsys.Remove(path); err != nil {
		return fmt.Errorf("removing %q: %w", path, err)
	}

	return nil
}

// writeZeros writes exactly size zero bytes to w.
func writeZeros(w io.Writer, size int64) error {
	bufp, ok := zeroPool.Get().(*[]byte)
	if !ok {
		return errors.New("invalid buffer type from pool") //nolint:err113
	}

	defer zeroPool.Put(bufp)

	buf := *bufp

	for size > 0 {
		n := int64(len(buf))
		if size < n {
			n = size
		}

		written, err := w.Write(buf[:n])
		if err != nil {
			return err
		}

		size -= int64(written)
	}

	return nil
}
