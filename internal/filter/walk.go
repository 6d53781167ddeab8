package filter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/absfs/absfs"
)

// ErrRootNotFound is returned when the walk root does not exist.
var ErrRootNotFound = errors.New("root does not exist")

// PathError records a directory that could not be listed.
type PathError struct {
	Path string
	Err  error
}

func (e PathError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

func (e PathError) Unwrap() error { return e.Err }

// Listing is the result of enumerating one root.
type Listing struct {
	// Files are the selected regular files, as paths joined onto the root.
	Files []string
	// Scanned counts every regular file seen, selected or not.
	Scanned int
	// Errors are directories that could not be read. Their subtrees are skipped.
	Errors []PathError
}

// Walk descends root depth-first and returns the files flt selects. A root that is a
// regular file is treated as a tree of one. Symbolic links are neither followed nor selected.
// Siblings are visited in name order.
func Walk(fsys absfs.FileSystem, root string, flt *Filter) (Listing, error) {
	var listing Listing

	info, err := fsys.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return listing, fmt.Errorf("%w: %q", ErrRootNotFound, root)
		}

		return listing, fmt.Errorf("stat %q: %w", root, err)
	}

	if !info.IsDir() {
		if info.Mode().IsRegular() {
			listing.Scanned++

			if flt.Match(filepath.Base(root)) {
				listing.Files = append(listing.Files, root)
			}
		}

		return listing, nil
	}

	walkDir(fsys, root, "", flt, &listing)

	return listing, nil
}

func walkDir(fsys absfs.FileSystem, dir, rel string, flt *Filter, listing *Listing) {
	entries, err := readDir(fsys, dir)
	if err != nil {
		listing.Errors = append(listing.Errors, PathError{Path: dir, Err: err})

		return
	}

	for _, entry := range entries {
		if entry.Name() == "." || entry.Name() == ".." {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		relPath := filepath.Join(rel, entry.Name())

		switch {
		case entry.IsDir():
			walkDir(fsys, path, relPath, flt, listing)
		case entry.Mode().IsRegular():
			listing.Scanned++

			if flt.Match(relPath) {
				listing.Files = append(listing.Files, path)
			}
		}
	}
}

func readDir(fsys absfs.FileSystem, dir string) ([]os.FileInfo, error) {
	f, err := fsys.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("opening directory: %w", err)
	}
	defer f.Close()

	entries, err := f.Readdir(-1)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	// Stable output for dry runs; processing order is still unspecified.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	return entries, nil
}
