package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// fileByteSize returns the size of the file at path. A file that vanished
// since it was listed is reported as an error.
func fileByteSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("error reading size of %s: %w", path, err)
	}
	return uint64(info.Size()), nil
}

// directoryByteSize sums the sizes of every regular file below root.
// Symlinked files count with their target size; symlinked directories are
// not descended into.
func directoryByteSize(root string) (uint64, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return 0, fmt.Errorf("error reading directory %s: %w", root, err)
	}

	var total uint64
	for _, d := range entries {
		path := filepath.Join(root, d.Name())
		switch {
		case d.IsDir():
			sub, err := directoryByteSize(path)
			if err != nil {
				return 0, err
			}
			total += sub
		case d.Type().IsRegular():
			info, err := d.Info()
			if err != nil {
				return 0, fmt.Errorf("error reading size of %s: %w", path, err)
			}
			total += uint64(info.Size())
		case d.Type()&os.ModeSymlink != 0:
			info, err := os.Stat(path)
			if err != nil {
				// Dangling links have no size to contribute.
				continue
			}
			if info.Mode().IsRegular() {
				total += uint64(info.Size())
			}
		}
	}
	return total, nil
}
