package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// maxPickerDepth bounds the directory walk that feeds the picker.
const maxPickerDepth = 6

// directoryCandidates collects root and the directories below it, skipping
// hidden ones.
func directoryCandidates(root string) ([]string, error) {
	candidates := []string{root}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Unreadable directories are simply not offered
		}
		if path == root || !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		rel, _ := filepath.Rel(root, path)
		if strings.Count(filepath.ToSlash(rel), "/") >= maxPickerDepth {
			return fs.SkipDir
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for directories: %w", err)
	}
	return candidates, nil
}

// runInteractiveFinder lets the user pick the directory to list. An aborted
// selection returns an empty path and no error.
func runInteractiveFinder(root string) (string, error) {
	candidates, err := directoryCandidates(root)
	if err != nil {
		return "", err
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select the directory to list. Press Enter to confirm."
			}
			result, err := scanDirectory(candidates[i], ScanOptions{})
			if err != nil {
				return err.Error()
			}
			var b strings.Builder
			for _, e := range result.Entries {
				b.WriteString(entryMarker(e))
				b.WriteString(e.Name)
				b.WriteString("\n")
			}
			return b.String()
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", fmt.Errorf("fuzzy finder error: %w", err)
	}
	return candidates[idx], nil
}
