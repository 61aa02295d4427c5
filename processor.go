package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	gitignore "github.com/monochromegane/go-gitignore"
)

// Keys used in highlight and filter sets for entries without a real extension.
const (
	dirKey        = "dir"
	noExtKey      = "nope"
	gitignoreFile = ".gitignore"
)

// ExtSet is a set of extensions written without their leading dot.
type ExtSet map[string]struct{}

// newExtSet builds a set from user input. Values may be comma-separated and
// may carry a leading dot, which is dropped.
func newExtSet(values []string) ExtSet {
	set := make(ExtSet)
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimPrefix(strings.TrimSpace(part), ".")
			if part != "" {
				set[part] = struct{}{}
			}
		}
	}
	return set
}

// Active reports whether the set was given any values.
func (s ExtSet) Active() bool {
	return len(s) > 0
}

// Contains reports whether the entry's key is in the set.
func (s ExtSet) Contains(e DirectoryEntry) bool {
	_, ok := s[setKey(e)]
	return ok
}

// setKey is the extension without its dot, or a sentinel for directories and
// extensionless files.
func setKey(e DirectoryEntry) string {
	if e.IsDir() {
		return dirKey
	}
	if e.Ext == "" {
		return noExtKey
	}
	return e.Ext[1:]
}

// entryExt returns the extension of a file name. A leading dot alone does not
// start an extension, so ".bashrc" has none.
func entryExt(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i:]
}

// ScanOptions configures scanDirectory.
type ScanOptions struct {
	// Only keeps entries whose key is in the set, when the set is non-empty.
	Only ExtSet
	// RespectGitignore hides entries matched by dir/.gitignore.
	RespectGitignore bool
}

// ScanResult holds the ordered entries and the per-entry problems that caused
// entries to be skipped.
type ScanResult struct {
	Entries  []DirectoryEntry
	Warnings []error
}

// scanDirectory lists the immediate children of dir, directories first and
// then by path in byte order.
func scanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("filesystem cannot find a object -- '%s'", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("object is not a directory -- '%s'", dir)
	}

	children, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	var ignoreMatcher gitignore.IgnoreMatcher
	if opts.RespectGitignore {
		gitIgnorePath := filepath.Join(dir, gitignoreFile)
		if _, err := os.Stat(gitIgnorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(gitIgnorePath)
			if err != nil {
				return nil, fmt.Errorf("could not parse %s: %w", gitIgnorePath, err)
			}
			ignoreMatcher = matcher
		}
	}

	result := &ScanResult{Entries: make([]DirectoryEntry, 0, len(children))}
	for _, d := range children {
		name := d.Name()
		path := filepath.Join(dir, name)
		if !utf8.ValidString(name) {
			result.Warnings = append(result.Warnings, fmt.Errorf("invalid Unicode character is in the path %q", path))
			continue
		}

		entry := DirectoryEntry{
			Path: path,
			Name: name,
			Kind: entryKind(path, d),
		}
		if !entry.IsDir() {
			entry.Ext = entryExt(name)
		}

		if ignoreMatcher != nil && ignoreMatcher.Match(path, entry.IsDir()) {
			continue
		}
		if opts.Only.Active() && !opts.Only.Contains(entry) {
			continue
		}
		result.Entries = append(result.Entries, entry)
	}

	sortEntries(result.Entries)
	return result, nil
}

// entryKind classifies a child, following symlinks the way a stat would.
func entryKind(path string, d os.DirEntry) EntryKind {
	mode := d.Type()
	if mode&os.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil {
			return KindOther
		}
		mode = info.Mode()
	}
	switch {
	case mode.IsDir():
		return KindDirectory
	case mode.IsRegular():
		return KindRegularFile
	default:
		return KindOther
	}
}

func sortEntries(entries []DirectoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Path < entries[j].Path
	})
}
