package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ExtensionTable holds the three disjoint extension -> label mappings used by
// classify. Keys include the leading dot and are matched exactly.
type ExtensionTable struct {
	Media  map[string]string `yaml:"media"`
	Code   map[string]string `yaml:"code"`
	Binary map[string]string `yaml:"binary"`
}

func defaultExtensionTable() *ExtensionTable {
	return &ExtensionTable{
		Media: map[string]string{
			".jpg": "JPEG",
			".png": "PNG",
			".bmp": "BMP",
			".wav": "WAVE",
			".mp3": "MP3",
			".ico": "icon",
		},
		Code: map[string]string{
			".c":    "C",
			".java": "Java",
			".py":   "Python",
			".cpp":  "C++",
			".hsp":  "HSP",
			".h":    "C/C++/C# header",
			".txt":  "Text",
			".html": "HTML",
			".css":  "CSS",
			".js":   "JavaScript",
			".xml":  "XML",
			".ini":  "Initialize",
		},
		Binary: map[string]string{
			".exe": "Application",
			".bin": "Binery",
			".pdf": "PDF",
		},
	}
}

// Lookup returns the label for ext, checking media, code and binary in order.
func (t *ExtensionTable) Lookup(ext string) (string, bool) {
	if t == nil {
		return "", false
	}
	for _, m := range []map[string]string{t.Media, t.Code, t.Binary} {
		if label, ok := m[ext]; ok {
			return label, true
		}
	}
	return "", false
}

// Merge adds the entries of other to t. An extension already present in a
// different table is rejected so the tables stay disjoint.
func (t *ExtensionTable) Merge(other *ExtensionTable) error {
	if other == nil {
		return nil
	}
	type section struct {
		name string
		dst  *map[string]string
		src  map[string]string
	}
	sections := []section{
		{"media", &t.Media, other.Media},
		{"code", &t.Code, other.Code},
		{"binary", &t.Binary, other.Binary},
	}

	var errs []error
	for _, s := range sections {
		if *s.dst == nil {
			*s.dst = make(map[string]string)
		}
		for ext, label := range s.src {
			if ext == "" || ext[0] != '.' {
				errs = append(errs, fmt.Errorf("%s: extension %q must start with a dot", s.name, ext))
				continue
			}
			if owner := t.owner(ext); owner != "" && owner != s.name {
				errs = append(errs, fmt.Errorf("%s: extension %q is already listed under %s", s.name, ext, owner))
				continue
			}
			(*s.dst)[ext] = label
		}
	}
	return errors.Join(errs...)
}

func (t *ExtensionTable) owner(ext string) string {
	switch {
	case hasKey(t.Media, ext):
		return "media"
	case hasKey(t.Code, ext):
		return "code"
	case hasKey(t.Binary, ext):
		return "binary"
	}
	return ""
}

func hasKey(m map[string]string, k string) bool {
	_, ok := m[k]
	return ok
}

// loadExtensionOverrides reads types.yml from the fs config directory, if
// present, and merges it into table. A missing file is not an error.
func loadExtensionOverrides(table *ExtensionTable, configDir string) error {
	path := filepath.Join(configDir, "types.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading type definitions %s: %w", path, err)
	}

	var extra ExtensionTable
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return fmt.Errorf("error parsing type definitions %s: %w", path, err)
	}
	if err := table.Merge(&extra); err != nil {
		return fmt.Errorf("invalid type definitions in %s: %w", path, err)
	}
	return nil
}

// classify returns the human-readable category of an entry.
func classify(e DirectoryEntry, table *ExtensionTable) string {
	if e.IsDir() {
		return "directory"
	}
	if e.Ext == "" {
		return "file"
	}
	if e.IsShortcut() {
		return "shortcut"
	}
	if label, ok := table.Lookup(e.Ext); ok {
		return label + " file"
	}
	return "file"
}
