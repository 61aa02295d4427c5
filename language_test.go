package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	table := defaultExtensionTable()

	tests := []struct {
		name  string
		entry DirectoryEntry
		want  string
	}{
		{"directory", DirectoryEntry{Name: "src", Kind: KindDirectory}, "directory"},
		{"directory with dotted name", DirectoryEntry{Name: "v1.py", Kind: KindDirectory}, "directory"},
		{"no extension", DirectoryEntry{Name: "Makefile", Kind: KindRegularFile}, "file"},
		{"shortcut lnk", DirectoryEntry{Name: "a.lnk", Kind: KindRegularFile, Ext: ".lnk"}, "shortcut"},
		{"shortcut url", DirectoryEntry{Name: "a.url", Kind: KindRegularFile, Ext: ".url"}, "shortcut"},
		{"media", DirectoryEntry{Name: "a.jpg", Kind: KindRegularFile, Ext: ".jpg"}, "JPEG file"},
		{"code", DirectoryEntry{Name: "a.py", Kind: KindRegularFile, Ext: ".py"}, "Python file"},
		{"header", DirectoryEntry{Name: "a.h", Kind: KindRegularFile, Ext: ".h"}, "C/C++/C# header file"},
		{"binary", DirectoryEntry{Name: "a.exe", Kind: KindRegularFile, Ext: ".exe"}, "Application file"},
		{"unknown", DirectoryEntry{Name: "a.xyz", Kind: KindRegularFile, Ext: ".xyz"}, "file"},
		{"case sensitive", DirectoryEntry{Name: "a.PY", Kind: KindRegularFile, Ext: ".PY"}, "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.entry, table))
		})
	}
}

func TestDefaultExtensionTableIsDisjoint(t *testing.T) {
	table := defaultExtensionTable()
	seen := map[string]bool{}
	for _, m := range []map[string]string{table.Media, table.Code, table.Binary} {
		for ext := range m {
			assert.False(t, seen[ext], "extension %q listed twice", ext)
			assert.Equal(t, byte('.'), ext[0], "extension %q lacks its dot", ext)
			seen[ext] = true
		}
	}
}

func TestExtensionTableMerge(t *testing.T) {
	table := defaultExtensionTable()
	err := table.Merge(&ExtensionTable{
		Media:  map[string]string{".webp": "WebP"},
		Code:   map[string]string{".go": "Go", ".jpg": "Not JPEG"},
		Binary: map[string]string{"so": "Shared object"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `".jpg" is already listed under media`)
	assert.Contains(t, err.Error(), `"so" must start with a dot`)

	label, ok := table.Lookup(".webp")
	assert.True(t, ok)
	assert.Equal(t, "WebP", label)
	assert.Equal(t, "Go file", classify(DirectoryEntry{Kind: KindRegularFile, Ext: ".go"}, table))
	assert.Equal(t, "JPEG file", classify(DirectoryEntry{Kind: KindRegularFile, Ext: ".jpg"}, table))
}

func TestExtensionTableSubstitution(t *testing.T) {
	table := &ExtensionTable{Code: map[string]string{".rs": "Rust"}}
	assert.Equal(t, "Rust file", classify(DirectoryEntry{Kind: KindRegularFile, Ext: ".rs"}, table))
	assert.Equal(t, "file", classify(DirectoryEntry{Kind: KindRegularFile, Ext: ".py"}, table))
	assert.Equal(t, "file", classify(DirectoryEntry{Kind: KindRegularFile, Ext: ".py"}, nil))
}

func TestLoadExtensionOverrides(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		table := defaultExtensionTable()
		require.NoError(t, loadExtensionOverrides(table, t.TempDir()))
		assert.Len(t, table.Media, 6)
	})

	t.Run("adds labels", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "types.yml"), []byte(`
media:
  ".webp": WebP
code:
  ".go": Go
binary:
  ".so": Shared object
`))
		table := defaultExtensionTable()
		require.NoError(t, loadExtensionOverrides(table, dir))
		assert.Equal(t, "Shared object file", classify(DirectoryEntry{Kind: KindRegularFile, Ext: ".so"}, table))
		assert.Equal(t, "WebP file", classify(DirectoryEntry{Kind: KindRegularFile, Ext: ".webp"}, table))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "types.yml"), []byte("media: [unterminated"))
		err := loadExtensionOverrides(defaultExtensionTable(), dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing type definitions")
	})

	t.Run("conflicting key", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "types.yml"), []byte("binary:\n  \".py\": Bytecode\n"))
		err := loadExtensionOverrides(defaultExtensionTable(), dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already listed under code")
	})
}
