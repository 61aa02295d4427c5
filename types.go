package main

// EntryKind discriminates what a directory child is.
type EntryKind int

const (
	KindOther EntryKind = iota
	KindRegularFile
	KindDirectory
)

// DirectoryEntry is a read-only snapshot of one child of the listed directory.
type DirectoryEntry struct {
	Path string // Directory joined with Name
	Name string
	Kind EntryKind
	Ext  string // Includes the leading dot; empty when the name has none
}

// IsDir reports whether the entry (or its symlink target) is a directory.
func (e DirectoryEntry) IsDir() bool {
	return e.Kind == KindDirectory
}

// IsShortcut reports whether the entry is a Windows shortcut file.
func (e DirectoryEntry) IsShortcut() bool {
	return !e.IsDir() && (e.Ext == ".lnk" || e.Ext == ".url")
}

// PixelSize holds image dimensions. Both zero means undetermined.
type PixelSize struct {
	Width  uint32
	Height uint32
}

// Fields selects the optional table columns. The zero value means grid mode.
type Fields struct {
	Type     bool
	Graphic  bool
	Length   bool
	FullPath bool
	List     bool // Table mode with no extra columns
}

// TableMode reports whether any field forces the table layout.
func (f Fields) TableMode() bool {
	return f.List || f.Type || f.Graphic || f.Length || f.FullPath
}

// RenderConfig is built once at startup and never mutated afterwards.
type RenderConfig struct {
	FilenameMax int
	ColumnSize  int
	UseColor    bool
	DirColor    ColorBits
	LinkColor   ColorBits
	Highlight   ExtSet
	Only        ExtSet
	Human       bool
}

func defaultRenderConfig() RenderConfig {
	return RenderConfig{
		FilenameMax: 24,
		ColumnSize:  4,
		UseColor:    true,
		DirColor:    ColorGreen,
		LinkColor:   ColorBlue,
	}
}
