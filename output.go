package main

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	runewidth "github.com/mattn/go-runewidth"
)

// Fixed table column widths, excluding the "| " cell lead.
const (
	filetypeWidth = 21
	pixelWidth    = 7
	lengthWidth   = 10
	filenameLabel = "filename"
)

// Row is one table line, with every requested cell already formatted.
type Row struct {
	Entry  DirectoryEntry
	Name   string
	Type   string
	Pixels *PixelSize // nil when the entry is not a supported image
	Length string     // empty when the size could not be read
}

// Layout renders scanned entries as a name grid or as a bordered table.
type Layout struct {
	cfg     RenderConfig
	fields  Fields
	table   *ExtensionTable
	painter Painter
	warn    func(error)
}

// NewLayout builds a Layout. A nil painter renders without colour; a nil warn
// discards per-entry problems.
func NewLayout(cfg RenderConfig, fields Fields, table *ExtensionTable, painter Painter, warn func(error)) *Layout {
	if painter == nil {
		painter = plainPainter{}
	}
	if warn == nil {
		warn = func(error) {}
	}
	return &Layout{cfg: cfg, fields: fields, table: table, painter: painter, warn: warn}
}

// Render formats entries in the mode selected by the requested fields.
func (l *Layout) Render(entries []DirectoryEntry) string {
	if l.fields.TableMode() {
		return l.renderTable(l.buildRows(entries))
	}
	return l.renderGrid(entries)
}

// role picks the emphasis for an entry name. A highlighted extension wins
// over the directory and shortcut colours.
func (l *Layout) role(e DirectoryEntry) Role {
	switch {
	case l.cfg.Highlight.Active() && l.cfg.Highlight.Contains(e):
		return RoleHighlight
	case e.IsDir():
		return RoleDirectory
	case e.IsShortcut():
		return RoleShortcut
	default:
		return RolePlain
	}
}

// entryMarker prefixes every name: "-" for directories, a space otherwise.
func entryMarker(e DirectoryEntry) string {
	if e.IsDir() {
		return "-"
	}
	return " "
}

// paintName writes the kind marker and the name as one emphasised span.
func (l *Layout) paintName(b *strings.Builder, e DirectoryEntry, name string) {
	b.WriteString(l.painter.Paint(l.role(e), entryMarker(e)+name))
}

// renderGrid writes names in ColumnSize columns. A name that does not fit in
// one FilenameMax-wide field grows by whole fields, absorbing the separator
// between them, until name plus marker fits.
func (l *Layout) renderGrid(entries []DirectoryEntry) string {
	var b strings.Builder
	unit := l.cfg.FilenameMax
	columns := l.cfg.ColumnSize

	col := 1
	for _, e := range entries {
		l.paintName(&b, e, e.Name)
		width := runewidth.StringWidth(e.Name)

		pad := 0
		for units := 1; ; units++ {
			pad = unit*units - (width + 1)
			if units >= 2 {
				pad++
			}
			if pad >= 0 {
				break
			}
			col++
			if col >= columns {
				col = 0
				break
			}
		}
		writeSpaces(&b, pad)

		if col%columns == 0 {
			col = 0
			b.WriteString("\n")
		} else {
			b.WriteString("|")
		}
		col++
	}
	if col != 1 {
		b.WriteString("\n")
	}
	return b.String()
}

// displayName is the base name, or the absolute path when FullPath is set.
func (l *Layout) displayName(e DirectoryEntry) string {
	if !l.fields.FullPath {
		return e.Name
	}
	abs, err := filepath.Abs(e.Path)
	if err != nil {
		l.warn(err)
		return e.Path
	}
	return abs
}

// buildRows computes every requested cell for each entry.
func (l *Layout) buildRows(entries []DirectoryEntry) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		row := Row{Entry: e, Name: l.displayName(e)}
		if l.fields.Type {
			row.Type = classify(e, l.table)
		}
		if l.fields.Graphic {
			if format := formatForExt(e.Ext); format != FormatUnknown {
				px := readHeader(e.Path, format)
				row.Pixels = &px
			}
		}
		if l.fields.Length {
			row.Length = l.length(e)
		}
		rows = append(rows, row)
	}
	return rows
}

func (l *Layout) length(e DirectoryEntry) string {
	var (
		n   uint64
		err error
	)
	if e.IsDir() {
		n, err = directoryByteSize(e.Path)
	} else {
		n, err = fileByteSize(e.Path)
	}
	if err != nil {
		l.warn(err)
		return ""
	}
	if l.cfg.Human {
		return humanize.Bytes(n)
	}
	return strconv.FormatUint(n, 10)
}

// nameWidth is the filename column width: the longest name, at least
// FilenameMax and never narrower than its label.
func (l *Layout) nameWidth(rows []Row) int {
	width := l.cfg.FilenameMax
	for _, r := range rows {
		if w := runewidth.StringWidth(r.Name); w > width {
			width = w
		}
	}
	if width < len(filenameLabel) {
		width = len(filenameLabel)
	}
	return width
}

// header returns the border line naming every column.
func (l *Layout) header(nameWidth int) string {
	var b strings.Builder
	b.WriteString(centered(filenameLabel, nameWidth+1))
	if l.fields.Type {
		b.WriteString("|")
		b.WriteString(centered("filetype", filetypeWidth+1))
	}
	if l.fields.Graphic {
		b.WriteString("|-width--|-height-")
	}
	if l.fields.Length {
		b.WriteString("|--Length---")
	}
	b.WriteString("|")
	return b.String()
}

// centered pads label with dashes to width, the extra dash going left.
func centered(label string, width int) string {
	free := width - len(label)
	if free < 0 {
		free = 0
	}
	right := free / 2
	return strings.Repeat("-", free-right) + label + strings.Repeat("-", right)
}

// cells returns the value cells of a row, without the leading name.
func (l *Layout) cells(r Row) string {
	var b strings.Builder
	if l.fields.Type {
		b.WriteString("| ")
		b.WriteString(padRight(r.Type, filetypeWidth))
	}
	if l.fields.Graphic {
		if r.Pixels != nil {
			b.WriteString("| ")
			b.WriteString(padRight(strconv.FormatUint(uint64(r.Pixels.Width), 10), pixelWidth))
			b.WriteString("| ")
			b.WriteString(padRight(strconv.FormatUint(uint64(r.Pixels.Height), 10), pixelWidth))
		} else {
			b.WriteString("|")
			writeSpaces(&b, pixelWidth+1)
			b.WriteString("|")
			writeSpaces(&b, pixelWidth+1)
		}
	}
	if l.fields.Length {
		b.WriteString("| ")
		b.WriteString(padRight(r.Length, lengthWidth))
	}
	b.WriteString("|")
	return b.String()
}

func (l *Layout) renderTable(rows []Row) string {
	var b strings.Builder
	width := l.nameWidth(rows)
	b.WriteString(l.header(width))
	b.WriteString("\n")
	for _, r := range rows {
		l.paintName(&b, r.Entry, r.Name)
		writeSpaces(&b, width-runewidth.StringWidth(r.Name))
		b.WriteString(l.cells(r))
		b.WriteString("\n")
	}
	return b.String()
}

func padRight(s string, width int) string {
	var b strings.Builder
	b.WriteString(s)
	writeSpaces(&b, width-runewidth.StringWidth(s))
	return b.String()
}

func writeSpaces(b *strings.Builder, n int) {
	if n > 0 {
		b.WriteString(strings.Repeat(" ", n))
	}
}
