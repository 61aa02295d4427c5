package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorBits is an additive combination of the three primaries.
type ColorBits uint8

const (
	ColorBlue  ColorBits = 0x1
	ColorGreen ColorBits = 0x2
	ColorRed   ColorBits = 0x4
)

var colorNames = map[string]ColorBits{
	"RED":     ColorRed,
	"BLUE":    ColorBlue,
	"GREEN":   ColorGreen,
	"YELLOW":  ColorRed | ColorGreen,
	"SKYBLUE": ColorBlue | ColorGreen,
	"PURPLE":  ColorRed | ColorBlue,
	"WHITE":   ColorRed | ColorBlue | ColorGreen,
}

// parseColorName maps a colour name from the preferences vocabulary.
func parseColorName(name string) (ColorBits, error) {
	bits, ok := colorNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown color %q (want RED, BLUE, GREEN, YELLOW, SKYBLUE, PURPLE or WHITE)", name)
	}
	return bits, nil
}

// ansiIndex converts the primaries to the ANSI palette index (red=1, green=2, blue=4).
func (c ColorBits) ansiIndex() color.Attribute {
	var idx color.Attribute
	if c&ColorRed != 0 {
		idx |= 1
	}
	if c&ColorGreen != 0 {
		idx |= 2
	}
	if c&ColorBlue != 0 {
		idx |= 4
	}
	return idx
}

func (c ColorBits) foreground() color.Attribute {
	return color.FgBlack + c.ansiIndex()
}

func (c ColorBits) background() color.Attribute {
	return color.BgBlack + c.ansiIndex()
}

// Role names the kind of emphasis requested for a span of text.
type Role int

const (
	RolePlain Role = iota
	RoleDirectory
	RoleShortcut
	RoleHighlight
)

// highlightBackground is the fixed emphasis for highlighted entries: no
// foreground primaries on a green and red background.
const highlightBackground = ColorGreen | ColorRed

// Painter wraps text in the emphasis for role. The returned span restores
// the default colours at its end.
type Painter interface {
	Paint(role Role, text string) string
}

type plainPainter struct{}

func (plainPainter) Paint(_ Role, text string) string {
	return text
}

type colorPainter struct {
	roles map[Role]*color.Color
}

func newColorPainter(cfg RenderConfig) *colorPainter {
	p := &colorPainter{
		roles: map[Role]*color.Color{
			RoleDirectory: color.New(cfg.DirColor.foreground()),
			RoleShortcut:  color.New(cfg.LinkColor.foreground()),
			RoleHighlight: color.New(ColorBits(0).foreground(), highlightBackground.background()),
		},
	}
	for _, c := range p.roles {
		c.EnableColor()
	}
	return p
}

func (p *colorPainter) Paint(role Role, text string) string {
	c, ok := p.roles[role]
	if !ok {
		return text
	}
	return c.Sprint(text)
}

// newPainter picks the colour backend when colour is enabled and stdout is a
// terminal, and the plain backend otherwise.
func newPainter(cfg RenderConfig, out io.Writer) Painter {
	if !cfg.UseColor || !isTerminal(out) {
		return plainPainter{}
	}
	return newColorPainter(cfg)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// warnf reports a recoverable problem on stderr.
func warnf(format string, a ...any) {
	prefix := "Warning:"
	if isTerminal(os.Stderr) {
		prefix = color.New(color.FgYellow).Sprint(prefix)
	}
	fmt.Fprintf(os.Stderr, prefix+" "+format+"\n", a...)
}
