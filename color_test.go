package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorName(t *testing.T) {
	tests := []struct {
		in   string
		want ColorBits
	}{
		{"RED", ColorRed},
		{"green", ColorGreen},
		{" Blue ", ColorBlue},
		{"YELLOW", ColorRed | ColorGreen},
		{"SKYBLUE", ColorBlue | ColorGreen},
		{"PURPLE", ColorRed | ColorBlue},
		{"WHITE", ColorRed | ColorGreen | ColorBlue},
	}
	for _, tt := range tests {
		got, err := parseColorName(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseColorName("ORANGE")
	assert.ErrorContains(t, err, `unknown color "ORANGE"`)
}

func TestColorBitsAttributes(t *testing.T) {
	tests := []struct {
		bits ColorBits
		fg   color.Attribute
		bg   color.Attribute
	}{
		{0, color.FgBlack, color.BgBlack},
		{ColorRed, color.FgRed, color.BgRed},
		{ColorGreen, color.FgGreen, color.BgGreen},
		{ColorBlue, color.FgBlue, color.BgBlue},
		{ColorRed | ColorGreen, color.FgYellow, color.BgYellow},
		{ColorBlue | ColorGreen, color.FgCyan, color.BgCyan},
		{ColorRed | ColorBlue, color.FgMagenta, color.BgMagenta},
		{ColorRed | ColorGreen | ColorBlue, color.FgWhite, color.BgWhite},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.fg, tt.bits.foreground(), "bits %d", tt.bits)
		assert.Equal(t, tt.bg, tt.bits.background(), "bits %d", tt.bits)
	}
}

func TestColorPainter(t *testing.T) {
	cfg := defaultRenderConfig()
	cfg.DirColor = ColorRed
	p := newColorPainter(cfg)

	assert.Equal(t, "name", p.Paint(RolePlain, "name"))
	assert.Regexp(t, `^\x1b\[31m-src\x1b\[0*m$`, p.Paint(RoleDirectory, "-src"))
	assert.Regexp(t, `^\x1b\[34m link\x1b\[0*m$`, p.Paint(RoleShortcut, " link"))
	assert.Regexp(t, `^\x1b\[30;43m a\.go\x1b\[[0;]*m$`, p.Paint(RoleHighlight, " a.go"))
}

func TestPlainPainter(t *testing.T) {
	for _, role := range []Role{RolePlain, RoleDirectory, RoleShortcut, RoleHighlight} {
		assert.Equal(t, "-src", plainPainter{}.Paint(role, "-src"))
	}
}

func TestNewPainter(t *testing.T) {
	cfg := defaultRenderConfig()

	assert.IsType(t, plainPainter{}, newPainter(cfg, &bytes.Buffer{}))

	cfg.UseColor = false
	assert.IsType(t, plainPainter{}, newPainter(cfg, &bytes.Buffer{}))
}
