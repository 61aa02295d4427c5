package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"unicode"

	"github.com/spf13/viper"
)

const fsrcName = ".fsrc"

type tokenClass int

const (
	tokIdent tokenClass = iota + 1
	tokInt
	tokSymbol
)

type token struct {
	class tokenClass
	text  string
	line  int
}

// fsrcLexer splits a preferences file into identifier, integer and symbol
// tokens. Whitespace separates tokens; a change of class also ends one.
type fsrcLexer struct {
	src  []rune
	pos  int
	line int
}

func newFsrcLexer(src string) *fsrcLexer {
	return &fsrcLexer{src: []rune(src), line: 1}
}

// next returns the next token, or false at end of input.
func (l *fsrcLexer) next() (token, bool) {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		if l.src[l.pos] == '\n' {
			l.line++
		}
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{}, false
	}

	start := l.pos
	tok := token{line: l.line}
	switch r := l.src[l.pos]; {
	case unicode.IsLetter(r):
		tok.class = tokIdent
	case unicode.IsDigit(r):
		tok.class = tokInt
	default:
		tok.class = tokSymbol
	}
	l.pos++

	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if unicode.IsSpace(r) || !continues(tok.class, r) {
			break
		}
		l.pos++
	}
	tok.text = string(l.src[start:l.pos])
	return tok, true
}

func continues(class tokenClass, r rune) bool {
	switch class {
	case tokIdent:
		return unicode.IsLetter(r) || r == '_'
	case tokInt:
		return unicode.IsDigit(r)
	default:
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}
}

// FsrcError describes the first malformed statement in a preferences file.
type FsrcError struct {
	Line   int
	Token  string
	Reason string
}

func (e *FsrcError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%s line %d: %s", fsrcName, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s line %d: %s (near %q)", fsrcName, e.Line, e.Reason, e.Token)
}

// fsrcSetting is one KEY = VALUE statement.
type fsrcSetting struct {
	Key   string
	Value token
}

var fsrcKeys = map[string]string{
	"FILENAME_MAX": "filename_max",
	"COLUMN_SIZE":  "column_size",
	"USE_COLOR":    "use_color",
	"DIR_COLOR":    "dir_color",
	"LINK_COLOR":   "link_color",
}

// parseFsrc reads KEY = VALUE statements. On a malformed statement it returns
// the statements read so far together with an *FsrcError.
func parseFsrc(src string) ([]fsrcSetting, error) {
	lex := newFsrcLexer(src)
	var settings []fsrcSetting
	for {
		key, ok := lex.next()
		if !ok {
			return settings, nil
		}
		if _, known := fsrcKeys[key.text]; key.class != tokIdent || !known {
			return settings, &FsrcError{Line: key.line, Token: key.text, Reason: "illegal token"}
		}

		op, ok := lex.next()
		if !ok {
			return settings, &FsrcError{Line: key.line, Token: key.text, Reason: "unexpected end of file after key"}
		}
		if op.class != tokSymbol || op.text != "=" {
			return settings, &FsrcError{Line: op.line, Token: op.text, Reason: "missing '=' after " + key.text}
		}

		value, ok := lex.next()
		if !ok {
			return settings, &FsrcError{Line: op.line, Token: key.text, Reason: "missing value"}
		}
		settings = append(settings, fsrcSetting{Key: key.text, Value: value})
	}
}

// applyFsrc installs settings as viper defaults so that config files,
// environment variables and flags still take precedence. Settings are applied
// in order; the first invalid value stops the application.
func applyFsrc(v *viper.Viper, settings []fsrcSetting) error {
	for _, s := range settings {
		key := fsrcKeys[s.Key]
		switch s.Key {
		case "FILENAME_MAX", "COLUMN_SIZE":
			if s.Value.class != tokInt {
				return &FsrcError{Line: s.Value.line, Token: s.Value.text, Reason: s.Key + " needs an integer"}
			}
			n, err := strconv.Atoi(s.Value.text)
			if err != nil {
				return &FsrcError{Line: s.Value.line, Token: s.Value.text, Reason: err.Error()}
			}
			v.SetDefault(key, n)
		case "USE_COLOR":
			switch s.Value.text {
			case "TRUE":
				v.SetDefault(key, true)
			case "FALSE":
				v.SetDefault(key, false)
			}
		case "DIR_COLOR", "LINK_COLOR":
			if _, ok := colorNames[s.Value.text]; ok {
				v.SetDefault(key, s.Value.text)
			}
		}
	}
	return nil
}

// loadFsrc reads the preferences file from home, applying whatever parses.
// A missing file is not an error.
func loadFsrc(v *viper.Viper, home string) error {
	data, err := os.ReadFile(filepath.Join(home, fsrcName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading %s: %w", fsrcName, err)
	}
	return loadFsrcFrom(v, string(data))
}

func loadFsrcFrom(v *viper.Viper, src string) error {
	settings, parseErr := parseFsrc(src)
	if err := applyFsrc(v, settings); err != nil {
		return err
	}
	return parseErr
}
