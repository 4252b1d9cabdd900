// File: lexer.go
// Title: PL2 Lexical Analyzer
// Description: Splits pl2 source into words, literals and command
//              separators while tracking line numbers and validating the
//              encoding.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/msto63/pl2/foundation/pl2/diag"
)

// LexemeType classifies a lexeme
type LexemeType int

const (
	LexemeEOF LexemeType = iota
	LexemeWord
	LexemeString
	LexemeSeparator
)

// String returns a string representation of the lexeme type
func (lt LexemeType) String() string {
	switch lt {
	case LexemeEOF:
		return "EOF"
	case LexemeWord:
		return "WORD"
	case LexemeString:
		return "STRING"
	case LexemeSeparator:
		return "SEPARATOR"
	default:
		return "UNKNOWN"
	}
}

// Lexeme is one unit of source text with the line it starts on
type Lexeme struct {
	Type  LexemeType
	Value string // escapes resolved for strings
	Line  int    // 1-based
}

// LexError describes invalid source text
type LexError struct {
	Code    diag.Code
	Line    int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Lexer performs lexical analysis of pl2 source
type Lexer struct {
	input string
	pos   int // byte offset of the next unread rune
	line  int
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1}
}

// Line returns the current line number
func (l *Lexer) Line() int { return l.line }

// Next returns the next lexeme. At the end of input it keeps returning
// LexemeEOF.
func (l *Lexer) Next() (Lexeme, error) {
	for {
		r, size, err := l.peek()
		if err != nil {
			return Lexeme{}, err
		}
		switch {
		case size == 0:
			return Lexeme{Type: LexemeEOF, Line: l.line}, nil
		case r == '\n':
			lex := Lexeme{Type: LexemeSeparator, Value: "\n", Line: l.line}
			l.pos += size
			l.line++
			return lex, nil
		case r == ';':
			l.pos += size
			return Lexeme{Type: LexemeSeparator, Value: ";", Line: l.line}, nil
		case unicode.IsSpace(r):
			l.pos += size
		case r == '#':
			if err := l.skipComment(); err != nil {
				return Lexeme{}, err
			}
		case r == '"' || r == '\'':
			return l.readString(r)
		default:
			return l.readWord()
		}
	}
}

// Tokenize returns all lexemes up to and including LexemeEOF
func (l *Lexer) Tokenize() ([]Lexeme, error) {
	var out []Lexeme
	for {
		lex, err := l.Next()
		if err != nil {
			return out, err
		}
		out = append(out, lex)
		if lex.Type == LexemeEOF {
			return out, nil
		}
	}
}

// peek decodes the rune at pos. size is 0 at the end of input.
func (l *Lexer) peek() (rune, int, error) {
	if l.pos >= len(l.input) {
		return 0, 0, nil
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	if r == utf8.RuneError && size == 1 {
		return 0, 0, l.errorf(diag.CodeInvalidEncoding, l.line, "invalid UTF-8 byte 0x%02x", l.input[l.pos])
	}
	if r == 0 {
		return 0, 0, l.errorf(diag.CodeInvalidEncoding, l.line, "NUL byte in source")
	}
	return r, size, nil
}

func (l *Lexer) skipComment() error {
	for {
		r, size, err := l.peek()
		if err != nil {
			return err
		}
		if size == 0 || r == '\n' {
			return nil
		}
		l.pos += size
	}
}

// readWord reads a bare token. Its value slices the input.
func (l *Lexer) readWord() (Lexeme, error) {
	start := l.pos
	for {
		r, size, err := l.peek()
		if err != nil {
			return Lexeme{}, err
		}
		if size == 0 || r == '\n' || r == ';' || unicode.IsSpace(r) {
			break
		}
		l.pos += size
	}
	return Lexeme{Type: LexemeWord, Value: l.input[start:l.pos], Line: l.line}, nil
}

// readString reads a literal closed by quote. Literals without escapes
// slice the input.
func (l *Lexer) readString(quote rune) (Lexeme, error) {
	openLine := l.line
	l.pos++ // opening quote
	start := l.pos

	var b *strings.Builder
	for {
		r, size, err := l.peek()
		if err != nil {
			return Lexeme{}, err
		}
		switch {
		case size == 0:
			return Lexeme{}, l.errorf(diag.CodeUnterminatedString, openLine, "unterminated string literal")
		case r == quote:
			value := l.input[start:l.pos]
			if b != nil {
				value = b.String()
			}
			l.pos += size
			return Lexeme{Type: LexemeString, Value: value, Line: openLine}, nil
		case r == '\\':
			if b == nil {
				b = &strings.Builder{}
				b.WriteString(l.input[start:l.pos])
			}
			l.pos += size
			if l.pos >= len(l.input) {
				return Lexeme{}, l.errorf(diag.CodeUnterminatedString, openLine, "unterminated string literal")
			}
			if err := l.readEscape(b); err != nil {
				return Lexeme{}, err
			}
		default:
			if r == '\n' {
				l.line++
			}
			if b != nil {
				b.WriteRune(r)
			}
			l.pos += size
		}
	}
}

var simpleEscapes = map[byte]byte{
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'v':  '\v',
}

// readEscape decodes the escape following a backslash into b
func (l *Lexer) readEscape(b *strings.Builder) error {
	c := l.input[l.pos]
	if v, ok := simpleEscapes[c]; ok {
		b.WriteByte(v)
		l.pos++
		return nil
	}

	digits := 0
	switch c {
	case 'x':
		digits = 2
	case 'u':
		digits = 4
	case 'U':
		digits = 8
	default:
		r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
		return l.errorf(diag.CodeInvalidEscape, l.line, "invalid escape sequence \\%c", r)
	}

	l.pos++
	if l.pos+digits > len(l.input) {
		return l.errorf(diag.CodeInvalidEscape, l.line, "escape \\%c needs %d hex digits", c, digits)
	}
	var v rune
	for i := 0; i < digits; i++ {
		d := hexValue(l.input[l.pos+i])
		if d < 0 {
			return l.errorf(diag.CodeInvalidEscape, l.line, "escape \\%c needs %d hex digits", c, digits)
		}
		v = v<<4 | rune(d)
	}
	l.pos += digits

	if c == 'x' {
		b.WriteByte(byte(v))
		return nil
	}
	if !utf8.ValidRune(v) {
		return l.errorf(diag.CodeInvalidEscape, l.line, "escape \\%c%0*X is not a valid code point", c, digits, v)
	}
	b.WriteRune(v)
	return nil
}

func hexValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

func (l *Lexer) errorf(code diag.Code, line int, format string, args ...interface{}) *LexError {
	return &LexError{Code: code, Line: line, Message: fmt.Sprintf(format, args...)}
}
