// File: token.go
// Title: Command Tokens
// Description: Bare words and string literals making up a command.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package program

import "strconv"

// Token is one part of a command. The zero Token is the end-of-array
// sentinel.
type Token struct {
	text     string
	isString bool
	present  bool
}

// Word returns a bare token.
func Word(text string) Token {
	return Token{text: text, present: true}
}

// Literal returns a string literal token.
func Literal(text string) Token {
	return Token{text: text, isString: true, present: true}
}

// Text returns the token text with escapes already resolved.
func (t Token) Text() string { return t.text }

// IsString reports whether the token was written as a quoted literal.
func (t Token) IsString() bool { return t.isString }

// Present is false only for the sentinel terminating a token array.
func (t Token) Present() bool { return t.present }

// String renders the token so that the parser reads it back unchanged.
func (t Token) String() string {
	if t.isString {
		return strconv.Quote(t.text)
	}
	return t.text
}
