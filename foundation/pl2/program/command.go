// File: command.go
// Title: Commands
// Description: A single command: tokens, source location, links to its
//              neighbours, plugin data and the dispatch memo.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package program

import (
	"fmt"
	"strings"

	"github.com/msto63/pl2/foundation/pl2/diag"
)

// Handle addresses a Command inside its Program.
type Handle int32

// NoCommand marks the missing neighbour at either end of the list.
const NoCommand Handle = -1

// Command is one statement of a program.
type Command struct {
	// ExtraData belongs to the language plugin. The engine hands non-nil
	// values to the plugin's cleanup hook after a run and clears the slot.
	ExtraData any

	Source diag.SourceInfo

	prog   *Program
	handle Handle
	prev   Handle
	next   Handle

	tokens []Token
	size   int

	memoKey any
	memo    any
}

// Handle returns the command's handle in its program.
func (c *Command) Handle() Handle { return c.handle }

// Program returns the owning program.
func (c *Command) Program() *Program { return c.prog }

// Prev returns the preceding command, nil for the first one.
func (c *Command) Prev() *Command { return c.prog.Command(c.prev) }

// Next returns the following command, nil for the last one.
func (c *Command) Next() *Command { return c.prog.Command(c.next) }

// Size returns the number of tokens before the sentinel. It is counted on
// first use and remembered.
func (c *Command) Size() int {
	if c.size < 0 {
		n := 0
		for n < len(c.tokens) && c.tokens[n].present {
			n++
		}
		c.size = n
	}
	return c.size
}

// Part returns token i. It panics when i is not below Size().
func (c *Command) Part(i int) Token {
	if i < 0 || i >= c.Size() {
		panic(fmt.Sprintf("program: part index %d out of range for command of size %d", i, c.Size()))
	}
	return c.tokens[i]
}

// Lookup returns token i and whether it exists.
func (c *Command) Lookup(i int) (Token, bool) {
	if i < 0 || i >= c.Size() {
		return Token{}, false
	}
	return c.tokens[i], true
}

// Name returns the text of the first token, "" for an empty command.
func (c *Command) Name() string {
	if c.Size() == 0 {
		return ""
	}
	return c.tokens[0].text
}

// Args returns the tokens after the name.
func (c *Command) Args() []Token {
	if c.Size() < 2 {
		return nil
	}
	return c.tokens[1:c.Size()]
}

// Memo returns the dispatch memo stored under key.
func (c *Command) Memo(key any) (any, bool) {
	if c.memoKey == nil || c.memoKey != key {
		return nil, false
	}
	return c.memo, true
}

// SetMemo stores v under key unless a memo already exists. It reports
// whether v was stored; an existing memo is never replaced.
func (c *Command) SetMemo(key, v any) bool {
	if c.memoKey != nil || key == nil {
		return false
	}
	c.memoKey, c.memo = key, v
	return true
}

// HasMemo reports whether any memo is stored.
func (c *Command) HasMemo() bool { return c.memoKey != nil }

// String renders the tokens separated by single spaces, string literals
// re-quoted.
func (c *Command) String() string {
	var b strings.Builder
	for i := 0; i < c.Size(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.tokens[i].String())
	}
	return b.String()
}
