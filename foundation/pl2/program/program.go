// File: program.go
// Title: Programs and Builder
// Description: The command arena with its head handle and source text, and
//              the builder that links commands in order.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package program

import (
	"strings"

	"github.com/msto63/pl2/foundation/pl2/diag"
)

// Program is a parsed script.
type Program struct {
	fileName string
	source   string
	commands []*Command
	head     Handle
}

// FileName returns the name the program was parsed under.
func (p *Program) FileName() string { return p.fileName }

// Source returns the source text the program was parsed from.
func (p *Program) Source() string { return p.source }

// First returns the first command, nil for an empty program.
func (p *Program) First() *Command { return p.Command(p.head) }

// Len returns the number of commands.
func (p *Program) Len() int { return len(p.commands) }

// Command returns the command for h, nil for NoCommand or an unknown handle.
func (p *Program) Command(h Handle) *Command {
	if h < 0 || int(h) >= len(p.commands) {
		return nil
	}
	return p.commands[h]
}

// Owns reports whether cmd belongs to p.
func (p *Program) Owns(cmd *Command) bool {
	return cmd != nil && cmd.prog == p
}

// Walk calls fn for each command in list order until fn returns false.
func (p *Program) Walk(fn func(*Command) bool) {
	for c := p.First(); c != nil; c = c.Next() {
		if !fn(c) {
			return
		}
	}
}

// String renders one command per line.
func (p *Program) String() string {
	lines := make([]string, 0, len(p.commands))
	p.Walk(func(c *Command) bool {
		lines = append(lines, c.String())
		return true
	})
	return strings.Join(lines, "\n")
}

// Builder appends commands to a new Program in order.
type Builder struct {
	prog *Program
}

// NewBuilder starts a program for fileName holding source.
func NewBuilder(fileName, source string) *Builder {
	return &Builder{prog: &Program{fileName: fileName, source: source, head: NoCommand}}
}

// Add appends a command with the given tokens on line and returns it.
// Commands without tokens are skipped and Add returns nil.
func (b *Builder) Add(line int, tokens ...Token) *Command {
	if len(tokens) == 0 {
		return nil
	}
	p := b.prog
	h := Handle(len(p.commands))

	stored := make([]Token, len(tokens)+1)
	copy(stored, tokens)

	cmd := &Command{
		Source: diag.NewSourceInfo(p.fileName, line),
		prog:   p,
		handle: h,
		prev:   NoCommand,
		next:   NoCommand,
		tokens: stored,
		size:   -1,
	}
	if n := len(p.commands); n > 0 {
		last := p.commands[n-1]
		last.next = h
		cmd.prev = last.handle
	} else {
		p.head = h
	}
	p.commands = append(p.commands, cmd)
	return cmd
}

// Len returns the number of commands added so far.
func (b *Builder) Len() int { return len(b.prog.commands) }

// Build returns the program. The builder must not be used afterwards.
func (b *Builder) Build() *Program {
	p := b.prog
	b.prog = nil
	return p
}
