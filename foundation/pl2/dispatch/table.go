// File: table.go
// Title: Dispatch Tables
// Description: Ordered, validated entry tables with first-match resolution
//              memoised on commands.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package dispatch

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/msto63/pl2/foundation/pl2/diag"
	"github.com/msto63/pl2/foundation/pl2/program"
	mdwstringx "github.com/msto63/pl2/foundation/utils/stringx"
)

// Handler executes a command. It returns the command to continue with, or
// nil to continue with cmd.Next(). A handler reports failure by formatting
// errOut.
type Handler[S any] func(prog *program.Program, state S, cmd *program.Command, errOut *diag.Error) *program.Command

// Entry is one row of a dispatch table.
type Entry[S any] struct {
	Match   Matcher
	Handler Handler[S]

	// Deprecated entries run but raise an advisory carrying Note.
	Deprecated bool

	// Removed entries fail the command; Handler is not required.
	Removed bool

	// Note explains a deprecation or removal, e.g. the replacement.
	Note string
}

// Table is an immutable ordered list of entries.
type Table[S any] struct {
	entries []Entry[S]
	scans   atomic.Int64
}

// noMatch is the memoised index of a command that matches no entry.
const noMatch = -1

// NewTable validates entries and builds a table.
func NewTable[S any](entries ...Entry[S]) (*Table[S], error) {
	var errs []error
	for i, e := range entries {
		switch e.Match.kind {
		case matchNone:
			errs = append(errs, fmt.Errorf("entry %d: no matcher", i))
		case matchName:
			if mdwstringx.IsBlank(e.Match.name) {
				errs = append(errs, fmt.Errorf("entry %d: blank command name", i))
			}
		case matchPredicate:
			if e.Match.pred == nil {
				errs = append(errs, fmt.Errorf("entry %d (%s): nil predicate", i, e.Match))
			}
		}
		if e.Handler == nil && !e.Removed {
			errs = append(errs, fmt.Errorf("entry %d (%s): handler required unless removed", i, e.Match))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid dispatch table: %w", errors.Join(errs...))
	}

	t := &Table[S]{entries: make([]Entry[S], len(entries))}
	copy(t.entries, entries)
	return t, nil
}

// MustTable is NewTable that panics on invalid entries.
func MustTable[S any](entries ...Entry[S]) *Table[S] {
	t, err := NewTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of entries.
func (t *Table[S]) Len() int { return len(t.entries) }

// Entry returns entry i.
func (t *Table[S]) Entry(i int) Entry[S] { return t.entries[i] }

// Scans returns how many full scans the table has performed.
func (t *Table[S]) Scans() int64 { return t.scans.Load() }

// Lookup returns the index of the first entry matching cmd, or -1. cached
// reports whether the answer came from the command's memo.
func (t *Table[S]) Lookup(cmd *program.Command) (index int, cached bool) {
	if v, ok := cmd.Memo(t); ok {
		return v.(int), true
	}

	index = t.scan(cmd)
	cmd.SetMemo(t, index)
	return index, false
}

func (t *Table[S]) scan(cmd *program.Command) int {
	t.scans.Add(1)
	for i := range t.entries {
		if t.entries[i].Match.Matches(cmd) {
			return i
		}
	}
	return noMatch
}
