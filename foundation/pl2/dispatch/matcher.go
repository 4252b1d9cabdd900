// File: matcher.go
// Title: Entry Matchers
// Description: Name and predicate matchers for dispatch entries.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package dispatch

import (
	"strconv"

	"github.com/msto63/pl2/foundation/pl2/program"
)

// Predicate decides whether an entry applies to a command.
type Predicate func(cmd *program.Command) bool

type matcherKind uint8

const (
	matchNone matcherKind = iota
	matchName
	matchPredicate
)

// Matcher selects the commands an entry applies to. The zero Matcher
// matches nothing and is rejected by NewTable.
type Matcher struct {
	kind  matcherKind
	name  string
	label string
	pred  Predicate
}

// ByName matches commands whose first token equals name exactly.
func ByName(name string) Matcher {
	return Matcher{kind: matchName, name: name}
}

// ByPredicate matches commands for which fn returns true. label names the
// matcher in logs and listings.
func ByPredicate(label string, fn Predicate) Matcher {
	return Matcher{kind: matchPredicate, label: label, pred: fn}
}

// Name returns the command name of a name matcher, "" otherwise.
func (m Matcher) Name() string { return m.name }

// IsPredicate reports whether m is a predicate matcher.
func (m Matcher) IsPredicate() bool { return m.kind == matchPredicate }

// Matches reports whether m selects cmd.
func (m Matcher) Matches(cmd *program.Command) bool {
	switch m.kind {
	case matchName:
		return cmd.Size() > 0 && cmd.Name() == m.name
	case matchPredicate:
		return m.pred(cmd)
	default:
		return false
	}
}

// String describes the matcher.
func (m Matcher) String() string {
	switch m.kind {
	case matchName:
		return strconv.Quote(m.name)
	case matchPredicate:
		if m.label == "" {
			return "<predicate>"
		}
		return "<" + m.label + ">"
	default:
		return "<none>"
	}
}
