// File: doc.go
// Title: PL2 Dispatch Package Documentation
// Description: Dispatch tables, language plugins and command resolution.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

/*
Package dispatch maps commands to handlers.

A language plugin supplies an ordered Table of entries. Each entry matches
either by command name or by a predicate over the whole command; the two
are mutually exclusive because Matcher is built by exactly one of ByName and
ByPredicate. Resolution scans the table in order and the first match wins:

	table, err := dispatch.NewTable(
		dispatch.Entry[*Env]{Match: dispatch.ByName("echo"), Handler: echo},
		dispatch.Entry[*Env]{Match: dispatch.ByName("say"), Handler: echo, Deprecated: true},
		dispatch.Entry[*Env]{Match: dispatch.ByName("beep"), Removed: true},
		dispatch.Entry[*Env]{Match: dispatch.ByPredicate("assignment", isAssignment), Handler: assign},
	)

A removed entry fails the command without calling a handler. A deprecated
entry runs its handler and raises an advisory. Commands matching no entry
go to the plugin's fallback, or fail as unknown.

The index found by a scan is memoised on the command, keyed by the table.
A memo is never replaced: a command later resolved against another table is
scanned again without caching.
*/
package dispatch
