// File: doc.go
// Title: PL2 Executor Package Documentation
// Description: The cursor-driven execution engine.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

/*
Package executor runs programs against a language plugin.

A run allocates one diagnostic buffer, asks the plugin's Init hook for the
run state and then walks a cursor over the program. Each step resolves the
command through the plugin's dispatch table, calls the handler and moves
the cursor to the command the handler returned, or to the next command
when it returned nil. The run ends when the cursor runs off the end of the
program (success) or when a dispatch or handler error is recorded
(failure). Either way every command's ExtraData is handed to the plugin's
CleanupCommand hook and the state to Teardown.

The context is consulted between steps only; a cancelled context stops the
run with a diag.KindInterrupted error. Handlers are never preempted.

An Executor is not safe for concurrent use.
*/
package executor
