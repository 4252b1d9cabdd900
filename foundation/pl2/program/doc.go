// File: doc.go
// Title: PL2 Program Representation
// Description: Documentation for the in-memory program model.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

/*
Package program is the in-memory form of a parsed pl2 script.

A Program owns an arena of Commands addressed by stable Handles and the
source text that bare tokens point into. Commands are doubly linked in
source order; the links are fixed once the program is built. Jumps are
expressed by handlers returning another *Command of the same program, never
by relinking.

Each Command carries a token array terminated by a sentinel Token whose
Present() is false, a SourceInfo, a plugin-owned ExtraData slot and a
resolution memo used by the dispatcher.

Programs are not safe for concurrent runs: the memo and ExtraData slots are
written while executing.
*/
package program
