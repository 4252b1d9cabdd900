// File: doc.go
// Title: PL2 Diagnostics Package Documentation
// Description: Error objects with source location, numeric code and a
//              bounded reason text, and non-fatal advisories.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

/*
Package diag holds the diagnostics shared by the pl2 parser and executor.

An *Error is allocated once per top-level parse or run with a fixed reason
capacity. Whoever detects a failure calls Format on it; the reason text is
cut at the capacity on a UTF-8 boundary and never grows the buffer. Code 0
means "no error", so a buffer can be handed to a handler and inspected with
IsError afterwards.

	errOut := diag.NewErrorBuffer(512)
	errOut.FormatKind(diag.KindHandler, 100, cmd.Source, nil, "bad argument %q", arg)
	if diag.IsError(errOut) {
		fmt.Println(errOut) // in file main.pl2:3: error[100]: bad argument "x"
	}

The receiver of an error returned by the engine owns it and may hand the
buffer back with Release, exactly once.

Codes 1 to 99 are reserved for the core. Plugins use FirstPluginCode and up.
*/
package diag
