// File: doc.go
// Title: PL2 Engine Package Documentation
// Description: Entry point of the embeddable command language engine.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

/*
Package pl2 is an embeddable engine for small line-oriented command
languages. The host supplies a language as a dispatch.Plugin: a table of
command matchers and handlers plus lifecycle hooks. The engine parses
source text into a program.Program and walks it, handing each command to
the handler its matcher selects.

Basic usage:

	engine, err := pl2.NewEngine(pl2.Options{})
	if err != nil {
		return err
	}
	exec, err := pl2.Load(engine, plugin)
	if err != nil {
		return err
	}
	prog, err := engine.Parse(`greet "world"`)
	if err != nil {
		return err
	}
	return exec.Run(ctx, prog)

Failures of parsing, dispatch, handlers and the compatibility check are
returned as *diag.Error values carrying a code, a kind and the source
location:

	in file script.pl2:2: error[11]: removed command "x"

Subpackages:

  - parser: source text to programs
  - program: commands, tokens and traversal
  - diag: bounded diagnostics and advisories
  - dispatch: matchers, tables and plugins
  - executor: the run loop
  - semver: the plugin compatibility gate
*/
package pl2
