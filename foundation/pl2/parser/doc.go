// File: doc.go
// Title: PL2 Parser Package Documentation
// Description: Lexer and parser turning pl2 source text into programs.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

/*
Package parser converts pl2 source text into a *program.Program.

The language has no grammar beyond tokens and command boundaries:

	greet "world"            # a command with a bare word and a literal
	set x 1; set y 2         # ';' separates commands on one line
	echo 'multi
	line'                    # literals may span lines

Whitespace separates bare tokens. A token starting with a double or single
quote is a literal up to the matching unescaped quote, with the escapes
\\ \" \' \n \t \r \0 \a \b \f \v \xHH \uXXXX and \UXXXXXXXX. A '#' at the
start of a token begins a comment running to the end of the line. Newlines
and ';' end the current command; empty commands are dropped.

Failures are returned as *diag.Error values of kind diag.KindParse, located
at the offending line: for an unterminated literal the line it opened on,
for a command with too many tokens the command's first line.
*/
package parser
