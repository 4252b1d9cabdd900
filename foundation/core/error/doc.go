// Package error provides coded, contextual errors for the pl2 host layer.
//
// Package: error
// Title: pl2 Host Error Handling
// Description: Structured errors with a code, a severity, free-form details and
//              a captured stack trace. Used by configuration loading, script file
//              access and the command line front end. Diagnostics produced while
//              parsing or running a program are *diag.Error values instead.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-19 v0.2.0: Reduced to the codes used by the pl2 host layer
//
// Usage:
//   import mdwerror "github.com/msto63/pl2/foundation/core/error"
//
//   err := mdwerror.Wrap(ioErr, "cannot read script").
//     WithCode(mdwerror.CodeScriptRead).
//     WithDetail("path", path).
//     WithOperation("cli.run")
//
//   if mdwerror.HasCode(err, mdwerror.CodeScriptRead) {
//     // ...
//   }
package error
