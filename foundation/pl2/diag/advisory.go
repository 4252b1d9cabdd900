// File: advisory.go
// Title: Advisories
// Description: Non-fatal notices raised while running a program.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package diag

import "fmt"

// Advisory is a non-fatal notice, e.g. the use of a deprecated command.
type Advisory struct {
	Source  SourceInfo
	Command string
	Message string
}

// String renders the advisory in the same shape as an error.
func (a Advisory) String() string {
	return fmt.Sprintf("in file %s:%d: warning: %s: %s", a.Source.FileName, a.Source.Line, a.Command, a.Message)
}
