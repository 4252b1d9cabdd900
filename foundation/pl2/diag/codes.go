// File: codes.go
// Title: Diagnostic Codes and Kinds
// Description: Numeric codes reserved by the core and the broad error kinds.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package diag

import "strconv"

// Code is the numeric error code. Zero means no error.
type Code uint16

const (
	CodeNone Code = 0

	// Parse
	CodeInvalidEncoding    Code = 1
	CodeUnterminatedString Code = 2
	CodeTooManyTokens      Code = 3
	CodeInvalidEscape      Code = 4

	// Dispatch and execution
	CodeUnknownCommand Code = 10
	CodeRemovedCommand Code = 11
	CodeForeignCommand Code = 12
	CodeHandlerPanic   Code = 13

	// Plugin lifecycle
	CodeIncompatible Code = 20
	CodeInitFailed   Code = 21

	// Host
	CodeInterrupted Code = 30

	// FirstPluginCode is the lowest code available to plugins.
	FirstPluginCode Code = 100
)

var codeNames = map[Code]string{
	CodeInvalidEncoding:    "invalid-encoding",
	CodeUnterminatedString: "unterminated-string",
	CodeTooManyTokens:      "too-many-tokens",
	CodeInvalidEscape:      "invalid-escape",
	CodeUnknownCommand:     "unknown-command",
	CodeRemovedCommand:     "removed-command",
	CodeForeignCommand:     "foreign-command",
	CodeHandlerPanic:       "handler-panic",
	CodeIncompatible:       "incompatible",
	CodeInitFailed:         "init-failed",
	CodeInterrupted:        "interrupted",
}

// IsCore reports whether c lies in the range reserved for the core.
func (c Code) IsCore() bool {
	return c > CodeNone && c < FirstPluginCode
}

// String returns the symbolic name of a core code, the number otherwise.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return strconv.Itoa(int(c))
}

// Kind classifies an error by the stage that produced it.
type Kind uint8

const (
	KindNone Kind = iota
	KindParse
	KindDispatch
	KindHandler
	KindCompat
	KindLifecycle
	KindInterrupted
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindParse:
		return "parse"
	case KindDispatch:
		return "dispatch"
	case KindHandler:
		return "handler"
	case KindCompat:
		return "compat"
	case KindLifecycle:
		return "lifecycle"
	case KindInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}
