// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used by the pl2 host layer: configuration,
//              script access, command line usage and wrapped engine failures.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-19 v0.2.0: Replaced platform codes with pl2 host codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"
	CodeCancelled    Code = "CANCELLED"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"
	CodeWatchFailed   Code = "WATCH_FAILED"

	// Scripts and the engine
	CodeScriptNotFound Code = "SCRIPT_NOT_FOUND"
	CodeScriptRead     Code = "SCRIPT_READ"
	CodeParse          Code = "PL2_PARSE"
	CodeExecution      Code = "PL2_EXECUTION"
	CodeIncompatible   Code = "PL2_INCOMPATIBLE"
	CodeInvalidPlugin  Code = "PL2_INVALID_PLUGIN"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout, CodeCancelled,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig, CodeWatchFailed,
		CodeScriptNotFound, CodeScriptRead, CodeParse, CodeExecution, CodeIncompatible, CodeInvalidPlugin:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig, CodeWatchFailed:
		return "configuration"
	case CodeScriptNotFound, CodeScriptRead:
		return "script"
	case CodeParse, CodeExecution, CodeIncompatible, CodeInvalidPlugin:
		return "engine"
	default:
		return "generic"
	}
}

// ExitCode maps an error code to a process exit status for the CLI.
func (c Code) ExitCode() int {
	switch c.Category() {
	case "configuration":
		return 3
	case "script":
		return 4
	case "engine":
		return 1
	}
	if c == CodeInvalidInput {
		return 2
	}
	return 1
}
