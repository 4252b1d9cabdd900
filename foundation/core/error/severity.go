// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels for host errors and their derivation from codes.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-19 v0.2.0: Severity mapping for pl2 host codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a user-correctable problem (bad flag, bad script)
	SeverityLow Severity = iota

	// SeverityMedium indicates a failure with a workaround
	SeverityMedium

	// SeverityHigh indicates the host cannot do what was asked
	SeverityHigh

	// SeverityCritical indicates a broken installation or internal fault
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal, CodeInvalidPlugin:
		return SeverityCritical
	case CodeIncompatible, CodeMissingConfig, CodeWatchFailed:
		return SeverityHigh
	case CodeInvalidInput, CodeNotFound, CodeScriptNotFound, CodeParse, CodeInvalidConfig:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
