// File: stringx.go
// Title: Core String Utility Functions
// Description: Blank checks, rune-aware truncation, line splitting and
//              default selection helpers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2026-10-19 v0.2.0: Removed interning, case conversion, padding and random helpers

package stringx

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsBlank returns true if the string is empty or contains only whitespace.
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsNotBlank is the inverse of IsBlank.
func IsNotBlank(s string) bool {
	return !IsBlank(s)
}

// Truncate shortens s to at most maxLen runes, ending in ellipsis when cut.
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	ellipsisLen := utf8.RuneCountInString(ellipsis)
	if ellipsisLen >= maxLen {
		return string([]rune(s)[:maxLen])
	}
	return string([]rune(s)[:maxLen-ellipsisLen]) + ellipsis
}

// SplitLines splits s on \n, \r\n and \r.
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// FirstNonBlank returns the first argument that is not blank, or "".
func FirstNonBlank(values ...string) string {
	for _, s := range values {
		if IsNotBlank(s) {
			return s
		}
	}
	return ""
}
