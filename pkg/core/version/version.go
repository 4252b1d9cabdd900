// ============================================================================
// pl2 - Embeddable Command Language Engine
// ============================================================================
//
// Package:     version
// Description: Central version management for the core and its tools
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"

	"github.com/msto63/pl2/foundation/pl2/semver"
)

// Version constants for the core and the bundled components
const (
	// Core is the version plugins are checked against
	Core = "1.0.0"

	// Component versions
	CLI  = "1.0.0"
	Demo = "1.0.0"
	REPL = "1.0.0"
)

// Commit is set at build time via -ldflags "-X ...version.Commit=<sha>"
var Commit = "unknown"

// CoreVersion returns Core as a semantic version
func CoreVersion() semver.Version {
	return semver.MustParse(Core)
}

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "cli", "pl2":
		return CLI
	case "demo":
		return Demo
	case "repl":
		return REPL
	default:
		return Core
	}
}

// String returns a one-line build description
func String() string {
	return fmt.Sprintf("pl2 %s (core %s, commit %s, %s %s/%s)",
		CLI, Core, Commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
