// File: plugin.go
// Title: Language Plugins
// Description: The bundle a language supplies to the engine: identity,
//              required core version, lifecycle hooks, dispatch table and
//              fallback handler.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package dispatch

import (
	"errors"

	"github.com/msto63/pl2/foundation/pl2/diag"
	"github.com/msto63/pl2/foundation/pl2/semver"
	mdwstringx "github.com/msto63/pl2/foundation/utils/stringx"
)

// Plugin describes a language. S is the per-run state created by Init.
type Plugin[S any] struct {
	Name string
	Info string

	// Requires is the core version the plugin was written against.
	Requires semver.Version

	// Init creates the state of one run. Formatting errOut aborts the run
	// before any command executes; Teardown is then not called. A nil Init
	// yields the zero S.
	Init func(errOut *diag.Error) S

	// Teardown releases the state after the run, whether it failed or not.
	Teardown func(state S)

	// CleanupCommand releases a command's non-nil ExtraData after a run.
	CleanupCommand func(extra any)

	Table *Table[S]

	// Fallback handles commands no entry matches. Nil makes them unknown.
	Fallback Handler[S]
}

// Validate checks that the plugin can be run.
func (p *Plugin[S]) Validate() error {
	if p == nil {
		return errors.New("plugin is nil")
	}
	if mdwstringx.IsBlank(p.Name) {
		return errors.New("plugin name is blank")
	}
	if p.Table == nil {
		return errors.New("plugin " + p.Name + " has no dispatch table")
	}
	return nil
}
