// File: dispatcher.go
// Title: Command Resolution
// Description: Resolves commands against a plugin's table and fallback,
//              turning removed and unknown commands into dispatch errors
//              and deprecated ones into advisories.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package dispatch

import (
	"sync/atomic"

	mdwlog "github.com/msto63/pl2/foundation/core/log"
	"github.com/msto63/pl2/foundation/pl2/diag"
	"github.com/msto63/pl2/foundation/pl2/program"
	mdwstringx "github.com/msto63/pl2/foundation/utils/stringx"
)

// Outcome is the result class of a resolution.
type Outcome uint8

const (
	OutcomeEntry Outcome = iota
	OutcomeFallback
	OutcomeRemoved
	OutcomeUnknown
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeEntry:
		return "entry"
	case OutcomeFallback:
		return "fallback"
	case OutcomeRemoved:
		return "removed"
	case OutcomeUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Resolution is what a command resolved to.
type Resolution[S any] struct {
	Outcome Outcome

	// Index is the matching entry, -1 for fallback and unknown commands.
	Index int

	Handler    Handler[S]
	Deprecated bool
	Note       string

	// Cached is set when the entry index came from the command's memo.
	Cached bool
}

// Advisory builds the advisory for a deprecated resolution of cmd.
func (r Resolution[S]) Advisory(cmd *program.Command) diag.Advisory {
	msg := mdwstringx.FirstNonBlank(r.Note, "deprecated command")
	return diag.Advisory{Source: cmd.Source, Command: cmd.Name(), Message: msg}
}

// Dispatcher resolves commands for one plugin.
type Dispatcher[S any] struct {
	plugin *Plugin[S]
	logger *mdwlog.Logger

	scans     atomic.Int64
	cacheHits atomic.Int64
}

// NewDispatcher creates a dispatcher for plugin. A nil logger uses the
// default logger.
func NewDispatcher[S any](plugin *Plugin[S], logger *mdwlog.Logger) (*Dispatcher[S], error) {
	if err := plugin.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	return &Dispatcher[S]{
		plugin: plugin,
		logger: logger.WithField("component", "pl2-dispatch").WithField("plugin", plugin.Name),
	}, nil
}

// CacheHits returns how many resolutions were answered from memos.
func (d *Dispatcher[S]) CacheHits() int64 { return d.cacheHits.Load() }

// Scans returns how many resolutions of this dispatcher scanned the table.
// Table.Scans also counts scans made for other dispatchers sharing it.
func (d *Dispatcher[S]) Scans() int64 { return d.scans.Load() }

// Resolve resolves cmd. For removed and unknown commands it records a
// dispatch error in errOut and returns false.
func (d *Dispatcher[S]) Resolve(cmd *program.Command, errOut *diag.Error) (Resolution[S], bool) {
	index, cached := d.plugin.Table.Lookup(cmd)
	if cached {
		d.cacheHits.Add(1)
	} else {
		d.scans.Add(1)
	}

	res := Resolution[S]{Index: index, Cached: cached}

	if index == noMatch {
		if d.plugin.Fallback != nil {
			res.Outcome = OutcomeFallback
			res.Handler = d.plugin.Fallback
			d.trace(cmd, res)
			return res, true
		}
		res.Outcome = OutcomeUnknown
		errOut.FormatKind(diag.KindDispatch, diag.CodeUnknownCommand, cmd.Source, nil, "unknown command %q", cmd.Name())
		d.trace(cmd, res)
		return res, false
	}

	entry := d.plugin.Table.entries[index]
	res.Note = entry.Note
	if entry.Removed {
		res.Outcome = OutcomeRemoved
		if mdwstringx.IsNotBlank(entry.Note) {
			errOut.FormatKind(diag.KindDispatch, diag.CodeRemovedCommand, cmd.Source, nil, "removed command %q: %s", cmd.Name(), entry.Note)
		} else {
			errOut.FormatKind(diag.KindDispatch, diag.CodeRemovedCommand, cmd.Source, nil, "removed command %q", cmd.Name())
		}
		d.trace(cmd, res)
		return res, false
	}

	res.Outcome = OutcomeEntry
	res.Handler = entry.Handler
	res.Deprecated = entry.Deprecated
	d.trace(cmd, res)
	return res, true
}

func (d *Dispatcher[S]) trace(cmd *program.Command, res Resolution[S]) {
	if !d.logger.IsLevelEnabled(mdwlog.LevelTrace) {
		return
	}
	d.logger.Trace("Command resolved", mdwlog.Fields{
		"command": cmd.Name(),
		"line":    cmd.Source.Line,
		"outcome": res.Outcome.String(),
		"index":   res.Index,
		"cached":  res.Cached,
	})
}
