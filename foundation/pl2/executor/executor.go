// File: executor.go
// Title: PL2 Execution Engine
// Description: Runs a program step by step: resolve, invoke, advance.
//              Handles plugin lifecycle hooks, advisories, interruption,
//              handler panics and per-run statistics.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package executor

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	mdwlog "github.com/msto63/pl2/foundation/core/log"
	"github.com/msto63/pl2/foundation/pl2/diag"
	"github.com/msto63/pl2/foundation/pl2/dispatch"
	"github.com/msto63/pl2/foundation/pl2/program"
)

// State is the engine state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateHaltedOK
	StateHaltedError
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateHaltedOK:
		return "halted-ok"
	case StateHaltedError:
		return "halted-error"
	default:
		return "unknown"
	}
}

// Options configures executor behavior
type Options struct {
	Logger *mdwlog.Logger

	// ErrorCapacity is the reason capacity of the run's diagnostic. Zero
	// selects diag.DefaultCapacity.
	ErrorCapacity uint16

	// OnAdvisory receives advisories such as deprecated command use.
	OnAdvisory func(diag.Advisory)

	// AdviseEveryExecution raises a deprecation advisory each time a
	// deprecated command runs instead of once per command and run.
	AdviseEveryExecution bool
}

// Stats describes the last run.
type Stats struct {
	RunID      string
	Steps      int64
	Scans      int64
	CacheHits  int64
	Advisories int
	Duration   time.Duration
}

// Executor runs programs for one plugin.
type Executor[S any] struct {
	plugin     *dispatch.Plugin[S]
	dispatcher *dispatch.Dispatcher[S]
	logger     *mdwlog.Logger
	options    Options

	state State
	stats Stats
}

// New creates an executor for plugin
func New[S any](plugin *dispatch.Plugin[S], opts Options) (*Executor[S], error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.ErrorCapacity == 0 {
		opts.ErrorCapacity = diag.DefaultCapacity
	}

	dispatcher, err := dispatch.NewDispatcher(plugin, opts.Logger)
	if err != nil {
		return nil, err
	}

	e := &Executor[S]{
		plugin:     plugin,
		dispatcher: dispatcher,
		logger:     opts.Logger.WithField("component", "pl2-executor").WithField("plugin", plugin.Name),
		options:    opts,
	}

	e.logger.Debug("Executor initialized", mdwlog.Fields{
		"entries":       plugin.Table.Len(),
		"fallback":      plugin.Fallback != nil,
		"errorCapacity": opts.ErrorCapacity,
	})
	return e, nil
}

// State returns the state after the last run.
func (e *Executor[S]) State() State { return e.state }

// Stats returns the statistics of the last run.
func (e *Executor[S]) Stats() Stats { return e.stats }

// Plugin returns the plugin the executor runs.
func (e *Executor[S]) Plugin() *dispatch.Plugin[S] { return e.plugin }

// Run executes prog. It returns nil on success and a *diag.Error owned by
// the caller on failure.
func (e *Executor[S]) Run(ctx context.Context, prog *program.Program) error {
	if prog == nil {
		return errors.New("executor: nil program")
	}

	start := time.Now()
	runID := uuid.NewString()
	logger := e.logger.WithRunID(runID)
	timer := logger.StartTimer("run").
		WithField("file", prog.FileName()).
		WithField("commands", prog.Len())

	e.stats = Stats{RunID: runID}
	e.state = StateRunning
	errOut := diag.NewErrorBuffer(e.options.ErrorCapacity)

	finish := func() {
		e.stats.Duration = time.Since(start)
	}

	state, ok := e.init(errOut, logger)
	if !ok {
		e.state = StateHaltedError
		finish()
		timer.StopWithError(errOut)
		return errOut
	}
	timer.Checkpoint("init")

	e.loop(ctx, prog, state, errOut, logger)
	e.cleanup(prog, state, logger)
	finish()

	if diag.IsError(errOut) {
		e.state = StateHaltedError
		timer.StopWithError(errOut)
		return errOut
	}

	errOut.Release()
	e.state = StateHaltedOK
	timer.WithField("steps", e.stats.Steps).Stop()
	return nil
}

// init runs the plugin's Init hook. Failures are lifecycle errors.
func (e *Executor[S]) init(errOut *diag.Error, logger *mdwlog.Logger) (state S, ok bool) {
	if e.plugin.Init == nil {
		return state, true
	}

	defer func() {
		if r := recover(); r != nil {
			errOut.FormatKind(diag.KindLifecycle, diag.CodeInitFailed, diag.SourceInfo{}, r, "plugin %s init panicked: %v", e.plugin.Name, r)
			logger.Error("Plugin init panicked", mdwlog.Fields{"panic": r, "stack": string(debug.Stack())})
			ok = false
		}
	}()

	state = e.plugin.Init(errOut)
	if diag.IsError(errOut) {
		if errOut.Kind() == diag.KindNone {
			errOut.SetKind(diag.KindLifecycle)
		}
		return state, false
	}
	return state, true
}

func (e *Executor[S]) loop(ctx context.Context, prog *program.Program, state S, errOut *diag.Error, logger *mdwlog.Logger) {
	advised := make(map[program.Handle]bool)

	for cmd := prog.First(); cmd != nil; {
		if err := ctx.Err(); err != nil {
			errOut.FormatKind(diag.KindInterrupted, diag.CodeInterrupted, cmd.Source, nil, "run interrupted before %q: %v", cmd.Name(), err)
			return
		}
		e.stats.Steps++

		res, ok := e.dispatcher.Resolve(cmd, errOut)
		if res.Cached {
			e.stats.CacheHits++
		} else {
			e.stats.Scans++
		}
		if !ok {
			return
		}
		if res.Deprecated && (e.options.AdviseEveryExecution || !advised[cmd.Handle()]) {
			advised[cmd.Handle()] = true
			e.advise(res.Advisory(cmd), logger)
		}

		next := e.invoke(res.Handler, prog, state, cmd, errOut, logger)
		if diag.IsError(errOut) {
			if errOut.Kind() == diag.KindNone {
				errOut.SetKind(diag.KindHandler)
			}
			if errOut.Source == (diag.SourceInfo{}) {
				errOut.Source = cmd.Source
			}
			return
		}

		switch {
		case next == nil:
			cmd = cmd.Next()
		case !prog.Owns(next):
			errOut.FormatKind(diag.KindHandler, diag.CodeForeignCommand, cmd.Source, nil, "handler for %q returned a command of another program", cmd.Name())
			return
		default:
			cmd = next
		}
	}
}

// invoke calls h, turning a panic into a handler error.
func (e *Executor[S]) invoke(h dispatch.Handler[S], prog *program.Program, state S, cmd *program.Command, errOut *diag.Error, logger *mdwlog.Logger) (next *program.Command) {
	defer func() {
		if r := recover(); r != nil {
			errOut.FormatKind(diag.KindHandler, diag.CodeHandlerPanic, cmd.Source, r, "handler for %q panicked: %v", cmd.Name(), r)
			logger.Error("Handler panicked", mdwlog.Fields{
				"command": cmd.Name(),
				"line":    cmd.Source.Line,
				"panic":   r,
				"stack":   string(debug.Stack()),
			})
			next = nil
		}
	}()
	return h(prog, state, cmd, errOut)
}

func (e *Executor[S]) advise(adv diag.Advisory, logger *mdwlog.Logger) {
	e.stats.Advisories++
	logger.Warn("Deprecated command", mdwlog.Fields{
		"command": adv.Command,
		"file":    adv.Source.FileName,
		"line":    adv.Source.Line,
		"message": adv.Message,
	})
	if e.options.OnAdvisory != nil {
		e.options.OnAdvisory(adv)
	}
}

// cleanup hands ExtraData to the plugin and tears the state down.
func (e *Executor[S]) cleanup(prog *program.Program, state S, logger *mdwlog.Logger) {
	released := 0
	prog.Walk(func(cmd *program.Command) bool {
		if cmd.ExtraData == nil {
			return true
		}
		if e.plugin.CleanupCommand != nil {
			e.guard(logger, "cleanup", func() { e.plugin.CleanupCommand(cmd.ExtraData) })
		}
		cmd.ExtraData = nil
		released++
		return true
	})

	if e.plugin.Teardown != nil {
		e.guard(logger, "teardown", func() { e.plugin.Teardown(state) })
	}
	logger.Trace("Run cleaned up", mdwlog.Fields{"released": released})
}

// guard runs a plugin hook, logging a panic instead of propagating it.
func (e *Executor[S]) guard(logger *mdwlog.Logger, hook string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Plugin hook panicked", mdwlog.Fields{"hook": hook, "panic": r})
		}
	}()
	fn()
}
