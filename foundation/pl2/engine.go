// File: engine.go
// Title: PL2 Engine
// Description: Ties parser, compatibility gate and executor together
//              under one set of limits.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package pl2

import (
	"context"

	mdwerror "github.com/msto63/pl2/foundation/core/error"
	mdwlog "github.com/msto63/pl2/foundation/core/log"
	"github.com/msto63/pl2/foundation/pl2/diag"
	"github.com/msto63/pl2/foundation/pl2/dispatch"
	"github.com/msto63/pl2/foundation/pl2/executor"
	"github.com/msto63/pl2/foundation/pl2/parser"
	"github.com/msto63/pl2/foundation/pl2/program"
	"github.com/msto63/pl2/foundation/pl2/semver"
	"github.com/msto63/pl2/pkg/core/version"
)

// Options configures an engine
type Options struct {
	Logger *mdwlog.Logger

	// MaxTokens bounds the tokens of one command. Zero selects
	// parser.DefaultMaxTokens.
	MaxTokens int

	// ErrorCapacity bounds diagnostic reasons. Zero selects
	// diag.DefaultCapacity.
	ErrorCapacity uint16

	// OnAdvisory receives advisories raised while running.
	OnAdvisory func(diag.Advisory)

	// AdviseEveryExecution repeats deprecation advisories on every
	// execution of a deprecated command.
	AdviseEveryExecution bool

	// Core overrides the core version plugins are checked against.
	Core semver.Version
}

// Engine parses programs and loads plugins under shared limits
type Engine struct {
	parser  *parser.Parser
	base    *mdwlog.Logger
	logger  *mdwlog.Logger
	options Options
}

// NewEngine creates an engine with the given options
func NewEngine(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.ErrorCapacity == 0 {
		opts.ErrorCapacity = diag.DefaultCapacity
	}
	if opts.Core == (semver.Version{}) {
		opts.Core = version.CoreVersion()
	}

	p, err := parser.New(parser.Options{
		Logger:        opts.Logger,
		MaxTokens:     opts.MaxTokens,
		ErrorCapacity: opts.ErrorCapacity,
	})
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid engine options").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("pl2.NewEngine")
	}

	engine := &Engine{
		parser:  p,
		base:    opts.Logger,
		logger:  opts.Logger.WithField("component", "pl2-engine"),
		options: opts,
	}

	engine.logger.Debug("Engine initialized", mdwlog.Fields{
		"core":          opts.Core.String(),
		"maxTokens":     opts.MaxTokens,
		"errorCapacity": opts.ErrorCapacity,
	})
	return engine, nil
}

// Core returns the core version plugins are checked against
func (e *Engine) Core() semver.Version { return e.options.Core }

// Parse parses source without a file name
func (e *Engine) Parse(source string) (*program.Program, error) {
	return e.parser.ParseNamed("", source)
}

// ParseNamed parses source, recording fileName in source locations
func (e *Engine) ParseNamed(fileName, source string) (*program.Program, error) {
	return e.parser.ParseNamed(fileName, source)
}

// ParseFile reads and parses the script at path
func (e *Engine) ParseFile(path string) (*program.Program, error) {
	return e.parser.ParseFile(path)
}

// Load checks plugin against the engine's core version and returns an
// executor for it. An incompatible plugin yields a diag.KindCompat error.
func Load[S any](e *Engine, plugin *dispatch.Plugin[S]) (*executor.Executor[S], error) {
	if err := plugin.Validate(); err != nil {
		return nil, mdwerror.Wrap(err, "invalid plugin").
			WithCode(mdwerror.CodeInvalidPlugin).
			WithOperation("pl2.Load")
	}

	errOut := diag.NewErrorBuffer(e.options.ErrorCapacity)
	if !semver.Check(e.options.Core, plugin.Requires, errOut) {
		e.logger.Warn("Plugin rejected", mdwlog.Fields{
			"plugin":   plugin.Name,
			"requires": plugin.Requires.String(),
			"core":     e.options.Core.String(),
		})
		return nil, errOut
	}
	errOut.Release()

	exec, err := executor.New(plugin, executor.Options{
		Logger:               e.base,
		ErrorCapacity:        e.options.ErrorCapacity,
		OnAdvisory:           e.options.OnAdvisory,
		AdviseEveryExecution: e.options.AdviseEveryExecution,
	})
	if err != nil {
		return nil, mdwerror.Wrap(err, "cannot create executor").
			WithCode(mdwerror.CodeInvalidPlugin).
			WithOperation("pl2.Load")
	}

	e.logger.Info("Plugin loaded", mdwlog.Fields{
		"plugin":   plugin.Name,
		"requires": plugin.Requires.String(),
		"entries":  plugin.Table.Len(),
	})
	return exec, nil
}

// Execute loads plugin, parses source and runs it once
func Execute[S any](ctx context.Context, e *Engine, plugin *dispatch.Plugin[S], source string) error {
	exec, err := Load(e, plugin)
	if err != nil {
		return err
	}
	prog, err := e.Parse(source)
	if err != nil {
		return err
	}
	return exec.Run(ctx, prog)
}

// ExecuteFile loads plugin, parses the script at path and runs it once
func ExecuteFile[S any](ctx context.Context, e *Engine, plugin *dispatch.Plugin[S], path string) error {
	exec, err := Load(e, plugin)
	if err != nil {
		return err
	}
	prog, err := e.ParseFile(path)
	if err != nil {
		return err
	}
	return exec.Run(ctx, prog)
}
