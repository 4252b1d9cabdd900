// ============================================================================
// pl2 - Embeddable Command Language Engine
// ============================================================================
//
// Package:     demo
// Description: Line-at-a-time sessions backing the REPL
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package demo

import (
	"bytes"
	"context"
	"strings"

	mdwlog "github.com/msto63/pl2/foundation/core/log"
	"github.com/msto63/pl2/foundation/pl2"
	"github.com/msto63/pl2/foundation/pl2/diag"
	"github.com/msto63/pl2/foundation/pl2/executor"
	"github.com/msto63/pl2/foundation/pl2/program"
	"github.com/msto63/pl2/pkg/core/cache"
)

// SessionConfig configures an interactive session
type SessionConfig struct {
	Logger        *mdwlog.Logger
	MaxTokens     int
	ErrorCapacity uint16
	Lenient       bool
	Vars          map[string]string

	// ProgramCache bounds how many parsed lines are kept for reuse;
	// zero uses the cache default.
	ProgramCache int
}

// Session runs one source line at a time against a persistent Env and
// captures what each run printed. It is used by the REPL.
type Session struct {
	engine     *pl2.Engine
	exec       *executor.Executor[*Env]
	programs   *cache.Cache[*program.Program]
	env        *Env
	out        *bytes.Buffer
	advisories []string
	lines      int
}

// NewSession creates a session with its own engine and environment
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Logger == nil {
		cfg.Logger = mdwlog.GetDefault()
	}

	s := &Session{
		out:      &bytes.Buffer{},
		programs: cache.New[*program.Program](cache.Config{MaxItems: cfg.ProgramCache}),
	}
	s.env = NewEnv(s.out, cfg.Vars)

	engine, err := pl2.NewEngine(pl2.Options{
		Logger:        cfg.Logger,
		MaxTokens:     cfg.MaxTokens,
		ErrorCapacity: cfg.ErrorCapacity,
		OnAdvisory: func(a diag.Advisory) {
			s.advisories = append(s.advisories, a.String())
		},
	})
	if err != nil {
		return nil, err
	}

	exec, err := pl2.Load(engine, NewPlugin(s.env, Config{Logger: cfg.Logger, Lenient: cfg.Lenient}))
	if err != nil {
		return nil, err
	}

	s.engine = engine
	s.exec = exec
	return s, nil
}

// Env returns the session's environment
func (s *Session) Env() *Env { return s.env }

// Run parses and runs line. Output holds everything the run printed,
// warnings the advisories it raised. Parsed lines are cached, so a repeated
// line keeps the resolution memos of its earlier runs.
func (s *Session) Run(ctx context.Context, line string) (output string, warnings []string, err error) {
	s.out.Reset()
	s.advisories = nil
	s.lines++

	prog, err := s.programs.GetOrSet(line, func() (*program.Program, error) {
		return s.engine.ParseNamed("<repl>", line)
	})
	if err == nil {
		err = s.exec.Run(ctx, prog)
	}
	return strings.TrimRight(s.out.String(), "\n"), s.advisories, err
}

// Lines returns how many lines the session has run
func (s *Session) Lines() int { return s.lines }

// CacheStats reports how often a line was served from the program cache
func (s *Session) CacheStats() (hits, misses int64) {
	hits, misses, _ = s.programs.Stats()
	return hits, misses
}
