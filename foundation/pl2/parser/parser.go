// File: parser.go
// Title: PL2 Parser
// Description: Groups lexemes into commands, enforces the per-command token
//              limit and builds the linked program. Failures are reported
//              as parse diagnostics.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package parser

import (
	"errors"
	"fmt"

	mdwlog "github.com/msto63/pl2/foundation/core/log"
	"github.com/msto63/pl2/foundation/pl2/diag"
	"github.com/msto63/pl2/foundation/pl2/program"
)

// DefaultMaxTokens is the per-command token limit used when none is set.
const DefaultMaxTokens = 64

// Parser converts source text into programs
type Parser struct {
	logger  *mdwlog.Logger
	options Options
}

// Options configures parser behavior
type Options struct {
	Logger *mdwlog.Logger

	// FileName is recorded in every SourceInfo of the parsed program.
	FileName string

	// MaxTokens bounds the tokens of a single command. Zero selects
	// DefaultMaxTokens.
	MaxTokens int

	// ErrorCapacity is the reason capacity of returned diagnostics. Zero
	// selects diag.DefaultCapacity.
	ErrorCapacity uint16
}

// New creates a parser with the given options
func New(opts Options) (*Parser, error) {
	if opts.MaxTokens < 0 {
		return nil, fmt.Errorf("max tokens must not be negative: %d", opts.MaxTokens)
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.ErrorCapacity == 0 {
		opts.ErrorCapacity = diag.DefaultCapacity
	}

	return &Parser{
		logger:  opts.Logger.WithField("component", "pl2-parser"),
		options: opts,
	}, nil
}

// Parse parses source with the given limits and no file name
func Parse(source string, maxTokens int, errorCapacity uint16) (*program.Program, error) {
	p, err := New(Options{MaxTokens: maxTokens, ErrorCapacity: errorCapacity})
	if err != nil {
		return nil, err
	}
	return p.Parse(source)
}

// Parse parses source under the configured file name
func (p *Parser) Parse(source string) (*program.Program, error) {
	return p.ParseNamed(p.options.FileName, source)
}

// ParseNamed parses source, recording fileName in the program's locations.
// On failure the returned error is a *diag.Error owned by the caller.
func (p *Parser) ParseNamed(fileName, source string) (*program.Program, error) {
	p.logger.Debug("Starting parse", mdwlog.Fields{
		"file":   fileName,
		"length": len(source),
	})

	lexer := NewLexer(source)
	builder := program.NewBuilder(fileName, source)
	tokens := make([]program.Token, 0, 8)
	cmdLine := 0

	for {
		lex, err := lexer.Next()
		if err != nil {
			return nil, p.fail(fileName, err)
		}

		switch lex.Type {
		case LexemeWord, LexemeString:
			if len(tokens) == 0 {
				cmdLine = lex.Line
			}
			if len(tokens) == p.options.MaxTokens {
				return nil, p.fail(fileName, &LexError{
					Code:    diag.CodeTooManyTokens,
					Line:    cmdLine,
					Message: fmt.Sprintf("command has more than %d tokens", p.options.MaxTokens),
				})
			}
			if lex.Type == LexemeString {
				tokens = append(tokens, program.Literal(lex.Value))
			} else {
				tokens = append(tokens, program.Word(lex.Value))
			}

		case LexemeSeparator, LexemeEOF:
			if len(tokens) > 0 {
				builder.Add(cmdLine, tokens...)
				tokens = tokens[:0]
			}
			if lex.Type == LexemeEOF {
				prog := builder.Build()
				p.logger.Debug("Parse completed", mdwlog.Fields{
					"file":     fileName,
					"commands": prog.Len(),
				})
				return prog, nil
			}
		}
	}
}

// fail converts a lexer error into a parse diagnostic
func (p *Parser) fail(fileName string, err error) error {
	errOut := diag.NewErrorBuffer(p.options.ErrorCapacity)

	var lexErr *LexError
	if errors.As(err, &lexErr) {
		errOut.FormatKind(diag.KindParse, lexErr.Code, diag.NewSourceInfo(fileName, lexErr.Line), nil, "%s", lexErr.Message)
	} else {
		errOut.FormatKind(diag.KindParse, diag.CodeInvalidEncoding, diag.SourceInfo{FileName: fileName}, nil, "%v", err)
	}

	p.logger.Warn("Parse failed", mdwlog.Fields{
		"file":  fileName,
		"line":  errOut.Source.Line,
		"code":  uint16(errOut.Code()),
		"error": errOut.Reason(),
	})
	return errOut
}
