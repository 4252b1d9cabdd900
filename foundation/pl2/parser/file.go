// File: file.go
// Title: Script Files
// Description: Reads scripts from disk, honouring byte order marks.
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
	"io/fs"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	mdwerror "github.com/msto63/pl2/foundation/core/error"
	"github.com/msto63/pl2/foundation/pl2/program"
)

// DecodeSource strips a UTF-8 byte order mark and converts UTF-16 input
// with a byte order mark to UTF-8. Other input is returned unchanged so
// that malformed UTF-8 is still reported by the lexer.
func DecodeSource(raw []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// ParseFile reads and parses the script at path. I/O failures are returned
// as coded host errors, parse failures as *diag.Error.
func (p *Parser) ParseFile(path string) (*program.Program, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		code := mdwerror.CodeScriptRead
		if errors.Is(err, fs.ErrNotExist) {
			code = mdwerror.CodeScriptNotFound
		}
		return nil, mdwerror.Wrap(err, "cannot read script").
			WithCode(code).
			WithDetail("path", path).
			WithOperation("parser.ParseFile")
	}

	source, err := DecodeSource(raw)
	if err != nil {
		return nil, mdwerror.Wrap(err, "cannot decode script").
			WithCode(mdwerror.CodeScriptRead).
			WithDetail("path", path).
			WithOperation("parser.ParseFile")
	}

	fileName := p.options.FileName
	if fileName == "" {
		fileName = path
	}
	return p.ParseNamed(fileName, source)
}

// ParseFile reads and parses the script at path with opts
func ParseFile(path string, opts Options) (*program.Program, error) {
	p, err := New(opts)
	if err != nil {
		return nil, err
	}
	return p.ParseFile(path)
}
