// File: engine_test.go
// Title: PL2 Engine Tests
// Description: End-to-end tests from source text through the compatibility
//              gate to a finished run.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package pl2_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdwerror "github.com/msto63/pl2/foundation/core/error"
	mdwlog "github.com/msto63/pl2/foundation/core/log"
	"github.com/msto63/pl2/foundation/pl2"
	"github.com/msto63/pl2/foundation/pl2/diag"
	"github.com/msto63/pl2/foundation/pl2/dispatch"
	"github.com/msto63/pl2/foundation/pl2/program"
	"github.com/msto63/pl2/foundation/pl2/semver"
)

type output struct {
	lines []string
}

func greeter(out *output, requires semver.Version) *dispatch.Plugin[*output] {
	return &dispatch.Plugin[*output]{
		Name:     "greeter",
		Requires: requires,
		Init:     func(*diag.Error) *output { return out },
		Table: dispatch.MustTable(
			dispatch.Entry[*output]{
				Match: dispatch.ByName("greet"),
				Handler: func(_ *program.Program, s *output, cmd *program.Command, _ *diag.Error) *program.Command {
					s.lines = append(s.lines, "hello, "+cmd.Part(1).Text())
					return nil
				},
			},
			dispatch.Entry[*output]{Match: dispatch.ByName("x"), Removed: true},
		),
	}
}

func newEngine(t *testing.T, opts pl2.Options) *pl2.Engine {
	t.Helper()
	opts.Logger = mdwlog.Discard()
	e, err := pl2.NewEngine(opts)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func TestExecuteGreetWorld(t *testing.T) {
	out := &output{}
	e := newEngine(t, pl2.Options{})

	if err := pl2.Execute(context.Background(), e, greeter(out, semver.New(1, 0, 0)), `greet "world"`); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(out.lines) != 1 || out.lines[0] != "hello, world" {
		t.Errorf("lines = %v", out.lines)
	}
}

func TestExecuteRemovedCommand(t *testing.T) {
	out := &output{}
	e := newEngine(t, pl2.Options{})

	prog, err := e.ParseNamed("script.pl2", "greet a\nx")
	if err != nil {
		t.Fatalf("ParseNamed() error = %v", err)
	}
	exec, err := pl2.Load(e, greeter(out, semver.New(1, 0, 0)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	err = exec.Run(context.Background(), prog)
	if err == nil {
		t.Fatal("Run() succeeded")
	}
	want := `in file script.pl2:2: error[11]: removed command "x"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestLoadCompatibility(t *testing.T) {
	tests := []struct {
		name     string
		core     semver.Version
		requires semver.Version
		wantErr  bool
	}{
		{"same version", semver.New(1, 0, 0), semver.New(1, 0, 0), false},
		{"newer minor", semver.New(1, 4, 2), semver.New(1, 2, 0), false},
		{"older minor", semver.New(1, 2, 0), semver.New(1, 3, 0), true},
		{"other major", semver.New(2, 0, 0), semver.New(1, 0, 0), true},
		{"exact patch mismatch", semver.New(1, 2, 3), semver.New(1, 2, 4).AsExact(), true},
		{"exact match", semver.New(1, 2, 3), semver.New(1, 2, 3).AsExact(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, pl2.Options{Core: tt.core})
			_, err := pl2.Load(e, greeter(&output{}, tt.requires))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			d, ok := diag.AsError(err)
			if !ok || d.Kind() != diag.KindCompat || d.Code() != diag.CodeIncompatible {
				t.Errorf("Load() error = %v, want compatibility diagnostic", err)
			}
		})
	}
}

func TestLoadInvalidPlugin(t *testing.T) {
	e := newEngine(t, pl2.Options{})
	_, err := pl2.Load(e, &dispatch.Plugin[*output]{Name: "empty", Requires: semver.New(1, 0, 0)})
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidPlugin) {
		t.Errorf("Load() error = %v, want %v", err, mdwerror.CodeInvalidPlugin)
	}
}

func TestNewEngineRejectsNegativeTokens(t *testing.T) {
	_, err := pl2.NewEngine(pl2.Options{Logger: mdwlog.Discard(), MaxTokens: -1})
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("NewEngine() error = %v, want %v", err, mdwerror.CodeInvalidInput)
	}
}

func TestEngineDefaultsToCoreVersion(t *testing.T) {
	e := newEngine(t, pl2.Options{})
	if e.Core().Major != 1 {
		t.Errorf("Core() = %s, want major 1", e.Core())
	}
}

func TestEngineTokenLimit(t *testing.T) {
	e := newEngine(t, pl2.Options{MaxTokens: 2})
	_, err := e.Parse("greet a\ngreet a b")
	d, ok := diag.AsError(err)
	if !ok || d.Code() != diag.CodeTooManyTokens || d.Source.Line != 2 {
		t.Errorf("Parse() error = %v, want too many tokens on line 2", err)
	}
}

func TestExecuteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.pl2")
	if err := os.WriteFile(path, []byte("# greeting\ngreet 'file'\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out := &output{}
	e := newEngine(t, pl2.Options{})
	if err := pl2.ExecuteFile(context.Background(), e, greeter(out, semver.New(1, 0, 0)), path); err != nil {
		t.Fatalf("ExecuteFile() error = %v", err)
	}
	if len(out.lines) != 1 || out.lines[0] != "hello, file" {
		t.Errorf("lines = %v", out.lines)
	}

	err := pl2.ExecuteFile(context.Background(), e, greeter(out, semver.New(1, 0, 0)), filepath.Join(dir, "missing.pl2"))
	if !mdwerror.HasCode(err, mdwerror.CodeScriptNotFound) {
		t.Errorf("ExecuteFile() error = %v, want %v", err, mdwerror.CodeScriptNotFound)
	}
}

func TestExecuteAdvisoryHook(t *testing.T) {
	var got []string
	e := newEngine(t, pl2.Options{
		OnAdvisory: func(a diag.Advisory) { got = append(got, a.String()) },
	})

	out := &output{}
	plugin := greeter(out, semver.New(1, 0, 0))
	plugin.Table = dispatch.MustTable(dispatch.Entry[*output]{
		Match:      dispatch.ByName("hi"),
		Deprecated: true,
		Note:       "use greet",
		Handler: func(_ *program.Program, s *output, _ *program.Command, _ *diag.Error) *program.Command {
			s.lines = append(s.lines, "hi")
			return nil
		},
	})

	if err := pl2.Execute(context.Background(), e, plugin, "hi"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(got) != 1 || !strings.Contains(got[0], "warning: hi: use greet") {
		t.Errorf("advisories = %v", got)
	}
}
