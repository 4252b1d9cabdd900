package demo

import (
	"context"
	"strings"
	"testing"

	mdwlog "github.com/msto63/pl2/foundation/core/log"
	"github.com/msto63/pl2/foundation/pl2/diag"
)

func TestSession(t *testing.T) {
	s, err := NewSession(SessionConfig{Logger: mdwlog.Discard(), Vars: map[string]string{"user": "ada"}})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	ctx := context.Background()

	out, warnings, err := s.Run(ctx, "set n 2; echo $user $n")
	if err != nil || out != "ada 2" || len(warnings) != 0 {
		t.Errorf("Run() = %q, %v, %v", out, warnings, err)
	}

	out, warnings, err = s.Run(ctx, "say $n")
	if err != nil || out != "2" {
		t.Errorf("Run() = %q, %v", out, err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "warning: say: use echo") {
		t.Errorf("warnings = %v", warnings)
	}

	out, _, err = s.Run(ctx, "echo before; beep")
	if out != "before" {
		t.Errorf("output = %q, want output up to the failure", out)
	}
	d, ok := diag.AsError(err)
	if !ok || d.Code() != diag.CodeRemovedCommand || d.Source.FileName != "<repl>" {
		t.Errorf("Run() error = %v", err)
	}

	if _, _, err := s.Run(ctx, `echo "open`); err == nil {
		t.Error("Run() accepted an unterminated literal")
	}

	if s.Lines() != 4 || s.Env().Runs != 3 {
		t.Errorf("Lines() = %d, Runs = %d", s.Lines(), s.Env().Runs)
	}
}

func TestSessionLenient(t *testing.T) {
	s, err := NewSession(SessionConfig{Logger: mdwlog.Discard(), Lenient: true})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	out, _, err := s.Run(context.Background(), "nope")
	if err != nil || !strings.HasPrefix(out, `skipped unknown command "nope"`) {
		t.Errorf("Run() = %q, %v", out, err)
	}
}

func TestSessionRejectsBadLimits(t *testing.T) {
	if _, err := NewSession(SessionConfig{Logger: mdwlog.Discard(), MaxTokens: -3}); err == nil {
		t.Error("NewSession() accepted negative max tokens")
	}
}

func TestSessionReusesParsedLines(t *testing.T) {
	s, err := NewSession(SessionConfig{Logger: mdwlog.Discard(), ProgramCache: 2})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		out, warnings, err := s.Run(ctx, "say hi")
		if err != nil || out != "hi" {
			t.Fatalf("run %d = %q, %v", i, out, err)
		}
		if len(warnings) != 1 {
			t.Errorf("run %d warnings = %v, want one advisory per run", i, warnings)
		}
	}

	// Parse failures are not cached.
	for i := 0; i < 2; i++ {
		if _, _, err := s.Run(ctx, `echo "open`); err == nil {
			t.Fatal("Run() accepted an unterminated literal")
		}
	}

	hits, misses := s.CacheStats()
	if hits != 2 || misses != 3 {
		t.Errorf("CacheStats() = %d, %d, want 2, 3", hits, misses)
	}
}
