// File: parser_test.go
// Title: PL2 Parser Unit Tests
// Description: Tests for program construction, limits, diagnostics,
//              rendering round trips and file decoding.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package parser

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdwerror "github.com/msto63/pl2/foundation/core/error"
	mdwlog "github.com/msto63/pl2/foundation/core/log"
	"github.com/msto63/pl2/foundation/pl2/diag"
	"github.com/msto63/pl2/foundation/pl2/program"
)

func newTestParser(t *testing.T, opts Options) *Parser {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = mdwlog.Discard()
	}
	p, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func commandsOf(prog *program.Program) [][]string {
	var out [][]string
	prog.Walk(func(c *program.Command) bool {
		parts := make([]string, 0, c.Size())
		for i := 0; i < c.Size(); i++ {
			parts = append(parts, c.Part(i).String())
		}
		out = append(out, parts)
		return true
	})
	return out
}

func TestParse_Commands(t *testing.T) {
	source := "greet \"world\"\n\n  set x 1 ; set y 2\n# comment only\necho 'a\nb' done\n"
	prog, err := newTestParser(t, Options{FileName: "main.pl2"}).Parse(source)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := [][]string{
		{"greet", `"world"`},
		{"set", "x", "1"},
		{"set", "y", "2"},
		{"echo", `"a\nb"`, "done"},
	}
	got := commandsOf(prog)
	if len(got) != len(want) {
		t.Fatalf("got %d commands %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if strings.Join(got[i], " ") != strings.Join(want[i], " ") {
			t.Errorf("command %d = %v, want %v", i, got[i], want[i])
		}
	}

	lines := []uint16{1, 3, 3, 5}
	i := 0
	prog.Walk(func(c *program.Command) bool {
		if c.Source.Line != lines[i] || c.Source.FileName != "main.pl2" {
			t.Errorf("command %d source = %v, want main.pl2:%d", i, c.Source, lines[i])
		}
		i++
		return true
	})

	if prog.Source() != source {
		t.Error("program should own the source text")
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, src := range []string{"", "\n\n", " ; ; ", "# nothing\n"} {
		prog, err := Parse(src, 0, 0)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", src, err)
		}
		if prog.First() != nil {
			t.Errorf("Parse(%q) should produce no commands", src)
		}
	}
}

func TestParse_TokenLimit(t *testing.T) {
	p := newTestParser(t, Options{FileName: "f", MaxTokens: 3})

	if _, err := p.Parse("a b c\nd e f"); err != nil {
		t.Fatalf("commands at the limit should parse: %v", err)
	}

	_, err := p.Parse("ok\n\nx \"two\nlines\" y w\nz")
	errOut, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("error = %v, want *diag.Error", err)
	}
	defer errOut.Release()

	if errOut.Code() != diag.CodeTooManyTokens || errOut.Kind() != diag.KindParse {
		t.Errorf("code=%v kind=%v", errOut.Code(), errOut.Kind())
	}
	if errOut.Source.Line != 3 {
		t.Errorf("line = %d, want the command's first line 3", errOut.Source.Line)
	}
	if errOut.Error() != "in file f:3: error[3]: command has more than 3 tokens" {
		t.Errorf("Error() = %q", errOut.Error())
	}
}

func TestParse_DefaultTokenLimit(t *testing.T) {
	words := strings.Repeat("w ", DefaultMaxTokens)
	if _, err := Parse(words, 0, 0); err != nil {
		t.Fatalf("%d tokens should parse: %v", DefaultMaxTokens, err)
	}
	if _, err := Parse(words+"extra", 0, 0); err == nil {
		t.Fatalf("%d tokens should fail", DefaultMaxTokens+1)
	}
}

func TestParse_UnterminatedLiteral(t *testing.T) {
	_, err := newTestParser(t, Options{FileName: "u.pl2"}).Parse("one\ntwo \"never\nclosed\nthree")
	errOut, ok := diag.AsError(err)
	if !ok {
		t.Fatalf("error = %v, want diagnostic", err)
	}
	defer errOut.Release()

	if errOut.Code() != diag.CodeUnterminatedString || errOut.Source.Line != 2 {
		t.Errorf("got code %v at line %d, want unterminated at line 2", errOut.Code(), errOut.Source.Line)
	}
}

func TestParse_ErrorCapacity(t *testing.T) {
	_, err := newTestParser(t, Options{ErrorCapacity: 8}).Parse(`"\q"`)
	errOut, ok := diag.AsError(err)
	if !ok {
		t.Fatalf("error = %v", err)
	}
	defer errOut.Release()

	if len(errOut.Reason()) > 8 || !errOut.Truncated() {
		t.Errorf("reason %q should be truncated to 8 bytes", errOut.Reason())
	}
}

func TestNew_RejectsNegativeLimit(t *testing.T) {
	if _, err := New(Options{MaxTokens: -1}); err == nil {
		t.Error("New() should reject a negative token limit")
	}
}

func TestParse_RoundTrip(t *testing.T) {
	sources := []string{
		`greet "world"`,
		"set x 1; echo \"tab\there\" 'single' it's",
		"echo \"\\x00\\u00e9\\U0001F600 \\\\ \\\"\" \"\"",
		"a#b c\n\"\\xff\" 'multi\nline'",
		"über straße \"ünïcödé\"",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			assertRoundTrip(t, src)
		})
	}
}

func TestParse_RoundTripGenerated(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abcXYZ019_-=$.,:#'\"\\ \t\n;é😀\x01\x7f")

	randomText := func(n int) string {
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		return b.String()
	}
	randomWord := func() string {
		for {
			w := randomText(1 + rng.Intn(6))
			if strings.ContainsAny(w, " \t\n;") || strings.HasPrefix(w, "#") ||
				strings.HasPrefix(w, "\"") || strings.HasPrefix(w, "'") {
				continue
			}
			return w
		}
	}

	for i := 0; i < 200; i++ {
		b := program.NewBuilder("gen", "")
		for c := 0; c < 1+rng.Intn(4); c++ {
			var tokens []program.Token
			for k := 0; k < 1+rng.Intn(5); k++ {
				if rng.Intn(2) == 0 {
					tokens = append(tokens, program.Literal(randomText(rng.Intn(8))))
				} else {
					tokens = append(tokens, program.Word(randomWord()))
				}
			}
			b.Add(c+1, tokens...)
		}
		assertRoundTrip(t, b.Build().String())
	}
}

// assertRoundTrip checks that parse(render(parse(src))) has the same tokens
// as parse(src).
func assertRoundTrip(t *testing.T, src string) {
	t.Helper()

	first, err := Parse(src, 0, 0)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	rendered := first.String()
	second, err := Parse(rendered, 0, 0)
	if err != nil {
		t.Fatalf("Parse(rendered %q) error = %v", rendered, err)
	}

	a, b := first.First(), second.First()
	for a != nil && b != nil {
		if a.Size() != b.Size() {
			t.Fatalf("size %d != %d for %q", a.Size(), b.Size(), rendered)
		}
		for i := 0; i < a.Size(); i++ {
			if a.Part(i) != b.Part(i) {
				t.Fatalf("token %d: %+v != %+v (rendered %q)", i, a.Part(i), b.Part(i), rendered)
			}
		}
		a, b = a.Next(), b.Next()
	}
	if a != nil || b != nil {
		t.Fatalf("command count differs after round trip of %q", src)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"plain.pl2", []byte("greet \"world\"\n")},
		{"bom.pl2", append([]byte{0xEF, 0xBB, 0xBF}, []byte("greet \"world\"\n")...)},
		{"utf16.pl2", []byte{0xFF, 0xFE, 'g', 0, 'r', 0, 'e', 0, 'e', 0, 't', 0, ' ', 0, '"', 0, 'w', 0, 'o', 0, 'r', 0, 'l', 0, 'd', 0, '"', 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write(tt.name, tt.data)
			prog, err := ParseFile(path, Options{Logger: mdwlog.Discard()})
			if err != nil {
				t.Fatalf("ParseFile() error = %v", err)
			}
			first := prog.First()
			if first == nil || first.Name() != "greet" || first.Part(1).Text() != "world" {
				t.Fatalf("unexpected program %q", prog.String())
			}
			if first.Source.FileName != path {
				t.Errorf("file name = %q, want %q", first.Source.FileName, path)
			}
		})
	}

	t.Run("malformed utf8 still reported", func(t *testing.T) {
		path := write("bad.pl2", []byte("ok\n\xff\n"))
		_, err := ParseFile(path, Options{Logger: mdwlog.Discard()})
		errOut, ok := diag.AsError(err)
		if !ok {
			t.Fatalf("error = %v", err)
		}
		defer errOut.Release()
		if errOut.Code() != diag.CodeInvalidEncoding || errOut.Source.Line != 2 {
			t.Errorf("code=%v line=%d", errOut.Code(), errOut.Source.Line)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(dir, "absent.pl2"), Options{Logger: mdwlog.Discard()})
		if !mdwerror.HasCode(err, mdwerror.CodeScriptNotFound) {
			t.Errorf("error = %v, want SCRIPT_NOT_FOUND", err)
		}
	})
}
