// ============================================================================
// pl2 - Embeddable Command Language Engine
// ============================================================================
//
// Package:     demo
// Description: Demo language plugin for the pl2 engine
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

// Package demo implements a small scripting language on top of the pl2
// engine. It backs the pl2 command line tool and the REPL.
package demo

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	mdwlog "github.com/msto63/pl2/foundation/core/log"
	"github.com/msto63/pl2/foundation/pl2/diag"
	"github.com/msto63/pl2/foundation/pl2/dispatch"
	"github.com/msto63/pl2/foundation/pl2/program"
	"github.com/msto63/pl2/foundation/pl2/semver"
	mdwstringx "github.com/msto63/pl2/foundation/utils/stringx"
)

// Error codes reported by the demo language
const (
	CodeUsage     = diag.FirstPluginCode
	CodeNoLabel   = diag.FirstPluginCode + 1
	CodeBadNumber = diag.FirstPluginCode + 2
	CodeNoOutput  = diag.FirstPluginCode + 3
)

// Requires is the core version the demo language is written against
var Requires = semver.New(1, 0, 0)

// Env is the state shared by every run of one plugin instance
type Env struct {
	Out  io.Writer
	Vars map[string]string

	// Runs counts Init calls, Released the ExtraData values handed back
	// after runs.
	Runs     int
	Released int
}

// NewEnv creates an environment writing to out
func NewEnv(out io.Writer, vars map[string]string) *Env {
	env := &Env{Out: out, Vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		env.Vars[k] = v
	}
	return env
}

// Config configures the demo language
type Config struct {
	Logger *mdwlog.Logger

	// Lenient reports unknown commands to the output and continues
	// instead of failing the run.
	Lenient bool
}

// repeatState is the ExtraData of a repeat command
type repeatState struct {
	target *program.Command
	left   int
}

type language struct {
	env    *Env
	logger *mdwlog.Logger
}

// NewPlugin creates the demo plugin operating on env
func NewPlugin(env *Env, cfg Config) *dispatch.Plugin[*Env] {
	if cfg.Logger == nil {
		cfg.Logger = mdwlog.GetDefault()
	}
	l := &language{env: env, logger: cfg.Logger.WithField("component", "demo")}

	plugin := &dispatch.Plugin[*Env]{
		Name:           "demo",
		Info:           "echo, variables, labels and loops",
		Requires:       Requires,
		Init:           l.init,
		Teardown:       l.teardown,
		CleanupCommand: l.cleanup,
		Table: dispatch.MustTable(
			dispatch.Entry[*Env]{Match: dispatch.ByName("echo"), Handler: l.echo},
			dispatch.Entry[*Env]{Match: dispatch.ByName("say"), Handler: l.echo, Deprecated: true, Note: "use echo"},
			dispatch.Entry[*Env]{Match: dispatch.ByName("beep"), Removed: true, Note: "the terminal bell is gone"},
			dispatch.Entry[*Env]{Match: dispatch.ByName("set"), Handler: l.set},
			dispatch.Entry[*Env]{Match: dispatch.ByPredicate("name=value", isAssignment), Handler: l.assign},
			dispatch.Entry[*Env]{Match: dispatch.ByName("vars"), Handler: l.vars},
			dispatch.Entry[*Env]{Match: dispatch.ByName("label"), Handler: l.label},
			dispatch.Entry[*Env]{Match: dispatch.ByName("goto"), Handler: l.jump},
			dispatch.Entry[*Env]{Match: dispatch.ByName("repeat"), Handler: l.repeat},
			dispatch.Entry[*Env]{Match: dispatch.ByName("fail"), Handler: l.fail},
		),
	}
	if cfg.Lenient {
		plugin.Fallback = l.skip
	}
	return plugin
}

func (l *language) init(errOut *diag.Error) *Env {
	if l.env.Out == nil {
		errOut.Format(CodeNoOutput, diag.SourceInfo{}, nil, "demo environment has no output")
		return nil
	}
	if l.env.Vars == nil {
		l.env.Vars = make(map[string]string)
	}
	l.env.Runs++
	return l.env
}

func (l *language) teardown(env *Env) {
	if env == nil {
		return
	}
	if f, ok := env.Out.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			l.logger.WarnWithErr("Flushing output failed", err)
		}
	}
}

func (l *language) cleanup(extra any) {
	l.env.Released++
	if r, ok := extra.(*repeatState); ok {
		l.logger.Trace("Released repeat counter", mdwlog.Fields{"left": r.left})
	}
}

// expand returns the text of token i, replacing a bare $name word with
// the variable's value. Literals are never expanded.
func (l *language) expand(env *Env, cmd *program.Command, i int) string {
	tok := cmd.Part(i)
	text := tok.Text()
	if tok.IsString() || len(text) < 2 || text[0] != '$' {
		return text
	}
	return env.Vars[text[1:]]
}

func (l *language) args(env *Env, cmd *program.Command) []string {
	out := make([]string, 0, cmd.Size()-1)
	for i := 1; i < cmd.Size(); i++ {
		out = append(out, l.expand(env, cmd, i))
	}
	return out
}

func usage(cmd *program.Command, errOut *diag.Error, synopsis string) *program.Command {
	errOut.Format(CodeUsage, cmd.Source, nil, "usage: %s", synopsis)
	return nil
}

func (l *language) echo(_ *program.Program, env *Env, cmd *program.Command, _ *diag.Error) *program.Command {
	fmt.Fprintln(env.Out, strings.Join(l.args(env, cmd), " "))
	return nil
}

func (l *language) set(_ *program.Program, env *Env, cmd *program.Command, errOut *diag.Error) *program.Command {
	if cmd.Size() != 3 || mdwstringx.IsBlank(cmd.Part(1).Text()) {
		return usage(cmd, errOut, "set name value")
	}
	env.Vars[cmd.Part(1).Text()] = l.expand(env, cmd, 2)
	return nil
}

func isAssignment(cmd *program.Command) bool {
	if cmd.Size() != 1 || cmd.Part(0).IsString() {
		return false
	}
	return strings.IndexByte(cmd.Name(), '=') > 0
}

func (l *language) assign(_ *program.Program, env *Env, cmd *program.Command, _ *diag.Error) *program.Command {
	name, value, _ := strings.Cut(cmd.Name(), "=")
	if strings.HasPrefix(value, "$") && len(value) > 1 {
		value = env.Vars[value[1:]]
	}
	env.Vars[name] = value
	return nil
}

func (l *language) vars(_ *program.Program, env *Env, _ *program.Command, _ *diag.Error) *program.Command {
	names := make([]string, 0, len(env.Vars))
	for name := range env.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(env.Out, "%s=%s\n", name, env.Vars[name])
	}
	return nil
}

func (l *language) label(_ *program.Program, _ *Env, cmd *program.Command, errOut *diag.Error) *program.Command {
	if cmd.Size() != 2 {
		return usage(cmd, errOut, "label name")
	}
	return nil
}

// findLabel returns the first "label name" command of prog
func findLabel(prog *program.Program, name string) *program.Command {
	var found *program.Command
	prog.Walk(func(c *program.Command) bool {
		if c.Name() == "label" && c.Size() == 2 && c.Part(1).Text() == name {
			found = c
			return false
		}
		return true
	})
	return found
}

func (l *language) jump(prog *program.Program, _ *Env, cmd *program.Command, errOut *diag.Error) *program.Command {
	if cmd.Size() != 2 {
		return usage(cmd, errOut, "goto name")
	}
	if target, ok := cmd.ExtraData.(*program.Command); ok {
		return target
	}

	target := findLabel(prog, cmd.Part(1).Text())
	if target == nil {
		errOut.Format(CodeNoLabel, cmd.Source, nil, "no label %q", cmd.Part(1).Text())
		return nil
	}
	cmd.ExtraData = target
	return target
}

func (l *language) repeat(prog *program.Program, env *Env, cmd *program.Command, errOut *diag.Error) *program.Command {
	if cmd.Size() != 3 {
		return usage(cmd, errOut, "repeat label count")
	}

	state, ok := cmd.ExtraData.(*repeatState)
	if !ok {
		count, err := strconv.Atoi(l.expand(env, cmd, 2))
		if err != nil || count < 0 {
			errOut.Format(CodeBadNumber, cmd.Source, nil, "repeat count must be a non-negative number, got %q", cmd.Part(2).Text())
			return nil
		}
		target := findLabel(prog, cmd.Part(1).Text())
		if target == nil {
			errOut.Format(CodeNoLabel, cmd.Source, nil, "no label %q", cmd.Part(1).Text())
			return nil
		}
		state = &repeatState{target: target, left: count}
		cmd.ExtraData = state
	}

	if state.left == 0 {
		// Exhausted: re-arm for the next time the cursor arrives here.
		cmd.ExtraData = nil
		return nil
	}
	state.left--
	return state.target
}

func (l *language) fail(_ *program.Program, env *Env, cmd *program.Command, errOut *diag.Error) *program.Command {
	if cmd.Size() < 2 {
		return usage(cmd, errOut, "fail code [message...]")
	}
	code, err := strconv.ParseUint(cmd.Part(1).Text(), 10, 16)
	if err != nil || diag.Code(code) < diag.FirstPluginCode {
		errOut.Format(CodeBadNumber, cmd.Source, nil, "fail code must be between %d and 65535, got %q", diag.FirstPluginCode, cmd.Part(1).Text())
		return nil
	}
	message := mdwstringx.FirstNonBlank(strings.Join(l.args(env, cmd)[1:], " "), "failed")
	errOut.Format(diag.Code(code), cmd.Source, nil, "%s", message)
	return nil
}

func (l *language) skip(_ *program.Program, env *Env, cmd *program.Command, _ *diag.Error) *program.Command {
	fmt.Fprintf(env.Out, "skipped unknown command %q at %s\n", cmd.Name(), cmd.Source)
	return nil
}
