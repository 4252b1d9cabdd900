// ============================================================================
// pl2 - Embeddable Command Language Engine
// ============================================================================
//
// Package:     cmd
// Description: run command: execute scripts once, with a timeout or on change
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/pl2/foundation/core/error"
	mdwlog "github.com/msto63/pl2/foundation/core/log"
	"github.com/msto63/pl2/foundation/pl2"
	"github.com/msto63/pl2/foundation/pl2/parser"
	"github.com/msto63/pl2/foundation/pl2/program"
	"github.com/msto63/pl2/internal/demo"
	"github.com/msto63/pl2/pkg/core/config"
)

type runOptions struct {
	*globalOptions

	watch   bool
	timeout time.Duration
	lenient bool
	stats   bool
}

func newRunCmd(global *globalOptions) *cobra.Command {
	opts := &runOptions{globalOptions: global}

	cmd := &cobra.Command{
		Use:   "run <script>...",
		Short: "Run scripts with the demo language",
		Long: `Runs each script in order and stops at the first failure.
A script named "-" is read from stdin.

With --watch the single given script is run again whenever it changes,
until interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("timeout") {
				opts.timeout = opts.cfg.Run.Timeout.Duration
			}
			if !cmd.Flags().Changed("lenient") {
				opts.lenient = opts.cfg.Demo.Lenient
			}
			return opts.run(cmd, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-run the script when it changes")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "abort a run after this duration (0: no limit)")
	cmd.Flags().BoolVar(&opts.lenient, "lenient", false, "skip unknown commands instead of failing")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print run statistics")
	return cmd
}

func (o *runOptions) run(cmd *cobra.Command, scripts []string) error {
	if o.watch && len(scripts) != 1 {
		return mdwerror.New("--watch needs exactly one script").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("run")
	}
	if o.watch && scripts[0] == "-" {
		return mdwerror.New("--watch cannot watch stdin").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("run")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if o.watch {
		return o.watchLoop(ctx, cmd, scripts[0])
	}
	for _, script := range scripts {
		if err := o.runOnce(ctx, cmd, script); err != nil {
			return err
		}
	}
	return nil
}

// runOnce parses and runs one script with a fresh demo environment
func (o *runOptions) runOnce(ctx context.Context, cmd *cobra.Command, script string) error {
	engine, err := o.engine(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	env := demo.NewEnv(cmd.OutOrStdout(), o.cfg.Demo.Vars)
	exec, err := pl2.Load(engine, demo.NewPlugin(env, demo.Config{Logger: o.logger, Lenient: o.lenient}))
	if err != nil {
		return err
	}

	prog, err := readScript(engine, cmd.InOrStdin(), script)
	if err != nil {
		return err
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	err = exec.Run(ctx, prog)
	if o.stats {
		fmt.Fprintln(cmd.ErrOrStderr(), renderStats(exec.Stats()))
	}
	return err
}

// watchLoop runs script and again after every change until ctx is done.
// Failed runs are reported and do not end the loop.
func (o *runOptions) watchLoop(ctx context.Context, cmd *cobra.Command, script string) error {
	changes, err := config.Watch(ctx, script, o.cfg.Run.Debounce.Duration)
	if err != nil {
		return err
	}

	for {
		if err := o.runOnce(ctx, cmd, script); err != nil {
			printError(cmd.ErrOrStderr(), err)
		}
		o.logger.Info("Waiting for changes", mdwlog.Fields{"script": script})

		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			fmt.Fprintln(cmd.ErrOrStderr(), locationStyle.Render("--- "+script+" changed, running again"))
		}
	}
}

// readScript parses a file, or stdin for "-"
func readScript(engine *pl2.Engine, stdin io.Reader, script string) (*program.Program, error) {
	if script != "-" {
		return engine.ParseFile(script)
	}

	raw, err := io.ReadAll(stdin)
	if err != nil {
		return nil, mdwerror.Wrap(err, "cannot read stdin").
			WithCode(mdwerror.CodeScriptRead).
			WithOperation("run")
	}
	source, err := parser.DecodeSource(raw)
	if err != nil {
		return nil, mdwerror.Wrap(err, "cannot decode stdin").
			WithCode(mdwerror.CodeScriptRead).
			WithOperation("run")
	}
	return engine.ParseNamed("<stdin>", source)
}
