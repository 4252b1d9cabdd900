// ============================================================================
// pl2 - Embeddable Command Language Engine
// ============================================================================
//
// Package:     cmd
// Description: Root command, global flags, configuration and exit codes
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

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/pl2/foundation/core/error"
	mdwlog "github.com/msto63/pl2/foundation/core/log"
	"github.com/msto63/pl2/foundation/pl2"
	"github.com/msto63/pl2/foundation/pl2/diag"
	"github.com/msto63/pl2/pkg/core/config"
	"github.com/msto63/pl2/pkg/core/logging"
)

// globalOptions holds the persistent flags and what they resolve to
type globalOptions struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *mdwlog.Logger
}

// NewRootCmd builds the pl2 command tree
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "pl2",
		Short: "pl2 - embeddable command language engine",
		Long: `pl2 parses and runs scripts written in small line-oriented
command languages. The bundled demo language offers:

  echo args...       print arguments ($name expands variables)
  set name value     set a variable (or: name=value)
  label name         mark a jump target
  goto name          jump to a label
  repeat name n      jump back to a label n times
  fail code message  stop with an error
  vars               list variables

Commands are separated by newlines or ';', '#' starts a comment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: $PL2_CONFIG or ./pl2.toml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newRunCmd(opts),
		newCheckCmd(opts),
		newParseCmd(opts),
		newReplCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line and reports a failure on stderr
func Execute() error {
	root := NewRootCmd()
	err := root.ExecuteContext(context.Background())
	if err != nil {
		printError(root.ErrOrStderr(), err)
	}
	return err
}

// ExitCode maps an error to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if d, ok := diag.AsError(err); ok {
		switch d.Kind() {
		case diag.KindParse:
			return mdwerror.CodeParse.ExitCode()
		case diag.KindCompat:
			return mdwerror.CodeIncompatible.ExitCode()
		default:
			return mdwerror.CodeExecution.ExitCode()
		}
	}
	return mdwerror.GetCode(err).ExitCode()
}

// load reads the configuration and builds the logger
func (o *globalOptions) load(stderr io.Writer) error {
	cfg, err := config.LoadOrDefault(o.cfgFile)
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = logging.NewCLILogger("pl2", cfg.Log.Level, cfg.Log.Format, stderr, o.verbose)
	o.logger.Debug("Configuration loaded", logging.KV(
		"file", o.cfgFile,
		"maxTokens", cfg.Engine.MaxTokens,
		"errorCapacity", cfg.Engine.ErrorCapacity,
	))
	return nil
}

// engine creates an engine from the configuration. Advisories are
// rendered to w.
func (o *globalOptions) engine(w io.Writer) (*pl2.Engine, error) {
	return pl2.NewEngine(pl2.Options{
		Logger:        o.logger,
		MaxTokens:     o.cfg.Engine.MaxTokens,
		ErrorCapacity: o.cfg.ErrorCapacity(),
		OnAdvisory: func(a diag.Advisory) {
			fmt.Fprintln(w, renderAdvisory(a))
		},
	})
}

func printError(w io.Writer, err error) {
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintln(w, renderError(err))
}
