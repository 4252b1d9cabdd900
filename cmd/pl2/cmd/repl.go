// ============================================================================
// pl2 - Embeddable Command Language Engine
// ============================================================================
//
// Package:     cmd
// Description: repl command: start the interactive shell
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/pl2/internal/demo"
	"github.com/msto63/pl2/internal/tui/repl"
	"github.com/msto63/pl2/pkg/core/logging"
	"github.com/msto63/pl2/pkg/core/version"
)

func newReplCmd(global *globalOptions) *cobra.Command {
	var lenient bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive demo language shell",
		Long: `Starts an interactive shell. Every line is parsed and run against an
environment that keeps its variables between lines.

Navigation:
  Enter       run the line
  Up/Down     history
  PgUp/PgDn   scroll
  Ctrl+L      clear
  Esc         quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("lenient") {
				lenient = global.cfg.Demo.Lenient
			}

			// Log lines would tear the full-screen UI; only errors pass.
			logger := logging.NewCLILogger("pl2-repl", "error", "text", cmd.ErrOrStderr(), false)

			session, err := demo.NewSession(demo.SessionConfig{
				Logger:        logger,
				MaxTokens:     global.cfg.Engine.MaxTokens,
				ErrorCapacity: global.cfg.ErrorCapacity(),
				Lenient:       lenient,
				Vars:          global.cfg.Demo.Vars,
			})
			if err != nil {
				return err
			}

			cfg := repl.DefaultConfig(session)
			cfg.Title = "pl2 " + version.REPL + " (core " + version.Core + ")"
			return repl.Run(cfg)
		},
	}

	cmd.Flags().BoolVar(&lenient, "lenient", false, "skip unknown commands instead of failing")
	return cmd
}
