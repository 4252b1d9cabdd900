// ============================================================================
// pl2 - Embeddable Command Language Engine
// ============================================================================
//
// Package:     cmd
// Description: check command: resolve scripts against the demo table
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/pl2/foundation/core/error"
	"github.com/msto63/pl2/foundation/pl2/diag"
	"github.com/msto63/pl2/foundation/pl2/dispatch"
	"github.com/msto63/pl2/foundation/pl2/program"
	"github.com/msto63/pl2/internal/demo"
)

func newCheckCmd(global *globalOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check <script>...",
		Short: "Parse scripts and resolve every command without running them",
		Long: `Parses each script and resolves every command against the demo
language. Unknown and removed commands are reported as errors, deprecated
ones as warnings (errors with --strict). Nothing is executed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := global.engine(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			plugin := demo.NewPlugin(demo.NewEnv(cmd.OutOrStdout(), nil), demo.Config{Logger: global.logger})
			dispatcher, err := dispatch.NewDispatcher(plugin, global.logger)
			if err != nil {
				return err
			}

			problems := 0
			for _, script := range args {
				prog, err := readScript(engine, cmd.InOrStdin(), script)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), renderError(err))
					problems++
					continue
				}

				n := checkProgram(cmd, dispatcher, prog, strict, global.cfg.ErrorCapacity())
				if n == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), renderOK(fmt.Sprintf("%s (%d commands)", script, prog.Len())))
				}
				problems += n
			}

			if problems > 0 {
				return mdwerror.Newf("%d problem(s) found", problems).
					WithCode(mdwerror.CodeInvalidInput).
					WithOperation("check")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat deprecated commands as errors")
	return cmd
}

// checkProgram resolves every command of prog and reports problems
func checkProgram[S any](cmd *cobra.Command, d *dispatch.Dispatcher[S], prog *program.Program, strict bool, capacity uint16) int {
	problems := 0
	errOut := diag.NewErrorBuffer(capacity)
	defer errOut.Release()

	prog.Walk(func(c *program.Command) bool {
		errOut.Reset()
		res, ok := d.Resolve(c, errOut)
		switch {
		case !ok:
			fmt.Fprintln(cmd.ErrOrStderr(), renderDiag(errOut))
			problems++
		case res.Deprecated:
			fmt.Fprintln(cmd.ErrOrStderr(), renderAdvisory(res.Advisory(c)))
			if strict {
				problems++
			}
		}
		return true
	})
	return problems
}
