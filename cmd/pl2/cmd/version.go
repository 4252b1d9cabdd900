// ============================================================================
// pl2 - Embeddable Command Language Engine
// ============================================================================
//
// Package:     cmd
// Description: version command
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/pl2/internal/demo"
	"github.com/msto63/pl2/pkg/core/version"
)

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// The version needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, version.CLI)
				return
			}
			fmt.Fprintln(out, version.String())
			fmt.Fprintf(out, "  Core:          %s\n", version.CoreVersion())
			fmt.Fprintf(out, "  Demo language: %s (requires core %s)\n", version.Demo, demo.Requires)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "print only the version number")
	return cmd
}
