// ============================================================================
// pl2 - Embeddable Command Language Engine
// ============================================================================
//
// Package:     cmd
// Description: parse command: print parsed programs as text or YAML
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/pl2/foundation/core/error"
	"github.com/msto63/pl2/foundation/pl2/program"
)

// commandDoc is the YAML shape of a parsed command
type commandDoc struct {
	Line   uint16     `yaml:"line"`
	Name   string     `yaml:"name"`
	Args   []tokenDoc `yaml:"args,omitempty"`
	Source string     `yaml:"source"`
}

type tokenDoc struct {
	Text    string `yaml:"text"`
	Literal bool   `yaml:"literal,omitempty"`
}

type programDoc struct {
	File     string       `yaml:"file"`
	Commands []commandDoc `yaml:"commands"`
}

func newParseCmd(global *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse <script>",
		Short: "Show how a script is split into commands",
		Long: `Parses a script and prints its commands. The text format renders the
program back to source that parses to the same commands; the yaml format
lists every command with its line and tokens.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := global.engine(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			prog, err := readScript(engine, cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			switch format {
			case "text":
				if prog.Len() > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), prog.String())
				}
				return nil
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(toDoc(prog)); err != nil {
					return mdwerror.Wrap(err, "cannot encode program").
						WithCode(mdwerror.CodeInternal).
						WithOperation("parse")
				}
				return enc.Close()
			default:
				return mdwerror.Newf("unknown format %q, use text or yaml", format).
					WithCode(mdwerror.CodeInvalidInput).
					WithOperation("parse")
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or yaml")
	return cmd
}

func toDoc(prog *program.Program) programDoc {
	doc := programDoc{File: prog.FileName(), Commands: make([]commandDoc, 0, prog.Len())}
	prog.Walk(func(c *program.Command) bool {
		cd := commandDoc{Line: c.Source.Line, Name: c.Name(), Source: c.String()}
		for _, tok := range c.Args() {
			cd.Args = append(cd.Args, tokenDoc{Text: tok.Text(), Literal: tok.IsString()})
		}
		doc.Commands = append(doc.Commands, cd)
		return true
	})
	return doc
}
