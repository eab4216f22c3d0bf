// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// initool reads, rewrites and queries INI files.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var printError = color.New(color.FgHiRed).FprintfFunc()

func main() {
	root := newRootCommand(os.Stdin)
	if _, err := root.ExecuteC(); err != nil {
		printError(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCommand returns the base command with all subcommands attached.
// Commands read "-" arguments from stdin.
func newRootCommand(stdin io.Reader) *cobra.Command {
	a := &app{stdin: stdin}
	root := &cobra.Command{
		Use:   "initool",
		Short: "read, rewrite and query INI files",
		Long: `
initool works on flat INI files: named sections of key=value properties, with
';' comments. It can validate files, rewrite them in canonical form (sections
and keys sorted, comments dropped), and get or set individual properties.
`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadSettings(cmd)
		},
	}
	a.registerFlags(root.PersistentFlags())
	root.AddCommand(
		newFmtCommand(a),
		newGetCommand(a),
		newSetCommand(a),
		newUnsetCommand(a),
		newListCommand(a),
		newCheckCommand(a),
		newVersionCommand(),
	)
	return root
}

var version = "compiled manually"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "initool %s\n", version)
			return err
		},
	}
}
