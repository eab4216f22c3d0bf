// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/yourbase/flatini/ini"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "check file...",
		Example: "$ initool check conf.d/*.ini",
		Short:   "Validate files",
		Long: `
The check command parses each file and reports the location of the first
syntax error in every invalid file as "file:line:column: message". It fails
if any file is invalid.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.checkFiles(cmd, args)
		},
	}
}

func (a *app) checkFiles(cmd *cobra.Command, paths []string) error {
	ctx := cmd.Context()
	failed := 0
	for _, path := range paths {
		data, err := a.readInput(ctx, path)
		if err != nil {
			return err
		}
		d, err := ini.Parse(data)
		var perr *ini.ParseError
		if errors.As(err, &perr) {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "%s:%d:%d: %v\n", displayPath(path), perr.Line, perr.Column, perr.Err)
			continue
		}
		if err != nil {
			return wrapParseError(path, err)
		}
		a.V(ctx, "%s: ok, %d sections", displayPath(path), d.Len())
	}
	if failed > 0 {
		return errors.Errorf("%d of %d files failed to parse", failed, len(paths))
	}
	return nil
}
