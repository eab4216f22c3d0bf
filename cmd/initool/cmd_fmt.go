// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"io"

	"github.com/spf13/cobra"
	"github.com/yourbase/flatini/ini"
)

func newFmtCommand(a *app) *cobra.Command {
	var write bool
	c := &cobra.Command{
		Use:     "fmt [flags] file...",
		Example: "$ initool fmt -w settings.ini",
		Short:   "Rewrite files in canonical form",
		Long: `
The fmt command parses each file and prints it back in canonical form: sections
sorted by name, keys sorted within each section, no comments, and no whitespace
around names and values. With -w the result replaces the file instead.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.formatFiles(cmd, args, write)
		},
	}
	c.Flags().BoolVarP(&write, "write", "w", false, "write result to the source file instead of stdout")
	return c
}

func (a *app) formatFiles(cmd *cobra.Command, paths []string, write bool) error {
	ctx := cmd.Context()
	for _, path := range paths {
		data, err := a.readInput(ctx, path)
		if err != nil {
			return err
		}
		d, err := ini.Parse(data)
		if err != nil {
			return wrapParseError(path, err)
		}
		if !write {
			if _, err := io.WriteString(cmd.OutOrStdout(), ini.Encode(d, a.settings.BOM)); err != nil {
				return err
			}
			continue
		}
		if bytes.Equal(data, []byte(ini.Encode(d, a.settings.BOM))) {
			a.V(ctx, "%s is already formatted", path)
			continue
		}
		if err := a.writeFile(ctx, path, d); err != nil {
			return err
		}
	}
	return nil
}
