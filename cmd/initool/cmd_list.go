// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/yourbase/flatini/ini"
)

var (
	printSection  = color.New(color.FgHiBlue).FprintfFunc()
	printFileName = color.New(color.Bold).FprintfFunc()
)

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list file...",
		Example: "$ initool list /etc/php.ini",
		Short:   "Show the sections and properties of files",
		Long: `
The list command prints every section of each file with its properties as
aligned "key = value" lines.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listFiles(cmd, args)
		},
	}
}

func (a *app) listFiles(cmd *cobra.Command, paths []string) error {
	w := cmd.OutOrStdout()
	for i, path := range paths {
		d, err := a.parseFile(cmd.Context(), path)
		if err != nil {
			return err
		}
		if len(paths) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			printFileName(w, "==> %s <==\n", displayPath(path))
		}
		if err := listDocument(w, d); err != nil {
			return err
		}
	}
	return nil
}

func listDocument(w io.Writer, d *ini.Document) error {
	var err error
	d.Range(func(sect *ini.Section) bool {
		if sect.Name() != "" {
			printSection(w, "[%s]\n", sect.Name())
		}
		width := 0
		for _, key := range sect.Keys() {
			if kw := runewidth.StringWidth(key); kw > width {
				width = kw
			}
		}
		sect.Range(func(key, value string) bool {
			_, err = fmt.Fprintf(w, "%s = %s\n", runewidth.FillRight(key, width), value)
			return err == nil
		})
		return err == nil
	})
	return err
}
