// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/yourbase/flatini/ini"
)

func newGetCommand(a *app) *cobra.Command {
	var files []string
	c := &cobra.Command{
		Use:     "get -f file [-f file]... section key",
		Example: "$ initool get -f ~/.apprc -f /etc/apprc server port",
		Short:   "Print the value of a property",
		Long: `
The get command prints the value of key in section. Use "" for the default
section. When several files are given, the first one that sets the property
wins; files that do not exist are skipped. Like the other commands, get
converts UTF-16 files to UTF-8 before parsing.
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.getValue(cmd, files, args[0], args[1])
		},
	}
	c.Flags().StringArrayVarP(&files, "file", "f", nil, "file to read, in descending order of precedence")
	return c
}

func (a *app) getValue(cmd *cobra.Command, files []string, section, key string) error {
	if len(files) == 0 {
		return errors.New("no file specified, nothing to do")
	}
	dset, err := a.parseFiles(cmd, files)
	if err != nil {
		return err
	}
	v, err := dset.Get(section, key)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
	return err
}

// parseFiles is like ini.ParseFiles, but reads its input through readInput.
// Missing files become nil documents.
func (a *app) parseFiles(cmd *cobra.Command, paths []string) (ini.DocumentSet, error) {
	ctx := cmd.Context()
	dset := make(ini.DocumentSet, 0, len(paths))
	for _, path := range paths {
		d, err := a.parseFile(ctx, path)
		if os.IsNotExist(errors.Cause(err)) {
			a.V(ctx, "Skipping missing file %s", path)
			dset = append(dset, nil)
			continue
		}
		if err != nil {
			return nil, err
		}
		dset = append(dset, d)
	}
	return dset, nil
}
