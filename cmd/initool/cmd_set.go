// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/yourbase/flatini/ini"
)

func newSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "set file section key value",
		Example: "$ initool set settings.ini server port 8080",
		Short:   "Set the value of a property",
		Long: `
The set command assigns value to key in section and rewrites the file in
canonical form. Use "" for the default section. The file and section are
created if they do not exist.
`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setValue(cmd, args[0], args[1], args[2], args[3])
		},
	}
}

func (a *app) setValue(cmd *cobra.Command, path, section, key, value string) error {
	switch {
	case !ini.IsValidSection(section):
		return errors.Errorf("section name %q cannot be written to an INI file", section)
	case !ini.IsValidKey(key):
		return errors.Errorf("key %q cannot be written to an INI file", key)
	case !ini.IsValidValue(value):
		return errors.Errorf("value %q cannot be written to an INI file", value)
	}
	ctx := cmd.Context()
	d, err := a.parseFileOrEmpty(ctx, path)
	if err != nil {
		return err
	}
	d.SetValue(section, key, value)
	return a.writeFile(ctx, path, d)
}

func newUnsetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "unset file section [key]",
		Example: "$ initool unset settings.ini server port",
		Short:   "Remove a property or a whole section",
		Long: `
The unset command removes key from section, or the entire section if no key is
given, and rewrites the file in canonical form. Removing something that does
not exist is not an error.
`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 3 {
				key = args[2]
			}
			return a.unset(cmd, args[0], args[1], key)
		},
	}
}

func (a *app) unset(cmd *cobra.Command, path, section, key string) error {
	ctx := cmd.Context()
	d, err := a.parseFile(ctx, path)
	if err != nil {
		return err
	}
	if key == "" {
		d.EraseSection(section)
	} else if sect, ok := d.Lookup(section); ok {
		sect.DeleteValue(key)
	}
	return a.writeFile(ctx, path, d)
}
