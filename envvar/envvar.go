// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package envvar layers environment variables over INI settings.
package envvar

import (
	"os"
	"sort"
	"strings"

	"github.com/yourbase/flatini/ini"
)

// Lookup returns the value of the environment variable formed by joining
// prefix and name with an underscore and upper-casing the result. Dashes and
// dots in name become underscores, so Lookup("INITOOL", "with-bom") reads
// INITOOL_WITH_BOM. An empty variable counts as unset.
func Lookup(prefix, name string) (string, bool) {
	v := os.Getenv(VarName(prefix, name))
	if v == "" {
		return "", false
	}
	return v, true
}

// VarName returns the environment variable name Lookup uses for name.
func VarName(prefix, name string) string {
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return strings.ToUpper(prefix + "_" + name)
}

// Overlay replaces each named property in sect with the value of its
// environment variable, if set. Properties that sect does not have yet are
// added. It returns the sorted names that were overridden.
func Overlay(sect *ini.Section, prefix string, names ...string) []string {
	var overridden []string
	for _, name := range names {
		v, ok := Lookup(prefix, name)
		if !ok {
			continue
		}
		sect.SetValue(name, v)
		overridden = append(overridden, name)
	}
	sort.Strings(overridden)
	return overridden
}
