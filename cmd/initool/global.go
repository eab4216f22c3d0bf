// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"io"

	"github.com/spf13/pflag"
	"zombiezen.com/go/log"
)

// app holds state shared by all commands of one invocation.
type app struct {
	stdin io.Reader

	configFile string
	verbose    bool
	bom        bool

	settings settings
}

func (a *app) registerFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&a.configFile, "config", "c", "", "settings file to read at startup (default is $XDG_CONFIG_HOME/"+settingsFileName+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "be verbose")
	flags.BoolVar(&a.bom, "bom", false, "start written files with a UTF-8 byte order mark")
}

// V logs the message when verbose output is active.
func (a *app) V(ctx context.Context, format string, args ...interface{}) {
	if !a.settings.Verbose {
		return
	}
	log.Infof(ctx, format, args...)
}
