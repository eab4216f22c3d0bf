// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/xdg"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tkrajina/go-reflector/reflector"
	"github.com/yourbase/flatini/envvar"
	"github.com/yourbase/flatini/ini"
)

const (
	settingsFileName = "initool.ini"
	envPrefix        = "INITOOL"
)

var configPaths = xdg.Paths{}

// settings configures initool. Values come from the default section of the
// settings file, then INITOOL_* environment variables, then flags.
type settings struct {
	BOM     bool   `ini:"bom"`
	Verbose bool   `ini:"verbose"`
	Color   string `ini:"color"` // auto, always or never
}

// settingKeys lists the keys that environment variables may override.
var settingKeys = []string{"bom", "verbose", "color"}

// loadSettings reads the settings file and applies overrides. It runs before
// every command.
func (a *app) loadSettings(cmd *cobra.Command) error {
	ctx := cmd.Context()
	a.settings = settings{Color: "auto"}
	sect := ini.NewSection("")

	path := a.configFile
	if path == "" {
		var err error
		path, err = configPaths.ConfigFile(settingsFileName)
		if err != nil {
			path = ""
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrap(err, "read settings")
		}
		doc, err := ini.Parse(data)
		if err != nil {
			return errors.WithMessage(err, path)
		}
		if names := doc.Names(); len(names) > 1 || (len(names) == 1 && names[0] != "") {
			return errors.Errorf("%s: settings must not be in a section", path)
		}
		if s, ok := doc.Lookup(""); ok {
			sect = s
		}
	}
	overridden := envvar.Overlay(sect, envPrefix, settingKeys...)

	if err := bindSettings(sect, &a.settings); err != nil {
		if path != "" {
			return errors.WithMessage(err, path)
		}
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		a.settings.Verbose = a.verbose
	}
	if flags.Changed("bom") {
		a.settings.BOM = a.bom
	}
	switch a.settings.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
	default:
		return errors.Errorf("color must be auto, always or never, not %q", a.settings.Color)
	}

	if path != "" {
		a.V(ctx, "Loaded settings from %s", path)
	}
	for _, name := range overridden {
		a.V(ctx, "Setting %s taken from $%s", name, envvar.VarName(envPrefix, name))
	}
	return nil
}

// bindSettings stores each property of sect into the struct field target
// whose lower-cased name or ini tag matches the key.
func bindSettings(sect *ini.Section, target interface{}) error {
	obj := reflector.New(target)
	if !obj.IsPtr() {
		return errors.New("settings target is not a pointer")
	}
	var err error
	sect.Range(func(key, value string) bool {
		var field *reflector.ObjField
		field, err = fieldForKey(obj, key)
		if err != nil {
			return false
		}
		err = updateField(field, value)
		if err != nil {
			err = errors.WithMessage(err, key)
		}
		return err == nil
	})
	return err
}

func fieldForKey(obj *reflector.Obj, key string) (*reflector.ObjField, error) {
	for _, field := range obj.FieldsAll() {
		if key == strings.ToLower(field.Name()) {
			return &field, nil
		}
		if tag, err := field.Tag("ini"); err == nil && key == tag {
			return &field, nil
		}
	}
	return nil, fmt.Errorf("unknown setting %q", key)
}

// updateField converts value according to the field's kind and stores it.
func updateField(field *reflector.ObjField, value string) error {
	switch field.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%q is not a boolean", value)
		}
		return field.Set(b)
	case reflect.String:
		return field.Set(value)
	default:
		return fmt.Errorf("unsupported setting type %v", field.Kind())
	}
}
