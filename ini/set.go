// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"os"
	"sort"
)

// DocumentSet is a list of documents to obtain configuration from in
// descending order of precedence. Nil elements are treated as empty documents.
type DocumentSet []*Document

// ParseFiles parses the files at the given paths as INI and returns a
// DocumentSet. If the returned error is nil, the returned set's length will be
// the same as the number of arguments. ParseFiles will stop on the first error,
// but ignores missing file errors, instead filling the corresponding element of
// the set with a nil *Document.
func ParseFiles(paths ...string) (DocumentSet, error) {
	dset := make(DocumentSet, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if os.IsNotExist(err) {
			dset = append(dset, nil)
			continue
		}
		if err != nil {
			return dset, fmt.Errorf("parse ini files: %w", err)
		}
		parsed, err := Parse(data)
		if err != nil {
			return dset, fmt.Errorf("parse ini files: %s: %w", p, err)
		}
		dset = append(dset, parsed)
	}
	return dset, nil
}

// Lookup returns the value associated with the given key in the given section
// of the first document that has one.
func (dset DocumentSet) Lookup(section, key string) (string, bool) {
	for _, d := range dset {
		sect, _ := d.Lookup(section)
		if v, ok := sect.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// Value returns the value associated with the given key in the given section.
// Passing an empty section name searches the default section. If no document
// has the property, Value returns the empty string.
func (dset DocumentSet) Value(section, key string) string {
	v, _ := dset.Lookup(section, key)
	return v
}

// Get is like Lookup, but returns a *RangeError if no document has the
// property.
func (dset DocumentSet) Get(section, key string) (string, error) {
	v, ok := dset.Lookup(section, key)
	if !ok {
		return "", &RangeError{Section: section, Key: key}
	}
	return v, nil
}

// Names returns the sorted names of sections present in any document.
func (dset DocumentSet) Names() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, d := range dset {
		for _, name := range d.Names() {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Merge flattens the set into a single new document. Properties from documents
// earlier in the set take precedence.
func (dset DocumentSet) Merge() *Document {
	merged := new(Document)
	for i := len(dset) - 1; i >= 0; i-- {
		dset[i].Range(func(sect *Section) bool {
			dst := merged.Section(sect.Name())
			sect.Range(func(key, value string) bool {
				dst.SetValue(key, value)
				return true
			})
			return true
		})
	}
	return merged
}
