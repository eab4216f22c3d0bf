// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "github.com/emirpasic/gods/maps/treemap"

// A Document is a collection of sections kept sorted by name. The zero value
// is an empty document. The read-only methods may be called on a nil
// *Document.
//
// A Document may be read by multiple concurrent goroutines, but mutation
// requires exclusive access.
type Document struct {
	sections *treemap.Map // string -> *Section, created on first insert
}

// Len returns the number of sections in the document, including an empty
// default section if one was created.
func (d *Document) Len() int {
	if d == nil || d.sections == nil {
		return 0
	}
	return d.sections.Size()
}

// HasSection reports whether the document has a section with the given name.
func (d *Document) HasSection(name string) bool {
	_, ok := d.Lookup(name)
	return ok
}

// Lookup returns the named section and whether it was present.
func (d *Document) Lookup(name string) (*Section, bool) {
	if d == nil || d.sections == nil {
		return nil, false
	}
	v, ok := d.sections.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Section), true
}

// Get returns the named section. If there is no such section, Get returns a
// *RangeError and does not modify the document.
func (d *Document) Get(name string) (*Section, error) {
	sect, ok := d.Lookup(name)
	if !ok {
		return nil, &RangeError{Section: name, NoSection: true}
	}
	return sect, nil
}

// Section returns the named section, adding an empty one to the document if
// necessary. Section("") returns the default section.
func (d *Document) Section(name string) *Section {
	if sect, ok := d.Lookup(name); ok {
		return sect
	}
	if d.sections == nil {
		d.sections = treemap.NewWithStringComparator()
	}
	sect := NewSection(name)
	d.sections.Put(name, sect)
	return sect
}

// EraseSection removes the named section along with its properties. It is a
// no-op if the section does not exist.
func (d *Document) EraseSection(name string) {
	if d == nil || d.sections == nil {
		return
	}
	d.sections.Remove(name)
}

// Names returns the section names in sorted order. The default section, if
// present, is always first.
func (d *Document) Names() []string {
	if d.Len() == 0 {
		return nil
	}
	names := make([]string, 0, d.Len())
	d.Range(func(sect *Section) bool {
		names = append(names, sect.name)
		return true
	})
	return names
}

// Range calls f for each section in name order until f returns false.
// f must not add or remove sections.
func (d *Document) Range(f func(sect *Section) bool) {
	if d == nil || d.sections == nil {
		return
	}
	it := d.sections.Iterator()
	for it.Next() {
		if !f(it.Value().(*Section)) {
			return
		}
	}
}

// Value returns the value associated with the given key in the given section,
// or the empty string if there is none. Passing an empty section name searches
// the default section.
func (d *Document) Value(section, key string) string {
	sect, _ := d.Lookup(section)
	return sect.Value(key, "")
}

// SetValue sets the property in the named section, creating the section if
// necessary.
func (d *Document) SetValue(section, key, value string) {
	d.Section(section).SetValue(key, value)
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := new(Document)
	d.Range(func(sect *Section) bool {
		if c.sections == nil {
			c.sections = treemap.NewWithStringComparator()
		}
		c.sections.Put(sect.name, sect.Clone())
		return true
	})
	return c
}

// MarshalText serializes the document in INI format without a byte order mark.
func (d *Document) MarshalText() ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	return appendDocument(nil, d), nil
}

// UnmarshalText parses the INI data, replacing any sections in d.
func (d *Document) UnmarshalText(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}
