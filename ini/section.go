// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "github.com/emirpasic/gods/maps/treemap"

// A Section is a named set of properties kept sorted by key. Keys are unique:
// setting an existing key replaces its value.
//
// The zero value is an empty default section.
type Section struct {
	name       string
	properties *treemap.Map // string -> *property, created on first insert
}

type property struct {
	key   string
	value string
}

// NewSection returns an empty section with the given name. The empty name
// denotes the default section.
func NewSection(name string) *Section {
	return &Section{name: name}
}

// Name returns the section's name.
func (sect *Section) Name() string {
	if sect == nil {
		return ""
	}
	return sect.name
}

// Len returns the number of properties in the section.
func (sect *Section) Len() int {
	if sect == nil || sect.properties == nil {
		return 0
	}
	return sect.properties.Size()
}

func (sect *Section) find(key string) *property {
	if sect == nil || sect.properties == nil {
		return nil
	}
	v, ok := sect.properties.Get(key)
	if !ok {
		return nil
	}
	return v.(*property)
}

// HasValue reports whether the section has a property with the given key.
func (sect *Section) HasValue(key string) bool {
	return sect.find(key) != nil
}

// Lookup returns the value associated with key and whether it was present.
func (sect *Section) Lookup(key string) (string, bool) {
	p := sect.find(key)
	if p == nil {
		return "", false
	}
	return p.value, true
}

// Get returns the value associated with key. If there is no such property, Get
// returns a *RangeError and does not modify the section.
func (sect *Section) Get(key string) (string, error) {
	v, ok := sect.Lookup(key)
	if !ok {
		return "", &RangeError{Section: sect.Name(), Key: key}
	}
	return v, nil
}

// Value returns the value associated with key, or defaultValue if there is no
// such property.
func (sect *Section) Value(key, defaultValue string) string {
	if v, ok := sect.Lookup(key); ok {
		return v
	}
	return defaultValue
}

// Entry returns a pointer to the value associated with key, inserting the key
// with an empty value first if necessary. The pointer stays valid until the
// key is deleted.
func (sect *Section) Entry(key string) *string {
	p := sect.find(key)
	if p == nil {
		if sect.properties == nil {
			sect.properties = treemap.NewWithStringComparator()
		}
		p = &property{key: key}
		sect.properties.Put(key, p)
	}
	return &p.value
}

// SetValue sets the property to the given value, replacing any previous value.
func (sect *Section) SetValue(key, value string) {
	*sect.Entry(key) = value
}

// DeleteValue removes the property with the given key. It is a no-op if the
// key is not present.
func (sect *Section) DeleteValue(key string) {
	if sect == nil || sect.properties == nil {
		return
	}
	sect.properties.Remove(key)
}

// Keys returns the section's keys in sorted order.
func (sect *Section) Keys() []string {
	if sect.Len() == 0 {
		return nil
	}
	keys := make([]string, 0, sect.Len())
	sect.Range(func(key, _ string) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Range calls f for each property in key order until f returns false.
// f must not add or remove properties.
func (sect *Section) Range(f func(key, value string) bool) {
	if sect == nil || sect.properties == nil {
		return
	}
	it := sect.properties.Iterator()
	for it.Next() {
		p := it.Value().(*property)
		if !f(p.key, p.value) {
			return
		}
	}
}

// Clone returns a deep copy of the section.
func (sect *Section) Clone() *Section {
	if sect == nil {
		return nil
	}
	c := NewSection(sect.name)
	sect.Range(func(key, value string) bool {
		c.SetValue(key, value)
		return true
	})
	return c
}
