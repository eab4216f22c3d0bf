// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "strings"

// Encode serializes the document in INI format. Sections appear in name order
// and properties in key order. The default section's header is never written.
// If withBOM is true, the output starts with a UTF-8 byte order mark.
//
// Keys, values and section names are written verbatim. A document only
// survives a round trip through Parse if they satisfy IsValidSection,
// IsValidKey and IsValidValue.
func Encode(d *Document, withBOM bool) string {
	var buf []byte
	if withBOM {
		buf = append(buf, byteOrderMark...)
	}
	return string(appendDocument(buf, d))
}

func appendDocument(buf []byte, d *Document) []byte {
	d.Range(func(sect *Section) bool {
		if sect.name != "" {
			buf = append(buf, '[')
			buf = append(buf, sect.name...)
			buf = append(buf, "]\n"...)
		}
		sect.Range(func(key, value string) bool {
			buf = append(buf, key...)
			buf = append(buf, '=')
			buf = append(buf, value...)
			buf = append(buf, '\n')
			return true
		})
		return true
	})
	return buf
}

// IsValidSection reports whether a string can be used as a section name and
// survive a round trip through Encode and Parse. The empty string names the
// default section and is valid.
func IsValidSection(name string) bool {
	return isVerbatim(name)
}

// IsValidKey reports whether a string can be used as a property key and
// survive a round trip through Encode and Parse.
func IsValidKey(key string) bool {
	return key != "" && isVerbatim(key)
}

// IsValidValue reports whether a string can be used as a property value and
// survive a round trip through Encode and Parse.
func IsValidValue(value string) bool {
	return isVerbatim(value)
}

func isVerbatim(s string) bool {
	if strings.Trim(s, " \t") != s {
		return false
	}
	return !strings.ContainsAny(s, "=;[]\n\r")
}
