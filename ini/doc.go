// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package ini provides a parser and serializer for a flat dialect of the INI
file format. See https://en.wikipedia.org/wiki/INI_file.

A parsed file is a Document: a set of named Sections, each a set of string
key/value properties. Both are kept sorted, so iteration always visits
sections by name and properties by key, regardless of the order they appeared
in the input. Comments and formatting are not preserved; only sections, keys
and values survive a round trip through Parse and Encode.

Syntax

An INI file is a sequence of bytes, usually UTF-8 text. A leading UTF-8 byte
order mark is ignored. Bytes outside of ASCII carry no meaning to the parser
and are copied verbatim into names and values.

An INI file consists of zero or more properties. A property is a key and value
written on a single line, separated by an equals sign ('='):

	key=value

A line without an equals sign is a property with an empty value. A second
equals sign on the same line is an error.

Properties may be grouped into sections. A section is started by writing its
name in square brackets ('[' and ']') on its own line and ends at the next
section name or the end of file:

	[section]
	key1=value1
	key2=value2

Properties encountered before a section name belong to the default section,
identified by the empty string (""). A section name that appears more than
once refers to the same section.

Spaces and horizontal tabs around section names, keys and values are ignored.
No other characters are treated as whitespace. Lines end at a line feed, a
carriage return, or both.

A semicolon (';') starts a comment that runs to the end of the line. Comments
may appear on their own line, after a section header, or after a property.
A comment inside an unterminated section header is an error.

There are no escape sequences or quoting, so Encode can only faithfully write
keys and values that contain none of '=', ';', '[', ']' or a line break. See
IsValidKey and IsValidValue. Setting the same key twice in a section keeps the
last value.
*/
package ini
