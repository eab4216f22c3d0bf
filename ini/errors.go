// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"errors"
	"fmt"
	"strconv"
)

// Syntax errors reported by Parse. A *ParseError wraps exactly one of these,
// so callers can test for a specific condition with errors.Is.
var (
	ErrUnexpectedEndOfSection     = errors.New("unexpected end of section")
	ErrUnexpectedComment          = errors.New("unexpected comment")
	ErrUnexpectedCharAfterSection = errors.New("unexpected character after section")
	ErrInvalidSectionName         = errors.New("invalid section name")
	ErrUnexpectedCharacter        = errors.New("unexpected character")
	ErrInvalidKeyName             = errors.New("invalid key name")
)

// ErrNotExist is matched by every *RangeError.
var ErrNotExist = errors.New("does not exist")

// A ParseError describes malformed INI input. Parse stops at the first one.
type ParseError struct {
	// Line and Column are 1-based. Column counts bytes, not runes.
	Line   int
	Column int
	// Offset is the byte offset into the input, after any byte order mark.
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse ini: line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// A RangeError is returned by the read-only accessors when the requested
// section or key is absent.
type RangeError struct {
	Section string
	Key     string // ignored if NoSection is set
	// NoSection is true when the section itself is missing.
	NoSection bool
}

func (e *RangeError) Error() string {
	if e.NoSection {
		return "ini: section " + strconv.Quote(e.Section) + " does not exist"
	}
	return "ini: value " + strconv.Quote(e.Key) + " in section " + strconv.Quote(e.Section) + " does not exist"
}

// Is reports whether target is ErrNotExist.
func (e *RangeError) Is(target error) bool {
	return target == ErrNotExist
}
