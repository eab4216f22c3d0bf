// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// byteOrderMark is the UTF-8 encoding of U+FEFF.
const byteOrderMark = "\xef\xbb\xbf"

// Parse parses INI data. It returns either a complete document or a
// *ParseError describing the first syntax error; it never returns a
// partially populated document.
//
// See the Syntax section in the package documentation for the format
// recognized by Parse.
func Parse(data []byte) (*Document, error) {
	p := &parser{
		data: bytes.TrimPrefix(data, []byte(byteOrderMark)),
		doc:  new(Document),
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.doc, nil
}

// ParseString parses INI text held in a string.
func ParseString(s string) (*Document, error) {
	return Parse([]byte(s))
}

// ParseNullTerminated parses data up to, but not including, its first zero
// byte. If data contains no zero byte, the whole slice is parsed.
func ParseNullTerminated(data []byte) (*Document, error) {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return Parse(data)
}

// ParseReader reads r to EOF and parses the result.
func ParseReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse ini: %w", err)
	}
	return Parse(data)
}

type parseState int

const (
	stateStatement   parseState = iota // between statements
	stateHeader                        // after '[', before ']'
	stateAfterHeader                   // after ']', before end of line
	stateComment                       // after ';', before end of line
	stateKey                           // before '='
	stateValue                         // after '='
)

type parser struct {
	data  []byte
	doc   *Document
	state parseState

	section string // name of the current section
	name    []byte // section header being accumulated
	key     []byte
	value   []byte
	start   int // offset of the current statement
}

func (p *parser) run() error {
	for pos := 0; pos < len(p.data); {
		c := p.data[pos]
		switch p.state {
		case stateStatement:
			switch {
			case isBlank(c) || isNewline(c):
			case c == '[':
				p.state = stateHeader
				p.start = pos
				p.name = p.name[:0]
			case c == ';':
				p.state = stateComment
			default:
				// Reprocess c as the first byte of a key.
				p.state = stateKey
				p.start = pos
				p.key = p.key[:0]
				p.value = p.value[:0]
				continue
			}
		case stateHeader:
			switch {
			case isNewline(c):
				return p.errorAt(pos, ErrUnexpectedEndOfSection)
			case c == ';':
				return p.errorAt(pos, ErrUnexpectedComment)
			case c == ']':
				p.state = stateAfterHeader
			default:
				p.name = append(p.name, c)
			}
		case stateAfterHeader:
			switch {
			case isBlank(c):
			case isNewline(c):
				if err := p.endHeader(); err != nil {
					return err
				}
				p.state = stateStatement
			case c == ';':
				if err := p.endHeader(); err != nil {
					return err
				}
				p.state = stateComment
			default:
				return p.errorAt(pos, ErrUnexpectedCharAfterSection)
			}
		case stateComment:
			if isNewline(c) {
				p.state = stateStatement
			}
		case stateKey:
			switch {
			case isNewline(c):
				if err := p.endProperty(); err != nil {
					return err
				}
				p.state = stateStatement
			case c == '=':
				p.state = stateValue
			case c == ';':
				if err := p.endProperty(); err != nil {
					return err
				}
				p.state = stateComment
			default:
				p.key = append(p.key, c)
			}
		case stateValue:
			switch {
			case isNewline(c):
				if err := p.endProperty(); err != nil {
					return err
				}
				p.state = stateStatement
			case c == '=':
				return p.errorAt(pos, ErrUnexpectedCharacter)
			case c == ';':
				if err := p.endProperty(); err != nil {
					return err
				}
				p.state = stateComment
			default:
				p.value = append(p.value, c)
			}
		default:
			panic("unreachable")
		}
		pos++
	}

	// End of input terminates whatever statement is open.
	switch p.state {
	case stateHeader:
		return p.errorAt(len(p.data), ErrUnexpectedEndOfSection)
	case stateAfterHeader:
		return p.endHeader()
	case stateKey, stateValue:
		return p.endProperty()
	}
	return nil
}

func (p *parser) endHeader() error {
	name := trim(p.name)
	if name == "" {
		return p.errorAt(p.start, ErrInvalidSectionName)
	}
	p.doc.Section(name)
	p.section = name
	return nil
}

func (p *parser) endProperty() error {
	key := trim(p.key)
	if key == "" {
		return p.errorAt(p.start, ErrInvalidKeyName)
	}
	p.doc.Section(p.section).SetValue(key, trim(p.value))
	return nil
}

func (p *parser) errorAt(offset int, err error) *ParseError {
	line, col := position(p.data, offset)
	return &ParseError{
		Line:   line,
		Column: col,
		Offset: offset,
		Err:    err,
	}
}

// position converts a byte offset into a 1-based line and column.
// CR, LF and CRLF each end a line.
func position(data []byte, offset int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < offset && i < len(data); i++ {
		switch data[i] {
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				continue
			}
			line, col = line+1, 1
		case '\n':
			line, col = line+1, 1
		default:
			col++
		}
	}
	return line, col
}

// trim removes leading and trailing spaces and horizontal tabs. Other
// whitespace is content.
func trim(b []byte) string {
	return strings.Trim(string(b), " \t")
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func isNewline(c byte) bool {
	return c == '\n' || c == '\r'
}
