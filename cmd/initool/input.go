// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/yourbase/flatini/ini"
	"golang.org/x/text/encoding/unicode"
	"zombiezen.com/go/log"
)

const stdinPath = "-"

// readInput returns the contents of path, or of stdin if path is "-".
// UTF-16 input is converted to UTF-8.
func (a *app) readInput(ctx context.Context, path string) ([]byte, error) {
	var data []byte
	var err error
	if path == stdinPath {
		data, err = io.ReadAll(a.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	data, transcoded, err := decodeInput(data)
	if err != nil {
		return nil, errors.WithMessage(err, displayPath(path))
	}
	if transcoded {
		log.Warnf(ctx, "%s: converted from UTF-16 to UTF-8", displayPath(path))
	}
	return data, nil
}

// decodeInput transcodes data to UTF-8 if it starts with a UTF-16 byte order
// mark. Anything else, including UTF-8 with a byte order mark, is returned
// unchanged.
func decodeInput(data []byte) (_ []byte, transcoded bool, _ error) {
	if len(data) < 2 {
		return data, false, nil
	}
	var endian unicode.Endianness
	switch {
	case data[0] == 0xFF && data[1] == 0xFE:
		endian = unicode.LittleEndian
	case data[0] == 0xFE && data[1] == 0xFF:
		endian = unicode.BigEndian
	default:
		return data, false, nil
	}
	out, err := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder().Bytes(data)
	if err != nil {
		return nil, false, errors.Wrap(err, "decode UTF-16")
	}
	return out, true, nil
}

// parseFile reads and parses the INI file at path.
func (a *app) parseFile(ctx context.Context, path string) (*ini.Document, error) {
	data, err := a.readInput(ctx, path)
	if err != nil {
		return nil, err
	}
	d, err := ini.Parse(data)
	if err != nil {
		return nil, wrapParseError(path, err)
	}
	a.V(ctx, "Parsed %s: %d sections", displayPath(path), d.Len())
	return d, nil
}

// parseFileOrEmpty is like parseFile, but returns an empty document if path
// does not exist.
func (a *app) parseFileOrEmpty(ctx context.Context, path string) (*ini.Document, error) {
	d, err := a.parseFile(ctx, path)
	if os.IsNotExist(errors.Cause(err)) {
		a.V(ctx, "%s does not exist, starting from an empty file", path)
		return new(ini.Document), nil
	}
	return d, err
}

// writeFile replaces the file at path with the encoded document. The file's
// permissions are kept if it already exists. If path is a symbolic link, the
// file it points to is replaced and the link is left in place.
func (a *app) writeFile(ctx context.Context, path string, d *ini.Document) error {
	if path == stdinPath {
		return errors.New("cannot write back to stdin")
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "write file")
	}
	tmp := f.Name()
	defer os.Remove(tmp) // No-op after a successful rename.
	_, err = io.WriteString(f, ini.Encode(d, a.settings.BOM))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp, mode)
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	a.V(ctx, "Wrote %s", path)
	return nil
}

func wrapParseError(path string, err error) error {
	return errors.WithMessage(err, displayPath(path))
}

func displayPath(path string) string {
	if path == stdinPath {
		return "<stdin>"
	}
	return path
}
