// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/yourbase/flatini/ini"
	"golang.org/x/text/encoding/unicode"
	"zombiezen.com/go/log/testlog"
)

// run executes initool with args and returns what it wrote to stdout.
// Unless args already name one, an empty settings file is used so that the
// user's own settings do not leak into tests.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	if !hasConfigFlag(args) {
		args = append([]string{"--config", writeFile(t, "initool.ini", "")}, args...)
	}
	root := newRootCommand(strings.NewReader(stdin))
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	_, err := root.ExecuteContextC(testlog.WithTB(context.Background(), t))
	return out.String(), err
}

func hasConfigFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-c" || arg == "--config" || strings.HasPrefix(arg, "--config=") {
			return true
		}
	}
	return false
}

// writeFile creates a file with the given content in a fresh temporary
// directory and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestFmt(t *testing.T) {
	tests := []struct {
		name   string
		source string
		args   []string
		want   string
	}{
		{
			name:   "Canonical",
			source: "  b = 1\n; comment\na=2 ; trailing\n[s]\nx = y",
			want:   "a=2\nb=1\n[s]\nx=y\n",
		},
		{
			name:   "ByteOrderMarkDropped",
			source: "\xef\xbb\xbfa=b\n",
			want:   "a=b\n",
		},
		{
			name:   "ByteOrderMarkFlag",
			source: "a=b\n",
			args:   []string{"--bom"},
			want:   "\xef\xbb\xbfa=b\n",
		},
		{
			name:   "Empty",
			source: "; nothing here\n",
			want:   "",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeFile(t, "test.ini", test.source)
			got, err := run(t, "", append(test.args, "fmt", path)...)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFmtStdin(t *testing.T) {
	got, err := run(t, "[b]\nk=v\n[a]\n", "fmt", "-")
	if err != nil {
		t.Fatal(err)
	}
	if want := "[a]\n[b]\nk=v\n"; got != want {
		t.Errorf("output = %q; want %q", got, want)
	}
}

func TestFmtWrite(t *testing.T) {
	path := writeFile(t, "test.ini", "b=1\na=2\n")
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "", "fmt", "-w", path)
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("fmt -w printed %q; want nothing", out)
	}
	if got, want := readFile(t, path), "a=2\nb=1\n"; got != want {
		t.Errorf("file content = %q; want %q", got, want)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0o600 {
		t.Errorf("file mode = %v; want %v", got, os.FileMode(0o600))
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries after fmt -w; want 1", len(entries))
	}
}

func TestFmtUTF16(t *testing.T) {
	for _, endian := range []unicode.Endianness{unicode.LittleEndian, unicode.BigEndian} {
		encoded, err := unicode.UTF16(endian, unicode.ExpectBOM).NewEncoder().Bytes([]byte("[š]\r\nā = ē\r\n"))
		if err != nil {
			t.Fatal(err)
		}
		path := writeFile(t, "utf16.ini", string(encoded))
		got, err := run(t, "", "fmt", path)
		if err != nil {
			t.Fatal(err)
		}
		if want := "[š]\nā=ē\n"; got != want {
			t.Errorf("output = %q; want %q", got, want)
		}
	}
}

func TestSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		env      string
		args     []string
		wantBOM  bool
	}{
		{
			name: "Default",
		},
		{
			name:     "File",
			settings: "bom = true\n",
			wantBOM:  true,
		},
		{
			name:     "EnvOverridesFile",
			settings: "bom = true\n",
			env:      "false",
		},
		{
			name:    "Env",
			env:     "1",
			wantBOM: true,
		},
		{
			name:     "FlagOverridesEnv",
			settings: "bom = false\n",
			env:      "true",
			args:     []string{"--bom=false"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv("INITOOL_BOM", test.env)
			settings := writeFile(t, "initool.ini", test.settings)
			path := writeFile(t, "test.ini", "a=b\n")
			args := append([]string{"--config", settings}, test.args...)
			got, err := run(t, "", append(args, "fmt", path)...)
			if err != nil {
				t.Fatal(err)
			}
			want := "a=b\n"
			if test.wantBOM {
				want = "\xef\xbb\xbf" + want
			}
			if got != want {
				t.Errorf("output = %q; want %q", got, want)
			}
		})
	}
}

func TestSettingsErrors(t *testing.T) {
	tests := []struct {
		name     string
		settings string
	}{
		{"UnknownKey", "frobnicate = yes\n"},
		{"NotBool", "bom = maybe\n"},
		{"BadColor", "color = sometimes\n"},
		{"Section", "[initool]\nbom = true\n"},
		{"Syntax", "[initool\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			settings := writeFile(t, "initool.ini", test.settings)
			_, err := run(t, "", "--config", settings, "version")
			if err == nil {
				t.Fatal("run did not return error")
			}
			t.Log(err)
		})
	}
	t.Run("Missing", func(t *testing.T) {
		_, err := run(t, "", "--config", filepath.Join(t.TempDir(), "nope.ini"), "version")
		if err == nil {
			t.Fatal("run did not return error")
		}
	})
}

func TestBindSettings(t *testing.T) {
	sect := ini.NewSection("")
	sect.SetValue("bom", "true")
	sect.SetValue("verbose", "TRUE")
	sect.SetValue("color", "never")
	var got settings
	if err := bindSettings(sect, &got); err != nil {
		t.Fatal(err)
	}
	want := settings{BOM: true, Verbose: true, Color: "never"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings (-want +got):\n%s", diff)
	}
}

func TestGet(t *testing.T) {
	user := writeFile(t, "user.ini", "[core]\neditor = vim\n")
	system := writeFile(t, "system.ini", "top=level\n[core]\neditor=nano\npager=less\n")
	missing := filepath.Join(t.TempDir(), "missing.ini")

	tests := []struct {
		section string
		key     string
		want    string
	}{
		{"core", "editor", "vim\n"},
		{"core", "pager", "less\n"},
		{"", "top", "level\n"},
	}
	for _, test := range tests {
		got, err := run(t, "", "get", "-f", user, "-f", missing, "-f", system, test.section, test.key)
		if err != nil {
			t.Errorf("get %q %q: %v", test.section, test.key, err)
			continue
		}
		if got != test.want {
			t.Errorf("get %q %q = %q; want %q", test.section, test.key, got, test.want)
		}
	}

	t.Run("NotExist", func(t *testing.T) {
		_, err := run(t, "", "get", "-f", user, "core", "nope")
		if !errors.Is(err, ini.ErrNotExist) {
			t.Errorf("get core nope = _, %v; want ErrNotExist", err)
		}
	})
	t.Run("NoFiles", func(t *testing.T) {
		if _, err := run(t, "", "get", "core", "editor"); err == nil {
			t.Error("get without files did not return error")
		}
	})
	t.Run("UTF16", func(t *testing.T) {
		encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewEncoder().Bytes([]byte("[core]\r\neditor = emacs\r\n"))
		if err != nil {
			t.Fatal(err)
		}
		path := writeFile(t, "utf16.ini", string(encoded))
		got, err := run(t, "", "get", "-f", path, "-f", system, "core", "editor")
		if err != nil {
			t.Fatal(err)
		}
		if want := "emacs\n"; got != want {
			t.Errorf("get core editor = %q; want %q", got, want)
		}
	})
}

func TestSetThroughSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.ini")
	if err := os.WriteFile(target, []byte("a=1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link.ini")
	if err := os.Symlink(target, link); err != nil {
		t.Skip("symlinks not supported:", err)
	}
	if _, err := run(t, "", "set", link, "", "b", "2"); err != nil {
		t.Fatal(err)
	}
	info, err := os.Lstat(link)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Errorf("%s is no longer a symlink (mode %v)", link, info.Mode())
	}
	if got, want := readFile(t, target), "a=1\nb=2\n"; got != want {
		t.Errorf("target content = %q; want %q", got, want)
	}
	if info, err := os.Stat(target); err != nil {
		t.Fatal(err)
	} else if got := info.Mode().Perm(); got != 0o600 {
		t.Errorf("target mode = %v; want %v", got, os.FileMode(0o600))
	}
}

func TestSetAndUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.ini")
	steps := []struct {
		args []string
		want string
	}{
		{[]string{"set", path, "server", "port", "8080"}, "[server]\nport=8080\n"},
		{[]string{"set", path, "", "name", "demo app"}, "name=demo app\n[server]\nport=8080\n"},
		{[]string{"set", path, "server", "port", "9090"}, "name=demo app\n[server]\nport=9090\n"},
		{[]string{"set", path, "server", "host", ""}, "name=demo app\n[server]\nhost=\nport=9090\n"},
		{[]string{"unset", path, "server", "host"}, "name=demo app\n[server]\nport=9090\n"},
		{[]string{"unset", path, "server", "nope"}, "name=demo app\n[server]\nport=9090\n"},
		{[]string{"unset", path, "server"}, "name=demo app\n"},
	}
	for _, step := range steps {
		if _, err := run(t, "", step.args...); err != nil {
			t.Fatalf("%q: %v", step.args, err)
		}
		if got := readFile(t, path); got != step.want {
			t.Fatalf("after %q, file = %q; want %q", step.args, got, step.want)
		}
	}

	for _, args := range [][]string{
		{"set", path, "server", "url", "http://x/?a=b"},
		{"set", path, "server", "k", " padded "},
		{"set", path, "server", "", "v"},
		{"set", path, "[bad]", "k", "v"},
	} {
		if _, err := run(t, "", args...); err == nil {
			t.Errorf("%q did not return error", args)
		}
	}
	if got, want := readFile(t, path), "name=demo app\n"; got != want {
		t.Errorf("after rejected edits, file = %q; want %q", got, want)
	}
}

func TestList(t *testing.T) {
	path := writeFile(t, "test.ini", "top=1\n[s]\na=1\nlong=2\nšš=3\n")
	got, err := run(t, "", "list", path)
	if err != nil {
		t.Fatal(err)
	}
	want := "top = 1\n" +
		"[s]\n" +
		"a    = 1\n" +
		"long = 2\n" +
		"šš   = 3\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
}

func TestCheck(t *testing.T) {
	good := writeFile(t, "good.ini", "[s]\na=b\n")
	bad := writeFile(t, "bad.ini", "a=b\n[s\n")
	worse := writeFile(t, "worse.ini", "a==b\n")

	if out, err := run(t, "", "check", good); err != nil || out != "" {
		t.Errorf("check good.ini = %q, %v; want \"\", <nil>", out, err)
	}

	out, err := run(t, "", "check", good, bad, worse)
	if err == nil {
		t.Error("check with invalid files did not return error")
	}
	want := bad + ":2:3: unexpected end of section\n" +
		worse + ":1:3: unexpected character\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
}

func TestDecodeInput(t *testing.T) {
	tests := []struct {
		name           string
		data           []byte
		want           []byte
		wantTranscoded bool
	}{
		{"Empty", nil, nil, false},
		{"Plain", []byte("a=b"), []byte("a=b"), false},
		{"UTF8ByteOrderMark", []byte("\xef\xbb\xbfa=b"), []byte("\xef\xbb\xbfa=b"), false},
		{"UTF16LE", []byte{0xFF, 0xFE, 'a', 0, '=', 0, 'b', 0}, []byte("a=b"), true},
		{"UTF16BE", []byte{0xFE, 0xFF, 0, 'a', 0, '=', 0, 'b'}, []byte("a=b"), true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, transcoded, err := decodeInput(test.data)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, test.want) || transcoded != test.wantTranscoded {
				t.Errorf("decodeInput(%q) = %q, %t; want %q, %t", test.data, got, transcoded, test.want, test.wantTranscoded)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	got, err := run(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "initool ") {
		t.Errorf("version output = %q; want prefix \"initool \"", got)
	}
}

func TestMain(m *testing.M) {
	testlog.Main(nil)
	color.NoColor = true
	os.Exit(m.Run())
}
