package compdb

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/pretty"
)

// Default output suffixes.
const (
	DefaultSuccessSuffix = ".json"
	DefaultFailSuffix    = ".fail.json"

	// protectedSuccessSuffix replaces the success suffix when the success
	// file would otherwise overwrite the input.
	protectedSuccessSuffix = ".success.json"
)

// indent is the per-level indentation of output documents.
const indent = "    "

// ErrPathConflict means both outputs resolve to the same file.
var ErrPathConflict = errors.New("success and fail outputs are the same file")

// Naming controls how output paths derive from the input path.
type Naming struct {
	SuccessSuffix string
	FailSuffix    string
	ProtectInput  bool
}

// DefaultNaming returns the stock suffixes with input overwrite allowed.
func DefaultNaming() Naming {
	return Naming{SuccessSuffix: DefaultSuccessSuffix, FailSuffix: DefaultFailSuffix}
}

// Paths are the two output destinations of a split.
type Paths struct {
	Success string
	Fail    string
}

// Overwrite names the output, if any, that replaces the input file.
type Overwrite string

const (
	OverwriteNone    Overwrite = ""
	OverwriteSuccess Overwrite = "success"
	OverwriteFail    Overwrite = "fail"
)

// OutputPaths derives the output paths for input and reports which output,
// if any, is the input itself. With ProtectInput set, an output that would
// replace the input is renamed: success to <stem>.success.json, fail to
// <stem>.fail.json. Outputs that collide return ErrPathConflict.
func OutputPaths(input string, n Naming) (Paths, Overwrite, error) {
	if n.SuccessSuffix == "" {
		n.SuccessSuffix = DefaultSuccessSuffix
	}
	if n.FailSuffix == "" {
		n.FailSuffix = DefaultFailSuffix
	}
	s := Stem(input)
	p := Paths{Success: s + n.SuccessSuffix, Fail: s + n.FailSuffix}

	ow := OverwriteNone
	switch filepath.Clean(input) {
	case filepath.Clean(p.Success):
		ow = OverwriteSuccess
		if n.ProtectInput {
			p.Success = s + protectedSuccessSuffix
			ow = OverwriteNone
		}
	case filepath.Clean(p.Fail):
		ow = OverwriteFail
		if n.ProtectInput {
			p.Fail = s + DefaultFailSuffix
			ow = OverwriteNone
		}
	}

	if filepath.Clean(p.Success) == filepath.Clean(p.Fail) {
		return p, ow, fmt.Errorf("%w: %s", ErrPathConflict, p.Success)
	}
	return p, ow, nil
}

// Stem returns path without its final extension. Leading dots of the base
// name never start an extension, so ".cmds" is its own stem.
func Stem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(strings.TrimLeft(base, "."))
	return path[:len(path)-len(ext)]
}

// Encode renders records as an indented JSON array with no trailing newline.
// Record bytes are re-indented only; key order and values are left as read.
func Encode(records []Record) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range records {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(r.raw)
	}
	buf.WriteByte(']')
	out := pretty.PrettyOptions(buf.Bytes(), &pretty.Options{Indent: indent, SortKeys: false})
	return bytes.TrimSuffix(out, []byte("\n"))
}

// WriteRecords creates or truncates path and writes records to it.
func WriteRecords(path string, records []Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close %s: %w", path, cerr))
		}
	}()

	if _, err := f.Write(Encode(records)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
