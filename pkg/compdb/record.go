// Package compdb splits a compile commands document into the commands that
// succeeded and the commands that must be rebuilt.
//
// A document is a JSON array of records. Each record is kept as the bytes it
// was read from, so output files carry the input records unchanged apart from
// indentation.
package compdb

import (
	"github.com/tidwall/gjson"
)

// Record field names.
const (
	KeyArguments  = "arguments"
	KeyDirectory  = "directory"
	KeyExecResult = "exec_result"
	KeyRebuild    = "rebuild"
)

// requiredKeys must all be present for a record to be valid.
var requiredKeys = []string{KeyArguments, KeyDirectory, KeyExecResult}

// Record is one compiler invocation entry, held as raw JSON.
type Record struct {
	raw []byte
}

// NewRecord wraps raw JSON bytes. The bytes are not copied.
func NewRecord(raw []byte) Record {
	return Record{raw: raw}
}

// Raw returns the record's JSON exactly as read.
func (r Record) Raw() []byte {
	return r.raw
}

// String returns the record's JSON text.
func (r Record) String() string {
	return string(r.raw)
}

// IsObject reports whether the record is a JSON object.
func (r Record) IsObject() bool {
	return gjson.ParseBytes(r.raw).IsObject()
}

// Has reports whether the record is an object carrying key.
// Keys are compared literally, without gjson path syntax.
func (r Record) Has(key string) bool {
	_, ok := r.field(key)
	return ok
}

// Rebuild reports whether the record is marked for rebuild: the rebuild
// field is present and truthy.
func (r Record) Rebuild() bool {
	v, ok := r.field(KeyRebuild)
	return ok && truthy(v)
}

// field returns the value of key. With duplicate keys the last one wins,
// matching what a decoder into a map would keep.
func (r Record) field(key string) (gjson.Result, bool) {
	doc := gjson.ParseBytes(r.raw)
	if !doc.IsObject() {
		return gjson.Result{}, false
	}
	var (
		found gjson.Result
		ok    bool
	)
	doc.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found, ok = v, true
		}
		return true
	})
	return found, ok
}

// truthy applies loose JSON truth: false, null, zero, empty string, empty
// array and empty object are false; everything else is true.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	case gjson.JSON:
		empty := true
		v.ForEach(func(_, _ gjson.Result) bool {
			empty = false
			return false
		})
		return !empty
	default:
		return false
	}
}
