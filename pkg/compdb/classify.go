package compdb

import (
	"github.com/mattn/go-runewidth"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

// previewWidth bounds the display width of a record quoted in a log line.
const previewWidth = 160

// Partition is the outcome of one classification. Both slices keep input order.
type Partition struct {
	Success []Record
	Fail    []Record
	Invalid int // records missing a required key; still present in Success or Fail
}

// Len returns the number of classified records.
func (p Partition) Len() int {
	return len(p.Success) + len(p.Fail)
}

// Validate reports whether r carries arguments, directory and exec_result.
// Values are not inspected.
func Validate(r Record) bool {
	for _, k := range requiredKeys {
		if !r.Has(k) {
			return false
		}
	}
	return true
}

// Classify puts records with a truthy rebuild field in Fail and everything
// else in Success. Invalid records are logged and counted, never dropped.
func Classify(log *zap.Logger, records []Record) Partition {
	if log == nil {
		log = zap.NewNop()
	}
	p := Partition{
		Success: make([]Record, 0, len(records)),
		Fail:    make([]Record, 0),
	}
	for _, r := range records {
		if !Validate(r) {
			p.Invalid++
			log.Info("discard invalid command", zap.String("record", Preview(r, previewWidth)))
		}
		if r.Rebuild() {
			p.Fail = append(p.Fail, r)
		} else {
			p.Success = append(p.Success, r)
		}
	}
	return p
}

// Preview renders r on one line, cut to at most width display columns.
func Preview(r Record, width int) string {
	s := string(pretty.Ugly(r.raw))
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
