package compdb

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrOpen means the input could not be opened or read.
	ErrOpen = errors.New("open compile commands")
	// ErrMalformed means the input is not a JSON array.
	ErrMalformed = errors.New("decode compile commands")
)

// LoadResult carries either the loaded records or the reason loading failed.
// Records is nil whenever Err is set.
type LoadResult struct {
	Records []Record
	Err     error
}

// Load reads the compile commands document at path.
func Load(path string) LoadResult {
	f, err := os.Open(path)
	if err != nil {
		return LoadResult{Err: fmt.Errorf("%w: %w", ErrOpen, err)}
	}
	defer f.Close()

	return Read(f)
}

// Read parses a compile commands document from r. A leading UTF-8 BOM is
// dropped, UTF-16 with a BOM is converted to UTF-8, and ill-formed UTF-8
// bytes are skipped rather than rejected.
func Read(r io.Reader) LoadResult {
	data, err := io.ReadAll(transform.NewReader(r, permissive()))
	if err != nil {
		return LoadResult{Err: fmt.Errorf("%w: %w", ErrOpen, err)}
	}
	records, err := Parse(data)
	if err != nil {
		return LoadResult{Err: err}
	}
	return LoadResult{Records: records}
}

// Parse splits a JSON array into records, in document order.
func Parse(data []byte) ([]Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: top-level value is %s, expected array", ErrMalformed, kind(doc))
	}

	records := make([]Record, 0)
	doc.ForEach(func(_, v gjson.Result) bool {
		records = append(records, NewRecord([]byte(v.Raw)))
		return true
	})
	return records, nil
}

func permissive() transform.Transformer {
	return transform.Chain(unicode.BOMOverride(transform.Nop), dropIllFormed{})
}

// dropIllFormed removes bytes that do not start a valid UTF-8 sequence.
// A well-formed U+FFFD in the input is kept.
type dropIllFormed struct{ transform.NopResetter }

func (dropIllFormed) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if c := src[nSrc]; c < utf8.RuneSelf {
			if nDst == len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}

		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 {
			if !atEOF && !utf8.FullRune(src[nSrc:]) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			nSrc++
			continue
		}
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		copy(dst[nDst:], src[nSrc:nSrc+size])
		nDst += size
		nSrc += size
	}
	return nDst, nSrc, nil
}

func kind(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return "null"
	case gjson.False, gjson.True:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	default:
		if v.IsObject() {
			return "object"
		}
		return "array"
	}
}
