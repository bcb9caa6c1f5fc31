package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var errNotObject = errors.New("response body is not a JSON object")

var (
	totalPagesKeys = []string{"totalPages", "pages"}
	totalKeys      = []string{"total", "totalCount", "count"}
)

func decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("decode json: trailing data after top-level value")
	}
	return nil
}

// DecodeBody parses a response body. Backends wrap payloads inconsistently,
// so callers read fields through Rows and Pagination, which look under
// "data" before the top level.
func DecodeBody(body []byte) (Record, error) {
	return ParseRecord(body)
}

// enveloped expands each key into its "data."-prefixed variant followed by
// the bare key, and then the pagination sub-object variants.
func enveloped(names []string, nested ...string) []string {
	out := make([]string, 0, len(names)*(2+2*len(nested)))
	for _, n := range names {
		out = append(out, "data."+n, n)
		for _, p := range nested {
			out = append(out, "data."+p+"."+n, p+"."+n)
		}
	}
	return out
}

// Rows returns the row list under the first of names found in the body.
// A body whose "data" is itself an array is accepted as the row list.
func (r Record) Rows(names ...string) ([]Record, bool) {
	if rows, ok := r.List(enveloped(names)...); ok {
		return rows, true
	}
	return r.List("data")
}

// Pagination reads total and totalPages. totalPages falls back to pages and
// then to 1; total falls back to totalCount, count and then rowCount.
func (r Record) Pagination(rowCount int) (total, totalPages int) {
	totalPages = 1
	if n, ok := r.integer(enveloped(totalPagesKeys, "pagination", "meta")); ok {
		totalPages = n
	}
	total = rowCount
	if n, ok := r.integer(enveloped(totalKeys, "pagination", "meta")); ok {
		total = n
	}
	return total, totalPages
}
