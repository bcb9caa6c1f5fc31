// Package normalize turns raw backend records into canonical domain records.
//
// Backend payloads mix camelCase and snake_case keys, sometimes populate
// references (staff_id: {...}) and sometimes send bare ids, and disagree on
// whether money is in kobo or naira. Each canonical field is resolved from a
// priority-ordered list of raw keys; the first defined value wins. Absent keys
// and JSON nulls are undefined, while 0, false and "" are real values.
package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const snippetLimit = 160

// keys lists raw candidates for one canonical field, highest priority first.
// Dotted entries walk into nested objects.
type keys []string

// Record is an undecoded backend record. Only this package looks inside it.
type Record struct {
	fields map[string]any
}

// NewRecord wraps a decoded JSON object.
func NewRecord(fields map[string]any) Record {
	if fields == nil {
		fields = map[string]any{}
	}
	return Record{fields: fields}
}

// ParseRecord decodes a single JSON object into a Record.
func ParseRecord(data []byte) (Record, error) {
	var v any
	if err := decode(data, &v); err != nil {
		return Record{}, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return Record{}, errNotObject
	}
	return NewRecord(m), nil
}

// Lookup resolves a dotted path. It reports false when any step is missing,
// null, or not an object.
func (r Record) Lookup(path string) (any, bool) {
	var cur any = r.fields
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := m[part]
		if !ok || v == nil {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// Object returns the nested object found under the first matching key.
func (r Record) Object(candidates ...string) (Record, bool) {
	for _, k := range candidates {
		v, ok := r.Lookup(k)
		if !ok {
			continue
		}
		if m, ok := v.(map[string]any); ok {
			return NewRecord(m), true
		}
	}
	return Record{}, false
}

// List returns the array found under the first matching key. Elements that
// are not objects become empty records so they fail normalization visibly.
func (r Record) List(candidates ...string) ([]Record, bool) {
	for _, k := range candidates {
		v, ok := r.Lookup(k)
		if !ok {
			continue
		}
		arr, ok := v.([]any)
		if !ok {
			continue
		}
		out := make([]Record, 0, len(arr))
		for _, item := range arr {
			m, _ := item.(map[string]any)
			out = append(out, NewRecord(m))
		}
		return out, true
	}
	return nil, false
}

// Snippet is a short, deterministic rendering of the record for errors.
func (r Record) Snippet() string {
	b, err := json.Marshal(r.fields)
	if err != nil {
		return "<unprintable>"
	}
	if len(b) > snippetLimit {
		return string(b[:snippetLimit]) + "..."
	}
	return string(b)
}

func (r Record) str(k keys) (string, bool) {
	for _, key := range k {
		v, ok := r.Lookup(key)
		if !ok {
			continue
		}
		if s, ok := toString(v); ok {
			return s, true
		}
	}
	return "", false
}

// text resolves a cosmetic string, using def when nothing is defined.
func (r Record) text(k keys, def string) string {
	if s, ok := r.str(k); ok {
		return s
	}
	return def
}

// name resolves a display name from direct keys, falling back to joining
// first and last name candidates.
func (r Record) name(direct, first, last keys) string {
	if s, ok := r.str(direct); ok {
		return s
	}
	f, _ := r.str(first)
	l, _ := r.str(last)
	if full := strings.TrimSpace(strings.TrimSpace(f) + " " + strings.TrimSpace(l)); full != "" {
		return full
	}
	return notAvailable
}

func (r Record) number(k keys) (decimal.Decimal, bool) {
	for _, key := range k {
		v, ok := r.Lookup(key)
		if !ok {
			continue
		}
		if d, ok := toDecimal(v); ok {
			return d, true
		}
	}
	return decimal.Zero, false
}

func (r Record) integer(k keys) (int, bool) {
	d, ok := r.number(k)
	if !ok {
		return 0, false
	}
	return int(d.IntPart()), true
}

func (r Record) timestamp(k keys) time.Time {
	for _, key := range k {
		v, ok := r.Lookup(key)
		if !ok {
			continue
		}
		if t, ok := toTime(v); ok {
			return t
		}
	}
	return time.Time{}
}

// id resolves id, then _id, stringifying Mongo-style {"$oid": ...} values.
func (r Record) id() (string, bool) {
	s, ok := r.str(idKeys)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func toString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	case map[string]any:
		if oid, ok := t["$oid"].(string); ok {
			return oid, true
		}
	}
	return "", false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil
	case map[string]any:
		if n, ok := t["$numberDecimal"].(string); ok {
			d, err := decimal.NewFromString(n)
			return d, err == nil
		}
	}
	return decimal.Zero, false
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC(), true
			}
		}
	case map[string]any:
		if s, ok := t["$date"].(string); ok {
			return toTime(s)
		}
	default:
		if d, ok := toDecimal(v); ok {
			return time.UnixMilli(d.IntPart()).UTC(), true
		}
	}
	return time.Time{}, false
}
