package docstore

import (
	"encoding/json"
	"math"
	"strconv"
)

// String returns a string field
func (d Document) String(key string) (string, bool) {
	s, ok := d.Fields[key].(string)
	return s, ok
}

// Int64 returns an integral numeric field. Fractional values are truncated.
func (d Document) Int64(key string) (int64, bool) {
	switch v := d.Fields[key].(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		if f, err := v.Float64(); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int64(f), true
		}
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float32:
		return int64(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

// Float64 returns a numeric field as float64
func (d Document) Float64(key string) (float64, bool) {
	switch v := d.Fields[key].(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// Bool returns a boolean field
func (d Document) Bool(key string) (bool, bool) {
	b, ok := d.Fields[key].(bool)
	return b, ok
}

// Strings returns a list-of-strings field. Non-string elements make the
// whole field invalid.
func (d Document) Strings(key string) ([]string, bool) {
	switch v := d.Fields[key].(type) {
	case []string:
		return append([]string(nil), v...), true
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// IDInt parses the document id as an integer
func (d Document) IDInt() (int64, bool) {
	i, err := strconv.ParseInt(d.ID, 10, 64)
	return i, err == nil
}
