package eventapi

// record.go provides alias-chain field extraction over raw API records.
//
// Historical payloads name the same logical attribute a dozen different ways
// (snake_case, camelCase, French, English). Callers pass an ordered list of
// candidate keys and get the first usable value, so the alias tables stay
// data-driven and testable instead of being scattered through mapping code.

import (
	"strconv"
	"strings"
)

// FirstString returns the first non-empty string value among the given keys,
// trimmed. Placeholder values ("null", "undefined") count as empty.
func (r Record) FirstString(keys ...string) string {
	for _, key := range keys {
		v, ok := r[key]
		if !ok {
			continue
		}
		s := stringValue(v)
		if s != "" {
			return s
		}
	}
	return ""
}

// NestedString walks a path of object keys and returns the string value at
// the end, or "" when any step is missing.
func (r Record) NestedString(path ...string) string {
	if len(path) == 0 {
		return ""
	}
	cur := r
	for _, key := range path[:len(path)-1] {
		next, ok := cur[key].(map[string]any)
		if !ok {
			return ""
		}
		cur = next
	}
	return stringValue(cur[path[len(path)-1]])
}

// FirstBool returns the first recognizable boolean among the given keys.
// Accepts native booleans, numbers (non-zero is true) and common string
// spellings in English and French.
func (r Record) FirstBool(keys ...string) bool {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case bool:
			return t
		case float64:
			return t != 0
		case string:
			switch strings.ToLower(strings.TrimSpace(t)) {
			case "true", "t", "yes", "y", "oui", "1":
				return true
			case "false", "f", "no", "n", "non", "0":
				return false
			}
		}
	}
	return false
}

// stringValue coerces a decoded JSON value to a trimmed string.
// Numbers are rendered without a trailing ".0" so numeric ids stay usable
// as keys. Placeholder sentinels collapse to "".
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		switch strings.ToLower(s) {
		case "null", "undefined":
			return ""
		}
		return s
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
