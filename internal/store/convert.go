// File: internal/store/convert.go
package store

import "time"

// Field accessors tolerant of the backend differences: Firestore returns
// time.Time for timestamps, the SQL and memory backends round-trip through
// JSON and hand back strings and nested maps.

// String returns the string value under key, or "".
func String(doc Document, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns the bool value under key, or false.
func Bool(doc Document, key string) bool {
	if v, ok := doc[key].(bool); ok {
		return v
	}
	return false
}

// Map returns the nested document under key, or nil.
func Map(doc Document, key string) Document {
	switch v := doc[key].(type) {
	case Document:
		return v
	case map[string]interface{}:
		return Document(v)
	}
	return nil
}

// Time returns the timestamp under key, accepting time.Time or RFC3339.
func Time(doc Document, key string) time.Time {
	switch v := doc[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
