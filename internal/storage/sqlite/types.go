package sqlite

import "strings"

// MapType normalizes a logical column type into a SQLite storage class.
// Timestamps are stored as TEXT; drivers bind time.Time values as RFC 3339
// strings, which sort correctly.
func MapType(logical string) string {
	switch strings.ToLower(strings.TrimSpace(logical)) {
	case "bigint", "int", "integer":
		return "INTEGER"
	case "double", "float", "real":
		return "REAL"
	default:
		return "TEXT"
	}
}
