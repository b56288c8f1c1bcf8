package postgres

import "strings"

// MapType normalizes a logical column type into a Postgres SQL type.
//
//	"bigint"    -> BIGINT     (nullable integers stay integers, never floats)
//	"double"    -> DOUBLE PRECISION
//	"timestamp" -> TIMESTAMP
//	everything else -> TEXT
func MapType(logical string) string {
	switch strings.ToLower(strings.TrimSpace(logical)) {
	case "bigint", "int", "integer":
		return "BIGINT"
	case "double", "float", "real":
		return "DOUBLE PRECISION"
	case "timestamp":
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}
