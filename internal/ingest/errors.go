package ingest

import (
	"errors"
	"strings"
)

// The loader's failure taxonomy. Every error leaving Run wraps exactly one
// of these sentinels, so the process boundary can classify with errors.Is
// without knowing which stage failed. None are retried internally; partial
// progress in the destination table is left as-is for inspection.
var (
	// ErrInvalidConfig marks a bad parameter (e.g. non-positive chunk size).
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSourceUnavailable marks an unreachable or malformed CSV source.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSchemaMismatch marks a literal that fails its declared column type,
	// or a first batch with no usable schema.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrConnection marks an unreachable or failing destination database.
	ErrConnection = errors.New("database connection failure")

	// ErrConstraint marks an insert-time type or constraint failure.
	ErrConstraint = errors.New("constraint violation")
)

// classifyWriteErr maps a batch-append failure to ErrConstraint or
// ErrConnection. Data and integrity SQLSTATE classes (22, 23) are the
// destination rejecting values; everything else is treated as the
// connection going away. pgconn.PgError satisfies the interface probe, so
// this package never imports the driver.
func classifyWriteErr(err error) error {
	var sc interface{ SQLState() string }
	if errors.As(err, &sc) {
		code := sc.SQLState()
		if strings.HasPrefix(code, "22") || strings.HasPrefix(code, "23") {
			return ErrConstraint
		}
	}
	return ErrConnection
}
