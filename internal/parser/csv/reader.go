// Package csv implements a streaming, chunked CSV reader with per-column
// type coercion. It never buffers more than one batch of rows, so multi-GB
// exports can be loaded with memory bounded by the configured chunk size.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Logical column types understood by the reader. They are deliberately loose
// strings (the way storage backends expect them) rather than an enum, so the
// dataset catalog and the DDL type mappers can share them directly.
const (
	TypeBigint    = "bigint"
	TypeDouble    = "double"
	TypeText      = "text"
	TypeTimestamp = "timestamp"
)

// DefaultTimeLayout matches the timestamp format of the TLC trip exports.
const DefaultTimeLayout = "2006-01-02 15:04:05"

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// Options configures a Reader. ChunkSize is the only required field.
type Options struct {
	// ChunkSize is the maximum number of rows per batch. Must be > 0.
	ChunkSize int

	// Comma is the field delimiter; ',' when zero.
	Comma rune

	// TrimSpace trims leading/trailing spaces from every field value.
	TrimSpace bool

	// Types maps canonical column names to logical types (TypeBigint,
	// TypeDouble, TypeText). Columns absent from the map load as text.
	Types map[string]string

	// TimestampColumns names the columns parsed as timestamps, using
	// TimeLayout. Takes precedence over Types.
	TimestampColumns []string

	// TimeLayout is the time.Parse layout for timestamp columns;
	// DefaultTimeLayout when empty.
	TimeLayout string
}

// Batch is one bounded, ordered slice of a CSV's rows. Rows are aligned to
// Columns; empty fields arrive as nil, coerced fields as int64, float64,
// time.Time, or string. A Batch is owned by whoever pulled it from the
// Reader and is never retained after being written.
type Batch struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows in the batch.
func (b *Batch) Len() int { return len(b.Rows) }

// CoerceError reports a field literal that does not parse under its declared
// type. It aborts the batch: the loader treats it as a schema mismatch, not
// a skippable row.
type CoerceError struct {
	Line   int    // 1-based CSV line (header is line 1)
	Column string
	Type   string
	Value  string
	Err    error
}

func (e *CoerceError) Error() string {
	return fmt.Sprintf("line %d: column %s: cannot coerce %q to %s: %v",
		e.Line, e.Column, e.Value, e.Type, e.Err)
}

func (e *CoerceError) Unwrap() error { return e.Err }

// Reader yields successive Batches of at most ChunkSize rows from a CSV
// stream. The sequence is finite, preserves source order, and is consumed
// exactly once; restarting requires reopening the source. Reader is not
// safe for concurrent use.
type Reader struct {
	cr      *csv.Reader
	opt     Options
	layout  string
	columns []string
	types   []string // logical type per column index
	line    int      // lines consumed, header included
	done    bool
}

// NewReader wraps r, reads and normalizes the header, and prepares per-column
// coercion. Header names are canonicalized the same way destination columns
// are named: BOM stripped, trimmed, lowercased, spaces to underscores.
func NewReader(r io.Reader, opt Options) (*Reader, error) {
	if opt.ChunkSize <= 0 {
		return nil, fmt.Errorf("csv: chunk size must be a positive integer, got %d", opt.ChunkSize)
	}

	cr := csv.NewReader(r)
	if opt.Comma != 0 {
		cr.Comma = opt.Comma
	}
	cr.ReuseRecord = true

	hdr, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	columns := make([]string, len(hdr))
	for i, h := range hdr {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		columns[i] = canonicalName(h)
	}

	isTimestamp := make(map[string]bool, len(opt.TimestampColumns))
	for _, c := range opt.TimestampColumns {
		isTimestamp[canonicalName(c)] = true
	}

	types := make([]string, len(columns))
	for i, c := range columns {
		switch {
		case isTimestamp[c]:
			types[i] = TypeTimestamp
		case opt.Types[c] != "":
			types[i] = opt.Types[c]
		default:
			types[i] = TypeText
		}
	}

	layout := opt.TimeLayout
	if layout == "" {
		layout = DefaultTimeLayout
	}

	return &Reader{cr: cr, opt: opt, layout: layout, columns: columns, types: types, line: 1}, nil
}

// Columns returns the canonical column names, in source order.
func (r *Reader) Columns() []string { return r.columns }

// Types returns the logical type for each column, aligned to Columns.
func (r *Reader) Types() []string { return r.types }

// NextBatch reads up to ChunkSize rows and returns them as a Batch. It
// returns io.EOF after the final batch; the final batch itself may be short
// but is never empty. Any read or coercion error is fatal to the sequence.
func (r *Reader) NextBatch(ctx context.Context) (*Batch, error) {
	if r.done {
		return nil, io.EOF
	}

	rows := make([][]any, 0, r.opt.ChunkSize)
	for len(rows) < r.opt.ChunkSize {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := r.cr.Read()
		if err == io.EOF {
			r.done = true
			break
		}
		r.line++
		if err != nil {
			return nil, fmt.Errorf("csv: read line %d: %w", r.line, err)
		}
		if len(rec) != len(r.columns) {
			return nil, fmt.Errorf("csv: line %d: %d fields, header has %d", r.line, len(rec), len(r.columns))
		}

		row := make([]any, len(rec))
		for i, val := range rec {
			if r.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			v, err := r.coerce(i, val)
			if err != nil {
				return nil, err
			}
			row[i] = v
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, io.EOF
	}
	return &Batch{Columns: r.columns, Rows: rows}, nil
}

// coerce converts the raw field at column index i according to its declared
// type. Empty fields become nil regardless of type: integer-like columns
// with missing values remain integers at the schema level instead of
// degrading to floats.
func (r *Reader) coerce(i int, val string) (any, error) {
	if val == "" {
		return nil, nil
	}
	switch r.types[i] {
	case TypeBigint:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return nil, &CoerceError{Line: r.line, Column: r.columns[i], Type: TypeBigint, Value: val, Err: err}
		}
		return n, nil
	case TypeDouble:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, &CoerceError{Line: r.line, Column: r.columns[i], Type: TypeDouble, Value: val, Err: err}
		}
		return f, nil
	case TypeTimestamp:
		ts, err := time.Parse(r.layout, val)
		if err != nil {
			return nil, &CoerceError{Line: r.line, Column: r.columns[i], Type: TypeTimestamp, Value: val, Err: err}
		}
		return ts, nil
	default:
		return val, nil
	}
}

// canonicalName normalizes a header or configured column name to the form
// used for destination columns.
func canonicalName(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}
