// Package ingest orchestrates one bulk-load run: open the CSV source, derive
// the destination schema from the first chunk, replace the destination
// table, then append every chunk in order. Execution is strictly sequential
// — one batch is read, then written, before the next is read — so peak
// memory stays bounded by a single batch regardless of dataset size.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/Sicelumusa1/data-engineering-zoomcamp/internal/datasource"
	csvp "github.com/Sicelumusa1/data-engineering-zoomcamp/internal/parser/csv"
	"github.com/Sicelumusa1/data-engineering-zoomcamp/internal/storage"
)

// Pipeline describes one load: where the bytes come from, how to chunk and
// type them, and which table of which backend kind receives them.
type Pipeline struct {
	Source datasource.Source
	Reader csvp.Options
	Kind   string // storage backend kind, for DDL type mapping
	Table  string // destination table, replaced at run start
}

// Result summarizes a completed run.
type Result struct {
	Rows    int64
	Batches int
}

// Run executes the pipeline against repo. The destination is only touched
// after the first batch has been read successfully: a source that fails to
// open, or whose first chunk fails to parse, aborts the run with the
// database never contacted. From then on each batch is appended as it
// arrives; a mid-run failure terminates the run and leaves the table
// partially populated, by design.
func Run(ctx context.Context, p Pipeline, repo storage.Repository) (Result, error) {
	var res Result

	if p.Table == "" {
		return res, fmt.Errorf("%w: destination table must not be empty", ErrInvalidConfig)
	}
	if p.Reader.ChunkSize <= 0 {
		return res, fmt.Errorf("%w: chunk size must be a positive integer, got %d", ErrInvalidConfig, p.Reader.ChunkSize)
	}

	rc, err := p.Source.Open(ctx)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer rc.Close()

	body, err := datasource.MaybeGunzip(rc)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer body.Close()

	rd, err := csvp.NewReader(body, p.Reader)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	first, err := rd.NextBatch(ctx)
	if err == io.EOF {
		// Header-only source: the schema is known, so the table is still
		// replaced; it just ends up empty.
		first = &csvp.Batch{Columns: rd.Columns()}
	} else if err != nil {
		return res, classifyReadErr(err)
	}

	if len(rd.Columns()) == 0 {
		return res, fmt.Errorf("%w: source has no columns", ErrSchemaMismatch)
	}
	def, err := storage.TableFor(p.Kind, p.Table, rd.Columns(), rd.Types())
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
	}
	if err := storage.ReplaceTable(ctx, repo, def); err != nil {
		return res, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	log.Printf("created table %s (%d columns)", p.Table, len(def.Columns))

	start := time.Now()
	lastFlush := start

	appendBatch := func(b *csvp.Batch) error {
		n, err := repo.CopyFrom(ctx, p.Table, b.Columns, b.Rows)
		res.Rows += n
		if err != nil {
			return fmt.Errorf("%w: %w", classifyWriteErr(err), err)
		}
		res.Batches++

		now := time.Now()
		elapsed := now.Sub(lastFlush)
		rps := float64(0)
		if elapsed > 0 {
			rps = float64(n) / elapsed.Seconds()
		}
		log.Printf("batch #%d: inserted=%d total=%d rps=%.0f elapsed=%s",
			res.Batches, n, res.Rows, rps, now.Sub(start).Truncate(time.Millisecond))
		lastFlush = now
		return nil
	}

	if first.Len() > 0 {
		if err := appendBatch(first); err != nil {
			return res, err
		}
	}

	for {
		b, err := rd.NextBatch(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, classifyReadErr(err)
		}
		if err := appendBatch(b); err != nil {
			return res, err
		}
	}

	log.Printf("finished loading %s: %d rows in %d batches (%s)",
		p.Table, res.Rows, res.Batches, time.Since(start).Truncate(time.Millisecond))
	return res, nil
}

// classifyReadErr distinguishes a type-coercion failure (the declared schema
// does not fit the data) from the stream itself going bad.
func classifyReadErr(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var ce *csvp.CoerceError
	if errors.As(err, &ce) {
		return fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
	}
	return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
}
