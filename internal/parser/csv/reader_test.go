package csv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// drain pulls every batch until io.EOF and returns them.
func drain(t *testing.T, r *Reader) []*Batch {
	t.Helper()
	var batches []*Batch
	for {
		b, err := r.NextBatch(context.Background())
		if err == io.EOF {
			return batches
		}
		require.NoError(t, err)
		batches = append(batches, b)
	}
}

func TestNewReader_RejectsNonPositiveChunkSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -1} {
		_, err := NewReader(strings.NewReader("a\n1\n"), Options{ChunkSize: size})
		require.Error(t, err)
		require.Contains(t, err.Error(), "positive integer")
	}
}

func TestNewReader_NormalizesHeader(t *testing.T) {
	t.Parallel()

	in := "\uFEFFVendorID,Trip Distance,store_and_fwd_flag\n"
	r, err := NewReader(strings.NewReader(in), Options{ChunkSize: 10})
	require.NoError(t, err)
	require.Equal(t, []string{"vendorid", "trip_distance", "store_and_fwd_flag"}, r.Columns())
}

// TestNextBatch_ChunkBoundaries checks the core chunking property: for R
// rows and chunk size C, exactly ceil(R/C) batches whose row counts sum to
// R, in source order.
func TestNextBatch_ChunkBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		rows      int
		chunk     int
		wantSizes []int
	}{
		{"exact multiple", 6, 3, []int{3, 3}},
		{"short final batch", 7, 3, []int{3, 3, 1}},
		{"single oversized chunk", 4, 100, []int{4}},
		{"chunk of one", 3, 1, []int{1, 1, 1}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var sb strings.Builder
			sb.WriteString("id,name\n")
			for i := 0; i < tc.rows; i++ {
				fmt.Fprintf(&sb, "%d,row%d\n", i, i)
			}

			r, err := NewReader(strings.NewReader(sb.String()), Options{
				ChunkSize: tc.chunk,
				Types:     map[string]string{"id": TypeBigint},
			})
			require.NoError(t, err)

			batches := drain(t, r)
			require.Len(t, batches, len(tc.wantSizes))

			total := 0
			for i, b := range batches {
				require.Equal(t, tc.wantSizes[i], b.Len(), "batch %d", i)
				total += b.Len()
			}
			require.Equal(t, tc.rows, total)

			// Order preserved across batch boundaries.
			seen := 0
			for _, b := range batches {
				for _, row := range b.Rows {
					require.Equal(t, int64(seen), row[0])
					seen++
				}
			}

			// Sequence stays exhausted.
			_, err = r.NextBatch(context.Background())
			require.Equal(t, io.EOF, err)
		})
	}
}

func TestNextBatch_CoercesDeclaredTypes(t *testing.T) {
	t.Parallel()

	in := "vendorid,trip_distance,flag,tpep_pickup_datetime\n" +
		"1,2.5,N,2021-01-01 00:15:56\n" +
		",,,\n"

	r, err := NewReader(strings.NewReader(in), Options{
		ChunkSize:        10,
		Types:            map[string]string{"vendorid": TypeBigint, "trip_distance": TypeDouble},
		TimestampColumns: []string{"tpep_pickup_datetime"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{TypeBigint, TypeDouble, TypeText, TypeTimestamp}, r.Types())

	batches := drain(t, r)
	require.Len(t, batches, 1)
	rows := batches[0].Rows
	require.Len(t, rows, 2)

	require.Equal(t, int64(1), rows[0][0])
	require.Equal(t, 2.5, rows[0][1])
	require.Equal(t, "N", rows[0][2])
	require.Equal(t, time.Date(2021, 1, 1, 0, 15, 56, 0, time.UTC), rows[0][3])

	// Missing values stay nil in every column, integer ones included.
	for i := range rows[1] {
		require.Nil(t, rows[1][i], "column %d", i)
	}
}

func TestNextBatch_NonNumericLiteralFailsBatch(t *testing.T) {
	t.Parallel()

	in := "vendorid,amount\n1,10.5\nnot-a-number,3\n"
	r, err := NewReader(strings.NewReader(in), Options{
		ChunkSize: 10,
		Types:     map[string]string{"vendorid": TypeBigint, "amount": TypeDouble},
	})
	require.NoError(t, err)

	_, err = r.NextBatch(context.Background())
	var ce *CoerceError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "vendorid", ce.Column)
	require.Equal(t, TypeBigint, ce.Type)
	require.Equal(t, "not-a-number", ce.Value)
	require.Equal(t, 3, ce.Line)
}

func TestNextBatch_BadTimestampFailsBatch(t *testing.T) {
	t.Parallel()

	in := "ts\n2021-13-45 99:00:00\n"
	r, err := NewReader(strings.NewReader(in), Options{
		ChunkSize:        10,
		TimestampColumns: []string{"ts"},
	})
	require.NoError(t, err)

	_, err = r.NextBatch(context.Background())
	var ce *CoerceError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, TypeTimestamp, ce.Type)
}

func TestNextBatch_FieldCountMismatch(t *testing.T) {
	t.Parallel()

	in := "a,b\n1,2\n3\n"
	r, err := NewReader(strings.NewReader(in), Options{ChunkSize: 10})
	require.NoError(t, err)

	_, err = r.NextBatch(context.Background())
	require.Error(t, err)
}

func TestNextBatch_CanceledContext(t *testing.T) {
	t.Parallel()

	r, err := NewReader(strings.NewReader("a\n1\n"), Options{ChunkSize: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.NextBatch(ctx)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestNewReader_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := NewReader(strings.NewReader(""), Options{ChunkSize: 10})
	require.Error(t, err)
}
