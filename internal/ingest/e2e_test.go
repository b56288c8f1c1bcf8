package ingest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	csvp "github.com/Sicelumusa1/data-engineering-zoomcamp/internal/parser/csv"
	"github.com/Sicelumusa1/data-engineering-zoomcamp/internal/storage"
	sqliterepo "github.com/Sicelumusa1/data-engineering-zoomcamp/internal/storage/sqlite"
)

// TestRun_EndToEnd_SQLite drives a full run against a real embedded
// database: 2500 synthetic rows with chunk size 1000 must land as three
// appends (1000/1000/500) in a freshly created table.
func TestRun_EndToEnd_SQLite(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sb.WriteString("vendorid,trip_distance,flag\n")
	const total = 2500
	for i := 0; i < total; i++ {
		fmt.Fprintf(&sb, "%d,%d.25,N\n", i, i%97)
	}

	ctx := context.Background()
	repo, err := storage.New(ctx, storage.Config{
		Kind: sqliterepo.Kind,
		DSN:  "file:" + t.TempDir() + "/e2e.db",
	})
	require.NoError(t, err)
	defer repo.Close()

	p := Pipeline{
		Source: stringSource{[]byte(sb.String())},
		Reader: csvp.Options{
			ChunkSize: 1000,
			Types: map[string]string{
				"vendorid":      csvp.TypeBigint,
				"trip_distance": csvp.TypeDouble,
			},
		},
		Kind:  sqliterepo.Kind,
		Table: "yellow_taxi_data",
	}

	res, err := Run(ctx, p, repo)
	require.NoError(t, err)
	require.EqualValues(t, total, res.Rows)
	require.Equal(t, 3, res.Batches)

	db := repo.(*sqliterepo.Repository).DB()

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT count(*) FROM yellow_taxi_data").Scan(&count))
	require.Equal(t, total, count)

	// Arrival order is the insert order.
	var firstID, lastID int64
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT vendorid FROM yellow_taxi_data ORDER BY rowid LIMIT 1").Scan(&firstID))
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT vendorid FROM yellow_taxi_data ORDER BY rowid DESC LIMIT 1").Scan(&lastID))
	require.EqualValues(t, 0, firstID)
	require.EqualValues(t, total-1, lastID)

	// Re-running replaces: the table holds one run's worth of rows, not two.
	res2, err := Run(ctx, p, repo)
	require.NoError(t, err)
	require.EqualValues(t, total, res2.Rows)
	require.NoError(t, db.QueryRowContext(ctx, "SELECT count(*) FROM yellow_taxi_data").Scan(&count))
	require.Equal(t, total, count)
}

// TestRun_EndToEnd_SQLite_ZonesShape loads a small all-text lookup the way
// the zones pipeline does: one chunk covering the whole file.
func TestRun_EndToEnd_SQLite_ZonesShape(t *testing.T) {
	t.Parallel()

	csv := "LocationID,Borough,Zone,service_zone\n" +
		"1,EWR,Newark Airport,EWR\n" +
		"2,Queens,Jamaica Bay,Boro Zone\n" +
		"3,Bronx,Allerton/Pelham Gardens,Boro Zone\n"

	ctx := context.Background()
	repo, err := storage.New(ctx, storage.Config{
		Kind: sqliterepo.Kind,
		DSN:  "file:" + t.TempDir() + "/zones.db",
	})
	require.NoError(t, err)
	defer repo.Close()

	res, err := Run(ctx, Pipeline{
		Source: stringSource{[]byte(csv)},
		Reader: csvp.Options{ChunkSize: 100000},
		Kind:   sqliterepo.Kind,
		Table:  "zones",
	}, repo)
	require.NoError(t, err)
	require.EqualValues(t, 3, res.Rows)
	require.Equal(t, 1, res.Batches)

	db := repo.(*sqliterepo.Repository).DB()
	var borough string
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT borough FROM zones WHERE locationid = '1'").Scan(&borough))
	require.Equal(t, "EWR", borough)
}
