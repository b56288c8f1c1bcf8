package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/Sicelumusa1/data-engineering-zoomcamp/internal/datasource/httpds"
	csvp "github.com/Sicelumusa1/data-engineering-zoomcamp/internal/parser/csv"
	"github.com/Sicelumusa1/data-engineering-zoomcamp/internal/storage"
	sqliterepo "github.com/Sicelumusa1/data-engineering-zoomcamp/internal/storage/sqlite"
)

// TestRun_RemoteGzipSource exercises the full remote path: HTTP fetch,
// on-the-fly gunzip, chunked parse, and appends into a real database.
func TestRun_RemoteGzipSource(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zw := gzip.NewWriter(w)
		defer zw.Close()
		zw.Write([]byte("vendorid,tpep_pickup_datetime,total_amount\n"))
		zw.Write([]byte("1,2021-01-01 00:15:56,11.80\n"))
		zw.Write([]byte("2,2021-01-01 00:31:00,4.30\n"))
	}))
	defer srv.Close()

	client := httpds.NewClient(httpds.Config{Timeout: 5 * time.Second})

	ctx := context.Background()
	repo, err := storage.New(ctx, storage.Config{
		Kind: sqliterepo.Kind,
		DSN:  "file:" + t.TempDir() + "/remote.db",
	})
	require.NoError(t, err)
	defer repo.Close()

	res, err := Run(ctx, Pipeline{
		Source: httpds.NewRemote(client, srv.URL),
		Reader: csvp.Options{
			ChunkSize:        1000,
			Types:            map[string]string{"vendorid": csvp.TypeBigint, "total_amount": csvp.TypeDouble},
			TimestampColumns: []string{"tpep_pickup_datetime"},
		},
		Kind:  sqliterepo.Kind,
		Table: "trips_remote",
	}, repo)
	require.NoError(t, err)
	require.EqualValues(t, 2, res.Rows)
	require.Equal(t, 1, res.Batches)

	db := repo.(*sqliterepo.Repository).DB()
	var total float64
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT sum(total_amount) FROM trips_remote").Scan(&total))
	require.InDelta(t, 16.10, total, 0.001)
}
