// Command ingest-trips loads one month of NYC yellow-taxi trip data into
// the destination database, streaming the gzip-compressed CSV export in
// bounded chunks. The destination table is replaced on every run.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Sicelumusa1/data-engineering-zoomcamp/internal/config"
	"github.com/Sicelumusa1/data-engineering-zoomcamp/internal/dataset"
	"github.com/Sicelumusa1/data-engineering-zoomcamp/internal/datasource"
	"github.com/Sicelumusa1/data-engineering-zoomcamp/internal/datasource/file"
	"github.com/Sicelumusa1/data-engineering-zoomcamp/internal/datasource/httpds"
	"github.com/Sicelumusa1/data-engineering-zoomcamp/internal/ingest"
	"github.com/Sicelumusa1/data-engineering-zoomcamp/internal/storage"
	"github.com/Sicelumusa1/data-engineering-zoomcamp/internal/storage/postgres"

	// Register all storage backends with the factory.
	_ "github.com/Sicelumusa1/data-engineering-zoomcamp/internal/storage/all"
)

type tripFlags struct {
	pgUser, pgPass, pgHost, pgDB string
	pgPort                       int
	year, month                  int
	chunkSize                    int
	targetTable                  string
	sourceFile                   string
}

var flags tripFlags

var rootCmd = &cobra.Command{
	Use:   "ingest-trips",
	Short: "Load one month of NYC yellow-taxi trip data",
	Long: `ingest-trips streams a monthly yellow-taxi CSV export into the destination
database in bounded-size chunks. The destination table is dropped and
recreated from the export's schema at the start of every run, then each
chunk is appended in order; memory usage stays bounded by one chunk.

Connection flags fall back to environment variables:
  --pg-user > $PG_USER > root
  --pg-pass > $PG_PASS > root
  --pg-host > $PG_HOST > localhost
  --pg-port > $PG_PORT > 5432
  --pg-db   > $PG_DB   > ny_taxi

A .env file in the working directory is loaded when present.`,
	Args:          cobra.NoArgs,
	RunE:          runTrips,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.Flags().StringVar(&flags.pgUser, "pg-user", "", "Postgres user (default: $PG_USER or root)")
	rootCmd.Flags().StringVar(&flags.pgPass, "pg-pass", "", "Postgres password (default: $PG_PASS or root)")
	rootCmd.Flags().StringVar(&flags.pgHost, "pg-host", "", "Postgres host (default: $PG_HOST or localhost)")
	rootCmd.Flags().IntVar(&flags.pgPort, "pg-port", 0, "Postgres port (default: $PG_PORT or 5432)")
	rootCmd.Flags().StringVar(&flags.pgDB, "pg-db", "", "Postgres database (default: $PG_DB or ny_taxi)")
	rootCmd.Flags().IntVar(&flags.year, "year", 2021, "dataset year")
	rootCmd.Flags().IntVar(&flags.month, "month", 1, "dataset month")
	rootCmd.Flags().IntVar(&flags.chunkSize, "chunksize", 100000, "rows per chunk")
	rootCmd.Flags().StringVar(&flags.targetTable, "target-table", "yellow_taxi_data", "destination table name")
	rootCmd.Flags().StringVar(&flags.sourceFile, "source-file", "", "load from a local CSV(.gz) file instead of downloading")
}

func runTrips(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	pg := config.Postgres{
		User: config.ResolveString(flags.pgUser, "PG_USER", "root"),
		Pass: config.ResolveString(flags.pgPass, "PG_PASS", "root"),
		Host: config.ResolveString(flags.pgHost, "PG_HOST", "localhost"),
		Port: config.ResolveInt(flags.pgPort, "PG_PORT", 5432),
		DB:   config.ResolveString(flags.pgDB, "PG_DB", "ny_taxi"),
	}

	var src datasource.Source
	if flags.sourceFile != "" {
		src = file.NewLocal(flags.sourceFile)
	} else {
		url, err := dataset.TripURL(flags.year, flags.month)
		if err != nil {
			return err
		}
		src = httpds.NewRemote(nil, url)
	}

	ctx := cmd.Context()
	repo, err := storage.New(ctx, storage.Config{Kind: postgres.Kind, DSN: pg.DSN()})
	if err != nil {
		return fmt.Errorf("open destination: %w", err)
	}
	defer repo.Close()

	_, err = ingest.Run(ctx, ingest.Pipeline{
		Source: src,
		Reader: dataset.TripReaderOptions(flags.chunkSize),
		Kind:   postgres.Kind,
		Table:  flags.targetTable,
	}, repo)
	return err
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
