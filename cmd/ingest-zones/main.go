// Command ingest-zones loads the NYC taxi-zone lookup table into the
// destination database. The lookup is small enough that the whole file fits
// in a single chunk; the destination table is replaced on every run.
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

// zonesChunkSize comfortably covers the whole lookup (a few hundred rows),
// collapsing the pipeline to a single batch.
const zonesChunkSize = 100000

type zoneFlags struct {
	pgUser, pgPass, pgHost, pgDB string
	pgPort                       int
	targetTable                  string
	sourceFile                   string
}

var flags zoneFlags

var rootCmd = &cobra.Command{
	Use:   "ingest-zones",
	Short: "Load the NYC taxi-zone lookup table",
	Long: `ingest-zones fetches the taxi-zone lookup CSV and loads it whole into
the destination database, replacing any prior table of the same name.

Options fall back to environment variables:
  --pg-user      > $PG_USER      > root
  --pg-pass      > $PG_PASS      > root
  --pg-host      > $PG_HOST      > pgdatabase
  --pg-port      > $PG_PORT      > 5432
  --pg-db        > $PG_DB        > ny_taxi
  --target-table > $TARGET_TABLE > zones

A .env file in the working directory is loaded when present.`,
	Args:          cobra.NoArgs,
	RunE:          runZones,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.Flags().StringVar(&flags.pgUser, "pg-user", "", "Postgres user (default: $PG_USER or root)")
	rootCmd.Flags().StringVar(&flags.pgPass, "pg-pass", "", "Postgres password (default: $PG_PASS or root)")
	rootCmd.Flags().StringVar(&flags.pgHost, "pg-host", "", "Postgres host (default: $PG_HOST or pgdatabase)")
	rootCmd.Flags().IntVar(&flags.pgPort, "pg-port", 0, "Postgres port (default: $PG_PORT or 5432)")
	rootCmd.Flags().StringVar(&flags.pgDB, "pg-db", "", "Postgres database (default: $PG_DB or ny_taxi)")
	rootCmd.Flags().StringVar(&flags.targetTable, "target-table", "", "destination table (default: $TARGET_TABLE or zones)")
	rootCmd.Flags().StringVar(&flags.sourceFile, "source-file", "", "load from a local CSV file instead of downloading")
}

func runZones(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	pg := config.Postgres{
		User: config.ResolveString(flags.pgUser, "PG_USER", "root"),
		Pass: config.ResolveString(flags.pgPass, "PG_PASS", "root"),
		Host: config.ResolveString(flags.pgHost, "PG_HOST", "pgdatabase"),
		Port: config.ResolveInt(flags.pgPort, "PG_PORT", 5432),
		DB:   config.ResolveString(flags.pgDB, "PG_DB", "ny_taxi"),
	}
	table := config.ResolveString(flags.targetTable, "TARGET_TABLE", "zones")

	var src datasource.Source
	if flags.sourceFile != "" {
		src = file.NewLocal(flags.sourceFile)
	} else {
		src = httpds.NewRemote(nil, dataset.ZonesURL)
	}

	ctx := cmd.Context()
	repo, err := storage.New(ctx, storage.Config{Kind: postgres.Kind, DSN: pg.DSN()})
	if err != nil {
		return fmt.Errorf("open destination: %w", err)
	}
	defer repo.Close()

	_, err = ingest.Run(ctx, ingest.Pipeline{
		Source: src,
		Reader: dataset.ZonesReaderOptions(zonesChunkSize),
		Kind:   postgres.Kind,
		Table:  table,
	}, repo)
	return err
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
