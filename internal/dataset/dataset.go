// Package dataset is the catalog of the two NYC TLC sources the loaders
// know about: the monthly yellow-taxi trip exports and the taxi-zone lookup
// table. It owns the URL construction and the declared column schemas.
package dataset

import (
	"fmt"

	csvp "github.com/Sicelumusa1/data-engineering-zoomcamp/internal/parser/csv"
)

const (
	tripURLPrefix = "https://github.com/DataTalksClub/nyc-tlc-data/releases/download/yellow"

	// ZonesURL is the fixed location of the taxi-zone lookup table.
	ZonesURL = "https://d37ci6vzurychx.cloudfront.net/misc/taxi_zone_lookup.csv"
)

// tripTypes declares per-column types for the trip exports, keyed by
// canonical column name. Id and count columns are nullable integers —
// keeping them integer-typed despite missing values is the point of
// declaring them at all. Monetary and distance columns are doubles; the
// flag column stays text.
var tripTypes = map[string]string{
	"vendorid":              csvp.TypeBigint,
	"passenger_count":       csvp.TypeBigint,
	"trip_distance":         csvp.TypeDouble,
	"ratecodeid":            csvp.TypeBigint,
	"store_and_fwd_flag":    csvp.TypeText,
	"pulocationid":          csvp.TypeBigint,
	"dolocationid":          csvp.TypeBigint,
	"payment_type":          csvp.TypeBigint,
	"fare_amount":           csvp.TypeDouble,
	"extra":                 csvp.TypeDouble,
	"mta_tax":               csvp.TypeDouble,
	"tip_amount":            csvp.TypeDouble,
	"tolls_amount":          csvp.TypeDouble,
	"improvement_surcharge": csvp.TypeDouble,
	"total_amount":          csvp.TypeDouble,
	"congestion_surcharge":  csvp.TypeDouble,
}

// tripTimestampColumns are parsed with the TLC export layout.
var tripTimestampColumns = []string{
	"tpep_pickup_datetime",
	"tpep_dropoff_datetime",
}

// TripURL returns the download URL for one month of yellow-taxi trip data.
// The exports are gzip-compressed CSV, one file per calendar month.
func TripURL(year, month int) (string, error) {
	if year < 2009 || year > 9999 {
		return "", fmt.Errorf("year %d out of range", year)
	}
	if month < 1 || month > 12 {
		return "", fmt.Errorf("month %d out of range (1-12)", month)
	}
	return fmt.Sprintf("%s/yellow_tripdata_%04d-%02d.csv.gz", tripURLPrefix, year, month), nil
}

// TripReaderOptions returns the reader configuration for the trip exports.
func TripReaderOptions(chunkSize int) csvp.Options {
	return csvp.Options{
		ChunkSize:        chunkSize,
		TrimSpace:        true,
		Types:            tripTypes,
		TimestampColumns: tripTimestampColumns,
	}
}

// ZonesReaderOptions returns the reader configuration for the zone lookup.
// No types are declared: the small static table loads as inferred text.
func ZonesReaderOptions(chunkSize int) csvp.Options {
	return csvp.Options{ChunkSize: chunkSize, TrimSpace: true}
}
