// Package all wires the built-in storage backends into the storage factory.
//
// It exists purely for side effects: blank-importing it runs each backend's
// init(), registering its factory and type mapper. Entry points import this
// package so the rest of the program stays free of driver imports.
//
// Registered kinds:
//
//   - "postgres" (internal/storage/postgres)
//   - "sqlite"   (internal/storage/sqlite)
package all

import (
	_ "github.com/Sicelumusa1/data-engineering-zoomcamp/internal/storage/postgres"
	_ "github.com/Sicelumusa1/data-engineering-zoomcamp/internal/storage/sqlite"
)
