// Package storage contains the storage-agnostic contracts of the loader: the
// Repository interface every backend implements, a registry-based factory so
// callers never import database drivers directly, and the replace-table
// helper that pins down the loader's destructive table semantics.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Repository is the minimal write surface a destination database must offer.
// One Repository maps to one open connection/pool used sequentially by a
// single run; implementations need not support concurrent calls.
type Repository interface {
	// CopyFrom appends rows (aligned to columns order) to table and returns
	// the number of rows written. It must preserve row order and perform no
	// deduplication.
	CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	// Exec runs a single statement, typically DDL.
	Exec(ctx context.Context, sql string) error

	// Close releases the underlying connection(s).
	Close()
}

// Config selects and configures a backend.
type Config struct {
	// Kind names the registered backend, e.g. "postgres" or "sqlite".
	Kind string

	// DSN is the backend connection string.
	DSN string
}

// Factory constructs a Repository for a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for a backend kind. Backends
// call this from init(); blank-importing internal/storage/all wires them up.
func Register(kind string, fn Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = fn
}

// New opens a Repository for cfg.Kind via its registered factory.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	fn, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage kind %q (registered: %v)", cfg.Kind, ListKinds())
	}
	return fn(ctx, cfg)
}

// ListKinds returns a sorted snapshot of the registered backend kinds.
func ListKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
