package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sicelumusa1/data-engineering-zoomcamp/internal/ddl"
)

// TypeMapper translates a logical column type (see internal/parser/csv) into
// the backend's SQL type. Backends register theirs alongside their factory.
type TypeMapper func(logical string) string

var (
	mapMu   sync.RWMutex
	mappers = map[string]TypeMapper{}
)

// RegisterTypeMapper installs the logical→SQL type mapping for a backend kind.
func RegisterTypeMapper(kind string, fn TypeMapper) {
	mapMu.Lock()
	defer mapMu.Unlock()
	mappers[kind] = fn
}

// TableFor builds a TableDef for the given backend kind from an ordered
// column list and the logical type per column (aligned slices, as produced
// by the CSV reader). Every column is nullable: CSV fields can be empty.
func TableFor(kind, table string, columns, types []string) (ddl.TableDef, error) {
	mapMu.RLock()
	mapType, ok := mappers[kind]
	mapMu.RUnlock()
	if !ok {
		return ddl.TableDef{}, fmt.Errorf("no type mapper registered for storage kind %q", kind)
	}
	if len(columns) != len(types) {
		return ddl.TableDef{}, fmt.Errorf("columns/types length mismatch: %d vs %d", len(columns), len(types))
	}

	cols := make([]ddl.ColumnDef, len(columns))
	for i, name := range columns {
		cols[i] = ddl.ColumnDef{Name: name, SQLType: mapType(types[i]), Nullable: true}
	}
	return ddl.TableDef{FQN: table, Columns: cols}, nil
}

// ReplaceTable destroys any prior table of the same name and creates it
// fresh with def's schema. The drop and the create are two explicit
// sequential statements: the irreversible side effect stays visible rather
// than hiding inside an upsert-style call. Any pre-existing data under the
// name is gone once this returns.
func ReplaceTable(ctx context.Context, repo Repository, def ddl.TableDef) error {
	drop, err := ddl.BuildDropTableSQL(def)
	if err != nil {
		return err
	}
	create, err := ddl.BuildCreateTableSQL(def)
	if err != nil {
		return err
	}
	if err := repo.Exec(ctx, drop); err != nil {
		return fmt.Errorf("drop %s: %w", def.FQN, err)
	}
	if err := repo.Exec(ctx, create); err != nil {
		return fmt.Errorf("create %s: %w", def.FQN, err)
	}
	return nil
}
