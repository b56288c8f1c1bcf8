// Package ddl defines a small, backend-agnostic model for destination table
// definitions and renders simple CREATE TABLE / DROP TABLE statements from it.
//
// The package stays dialect-neutral on purpose: identifiers are emitted as-is
// and no backend-specific clauses are added. Backend packages (e.g.
// internal/storage/postgres) supply the SQL types via their own type mapping
// and may wrap these builders if their dialect needs more.
package ddl

import (
	"fmt"
	"strings"
)

// BuildCreateTableSQL renders a CREATE TABLE statement for def.
//
// Each column is rendered as "<Name> <SQLType> [NOT NULL]". def.FQN must be
// non-empty and every column needs a name and a SQL type; a definition with
// zero columns is rejected — a destination table cannot be created from an
// empty schema.
func BuildCreateTableSQL(def TableDef) (string, error) {
	fqn := strings.TrimSpace(def.FQN)
	if fqn == "" {
		return "", fmt.Errorf("ddl: table name must not be empty")
	}
	if len(def.Columns) == 0 {
		return "", fmt.Errorf("ddl: table %s has no columns", fqn)
	}

	cols := make([]string, 0, len(def.Columns))
	for _, c := range def.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("ddl: table %s has a column with an empty name", fqn)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return "", fmt.Errorf("ddl: column %s missing SQL type", name)
		}
		col := name + " " + typ
		if !c.Nullable {
			col += " NOT NULL"
		}
		cols = append(cols, col)
	}

	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n);", fqn, strings.Join(cols, ",\n  ")), nil
}

// BuildDropTableSQL renders a DROP TABLE IF EXISTS statement for def. The
// replace-then-append semantics of the loader keep this as a statement of its
// own rather than folding it into table creation, so the destructive step
// stays visible and testable in isolation.
func BuildDropTableSQL(def TableDef) (string, error) {
	fqn := strings.TrimSpace(def.FQN)
	if fqn == "" {
		return "", fmt.Errorf("ddl: table name must not be empty")
	}
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", fqn), nil
}
