package ddl

// ColumnDef describes a single destination column. Names are emitted
// unquoted by the generic renderer; backends quote as needed.
//
// SQLType is the backend SQL type (e.g. BIGINT, DOUBLE PRECISION, TEXT).
// Nullable defaults to false for the zero value, so builders derived from
// CSV schemas must set it explicitly: CSV fields can always be empty.
type ColumnDef struct {
	Name     string
	SQLType  string
	Nullable bool
}

// TableDef holds the destination table name (optionally schema-qualified,
// dotted form) and its ordered column list. Column order matters: it must
// match the order of values in every appended row batch.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}
