package explorer

// TableDescriptor describes one catalog entry of kind table or view.
// The name is immutable once listed.
type TableDescriptor struct {
	Name string `json:"name"`
	Kind string `json:"kind"` // "table" or "view"
	SQL  string `json:"sql"`  // defining statement from the catalog
}

// ColumnDescriptor describes one column of a table, in declaration order.
type ColumnDescriptor struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"` // declared type, free text, may be empty
	Position     int     `json:"position"`
	Nullable     bool    `json:"nullable"`
	DefaultValue *string `json:"default_value"`
	PrimaryKey   bool    `json:"primary_key"`
}

// ForeignKeyEdge is one foreign-key relationship. Direction (outgoing vs
// incoming) is a view computed relative to a chosen table, not stored.
type ForeignKeyEdge struct {
	Table      string `json:"table"` // owning table
	FromColumn string `json:"from_column"`
	ToTable    string `json:"to_table"`
	ToColumn   string `json:"to_column"`
	OnUpdate   string `json:"on_update"`
	OnDelete   string `json:"on_delete"`
}

// IndexDescriptor describes one index and its column list.
type IndexDescriptor struct {
	Name    string   `json:"name"`
	Table   string   `json:"table"`
	Unique  bool     `json:"unique"`
	Columns []string `json:"columns"`
}

// ColumnStatistics holds per-column profiling results.
//
// Min, Max, and Avg are only populated for columns whose declared type
// textually indicates a numeric family; declared type is advisory in
// SQLite, so they may legitimately be absent for numeric-looking data.
type ColumnStatistics struct {
	Table         string   `json:"table"`
	Column        string   `json:"column"`
	Type          string   `json:"type"`
	DistinctCount int64    `json:"distinct_count"`
	NullCount     int64    `json:"null_count"`
	NonNullCount  int64    `json:"non_null_count"`
	Min           *float64 `json:"min,omitempty"`
	Max           *float64 `json:"max,omitempty"`
	Avg           *float64 `json:"avg,omitempty"`
	SampleValues  []any    `json:"sample_values,omitempty"`
}

// TableStatistics holds whole-table profiling results.
type TableStatistics struct {
	Table       string             `json:"table"`
	TotalRows   int64              `json:"total_rows"`
	ColumnCount int                `json:"column_count"`
	Columns     []ColumnStatistics `json:"columns"`
}

// QueryResult is the outcome of a read-only query. Every cell is a scalar:
// text, number, boolean, null, or a binary blob surfaced as opaque bytes.
type QueryResult struct {
	Columns  []string         `json:"columns"`
	Rows     []map[string]any `json:"rows"`
	RowCount int              `json:"row_count"`
}

// DatabaseInfo is engine- and file-level metadata.
type DatabaseInfo struct {
	Path            string `json:"path"`
	SQLiteVersion   string `json:"sqlite_version"`
	FileSizeBytes   int64  `json:"file_size_bytes"` // 0 if the stat failed; best-effort
	PageSize        int64  `json:"page_size"`
	PageCount       int64  `json:"page_count"`
	Encoding        string `json:"encoding"`
	FreelistCount   int64  `json:"freelist_count"`
	UserVersion     int64  `json:"user_version"`
	ApplicationID   int64  `json:"application_id"`
	SchemaVersion   int64  `json:"schema_version"`
}

// TableInfo is summary metadata for one table.
type TableInfo struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	RowCount    int64  `json:"row_count"`
	ColumnCount int    `json:"column_count"`
	SQL         string `json:"sql"`
}

// ColumnMatch is one hit from a column-name search.
type ColumnMatch struct {
	Table      string `json:"table"`
	Column     string `json:"column"`
	Type       string `json:"type"`
	PrimaryKey bool   `json:"primary_key"`
	Nullable   bool   `json:"nullable"`
}

// RelatedTables summarises a table's foreign-key neighbourhood.
// OutgoingTables/IncomingTables are deduplicated, sorted name sets; the
// edge lists carry the full detail.
type RelatedTables struct {
	Table          string           `json:"table"`
	Outgoing       []ForeignKeyEdge `json:"outgoing"`
	Incoming       []ForeignKeyEdge `json:"incoming"`
	OutgoingTables []string         `json:"outgoing_tables"`
	IncomingTables []string         `json:"incoming_tables"`
}
