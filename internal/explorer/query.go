package explorer

import (
	"context"
	"database/sql"
	"fmt"
)

// RunQuery executes a classifier-gated read-only SELECT and returns the
// full result set as scalar row maps.
func (e *Engine) RunQuery(ctx context.Context, path, query string) (*QueryResult, error) {
	if err := ValidateReadOnlyQuery(query); err != nil {
		return nil, err
	}

	db, err := e.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only iteration

	return collectRows(rows)
}

// ExplainQuery returns SQLite's execution plan for a read-only SELECT.
// The statement passes through the same classifier gate as execution:
// only the underlying engine's plan is surfaced, nothing is optimised here.
func (e *Engine) ExplainQuery(ctx context.Context, path, query string) (*QueryResult, error) {
	if err := ValidateReadOnlyQuery(query); err != nil {
		return nil, err
	}

	db, err := e.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "EXPLAIN QUERY PLAN "+query)
	if err != nil {
		return nil, fmt.Errorf("explaining query: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only iteration

	return collectRows(rows)
}

// collectRows drains a result set into a QueryResult. Cells are always
// scalars; blobs stay as opaque byte slices, and integer/float/text/null
// pass through as the driver reports them.
func collectRows(rows *sql.Rows) (*QueryResult, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading result columns: %w", err)
	}

	result := &QueryResult{
		Columns: columns,
		Rows:    []map[string]any{},
	}

	values := make([]any, len(columns))
	scanTargets := make([]any, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, name := range columns {
			row[name] = normaliseScalar(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating result rows: %w", err)
	}

	result.RowCount = len(result.Rows)
	return result, nil
}

// normaliseScalar keeps database values JSON-friendly without inventing
// structure: nothing nested ever comes out of SQLite, so this only has to
// pass scalars through unchanged. Byte slices are left as-is and surface
// as opaque (base64 in JSON) values.
func normaliseScalar(v any) any {
	return v
}
