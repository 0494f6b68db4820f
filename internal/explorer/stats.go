package explorer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/nerrad567/dbscope/internal/infrastructure/database"
)

// sampleValueLimit is the fixed number of distinct non-null sample values
// collected per column.
const sampleValueLimit = 5

// numericTypeMarkers are the declared-type substrings that mark a column
// as belonging to a numeric family. The check is textual and advisory by
// design: SQLite is dynamically typed, so a column holding numbers with a
// declared type missing these markers legitimately gets no min/max/avg.
var numericTypeMarkers = []string{"INT", "REAL", "NUMERIC", "FLOAT", "DOUBLE"}

// isNumericType reports whether a declared column type indicates a numeric
// family, case-insensitively.
func isNumericType(declared string) bool {
	upper := strings.ToUpper(declared)
	for _, marker := range numericTypeMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

// TableStatistics computes row count and per-column statistics for a table.
//
// The schema is resolved first (ErrTableNotFound if absent), then the
// total row count. A zero-row table short-circuits to an all-zero result
// without issuing any column probe. Otherwise every column is probed
// concurrently; the aggregate is returned only once every probe has
// completed, and a failed probe folds into that column's zero defaults
// rather than aborting the operation.
//
// maxSampleSize bounds a future sampling strategy for very large tables;
// the computation here is exact (full-table aggregates), so the value is
// validated upstream and otherwise unused.
func (e *Engine) TableStatistics(ctx context.Context, path, table string, maxSampleSize int) (*TableStatistics, error) {
	_ = maxSampleSize // advisory; see above

	if err := ValidateIdentifier(table); err != nil {
		return nil, err
	}

	db, err := e.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if _, err := tableKind(ctx, db, table); err != nil {
		return nil, err
	}
	columns, err := tableColumns(ctx, db, table)
	if err != nil {
		return nil, err
	}

	stats := &TableStatistics{
		Table:       table,
		ColumnCount: len(columns),
		Columns:     []ColumnStatistics{},
	}

	quoted, err := QuoteIdentifier(table)
	if err != nil {
		return nil, err
	}
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoted).Scan(&stats.TotalRows); err != nil {
		return nil, fmt.Errorf("counting rows of %s: %w", table, err)
	}

	if stats.TotalRows == 0 {
		return stats, nil
	}

	results := make([]ColumnStatistics, len(columns))

	g, gctx := errgroup.WithContext(ctx)
	for i, col := range columns {
		i, col := i, col
		g.Go(func() error {
			results[i] = e.probeColumn(gctx, db, table, col, stats.TotalRows, false)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.Columns = results
	return stats, nil
}

// ColumnStatistics computes statistics for an explicit set of columns.
//
// Every requested name is checked against the schema before any probe is
// issued; unknown names fail the whole call with ErrColumnNotFound listing
// each of them. Probes then fan out concurrently, one group per column,
// and results preserve the caller's requested order by being indexed
// post-hoc rather than relying on completion order. Each column also
// collects up to five distinct non-null sample values.
func (e *Engine) ColumnStatistics(ctx context.Context, path, table string, columnNames []string, maxSampleSize int) ([]ColumnStatistics, error) {
	_ = maxSampleSize // advisory; see TableStatistics

	if err := ValidateIdentifier(table); err != nil {
		return nil, err
	}
	if len(columnNames) == 0 {
		return nil, fmt.Errorf("%w: no columns requested", ErrInvalidArguments)
	}
	for _, name := range columnNames {
		if err := ValidateIdentifier(name); err != nil {
			return nil, err
		}
	}

	db, err := e.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if _, err := tableKind(ctx, db, table); err != nil {
		return nil, err
	}
	schema, err := tableColumns(ctx, db, table)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]ColumnDescriptor, len(schema))
	for _, col := range schema {
		byName[col.Name] = col
	}

	var unknown []string
	for _, name := range columnNames {
		if _, ok := byName[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, strings.Join(unknown, ", "))
	}

	quoted, err := QuoteIdentifier(table)
	if err != nil {
		return nil, err
	}
	var totalRows int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoted).Scan(&totalRows); err != nil {
		return nil, fmt.Errorf("counting rows of %s: %w", table, err)
	}

	results := make([]ColumnStatistics, len(columnNames))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range columnNames {
		i := i
		col := byName[name]
		g.Go(func() error {
			results[i] = e.probeColumn(gctx, db, table, col, totalRows, true)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// probeColumn issues the distinct/null-count probe for one column, the
// min/max/avg probe when the declared type is numeric, and optionally the
// sample-value probe. Probe failures fold into zero defaults; a column
// never fails the aggregate it belongs to.
func (e *Engine) probeColumn(ctx context.Context, db *database.DB, table string, col ColumnDescriptor, totalRows int64, withSamples bool) ColumnStatistics {
	stats := ColumnStatistics{
		Table:  table,
		Column: col.Name,
		Type:   col.Type,
	}

	qt := quoteName(table)
	qc := quoteName(col.Name)

	var distinct, nonNull int64
	err := db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(DISTINCT %s), COUNT(%s) FROM %s", qc, qc, qt),
	).Scan(&distinct, &nonNull)
	if err != nil {
		e.log.Debug("count probe failed", "table", table, "column", col.Name, "error", err)
		return stats
	}
	stats.DistinctCount = distinct
	stats.NonNullCount = nonNull
	stats.NullCount = totalRows - nonNull

	if isNumericType(col.Type) && nonNull > 0 {
		var minV, maxV, avgV sql.NullFloat64
		err := db.QueryRowContext(ctx,
			fmt.Sprintf("SELECT MIN(%s), MAX(%s), AVG(%s) FROM %s", qc, qc, qc, qt),
		).Scan(&minV, &maxV, &avgV)
		if err != nil {
			// Declared numeric but holding non-numeric data; leave extrema absent.
			e.log.Debug("numeric probe failed", "table", table, "column", col.Name, "error", err)
		} else {
			if minV.Valid {
				stats.Min = &minV.Float64
			}
			if maxV.Valid {
				stats.Max = &maxV.Float64
			}
			if avgV.Valid {
				stats.Avg = &avgV.Float64
			}
		}
	}

	if withSamples && nonNull > 0 {
		samples, err := e.sampleValues(ctx, db, qt, qc)
		if err != nil {
			e.log.Debug("sample probe failed", "table", table, "column", col.Name, "error", err)
		} else {
			stats.SampleValues = samples
		}
	}

	return stats
}

// sampleValues collects up to sampleValueLimit distinct non-null values.
func (e *Engine) sampleValues(ctx context.Context, db *database.DB, quotedTable, quotedColumn string) ([]any, error) {
	rows, err := db.QueryContext(ctx,
		fmt.Sprintf("SELECT DISTINCT %s FROM %s WHERE %s IS NOT NULL LIMIT %d",
			quotedColumn, quotedTable, quotedColumn, sampleValueLimit),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // Read-only iteration

	samples := []any{}
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		samples = append(samples, normaliseScalar(v))
	}
	return samples, rows.Err()
}

// SampleRows returns a bounded, offset-paginated projection of a table.
//
// An unknown table surfaces ErrTableNotFound; an unknown column in the
// optional subset surfaces ErrColumnNotFound. Columns default to all.
func (e *Engine) SampleRows(ctx context.Context, path, table string, limit, offset int, columns []string) (*QueryResult, error) {
	if err := ValidateIdentifier(table); err != nil {
		return nil, err
	}
	for _, name := range columns {
		if err := ValidateIdentifier(name); err != nil {
			return nil, err
		}
	}

	db, err := e.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if _, err := tableKind(ctx, db, table); err != nil {
		return nil, err
	}

	projection := "*"
	if len(columns) > 0 {
		schema, err := tableColumns(ctx, db, table)
		if err != nil {
			return nil, err
		}
		known := make(map[string]bool, len(schema))
		for _, col := range schema {
			known[col.Name] = true
		}
		var unknown []string
		quotedCols := make([]string, 0, len(columns))
		for _, name := range columns {
			if !known[name] {
				unknown = append(unknown, name)
				continue
			}
			quoted, err := QuoteIdentifier(name)
			if err != nil {
				return nil, err
			}
			quotedCols = append(quotedCols, quoted)
		}
		if len(unknown) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, strings.Join(unknown, ", "))
		}
		projection = strings.Join(quotedCols, ", ")
	}

	quoted, err := QuoteIdentifier(table)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s LIMIT ? OFFSET ?", projection, quoted)

	rows, err := db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("sampling rows of %s: %w", table, err)
	}
	defer rows.Close() //nolint:errcheck // Read-only iteration

	return collectRows(rows)
}
