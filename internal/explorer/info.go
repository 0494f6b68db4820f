package explorer

import (
	"context"
	"fmt"
	"os"
)

// GetDatabaseInfo returns engine- and file-level metadata for a database.
//
// The file size comes from a filesystem stat and is best-effort: its
// absence does not fail the call. Every pragma probe, by contrast, is
// must-succeed — a metadata pragma failing means the connection itself is
// unhealthy, so the whole call aborts with ErrInfoUnavailable.
func (e *Engine) GetDatabaseInfo(ctx context.Context, path string) (*DatabaseInfo, error) {
	resolved, err := e.resolvePath(path)
	if err != nil {
		return nil, err
	}

	db, err := e.open(ctx, resolved)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	info := &DatabaseInfo{Path: resolved}

	if err := db.QueryRowContext(ctx, "SELECT sqlite_version()").Scan(&info.SQLiteVersion); err != nil {
		return nil, fmt.Errorf("%w: sqlite_version: %v", ErrInfoUnavailable, err)
	}

	probes := []struct {
		pragma string
		dest   *int64
	}{
		{"page_size", &info.PageSize},
		{"page_count", &info.PageCount},
		{"freelist_count", &info.FreelistCount},
		{"user_version", &info.UserVersion},
		{"application_id", &info.ApplicationID},
		{"schema_version", &info.SchemaVersion},
	}
	for _, p := range probes {
		if err := db.QueryRowContext(ctx, "PRAGMA "+p.pragma).Scan(p.dest); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInfoUnavailable, p.pragma, err)
		}
	}

	if err := db.QueryRowContext(ctx, "PRAGMA encoding").Scan(&info.Encoding); err != nil {
		return nil, fmt.Errorf("%w: encoding: %v", ErrInfoUnavailable, err)
	}

	// Best-effort: a stat failure leaves the size at zero.
	if st, err := os.Stat(resolved); err == nil {
		info.FileSizeBytes = st.Size()
	}

	return info, nil
}

// GetTableInfo returns summary metadata for one table: catalog kind,
// exact row count (full COUNT(*), no sampling), column count, and the
// defining SQL. Fails with ErrTableNotFound if the name is absent.
func (e *Engine) GetTableInfo(ctx context.Context, path, table string) (*TableInfo, error) {
	if err := ValidateIdentifier(table); err != nil {
		return nil, err
	}

	db, err := e.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	kind, err := tableKind(ctx, db, table)
	if err != nil {
		return nil, err
	}

	info := &TableInfo{Name: table, Kind: kind}

	if err := db.QueryRowContext(ctx,
		`SELECT COALESCE(sql, '') FROM sqlite_master WHERE name = ?`, table,
	).Scan(&info.SQL); err != nil {
		return nil, fmt.Errorf("reading definition of %s: %w", table, err)
	}

	quoted, err := QuoteIdentifier(table)
	if err != nil {
		return nil, err
	}
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoted).Scan(&info.RowCount); err != nil {
		return nil, fmt.Errorf("counting rows of %s: %w", table, err)
	}

	columns, err := tableColumns(ctx, db, table)
	if err != nil {
		return nil, err
	}
	info.ColumnCount = len(columns)

	return info, nil
}
