package explorer

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/nerrad567/dbscope/internal/infrastructure/database"
)

// quoteName double-quotes a name for SQL embedding, doubling embedded
// quotes. Used for catalog-derived names, which are trusted not to be
// hostile but may not pass the strict caller-facing identifier rules.
// Caller-supplied names must go through QuoteIdentifier instead.
func quoteName(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// ListTables returns catalog entries of kind table or view, excluding
// internal sqlite_* names, ordered by name.
//
// Parameters:
//   - ctx: Context for the catalog query
//   - path: Database path ("" uses the configured default)
//   - names: Optional restriction to a caller-supplied name set
//
// Returns:
//   - []TableDescriptor: Matching catalog entries (never nil)
//   - error: Connection or catalog failure
func (e *Engine) ListTables(ctx context.Context, path string, names []string) ([]TableDescriptor, error) {
	db, err := e.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return listTables(ctx, db, names)
}

// listTables runs the catalog query against an already-open handle.
func listTables(ctx context.Context, db *database.DB, names []string) ([]TableDescriptor, error) {
	query := `
		SELECT name, type, COALESCE(sql, '')
		FROM sqlite_master
		WHERE type IN ('table', 'view')
		  AND name NOT LIKE 'sqlite_%'`

	args := make([]any, 0, len(names))
	if len(names) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
		query += fmt.Sprintf(" AND name IN (%s)", placeholders)
		for _, n := range names {
			args = append(args, n)
		}
	}
	query += " ORDER BY name"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only iteration

	tables := []TableDescriptor{}
	for rows.Next() {
		var t TableDescriptor
		if err := rows.Scan(&t.Name, &t.Kind, &t.SQL); err != nil {
			return nil, fmt.Errorf("scanning table row: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tables: %w", err)
	}
	return tables, nil
}

// tableKind returns the catalog kind ("table" or "view") for a name, or
// ErrTableNotFound if the name is absent from the catalog. Internal
// sqlite_* names are treated as absent, matching the listing exclusion.
func tableKind(ctx context.Context, db *database.DB, table string) (string, error) {
	var kind string
	err := db.QueryRowContext(ctx,
		`SELECT type FROM sqlite_master
		 WHERE type IN ('table', 'view')
		   AND name NOT LIKE 'sqlite_%'
		   AND name = ?`,
		table,
	).Scan(&kind)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("%w: %s", ErrTableNotFound, table)
		}
		return "", fmt.Errorf("resolving table %s: %w", table, err)
	}
	return kind, nil
}

// GetSchema returns column metadata for one table in declaration order.
//
// Fails with ErrTableNotFound if the name is absent from the catalog and
// ErrInvalidIdentifier if the name fails validation.
func (e *Engine) GetSchema(ctx context.Context, path, table string) ([]ColumnDescriptor, error) {
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
	return tableColumns(ctx, db, table)
}

// tableColumns reads PRAGMA table_info for a table already known to exist.
func tableColumns(ctx context.Context, db *database.DB, table string) ([]ColumnDescriptor, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteName(table)))
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	defer rows.Close() //nolint:errcheck // Read-only iteration

	columns := []ColumnDescriptor{}
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning column of %s: %w", table, err)
		}
		col := ColumnDescriptor{
			Name:       name,
			Type:       ctype,
			Position:   cid,
			Nullable:   notNull == 0,
			PrimaryKey: pk > 0,
		}
		if dflt.Valid {
			v := dflt.String
			col.DefaultValue = &v
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns of %s: %w", table, err)
	}
	return columns, nil
}

// GetForeignKeys returns foreign-key edges.
//
// With a table name, only that table's outgoing edges are returned (the
// name is validated and must exist). With an empty name, every cataloged
// table is probed concurrently and the results concatenated in catalog
// order; a table contributing zero edges contributes nothing, and an
// individual probe failure is absorbed as zero edges rather than aborting
// the aggregate.
func (e *Engine) GetForeignKeys(ctx context.Context, path, table string) ([]ForeignKeyEdge, error) {
	db, err := e.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if table != "" {
		if err := ValidateIdentifier(table); err != nil {
			return nil, err
		}
		if _, err := tableKind(ctx, db, table); err != nil {
			return nil, err
		}
		return foreignKeysFor(ctx, db, table)
	}

	tables, err := listTables(ctx, db, nil)
	if err != nil {
		return nil, err
	}
	return e.scanAllForeignKeys(ctx, db, tables)
}

// scanAllForeignKeys fans out one foreign-key probe per table and merges
// the results in catalog order. The aggregate is only assembled after
// every probe has completed.
func (e *Engine) scanAllForeignKeys(ctx context.Context, db *database.DB, tables []TableDescriptor) ([]ForeignKeyEdge, error) {
	perTable := make([][]ForeignKeyEdge, len(tables))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range tables {
		i, t := i, t
		g.Go(func() error {
			edges, err := foreignKeysFor(gctx, db, t.Name)
			if err != nil {
				// Absorbed: one unreadable table must not abort the scan.
				e.log.Debug("foreign key probe failed", "table", t.Name, "error", err)
				return nil
			}
			perTable[i] = edges
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	edges := []ForeignKeyEdge{}
	for _, part := range perTable {
		edges = append(edges, part...)
	}
	return edges, nil
}

// foreignKeysFor reads PRAGMA foreign_key_list for one table.
func foreignKeysFor(ctx context.Context, db *database.DB, table string) ([]ForeignKeyEdge, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%s)", quoteName(table)))
	if err != nil {
		return nil, fmt.Errorf("reading foreign keys of %s: %w", table, err)
	}
	defer rows.Close() //nolint:errcheck // Read-only iteration

	edges := []ForeignKeyEdge{}
	for rows.Next() {
		var (
			id, seq            int
			toTable, from      string
			to                 sql.NullString // null for implicit primary-key references
			onUpdate, onDelete string
			match              string
		)
		if err := rows.Scan(&id, &seq, &toTable, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return nil, fmt.Errorf("scanning foreign key of %s: %w", table, err)
		}
		edges = append(edges, ForeignKeyEdge{
			Table:      table,
			FromColumn: from,
			ToTable:    toTable,
			ToColumn:   to.String,
			OnUpdate:   onUpdate,
			OnDelete:   onDelete,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating foreign keys of %s: %w", table, err)
	}
	return edges, nil
}

// GetIndexes returns index descriptors with resolved column lists.
//
// With a table name, only that table's indexes are returned. With an empty
// name the scan fans out per table, and resolving each index's column list
// is a nested fan-out per index; the aggregate is returned only once every
// lookup has completed.
func (e *Engine) GetIndexes(ctx context.Context, path, table string) ([]IndexDescriptor, error) {
	db, err := e.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var tables []TableDescriptor
	if table != "" {
		if err := ValidateIdentifier(table); err != nil {
			return nil, err
		}
		kind, err := tableKind(ctx, db, table)
		if err != nil {
			return nil, err
		}
		tables = []TableDescriptor{{Name: table, Kind: kind}}
	} else {
		tables, err = listTables(ctx, db, nil)
		if err != nil {
			return nil, err
		}
	}

	perTable := make([][]IndexDescriptor, len(tables))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range tables {
		i, t := i, t
		g.Go(func() error {
			indexes, err := indexesFor(gctx, db, t.Name)
			if err != nil {
				e.log.Debug("index probe failed", "table", t.Name, "error", err)
				return nil
			}
			perTable[i] = indexes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	indexes := []IndexDescriptor{}
	for _, part := range perTable {
		indexes = append(indexes, part...)
	}
	return indexes, nil
}

// indexesFor reads PRAGMA index_list for one table, then resolves each
// index's column list concurrently via PRAGMA index_info.
func indexesFor(ctx context.Context, db *database.DB, table string) ([]IndexDescriptor, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA index_list(%s)", quoteName(table)))
	if err != nil {
		return nil, fmt.Errorf("reading indexes of %s: %w", table, err)
	}

	indexes := []IndexDescriptor{}
	for rows.Next() {
		var (
			seq     int
			name    string
			unique  int
			origin  string
			partial int
		)
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			rows.Close() //nolint:errcheck // Error path cleanup
			return nil, fmt.Errorf("scanning index of %s: %w", table, err)
		}
		indexes = append(indexes, IndexDescriptor{
			Name:   name,
			Table:  table,
			Unique: unique == 1,
		})
	}
	if err := rows.Err(); err != nil {
		rows.Close() //nolint:errcheck // Error path cleanup
		return nil, fmt.Errorf("iterating indexes of %s: %w", table, err)
	}
	rows.Close() //nolint:errcheck // Iteration finished

	g, gctx := errgroup.WithContext(ctx)
	for i := range indexes {
		i := i
		g.Go(func() error {
			columns, err := indexColumns(gctx, db, indexes[i].Name)
			if err != nil {
				return err
			}
			indexes[i].Columns = columns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return indexes, nil
}

// indexColumns reads PRAGMA index_info for one index, in column order.
func indexColumns(ctx context.Context, db *database.DB, index string) ([]string, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA index_info(%s)", quoteName(index)))
	if err != nil {
		return nil, fmt.Errorf("reading columns of index %s: %w", index, err)
	}
	defer rows.Close() //nolint:errcheck // Read-only iteration

	type entry struct {
		seqno int
		name  string
	}
	entries := []entry{}
	for rows.Next() {
		var (
			seqno, cid int
			name       sql.NullString // null for expression index members
		)
		if err := rows.Scan(&seqno, &cid, &name); err != nil {
			return nil, fmt.Errorf("scanning column of index %s: %w", index, err)
		}
		entries = append(entries, entry{seqno: seqno, name: name.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns of index %s: %w", index, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].seqno < entries[j].seqno })
	columns := make([]string, len(entries))
	for i, en := range entries {
		columns[i] = en.name
	}
	return columns, nil
}
