package explorer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

// SearchTables pattern-matches table and view names across the catalog.
//
// The pattern uses SQLite's native wildcard syntax (% = any run, _ = any
// single character) and matches case-insensitively, applied directly
// against the catalog with LIKE.
func (e *Engine) SearchTables(ctx context.Context, path, pattern string) ([]TableDescriptor, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty search pattern", ErrInvalidArguments)
	}

	db, err := e.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT name, type, COALESCE(sql, '')
		FROM sqlite_master
		WHERE type IN ('table', 'view')
		  AND name NOT LIKE 'sqlite_%'
		  AND name LIKE ?
		ORDER BY name`, pattern)
	if err != nil {
		return nil, fmt.Errorf("searching tables: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only iteration

	tables := []TableDescriptor{}
	for rows.Next() {
		var t TableDescriptor
		if err := rows.Scan(&t.Name, &t.Kind, &t.SQL); err != nil {
			return nil, fmt.Errorf("scanning table match: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating table matches: %w", err)
	}
	return tables, nil
}

// SearchColumns pattern-matches column names across every table's column
// list, fanned out concurrently. The same %/_ wildcard syntax is
// translated into an equivalent case-insensitive match. Hits carry no
// order guarantee beyond per-table grouping; callers should sort before
// comparing.
//
// Known limitation, kept deliberately: literal % and _ cannot be escaped
// in the pattern.
func (e *Engine) SearchColumns(ctx context.Context, path, pattern string) ([]ColumnMatch, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty search pattern", ErrInvalidArguments)
	}
	matcher, err := wildcardToRegexp(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: unusable search pattern %q", ErrInvalidArguments, pattern)
	}

	db, err := e.open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	tables, err := listTables(ctx, db, nil)
	if err != nil {
		return nil, err
	}

	perTable := make([][]ColumnMatch, len(tables))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range tables {
		i, t := i, t
		g.Go(func() error {
			columns, err := tableColumns(gctx, db, t.Name)
			if err != nil {
				e.log.Debug("column search probe failed", "table", t.Name, "error", err)
				return nil
			}
			matches := []ColumnMatch{}
			for _, col := range columns {
				if matcher.MatchString(col.Name) {
					matches = append(matches, ColumnMatch{
						Table:      t.Name,
						Column:     col.Name,
						Type:       col.Type,
						PrimaryKey: col.PrimaryKey,
						Nullable:   col.Nullable,
					})
				}
			}
			perTable[i] = matches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hits := []ColumnMatch{}
	for _, part := range perTable {
		hits = append(hits, part...)
	}
	return hits, nil
}

// wildcardToRegexp translates a LIKE-style pattern into an anchored,
// case-insensitive regular expression: % becomes .*, _ becomes ., and
// everything else is matched literally.
func wildcardToRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?i)^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
