package explorer

import (
	"context"
	"sort"
)

// RelatedTables computes the foreign-key neighbourhood of one table.
//
// Outgoing edges are the table's own foreign keys. Incoming edges are the
// subset of all edges in the database whose target equals the requested
// table, which requires a full fan-out scan of every table's foreign keys.
// The summary name sets are deduplicated and sorted; the edge lists keep
// full detail. Fails with ErrTableNotFound if the table is absent.
func (e *Engine) RelatedTables(ctx context.Context, path, table string) (*RelatedTables, error) {
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

	outgoing, err := foreignKeysFor(ctx, db, table)
	if err != nil {
		return nil, err
	}

	tables, err := listTables(ctx, db, nil)
	if err != nil {
		return nil, err
	}
	allEdges, err := e.scanAllForeignKeys(ctx, db, tables)
	if err != nil {
		return nil, err
	}

	incoming := []ForeignKeyEdge{}
	for _, edge := range allEdges {
		if edge.ToTable == table && edge.Table != table {
			incoming = append(incoming, edge)
		}
	}

	return &RelatedTables{
		Table:          table,
		Outgoing:       outgoing,
		Incoming:       incoming,
		OutgoingTables: nameSet(outgoing, func(e ForeignKeyEdge) string { return e.ToTable }),
		IncomingTables: nameSet(incoming, func(e ForeignKeyEdge) string { return e.Table }),
	}, nil
}

// nameSet deduplicates one side of an edge list into a sorted name set.
func nameSet(edges []ForeignKeyEdge, pick func(ForeignKeyEdge) string) []string {
	seen := map[string]bool{}
	names := []string{}
	for _, edge := range edges {
		name := pick(edge)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
