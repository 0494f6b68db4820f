package explorer

import (
	"context"
	"errors"
	"testing"
)

func TestListTables(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	t.Run("lists tables and views ordered by name", func(t *testing.T) {
		tables, err := e.ListTables(ctx, "", nil)
		if err != nil {
			t.Fatalf("ListTables() error = %v", err)
		}

		want := []string{"customers", "empty_table", "line_items", "order_totals", "orders"}
		if len(tables) != len(want) {
			t.Fatalf("ListTables() returned %d entries, want %d", len(tables), len(want))
		}
		for i, name := range want {
			if tables[i].Name != name {
				t.Errorf("tables[%d].Name = %q, want %q", i, tables[i].Name, name)
			}
		}
	})

	t.Run("view is reported with kind view", func(t *testing.T) {
		tables, err := e.ListTables(ctx, "", []string{"order_totals"})
		if err != nil {
			t.Fatalf("ListTables() error = %v", err)
		}
		if len(tables) != 1 {
			t.Fatalf("ListTables() returned %d entries, want 1", len(tables))
		}
		if tables[0].Kind != "view" {
			t.Errorf("Kind = %q, want view", tables[0].Kind)
		}
		if tables[0].SQL == "" {
			t.Error("SQL is empty, want the defining statement")
		}
	})

	t.Run("name filter restricts results", func(t *testing.T) {
		tables, err := e.ListTables(ctx, "", []string{"orders", "no_such_table"})
		if err != nil {
			t.Fatalf("ListTables() error = %v", err)
		}
		if len(tables) != 1 || tables[0].Name != "orders" {
			t.Errorf("ListTables() = %+v, want only orders", tables)
		}
	})

	t.Run("missing file surfaces file-not-found", func(t *testing.T) {
		_, err := e.ListTables(ctx, "/nonexistent/path.db", nil)
		if err == nil {
			t.Fatal("ListTables() error = nil, want file-not-found")
		}
		if Kind(err) != KindFileNotFound {
			t.Errorf("Kind(err) = %q, want %q", Kind(err), KindFileNotFound)
		}
	})
}

func TestGetSchema(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	t.Run("columns in declaration order", func(t *testing.T) {
		columns, err := e.GetSchema(ctx, "", "orders")
		if err != nil {
			t.Fatalf("GetSchema() error = %v", err)
		}

		want := []string{"id", "customer_id", "total", "created_at"}
		if len(columns) != len(want) {
			t.Fatalf("GetSchema() returned %d columns, want %d", len(columns), len(want))
		}
		for i, name := range want {
			if columns[i].Name != name {
				t.Errorf("columns[%d].Name = %q, want %q", i, columns[i].Name, name)
			}
			if columns[i].Position != i {
				t.Errorf("columns[%d].Position = %d, want %d", i, columns[i].Position, i)
			}
		}
	})

	t.Run("column attributes", func(t *testing.T) {
		columns, err := e.GetSchema(ctx, "", "orders")
		if err != nil {
			t.Fatalf("GetSchema() error = %v", err)
		}

		byName := map[string]ColumnDescriptor{}
		for _, col := range columns {
			byName[col.Name] = col
		}

		id := byName["id"]
		if !id.PrimaryKey {
			t.Error("id.PrimaryKey = false, want true")
		}

		customerID := byName["customer_id"]
		if customerID.Nullable {
			t.Error("customer_id.Nullable = true, want false")
		}

		total := byName["total"]
		if !total.Nullable {
			t.Error("total.Nullable = false, want true")
		}
		if total.Type != "REAL" {
			t.Errorf("total.Type = %q, want REAL", total.Type)
		}

		createdAt := byName["created_at"]
		if createdAt.DefaultValue == nil || *createdAt.DefaultValue != "'unknown'" {
			t.Errorf("created_at.DefaultValue = %v, want 'unknown' literal", createdAt.DefaultValue)
		}
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := e.GetSchema(ctx, "", "no_such_table")
		if !errors.Is(err, ErrTableNotFound) {
			t.Fatalf("GetSchema() error = %v, want ErrTableNotFound", err)
		}
	})

	t.Run("invalid identifier rejected before opening", func(t *testing.T) {
		_, err := e.GetSchema(ctx, "", "bad name")
		if !errors.Is(err, ErrInvalidIdentifier) {
			t.Fatalf("GetSchema() error = %v, want ErrInvalidIdentifier", err)
		}
	})

	t.Run("internal sqlite_ tables hidden like in listings", func(t *testing.T) {
		// AUTOINCREMENT materialises sqlite_sequence in the catalog.
		auto := newEngineWithSchema(t, `
			CREATE TABLE jobs (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT);
			INSERT INTO jobs (name) VALUES ('first');
		`)

		if _, err := auto.GetSchema(ctx, "", "sqlite_sequence"); !errors.Is(err, ErrTableNotFound) {
			t.Errorf("GetSchema(sqlite_sequence) error = %v, want ErrTableNotFound", err)
		}
		if _, err := auto.GetTableInfo(ctx, "", "sqlite_sequence"); !errors.Is(err, ErrTableNotFound) {
			t.Errorf("GetTableInfo(sqlite_sequence) error = %v, want ErrTableNotFound", err)
		}
	})
}

func TestGetForeignKeys(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	t.Run("single table", func(t *testing.T) {
		edges, err := e.GetForeignKeys(ctx, "", "orders")
		if err != nil {
			t.Fatalf("GetForeignKeys() error = %v", err)
		}
		if len(edges) != 1 {
			t.Fatalf("GetForeignKeys() returned %d edges, want 1", len(edges))
		}
		edge := edges[0]
		if edge.Table != "orders" || edge.FromColumn != "customer_id" ||
			edge.ToTable != "customers" || edge.ToColumn != "id" {
			t.Errorf("edge = %+v, want orders.customer_id -> customers.id", edge)
		}
		if edge.OnDelete != "CASCADE" {
			t.Errorf("OnDelete = %q, want CASCADE", edge.OnDelete)
		}
	})

	t.Run("all tables", func(t *testing.T) {
		edges, err := e.GetForeignKeys(ctx, "", "")
		if err != nil {
			t.Fatalf("GetForeignKeys() error = %v", err)
		}
		if len(edges) != 2 {
			t.Fatalf("GetForeignKeys() returned %d edges, want 2", len(edges))
		}
	})

	t.Run("table with no foreign keys", func(t *testing.T) {
		edges, err := e.GetForeignKeys(ctx, "", "customers")
		if err != nil {
			t.Fatalf("GetForeignKeys() error = %v", err)
		}
		if len(edges) != 0 {
			t.Errorf("GetForeignKeys() returned %d edges, want 0", len(edges))
		}
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := e.GetForeignKeys(ctx, "", "no_such_table")
		if !errors.Is(err, ErrTableNotFound) {
			t.Fatalf("GetForeignKeys() error = %v, want ErrTableNotFound", err)
		}
	})
}

func TestGetIndexes(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	t.Run("single table", func(t *testing.T) {
		indexes, err := e.GetIndexes(ctx, "", "customers")
		if err != nil {
			t.Fatalf("GetIndexes() error = %v", err)
		}

		var found bool
		for _, idx := range indexes {
			if idx.Name == "idx_customers_email" {
				found = true
				if !idx.Unique {
					t.Error("idx_customers_email.Unique = false, want true")
				}
				if len(idx.Columns) != 1 || idx.Columns[0] != "email" {
					t.Errorf("idx_customers_email.Columns = %v, want [email]", idx.Columns)
				}
			}
		}
		if !found {
			t.Errorf("idx_customers_email not in %+v", indexes)
		}
	})

	t.Run("all tables includes orders index", func(t *testing.T) {
		indexes, err := e.GetIndexes(ctx, "", "")
		if err != nil {
			t.Fatalf("GetIndexes() error = %v", err)
		}

		var found bool
		for _, idx := range indexes {
			if idx.Name == "idx_orders_customer" {
				found = true
				if idx.Table != "orders" {
					t.Errorf("Table = %q, want orders", idx.Table)
				}
				if idx.Unique {
					t.Error("Unique = true, want false")
				}
			}
		}
		if !found {
			t.Errorf("idx_orders_customer not in %+v", indexes)
		}
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := e.GetIndexes(ctx, "", "no_such_table")
		if !errors.Is(err, ErrTableNotFound) {
			t.Fatalf("GetIndexes() error = %v, want ErrTableNotFound", err)
		}
	})
}
