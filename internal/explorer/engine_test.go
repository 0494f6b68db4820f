package explorer

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3" // Test fixture creation

	"github.com/nerrad567/dbscope/internal/infrastructure/config"
	"github.com/nerrad567/dbscope/internal/infrastructure/logging"
)

// fixtureSchema is a small commerce-shaped database used across the
// explorer tests: customers, orders referencing customers, line_items
// referencing orders, a view, and a couple of indexes.
const fixtureSchema = `
CREATE TABLE customers (
	id    INTEGER PRIMARY KEY,
	name  TEXT NOT NULL,
	email TEXT
);

CREATE TABLE orders (
	id          INTEGER PRIMARY KEY,
	customer_id INTEGER NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
	total       REAL,
	created_at  TEXT DEFAULT 'unknown'
);

CREATE TABLE line_items (
	id       INTEGER PRIMARY KEY,
	order_id INTEGER NOT NULL REFERENCES orders(id),
	product  TEXT NOT NULL,
	qty      INTEGER,
	price    REAL
);

CREATE TABLE empty_table (
	id    INTEGER PRIMARY KEY,
	notes TEXT
);

CREATE INDEX idx_orders_customer ON orders(customer_id);
CREATE UNIQUE INDEX idx_customers_email ON customers(email);

CREATE VIEW order_totals AS
	SELECT customer_id, SUM(total) AS grand_total FROM orders GROUP BY customer_id;

INSERT INTO customers (id, name, email) VALUES
	(1, 'Ada', 'ada@example.com'),
	(2, 'Brian', 'brian@example.com'),
	(3, 'Carol', NULL);

INSERT INTO orders (id, customer_id, total, created_at) VALUES
	(10, 1, 25.50, '2024-01-01'),
	(11, 1, 10.00, '2024-01-02'),
	(12, 2, 99.99, '2024-02-01');

INSERT INTO line_items (id, order_id, product, qty, price) VALUES
	(100, 10, 'widget', 2, 10.25),
	(101, 10, 'gadget', 1, 5.00),
	(102, 11, 'widget', 1, 10.00),
	(103, 12, 'doohickey', 3, 33.33);
`

// createFixture writes the fixture database to a temp file and returns
// its path.
func createFixture(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("creating fixture database: %v", err)
	}
	defer db.Close() //nolint:errcheck // Test cleanup

	if _, err := db.Exec(fixtureSchema); err != nil {
		t.Fatalf("populating fixture database: %v", err)
	}
	return path
}

// newTestEngine builds an engine whose default path is a fresh fixture.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(config.DatabaseConfig{Path: createFixture(t)}, logging.Default())
}

// newBareEngine builds an engine with no default path configured.
func newBareEngine(t *testing.T) *Engine {
	t.Helper()
	return New(config.DatabaseConfig{}, logging.Default())
}

// newEngineWithSchema builds an engine over a fresh database populated
// with the given statements instead of the standard fixture.
func newEngineWithSchema(t *testing.T, schema string) *Engine {
	t.Helper()

	path := filepath.Join(t.TempDir(), "custom.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("creating custom database: %v", err)
	}
	defer db.Close() //nolint:errcheck // Test cleanup

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("populating custom database: %v", err)
	}
	return New(config.DatabaseConfig{Path: path}, logging.Default())
}

func TestResolvePath(t *testing.T) {
	t.Run("parameter wins over default", func(t *testing.T) {
		e := New(config.DatabaseConfig{Path: "/default.db"}, logging.Default())
		got, err := e.resolvePath("/param.db")
		if err != nil {
			t.Fatalf("resolvePath() error = %v", err)
		}
		if got != "/param.db" {
			t.Errorf("resolvePath() = %q, want /param.db", got)
		}
	})

	t.Run("default used when parameter empty", func(t *testing.T) {
		e := New(config.DatabaseConfig{Path: "/default.db"}, logging.Default())
		got, err := e.resolvePath("")
		if err != nil {
			t.Fatalf("resolvePath() error = %v", err)
		}
		if got != "/default.db" {
			t.Errorf("resolvePath() = %q, want /default.db", got)
		}
	})

	t.Run("neither configured fails", func(t *testing.T) {
		e := New(config.DatabaseConfig{}, logging.Default())
		_, err := e.resolvePath("")
		if !errors.Is(err, ErrMissingDatabasePath) {
			t.Fatalf("resolvePath() error = %v, want ErrMissingDatabasePath", err)
		}
	})
}
