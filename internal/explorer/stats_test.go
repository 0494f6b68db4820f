package explorer

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestIsNumericType(t *testing.T) {
	tests := []struct {
		declared string
		want     bool
	}{
		{"INTEGER", true},
		{"integer", true},
		{"INT", true},
		{"BIGINT", true},
		{"REAL", true},
		{"FLOAT", true},
		{"DOUBLE PRECISION", true},
		{"NUMERIC(10,2)", true},
		{"TEXT", false},
		{"BLOB", false},
		{"", false},
		{"VARCHAR(20)", false},
		// Known false-positive of the lexical check: POINT contains "INT".
		{"POINT", true},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			if got := isNumericType(tt.declared); got != tt.want {
				t.Errorf("isNumericType(%q) = %v, want %v", tt.declared, got, tt.want)
			}
		})
	}
}

func TestTableStatistics(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	t.Run("counts and per-column stats", func(t *testing.T) {
		stats, err := e.TableStatistics(ctx, "", "orders", 1000)
		if err != nil {
			t.Fatalf("TableStatistics() error = %v", err)
		}

		if stats.TotalRows != 3 {
			t.Errorf("TotalRows = %d, want 3", stats.TotalRows)
		}
		if stats.ColumnCount != 4 {
			t.Errorf("ColumnCount = %d, want 4", stats.ColumnCount)
		}
		if len(stats.Columns) != 4 {
			t.Fatalf("len(Columns) = %d, want 4", len(stats.Columns))
		}

		byName := map[string]ColumnStatistics{}
		for _, col := range stats.Columns {
			byName[col.Column] = col
		}

		total := byName["total"]
		if total.DistinctCount != 3 || total.NonNullCount != 3 || total.NullCount != 0 {
			t.Errorf("total counts = %+v, want 3 distinct, 3 non-null, 0 null", total)
		}
		if total.Min == nil || *total.Min != 10.00 {
			t.Errorf("total.Min = %v, want 10.00", total.Min)
		}
		if total.Max == nil || *total.Max != 99.99 {
			t.Errorf("total.Max = %v, want 99.99", total.Max)
		}
		if total.Avg == nil {
			t.Error("total.Avg = nil, want a value")
		}

		createdAt := byName["created_at"]
		if createdAt.Min != nil || createdAt.Max != nil || createdAt.Avg != nil {
			t.Errorf("created_at extrema = %+v, want absent for TEXT column", createdAt)
		}
	})

	t.Run("null accounting", func(t *testing.T) {
		stats, err := e.TableStatistics(ctx, "", "customers", 1000)
		if err != nil {
			t.Fatalf("TableStatistics() error = %v", err)
		}

		for _, col := range stats.Columns {
			if col.Column != "email" {
				continue
			}
			if col.NonNullCount != 2 || col.NullCount != 1 {
				t.Errorf("email counts = %+v, want 2 non-null, 1 null", col)
			}
		}
	})

	t.Run("zero-row table short-circuits", func(t *testing.T) {
		stats, err := e.TableStatistics(ctx, "", "empty_table", 1000)
		if err != nil {
			t.Fatalf("TableStatistics() error = %v", err)
		}
		if stats.TotalRows != 0 {
			t.Errorf("TotalRows = %d, want 0", stats.TotalRows)
		}
		if stats.ColumnCount != 2 {
			t.Errorf("ColumnCount = %d, want 2", stats.ColumnCount)
		}
		if len(stats.Columns) != 0 {
			t.Errorf("len(Columns) = %d, want 0 (no probes on empty table)", len(stats.Columns))
		}
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := e.TableStatistics(ctx, "", "no_such_table", 1000)
		if !errors.Is(err, ErrTableNotFound) {
			t.Fatalf("TableStatistics() error = %v, want ErrTableNotFound", err)
		}
	})
}

func TestColumnStatistics(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	t.Run("results preserve request order", func(t *testing.T) {
		stats, err := e.ColumnStatistics(ctx, "", "line_items", []string{"price", "product", "qty"}, 1000)
		if err != nil {
			t.Fatalf("ColumnStatistics() error = %v", err)
		}
		if len(stats) != 3 {
			t.Fatalf("len(stats) = %d, want 3", len(stats))
		}

		want := []string{"price", "product", "qty"}
		for i, name := range want {
			if stats[i].Column != name {
				t.Errorf("stats[%d].Column = %q, want %q", i, stats[i].Column, name)
			}
		}
	})

	t.Run("samples are distinct non-null and bounded", func(t *testing.T) {
		stats, err := e.ColumnStatistics(ctx, "", "line_items", []string{"product"}, 1000)
		if err != nil {
			t.Fatalf("ColumnStatistics() error = %v", err)
		}

		samples := stats[0].SampleValues
		if len(samples) == 0 || len(samples) > sampleValueLimit {
			t.Fatalf("len(samples) = %d, want 1..%d", len(samples), sampleValueLimit)
		}
		seen := map[any]bool{}
		for _, s := range samples {
			if s == nil {
				t.Error("sample value is nil, want non-null only")
			}
			if seen[s] {
				t.Errorf("duplicate sample value %v", s)
			}
			seen[s] = true
		}
	})

	t.Run("unknown columns fail before any probe", func(t *testing.T) {
		_, err := e.ColumnStatistics(ctx, "", "orders", []string{"total", "zzz", "yyy"}, 1000)
		if !errors.Is(err, ErrColumnNotFound) {
			t.Fatalf("ColumnStatistics() error = %v, want ErrColumnNotFound", err)
		}
		msg := err.Error()
		if !strings.Contains(msg, "zzz") || !strings.Contains(msg, "yyy") {
			t.Errorf("error %q does not name the unknown columns", msg)
		}
	})

	t.Run("empty column list", func(t *testing.T) {
		_, err := e.ColumnStatistics(ctx, "", "orders", nil, 1000)
		if !errors.Is(err, ErrInvalidArguments) {
			t.Fatalf("ColumnStatistics() error = %v, want ErrInvalidArguments", err)
		}
	})
}

func TestSampleRows(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	t.Run("limit and offset", func(t *testing.T) {
		result, err := e.SampleRows(ctx, "", "line_items", 2, 1, nil)
		if err != nil {
			t.Fatalf("SampleRows() error = %v", err)
		}
		if result.RowCount != 2 {
			t.Errorf("RowCount = %d, want 2", result.RowCount)
		}
		if len(result.Columns) != 5 {
			t.Errorf("len(Columns) = %d, want 5", len(result.Columns))
		}
	})

	t.Run("column projection", func(t *testing.T) {
		result, err := e.SampleRows(ctx, "", "customers", 10, 0, []string{"name", "email"})
		if err != nil {
			t.Fatalf("SampleRows() error = %v", err)
		}
		if len(result.Columns) != 2 {
			t.Fatalf("len(Columns) = %d, want 2", len(result.Columns))
		}
		if result.RowCount != 3 {
			t.Errorf("RowCount = %d, want 3", result.RowCount)
		}
		for _, row := range result.Rows {
			if _, ok := row["name"]; !ok {
				t.Error("row missing projected column name")
			}
			if _, ok := row["id"]; ok {
				t.Error("row contains unprojected column id")
			}
		}
	})

	t.Run("offset beyond end yields empty result", func(t *testing.T) {
		result, err := e.SampleRows(ctx, "", "customers", 10, 100, nil)
		if err != nil {
			t.Fatalf("SampleRows() error = %v", err)
		}
		if result.RowCount != 0 {
			t.Errorf("RowCount = %d, want 0", result.RowCount)
		}
	})

	t.Run("unknown projected column", func(t *testing.T) {
		_, err := e.SampleRows(ctx, "", "customers", 10, 0, []string{"name", "zzz"})
		if !errors.Is(err, ErrColumnNotFound) {
			t.Fatalf("SampleRows() error = %v, want ErrColumnNotFound", err)
		}
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := e.SampleRows(ctx, "", "no_such_table", 10, 0, nil)
		if !errors.Is(err, ErrTableNotFound) {
			t.Fatalf("SampleRows() error = %v, want ErrTableNotFound", err)
		}
	})
}
