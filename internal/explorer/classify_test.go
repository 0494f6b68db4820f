package explorer

import (
	"errors"
	"testing"
)

func TestValidateReadOnlyQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr error
	}{
		{
			name:  "plain select",
			query: "SELECT * FROM orders",
		},
		{
			name:  "lowercase select",
			query: "select id from customers",
		},
		{
			name:  "leading whitespace and newlines",
			query: "\n\t  SELECT id\n\tFROM orders",
		},
		{
			name:  "join with aggregates",
			query: "SELECT c.name, SUM(o.total) FROM customers c JOIN orders o ON o.customer_id = c.id GROUP BY c.name",
		},
		{
			name:    "empty",
			query:   "",
			wantErr: ErrInvalidQuery,
		},
		{
			name:    "whitespace only",
			query:   "   \n\t ",
			wantErr: ErrInvalidQuery,
		},
		{
			name:    "insert",
			query:   "INSERT INTO orders VALUES (1)",
			wantErr: ErrWriteQueryRejected,
		},
		{
			name:    "pragma",
			query:   "PRAGMA user_version = 9",
			wantErr: ErrWriteQueryRejected,
		},
		{
			name:    "does not start with select",
			query:   "WITH x AS (SELECT 1) SELECT * FROM x",
			wantErr: ErrWriteQueryRejected,
		},
		{
			name:    "select without following whitespace",
			query:   "SELECTx",
			wantErr: ErrWriteQueryRejected,
		},
		{
			name:    "forbidden keyword in subquery position",
			query:   "SELECT * FROM t WHERE x IN (DELETE FROM t)",
			wantErr: ErrWriteQueryRejected,
		},
		{
			name:    "forbidden keyword inside string literal still rejected",
			query:   "SELECT 'DROP TABLE users'",
			wantErr: ErrWriteQueryRejected,
		},
		{
			name:  "keyword as substring of identifier passes",
			query: "SELECT updated_at FROM audit_createdrop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReadOnlyQuery(tt.query)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateReadOnlyQuery(%q) error = %v, want nil", tt.query, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateReadOnlyQuery(%q) error = %v, want %v", tt.query, err, tt.wantErr)
			}
		})
	}
}
