package catalog

import (
	"context"

	"github.com/nerrad567/dbscope/internal/explorer"
)

// ParamType is the declared wire type of one operation parameter.
type ParamType string

const (
	TypeString     ParamType = "string"
	TypeInteger    ParamType = "integer"
	TypeStringList ParamType = "string_list"
)

// ParamSpec declares one parameter of an exposed operation: its name,
// type, whether it is required, and — for integers — the accepted bounds
// and the default applied when absent.
type ParamSpec struct {
	Name     string    `json:"name"`
	Type     ParamType `json:"type"`
	Required bool      `json:"required"`
	Min      int       `json:"min,omitempty"`
	Max      int       `json:"max,omitempty"`
	Default  int       `json:"default,omitempty"`
}

// Operation is one exposed engine operation: its public name, a short
// description, its declared parameter shape, and the handler binding it
// to the engine.
type Operation struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Params      []ParamSpec `json:"params"`

	handler func(ctx context.Context, eng *explorer.Engine, args Args) (any, error)
}

// pathParam is the shared optional database path parameter. Resolution
// order (parameter, else configured default, else missing-path error) is
// the engine's responsibility.
var pathParam = ParamSpec{Name: "database_path", Type: TypeString}

// operations is the static catalog of exposed operations. Order is the
// order reported by List.
var operations = []Operation{
	{
		Name:        "list_tables",
		Description: "List all tables and views in the database.",
		Params:      []ParamSpec{pathParam},
		handler: func(ctx context.Context, eng *explorer.Engine, args Args) (any, error) {
			return eng.ListTables(ctx, args.String("database_path"), nil)
		},
	},
	{
		Name:        "get_schema",
		Description: "Column definitions for one table, in declaration order.",
		Params: []ParamSpec{
			pathParam,
			{Name: "table_name", Type: TypeString, Required: true},
		},
		handler: func(ctx context.Context, eng *explorer.Engine, args Args) (any, error) {
			return eng.GetSchema(ctx, args.String("database_path"), args.String("table_name"))
		},
	},
	{
		Name:        "get_table_info",
		Description: "Kind, exact row count, column count, and defining SQL for one table.",
		Params: []ParamSpec{
			pathParam,
			{Name: "table_name", Type: TypeString, Required: true},
		},
		handler: func(ctx context.Context, eng *explorer.Engine, args Args) (any, error) {
			return eng.GetTableInfo(ctx, args.String("database_path"), args.String("table_name"))
		},
	},
	{
		Name:        "get_foreign_keys",
		Description: "Foreign-key edges for one table, or for every table when none is named.",
		Params: []ParamSpec{
			pathParam,
			{Name: "table_name", Type: TypeString},
		},
		handler: func(ctx context.Context, eng *explorer.Engine, args Args) (any, error) {
			return eng.GetForeignKeys(ctx, args.String("database_path"), args.String("table_name"))
		},
	},
	{
		Name:        "get_indexes",
		Description: "Indexes and their column lists for one table, or for every table.",
		Params: []ParamSpec{
			pathParam,
			{Name: "table_name", Type: TypeString},
		},
		handler: func(ctx context.Context, eng *explorer.Engine, args Args) (any, error) {
			return eng.GetIndexes(ctx, args.String("database_path"), args.String("table_name"))
		},
	},
	{
		Name:        "get_database_info",
		Description: "Engine version, file size, page layout, encoding, and version counters.",
		Params:      []ParamSpec{pathParam},
		handler: func(ctx context.Context, eng *explorer.Engine, args Args) (any, error) {
			return eng.GetDatabaseInfo(ctx, args.String("database_path"))
		},
	},
	{
		Name:        "get_table_stats",
		Description: "Row count and per-column statistics for one table.",
		Params: []ParamSpec{
			pathParam,
			{Name: "table_name", Type: TypeString, Required: true},
			{Name: "max_sample_size", Type: TypeInteger, Min: 1, Max: 100000, Default: 1000},
			// Accepted and bounds-checked, advisory only: the engine does
			// not enforce a deadline; callers own cancellation.
			{Name: "timeout_ms", Type: TypeInteger, Min: 1, Max: 300000},
		},
		handler: func(ctx context.Context, eng *explorer.Engine, args Args) (any, error) {
			return eng.TableStatistics(ctx,
				args.String("database_path"),
				args.String("table_name"),
				args.Int("max_sample_size"),
			)
		},
	},
	{
		Name:        "get_column_stats",
		Description: "Statistics and sample values for an explicit set of columns.",
		Params: []ParamSpec{
			pathParam,
			{Name: "table_name", Type: TypeString, Required: true},
			{Name: "column_names", Type: TypeStringList, Required: true},
			{Name: "max_sample_size", Type: TypeInteger, Min: 1, Max: 100000, Default: 1000},
		},
		handler: func(ctx context.Context, eng *explorer.Engine, args Args) (any, error) {
			return eng.ColumnStatistics(ctx,
				args.String("database_path"),
				args.String("table_name"),
				args.StringList("column_names"),
				args.Int("max_sample_size"),
			)
		},
	},
	{
		Name:        "sample_rows",
		Description: "A bounded, offset-paginated projection of a table.",
		Params: []ParamSpec{
			pathParam,
			{Name: "table_name", Type: TypeString, Required: true},
			{Name: "limit", Type: TypeInteger, Min: 1, Max: 1000, Default: 10},
			{Name: "offset", Type: TypeInteger, Min: 0, Max: 1<<31 - 1, Default: 0},
			{Name: "columns", Type: TypeStringList},
		},
		handler: func(ctx context.Context, eng *explorer.Engine, args Args) (any, error) {
			return eng.SampleRows(ctx,
				args.String("database_path"),
				args.String("table_name"),
				args.Int("limit"),
				args.Int("offset"),
				args.StringList("columns"),
			)
		},
	},
	{
		Name:        "search_tables",
		Description: "Case-insensitive wildcard search over table and view names.",
		Params: []ParamSpec{
			pathParam,
			{Name: "pattern", Type: TypeString, Required: true},
		},
		handler: func(ctx context.Context, eng *explorer.Engine, args Args) (any, error) {
			return eng.SearchTables(ctx, args.String("database_path"), args.String("pattern"))
		},
	},
	{
		Name:        "search_columns",
		Description: "Case-insensitive wildcard search over column names across every table.",
		Params: []ParamSpec{
			pathParam,
			{Name: "pattern", Type: TypeString, Required: true},
		},
		handler: func(ctx context.Context, eng *explorer.Engine, args Args) (any, error) {
			return eng.SearchColumns(ctx, args.String("database_path"), args.String("pattern"))
		},
	},
	{
		Name:        "get_related_tables",
		Description: "Outgoing and incoming foreign-key relationships of one table.",
		Params: []ParamSpec{
			pathParam,
			{Name: "table_name", Type: TypeString, Required: true},
		},
		handler: func(ctx context.Context, eng *explorer.Engine, args Args) (any, error) {
			return eng.RelatedTables(ctx, args.String("database_path"), args.String("table_name"))
		},
	},
	{
		Name:        "run_query",
		Description: "Execute a read-only SELECT and return all rows.",
		Params: []ParamSpec{
			pathParam,
			{Name: "query", Type: TypeString, Required: true},
		},
		handler: func(ctx context.Context, eng *explorer.Engine, args Args) (any, error) {
			return eng.RunQuery(ctx, args.String("database_path"), args.String("query"))
		},
	},
	{
		Name:        "explain_query",
		Description: "The engine's execution plan for a read-only SELECT.",
		Params: []ParamSpec{
			pathParam,
			{Name: "query", Type: TypeString, Required: true},
		},
		handler: func(ctx context.Context, eng *explorer.Engine, args Args) (any, error) {
			return eng.ExplainQuery(ctx, args.String("database_path"), args.String("query"))
		},
	},
}

// List returns the operation catalog in declaration order.
func List() []Operation {
	return operations
}

// Lookup finds an operation by name.
func Lookup(name string) (Operation, bool) {
	for _, op := range operations {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}

// Dispatch validates a flat parameter object against an operation's
// declared shape and invokes the engine. A missing or non-object parameter
// set is rejected before any connection is attempted.
func Dispatch(ctx context.Context, eng *explorer.Engine, name string, params map[string]any) (any, error) {
	op, ok := Lookup(name)
	if !ok {
		return nil, ErrUnknownOperation
	}

	args, err := validateArgs(op, params)
	if err != nil {
		return nil, err
	}

	return op.handler(ctx, eng, args)
}
