// Package store is the persistence client shared by the form handlers.
//
// A Client inserts one row into a named table of the hosted database.
// It is constructed once at startup from configuration and injected into
// the repositories, so handlers can be tested against a substitute store.
//
// Two implementations exist:
//   - PostgREST: the hosted Supabase REST API, configured with the project
//     URL and public API key.
//   - Postgres: a direct pgx connection pool to the same database.
//
// Both report database failures as *sqlerr.Error so callers classify
// errors (e.g. a uniqueness violation) without knowing the backend.
// Neither retries: an insert is a single attempt.
package store

import "context"

// Row is a flat record that can be inserted.
// Columns and Values must have the same length and order.
type Row interface {
	Columns() []string
	Values() []any
}

// Client is a handle to the remote store. Implementations are safe for
// concurrent use.
type Client interface {
	// Insert writes row into table.
	Insert(ctx context.Context, table string, row Row) error

	// Ping verifies the store is reachable; used by health checks.
	Ping(ctx context.Context) error
}

// rowMap turns a Row into a column -> value map.
func rowMap(row Row) map[string]any {
	columns := row.Columns()
	values := row.Values()

	m := make(map[string]any, len(columns))
	for i, column := range columns {
		if i < len(values) {
			m[column] = values[i]
		}
	}
	return m
}
