package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/velyralabs/landing/internal/sqlerr"
)

// Execer is the subset of *pgxpool.Pool the Postgres client needs.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

// Postgres inserts rows over a direct pgx connection pool.
type Postgres struct {
	db Execer
}

// Ensure Postgres implements Client at compile time.
var _ Client = (*Postgres)(nil)

// NewPostgres creates a client backed by db (usually database.Database.Pool).
func NewPostgres(db Execer) *Postgres {
	return &Postgres{db: db}
}

// Insert runs a parameterized INSERT built from the row's columns.
// Identifiers are quoted with pgx.Identifier; values are always bound.
func (p *Postgres) Insert(ctx context.Context, table string, row Row) error {
	query := insertSQL(table, row.Columns())

	if _, err := p.db.Exec(ctx, query, row.Values()...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return fmt.Errorf("insert into %s: %w", table, sqlerr.ConvertPgError(pgErr))
		}
		return fmt.Errorf("insert into %s: %w", table, err)
	}

	return nil
}

// Ping checks the pool can reach the database.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

func insertSQL(table string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = pgx.Identifier{column}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{table}.Sanitize(),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)
}
