// Package repository handles all interactions with the database.
//
// SQL is built with goqu (postgres dialect, prepared placeholders) and run on
// the pgx pool. Builders are plain functions returning a goqu dataset so their
// SQL can be checked without a database.
//
// QuestionRepository and EventRepository implement query.Store. Their Scoped
// variants push the exact-equality parts of a query.Query (category, type,
// excluded ids) down into the WHERE clause; the core still applies the full
// predicate to whatever comes back, so the result is the same either way.
package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	// Registers the postgres dialect with goqu.
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var dialect = goqu.Dialect("postgres")

// DBTX is the subset of *pgxpool.Pool and pgx.Tx the repositories use.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// TxDB is a DBTX that can also open transactions.
type TxDB interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

type sqlBuilder interface {
	ToSQL() (string, []interface{}, error)
}

func toSQL(b sqlBuilder) (string, []any, error) {
	sql, args, err := b.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("building sql: %w", err)
	}
	return sql, args, nil
}

// selectAll runs b and maps every row onto T by db tag.
func selectAll[T any](ctx context.Context, db DBTX, b sqlBuilder) ([]T, error) {
	sql, args, err := toSQL(b)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

// selectOne runs b and maps exactly one row onto T. No row yields an error
// matching pgx.ErrNoRows.
func selectOne[T any](ctx context.Context, db DBTX, b sqlBuilder) (T, error) {
	var zero T

	sql, args, err := toSQL(b)
	if err != nil {
		return zero, err
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return zero, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
}

// exec runs b and returns the number of affected rows.
func exec(ctx context.Context, db DBTX, b sqlBuilder) (int64, error) {
	sql, args, err := toSQL(b)
	if err != nil {
		return 0, err
	}

	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
