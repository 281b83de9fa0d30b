// Package repo contains all database access logic for the trip enrollment API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here: only SQL, type mapping and the existence and
// state checks that must run inside the same transaction as a mutation.
package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test. Begin on a
// pgx.Tx opens a savepoint, so repos that need their own transaction still
// work inside a test transaction.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// SQLSTATE codes the repos translate into domain errors.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// pgErrorCode returns the SQLSTATE of the first *pgconn.PgError in err's chain,
// or "" when err did not come from the server.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// clientExists reports whether a Client row with the given id exists.
func clientExists(ctx context.Context, q db, id int) (bool, error) {
	const sql = `SELECT EXISTS (SELECT 1 FROM Client WHERE IdClient = @id)`

	var ok bool
	if err := q.QueryRow(ctx, sql, pgx.NamedArgs{"id": id}).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// tripExists reports whether a Trip row with the given id exists.
func tripExists(ctx context.Context, q db, id int) (bool, error) {
	const sql = `SELECT EXISTS (SELECT 1 FROM Trip WHERE IdTrip = @id)`

	var ok bool
	if err := q.QueryRow(ctx, sql, pgx.NamedArgs{"id": id}).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
