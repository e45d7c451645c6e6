// Package sqlc binds the statements in queries/*.sql to Go. The bindings are
// maintained by hand in sqlc's layout; sqlc.yaml at the module root lets
// `sqlc compile` and `sqlc vet` check the statements against the migrations.
package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

func New() *Queries {
	return &Queries{}
}

// Queries holds no connection; every method takes the DBTX to run on.
type Queries struct{}
