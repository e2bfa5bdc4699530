package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query surface shared by *pgxpool.Pool, *pgxpool.Conn and pgxmock
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type connCtxKey struct{}

// WithConn returns a context carrying a connection scoped to one request
func WithConn(ctx context.Context, conn DBTX) context.Context {
	return context.WithValue(ctx, connCtxKey{}, conn)
}

// ConnFromContext returns the request scoped connection, if any
func ConnFromContext(ctx context.Context) (DBTX, bool) {
	conn, ok := ctx.Value(connCtxKey{}).(DBTX)
	return conn, ok && conn != nil
}
