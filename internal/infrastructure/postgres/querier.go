package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier abstrae la fuente de ejecución de SQL: lo satisfacen *pgxpool.Pool,
// pgx.Tx y los mocks de prueba. Los adaptadores reciben esto para poder
// usarse igual dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// beginner lo satisface el pool (y los mocks); las tx no lo exponen con esta
// firma, así que un repo atado a una tx nunca intenta anidar otra.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
