package pg

import (
	"context"
)

const createCalculationsTable = `
CREATE TABLE IF NOT EXISTS calculations (
	id         UUID PRIMARY KEY,
	operation  VARCHAR(16) NOT NULL,
	operand1   DOUBLE PRECISION NOT NULL,
	operand2   DOUBLE PRECISION NOT NULL,
	result     DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Migrate создаёт таблицу calculations, если её ещё нет.
func Migrate(ctx context.Context, db *DB) error {
	_, err := db.ExecContext(ctx, createCalculationsTable)
	return err
}
