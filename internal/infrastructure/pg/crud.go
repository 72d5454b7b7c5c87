package pg

import (
	"context"
	"fmt"
	"log/slog"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

var _ ports.IHistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo реализует ports.IHistoryRepository для PostgreSQL.
type HistoryRepo struct {
	db  *DB
	log *slog.Logger
}

// NewHistoryRepo возвращает репозиторий истории.
func NewHistoryRepo(db *DB, log *slog.Logger) *HistoryRepo {
	return &HistoryRepo{db: db, log: log}
}

// SaveHistory заменяет сохранённую историю снимком в одной транзакции.
func (r *HistoryRepo) SaveHistory(ctx context.Context, history []domain.Calculation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // после Commit — no-op

	if _, err := tx.ExecContext(ctx, `DELETE FROM calculations`); err != nil {
		r.log.Debug("SaveHistory delete failed", "error", err)
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO calculations (id, operation, operand1, operand2, result, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range history {
		if _, err := stmt.ExecContext(ctx, c.ID, c.Operation, c.Operand1, c.Operand2, c.Result, c.Timestamp); err != nil {
			r.log.Debug("SaveHistory insert failed", "id", c.ID, "error", err)
			return err
		}
	}
	return tx.Commit()
}

// LoadHistory возвращает сохранённую историю (старые записи первыми).
func (r *HistoryRepo) LoadHistory(ctx context.Context) ([]domain.Calculation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, operation, operand1, operand2, result, created_at
		 FROM calculations ORDER BY created_at ASC, id ASC`)
	if err != nil {
		r.log.Debug("LoadHistory failed", "error", err)
		return nil, err
	}
	defer rows.Close()
	var list []domain.Calculation
	for rows.Next() {
		var c domain.Calculation
		if err := rows.Scan(&c.ID, &c.Operation, &c.Operand1, &c.Operand2, &c.Result, &c.Timestamp); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Ping проверяет доступность БД (readiness).
func (r *HistoryRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
