package click

import (
	"context"
	"fmt"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

const analyticsTable = "calculations_analytics"

var (
	_ ports.IOperationAnalytics = (*CalculationWriter)(nil)
	_ ports.IAnalyticsReader    = (*CalculationWriter)(nil)
)

// CalculationWriter пишет события расчётов в ClickHouse и отдаёт агрегаты по операциям.
type CalculationWriter struct {
	c     *Client
	table string
}

// NewCalculationWriter работает с таблицей calculations_analytics в базе database.
func NewCalculationWriter(c *Client, database string) *CalculationWriter {
	if database == "" {
		database = "default"
	}
	return &CalculationWriter{c: c, table: database + "." + analyticsTable}
}

// EnsureTable создаёт таблицу, если её нет. ReplacingMergeTree по id схлопывает повторные доставки из Kafka.
func (w *CalculationWriter) EnsureTable(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS ` + w.table + ` (
			id UUID,
			operation LowCardinality(String),
			operand1 Float64,
			operand2 Float64,
			result Float64,
			created_at DateTime64(3)
		) ENGINE = ReplacingMergeTree()
		PARTITION BY toYYYYMM(created_at)
		ORDER BY (operation, id)`
	if _, err := w.c.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create %s: %w", w.table, err)
	}
	return nil
}

// WriteCalculation вставляет одно событие.
func (w *CalculationWriter) WriteCalculation(ctx context.Context, calc domain.Calculation) error {
	_, err := w.c.db.ExecContext(ctx,
		"INSERT INTO "+w.table+" (id, operation, operand1, operand2, result, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		calc.ID, calc.Operation, calc.Operand1, calc.Operand2, calc.Result, calc.Timestamp)
	if err != nil {
		return fmt.Errorf("insert calculation %s: %w", calc.ID, err)
	}
	return nil
}

// Stats — число расчётов и средний результат по каждой операции, самые частые первыми.
func (w *CalculationWriter) Stats(ctx context.Context) ([]domain.OperationStat, error) {
	rows, err := w.c.db.QueryContext(ctx,
		"SELECT operation, count() AS cnt, avg(result) FROM "+w.table+" FINAL GROUP BY operation ORDER BY cnt DESC, operation")
	if err != nil {
		return nil, fmt.Errorf("select stats: %w", err)
	}
	defer rows.Close()

	var out []domain.OperationStat
	for rows.Next() {
		var s domain.OperationStat
		if err := rows.Scan(&s.Operation, &s.Count, &s.AvgResult); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
