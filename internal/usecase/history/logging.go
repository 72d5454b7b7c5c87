package history

import (
	"context"
	"log/slog"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

var _ ports.IHistoryObserver = (*LoggingObserver)(nil)

// LoggingObserver пишет по одной info-записи на каждый расчёт.
type LoggingObserver struct {
	log *slog.Logger
}

// NewLoggingObserver создаёт логирующего наблюдателя. Если log == nil, пишет в slog.Default().
func NewLoggingObserver(log *slog.Logger) *LoggingObserver {
	if log == nil {
		log = slog.Default()
	}
	return &LoggingObserver{log: log}
}

// Update логирует "Calculation performed: add (2, 3) = 5".
func (o *LoggingObserver) Update(ctx context.Context, calc *domain.Calculation) error {
	if err := checkCalculation(calc); err != nil {
		return err
	}
	o.log.InfoContext(ctx, "Calculation performed: "+calc.String(),
		"operation", calc.Operation,
		"operand1", calc.Operand1,
		"operand2", calc.Operand2,
		"result", calc.Result,
	)
	return nil
}
