package history

import (
	"context"
	"encoding/json"
	"log/slog"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

var _ ports.IHistoryObserver = (*PublishObserver)(nil)

// PublishObserver отправляет каждый расчёт в брокер (JSON, ключ — ID расчёта).
type PublishObserver struct {
	producer ports.IProducer
	log      *slog.Logger
}

// NewPublishObserver создаёт наблюдателя, публикующего расчёты через producer.
func NewPublishObserver(producer ports.IProducer, log *slog.Logger) *PublishObserver {
	if log == nil {
		log = slog.Default()
	}
	return &PublishObserver{producer: producer, log: log}
}

// Update сериализует расчёт и отправляет его. Ошибка брокера возвращается как есть.
func (o *PublishObserver) Update(ctx context.Context, calc *domain.Calculation) error {
	if err := checkCalculation(calc); err != nil {
		return err
	}
	value, err := json.Marshal(calc)
	if err != nil {
		return err
	}
	key := []byte(calc.ID.String())
	if err := o.producer.Send(ctx, key, value); err != nil {
		return err
	}
	o.log.DebugContext(ctx, "calculation published", "id", calc.ID, "operation", calc.Operation)
	return nil
}
