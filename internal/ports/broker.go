package ports

//go:generate mockgen -source=broker.go -destination=../mocks/broker_mock.go -package=mocks

import (
	"context"

	"calcHistory/internal/domain"
)

// IProducer — контракт отправки сообщений в брокер (например Kafka). Топик задаётся при создании реализации (конфиг).
type IProducer interface {
	Send(ctx context.Context, key, value []byte) error
}

// ICalculationEventHandler — обработчик событий о расчётах, которые консьюмер читает из топика.
type ICalculationEventHandler interface {
	HandleCalculationEvent(ctx context.Context, calc domain.Calculation) error
}
