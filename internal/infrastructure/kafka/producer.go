package kafka

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"calcHistory/internal/ports"
)

var _ ports.IProducer = (*Producer)(nil)

// Producer публикует события расчётов в топик.
type Producer struct {
	w *kafka.Writer
}

// NewProducer создаёт продюсера. Соединение с брокером открывается при первой отправке.
func NewProducer(cfg *Config) *Producer {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Producer{w: cfg.writer()}
}

// Send пишет одно JSON-сообщение и ждёт подтверждения по RequiredAcks.
func (p *Producer) Send(ctx context.Context, key, value []byte) error {
	err := p.w.WriteMessages(ctx, kafka.Message{
		Key:     key,
		Value:   value,
		Headers: []kafka.Header{{Key: "content-type", Value: []byte("application/json")}},
	})
	if err != nil {
		return fmt.Errorf("kafka write %s: %w", p.w.Topic, err)
	}
	return nil
}

// Close дожидается отправки буфера и закрывает writer.
func (p *Producer) Close() error {
	return p.w.Close()
}
