package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

// Consumer читает топик расчётов в consumer group и передаёт события обработчику.
type Consumer struct {
	r       *kafka.Reader
	handler ports.ICalculationEventHandler
	log     *slog.Logger
}

// NewConsumer создаёт консьюмера по конфигу, обработчику и логгеру. После использования вызови Close().
func NewConsumer(cfg *Config, handler ports.ICalculationEventHandler, log *slog.Logger) *Consumer {
	if cfg == nil {
		cfg = &Config{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Consumer{r: cfg.reader(), handler: handler, log: log}
}

// Run читает сообщения до отмены ctx или ошибки чтения. Offset коммитится только после успешной обработки.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped", "error", err)
			return err
		}

		if err := c.handle(ctx, msg); err != nil {
			c.log.Warn("kafka handle failed", "error", err, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
			continue
		}

		if err := c.r.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped (commit)", "error", err)
			return err
		}
	}
}

// handle декодирует одно сообщение. Битые сообщения пропускаются (nil), чтобы не блокировать партицию.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) error {
	var calc domain.Calculation
	if err := json.Unmarshal(msg.Value, &calc); err != nil {
		c.log.Warn("kafka unmarshal error, skip", "error", err, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
		return nil
	}
	return c.handler.HandleCalculationEvent(ctx, calc)
}

// Close закрывает консьюмера.
func (c *Consumer) Close() error {
	return c.r.Close()
}
