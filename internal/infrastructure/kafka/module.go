package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Config — настройки Kafka. Переменные: CALCULATOR_KAFKA_ENABLED, CALCULATOR_KAFKA_BROKERS, CALCULATOR_KAFKA_TOPIC и т.д.
type Config struct {
	Enabled      bool          `envconfig:"ENABLED" default:"false"`
	Brokers      string        `envconfig:"BROKERS" default:"localhost:9092"` // через запятую, если несколько
	Topic        string        `envconfig:"TOPIC" default:"calculations"`
	GroupID      string        `envconfig:"GROUP_ID" default:"calchistory-analytics"`
	BatchTimeout time.Duration `envconfig:"BATCH_TIMEOUT" default:"50ms"`
	RequiredAcks int           `envconfig:"REQUIRED_ACKS" default:"1"`      // -1 все реплики, 0 без подтверждения, 1 лидер
	StartOffset  string        `envconfig:"START_OFFSET" default:"first"` // first | last, для новой consumer group
}

const defaultBroker = "localhost:9092"

// brokersSlice разбирает список брокеров, пустые элементы отбрасываются.
func (c *Config) brokersSlice() []string {
	if c == nil || c.Brokers == "" {
		return []string{defaultBroker}
	}
	var out []string
	for _, p := range strings.Split(c.Brokers, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{defaultBroker}
	}
	return out
}

func (c *Config) startOffset() int64 {
	if strings.EqualFold(c.StartOffset, "last") {
		return kafka.LastOffset
	}
	return kafka.FirstOffset
}

// writer собирает kafka.Writer. Hash-балансер кладёт сообщения с одним ключом в одну партицию.
func (c *Config) writer() *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.brokersSlice()...),
		Topic:                  c.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           c.BatchTimeout,
		RequiredAcks:           kafka.RequiredAcks(c.RequiredAcks),
		AllowAutoTopicCreation: true,
	}
}

func (c *Config) reader() *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     c.brokersSlice(),
		Topic:       c.Topic,
		GroupID:     c.GroupID,
		StartOffset: c.startOffset(),
		MaxBytes:    1 << 20,
	})
}
