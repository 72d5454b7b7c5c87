package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Config — подключение к MongoDB. Переменные: CALCULATOR_MONGO_URI, CALCULATOR_MONGO_DATABASE и т.д.
type Config struct {
	URI            string        `envconfig:"URI" default:"mongodb://localhost:27017"`
	Database       string        `envconfig:"DATABASE" default:"calchistory"`
	Collection     string        `envconfig:"COLLECTION" default:"calculations"`
	ConnectTimeout time.Duration `envconfig:"CONNECT_TIMEOUT" default:"10s"`
}

// Client — mongo.Client, привязанный к коллекции истории.
type Client struct {
	*mongo.Client
	coll *mongo.Collection
}

// New подключается, пингует сервер и создаёт индекс по created_at.
func New(ctx context.Context, cfg *Config) (*Client, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cli, err := mongo.Connect(options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetAppName("calchistory"))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := cli.Ping(ctx, nil); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	c := &Client{Client: cli, coll: cli.Database(cfg.Database).Collection(cfg.Collection)}
	if err := ensureIndexes(ctx, c.coll); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, err
	}
	return c, nil
}

// ensureIndexes — индекс под сортировку при загрузке истории. Повторное создание ничего не меняет.
func ensureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: 1}},
		Options: options.Index().SetName("created_at_1"),
	})
	if err != nil {
		return fmt.Errorf("mongo index: %w", err)
	}
	return nil
}

// Coll — коллекция истории расчётов.
func (c *Client) Coll() *mongo.Collection {
	return c.coll
}

// Close отключается от сервера.
func (c *Client) Close(ctx context.Context) error {
	return c.Disconnect(ctx)
}
