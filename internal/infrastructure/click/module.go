package click

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// Config — подключение к ClickHouse по нативному протоколу. Переменные: CALCULATOR_CLICKHOUSE_*.
type Config struct {
	Enabled      bool          `envconfig:"ENABLED" default:"false"`
	Host         string        `envconfig:"HOST" default:"localhost"`
	Port         string        `envconfig:"PORT" default:"9000"`
	Database     string        `envconfig:"DATABASE" default:"default"`
	Username     string        `envconfig:"USERNAME" default:"default"`
	Password     string        `envconfig:"PASSWORD" default:""`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	MaxOpenConns int           `envconfig:"MAX_OPEN_CONNS" default:"5"`
}

func (c *Config) options() *clickhouse.Options {
	return &clickhouse.Options{
		Addr: []string{c.Host + ":" + c.Port},
		Auth: clickhouse.Auth{
			Database: c.Database,
			Username: c.Username,
			Password: c.Password,
		},
		DialTimeout: c.DialTimeout,
		Compression: &clickhouse.Compression{Method: clickhouse.CompressionLZ4},
		Settings:    clickhouse.Settings{"max_execution_time": 30},
	}
}

// Client держит пул соединений database/sql поверх драйвера clickhouse.
type Client struct {
	db *sql.DB
}

// New открывает пул и пингует сервер. Закрывается через Close.
func New(ctx context.Context, cfg *Config) (*Client, error) {
	db := clickhouse.OpenDB(cfg.options())
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout+time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("clickhouse ping %s:%s: %w", cfg.Host, cfg.Port, err)
	}
	return &Client{db: db}, nil
}

// Close закрывает пул.
func (c *Client) Close() error {
	return c.db.Close()
}

// Ping нужен для readiness.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
