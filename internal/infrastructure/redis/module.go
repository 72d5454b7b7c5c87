package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config — подключение и параметры кэша. Переменные: CALCULATOR_REDIS_*.
type Config struct {
	Host        string        `envconfig:"HOST" default:"localhost"`
	Port        string        `envconfig:"PORT" default:"6379"`
	Password    string        `envconfig:"PASSWORD" default:""`
	DB          int           `envconfig:"DB" default:"0"`
	PoolSize    int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout time.Duration `envconfig:"DIAL_TIMEOUT" default:"3s"`
	TTL         time.Duration `envconfig:"TTL" default:"24h"` // 0 — ключи без срока жизни
	Prefix      string        `envconfig:"PREFIX" default:"calc:"`
}

func (c *Config) options() *redis.Options {
	return &redis.Options{
		Addr:        net.JoinHostPort(c.Host, c.Port),
		Password:    c.Password,
		DB:          c.DB,
		PoolSize:    c.PoolSize,
		DialTimeout: c.DialTimeout,
	}
}

// Client — redis.Client с проверенным соединением.
type Client struct {
	*redis.Client
}

// New подключается к Redis и пингует его.
func New(ctx context.Context, cfg *Config) (*Client, error) {
	cli := redis.NewClient(cfg.options())
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cli.Options().Addr, err)
	}
	return &Client{Client: cli}, nil
}
