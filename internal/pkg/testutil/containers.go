// Package testutil поднимает Docker-контейнеры (testcontainers) для интеграционных тестов адаптеров.
//
// Запуск:
//
//	go test ./internal/infrastructure/... -v
//
// Пропуск (только юнит-тесты):
//
//	go test ./... -short
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const startupTimeout = 2 * time.Minute

// SkipIfShort пропускает интеграционный тест в -short режиме.
func SkipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}
}

// Endpoint — адрес проброшенного порта контейнера.
type Endpoint struct {
	Host string
	Port string
}

func endpoint(ctx context.Context, c testcontainers.Container, port nat.Port) (Endpoint, error) {
	host, err := c.Host(ctx)
	if err != nil {
		return Endpoint{}, fmt.Errorf("container host: %w", err)
	}
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		return Endpoint{}, fmt.Errorf("container port %s: %w", port, err)
	}
	return Endpoint{Host: host, Port: mapped.Port()}, nil
}

// terminate останавливает контейнер после теста. nil-контейнер TerminateContainer пропускает.
func terminate(t *testing.T, c testcontainers.Container) {
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(c); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})
}

// PostgresContainer — параметры подключения к тестовому PostgreSQL.
type PostgresContainer struct {
	Endpoint
	User     string
	Password string
	DBName   string
}

// StartPostgres поднимает PostgreSQL и останавливает его по завершении теста.
func StartPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	const (
		user     = "test"
		password = "test"
		dbName   = "testdb"
	)
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	c, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	terminate(t, c)
	if err != nil {
		t.Fatalf("postgres container: %v", err)
	}
	ep, err := endpoint(ctx, c, "5432")
	if err != nil {
		t.Fatalf("postgres: %v", err)
	}
	return &PostgresContainer{Endpoint: ep, User: user, Password: password, DBName: dbName}
}

// StartRedis поднимает Redis.
func StartRedis(t *testing.T) Endpoint {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	c, err := redis.Run(ctx,
		"redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30*time.Second),
		),
	)
	terminate(t, c)
	if err != nil {
		t.Fatalf("redis container: %v", err)
	}
	ep, err := endpoint(ctx, c, "6379")
	if err != nil {
		t.Fatalf("redis: %v", err)
	}
	return ep
}

// StartMongo поднимает MongoDB и возвращает URI для mongo-driver.
func StartMongo(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	c, err := mongodb.Run(ctx,
		"mongo:7",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Waiting for connections").
				WithStartupTimeout(60*time.Second),
		),
	)
	terminate(t, c)
	if err != nil {
		t.Fatalf("mongo container: %v", err)
	}
	ep, err := endpoint(ctx, c, "27017")
	if err != nil {
		t.Fatalf("mongo: %v", err)
	}
	return fmt.Sprintf("mongodb://%s:%s", ep.Host, ep.Port)
}

// ClickHouseContainer — параметры подключения к тестовому ClickHouse (нативный порт).
type ClickHouseContainer struct {
	Endpoint
	User     string
	Password string
	Database string
}

// StartClickHouse поднимает ClickHouse.
func StartClickHouse(t *testing.T) *ClickHouseContainer {
	t.Helper()
	const (
		user     = "default"
		password = "test"
		database = "default"
	)
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	c, err := clickhouse.Run(ctx,
		"clickhouse/clickhouse-server:24-alpine",
		clickhouse.WithUsername(user),
		clickhouse.WithPassword(password),
		clickhouse.WithDatabase(database),
	)
	terminate(t, c)
	if err != nil {
		t.Fatalf("clickhouse container: %v", err)
	}
	ep, err := endpoint(ctx, c, "9000")
	if err != nil {
		t.Fatalf("clickhouse: %v", err)
	}
	return &ClickHouseContainer{Endpoint: ep, User: user, Password: password, Database: database}
}
