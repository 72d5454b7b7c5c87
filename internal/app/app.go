package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	apihttp "calcHistory/internal/api/http"
	"calcHistory/internal/api/http/controllers/calculator"
	"calcHistory/internal/api/http/controllers/config"
	statsctl "calcHistory/internal/api/http/controllers/stats"
	"calcHistory/internal/api/http/controllers/system"
	"calcHistory/internal/infrastructure/click"
	"calcHistory/internal/infrastructure/kafka"
	"calcHistory/internal/infrastructure/mongo"
	"calcHistory/internal/infrastructure/pg"
	"calcHistory/internal/infrastructure/redis"
	"calcHistory/internal/infrastructure/settings"
	"calcHistory/internal/pkg/logger"
	"calcHistory/internal/ports"
	calcUsecase "calcHistory/internal/usecase/calculator"
	"calcHistory/internal/usecase/history"
)

// App — приложение, хранит конфиг и функции закрытия поднятых зависимостей.
type App struct {
	cfg     Config
	log     *slog.Logger
	closers []func()
}

// New создаёт приложение с конфигом (подключения поднимаются в Run).
func New(cfg Config) *App {
	return &App{cfg: cfg}
}

func (a *App) onClose(f func()) {
	a.closers = append(a.closers, f)
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Run поднимает хранилище истории, кэш, брокер и аналитику, регистрирует наблюдателей
// и запускает HTTP-сервер (блокирующий вызов до SIGINT/SIGTERM).
func (a *App) Run() error {
	a.log = logger.New(a.cfg.Log)
	slog.SetDefault(a.log)
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := a.historyRepo(ctx)
	if err != nil {
		return err
	}
	readiness := map[string]system.Pinger{"history": repo}

	var cache ports.ICache
	if a.cfg.RedisEnabled {
		rdb, err := redis.New(ctx, &a.cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		a.onClose(func() { _ = rdb.Close() })
		c := redis.NewCache(rdb, &a.cfg.Redis, a.log)
		cache = c
		readiness["cache"] = c
	}

	var (
		analytics ports.IOperationAnalytics
		stats     *click.CalculationWriter
	)
	if a.cfg.ClickHouse.Enabled {
		ch, err := click.New(ctx, &a.cfg.ClickHouse)
		if err != nil {
			return fmt.Errorf("clickhouse: %w", err)
		}
		a.onClose(func() { _ = ch.Close() })
		w := click.NewCalculationWriter(ch, a.cfg.ClickHouse.Database)
		if err := w.EnsureTable(ctx); err != nil {
			return fmt.Errorf("clickhouse table: %w", err)
		}
		analytics, stats = w, w
		readiness["analytics"] = ch
	}

	uc := calcUsecase.New(repo, cache, analytics, a.cfg.Calc, a.log)
	if err := uc.LoadHistory(ctx); err != nil {
		a.log.Warn("history load failed, start empty", "error", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := a.registerObservers(uc, cache, reg); err != nil {
		return err
	}

	if a.cfg.Kafka.Enabled && analytics != nil {
		consumer := kafka.NewConsumer(&a.cfg.Kafka, uc, a.log)
		a.onClose(func() { _ = consumer.Close() })
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.log.Error("kafka consumer failed", "error", err)
			}
		}()
	}

	if a.cfg.SettingsFile != "" {
		w, err := settings.NewWatcher(a.cfg.SettingsFile, uc, a.log)
		if err != nil {
			return fmt.Errorf("settings: %w", err)
		}
		if err := w.Apply(); err != nil {
			a.log.Warn("settings file not applied", "error", err)
		}
		go func() {
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.log.Error("settings watcher failed", "error", err)
			}
		}()
	}

	srv := apihttp.NewServer(a.cfg.Server, reg)
	srv.AddController(
		system.New(readiness, a.log),
		calculator.New(uc, a.log),
		config.New(uc, a.log))
	if stats != nil {
		srv.AddController(statsctl.New(stats, a.log))
	}

	a.log.Info("application started", "http", a.cfg.Server.Addr(), "history_backend", a.cfg.HistoryBackend)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	// финальное сохранение при остановке
	saveCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := uc.SaveHistory(saveCtx); err != nil {
		a.log.Error("final history save failed", "error", err)
	}
	return nil
}

// historyRepo подключается к хранилищу истории по CALCULATOR_HISTORY_BACKEND.
func (a *App) historyRepo(ctx context.Context) (ports.IHistoryRepository, error) {
	switch a.cfg.HistoryBackend {
	case BackendPostgres:
		db, err := pg.New(ctx, &a.cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("db: %w", err)
		}
		a.onClose(func() { _ = db.Close() })
		if err := pg.Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return pg.NewHistoryRepo(db, a.log), nil
	case BackendMongo:
		client, err := mongo.New(ctx, &a.cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		a.onClose(func() { _ = client.Close(context.Background()) })
		return mongo.NewHistoryRepo(client, a.log), nil
	}
	return nil, fmt.Errorf("unknown history backend %q", a.cfg.HistoryBackend)
}

// registerObservers подписывает наблюдателей в порядке: метрики, логирование, кэш, брокер, авто-сохранение.
func (a *App) registerObservers(uc *calcUsecase.UseCase, cache ports.ICache, reg prometheus.Registerer) error {
	uc.AddObserver(
		history.NewMetricsObserver(reg),
		history.NewLoggingObserver(a.log),
	)
	if cache != nil {
		uc.AddObserver(history.NewCacheObserver(cache))
	}
	if a.cfg.Kafka.Enabled {
		producer := kafka.NewProducer(&a.cfg.Kafka)
		a.onClose(func() { _ = producer.Close() })
		uc.AddObserver(history.NewPublishObserver(producer, a.log))
	}
	autoSave, err := history.NewAutoSaveObserver(uc, a.log)
	if err != nil {
		return fmt.Errorf("auto-save observer: %w", err)
	}
	uc.AddObserver(autoSave)
	return nil
}
