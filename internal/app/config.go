package app

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"calcHistory/internal/api/http"
	"calcHistory/internal/domain"
	"calcHistory/internal/infrastructure/click"
	"calcHistory/internal/infrastructure/kafka"
	"calcHistory/internal/infrastructure/mongo"
	"calcHistory/internal/infrastructure/pg"
	"calcHistory/internal/infrastructure/redis"
	"calcHistory/internal/pkg/logger"
)

const AppName = "CALCULATOR"

// Хранилища истории.
const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// Config — конфиг приложения. Заполняется через envconfig с префиксом CALCULATOR.
type Config struct {
	Log            logger.Config           `envconfig:"LOG"`
	HistoryBackend string                  `envconfig:"HISTORY_BACKEND" default:"postgres"`
	SettingsFile   string                  `envconfig:"SETTINGS_FILE" default:""` // TOML-переопределения, перечитываются на лету
	RedisEnabled   bool                    `envconfig:"REDIS_ENABLED" default:"true"`
	Calc           domain.CalculatorConfig `envconfig:"CALC"`
	Server         http.ServerConfig       `envconfig:"SERVER"`
	DB             pg.Config               `envconfig:"DB"`
	Mongo          mongo.Config            `envconfig:"MONGO"`
	Redis          redis.Config            `envconfig:"REDIS"`
	Kafka          kafka.Config            `envconfig:"KAFKA"`
	ClickHouse     click.Config            `envconfig:"CLICKHOUSE"`
}

// LoadCfg загружает конфиг: подтягивает .env (godotenv), затем заполняет структуру из окружения (envconfig).
func LoadCfg(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Printf("config: .env не найден, используем окружение: %v", err)
	}

	var cfg Config
	if err := envconfig.Process(AppName, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
