package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config — настройки логгера. Переменные: CALCULATOR_LOG_LEVEL, CALCULATOR_LOG_FORMAT, CALCULATOR_LOG_FILE.
type Config struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"text"`   // text | json
	File   string `envconfig:"FILE" default:"app.log"` // пусто — только stderr
}

// New возвращает логгер по конфигу: вывод в файл и stderr.
func New(cfg Config) *slog.Logger {
	return newLogger(output(cfg.File), cfg.Format, ParseLevel(cfg.Level))
}

// output открывает файл на дозапись. Если файл не задан или не открылся, пишем только в stderr.
func output(path string) io.Writer {
	if path == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return os.Stderr
	}
	return io.MultiWriter(f, os.Stderr)
}

func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel переводит строку из конфига в slog.Level. Неизвестное значение — Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
