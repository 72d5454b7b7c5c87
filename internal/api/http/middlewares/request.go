package middlewares

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader — заголовок с идентификатором запроса. Пришедший от клиента сохраняется.
const RequestIDHeader = "X-Request-ID"

// RequestLogger проставляет X-Request-ID и пишет одну запись на запрос.
// Уровень по статусу: 5xx — error, 4xx — warn, остальное — info.
func RequestLogger(c *gin.Context) {
	start := time.Now()
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("request_id", id)
	c.Header(RequestIDHeader, id)

	c.Next()

	status := c.Writer.Status()
	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}
	target := c.Request.URL.Path
	if q := c.Request.URL.RawQuery; q != "" {
		target += "?" + q
	}
	slog.Log(c.Request.Context(), level, "request",
		"request_id", id,
		"method", c.Request.Method,
		"path", target,
		"status", status,
		"ip", c.ClientIP(),
		"latency_ms", time.Since(start).Milliseconds(),
	)
}
