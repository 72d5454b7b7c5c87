package stats

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

// Controller отдаёт агрегаты аналитики по операциям.
type Controller struct {
	reader ports.IAnalyticsReader
	log    *slog.Logger
}

// New создаёт контроллер над хранилищем аналитики.
func New(reader ports.IAnalyticsReader, log *slog.Logger) *Controller {
	return &Controller{reader: reader, log: log}
}

// StatsResponse — тело ответа GET /api/v1/stats.
type StatsResponse struct {
	Operations []domain.OperationStat `json:"operations"`
}

// RegisterRoutes реализует http.Controller.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/v1/stats", c.list)
}

func (c *Controller) list(ctx *gin.Context) {
	stats, err := c.reader.Stats(ctx.Request.Context())
	if err != nil {
		c.log.Error("stats query failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "analytics unavailable"})
		return
	}
	if stats == nil {
		stats = []domain.OperationStat{}
	}
	ctx.JSON(http.StatusOK, StatsResponse{Operations: stats})
}
