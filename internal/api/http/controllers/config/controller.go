package config

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

// Controller — маршруты живого конфига калькулятора.
type Controller struct {
	uc  ports.ICalculatorUseCase
	log *slog.Logger
}

// New создаёт контроллер конфига.
func New(uc ports.ICalculatorUseCase, log *slog.Logger) *Controller {
	return &Controller{uc: uc, log: log}
}

// ConfigResponse — текущие настройки калькулятора.
type ConfigResponse struct {
	AutoSave       bool    `json:"auto_save"`
	MaxHistorySize int     `json:"max_history_size"`
	MaxInputValue  float64 `json:"max_input_value"`
}

// AutoSaveRequest — тело PUT /api/v1/config/auto-save.
type AutoSaveRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func toResponse(cfg domain.CalculatorConfig) ConfigResponse {
	return ConfigResponse{AutoSave: cfg.AutoSave, MaxHistorySize: cfg.MaxHistorySize, MaxInputValue: cfg.MaxInputValue}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1/config")

	api.GET("", c.get)
	api.PUT("/auto-save", c.setAutoSave)
}

func (c *Controller) get(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, toResponse(c.uc.Config()))
}

func (c *Controller) setAutoSave(ctx *gin.Context) {
	var req AutoSaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.log.Warn("auto-save bind failed", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	c.uc.SetAutoSave(*req.Enabled)
	c.log.Info("auto-save toggled", "enabled", *req.Enabled)
	ctx.JSON(http.StatusOK, toResponse(c.uc.Config()))
}
