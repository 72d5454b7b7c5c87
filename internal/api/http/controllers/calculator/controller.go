package calculator

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

// Controller — маршруты калькулятора: calculate, история.
type Controller struct {
	uc  ports.ICalculatorUseCase
	log *slog.Logger
}

// New создаёт контроллер калькулятора.
func New(uc ports.ICalculatorUseCase, log *slog.Logger) *Controller {
	return &Controller{uc: uc, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	api.POST("/calculate", c.calculate)
	api.GET("/history", c.history)
	api.DELETE("/history", c.clearHistory)
	api.POST("/history/save", c.saveHistory)
	api.POST("/history/load", c.loadHistory)
}

// isInputError — ошибки, которые клиент может исправить сам (400).
func isInputError(err error) bool {
	return errors.Is(err, domain.ErrUnknownOperation) ||
		errors.Is(err, domain.ErrDivisionByZero) ||
		errors.Is(err, domain.ErrInvalidRoot) ||
		errors.Is(err, domain.ErrInputTooLarge) ||
		errors.Is(err, domain.ErrResultOverflow)
}

// @Summary Выполнить вычисление
// @Description Принимает операцию (add, subtract, multiply, divide, power, root или + - * / ^) и два операнда. Наблюдатели уведомляются после расчёта.
// @Tags calculator
// @Accept json
// @Produce json
// @Param request body CalculateRequest true "Параметры вычисления"
// @Success 200 {object} CalculateResponse "Результат вычисления"
// @Failure 400 {object} CalculateResponse "Невалидный запрос или неизвестная операция"
// @Failure 500 {object} CalculateResponse "Внутренняя ошибка сервера"
// @Router /api/v1/calculate [post]
func (c *Controller) calculate(ctx *gin.Context) {
	var req CalculateRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.log.Warn("calculate bind failed", "error", err)
		ctx.JSON(http.StatusBadRequest, CalculateResponse{Message: "invalid request: " + err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.log.Warn("calculate validation failed", "error", err)
		ctx.JSON(http.StatusBadRequest, CalculateResponse{Message: err.Error()})
		return
	}

	calc, err := c.uc.Calculate(ctx.Request.Context(), req.Operation, *req.Operand1, *req.Operand2)
	if err != nil {
		if isInputError(err) {
			c.log.Warn("calculate rejected", "error", err)
			ctx.JSON(http.StatusBadRequest, CalculateResponse{Message: err.Error()})
			return
		}
		c.log.Error("calculate failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, CalculateResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, CalculateResponse{ID: calc.ID.String(), Result: calc.Result, Message: calc.String()})
}

// @Summary Получить историю расчётов
// @Tags calculator
// @Produce json
// @Success 200 {object} HistoryResponse "Список расчётов, старые первыми"
// @Router /api/v1/history [get]
func (c *Controller) history(ctx *gin.Context) {
	list := c.uc.History()
	items := make([]HistoryItem, len(list))
	for i, calc := range list {
		items[i] = toHistoryItem(calc)
	}
	ctx.JSON(http.StatusOK, HistoryResponse{Items: items})
}

func (c *Controller) clearHistory(ctx *gin.Context) {
	c.uc.ClearHistory()
	ctx.JSON(http.StatusOK, StatusResponse{Status: "cleared"})
}

func (c *Controller) saveHistory(ctx *gin.Context) {
	if err := c.uc.SaveHistory(ctx.Request.Context()); err != nil {
		c.log.Error("save history failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, StatusResponse{Status: "saved", Count: len(c.uc.History())})
}

func (c *Controller) loadHistory(ctx *gin.Context) {
	if err := c.uc.LoadHistory(ctx.Request.Context()); err != nil {
		c.log.Error("load history failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, StatusResponse{Status: "loaded", Count: len(c.uc.History())})
}
