package calculator

import (
	"fmt"
	"time"

	"calcHistory/internal/domain"
)

// CalculateRequest — запрос на вычисление (для POST /api/v1/calculate).
// Операнды — указатели, чтобы 0 не считался отсутствующим значением.
type CalculateRequest struct {
	Operation string   `json:"operation" binding:"required"`
	Operand1  *float64 `json:"operand1" binding:"required"`
	Operand2  *float64 `json:"operand2" binding:"required"`
}

// Validate проверяет, что операция известна.
func (r CalculateRequest) Validate() error {
	if _, err := domain.ParseOperation(r.Operation); err != nil {
		return fmt.Errorf("%w: %s", err, r.Operation)
	}
	return nil
}

// CalculateResponse — ответ с результатом.
type CalculateResponse struct {
	ID      string  `json:"id,omitempty"`
	Result  float64 `json:"result"`
	Message string  `json:"message,omitempty"`
}

// HistoryItem — одна запись в истории (для GET /api/v1/history).
type HistoryItem struct {
	ID        string    `json:"id"`
	Operation string    `json:"operation"`
	Operand1  float64   `json:"operand1"`
	Operand2  float64   `json:"operand2"`
	Result    float64   `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryResponse — ответ со списком расчётов.
type HistoryResponse struct {
	Items []HistoryItem `json:"items"`
}

// StatusResponse — ответ на действия с историей (save, load, clear).
type StatusResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ErrorResponse — ответ с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

func toHistoryItem(c domain.Calculation) HistoryItem {
	return HistoryItem{
		ID:        c.ID.String(),
		Operation: c.Operation,
		Operand1:  c.Operand1,
		Operand2:  c.Operand2,
		Result:    c.Result,
		Timestamp: c.Timestamp,
	}
}
