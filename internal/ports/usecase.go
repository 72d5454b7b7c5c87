package ports

//go:generate mockgen -source=usecase.go -destination=../mocks/usecase_mock.go -package=mocks

import (
	"context"

	"calcHistory/internal/domain"
)

// ICalculatorUseCase — контракт бизнес-логики калькулятора (расчёт, история, конфиг).
type ICalculatorUseCase interface {
	Calculate(ctx context.Context, operation string, operand1, operand2 float64) (*domain.Calculation, error)
	History() []domain.Calculation
	ClearHistory()
	SaveHistory(ctx context.Context) error
	LoadHistory(ctx context.Context) error
	Config() domain.CalculatorConfig
	SetAutoSave(enabled bool)
}
