package ports

//go:generate mockgen -source=observer.go -destination=../mocks/observer_mock.go -package=mocks

import (
	"context"

	"calcHistory/internal/domain"
)

// IHistoryObserver — наблюдатель, которого калькулятор уведомляет после каждого расчёта.
// Новое поведение (метрики, алерты) добавляется новой реализацией, существующие не трогаем.
// Реализации возвращают ошибку с domain.ErrNilCalculation, если calc == nil.
type IHistoryObserver interface {
	Update(ctx context.Context, calc *domain.Calculation) error
}

// IAutoSaveHost — то, что нужно авто-сохранению от калькулятора: живой конфиг и сохранение истории.
type IAutoSaveHost interface {
	Config() domain.CalculatorConfig
	SaveHistory(ctx context.Context) error
}
