package ports

//go:generate mockgen -source=analytics.go -destination=../mocks/analytics_mock.go -package=mocks

import (
	"context"

	"calcHistory/internal/domain"
)

// IOperationAnalytics — запись расчётов в хранилище для аналитики (например, ClickHouse).
type IOperationAnalytics interface {
	WriteCalculation(ctx context.Context, calc domain.Calculation) error
}

// IAnalyticsReader — агрегаты по сохранённым событиям.
type IAnalyticsReader interface {
	Stats(ctx context.Context) ([]domain.OperationStat, error)
}
