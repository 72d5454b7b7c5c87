package ports

//go:generate mockgen -source=repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"calcHistory/internal/domain"
)

// IHistoryRepository — контракт сохранения и чтения истории расчётов.
// SaveHistory заменяет сохранённую историю переданным снимком целиком.
type IHistoryRepository interface {
	SaveHistory(ctx context.Context, history []domain.Calculation) error
	LoadHistory(ctx context.Context) ([]domain.Calculation, error)
	Ping(ctx context.Context) error
}
