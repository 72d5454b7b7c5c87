package history

import (
	"context"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

var _ ports.IHistoryObserver = (*CacheObserver)(nil)

// CacheObserver кладёт результат расчёта в кэш, чтобы повторный такой же расчёт не считался заново.
type CacheObserver struct {
	cache ports.ICache
}

// NewCacheObserver создаёт наблюдателя над кэшем.
func NewCacheObserver(cache ports.ICache) *CacheObserver {
	return &CacheObserver{cache: cache}
}

// Update сохраняет результат по ключу CacheKey.
func (o *CacheObserver) Update(ctx context.Context, calc *domain.Calculation) error {
	if err := checkCalculation(calc); err != nil {
		return err
	}
	return o.cache.Set(ctx, CacheKey(calc.Operation, calc.Operand1, calc.Operand2), calc.Result)
}

// CacheKey формирует читаемый ключ операции для кэша, например "1 add 1".
func CacheKey(operation string, operand1, operand2 float64) string {
	return domain.FormatNumber(operand1) + " " + operation + " " + domain.FormatNumber(operand2)
}
