package calculator

import (
	"context"
	"fmt"
	"math"
	"slices"

	"calcHistory/internal/domain"
	"calcHistory/internal/usecase/history"
)

// Calculate — проверяет кэш; при промахе считает; добавляет запись в историю и уведомляет наблюдателей.
// Первая ошибка наблюдателя прерывает уведомление и возвращается как есть.
func (u *UseCase) Calculate(ctx context.Context, operation string, operand1, operand2 float64) (*domain.Calculation, error) {
	op, err := domain.ParseOperation(operation)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, operation)
	}

	cfg := u.Config()
	if limit := cfg.MaxInputValue; limit > 0 && (math.Abs(operand1) > limit || math.Abs(operand2) > limit) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInputTooLarge, domain.FormatNumber(limit))
	}

	result, err := u.compute(ctx, op, operand1, operand2)
	if err != nil {
		return nil, err
	}

	calc := domain.NewCalculation(op, operand1, operand2, result)

	u.mu.Lock()
	u.history = trim(append(u.history, calc), u.cfg.MaxHistorySize)
	observers := slices.Clone(u.observers)
	u.mu.Unlock()

	for _, obs := range observers {
		if err := obs.Update(ctx, &calc); err != nil {
			u.log.Warn("observer failed", "id", calc.ID, "error", err)
			return nil, err
		}
	}
	return &calc, nil
}

// compute берёт результат из кэша; при промахе, ошибке кэша или нечисловом значении в нём считает сам.
func (u *UseCase) compute(ctx context.Context, op string, a, b float64) (float64, error) {
	key := history.CacheKey(op, a, b)
	if u.cache != nil {
		cached, found, err := u.cache.Get(ctx, key)
		if err != nil {
			u.log.Warn("cache get", "key", key, "error", err)
		} else if found && isFinite(cached) {
			u.log.Debug("cache hit", "key", key)
			return cached, nil
		}
	}
	return apply(op, a, b)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// apply выполняет арифметику. Результат ±Inf или NaN — ошибка ErrResultOverflow.
func apply(op string, a, b float64) (float64, error) {
	r, err := arithmetic(op, a, b)
	if err != nil {
		return 0, err
	}
	if !isFinite(r) {
		return 0, fmt.Errorf("%w: %s (%s, %s)", domain.ErrResultOverflow, op, domain.FormatNumber(a), domain.FormatNumber(b))
	}
	return r, nil
}

func arithmetic(op string, a, b float64) (float64, error) {
	switch op {
	case domain.OpAdd:
		return a + b, nil
	case domain.OpSubtract:
		return a - b, nil
	case domain.OpMultiply:
		return a * b, nil
	case domain.OpDivide:
		if b == 0 {
			return 0, domain.ErrDivisionByZero
		}
		return a / b, nil
	case domain.OpPower:
		return math.Pow(a, b), nil
	case domain.OpRoot:
		if b == 0 {
			return 0, fmt.Errorf("%w: zero degree", domain.ErrInvalidRoot)
		}
		if a < 0 {
			if b != math.Trunc(b) || math.Mod(b, 2) == 0 {
				return 0, fmt.Errorf("%w: negative radicand", domain.ErrInvalidRoot)
			}
			return -math.Pow(-a, 1/b), nil
		}
		return math.Pow(a, 1/b), nil
	}
	return 0, fmt.Errorf("%w: %s", domain.ErrUnknownOperation, op)
}

// History — копия истории в памяти (старые записи первыми).
func (u *UseCase) History() []domain.Calculation {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return slices.Clone(u.history)
}

// ClearHistory очищает историю в памяти. Сохранённую историю не трогает.
func (u *UseCase) ClearHistory() {
	u.mu.Lock()
	u.history = nil
	u.mu.Unlock()
	u.log.Info("history cleared")
}

// SaveHistory сохраняет снимок истории в репозиторий (реализует ports.IAutoSaveHost).
func (u *UseCase) SaveHistory(ctx context.Context) error {
	snapshot := u.History()
	if err := u.repo.SaveHistory(ctx, snapshot); err != nil {
		return err
	}
	u.log.Info("history saved", "count", len(snapshot))
	return nil
}

// LoadHistory заменяет историю в памяти сохранённой.
func (u *UseCase) LoadHistory(ctx context.Context) error {
	loaded, err := u.repo.LoadHistory(ctx)
	if err != nil {
		return err
	}
	u.mu.Lock()
	u.history = trim(loaded, u.cfg.MaxHistorySize)
	count := len(u.history)
	u.mu.Unlock()
	u.log.Info("history loaded", "count", count)
	return nil
}

// HandleCalculationEvent вызывается консьюмером при получении сообщения из топика расчётов.
func (u *UseCase) HandleCalculationEvent(ctx context.Context, calc domain.Calculation) error {
	if u.analytics == nil {
		return nil
	}
	if err := u.analytics.WriteCalculation(ctx, calc); err != nil {
		u.log.Warn("analytics write", "error", err)
		return err
	}
	u.log.Info("calculation stored to click", "id", calc.ID, "operation", calc.Operation, "result", calc.Result)
	return nil
}
