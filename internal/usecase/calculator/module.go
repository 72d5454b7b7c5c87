package calculator

import (
	"log/slog"
	"slices"
	"sync"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

var (
	_ ports.ICalculatorUseCase       = (*UseCase)(nil)
	_ ports.IAutoSaveHost            = (*UseCase)(nil)
	_ ports.ICalculationEventHandler = (*UseCase)(nil)
)

// UseCase — бизнес-логика калькулятора: расчёт, история в памяти, наблюдатели, живой конфиг.
// Безопасен для конкурентных вызовов из HTTP-хэндлеров.
type UseCase struct {
	repo      ports.IHistoryRepository
	cache     ports.ICache
	analytics ports.IOperationAnalytics
	log       *slog.Logger

	mu        sync.RWMutex
	cfg       domain.CalculatorConfig
	history   []domain.Calculation
	observers []ports.IHistoryObserver
}

// New создаёт юзкейс калькулятора. cache и analytics могут быть nil.
func New(repo ports.IHistoryRepository, cache ports.ICache, analytics ports.IOperationAnalytics, cfg domain.CalculatorConfig, log *slog.Logger) *UseCase {
	if log == nil {
		log = slog.Default()
	}
	return &UseCase{repo: repo, cache: cache, analytics: analytics, cfg: cfg, log: log}
}

// AddObserver регистрирует наблюдателей. Уведомляются в порядке регистрации.
func (u *UseCase) AddObserver(obs ...ports.IHistoryObserver) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.observers = append(u.observers, obs...)
}

// RemoveObserver снимает наблюдателя с регистрации. Возвращает false, если его не было.
func (u *UseCase) RemoveObserver(obs ports.IHistoryObserver) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	i := slices.Index(u.observers, obs)
	if i < 0 {
		return false
	}
	u.observers = slices.Delete(u.observers, i, i+1)
	return true
}

// Config возвращает текущий конфиг (реализует ports.IAutoSaveHost).
func (u *UseCase) Config() domain.CalculatorConfig {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.cfg
}

// SetConfig заменяет конфиг целиком и обрезает историю под новый MaxHistorySize.
func (u *UseCase) SetConfig(cfg domain.CalculatorConfig) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.cfg = cfg
	u.history = trim(u.history, cfg.MaxHistorySize)
}

// SetAutoSave включает или выключает авто-сохранение.
func (u *UseCase) SetAutoSave(enabled bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.cfg.AutoSave = enabled
}

// trim оставляет последние limit записей. limit <= 0 — без ограничения.
func trim(history []domain.Calculation, limit int) []domain.Calculation {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	return slices.Clone(history[len(history)-limit:])
}
