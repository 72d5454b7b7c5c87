// Package history содержит наблюдателей, которых калькулятор уведомляет после каждого расчёта.
package history

import (
	"fmt"

	"calcHistory/internal/domain"
)

// checkCalculation — общая проверка контракта для всех наблюдателей.
func checkCalculation(calc *domain.Calculation) error {
	if calc == nil {
		return fmt.Errorf("update: %w", domain.ErrNilCalculation)
	}
	return nil
}
