package history

import (
	"context"
	"log/slog"
	"reflect"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

var _ ports.IHistoryObserver = (*AutoSaveObserver)(nil)

// AutoSaveObserver сохраняет историю после каждого расчёта, если в конфиге хоста включён auto_save.
// Хостом не владеет.
type AutoSaveObserver struct {
	host ports.IAutoSaveHost
	log  *slog.Logger
}

// NewAutoSaveObserver создаёт наблюдателя над хостом. Без хоста наблюдатель не создаётся.
func NewAutoSaveObserver(host ports.IAutoSaveHost, log *slog.Logger) (*AutoSaveObserver, error) {
	if isNil(host) {
		return nil, domain.ErrMissingCapability
	}
	if log == nil {
		log = slog.Default()
	}
	return &AutoSaveObserver{host: host, log: log}, nil
}

// isNil ловит и nil-интерфейс, и интерфейс с nil-указателем внутри.
func isNil(host ports.IAutoSaveHost) bool {
	if host == nil {
		return true
	}
	v := reflect.ValueOf(host)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Update читает конфиг хоста на момент вызова и при AutoSave == true вызывает SaveHistory.
// Ошибка SaveHistory возвращается как есть.
func (o *AutoSaveObserver) Update(ctx context.Context, calc *domain.Calculation) error {
	if err := checkCalculation(calc); err != nil {
		return err
	}
	if !o.host.Config().AutoSave {
		return nil
	}
	if err := o.host.SaveHistory(ctx); err != nil {
		return err
	}
	o.log.InfoContext(ctx, "History auto-saved")
	return nil
}
