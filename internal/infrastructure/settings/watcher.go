package settings

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"calcHistory/internal/domain"
)

// Target — кому применять перечитанные настройки (калькулятор).
type Target interface {
	Config() domain.CalculatorConfig
	SetConfig(cfg domain.CalculatorConfig)
}

// Watcher следит за файлом настроек и при каждом изменении накладывает его поверх текущего
// конфига target. Ключи, которых нет в файле, сохраняют живое значение, в том числе
// auto_save, переключённый через HTTP.
type Watcher struct {
	path    string
	target  Target
	log     *slog.Logger
	watcher *fsnotify.Watcher

	debounce time.Duration
}

// defaultDebounce — сколько ждать тишины после последнего события перед перечитыванием.
const defaultDebounce = 100 * time.Millisecond

// NewWatcher создаёт наблюдатель за файлом. Следим за каталогом: редакторы часто заменяют файл целиком.
func NewWatcher(path string, target Target, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{path: abs, target: target, log: log, watcher: fsw, debounce: defaultDebounce}, nil
}

// Apply перечитывает файл и отдаёт результат в target. При ошибке target не трогается.
func (w *Watcher) Apply() error {
	cfg, err := Load(w.path, w.target.Config())
	if err != nil {
		return err
	}
	w.target.SetConfig(cfg)
	w.log.Info("settings applied", "path", w.path, "auto_save", cfg.AutoSave, "max_history_size", cfg.MaxHistorySize)
	return nil
}

// Run обрабатывает события до отмены ctx. Блокирующий вызов; закрывает fsnotify при выходе.
// Серия событий (truncate + write) схлопывается в одно перечитывание.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.Apply(); err != nil {
				w.log.Warn("settings reload failed, keep previous", "error", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("settings watcher error", "error", err)
		}
	}
}
