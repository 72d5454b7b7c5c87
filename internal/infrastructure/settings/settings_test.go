package settings

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcHistory/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

var base = domain.CalculatorConfig{AutoSave: true, MaxHistorySize: 1000, MaxInputValue: 0}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    domain.CalculatorConfig
		wantErr bool
	}{
		{
			name:    "пустой файл — без изменений",
			content: "",
			want:    base,
		},
		{
			name:    "только auto_save",
			content: "auto_save = false\n",
			want:    domain.CalculatorConfig{AutoSave: false, MaxHistorySize: 1000},
		},
		{
			name:    "все ключи",
			content: "auto_save = false\nmax_history_size = 5\nmax_input_value = 100.0\n",
			want:    domain.CalculatorConfig{AutoSave: false, MaxHistorySize: 5, MaxInputValue: 100},
		},
		{
			name:    "неизвестный ключ",
			content: "autosave = false\n",
			wantErr: true,
		},
		{
			name:    "отрицательный размер истории",
			content: "max_history_size = -1\n",
			wantErr: true,
		},
		{
			name:    "битый toml",
			content: "auto_save = \n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.toml")
			writeFile(t, path, tt.content)

			got, err := Load(path, base)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, base, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"), base)
	assert.Error(t, err)
}

type fakeTarget struct {
	mu  sync.Mutex
	cfg domain.CalculatorConfig
	set int
}

func (f *fakeTarget) Config() domain.CalculatorConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cfg
}

func (f *fakeTarget) SetConfig(cfg domain.CalculatorConfig) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg = cfg
	f.set++
}

func (f *fakeTarget) get() (domain.CalculatorConfig, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cfg, f.set
}

func TestWatcher_AppliesChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	writeFile(t, path, "auto_save = true\n")

	target := &fakeTarget{cfg: base}
	w, err := NewWatcher(path, target, newTestLogger())
	require.NoError(t, err)
	require.NoError(t, w.Apply())

	cfg, _ := target.get()
	assert.True(t, cfg.AutoSave)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writeFile(t, path, "auto_save = false\n")
	assert.Eventually(t, func() bool {
		cfg, _ := target.get()
		return !cfg.AutoSave
	}, 5*time.Second, 20*time.Millisecond)

	// битый файл не сбрасывает последний применённый конфиг
	writeFile(t, path, "auto_save = \n")
	time.Sleep(5 * defaultDebounce)
	cfg, _ = target.get()
	assert.False(t, cfg.AutoSave)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

// Ключи, которых нет в файле, не откатывают живой конфиг к значениям из env
func TestWatcher_KeepsLiveValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	writeFile(t, path, "max_history_size = 5\n")

	target := &fakeTarget{cfg: base}
	w, err := NewWatcher(path, target, newTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.watcher.Close() })

	// auto_save выключили через PUT /api/v1/config/auto-save
	live := base
	live.AutoSave = false
	target.SetConfig(live)

	require.NoError(t, w.Apply())

	cfg, _ := target.get()
	assert.False(t, cfg.AutoSave, "auto_save не задан в файле и остаётся живым")
	assert.Equal(t, 5, cfg.MaxHistorySize)

	// ключ в файле переопределяет живое значение
	writeFile(t, path, "auto_save = true\n")
	require.NoError(t, w.Apply())
	cfg, _ = target.get()
	assert.True(t, cfg.AutoSave)
	assert.Equal(t, 5, cfg.MaxHistorySize)
}
