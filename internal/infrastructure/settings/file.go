// Package settings читает переопределения настроек калькулятора из TOML-файла и применяет их на лету.
//
// Пример файла:
//
//	auto_save = false
//	max_history_size = 500
//	max_input_value = 1e9
//
// Ключи, которых нет в файле, остаются как в env-конфиге.
package settings

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"calcHistory/internal/domain"
)

// fileSettings — содержимое файла. Указатели отличают "ключ не задан" от нулевого значения.
type fileSettings struct {
	AutoSave       *bool    `toml:"auto_save"`
	MaxHistorySize *int     `toml:"max_history_size"`
	MaxInputValue  *float64 `toml:"max_input_value"`
}

// Load читает файл и накладывает заданные в нём ключи поверх base.
func Load(path string, base domain.CalculatorConfig) (domain.CalculatorConfig, error) {
	var fs fileSettings
	md, err := toml.DecodeFile(path, &fs)
	if err != nil {
		return base, fmt.Errorf("settings decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return base, fmt.Errorf("settings %s: unknown keys %v", path, undecoded)
	}

	cfg := base
	if fs.AutoSave != nil {
		cfg.AutoSave = *fs.AutoSave
	}
	if fs.MaxHistorySize != nil {
		if *fs.MaxHistorySize < 0 {
			return base, fmt.Errorf("settings %s: max_history_size must be >= 0", path)
		}
		cfg.MaxHistorySize = *fs.MaxHistorySize
	}
	if fs.MaxInputValue != nil {
		if *fs.MaxInputValue < 0 {
			return base, fmt.Errorf("settings %s: max_input_value must be >= 0", path)
		}
		cfg.MaxInputValue = *fs.MaxInputValue
	}
	return cfg, nil
}
