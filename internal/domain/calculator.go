package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnknownOperation возвращается, когда операция не поддерживается.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrDivisionByZero — деление на ноль.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidRoot — корень нулевой степени или чётной степени из отрицательного числа.
	ErrInvalidRoot = errors.New("invalid root")
	// ErrInputTooLarge — операнд превышает MaxInputValue из конфига.
	ErrInputTooLarge = errors.New("input exceeds maximum allowed value")
	// ErrResultOverflow — результат не является конечным числом (±Inf или NaN).
	ErrResultOverflow = errors.New("result is not a finite number")
	// ErrNilCalculation — наблюдателю передали nil вместо расчёта (нарушение контракта).
	ErrNilCalculation = errors.New("invalid argument: calculation cannot be nil")
	// ErrMissingCapability — хост не умеет отдавать конфиг и сохранять историю.
	ErrMissingCapability = errors.New("missing capability: host must provide config and save history")
)

// Канонические идентификаторы операций.
const (
	OpAdd      = "add"
	OpSubtract = "subtract"
	OpMultiply = "multiply"
	OpDivide   = "divide"
	OpPower    = "power"
	OpRoot     = "root"
)

// operationAliases — символьные записи операций, которые принимает API.
var operationAliases = map[string]string{
	"+": OpAdd,
	"-": OpSubtract,
	"*": OpMultiply,
	"/": OpDivide,
	"^": OpPower,
}

// ParseOperation приводит имя или символ операции к каноническому идентификатору.
func ParseOperation(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if op, ok := operationAliases[s]; ok {
		return op, nil
	}
	switch s {
	case OpAdd, OpSubtract, OpMultiply, OpDivide, OpPower, OpRoot:
		return s, nil
	}
	return "", ErrUnknownOperation
}

// Calculation — неизменяемая запись об одном выполненном расчёте.
type Calculation struct {
	ID        uuid.UUID `json:"id"`
	Operation string    `json:"operation"`
	Operand1  float64   `json:"operand1"`
	Operand2  float64   `json:"operand2"`
	Result    float64   `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// NewCalculation создаёт запись с новым идентификатором (UUID v7, сортируется по времени).
func NewCalculation(operation string, operand1, operand2, result float64) Calculation {
	return Calculation{
		ID:        uuid.Must(uuid.NewV7()),
		Operation: operation,
		Operand1:  operand1,
		Operand2:  operand2,
		Result:    result,
		Timestamp: time.Now(),
	}
}

// String возвращает "add (2, 3) = 5".
func (c *Calculation) String() string {
	return c.Operation + " (" + FormatNumber(c.Operand1) + ", " + FormatNumber(c.Operand2) + ") = " + FormatNumber(c.Result)
}

// FormatNumber печатает число без лишних нулей: 2 -> "2", 0.5 -> "0.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// OperationStat — агрегат аналитики по одной операции.
type OperationStat struct {
	Operation string  `json:"operation"`
	Count     uint64  `json:"count"`
	AvgResult float64 `json:"avg_result"`
}

// CalculatorConfig — настройки калькулятора. Переменные: CALCULATOR_CALC_AUTO_SAVE и т.д.
type CalculatorConfig struct {
	AutoSave       bool    `envconfig:"AUTO_SAVE" default:"true"`
	MaxHistorySize int     `envconfig:"MAX_HISTORY_SIZE" default:"1000"`
	MaxInputValue  float64 `envconfig:"MAX_INPUT_VALUE" default:"0"` // 0 — без ограничения
}
