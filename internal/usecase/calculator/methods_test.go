package calculator

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"calcHistory/internal/domain"
	"calcHistory/internal/mocks"
	"calcHistory/internal/usecase/history"
)

// newTestLogger создаёт логгер для тестов (выводит только ошибки, чтобы не засорять вывод).
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func defaultConfig() domain.CalculatorConfig {
	return domain.CalculatorConfig{AutoSave: false, MaxHistorySize: 100}
}

// Тест 1: Cache Hit — результат берётся из кэша, наблюдатель всё равно уведомляется
func TestCalculate_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockCache := mocks.NewMockICache(ctrl)
	mockRepo := mocks.NewMockIHistoryRepository(ctrl)
	mockObs := mocks.NewMockIHistoryObserver(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), "10 add 5").Return(15.0, true, nil)
	mockObs.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, calc *domain.Calculation) error {
			assert.Equal(t, 15.0, calc.Result)
			return nil
		})

	uc := New(mockRepo, mockCache, nil, defaultConfig(), newTestLogger())
	uc.AddObserver(mockObs)

	result, err := uc.Calculate(context.Background(), "+", 10, 5)

	require.NoError(t, err)
	assert.Equal(t, 15.0, result.Result)
	assert.Equal(t, domain.OpAdd, result.Operation)
	assert.Equal(t, 10.0, result.Operand1)
	assert.Equal(t, 5.0, result.Operand2)
	assert.Len(t, uc.History(), 1)
}

// Тест 2: Cache Miss и ошибка кэша — считаем сами
func TestCalculate_CacheMissAndError(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockCache := mocks.NewMockICache(ctrl)
	mockRepo := mocks.NewMockIHistoryRepository(ctrl)

	gomock.InOrder(
		mockCache.EXPECT().Get(gomock.Any(), "10 multiply 5").Return(0.0, false, nil),
		mockCache.EXPECT().Get(gomock.Any(), "10 subtract 5").Return(0.0, false, errors.New("redis down")),
	)

	uc := New(mockRepo, mockCache, nil, defaultConfig(), newTestLogger())

	mul, err := uc.Calculate(context.Background(), "multiply", 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 50.0, mul.Result)

	sub, err := uc.Calculate(context.Background(), "-", 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, sub.Result)
}

// Тест 3: Ошибка — деление на ноль, наблюдатели не вызываются, история пустая
func TestCalculate_DivisionByZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockObs := mocks.NewMockIHistoryObserver(ctrl)

	uc := New(nil, nil, nil, defaultConfig(), newTestLogger())
	uc.AddObserver(mockObs)

	result, err := uc.Calculate(context.Background(), "/", 10, 0)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrDivisionByZero)
	assert.Empty(t, uc.History())
}

func TestCalculate_UnknownOperation(t *testing.T) {
	uc := New(nil, nil, nil, defaultConfig(), newTestLogger())

	result, err := uc.Calculate(context.Background(), "modulo", 10, 3)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUnknownOperation)
	assert.Contains(t, err.Error(), "modulo")
}

func TestCalculate_InputTooLarge(t *testing.T) {
	cfg := defaultConfig()
	cfg.MaxInputValue = 1000
	uc := New(nil, nil, nil, cfg, newTestLogger())

	_, err := uc.Calculate(context.Background(), domain.OpAdd, 1001, 1)
	assert.ErrorIs(t, err, domain.ErrInputTooLarge)

	_, err = uc.Calculate(context.Background(), domain.OpAdd, 1, -1001)
	assert.ErrorIs(t, err, domain.ErrInputTooLarge)

	calc, err := uc.Calculate(context.Background(), domain.OpAdd, 1000, -1000)
	require.NoError(t, err)
	assert.Equal(t, 0.0, calc.Result)
}

// Тест 4: Наблюдатели уведомляются в порядке регистрации
func TestCalculate_ObserversInRegistrationOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockIHistoryObserver(ctrl)
	second := mocks.NewMockIHistoryObserver(ctrl)

	gomock.InOrder(
		first.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil),
		second.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil),
	)

	uc := New(nil, nil, nil, defaultConfig(), newTestLogger())
	uc.AddObserver(first, second)

	_, err := uc.Calculate(context.Background(), domain.OpAdd, 2, 3)
	require.NoError(t, err)
}

// Тест 5: Ошибка наблюдателя прерывает цепочку и возвращается как есть
func TestCalculate_ObserverFailureStopsNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockIHistoryObserver(ctrl)
	second := mocks.NewMockIHistoryObserver(ctrl)
	obsErr := errors.New("save failed")

	first.EXPECT().Update(gomock.Any(), gomock.Any()).Return(obsErr)
	second.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

	uc := New(nil, nil, nil, defaultConfig(), newTestLogger())
	uc.AddObserver(first, second)

	result, err := uc.Calculate(context.Background(), domain.OpAdd, 2, 3)

	assert.Nil(t, result)
	assert.Same(t, obsErr, err)
	assert.Len(t, uc.History(), 1)
}

func TestRemoveObserver(t *testing.T) {
	ctrl := gomock.NewController(t)
	kept := mocks.NewMockIHistoryObserver(ctrl)
	removed := mocks.NewMockIHistoryObserver(ctrl)

	kept.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	uc := New(nil, nil, nil, defaultConfig(), newTestLogger())
	uc.AddObserver(removed, kept)

	assert.True(t, uc.RemoveObserver(removed))
	assert.False(t, uc.RemoveObserver(removed))

	_, err := uc.Calculate(context.Background(), domain.OpAdd, 2, 3)
	require.NoError(t, err)
}

func TestCalculate_HistoryTrimmed(t *testing.T) {
	cfg := defaultConfig()
	cfg.MaxHistorySize = 2
	uc := New(nil, nil, nil, cfg, newTestLogger())

	for i := 1; i <= 3; i++ {
		_, err := uc.Calculate(context.Background(), domain.OpAdd, float64(i), 0)
		require.NoError(t, err)
	}

	list := uc.History()
	require.Len(t, list, 2)
	assert.Equal(t, 2.0, list[0].Operand1)
	assert.Equal(t, 3.0, list[1].Operand1)

	cfg.MaxHistorySize = 1
	uc.SetConfig(cfg)
	list = uc.History()
	require.Len(t, list, 1)
	assert.Equal(t, 3.0, list[0].Operand1)
}

// Тест 6: Настоящий AutoSaveObserver поверх юзкейса — сохраняет снимок с только что посчитанной записью
func TestCalculate_AutoSaveObserver(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIHistoryRepository(ctrl)

	cfg := defaultConfig()
	cfg.AutoSave = true
	uc := New(mockRepo, nil, nil, cfg, newTestLogger())

	autoSave, err := history.NewAutoSaveObserver(uc, newTestLogger())
	require.NoError(t, err)
	uc.AddObserver(history.NewLoggingObserver(newTestLogger()), autoSave)

	mockRepo.EXPECT().
		SaveHistory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, list []domain.Calculation) error {
			require.Len(t, list, 1)
			assert.Equal(t, 5.0, list[0].Result)
			return nil
		}).
		Times(1)

	_, err = uc.Calculate(context.Background(), domain.OpAdd, 2, 3)
	require.NoError(t, err)

	// после выключения auto_save репозиторий больше не вызывается
	uc.SetAutoSave(false)
	_, err = uc.Calculate(context.Background(), domain.OpAdd, 2, 3)
	require.NoError(t, err)
}

func TestSaveAndLoadHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIHistoryRepository(ctrl)

	stored := []domain.Calculation{
		domain.NewCalculation(domain.OpAdd, 10, 5, 15),
		domain.NewCalculation(domain.OpDivide, 20, 4, 5),
	}
	mockRepo.EXPECT().LoadHistory(gomock.Any()).Return(stored, nil)
	mockRepo.EXPECT().SaveHistory(gomock.Any(), stored).Return(nil)

	uc := New(mockRepo, nil, nil, defaultConfig(), newTestLogger())

	require.NoError(t, uc.LoadHistory(context.Background()))
	assert.Equal(t, stored, uc.History())
	require.NoError(t, uc.SaveHistory(context.Background()))

	uc.ClearHistory()
	assert.Empty(t, uc.History())
}

func TestSaveHistory_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIHistoryRepository(ctrl)
	repoErr := errors.New("connection refused")

	mockRepo.EXPECT().SaveHistory(gomock.Any(), gomock.Any()).Return(repoErr)
	mockRepo.EXPECT().LoadHistory(gomock.Any()).Return(nil, repoErr)

	uc := New(mockRepo, nil, nil, defaultConfig(), newTestLogger())

	assert.Same(t, repoErr, uc.SaveHistory(context.Background()))
	assert.Same(t, repoErr, uc.LoadHistory(context.Background()))
}

func TestHandleCalculationEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAnalytics := mocks.NewMockIOperationAnalytics(ctrl)
	calc := domain.NewCalculation(domain.OpAdd, 1, 1, 2)

	gomock.InOrder(
		mockAnalytics.EXPECT().WriteCalculation(gomock.Any(), calc).Return(nil),
		mockAnalytics.EXPECT().WriteCalculation(gomock.Any(), calc).Return(errors.New("clickhouse down")),
	)

	uc := New(nil, nil, mockAnalytics, defaultConfig(), newTestLogger())

	assert.NoError(t, uc.HandleCalculationEvent(context.Background(), calc))
	assert.Error(t, uc.HandleCalculationEvent(context.Background(), calc))
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		a, b    float64
		want    float64
		wantErr error
	}{
		{name: "сложение", op: domain.OpAdd, a: 2, b: 3, want: 5},
		{name: "вычитание", op: domain.OpSubtract, a: 2, b: 3, want: -1},
		{name: "умножение", op: domain.OpMultiply, a: 2, b: 3, want: 6},
		{name: "деление", op: domain.OpDivide, a: 1, b: 4, want: 0.25},
		{name: "деление на ноль", op: domain.OpDivide, a: 1, b: 0, wantErr: domain.ErrDivisionByZero},
		{name: "степень", op: domain.OpPower, a: 2, b: 10, want: 1024},
		{name: "квадратный корень", op: domain.OpRoot, a: 9, b: 2, want: 3},
		{name: "кубический корень из отрицательного", op: domain.OpRoot, a: -8, b: 3, want: -2},
		{name: "чётный корень из отрицательного", op: domain.OpRoot, a: -4, b: 2, wantErr: domain.ErrInvalidRoot},
		{name: "корень нулевой степени", op: domain.OpRoot, a: 4, b: 0, wantErr: domain.ErrInvalidRoot},
		{name: "неизвестная операция", op: "modulo", a: 4, b: 2, wantErr: domain.ErrUnknownOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := apply(tt.op, tt.a, tt.b)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestApply_NonFiniteResult(t *testing.T) {
	tests := []struct {
		name string
		op   string
		a, b float64
	}{
		{name: "степень уходит в +Inf", op: domain.OpPower, a: 10, b: 400},
		{name: "степень уходит в -Inf", op: domain.OpPower, a: -10, b: 401},
		{name: "дробная степень отрицательного — NaN", op: domain.OpPower, a: -8, b: 0.5},
		{name: "переполнение умножения", op: domain.OpMultiply, a: 1e200, b: 1e200},
		{name: "переполнение деления", op: domain.OpDivide, a: 1e308, b: 1e-10},
		{name: "переполнение сложения", op: domain.OpAdd, a: math.MaxFloat64, b: math.MaxFloat64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := apply(tt.op, tt.a, tt.b)
			assert.ErrorIs(t, err, domain.ErrResultOverflow)
			assert.Zero(t, got)
		})
	}
}

// Нечисловой результат не попадает в историю, кэш и наблюдателям
func TestCalculate_NonFiniteResultRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockICache(ctrl)
	mockObs := mocks.NewMockIHistoryObserver(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), "10 power 400").Return(0.0, false, nil)
	mockCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	mockObs.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

	uc := New(nil, mockCache, nil, defaultConfig(), newTestLogger())
	uc.AddObserver(mockObs)

	calc, err := uc.Calculate(context.Background(), "^", 10, 400)

	assert.Nil(t, calc)
	assert.ErrorIs(t, err, domain.ErrResultOverflow)
	assert.Empty(t, uc.History())
}

// Нечисловое значение в кэше считается промахом
func TestCalculate_NonFiniteCachedValueIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockICache(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), "2 add 3").Return(math.Inf(1), true, nil)

	uc := New(nil, mockCache, nil, defaultConfig(), newTestLogger())
	calc, err := uc.Calculate(context.Background(), "add", 2, 3)

	require.NoError(t, err)
	assert.Equal(t, 5.0, calc.Result)
}

func TestNewAutoSaveObserver_NilUseCase(t *testing.T) {
	var uc *UseCase
	obs, err := history.NewAutoSaveObserver(uc, nil)

	assert.Nil(t, obs)
	assert.ErrorIs(t, err, domain.ErrMissingCapability)
}
