package history

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcHistory/internal/domain"
)

func TestLoggingObserver_Update(t *testing.T) {
	log, rec := newRecordingLogger()
	obs := NewLoggingObserver(log)

	err := obs.Update(context.Background(), addTwoThree())

	require.NoError(t, err)
	require.Len(t, rec.records, 1)
	assert.Equal(t, "Calculation performed: add (2, 3) = 5", rec.records[0].Message)
	assert.Equal(t, slog.LevelInfo, rec.records[0].Level)

	attrs := map[string]any{}
	rec.records[0].Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})
	assert.Equal(t, "add", attrs["operation"])
	assert.Equal(t, 2.0, attrs["operand1"])
	assert.Equal(t, 3.0, attrs["operand2"])
	assert.Equal(t, 5.0, attrs["result"])
}

func TestLoggingObserver_Format(t *testing.T) {
	tests := []struct {
		name string
		calc domain.Calculation
		want string
	}{
		{
			name: "дробные операнды",
			calc: domain.Calculation{Operation: domain.OpDivide, Operand1: 1, Operand2: 4, Result: 0.25},
			want: "Calculation performed: divide (1, 4) = 0.25",
		},
		{
			name: "отрицательные числа",
			calc: domain.Calculation{Operation: domain.OpSubtract, Operand1: -10, Operand2: 5, Result: -15},
			want: "Calculation performed: subtract (-10, 5) = -15",
		},
		{
			name: "степень",
			calc: domain.Calculation{Operation: domain.OpPower, Operand1: 2, Operand2: 10, Result: 1024},
			want: "Calculation performed: power (2, 10) = 1024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, rec := newRecordingLogger()
			calc := tt.calc
			require.NoError(t, NewLoggingObserver(log).Update(context.Background(), &calc))
			assert.Equal(t, []string{tt.want}, rec.messages())
		})
	}
}

func TestLoggingObserver_NilCalculation(t *testing.T) {
	log, rec := newRecordingLogger()
	obs := NewLoggingObserver(log)

	err := obs.Update(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrNilCalculation)
	assert.Empty(t, rec.records)
}

func TestLoggingObserver_NilLoggerUsesDefault(t *testing.T) {
	log, rec := newRecordingLogger()
	prev := slog.Default()
	slog.SetDefault(log)
	t.Cleanup(func() { slog.SetDefault(prev) })

	require.NoError(t, NewLoggingObserver(nil).Update(context.Background(), addTwoThree()))
	assert.Equal(t, []string{"Calculation performed: add (2, 3) = 5"}, rec.messages())
}
