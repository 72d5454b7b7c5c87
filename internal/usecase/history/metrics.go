package history

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

var _ ports.IHistoryObserver = (*MetricsObserver)(nil)

// MetricsObserver считает расчёты по операциям и распределение результатов.
type MetricsObserver struct {
	total   *prometheus.CounterVec
	results *prometheus.HistogramVec
}

// NewMetricsObserver регистрирует метрики в reg. Для глобального реестра передай prometheus.DefaultRegisterer.
func NewMetricsObserver(reg prometheus.Registerer) *MetricsObserver {
	f := promauto.With(reg)
	return &MetricsObserver{
		total: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calculator_calculations_total",
				Help: "Total number of completed calculations",
			},
			[]string{"operation"},
		),
		results: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "calculator_calculation_result",
				Help:    "Distribution of calculation results",
				Buckets: []float64{-1000, -100, -10, -1, 0, 1, 10, 100, 1000},
			},
			[]string{"operation"},
		),
	}
}

// Update увеличивает счётчик операции и добавляет результат в гистограмму.
func (o *MetricsObserver) Update(_ context.Context, calc *domain.Calculation) error {
	if err := checkCalculation(calc); err != nil {
		return err
	}
	o.total.WithLabelValues(calc.Operation).Inc()
	o.results.WithLabelValues(calc.Operation).Observe(calc.Result)
	return nil
}
