package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Sale outcomes used as the outcome label.
const (
	OutcomeCommitted         = "committed"
	OutcomeNotFound          = "not_found"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeInvalid           = "invalid"
	OutcomeError             = "error"
)

// SalesMetrics records sale transaction outcomes.
type SalesMetrics struct {
	total     *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	unitsSold prometheus.Counter
}

// NewSalesMetrics registers the sale metrics on the provided registerer.
func NewSalesMetrics(reg prometheus.Registerer) *SalesMetrics {
	if reg == nil {
		return &SalesMetrics{}
	}
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_sales_total",
		Help: "Sale attempts partitioned by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pos_sale_duration_seconds",
		Help:    "Duration of sale transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	unitsSold := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_units_sold_total",
		Help: "Units removed from stock by committed sales.",
	})
	reg.MustRegister(total, duration, unitsSold)
	return &SalesMetrics{
		total:     total,
		duration:  duration,
		unitsSold: unitsSold,
	}
}

// ObserveSale records one sale attempt. Units only count for committed sales.
func (m *SalesMetrics) ObserveSale(outcome string, units int, elapsed time.Duration) {
	if m == nil || m.total == nil {
		return
	}
	outcome = normalizeLabel(outcome)
	m.total.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if outcome == OutcomeCommitted && units > 0 {
		m.unitsSold.Add(float64(units))
	}
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
