package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestSalesMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewSalesMetrics(reg)
	metrics.ObserveSale(OutcomeCommitted, 3, 250*time.Millisecond)
	metrics.ObserveSale(OutcomeCommitted, 2, 10*time.Millisecond)
	metrics.ObserveSale(OutcomeInsufficientStock, 7, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "pos_sales_total", "outcome", OutcomeCommitted); err != nil {
		t.Fatalf("fetch committed: %v", err)
	} else if got != 2 {
		t.Fatalf("expected committed=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "pos_sales_total", "outcome", OutcomeInsufficientStock); err != nil {
		t.Fatalf("fetch insufficient: %v", err)
	} else if got != 1 {
		t.Fatalf("expected insufficient_stock=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "pos_sale_duration_seconds", "outcome", OutcomeCommitted); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}

	units := findMetricFamily(mfs, "pos_units_sold_total")
	if units == nil || len(units.GetMetric()) != 1 {
		t.Fatalf("units sold metric missing")
	}
	if got := units.GetMetric()[0].GetCounter().GetValue(); got != 5 {
		t.Fatalf("expected units sold=5, got %f", got)
	}
}

func TestHTTPMetricsRecordsRouteAndStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)
	metrics.ObserveRequest("POST", "/sales", 201, 5*time.Millisecond)
	metrics.ObserveRequest("POST", "", 404, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", "/sales"); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 1 {
		t.Fatalf("expected 1 request, got %f", got)
	}
	if _, err := fetchCounterValue(mfs, "http_requests_total", "route", "unknown"); err != nil {
		t.Fatalf("expected unknown route label: %v", err)
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var sales *SalesMetrics
	sales.ObserveSale(OutcomeCommitted, 1, time.Second)
	NewSalesMetrics(nil).ObserveSale(OutcomeError, 0, time.Second)

	var httpMetrics *HTTPMetrics
	httpMetrics.ObserveRequest("GET", "/", 200, time.Second)
	NewHTTPMetrics(nil).ObserveRequest("GET", "/", 200, time.Second)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
