package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer exports alert load metrics to Prometheus.
type Observer struct {
	loads    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	items    prometheus.Gauge
}

// NewObserver registers the load counters on reg, reusing collectors that
// are already registered under the same names.
func NewObserver(namespace string, reg prometheus.Registerer) (*Observer, error) {
	if namespace == "" {
		namespace = "alertfeed"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	loads, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loads_total",
		Help:      "Alert feed loads by outcome.",
	}, []string{"outcome"}))
	if err != nil {
		return nil, fmt.Errorf("register load counter: %w", err)
	}
	duration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "load_duration_seconds",
		Help:      "Latency of alert feed loads, proxy round trip included.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"}))
	if err != nil {
		return nil, fmt.Errorf("register load histogram: %w", err)
	}
	items, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "alerts",
		Help:      "Number of alerts in the most recent successful load.",
	}))
	if err != nil {
		return nil, fmt.Errorf("register alerts gauge: %w", err)
	}
	return &Observer{
		loads:    loads,
		duration: duration,
		items:    items,
	}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T) (T, error) {
	if err := reg.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return collector, err
	}
	return collector, nil
}

// RecordLoad tracks one load. outcome is "success" or the failure kind.
func (o *Observer) RecordLoad(outcome string, items int, elapsed time.Duration) {
	if o == nil {
		return
	}
	o.loads.WithLabelValues(outcome).Inc()
	o.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if outcome == "success" {
		o.items.Set(float64(items))
	}
}
