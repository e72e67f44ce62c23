package extractor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for a catalog run
type Metrics struct {
	Registry           *prometheus.Registry
	ProductsTotal      *prometheus.CounterVec
	SkippedTotal       *prometheus.CounterVec
	ActivationsTotal   *prometheus.CounterVec
	NavigationFailures prometheus.Counter
	PageDuration       prometheus.Histogram
}

// NewMetrics constructs and registers all metrics on a dedicated registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	products := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_products_extracted_total",
			Help: "Products extracted per category.",
		},
		[]string{"category"},
	)
	skipped := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_entries_skipped_total",
			Help: "Catalog entries skipped per category and reason.",
		},
		[]string{"category", "reason"},
	)
	activations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_load_more_activations_total",
			Help: "Load more activations per category.",
		},
		[]string{"category"},
	)
	navigation := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_navigation_failures_total",
			Help: "Category pages that could not be loaded.",
		},
	)
	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_page_duration_seconds",
			Help:    "Time spent rendering and extracting one category page.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	registry.MustRegister(products, skipped, activations, navigation, duration)

	return &Metrics{
		Registry:           registry,
		ProductsTotal:      products,
		SkippedTotal:       skipped,
		ActivationsTotal:   activations,
		NavigationFailures: navigation,
		PageDuration:       duration,
	}
}

func (m *Metrics) addProducts(category string, n int) {
	if m == nil {
		return
	}
	m.ProductsTotal.WithLabelValues(category).Add(float64(n))
}

func (m *Metrics) incSkipped(category, reason string) {
	if m == nil {
		return
	}
	m.SkippedTotal.WithLabelValues(category, reason).Inc()
}

func (m *Metrics) addActivations(category string, n int) {
	if m == nil {
		return
	}
	m.ActivationsTotal.WithLabelValues(category).Add(float64(n))
}

func (m *Metrics) incNavigationFailure() {
	if m == nil {
		return
	}
	m.NavigationFailures.Inc()
}

func (m *Metrics) observePage(d time.Duration) {
	if m == nil {
		return
	}
	m.PageDuration.Observe(d.Seconds())
}

// WriteTextfile writes the current metric values in the Prometheus text format
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
