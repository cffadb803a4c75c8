// Package metrics expone el sink de métricas inyectado en los handlers.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder es un sink fire-and-forget de contadores y duraciones.
type Recorder interface {
	IncCounter(name string)
	ObserveDuration(name string, d time.Duration)
}

// PrometheusRecorder implementa Recorder sobre un registry propio.
type PrometheusRecorder struct {
	calls     *prometheus.CounterVec
	durations *prometheus.HistogramVec
	requests  *prometheus.HistogramVec
}

// NewPrometheusRecorder registra los colectores en reg bajo namespace.
func NewPrometheusRecorder(reg prometheus.Registerer, namespace string) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_check_calls_total",
				Help:      "Number of times a checked endpoint was called",
			},
			[]string{"name"},
		),
		durations: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_check_duration_seconds",
				Help:      "Duration of checked endpoint calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"name"},
		),
		requests: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}
}

func (r *PrometheusRecorder) IncCounter(name string) {
	r.calls.WithLabelValues(name).Inc()
}

func (r *PrometheusRecorder) ObserveDuration(name string, d time.Duration) {
	r.durations.WithLabelValues(name).Observe(d.Seconds())
}

// ObserveRequest registra la duracion de una request HTTP completa.
func (r *PrometheusRecorder) ObserveRequest(method, path, status string, d time.Duration) {
	r.requests.WithLabelValues(method, path, status).Observe(d.Seconds())
}

// MemoryRecorder acumula métricas en memoria; pensado para tests.
type MemoryRecorder struct {
	mu        sync.Mutex
	counters  map[string]int
	durations map[string][]time.Duration
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{
		counters:  make(map[string]int),
		durations: make(map[string][]time.Duration),
	}
}

func (m *MemoryRecorder) IncCounter(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

func (m *MemoryRecorder) ObserveDuration(name string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations[name] = append(m.durations[name], d)
}

// Count devuelve cuantas veces se incremento name.
func (m *MemoryRecorder) Count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// Durations devuelve una copia de las duraciones observadas para name.
func (m *MemoryRecorder) Durations(name string) []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.durations[name]...)
}

// Nop descarta todo.
type Nop struct{}

func (Nop) IncCounter(string)                     {}
func (Nop) ObserveDuration(string, time.Duration) {}
