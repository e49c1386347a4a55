package app

import (
	"net/http"
	"strconv"
	"time"

	"github.com/finanzapp/finanzapp/internal/event_bus"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several applications, as in tests,
// can live in one process.
type Metrics struct {
	registry        *prometheus.Registry
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	dataChanges     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "requests_total",
				Help: "How many HTTP requests processed, partitioned by status code, HTTP method and route.",
			},
			[]string{"code", "method", "route"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "request_duration_seconds",
				Help: "The HTTP request latencies in seconds.",
			},
			[]string{"code", "method", "route"},
		),
		dataChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "data_changes_total",
				Help: "Confirmed writes, partitioned by collection and operation.",
			},
			[]string{"collection", "op"},
		),
	}
	m.registry.MustRegister(m.requestCount, m.requestDuration, m.dataChanges)
	return m
}

// Middleware labels requests with the route template instead of the raw
// path to keep ids out of the label values.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, req)

		route := req.URL.Path
		if current := mux.CurrentRoute(req); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}
		status := strconv.Itoa(recorder.status)
		m.requestDuration.WithLabelValues(status, req.Method, route).Observe(time.Since(start).Seconds())
		m.requestCount.WithLabelValues(status, req.Method, route).Inc()
	})
}

// CountDataChanges follows the data.changed events of bus.
func (m *Metrics) CountDataChanges(bus *event_bus.EventBus) (unsubscribe func()) {
	return event_bus.SubscribeTyped(bus, event_bus.DataChangedType, func(e event_bus.EventT[event_bus.DataChanged]) error {
		m.dataChanges.WithLabelValues(string(e.Data.Collection), string(e.Data.Op)).Inc()
		return nil
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
