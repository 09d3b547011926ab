// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one server.
// Each instance has its own registry so tests can build as many as they like.
// A nil *Metrics records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	coalitionSearch *prometheus.HistogramVec
	respondents     prometheus.Gauge
	reloads         *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "juniorwahl_http_requests_total",
				Help: "HTTP requests by route pattern and status code.",
			},
			[]string{"route", "code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "juniorwahl_http_request_duration_seconds",
				Help:    "HTTP request latency by route pattern.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		coalitionSearch: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "juniorwahl_coalition_search_duration_seconds",
				Help:    "Time spent enumerating coalitions, by number of parties.",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"parties"},
		),
		respondents: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "juniorwahl_respondents",
				Help: "Respondents in the loaded dataset.",
			},
		),
		reloads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "juniorwahl_dataset_loads_total",
				Help: "Dataset loads by outcome.",
			},
			[]string{"status"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Instrument counts and times requests by their mux pattern
func (m *Metrics) Instrument(next http.HandlerFunc) http.HandlerFunc {
	if m == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// ObserveCoalitionSearch records one coalition search over n parties
func (m *Metrics) ObserveCoalitionSearch(parties int, d time.Duration) {
	if m == nil {
		return
	}
	m.coalitionSearch.WithLabelValues(strconv.Itoa(parties)).Observe(d.Seconds())
}

// RecordLoad tracks a dataset load; n is only used when err is nil
func (m *Metrics) RecordLoad(n int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.reloads.WithLabelValues("error").Inc()
		return
	}
	m.reloads.WithLabelValues("ok").Inc()
	m.respondents.Set(float64(n))
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}
