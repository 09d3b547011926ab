// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scrape returns the exposition text of m
func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMetrics_Instrument(t *testing.T) {
	m := NewMetrics()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", m.Instrument(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	mux.HandleFunc("POST /charts/{column}", m.Instrument(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	for i := 0; i < 3; i++ {
		mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))
	}
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/charts/Nope", nil))

	body := scrape(t, m)
	assert.Contains(t, body, `juniorwahl_http_requests_total{code="200",route="GET /health"} 3`)
	assert.Contains(t, body, `juniorwahl_http_requests_total{code="400",route="POST /charts/{column}"} 1`)
	assert.Contains(t, body, `juniorwahl_http_request_duration_seconds_count{route="GET /health"} 3`)
}

func TestMetrics_FirstStatusWins(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	rec.WriteHeader(http.StatusForbidden)
	rec.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusForbidden, rec.status)
}

func TestMetrics_RecordLoad(t *testing.T) {
	m := NewMetrics()

	m.RecordLoad(11, nil)
	m.RecordLoad(99, errors.New("broken csv"))

	body := scrape(t, m)
	assert.Contains(t, body, "juniorwahl_respondents 11")
	assert.Contains(t, body, `juniorwahl_dataset_loads_total{status="ok"} 1`)
	assert.Contains(t, body, `juniorwahl_dataset_loads_total{status="error"} 1`)
}

func TestMetrics_CoalitionSearch(t *testing.T) {
	m := NewMetrics()
	m.ObserveCoalitionSearch(4, 3*time.Microsecond)

	assert.Contains(t, scrape(t, m), `juniorwahl_coalition_search_duration_seconds_count{parties="4"} 1`)
}

func TestMetrics_Separate(t *testing.T) {
	// Two instances must not collide on registration
	a, b := NewMetrics(), NewMetrics()
	a.RecordLoad(1, nil)
	b.RecordLoad(2, nil)

	assert.Contains(t, scrape(t, a), "juniorwahl_respondents 1")
	assert.Contains(t, scrape(t, b), "juniorwahl_respondents 2")
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics

	called := false
	h := m.Instrument(func(w http.ResponseWriter, r *http.Request) { called = true })
	h(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	assert.True(t, called)
	assert.NotPanics(t, func() {
		m.RecordLoad(3, nil)
		m.ObserveCoalitionSearch(3, time.Millisecond)
	})
}
