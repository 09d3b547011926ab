// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware, metrics and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).
Every response carries an X-Request-ID header; an incoming one is kept,
otherwise a UUID is generated.

# Metrics

Each server owns a Metrics value with its own Prometheus registry:

	m := middleware.NewMetrics()
	mux.HandleFunc("POST /coalitions", m.Instrument(handler))
	mux.Handle("GET /metrics", m.Handler())

Collectors:

  - juniorwahl_http_requests_total{route, code}
  - juniorwahl_http_request_duration_seconds{route}
  - juniorwahl_coalition_search_duration_seconds{parties}
  - juniorwahl_respondents
  - juniorwahl_dataset_loads_total{status}

Routes are labeled with the mux pattern, not the raw path, so
/charts/{column} stays a single series. A nil *Metrics is a no-op.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with headers
Content-Type, X-Admin-Key, X-Request-ID.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CoalitionRequest
	if err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

ParseOptionalJSONBody treats an empty body as "no filter".

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Logged with every request.
*/
package middleware
