// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/juniorwahl/models"
)

func TestWithLogging(t *testing.T) {
	handlerCalled := false
	testHandler := func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	}

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	WithLogging(testHandler)(w, req)

	if !handlerCalled {
		t.Error("Expected handler to be called")
	}
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "success" {
		t.Errorf("Expected body 'success', got '%s'", w.Body.String())
	}
}

func TestWithLogging_RequestID(t *testing.T) {
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {})

	t.Run("generated when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/filters", nil))

		id := w.Header().Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("Expected a UUID request ID, got %q", id)
		}
	})

	t.Run("upstream ID kept", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/filters", nil)
		req.Header.Set(RequestIDHeader, "proxy-42")
		w := httptest.NewRecorder()
		handler(w, req)

		if got := w.Header().Get(RequestIDHeader); got != "proxy-42" {
			t.Errorf("Expected upstream request ID, got %q", got)
		}
	})
}

func TestWithLogging_PreservesResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"OK", http.StatusOK, "ok"},
		{"BadRequest", http.StatusBadRequest, `{"error":"bad request"}`},
		{"Forbidden", http.StatusForbidden, "forbidden"},
		{"InternalError", http.StatusInternalServerError, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.body))
			})

			req := httptest.NewRequest("POST", "/coalitions", nil)
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if w.Body.String() != tc.body {
				t.Errorf("Expected body '%s', got '%s'", tc.body, w.Body.String())
			}
		})
	}
}

func TestJSONResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       interface{}
		expected   string
	}{
		{
			name:       "simple struct",
			statusCode: http.StatusOK,
			data:       map[string]string{"status": "ok"},
			expected:   `{"status":"ok"}`,
		},
		{
			name:       "chart response",
			statusCode: http.StatusOK,
			data:       models.ChartResponse{Column: "Geschlecht"},
			expected:   `{"column":"Geschlecht","counts":null}`,
		},
		{
			name:       "error response",
			statusCode: http.StatusBadRequest,
			data:       models.ErrorResponse{Error: "Bad Request", Message: "unknown column"},
			expected:   `{"error":"Bad Request","message":"unknown column"}`,
		},
		{
			name:       "array data",
			statusCode: http.StatusOK,
			data:       []string{"SPD", "CDU"},
			expected:   `["SPD","CDU"]`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			JSONResponse(w, tc.statusCode, tc.data)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
			}

			// Encode adds a trailing newline
			body := strings.TrimSpace(w.Body.String())
			if body != tc.expected {
				t.Errorf("Expected body '%s', got '%s'", tc.expected, body)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	testCases := []struct {
		name          string
		statusCode    int
		message       string
		expectedError string
	}{
		{"bad request", http.StatusBadRequest, "unknown column", "Bad Request"},
		{"unauthorized", http.StatusUnauthorized, "invalid admin key", "Unauthorized"},
		{"forbidden", http.StatusForbidden, "reload disabled", "Forbidden"},
		{"internal error", http.StatusInternalServerError, "database error", "Internal Server Error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			ErrorResponse(w, tc.statusCode, tc.message)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error != tc.expectedError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectedError, resp.Error)
			}
			if resp.Message != tc.message {
				t.Errorf("Expected message '%s', got '%s'", tc.message, resp.Message)
			}
		})
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		body := `{"filter":{"columns":{"Geschlecht":["weiblich"]}},"top":2}`
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))

		var parsed models.CoalitionRequest
		if err := ParseJSONBody(req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.Top == nil || *parsed.Top != 2 {
			t.Errorf("Expected top 2, got %v", parsed.Top)
		}
		if parsed.Threshold != nil {
			t.Errorf("Expected no threshold, got %v", *parsed.Threshold)
		}
		if got := parsed.Filter.Columns["Geschlecht"]; len(got) != 1 || got[0] != "weiblich" {
			t.Errorf("Unexpected filter columns: %v", parsed.Filter.Columns)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{invalid json}`))

		var parsed models.FilterRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(""))

		var parsed models.FilterRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for empty body")
		}
	})
}

func TestParseOptionalJSONBody(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(""))

		var parsed models.FilterRequest
		if err := ParseOptionalJSONBody(req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.Filter.Active() {
			t.Error("Expected empty filter")
		}
	})

	t.Run("no body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", nil)

		var parsed models.FilterRequest
		if err := ParseOptionalJSONBody(req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
	})

	t.Run("invalid JSON still fails", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"filter":`))

		var parsed models.FilterRequest
		if err := ParseOptionalJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for truncated JSON")
		}
	})
}

func TestCORS(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("handled"))
	})

	corsHandler := CORS(nextHandler)

	t.Run("preflight OPTIONS request", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/coalitions", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w.Body.String() != "" {
			t.Errorf("Expected empty body for preflight, got '%s'", w.Body.String())
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
			t.Error("Expected Access-Control-Allow-Origin to match request origin")
		}
	})

	t.Run("regular request without origin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/dataset", nil)
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if w.Body.String() != "handled" {
			t.Error("Expected next handler to be called")
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("Expected Access-Control-Allow-Origin to default to '*'")
		}
	})

	t.Run("allows custom headers", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/dataset/reload", nil)
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		allowed := w.Header().Get("Access-Control-Allow-Headers")
		for _, h := range []string{"Content-Type", "X-Admin-Key", RequestIDHeader} {
			if !strings.Contains(allowed, h) {
				t.Errorf("Expected %s in allowed headers", h)
			}
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		expected   string
	}{
		{"X-Forwarded-For single IP", "203.0.113.195", "", "10.0.0.1:1234", "203.0.113.195"},
		{"X-Forwarded-For chain", "203.0.113.195, 70.41.3.18", "", "10.0.0.1:1234", "203.0.113.195"},
		{"X-Real-IP", "", "198.51.100.178", "10.0.0.1:1234", "198.51.100.178"},
		{"RemoteAddr with port", "", "", "192.168.1.100:54321", "192.168.1.100"},
		{"RemoteAddr without port", "", "", "192.168.1.100", "192.168.1.100"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.xri != "" {
				req.Header.Set("X-Real-IP", tc.xri)
			}

			if got := GetClientIP(req); got != tc.expected {
				t.Errorf("Expected IP '%s', got '%s'", tc.expected, got)
			}
		})
	}
}
