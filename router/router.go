// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/juniorwahl/cliparse"
	"github.com/danielhkuo/juniorwahl/db"
	"github.com/danielhkuo/juniorwahl/handlers"
	"github.com/danielhkuo/juniorwahl/middleware"
	"github.com/danielhkuo/juniorwahl/parties"
)

func NewRouter(store *db.Store, cfg cliparse.Config, palette *parties.Palette, metrics *middleware.Metrics, datasets *handlers.DatasetHandler) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	resultsHandler := handlers.NewResultsHandler(store, cfg, palette, metrics)

	route := func(h http.HandlerFunc) http.HandlerFunc {
		return metrics.Instrument(middleware.WithLogging(h))
	}

	// Health check
	mux.HandleFunc("GET /health", metrics.Instrument(func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}))

	// Dataset (reload requires X-Admin-Key)
	mux.HandleFunc("GET /dataset", route(datasets.GetDataset))
	mux.HandleFunc("POST /dataset/reload", route(datasets.ReloadDataset))

	// Filters and results (public, bodies carry the filter)
	mux.HandleFunc("GET /filters", route(resultsHandler.GetFilters))
	mux.HandleFunc("POST /votes/{ballot}", route(resultsHandler.GetVotes))
	mux.HandleFunc("POST /coalitions", route(resultsHandler.GetCoalitions))
	mux.HandleFunc("POST /charts/{column}", route(resultsHandler.GetChart))
	mux.HandleFunc("POST /social", route(resultsHandler.GetSocial))
	mux.HandleFunc("POST /info", route(resultsHandler.GetInfo))
	mux.HandleFunc("POST /crosstab/{column}", route(resultsHandler.GetCrosstab))
	mux.HandleFunc("POST /respondents", route(resultsHandler.GetRespondents))

	// Prometheus
	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("juniorwahl API v1"))
	})

	return mux
}
