// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/juniorwahl/auth"
	"github.com/danielhkuo/juniorwahl/cliparse"
	"github.com/danielhkuo/juniorwahl/db"
	"github.com/danielhkuo/juniorwahl/middleware"
	"github.com/danielhkuo/juniorwahl/models"
	"github.com/danielhkuo/juniorwahl/survey"
)

// DatasetHandler owns the loaded survey file
type DatasetHandler struct {
	store   *db.Store
	cfg     cliparse.Config
	metrics *middleware.Metrics

	// loadMu serializes loads; mu only guards the metadata below
	loadMu sync.Mutex

	mu          sync.RWMutex
	source      survey.Source
	respondents int
	loadedAt    time.Time
}

func NewDatasetHandler(store *db.Store, cfg cliparse.Config, metrics *middleware.Metrics) *DatasetHandler {
	return &DatasetHandler{store: store, cfg: cfg, metrics: metrics}
}

// Load reads the configured CSV and replaces the stored respondents.
// On error the previous dataset stays in place.
func (h *DatasetHandler) Load(ctx context.Context) error {
	h.loadMu.Lock()
	defer h.loadMu.Unlock()

	respondents, src, err := survey.LoadFile(h.cfg.DataFile)
	if err != nil {
		h.metrics.RecordLoad(0, err)
		return err
	}

	if err := h.store.Replace(ctx, respondents); err != nil {
		h.metrics.RecordLoad(0, err)
		return fmt.Errorf("failed to store respondents: %w", err)
	}

	h.mu.Lock()
	h.source = src
	h.respondents = len(respondents)
	h.loadedAt = time.Now().UTC()
	h.mu.Unlock()

	h.metrics.RecordLoad(len(respondents), nil)

	slog.Info("dataset loaded",
		"path", src.Path,
		"size", humanize.Bytes(uint64(src.Size)),
		"respondents", humanize.Comma(int64(len(respondents))),
		"sha256", src.SHA256,
	)

	return nil
}

func (h *DatasetHandler) snapshot() models.DatasetResponse {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return models.DatasetResponse{
		Source:      h.source,
		Respondents: h.respondents,
		LoadedAt:    h.loadedAt,
	}
}

// GetDataset handles GET /dataset
func (h *DatasetHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.snapshot())
}

// ReloadDataset handles POST /dataset/reload
// Requires X-Admin-Key; disabled when no admin salt is configured
func (h *DatasetHandler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.ReloadEnabled() {
		middleware.ErrorResponse(w, http.StatusForbidden, "Dataset reload is disabled")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if adminKey == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Admin-Key header required")
		return
	}

	err := auth.ValidateAdminKey(auth.ReloadScope, adminKey, h.cfg.AdminKeySalt)
	if errors.Is(err, auth.ErrInvalidAdminKey) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}
	if err != nil {
		slog.Error("failed to validate admin key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
		return
	}

	if err := h.Load(r.Context()); err != nil {
		slog.Error("dataset reload failed", "path", h.cfg.DataFile, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reload dataset")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.snapshot())
}
