package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"bjquota/metrics"
	"bjquota/middleware"
	"bjquota/models"
	"bjquota/refresh"
	"bjquota/store"
)

const serverVersion = "1.0.0"

type DataHandler struct {
	store     *store.Store
	refresher *refresh.Service
	m         *metrics.Metrics
}

func NewDataHandler(st *store.Store, refresher *refresh.Service, m *metrics.Metrics) *DataHandler {
	return &DataHandler{store: st, refresher: refresher, m: m}
}

// Health handles GET /health
func (h *DataHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Server:    "bjquota",
		Version:   serverVersion,
		DataStats: h.store.Statistics(),
	})
}

// Statistics handles GET /data/statistics
func (h *DataHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.store.Statistics())
}

// Files handles GET /data/files
func (h *DataHandler) Files(w http.ResponseWriter, r *http.Request) {
	stats := h.store.Statistics()
	middleware.JSONResponse(w, http.StatusOK, models.FileListResponse{
		TotalFiles: stats.TotalFiles,
		Files:      stats.Files,
	})
}

// Refresh handles POST /data/refresh?max_pages=N
func (h *DataHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	maxPages := refresh.DefaultMaxPages
	if raw := r.URL.Query().Get("max_pages"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "max_pages must be a positive integer")
			return
		}
		maxPages = n
	}

	resp := h.refresher.Run(r.Context(), maxPages, "api")

	status := http.StatusOK
	if !resp.Success && resp.FilesProcessed == 0 && resp.FilesDownloaded == 0 && len(resp.Errors) > 0 {
		status = http.StatusBadGateway
	}
	middleware.JSONResponse(w, status, resp)
}

// Clear handles POST /data/clear
func (h *DataHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(); err != nil {
		log.Error().Err(err).Msg("failed to clear store")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "failed to clear stored data")
		return
	}
	if h.m != nil {
		h.m.UpdateStoreStats(0, 0)
	}
	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "all stored results cleared",
	})
}
