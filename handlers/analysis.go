package handlers

import (
	"net/http"
	"time"

	"bjquota/analysis"
	"bjquota/middleware"
)

type AnalysisHandler struct {
	analyzer *analysis.Analyzer
}

func NewAnalysisHandler(a *analysis.Analyzer) *AnalysisHandler {
	return &AnalysisHandler{analyzer: a}
}

// Comprehensive handles GET /analysis/comprehensive
func (h *AnalysisHandler) Comprehensive(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.analyzer.Comprehensive())
}

// SuccessRates handles GET /analysis/success-rates
func (h *AnalysisHandler) SuccessRates(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"analysis_type": "success_rates",
		"timestamp":     time.Now(),
		"success_rates": h.analyzer.SuccessRates(),
	})
}

// WaitingTime handles GET /analysis/waiting-time
func (h *AnalysisHandler) WaitingTime(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"analysis_type":    "waiting_time",
		"timestamp":        time.Now(),
		"waiting_analysis": h.analyzer.WaitingTime(),
	})
}

// Trends handles GET /analysis/trends
func (h *AnalysisHandler) Trends(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"analysis_type": "trends",
		"timestamp":     time.Now(),
		"trends":        h.analyzer.TrendAnalysis(),
	})
}
