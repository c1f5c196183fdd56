package handlers

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"bjquota/middleware"
	"bjquota/models"
	"bjquota/policy"
)

type PolicyHandler struct {
	db      *policy.DB
	scraper *policy.Scraper
}

func NewPolicyHandler(db *policy.DB, sc *policy.Scraper) *PolicyHandler {
	return &PolicyHandler{db: db, scraper: sc}
}

// Explain handles POST /policy/explain
func (h *PolicyHandler) Explain(w http.ResponseWriter, r *http.Request) {
	var req models.PolicyExplainRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question is required")
		return
	}

	resp, err := policy.Explain(h.db, req)
	if err != nil {
		log.Error().Err(err).Msg("policy explanation failed")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "failed to answer the question")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Scrape handles POST /data/scrape-policy
func (h *PolicyHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	titles, err := h.scraper.Scrape(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("policy scrape failed")
		middleware.JSONResponse(w, http.StatusBadGateway, models.PolicyScrapeResponse{
			Success: false,
			Message: "policy scrape failed: " + err.Error(),
		})
		return
	}

	total, err := h.db.Count()
	if err != nil {
		log.Error().Err(err).Msg("failed to count policy documents")
	}

	middleware.JSONResponse(w, http.StatusOK, models.PolicyScrapeResponse{
		Success:        true,
		Message:        "policy documents scraped",
		TotalDocuments: total,
		Documents:      titles,
	})
}
