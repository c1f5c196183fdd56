package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"bjquota/celebration"
	"bjquota/middleware"
	"bjquota/models"
	"bjquota/store"
)

type CelebrationHandler struct {
	store     *store.Store
	generator *celebration.Generator
}

func NewCelebrationHandler(st *store.Store, g *celebration.Generator) *CelebrationHandler {
	return &CelebrationHandler{store: st, generator: g}
}

// Generate handles POST /celebration/generate
func (h *CelebrationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.CelebrationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ApplicationCode == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "application_code is required")
		return
	}

	hits := h.store.FindByApplicationCode(req.ApplicationCode)
	if len(hits) == 0 {
		middleware.JSONResponse(w, http.StatusNotFound, models.CelebrationResponse{
			Success: false,
			Message: "该申请编码未出现在已发布的结果中，无法生成庆祝页面",
		})
		return
	}
	if !anyWinner(hits) {
		middleware.JSONResponse(w, http.StatusOK, models.CelebrationResponse{
			Success:      false,
			Message:      "该申请编码仍在轮候中，祝早日中签！",
			ResultsCount: len(hits),
		})
		return
	}

	html, savedFile, err := h.generator.Generate(req, hits)
	if err != nil {
		log.Error().Err(err).Str("code", req.ApplicationCode).Msg("celebration generation failed")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "failed to generate celebration page")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CelebrationResponse{
		Success:              true,
		Message:              "庆祝页面已生成",
		CelebrationGenerated: true,
		ApplicationCode:      req.ApplicationCode,
		WinnerName:           req.Name,
		ResultsCount:         len(hits),
		SharingLinks:         celebration.SharingLinks(req.ApplicationCode),
		SavedFile:            savedFile,
		HTMLContent:          html,
	})
}
