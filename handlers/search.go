package handlers

import (
	"fmt"
	"net/http"
	"regexp"

	"bjquota/metrics"
	"bjquota/middleware"
	"bjquota/models"
	"bjquota/store"
)

// Winning waiting-list entries never carry a sequence number beyond the
// published quota; anything above means the applicant is still queued.
const winningSequenceCutoff = 50000

var (
	codePattern   = regexp.MustCompile(`^\d{4,}$`)
	prefixPattern = regexp.MustCompile(`^\d{6}$`)
	suffixPattern = regexp.MustCompile(`^\d{4}$`)
)

type SearchHandler struct {
	store *store.Store
	m     *metrics.Metrics
}

func NewSearchHandler(st *store.Store, m *metrics.Metrics) *SearchHandler {
	return &SearchHandler{store: st, m: m}
}

// SearchByCode handles POST /search/application-code
func (h *SearchHandler) SearchByCode(w http.ResponseWriter, r *http.Request) {
	var req models.CodeSearchRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !codePattern.MatchString(req.ApplicationCode) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "application_code must be a numeric code")
		return
	}

	hits := h.store.FindByApplicationCode(req.ApplicationCode)
	h.recordSearch("application_code", len(hits) > 0)

	resp := models.CodeSearchResponse{
		ApplicationCode: req.ApplicationCode,
		Results:         hits,
		Count:           len(hits),
	}
	if len(hits) == 0 {
		resp.Message = "未在已发布的结果中找到该申请编码"
		middleware.JSONResponse(w, http.StatusOK, resp)
		return
	}

	resp.Found = true
	resp.WinnerDetected = anyWinner(hits)
	resp.StatusInfo = statusInfo(hits)
	if resp.WinnerDetected {
		resp.Message = "恭喜！该申请编码出现在中签结果中"
		resp.CelebrationSuggestion = celebrationSuggestion(req.ApplicationCode)
		if h.m != nil {
			h.m.WinnersFound.Inc()
		}
	} else {
		resp.Message = "该申请编码仍在轮候队列中"
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// SearchByID handles POST /search/id-number
func (h *SearchHandler) SearchByID(w http.ResponseWriter, r *http.Request) {
	var req models.IDSearchRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.IDPrefix == "" && req.IDSuffix == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one of id_prefix or id_suffix is required")
		return
	}
	if req.IDPrefix != "" && !prefixPattern.MatchString(req.IDPrefix) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id_prefix must be the first 6 digits of the ID number")
		return
	}
	if req.IDSuffix != "" && !suffixPattern.MatchString(req.IDSuffix) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id_suffix must be the last 4 digits of the ID number")
		return
	}

	hits := h.store.FindByIDPrefixOrSuffix(req.IDPrefix, req.IDSuffix)
	h.recordSearch("id_number", len(hits) > 0)

	resp := models.IDSearchResponse{
		SearchPattern: searchPattern(req),
		SearchType:    searchType(req),
		Results:       hits,
		Count:         len(hits),
	}
	if len(hits) == 0 {
		resp.Message = "未找到匹配该证件号码片段的中签记录"
		middleware.JSONResponse(w, http.StatusOK, resp)
		return
	}

	resp.Found = true
	resp.WinnerDetected = anyWinner(hits)
	resp.MultipleWinners = len(hits) > 1
	resp.StatusInfo = statusInfo(hits)
	if resp.MultipleWinners {
		resp.Message = fmt.Sprintf("找到 %d 条匹配记录，请结合申请编码确认", len(hits))
	} else {
		resp.Message = "找到匹配的中签记录"
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

func (h *SearchHandler) recordSearch(kind string, found bool) {
	if h.m != nil {
		h.m.RecordSearch(kind, found)
	}
}

// anyWinner reports whether any hit represents a winning entry. Score
// ranking documents only publish winners; waiting list entries win when
// their position falls inside the published quota.
func anyWinner(hits []models.SearchHit) bool {
	for _, hit := range hits {
		if hit.Type != models.FormatWaitingList {
			return true
		}
		if hit.SequenceNumber > 0 && hit.SequenceNumber <= winningSequenceCutoff {
			return true
		}
	}
	return false
}

func statusInfo(hits []models.SearchHit) string {
	for _, hit := range hits {
		if hit.Type == models.FormatScoreRanking {
			return fmt.Sprintf("积分排序入围，家庭总积分 %d", hit.TotalFamilyScore)
		}
	}
	return fmt.Sprintf("轮候序号 %d", hits[0].SequenceNumber)
}

func searchPattern(req models.IDSearchRequest) string {
	switch {
	case req.IDPrefix != "" && req.IDSuffix != "":
		return req.IDPrefix + "****" + req.IDSuffix
	case req.IDPrefix != "":
		return req.IDPrefix + "****????"
	default:
		return "??????****" + req.IDSuffix
	}
}

func searchType(req models.IDSearchRequest) string {
	switch {
	case req.IDPrefix != "" && req.IDSuffix != "":
		return "exact"
	case req.IDPrefix != "":
		return "prefix"
	default:
		return "suffix"
	}
}

func celebrationSuggestion(applicationCode string) *models.Suggestion {
	return &models.Suggestion{
		Message:  "检测到中签！可以生成庆祝页面分享好消息",
		Action:   "generate_celebration",
		Endpoint: "/celebration/generate",
		Parameters: models.CelebrationRequest{
			ApplicationCode: applicationCode,
			SaveToFile:      true,
		},
	}
}
