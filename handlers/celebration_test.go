package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"bjquota/celebration"
	"bjquota/models"
	"bjquota/testutil"
)

func TestCelebrationGenerate(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewCelebrationHandler(st, celebration.New(t.TempDir()))

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.CelebrationResponse)
	}{
		{
			name:           "winner gets a celebration page",
			body:           models.CelebrationRequest{ApplicationCode: testutil.WinnerCode, Name: "张伟"},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *models.CelebrationResponse) {
				if !resp.Success || !resp.CelebrationGenerated {
					t.Errorf("Expected a generated celebration, got %+v", resp)
				}
				if !strings.Contains(resp.HTMLContent, "张伟") {
					t.Error("Expected winner name in the HTML content")
				}
				if resp.SharingLinks["weibo"] == "" || resp.SharingLinks["copy"] == "" {
					t.Errorf("Expected sharing links, got %v", resp.SharingLinks)
				}
				if resp.SavedFile != "" {
					t.Errorf("Expected no saved file without save_to_file, got %q", resp.SavedFile)
				}
			},
		},
		{
			name:           "winner with save_to_file",
			body:           models.CelebrationRequest{ApplicationCode: testutil.ScoreCode, SaveToFile: true},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *models.CelebrationResponse) {
				if resp.SavedFile == "" {
					t.Error("Expected a saved file path")
				}
				if !strings.HasPrefix(filepath.Base(resp.SavedFile), "celebration_") {
					t.Errorf("Unexpected saved file name %q", resp.SavedFile)
				}
			},
		},
		{
			name:           "still waiting applicant",
			body:           models.CelebrationRequest{ApplicationCode: testutil.WaitingCode},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *models.CelebrationResponse) {
				if resp.Success || resp.CelebrationGenerated {
					t.Error("Non-winners must not get a celebration page")
				}
				if !strings.Contains(resp.Message, "轮候") {
					t.Errorf("Expected waiting message, got %q", resp.Message)
				}
			},
		},
		{
			name:           "unknown application code",
			body:           models.CelebrationRequest{ApplicationCode: "9999999999999"},
			expectedStatus: http.StatusNotFound,
			checkResponse: func(t *testing.T, resp *models.CelebrationResponse) {
				if resp.Success {
					t.Error("Expected success=false for unknown code")
				}
			},
		},
		{
			name:           "missing application code",
			body:           models.CelebrationRequest{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest(http.MethodPost, "/celebration/generate", tt.body, nil)
			w := httptest.NewRecorder()
			handler.Generate(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.checkResponse != nil {
				var resp models.CelebrationResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}
