// Package testutil provides common test helpers for handler and router
// tests: a pre-seeded result store and small HTTP assertion utilities.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bjquota/models"
	"bjquota/store"
)

// Well-known fixture values used across handler tests.
const (
	// WinnerCode is a waiting-list code with a sequence number inside the
	// winning cutoff.
	WinnerCode = "1186000000001"
	// WaitingCode is a waiting-list code far beyond the winning cutoff.
	WaitingCode = "1186000600001"
	// ScoreCode is an application code from the score-ranking document.
	ScoreCode = "2386100000002"
	// ScoreIDNumber is the masked ID attached to ScoreCode.
	ScoreIDNumber = "110228****1240"
)

// SetupTestStore creates a store backed by a temp directory and seeds it
// with one waiting-list document and one score-ranking document.
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}

	waiting := store.NewAggregate(models.DocumentMetadata{
		Filename:     "jtly202401.pdf",
		SourceURL:    "https://xkczb.jtw.beijing.gov.cn/jggb/jtly202401.pdf",
		DownloadTime: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		EntryCount:   2,
		Format:       models.FormatWaitingList,
	}, []models.WaitingListEntry{
		{
			SequenceNumber:  12,
			ApplicationCode: WinnerCode,
			WaitingTime:     time.Date(2018, 1, 7, 14, 56, 11, 401_000_000, time.UTC),
		},
		{
			SequenceNumber:  612345,
			ApplicationCode: WaitingCode,
			WaitingTime:     time.Date(2021, 6, 2, 9, 12, 45, 18_000_000, time.UTC),
		},
	}, nil)
	if err := s.AddDocument(waiting); err != nil {
		t.Fatalf("Failed to seed waiting-list document: %v", err)
	}

	score := store.NewAggregate(models.DocumentMetadata{
		Filename:     "jfpm202401.pdf",
		SourceURL:    "https://xkczb.jtw.beijing.gov.cn/jggb/jfpm202401.pdf",
		DownloadTime: time.Date(2024, 3, 1, 8, 5, 0, 0, time.UTC),
		EntryCount:   1,
		Format:       models.FormatScoreRanking,
	}, nil, []models.ScoreRankingEntry{
		{
			SequenceNumber:           1,
			ApplicationCode:          ScoreCode,
			ApplicantName:            "孟红伟",
			IDNumber:                 ScoreIDNumber,
			FamilyGenerationCount:    3,
			TotalFamilyScore:         300,
			EarliestRegistrationTime: time.Date(2011, 2, 24, 20, 35, 11, 0, time.UTC),
		},
	})
	if err := s.AddDocument(score); err != nil {
		t.Fatalf("Failed to seed score-ranking document: %v", err)
	}

	return s
}

// MakeRequest creates an HTTP test request, JSON-encoding body when non-nil.
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code.
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct.
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
