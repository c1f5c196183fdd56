package models

import "time"

// FormatKind identifies which of the two published record layouts a
// document uses. Detection happens once per document; a document never
// mixes formats.
type FormatKind string

const (
	FormatWaitingList  FormatKind = "waiting_list"
	FormatScoreRanking FormatKind = "score_ranking"
	FormatUnknown      FormatKind = "unknown"
)

// TimeLayout is the timestamp layout used in both record formats
// (millisecond precision, zero-padded).
const TimeLayout = "2006-01-02 15:04:05.000"

// Domain types

// WaitingListEntry is one row of a waiting-list document (轮候序号列表):
// sequence number, application code, waiting time.
type WaitingListEntry struct {
	SequenceNumber  int       `json:"sequence_number"`
	ApplicationCode string    `json:"application_code"`
	WaitingTime     time.Time `json:"waiting_time"`
}

// ScoreRankingEntry is one row of a score-ranking document (积分排序入围名单).
// IDNumber is already masked in the source document (6 digits, asterisks,
// 4 digits) and is stored verbatim, never reconstructed.
type ScoreRankingEntry struct {
	SequenceNumber           int       `json:"sequence_number"`
	ApplicationCode          string    `json:"application_code"`
	ApplicantName            string    `json:"applicant_name"`
	IDNumber                 string    `json:"id_number"`
	FamilyGenerationCount    int       `json:"family_generation_count"`
	TotalFamilyScore         int       `json:"total_family_score"`
	EarliestRegistrationTime time.Time `json:"earliest_registration_time"`
}

// DocumentMetadata describes one parsed source document. Immutable after
// creation except ProcessingTime.
type DocumentMetadata struct {
	Filename       string     `json:"filename"`
	SourceURL      string     `json:"source_url"`
	DownloadTime   time.Time  `json:"download_time"`
	FileSize       int64      `json:"file_size"`
	PageCount      int        `json:"page_count"`
	EntryCount     int        `json:"entry_count"`
	Format         FormatKind `json:"format"`
	ProcessingTime *time.Time `json:"processing_time,omitempty"`
}

// SearchHit is one lookup result row: a format-appropriate projection of a
// single entry, annotated with its source document.
type SearchHit struct {
	Type            FormatKind `json:"type"`
	SequenceNumber  int        `json:"sequence_number"`
	ApplicationCode string     `json:"application_code"`

	// Waiting-list fields
	WaitingTime *time.Time `json:"waiting_time,omitempty"`

	// Score-ranking fields
	ApplicantName            string     `json:"applicant_name,omitempty"`
	IDNumber                 string     `json:"id_number,omitempty"`
	FamilyGenerationCount    int        `json:"family_generation_count,omitempty"`
	TotalFamilyScore         int        `json:"total_family_score,omitempty"`
	EarliestRegistrationTime *time.Time `json:"earliest_registration_time,omitempty"`

	// Source annotations
	SourceFile   string     `json:"source_file,omitempty"`
	SourceURL    string     `json:"source_url,omitempty"`
	DownloadTime *time.Time `json:"download_time,omitempty"`
}

// ValidationReport is the advisory post-parse check result. Validation
// failures never block admission; the caller decides.
type ValidationReport struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// FileInfo is the per-file line of the statistics snapshot.
type FileInfo struct {
	Filename     string     `json:"filename"`
	Format       FormatKind `json:"type"`
	Entries      int        `json:"entries"`
	SourceURL    string     `json:"source_url"`
	DownloadTime time.Time  `json:"download_time"`
}

// StoreStats is the statistics snapshot consumed by the analysis and
// presentation layers.
type StoreStats struct {
	TotalFiles              int            `json:"total_files"`
	TotalEntries            int            `json:"total_entries"`
	LastUpdate              *time.Time     `json:"last_update"`
	ApplicationCodesIndexed int            `json:"application_codes_indexed"`
	IDNumbersIndexed        int            `json:"id_numbers_indexed"`
	FilesByType             map[string]int `json:"files_by_type"`
	Files                   []FileInfo     `json:"files"`
}

// Request types

type CodeSearchRequest struct {
	ApplicationCode string `json:"application_code"`
}

type IDSearchRequest struct {
	IDPrefix string `json:"id_prefix,omitempty"`
	IDSuffix string `json:"id_suffix,omitempty"`
}

type CelebrationRequest struct {
	ApplicationCode string `json:"application_code"`
	Name            string `json:"name,omitempty"`
	SaveToFile      bool   `json:"save_to_file,omitempty"`
}

type PolicyExplainRequest struct {
	Question    string `json:"question"`
	DetailLevel string `json:"detail_level,omitempty"`
	Category    string `json:"category,omitempty"`
}

// Response types

type CodeSearchResponse struct {
	Found                 bool        `json:"found"`
	ApplicationCode       string      `json:"application_code"`
	Message               string      `json:"message,omitempty"`
	Results               []SearchHit `json:"results,omitempty"`
	Count                 int         `json:"count"`
	WinnerDetected        bool        `json:"winner_detected"`
	StatusInfo            string      `json:"status_info,omitempty"`
	CelebrationSuggestion *Suggestion `json:"celebration_suggestion,omitempty"`
}

type IDSearchResponse struct {
	Found           bool        `json:"found"`
	SearchPattern   string      `json:"search_pattern"`
	SearchType      string      `json:"search_type"`
	Message         string      `json:"message,omitempty"`
	Results         []SearchHit `json:"results,omitempty"`
	Count           int         `json:"count"`
	WinnerDetected  bool        `json:"winner_detected"`
	MultipleWinners bool        `json:"multiple_winners,omitempty"`
	StatusInfo      string      `json:"status_info,omitempty"`
}

// Suggestion nudges API consumers toward the celebration endpoint when a
// winning entry turns up in a search.
type Suggestion struct {
	Message    string             `json:"message"`
	Action     string             `json:"action"`
	Endpoint   string             `json:"endpoint"`
	Parameters CelebrationRequest `json:"parameters"`
}

type CelebrationResponse struct {
	Success              bool              `json:"success"`
	Message              string            `json:"message"`
	CelebrationGenerated bool              `json:"celebration_generated"`
	ApplicationCode      string            `json:"application_code,omitempty"`
	WinnerName           string            `json:"winner_name,omitempty"`
	ResultsCount         int               `json:"lottery_results_count,omitempty"`
	SharingLinks         map[string]string `json:"sharing_links,omitempty"`
	SavedFile            string            `json:"saved_file,omitempty"`
	HTMLContent          string            `json:"html_content,omitempty"`
}

type RefreshResponse struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	FilesDownloaded int      `json:"files_downloaded"`
	FilesProcessed  int      `json:"files_processed"`
	Errors          []string `json:"errors,omitempty"`
}

type HealthResponse struct {
	Status    string     `json:"status"`
	Server    string     `json:"server"`
	Version   string     `json:"version"`
	DataStats StoreStats `json:"data_stats"`
}

type FileListResponse struct {
	TotalFiles int        `json:"total_files"`
	Files      []FileInfo `json:"files"`
}

type PolicyExplainResponse struct {
	Question        string   `json:"question"`
	Answer          string   `json:"answer"`
	Confidence      string   `json:"confidence"`
	Sources         []string `json:"sources"`
	RelatedTopics   []string `json:"related_topics,omitempty"`
	ActionableSteps []string `json:"actionable_steps,omitempty"`
	Suggestions     []string `json:"suggestions,omitempty"`
}

type PolicyScrapeResponse struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	TotalDocuments int      `json:"total_documents"`
	Documents      []string `json:"documents,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
