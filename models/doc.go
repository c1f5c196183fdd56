/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - WaitingListEntry: one row of a waiting-list document (序号 申请编码 轮候时间)
  - ScoreRankingEntry: one row of a score-ranking document, with the masked
    ID number stored verbatim
  - DocumentMetadata: per-document metadata (filename, source URL, counts)
  - SearchHit: a lookup result row annotated with its source document
  - ValidationReport: advisory post-parse check result
  - StoreStats / FileInfo: statistics snapshot for analysis and presentation

# Format Kinds

Every document carries exactly one format:

	FormatWaitingList  = "waiting_list"
	FormatScoreRanking = "score_ranking"
	FormatUnknown      = "unknown"

# Request Types

  - CodeSearchRequest: application_code
  - IDSearchRequest: id_prefix and/or id_suffix
  - CelebrationRequest: application_code, name, save_to_file
  - PolicyExplainRequest: question, detail_level, category

# Response Types

  - CodeSearchResponse / IDSearchResponse: results plus winner detection
  - CelebrationResponse: generated page info and sharing links
  - RefreshResponse: per-batch download/parse outcome
  - HealthResponse, FileListResponse, PolicyExplainResponse
  - ErrorResponse: error, message
*/
package models
