package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"bjquota/models"
	"bjquota/store"
)

// Document is the parser's view of one source document: page texts plus the
// acquisition metadata the core needs (filename, source URL, download time).
type Document struct {
	Filename     string
	SourceURL    string
	DownloadTime time.Time
	FileSize     int64
	Pages        []string
}

// samplePages is how many leading pages feed format detection.
const samplePages = 3

// Parse turns one document into an aggregate: detect the format once, match
// lines page by page, then bulk-convert the matched lines into typed records.
// entry_count counts converted records, not matched lines; a matched line
// whose groups fail conversion is logged and dropped without aborting the
// document.
//
// For unknown format, line matching still runs against both patterns but no
// typed entries are produced; the aggregate stays empty with entry_count 0.
func Parse(doc Document) *store.Aggregate {
	format := DetectFormat(sampleText(doc.Pages))
	log.Info().
		Str("filename", doc.Filename).
		Str("format", string(format)).
		Int("pages", len(doc.Pages)).
		Msg("parsing document")

	var rawLines []string
	for _, page := range doc.Pages {
		rawLines = append(rawLines, extractLines(page, format)...)
	}

	var (
		waiting []models.WaitingListEntry
		score   []models.ScoreRankingEntry
	)
	switch format {
	case models.FormatWaitingList:
		waiting = convertWaitingLines(rawLines)
	case models.FormatScoreRanking:
		score = convertScoreLines(rawLines)
	case models.FormatUnknown:
		// Best-effort fallback: lines were collected, but with no known
		// layout there is nothing to convert them into.
	}

	now := time.Now()
	meta := models.DocumentMetadata{
		Filename:       doc.Filename,
		SourceURL:      doc.SourceURL,
		DownloadTime:   doc.DownloadTime,
		FileSize:       doc.FileSize,
		PageCount:      len(doc.Pages),
		EntryCount:     len(waiting) + len(score),
		Format:         format,
		ProcessingTime: &now,
	}

	return store.NewAggregate(meta, waiting, score)
}

// sampleText concatenates leading pages until the detector has enough text.
func sampleText(pages []string) string {
	var b strings.Builder
	for i, page := range pages {
		if i >= samplePages || b.Len() > sampleLimit {
			break
		}
		b.WriteString(page)
	}
	return b.String()
}

// extractLines applies the pre-filter and pattern match to every line of one
// page, returning the matched raw lines.
func extractLines(pageText string, format models.FormatKind) []string {
	var matched []string
	for _, line := range strings.Split(pageText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || IsNoiseLine(line) {
			continue
		}
		if MatchLine(line, format) {
			matched = append(matched, line)
		}
	}
	return matched
}

func convertWaitingLines(raw []string) []models.WaitingListEntry {
	entries := make([]models.WaitingListEntry, 0, len(raw))
	for _, line := range raw {
		entry, err := ParseWaitingLine(line)
		if err != nil {
			log.Warn().Err(err).Str("line", line).Msg("failed to parse waiting list entry")
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func convertScoreLines(raw []string) []models.ScoreRankingEntry {
	entries := make([]models.ScoreRankingEntry, 0, len(raw))
	for _, line := range raw {
		entry, err := ParseScoreLine(line)
		if err != nil {
			log.Warn().Err(err).Str("line", line).Msg("failed to parse score ranking entry")
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// Validate checks a parsed aggregate and returns an advisory report. Zero
// entries is an error; gaps in the sequence numbering and duplicate
// application codes are warnings. The caller decides whether to admit the
// document regardless.
func Validate(agg *store.Aggregate) models.ValidationReport {
	report := models.ValidationReport{
		IsValid:  true,
		Errors:   []string{},
		Warnings: []string{},
	}

	if agg.EntryCount() == 0 {
		report.IsValid = false
		report.Errors = append(report.Errors, "no valid entries found in document")
	}

	var sequenceNumbers []int
	switch agg.Metadata.Format {
	case models.FormatWaitingList:
		for _, e := range agg.WaitingListEntries {
			sequenceNumbers = append(sequenceNumbers, e.SequenceNumber)
		}
	case models.FormatScoreRanking:
		for _, e := range agg.ScoreRankingEntries {
			sequenceNumbers = append(sequenceNumbers, e.SequenceNumber)
		}
	}

	for i, seq := range sequenceNumbers {
		if seq != i+1 {
			report.Warnings = append(report.Warnings, "sequence numbers are not continuous")
			break
		}
	}

	codes := agg.ApplicationCodes()
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		if seen[code] {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("duplicate application codes found (e.g. %s)", code))
			break
		}
		seen[code] = true
	}

	return report
}
