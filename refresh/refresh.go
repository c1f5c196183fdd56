// Package refresh orchestrates one data refresh: scrape the announcement
// site, download new PDFs, parse them and add the results to the store. The
// HTTP refresh endpoint and the cron schedule both run through it.
package refresh

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bjquota/metrics"
	"bjquota/models"
	"bjquota/parser"
	"bjquota/scraper"
	"bjquota/store"
)

// DefaultMaxPages bounds a refresh that does not ask for more.
const DefaultMaxPages = 5

// Service ties the scraper, parser and store together.
type Service struct {
	scraper *scraper.Scraper
	store   *store.Store
	metrics *metrics.Metrics
}

// New builds a refresh service. metrics may be nil in tests.
func New(sc *scraper.Scraper, st *store.Store, m *metrics.Metrics) *Service {
	return &Service{scraper: sc, store: st, metrics: m}
}

// Run performs one refresh pass. Individual document failures are collected
// into the response rather than aborting the run.
func (s *Service) Run(ctx context.Context, maxPages int, trigger string) models.RefreshResponse {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	resp := models.RefreshResponse{}

	downloads, err := s.scraper.ScrapeAndDownload(ctx, maxPages)
	if err != nil {
		resp.Message = fmt.Sprintf("scrape failed: %v", err)
		resp.Errors = append(resp.Errors, err.Error())
		s.record(trigger, "failure")
		return resp
	}
	resp.FilesDownloaded = len(downloads)

	for _, dl := range downloads {
		agg, err := parser.ParseFile(s.scraper.Path(dl.Filename), dl.URL, dl.FetchedAt)
		if err != nil {
			log.Error().Err(err).Str("filename", dl.Filename).Msg("parse failed")
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", dl.Filename, err))
			if s.metrics != nil {
				s.metrics.ParseFailuresTotal.Inc()
			}
			continue
		}

		report := parser.Validate(agg)
		if !report.IsValid {
			log.Warn().Str("filename", dl.Filename).Strs("errors", report.Errors).
				Msg("document rejected by validation")
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", dl.Filename, report.Errors))
			continue
		}

		if err := s.store.AddDocument(agg); err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", dl.Filename, err))
			continue
		}
		resp.FilesProcessed++
	}

	resp.Success = len(resp.Errors) == 0
	resp.Message = fmt.Sprintf("downloaded %d files, processed %d",
		resp.FilesDownloaded, resp.FilesProcessed)

	if s.metrics != nil {
		stats := s.store.Statistics()
		s.metrics.UpdateStoreStats(stats.TotalFiles, stats.TotalEntries)
	}
	if resp.Success {
		s.record(trigger, "success")
	} else {
		s.record(trigger, "partial")
	}

	log.Info().
		Int("downloaded", resp.FilesDownloaded).
		Int("processed", resp.FilesProcessed).
		Int("errors", len(resp.Errors)).
		Msg("refresh finished")
	return resp
}

func (s *Service) record(trigger, status string) {
	if s.metrics != nil {
		s.metrics.RefreshesTotal.WithLabelValues(trigger, status).Inc()
	}
}
