package policy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"bjquota/scraper"
)

const (
	guidePath   = "/bszn/index.html"
	httpTimeout = 60 * time.Second
	userAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// Pages shorter than this after text extraction are navigation shells,
	// not policy content.
	minContentRunes = 200
)

// Scraper fetches the service-guide pages of the announcement site and files
// them into the knowledge base.
type Scraper struct {
	baseURL string
	db      *DB
	client  *http.Client
}

// NewScraper builds a policy scraper writing into db.
func NewScraper(baseURL string, db *DB) *Scraper {
	return &Scraper{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		db:      db,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

// Scrape walks the service-guide index one level deep, extracts the text of
// each linked page and upserts it into the knowledge base. It returns the
// titles of the documents stored in this run.
func (s *Scraper) Scrape(ctx context.Context) ([]string, error) {
	indexURL := s.baseURL + guidePath
	body, err := s.fetch(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("guide index: %w", err)
	}

	links := scraper.ExtractNoticeLinks(body, indexURL, nil)
	log.Info().Int("links", len(links)).Str("url", indexURL).Msg("policy guide index scraped")

	var stored []string
	seen := make(map[string]bool)
	for _, link := range links {
		if seen[link.URL] || !s.sameSite(link.URL) {
			continue
		}
		seen[link.URL] = true

		page, err := s.fetch(ctx, link.URL)
		if err != nil {
			log.Warn().Err(err).Str("url", link.URL).Msg("policy page failed")
			continue
		}

		content := scraper.ExtractText(page)
		if len([]rune(content)) < minContentRunes {
			continue
		}

		doc := Document{
			Title:     link.Title,
			URL:       link.URL,
			Category:  Categorize(link.Title),
			Content:   content,
			FetchedAt: time.Now(),
		}
		if err := s.db.Upsert(doc); err != nil {
			log.Error().Err(err).Str("url", link.URL).Msg("failed to store policy document")
			continue
		}
		stored = append(stored, doc.Title)
	}

	log.Info().Int("documents", len(stored)).Msg("policy scrape completed")
	return stored, nil
}

// Categorize maps a document title onto a coarse category used for filtered
// lookups.
func Categorize(title string) string {
	switch {
	case strings.Contains(title, "家庭"):
		return "family"
	case strings.Contains(title, "单位") || strings.Contains(title, "企业"):
		return "unit"
	case strings.Contains(title, "个人"):
		return "individual"
	case strings.Contains(title, "更新"):
		return "renewal"
	default:
		return "general"
	}
}

func (s *Scraper) sameSite(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

func (s *Scraper) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s returned %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}
