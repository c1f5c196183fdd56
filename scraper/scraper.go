package scraper

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	noticePath  = "/jggb/index.html"
	httpTimeout = 30 * time.Second
	userAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// Pause between listing pages so the announcement site is not hammered.
	pageDelay = 2 * time.Second

	mappingFile = "url_mapping.txt"
)

// TargetKeywords selects announcement links worth following. Anything whose
// anchor text does not mention one of these quota categories is skipped.
var TargetKeywords = []string{
	"北京市家庭新能源小客车指标",
	"北京市单位新能源小客车指标",
	"北京市个人新能源",
}

// Download describes one PDF fetched from the announcement site.
type Download struct {
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	SourcePage string    `json:"source_page"`
	Title      string    `json:"title"`
	Size       int64     `json:"size"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// Scraper walks the quota announcement listing, follows links whose titles
// match TargetKeywords, and downloads the PDFs those notices publish.
type Scraper struct {
	baseURL      string
	downloadsDir string
	client       *http.Client
}

// New constructs a scraper rooted at baseURL that saves PDFs under
// downloadsDir, creating the directory as needed.
func New(baseURL, downloadsDir string) (*Scraper, error) {
	if err := os.MkdirAll(downloadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create downloads directory: %w", err)
	}
	return &Scraper{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		downloadsDir: downloadsDir,
		client:       &http.Client{Timeout: httpTimeout},
	}, nil
}

// PageURL returns the listing URL for a 1-based page number. The site serves
// the first page as index.html and the rest as index_N.html.
func (s *Scraper) PageURL(page int) string {
	if page <= 1 {
		return s.baseURL + noticePath
	}
	return fmt.Sprintf("%s/jggb/index_%d.html", s.baseURL, page)
}

// ScrapeAndDownload walks up to maxPages listing pages and downloads every
// new PDF behind a matching notice. Already-present files are skipped. Errors
// on individual notices or PDFs are logged and do not abort the run.
func (s *Scraper) ScrapeAndDownload(ctx context.Context, maxPages int) ([]Download, error) {
	if maxPages < 1 {
		maxPages = 1
	}

	var downloads []Download
	for page := 1; page <= maxPages; page++ {
		pageURL := s.PageURL(page)
		log.Info().Int("page", page).Str("url", pageURL).Msg("scraping listing page")

		body, err := s.fetch(ctx, pageURL)
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("listing page %d: %w", page, err)
			}
			log.Warn().Err(err).Int("page", page).Msg("listing page failed, stopping pagination")
			break
		}

		links := ExtractNoticeLinks(body, pageURL, TargetKeywords)
		log.Info().Int("page", page).Int("links", len(links)).Msg("matched notice links")

		for _, link := range links {
			got, err := s.processNotice(ctx, link)
			if err != nil {
				log.Error().Err(err).Str("url", link.URL).Msg("notice failed")
				continue
			}
			downloads = append(downloads, got...)
		}

		if page < maxPages {
			select {
			case <-ctx.Done():
				return downloads, ctx.Err()
			case <-time.After(pageDelay):
			}
		}
	}

	log.Info().Int("downloads", len(downloads)).Msg("scrape completed")
	return downloads, nil
}

// processNotice fetches a notice page and downloads each PDF it links to.
func (s *Scraper) processNotice(ctx context.Context, link Link) ([]Download, error) {
	body, err := s.fetch(ctx, link.URL)
	if err != nil {
		return nil, err
	}

	var downloads []Download
	for _, pdfURL := range ExtractPDFLinks(body, link.URL) {
		dl, err := s.downloadPDF(ctx, pdfURL, link)
		if err != nil {
			log.Error().Err(err).Str("pdf", pdfURL).Msg("download failed")
			continue
		}
		if dl != nil {
			downloads = append(downloads, *dl)
		}
	}
	return downloads, nil
}

// downloadPDF fetches one PDF to disk. Returns (nil, nil) when the file is
// already present from an earlier run.
func (s *Scraper) downloadPDF(ctx context.Context, pdfURL string, notice Link) (*Download, error) {
	filename := filenameFor(pdfURL)
	dest := filepath.Join(s.downloadsDir, filename)

	if _, err := os.Stat(dest); err == nil {
		log.Debug().Str("filename", filename).Msg("already downloaded, skipping")
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pdf fetch returned %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", dest, err)
	}
	size, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return nil, fmt.Errorf("write %s: %w", dest, err)
	}

	dl := Download{
		Filename:   filename,
		URL:        pdfURL,
		SourcePage: notice.URL,
		Title:      notice.Title,
		Size:       size,
		FetchedAt:  time.Now(),
	}

	if err := s.appendMapping(dl); err != nil {
		log.Error().Err(err).Msg("failed to record url mapping")
	}

	log.Info().Str("filename", filename).Int64("bytes", size).Str("url", pdfURL).
		Msg("downloaded PDF")
	return &dl, nil
}

func (s *Scraper) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

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

// filenameFor derives a stable local filename from the PDF URL so repeated
// runs recognize files they already have. URLs without a usable basename get
// a random name instead.
func filenameFor(pdfURL string) string {
	u, err := url.Parse(pdfURL)
	if err == nil {
		base := path.Base(u.Path)
		if base != "" && base != "." && base != "/" && strings.HasSuffix(strings.ToLower(base), ".pdf") {
			return base
		}
	}
	return uuid.NewString() + ".pdf"
}

// appendMapping records filename, PDF URL and source page so local files can
// be re-parsed with their provenance intact.
func (s *Scraper) appendMapping(dl Download) error {
	f, err := os.OpenFile(filepath.Join(s.downloadsDir, mappingFile),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s %s %s\n", dl.Filename, dl.URL, dl.SourcePage)
	return err
}

// ExistingDownloads reads the url mapping and returns what earlier runs
// fetched. Files listed in the mapping but missing on disk are dropped.
func (s *Scraper) ExistingDownloads() ([]Download, error) {
	f, err := os.Open(filepath.Join(s.downloadsDir, mappingFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var downloads []Download
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		dest := filepath.Join(s.downloadsDir, fields[0])
		info, err := os.Stat(dest)
		if err != nil {
			continue
		}
		downloads = append(downloads, Download{
			Filename:   fields[0],
			URL:        fields[1],
			SourcePage: fields[2],
			Size:       info.Size(),
			FetchedAt:  info.ModTime(),
		})
	}
	return downloads, scanner.Err()
}

// Path returns the on-disk location of a downloaded file.
func (s *Scraper) Path(filename string) string {
	return filepath.Join(s.downloadsDir, filename)
}
