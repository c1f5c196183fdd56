/*
Package scraper retrieves quota lottery result PDFs from the Beijing
municipal announcement site.

# Flow

The listing at /jggb/index.html (index_N.html for later pages) links to
notice pages. Notices whose titles mention a new-energy quota category (see
TargetKeywords) are followed, and every PDF they link to is downloaded:

	s, err := scraper.New(cfg.BaseURL, cfg.DownloadsDir)
	downloads, err := s.ScrapeAndDownload(ctx, 5)

Downloads are idempotent: the local filename is derived from the PDF URL and
files already on disk are skipped. A url_mapping.txt in the downloads
directory records filename, PDF URL and source page so local files keep
their provenance; ExistingDownloads reads it back.

# HTML Extraction

ExtractNoticeLinks and ExtractPDFLinks parse listing and notice pages with
golang.org/x/net/html, resolving relative hrefs against the page URL.
*/
package scraper
