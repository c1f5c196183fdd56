package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"

	"bjquota/store"
)

// columnGap is the horizontal distance (in PDF text-space units) beyond
// which adjacent text chunks on a row are treated as separate columns.
const columnGap = 1.0

// ParseFile opens a PDF, extracts its text page by page, and parses it into
// an aggregate. Errors opening or reading the file are fatal for this
// document only; a caller processing a batch skips it and continues.
func ParseFile(path, sourceURL string, downloadTime time.Time) (*store.Aggregate, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat pdf %s: %w", path, err)
	}

	pageCount := reader.NumPage()
	pages := make([]string, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, pageText(page))

		if i%50 == 0 {
			log.Info().Str("filename", info.Name()).
				Int("page", i).Int("pages", pageCount).
				Msg("extraction progress")
		}
	}

	doc := Document{
		Filename:     info.Name(),
		SourceURL:    sourceURL,
		DownloadTime: downloadTime,
		FileSize:     info.Size(),
		Pages:        pages,
	}
	return Parse(doc), nil
}

// pageText reassembles a page's text rows into newline-separated lines,
// inserting a space wherever the horizontal gap between chunks indicates a
// column boundary.
func pageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		log.Warn().Err(err).Msg("failed to extract page text")
		return ""
	}

	var b strings.Builder
	for _, row := range rows {
		var lastEnd float64
		for i, chunk := range row.Content {
			if i > 0 && chunk.X-lastEnd > columnGap {
				b.WriteByte(' ')
			}
			b.WriteString(chunk.S)
			lastEnd = chunk.X + chunk.W
		}
		b.WriteByte('\n')
	}
	return b.String()
}
