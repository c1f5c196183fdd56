/*
Package policy maintains a small knowledge base of quota policy documents
and answers questions from it.

# Knowledge Base

Documents live in a SQLite database (modernc.org/sqlite, no cgo). Each row
holds a policy page's title, URL, coarse category and extracted text. Upsert
keys on the URL so re-scraping refreshes content in place.

# Scraping

NewScraper walks the service-guide index (/bszn/index.html) one level deep,
extracts page text and files each substantial page:

	ps := policy.NewScraper(cfg.BaseURL, db)
	titles, err := ps.Scrape(ctx)

# Question Answering

Explain matches a question's policy keywords against the stored documents,
ranks them (title hits weigh triple), quotes the matching paragraphs and
reports a confidence derived from how many documents contributed.
*/
package policy
