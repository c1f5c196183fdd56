/*
Package handlers contains HTTP request handlers for the quota result API.

# Handler Types

Each handler is a struct holding its dependencies and is created via a
constructor:

  - SearchHandler: application code and partial ID lookups
  - DataHandler: health, statistics, file listing, refresh and clear
  - CelebrationHandler: celebration page generation for winners
  - AnalysisHandler: success rate, waiting time and trend reports
  - PolicyHandler: policy questions and knowledge base scraping

	searchHandler := handlers.NewSearchHandler(st, m)

# Search Flow

	POST /search/application-code → SearchByCode
	POST /search/id-number        → SearchByID

Code search takes the full numeric application code. ID search takes the
visible segments of a masked ID number: a 6-digit prefix, a 4-digit suffix,
or both. A result counts as a winning entry when it comes from a score
ranking document, or from a waiting list with a sequence number inside the
published quota.

# Data Management

	GET  /health           → Health
	GET  /data/statistics  → Statistics
	GET  /data/files       → Files
	POST /data/refresh     → Refresh (admin, ?max_pages=N)
	POST /data/clear       → Clear (admin)

Admin operations require the X-Admin-Key header; the router wires the check
via middleware.RequireAdminKey.

# Celebration

	POST /celebration/generate → Generate

Verifies the application code belongs to a winner, renders the animated
page, and returns it with sharing links. With save_to_file set the page is
also written to the celebrations directory.

# Analysis and Policy

	GET  /analysis/comprehensive  → Comprehensive
	GET  /analysis/success-rates  → SuccessRates
	GET  /analysis/waiting-time   → WaitingTime
	GET  /analysis/trends         → Trends
	POST /policy/explain          → Explain
	POST /data/scrape-policy      → Scrape (admin)
*/
package handlers
