/*
Package main provides the entry point for the bjquota API server.

bjquota tracks Beijing small passenger car quota lottery results. It
downloads the result PDFs published on the municipal announcement site,
parses them into searchable documents, and serves search, statistics,
analysis, celebration, and policy Q&A endpoints over HTTP.

# Starting the Server

The server requires an admin key via environment variable or CLI flag:

	ADMIN_KEY=secret go run .

Or with flags:

	go run . -p 8421 -admin-key secret -data ./data -downloads ./downloads

# Configuration

Required settings:

  - ADMIN_KEY (-admin-key): Shared secret for data management endpoints

Optional settings:

  - PORT (-p): Server port (default: 8421)
  - DATA_DIR (-data): Directory for parsed results (default: data)
  - DOWNLOADS_DIR (-downloads): Directory for downloaded PDFs (default: downloads)
  - BASE_URL (-base-url): Announcement site base URL
  - POLICY_DB (-policy-db): Path to the policy knowledge base (default: policy.db)
  - REFRESH_CRON (-refresh-cron): Cron expression for scheduled refresh
  - LOG_LEVEL (-log-level), LOG_PRETTY (-log-pretty): Logging behavior

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (search, data, celebration, analysis, policy)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, admin auth, JSON helpers
  - models: Request/response and document types
  - parser: PDF text extraction and result document parsing
  - store: Indexed in-memory store with JSON snapshots on disk
  - scraper: Announcement site crawling and PDF download
  - policy: Policy document knowledge base and question answering
  - analysis: Success rate, waiting time, and trend analysis
  - celebration: Winner celebration page generation
  - refresh: Scrape, parse, and store orchestration
  - cliparse: Configuration parsing
  - logging, metrics: Observability setup

See package documentation for each component.
*/
package main
