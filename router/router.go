package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bjquota/analysis"
	"bjquota/celebration"
	"bjquota/cliparse"
	"bjquota/handlers"
	"bjquota/metrics"
	"bjquota/middleware"
	"bjquota/policy"
	"bjquota/refresh"
	"bjquota/store"
)

// Deps carries everything the routes need.
type Deps struct {
	Store     *store.Store
	Refresher *refresh.Service
	Generator *celebration.Generator
	Analyzer  *analysis.Analyzer
	PolicyDB  *policy.DB
	PolicySC  *policy.Scraper
	Metrics   *metrics.Metrics
}

func NewRouter(deps Deps, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	searchHandler := handlers.NewSearchHandler(deps.Store, deps.Metrics)
	dataHandler := handlers.NewDataHandler(deps.Store, deps.Refresher, deps.Metrics)
	celebrationHandler := handlers.NewCelebrationHandler(deps.Store, deps.Generator)
	analysisHandler := handlers.NewAnalysisHandler(deps.Analyzer)
	policyHandler := handlers.NewPolicyHandler(deps.PolicyDB, deps.PolicySC)

	wrap := func(pattern string, h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithMetrics(deps.Metrics, pattern, h))
	}
	admin := func(pattern string, h http.HandlerFunc) http.HandlerFunc {
		return wrap(pattern, middleware.RequireAdminKey(cfg.AdminKey, h))
	}

	// Health check
	mux.HandleFunc("GET /health", wrap("/health", dataHandler.Health))

	// Search (public)
	mux.HandleFunc("POST /search/application-code", wrap("/search/application-code", searchHandler.SearchByCode))
	mux.HandleFunc("POST /search/id-number", wrap("/search/id-number", searchHandler.SearchByID))

	// Celebration (public)
	mux.HandleFunc("POST /celebration/generate", wrap("/celebration/generate", celebrationHandler.Generate))

	// Data inspection (public)
	mux.HandleFunc("GET /data/statistics", wrap("/data/statistics", dataHandler.Statistics))
	mux.HandleFunc("GET /data/files", wrap("/data/files", dataHandler.Files))

	// Data management (admin operations)
	mux.HandleFunc("POST /data/refresh", admin("/data/refresh", dataHandler.Refresh))
	mux.HandleFunc("POST /data/clear", admin("/data/clear", dataHandler.Clear))
	mux.HandleFunc("POST /data/scrape-policy", admin("/data/scrape-policy", policyHandler.Scrape))

	// Analysis (public)
	mux.HandleFunc("GET /analysis/comprehensive", wrap("/analysis/comprehensive", analysisHandler.Comprehensive))
	mux.HandleFunc("GET /analysis/success-rates", wrap("/analysis/success-rates", analysisHandler.SuccessRates))
	mux.HandleFunc("GET /analysis/waiting-time", wrap("/analysis/waiting-time", analysisHandler.WaitingTime))
	mux.HandleFunc("GET /analysis/trends", wrap("/analysis/trends", analysisHandler.Trends))

	// Policy (public)
	mux.HandleFunc("POST /policy/explain", wrap("/policy/explain", policyHandler.Explain))

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("bjquota API v1"))
	})

	return mux
}
