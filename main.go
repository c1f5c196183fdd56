package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"bjquota/analysis"
	"bjquota/celebration"
	"bjquota/cliparse"
	"bjquota/logging"
	"bjquota/metrics"
	"bjquota/middleware"
	"bjquota/policy"
	"bjquota/refresh"
	"bjquota/router"
	"bjquota/scraper"
	"bjquota/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	logging.Setup(logging.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	m := metrics.New()

	st, err := store.New(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("failed to initialize result store")
	}
	if err := st.LoadFromDisk(); err != nil {
		log.Fatal().Err(err).Msg("failed to load stored results")
	}
	stats := st.Statistics()
	m.UpdateStoreStats(stats.TotalFiles, stats.TotalEntries)
	log.Info().
		Int("files", stats.TotalFiles).
		Int("entries", stats.TotalEntries).
		Msg("result store loaded")

	sc, err := scraper.New(cfg.BaseURL, cfg.DownloadsDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DownloadsDir).Msg("failed to initialize scraper")
	}
	refresher := refresh.New(sc, st, m)

	policyDB, err := policy.Open(cfg.PolicyDB)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.PolicyDB).Msg("failed to open policy knowledge base")
	}
	defer policyDB.Close()

	deps := router.Deps{
		Store:     st,
		Refresher: refresher,
		Generator: celebration.New(filepath.Join(cfg.DataDir, "celebrations")),
		Analyzer:  analysis.New(st),
		PolicyDB:  policyDB,
		PolicySC:  policy.NewScraper(cfg.BaseURL, policyDB),
		Metrics:   m,
	}
	mux := router.NewRouter(deps, cfg)

	// Scheduled refresh keeps the store current without manual API calls.
	var scheduler *cron.Cron
	if cfg.RefreshCron != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.RefreshCron, func() {
			resp := refresher.Run(context.Background(), refresh.DefaultMaxPages, "cron")
			log.Info().
				Bool("success", resp.Success).
				Int("downloaded", resp.FilesDownloaded).
				Int("processed", resp.FilesProcessed).
				Msg("scheduled refresh finished")
		})
		if err != nil {
			log.Fatal().Err(err).Str("cron", cfg.RefreshCron).Msg("invalid refresh schedule")
		}
		scheduler.Start()
		log.Info().Str("cron", cfg.RefreshCron).Msg("scheduled refresh enabled")
	}

	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		log.Info().Msg("shutting down")
		if scheduler != nil {
			scheduler.Stop()
		}
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			server.Close()
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("listening")
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server closed")
		os.Exit(1)
	}
	log.Info().Msg("server closed")
}
