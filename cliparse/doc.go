/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8421)
  - DataDir: Parsed results and metadata directory (default: data)
  - DownloadsDir: Downloaded PDF directory (default: downloads)
  - BaseURL: Announcement site base URL
  - PolicyDB: Path to the policy knowledge base (default: policy.db)
  - RefreshCron: Cron expression for scheduled refresh (empty disables)
  - AdminKey: Secret for mutating endpoints (required)
  - LogLevel, LogPretty: Logging configuration

# CLI Flags

	-p             Server port
	-data          Data directory
	-downloads     Downloads directory
	-base-url      Announcement site base URL
	-policy-db     Policy knowledge base path
	-refresh-cron  Cron expression for scheduled refresh
	-admin-key     Admin key (prefer env)
	-log-level     Log level
	-log-pretty    Console log output

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATA_DIR      → -data
	DOWNLOADS_DIR → -downloads
	BASE_URL      → -base-url
	POLICY_DB     → -policy-db
	REFRESH_CRON  → -refresh-cron
	ADMIN_KEY     → -admin-key
	LOG_LEVEL     → -log-level
	LOG_PRETTY    → -log-pretty

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - ADMIN_KEY must be provided

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	st, err := store.New(cfg.DataDir)
	// ...
	mux := router.NewRouter(st, cfg)
*/
package cliparse
