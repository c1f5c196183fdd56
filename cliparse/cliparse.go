package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port         int
	DataDir      string
	DownloadsDir string
	BaseURL      string
	PolicyDB     string
	RefreshCron  string
	AdminKey     string
	LogLevel     string
	LogPretty    bool
}

const defaultBaseURL = "https://xkczb.jtw.beijing.gov.cn"

// ParseFlags validates flags, falling back to environment variables where a
// flag was not provided.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("bjquota", flag.ContinueOnError)

	// Network and filesystem config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DataDir, "data", "", "Directory for parsed results and metadata")
	fs.StringVar(&cfg.DownloadsDir, "downloads", "", "Directory for downloaded PDFs")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Announcement site base URL")
	fs.StringVar(&cfg.PolicyDB, "policy-db", "", "Path to the policy knowledge base")
	fs.StringVar(&cfg.RefreshCron, "refresh-cron", "", "Cron expression for scheduled refresh (empty disables)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin key for mutating endpoints (prefer env)")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	fs.BoolVar(&cfg.LogPretty, "log-pretty", false, "Human-readable console log output")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8421 // default
		}
	}

	if cfg.DataDir == "" {
		cfg.DataDir = os.Getenv("DATA_DIR")
		if cfg.DataDir == "" {
			cfg.DataDir = "data"
		}
	}
	if cfg.DownloadsDir == "" {
		cfg.DownloadsDir = os.Getenv("DOWNLOADS_DIR")
		if cfg.DownloadsDir == "" {
			cfg.DownloadsDir = "downloads"
		}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BASE_URL")
		if cfg.BaseURL == "" {
			cfg.BaseURL = defaultBaseURL
		}
	}
	if cfg.PolicyDB == "" {
		cfg.PolicyDB = os.Getenv("POLICY_DB")
		if cfg.PolicyDB == "" {
			cfg.PolicyDB = "policy.db"
		}
	}
	if cfg.RefreshCron == "" {
		cfg.RefreshCron = os.Getenv("REFRESH_CRON")
	}

	// Secret - MUST be provided
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}
	if cfg.AdminKey == "" {
		return Config{}, errors.New("ADMIN_KEY required")
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
		if cfg.LogLevel == "" {
			cfg.LogLevel = "info"
		}
	}
	if !cfg.LogPretty {
		cfg.LogPretty = os.Getenv("LOG_PRETTY") == "true"
	}

	return cfg, nil
}
