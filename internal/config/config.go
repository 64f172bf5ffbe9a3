package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// MailIdentity is one preconfigured service/template/key triple of the
// transactional-email relay.
type MailIdentity struct {
	ServiceID  string
	TemplateID string
	UserID     string
}

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress     string
	BackendBaseURL string
	BackendToken   string
	// APIKey protects the agent's own HTTP surface. Empty disables the check.
	APIKey string

	AutoSyncIntervalMinutes int
	AutoSyncEnabled         bool
	SettleDelay             time.Duration
	NotifyDelay             time.Duration
	SyncStatusTTL           time.Duration
	AuthPollInterval        time.Duration
	TokenRefreshThreshold   time.Duration
	ShutdownTimeout         time.Duration

	MailerEndpoint string
	// CabinetMail is used for cabinet-facing order notifications,
	// AlertMail for internal "new order" alerts.
	CabinetMail MailIdentity
	AlertMail   MailIdentity
}

const (
	defaultRunAddress            = ":8081"
	defaultAutoSyncInterval      = 5
	defaultSettleDelay           = 3 * time.Second
	defaultNotifyDelay           = 2 * time.Second
	defaultSyncStatusTTL         = 5 * time.Second
	defaultAuthPollInterval      = 30 * time.Second
	defaultTokenRefreshThreshold = 5 * time.Minute
	defaultShutdownTimeout       = 10 * time.Second
	defaultMailerEndpoint        = "https://api.emailjs.com/api/v1.0/email/send"

	// MinIntervalMinutes and MaxIntervalMinutes bound the auto-sync cadence.
	MinIntervalMinutes = 1
	MaxIntervalMinutes = 60
)

// ValidIntervalMinutes reports whether minutes is an acceptable auto-sync period.
func ValidIntervalMinutes(minutes int) bool {
	return minutes >= MinIntervalMinutes && minutes <= MaxIntervalMinutes
}

// Load parses configuration from an optional .env file, environment
// variables, and flags.
func Load() (*Config, error) {
	// A missing .env file is fine; explicit environment always wins
	// because godotenv never overrides existing variables.
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:              getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		BackendBaseURL:          getString(lookup, "BACKEND_BASE_URL", ""),
		BackendToken:            getString(lookup, "BACKEND_TOKEN", ""),
		APIKey:                  getString(lookup, "API_KEY", ""),
		AutoSyncIntervalMinutes: getInt(lookup, "AUTOSYNC_INTERVAL_MINUTES", defaultAutoSyncInterval),
		AutoSyncEnabled:         getBool(lookup, "AUTOSYNC_ENABLED", false),
		SettleDelay:             getDuration(lookup, "SYNC_SETTLE_DELAY", defaultSettleDelay),
		NotifyDelay:             getDuration(lookup, "NOTIFY_DELAY", defaultNotifyDelay),
		SyncStatusTTL:           getDuration(lookup, "SYNC_STATUS_TTL", defaultSyncStatusTTL),
		AuthPollInterval:        getDuration(lookup, "AUTH_POLL_INTERVAL", defaultAuthPollInterval),
		TokenRefreshThreshold:   getDuration(lookup, "TOKEN_REFRESH_THRESHOLD", defaultTokenRefreshThreshold),
		ShutdownTimeout:         getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MailerEndpoint:          getString(lookup, "MAILER_ENDPOINT", defaultMailerEndpoint),
		CabinetMail: MailIdentity{
			ServiceID:  getString(lookup, "MAIL_CABINET_SERVICE_ID", ""),
			TemplateID: getString(lookup, "MAIL_CABINET_TEMPLATE_ID", ""),
			UserID:     getString(lookup, "MAIL_CABINET_USER_ID", ""),
		},
		AlertMail: MailIdentity{
			ServiceID:  getString(lookup, "MAIL_ALERT_SERVICE_ID", ""),
			TemplateID: getString(lookup, "MAIL_ALERT_TEMPLATE_ID", ""),
			UserID:     getString(lookup, "MAIL_ALERT_USER_ID", ""),
		},
	}

	fs := flag.NewFlagSet("labsync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		settleDelayStr = cfg.SettleDelay.String()
		notifyDelayStr = cfg.NotifyDelay.String()
		shutdownStr    = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.BackendBaseURL, "b", cfg.BackendBaseURL, "Lab backend base URL")
	fs.StringVar(&cfg.BackendToken, "token", cfg.BackendToken, "Backend bearer token")
	fs.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "Static API key for the agent surface")
	fs.IntVar(&cfg.AutoSyncIntervalMinutes, "interval", cfg.AutoSyncIntervalMinutes, "Auto-sync interval in minutes")
	fs.BoolVar(&cfg.AutoSyncEnabled, "autosync", cfg.AutoSyncEnabled, "Start the auto-sync scheduler at boot")
	fs.StringVar(&settleDelayStr, "settle-delay", settleDelayStr, "Delay between sync and re-fetch")
	fs.StringVar(&notifyDelayStr, "notify-delay", notifyDelayStr, "Delay between notification emails")
	fs.StringVar(&shutdownStr, "shutdown-timeout", shutdownStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SettleDelay, err = time.ParseDuration(settleDelayStr); err != nil {
		return nil, fmt.Errorf("invalid settle delay: %w", err)
	}

	if cfg.NotifyDelay, err = time.ParseDuration(notifyDelayStr); err != nil {
		return nil, fmt.Errorf("invalid notify delay: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if tokenFile, ok := lookup("BACKEND_TOKEN_FILE"); ok && tokenFile != "" {
		content, err := os.ReadFile(tokenFile)
		if err != nil {
			return nil, fmt.Errorf("read backend token file: %w", err)
		}
		cfg.BackendToken = string(content)
	}

	if !ValidIntervalMinutes(cfg.AutoSyncIntervalMinutes) {
		return nil, fmt.Errorf("auto-sync interval %d out of range [%d,%d]",
			cfg.AutoSyncIntervalMinutes, MinIntervalMinutes, MaxIntervalMinutes)
	}

	if cfg.SettleDelay < 0 {
		cfg.SettleDelay = defaultSettleDelay
	}

	if cfg.NotifyDelay < 0 {
		cfg.NotifyDelay = defaultNotifyDelay
	}

	if cfg.SyncStatusTTL <= 0 {
		cfg.SyncStatusTTL = defaultSyncStatusTTL
	}

	if cfg.AuthPollInterval <= 0 {
		cfg.AuthPollInterval = defaultAuthPollInterval
	}

	if cfg.TokenRefreshThreshold <= 0 {
		cfg.TokenRefreshThreshold = defaultTokenRefreshThreshold
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.BackendBaseURL == "" {
		return nil, fmt.Errorf("backend base URL must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
