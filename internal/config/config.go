package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	StorePath       string
	AuthSecret      string
	AuthStrategy    string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	ApprovalPoints  int
	WeekAnchor      time.Weekday
	AdminEmails     []string
	DriverEmails    []string
	LogLevel        string

	DashboardRefresh time.Duration
}

const (
	defaultRunAddress       = ":8080"
	defaultStorePath        = "data/foodshare.json"
	defaultAuthSecret       = "change-me-in-production"
	defaultAuthStrategy     = "hmac"
	defaultTokenTTL         = 24 * time.Hour
	defaultShutdownTimeout  = 10 * time.Second
	defaultApprovalPoints   = 20
	defaultWeekAnchor       = "monday"
	defaultLogLevel         = "info"
	defaultDashboardRefresh = time.Minute
)

// Load parses configuration from flags, environment variables and an optional .env file.
func Load() (*Config, error) {
	// a missing .env is fine, real environment still applies
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		StorePath:       getString(lookup, "STORE_PATH", defaultStorePath),
		AuthSecret:      getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		AuthStrategy:    getString(lookup, "AUTH_STRATEGY", defaultAuthStrategy),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		ApprovalPoints:  getInt(lookup, "APPROVAL_POINTS", defaultApprovalPoints),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("foodshare", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		refreshStr         = getDuration(lookup, "DASHBOARD_REFRESH", defaultDashboardRefresh).String()
		weekAnchorStr      = getString(lookup, "WEEK_ANCHOR", defaultWeekAnchor)
		adminsStr          = getString(lookup, "ADMIN_EMAILS", "")
		driversStr         = getString(lookup, "DRIVER_EMAILS", "")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN, file store is used when empty")
	fs.StringVar(&cfg.StorePath, "store", cfg.StorePath, "Path of the JSON file store")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.AuthStrategy, "auth-strategy", cfg.AuthStrategy, "Token strategy: hmac or jwt")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Auth token lifetime")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.ApprovalPoints, "approval-points", cfg.ApprovalPoints, "Points awarded when a donation is approved")
	fs.StringVar(&weekAnchorStr, "week-anchor", weekAnchorStr, "Weekday weekly dashboard buckets start on")
	fs.StringVar(&adminsStr, "admins", adminsStr, "Comma separated admin emails")
	fs.StringVar(&driversStr, "drivers", driversStr, "Comma separated driver emails")
	fs.StringVar(&refreshStr, "dashboard-refresh", refreshStr, "Dashboard snapshot refresh interval, 0 disables")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.DashboardRefresh, err = time.ParseDuration(refreshStr); err != nil {
		return nil, fmt.Errorf("invalid dashboard refresh: %w", err)
	}

	if cfg.WeekAnchor, err = parseWeekday(weekAnchorStr); err != nil {
		return nil, err
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = strings.TrimSpace(string(content))
	}

	cfg.AdminEmails = splitList(adminsStr)
	cfg.DriverEmails = splitList(driversStr)
	cfg.AuthStrategy = strings.ToLower(strings.TrimSpace(cfg.AuthStrategy))

	switch cfg.AuthStrategy {
	case "hmac", "jwt":
	default:
		return nil, fmt.Errorf("unknown auth strategy %q", cfg.AuthStrategy)
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DashboardRefresh < 0 {
		cfg.DashboardRefresh = 0
	}

	if cfg.ApprovalPoints <= 0 {
		return nil, fmt.Errorf("approval points must be positive")
	}

	if cfg.DatabaseURI == "" && cfg.StorePath == "" {
		return nil, fmt.Errorf("either database URI or store path must be provided")
	}

	return cfg, nil
}

func parseWeekday(v string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(v))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid week anchor %q", v)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
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

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
