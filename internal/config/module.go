package config

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module exposes configuration loader for fx graphs and logs the effective
// settings once the logger is available.
var Module = fx.Options(
	fx.Provide(Load),
	fx.Invoke(logSummary),
)

func logSummary(cfg *Config, logger *slog.Logger) {
	store := "file"
	if cfg.DatabaseURI != "" {
		store = "postgres"
	}
	if cfg.AuthSecret == defaultAuthSecret {
		logger.Warn("using default auth secret, set AUTH_SECRET in production")
	}
	logger.Info("configuration loaded",
		slog.String("addr", cfg.RunAddress),
		slog.String("store", store),
		slog.String("auth_strategy", cfg.AuthStrategy),
		slog.Int("approval_points", cfg.ApprovalPoints),
		slog.String("week_anchor", cfg.WeekAnchor.String()),
		slog.Int("admins", len(cfg.AdminEmails)),
		slog.Int("drivers", len(cfg.DriverEmails)),
		slog.Duration("dashboard_refresh", cfg.DashboardRefresh),
	)
}
