package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/foodshare/internal/config"
	"github.com/polkiloo/foodshare/internal/domain/repository"
	"github.com/polkiloo/foodshare/internal/notification"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newRoles,
	NewAuthUseCase,
	newLifecycleUseCase,
	newReportUseCase,
)

func newRoles(cfg *config.Config) Roles {
	return Roles{Admins: cfg.AdminEmails, Drivers: cfg.DriverEmails}
}

type lifecycleParams struct {
	fx.In

	Config   *config.Config
	Users    repository.UserRepository
	Activity repository.ActivityRepository
	Messages *notification.Generator
	Recorder TransitionRecorder `optional:"true"`
	Logger   *slog.Logger
}

func newLifecycleUseCase(p lifecycleParams) *LifecycleUseCase {
	return NewLifecycleUseCase(p.Users, p.Activity, p.Messages, p.Recorder, p.Logger, LifecycleOptions{
		ApprovalPoints: p.Config.ApprovalPoints,
	})
}

func newReportUseCase(cfg *config.Config, source repository.SnapshotReader) *ReportUseCase {
	return NewReportUseCase(source, cfg.WeekAnchor)
}
