package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/foodshare/internal/config"
	"github.com/polkiloo/foodshare/internal/domain/repository"
	"github.com/polkiloo/foodshare/internal/storage/filestore"
	"github.com/polkiloo/foodshare/internal/storage/postgres"
)

// Module wires the record store selected by configuration and its repositories.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.UserRepository { return f.Users() },
		func(f repository.Factory) repository.ActivityRepository { return f.Activity() },
		func(f repository.Factory) repository.SnapshotReader { return f },
		func(f repository.Factory) repository.HealthChecker { return f },
	),
	fx.Invoke(registerLifecycle),
)

type factoryParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// newFactory picks PostgreSQL when a DSN is configured and the JSON file store otherwise.
func newFactory(p factoryParams) (repository.Factory, error) {
	if p.Config.DatabaseURI != "" {
		p.Logger.Info("using postgres record store")
		st, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
		if err != nil {
			return nil, err
		}
		return st, nil
	}
	p.Logger.Info("using file record store", slog.String("path", p.Config.StorePath))
	st, err := filestore.Open(p.Config.StorePath, p.Logger)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func registerLifecycle(lc fx.Lifecycle, factory repository.Factory, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := factory.Close(); err != nil {
				logger.Error("close record store", slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	})
}
