package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/foodshare/internal/config"
	"github.com/polkiloo/foodshare/internal/usecase"
	"github.com/polkiloo/foodshare/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newFacade,
		newHTTPServer,
		newDashboardRefresher,
	),
	fx.Invoke(registerLifecycle),
)

func newFacade(auth *usecase.AuthUseCase, lifecycle *usecase.LifecycleUseCase, reports *usecase.ReportUseCase, refresher *worker.DashboardRefresher) *FoodShareFacade {
	return NewFoodShareFacade(auth, lifecycle, reports, refresher)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Reports *usecase.ReportUseCase
	Config  *config.Config
	Logger  *slog.Logger
}

func newDashboardRefresher(p workerParams) *worker.DashboardRefresher {
	return worker.NewDashboardRefresher(p.Reports, p.Config.DashboardRefresh, 2, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.DashboardRefresher
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	var stopWorker context.CancelFunc = func() {}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting foodshare", slog.String("addr", p.Server.Addr))

			// fx cancels the start context once OnStart returns
			workerCtx, cancel := context.WithCancel(context.Background())
			stopWorker = cancel
			p.Worker.Start(workerCtx)

			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopWorker()
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("foodshare stopped")
			return nil
		},
	})
}
