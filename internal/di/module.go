package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/foodshare/internal/app"
	"github.com/polkiloo/foodshare/internal/config"
	"github.com/polkiloo/foodshare/internal/logger"
	"github.com/polkiloo/foodshare/internal/metrics"
	"github.com/polkiloo/foodshare/internal/notification"
	"github.com/polkiloo/foodshare/internal/pkg/auth"
	"github.com/polkiloo/foodshare/internal/server/http/handlers"
	"github.com/polkiloo/foodshare/internal/server/http/router"
	"github.com/polkiloo/foodshare/internal/storage"
	"github.com/polkiloo/foodshare/internal/usecase"
)

// Module composes the whole service. Extra options are appended last so
// callers can fx.Replace any dependency.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		notification.Module,
		metrics.Module,
		fx.Provide(func(r *metrics.Recorder) usecase.TransitionRecorder { return r }),
		usecase.Module,
		fx.Provide(func(f *app.FoodShareFacade) handlers.FoodShareFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
