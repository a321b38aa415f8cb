package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/polkiloo/foodshare/internal/domain/repository"
	"github.com/polkiloo/foodshare/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newEngine)

type engineParams struct {
	fx.In

	Facade   handlers.FoodShareFacade
	Health   repository.HealthChecker
	Logger   *slog.Logger
	Registry *prometheus.Registry
}

func newEngine(p engineParams) *gin.Engine {
	return Setup(p.Facade, p.Health, p.Logger, p.Registry)
}
