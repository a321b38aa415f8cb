package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/polkiloo/foodshare/internal/metrics"
	"github.com/polkiloo/foodshare/internal/server/http/handlers"
	"github.com/polkiloo/foodshare/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.FoodShareFacade, health handlers.HealthChecker, logger *slog.Logger, registry *prometheus.Registry) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.LimitBody(middleware.MaxBodyBytes))
	engine.Use(middleware.DecompressRequest(middleware.MaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.GET("/metrics", gin.WrapH(metrics.Handler(registry)))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	messageHandler := handlers.NewMessageHandler(facade)
	staffHandler := handlers.NewStaffHandler(facade)
	dashboardHandler := handlers.NewDashboardHandler(facade)
	healthHandler := handlers.NewHealthHandler(health)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Get)
	api.GET("/dashboard", dashboardHandler.Get)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/profile", authHandler.Profile)
	userAuth.POST("/donations", orderHandler.SubmitDonation)
	userAuth.POST("/requests", orderHandler.SubmitRequest)
	userAuth.GET("/orders", orderHandler.List)
	userAuth.POST("/orders/:id/acknowledge", orderHandler.Acknowledge)
	userAuth.GET("/history", orderHandler.History)
	userAuth.GET("/messages", messageHandler.List)
	userAuth.POST("/messages/:id/read", messageHandler.MarkRead)

	staff := api.Group("/staff")
	staff.Use(middleware.AuthRequired(facade), middleware.StaffRequired(facade))
	staff.GET("/orders", staffHandler.List)
	staff.POST("/orders/:id/approve", staffHandler.Approve)
	staff.POST("/orders/:id/reject", staffHandler.Reject)
	staff.POST("/orders/:id/start", staffHandler.StartDelivery)
	staff.POST("/orders/:id/complete", staffHandler.Complete)

	return engine
}
