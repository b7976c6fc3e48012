package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/health-companion/internal/domain/auth"
	"github.com/yanqian/health-companion/internal/infra/config"
)

// Handlers bundles the endpoint handlers for router construction.
type Handlers struct {
	Auth      *AuthHandler
	Lifestyle *LifestyleHandler
	Health    *HealthHandler
	Billing   *BillingHandler
}

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, authSvc auth.Service, handlers Handlers, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(logger),
		errorHandlingMiddleware(logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, logger),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", handlers.Auth.Register)
			authGroup.POST("/login", handlers.Auth.Login)
			authGroup.POST("/refresh", handlers.Auth.Refresh)
		}

		api.POST("/billing/webhook", handlers.Billing.Webhook)
		api.GET("/billing/config", handlers.Billing.Config)

		protected := api.Group("")
		protected.Use(authMiddleware(authSvc))
		{
			protected.POST("/auth/logout", handlers.Auth.Logout)
			protected.GET("/auth/profile", handlers.Auth.Profile)
			protected.PUT("/auth/profile", handlers.Auth.UpdateProfile)

			protected.POST("/lifestyle/logs", handlers.Lifestyle.CreateLog)
			protected.GET("/lifestyle/logs", handlers.Lifestyle.ListLogs)
			protected.GET("/lifestyle/chart", handlers.Lifestyle.Chart)

			protected.POST("/health/tips", handlers.Health.Tips)
			protected.POST("/health/chat", handlers.Health.Chat)
			protected.GET("/health/weather", handlers.Health.Weather)
			protected.GET("/health/alerts", handlers.Health.Alerts)

			protected.POST("/billing/checkout", handlers.Billing.Checkout)
			protected.GET("/billing/verify", handlers.Billing.Verify)
		}
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
