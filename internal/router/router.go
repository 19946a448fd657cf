package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/dsolovey/passguard/internal/handler"
	"github.com/dsolovey/passguard/internal/middleware"
)

// Handler is anything that can register routes on the versioned API group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit rate.Limit
	RateBurst int
}

// New assembles the gin engine: request logging, panic recovery and rate
// limiting around the versioned API, plus health and metrics endpoints.
func New(log zerolog.Logger, registry *prometheus.Registry, passwordH Handler, cfg Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.Logger(log))
	engine.Use(middleware.Recovery(log))

	engine.GET("/health", handler.HealthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  cfg.RateLimit,
		Burst: cfg.RateBurst,
	})

	api := engine.Group("/api/v1")
	api.Use(limiter.RateLimit())
	passwordH.RegisterRoutes(api)

	return engine
}
