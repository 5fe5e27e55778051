package app

import (
	httpserver "github.com/yungbote/neurobridge-recommender/internal/http"
	"github.com/yungbote/neurobridge-recommender/internal/observability"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *httpserver.Server {
	log.Info("Wiring router...")
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.ServiceName
	}
	return httpserver.NewServer(httpserver.RouterConfig{
		Log:                   log,
		Metrics:               metrics,
		ServiceName:           serviceName,
		CORSOrigins:           cfg.CORSOrigins,
		RateLimiter:           middleware.RateLimiter,
		RecommendationHandler: handlers.Recommendation,
		HealthHandler:         handlers.Health,
	})
}
